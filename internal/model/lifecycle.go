package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SubmissionStateStatus is the lifecycle state of a declaration record.
type SubmissionStateStatus string

const (
	StateInProgress             SubmissionStateStatus = "InProgress"
	StateDeleted                SubmissionStateStatus = "Deleted"
	StateCancelled              SubmissionStateStatus = "Cancelled"
	StateSubmittedWithEstimates SubmissionStateStatus = "SubmittedWithEstimates"
	StateSubmittedWithActuals   SubmissionStateStatus = "SubmittedWithActuals"
	StateUpdatedWithActuals     SubmissionStateStatus = "UpdatedWithActuals"
)

// Terminal reports whether no further transition is possible.
func (s SubmissionStateStatus) Terminal() bool {
	return s == StateDeleted || s == StateCancelled
}

// Submitted reports whether the record has passed declaration.
func (s SubmissionStateStatus) Submitted() bool {
	switch s {
	case StateSubmittedWithEstimates, StateSubmittedWithActuals, StateUpdatedWithActuals:
		return true
	}
	return false
}

// CancellationKind classifies why a submission was cancelled.
type CancellationKind string

const (
	CancellationChangeOfRecoveryFacilityOrLaboratory CancellationKind = "ChangeOfRecoveryFacilityOrLaboratory"
	CancellationOther                                CancellationKind = "Other"
)

// CancellationType carries the cancellation reason. Reason is required only
// for CancellationOther.
type CancellationType struct {
	Type   CancellationKind `json:"type"`
	Reason string           `json:"reason,omitempty"`
}

// SubmissionState is the lifecycle tag plus the time it was entered.
type SubmissionState struct {
	Status           SubmissionStateStatus `json:"status"`
	Timestamp        time.Time             `json:"timestamp"`
	CancellationType *CancellationType     `json:"cancellationType,omitempty"`
}

// DeclarationData is assigned exactly once, when a draft is declared.
type DeclarationData struct {
	DeclarationTimestamp time.Time `json:"declarationTimestamp"`
	TransactionID        string    `json:"transactionId"`
}

// SubmissionConfirmation gates the declaration: it can leave CannotStart
// only once every other section is Complete.
type SubmissionConfirmation struct {
	Status    SectionStatus `json:"status"`
	Confirmed bool          `json:"confirmation,omitempty"`
}

// SubmissionDeclaration is the final gating section on a draft.
type SubmissionDeclaration struct {
	Status SectionStatus    `json:"status"`
	Values *DeclarationData `json:"values,omitempty"`
}

// TransactionID builds the human-facing declaration number: two-digit
// year and month, then the first eight hex digits of the record id.
func TransactionID(id uuid.UUID, at time.Time) string {
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	return fmt.Sprintf("%02d%02d_%s", at.Year()%100, int(at.Month()), hex[:8])
}
