package model

import (
	"time"

	"github.com/google/uuid"
)

// ReferenceMaxLength bounds the exporter's own reference for a declaration.
const ReferenceMaxLength = 20

// DraftSubmission is the mutable working copy of a declaration. Sections
// are mutated only through the draft engine so that cascades and gating
// stay consistent.
type DraftSubmission struct {
	ID                     uuid.UUID              `json:"id"`
	Reference              string                 `json:"reference"`
	WasteDescription       WasteDescription       `json:"wasteDescription"`
	WasteQuantity          WasteQuantity          `json:"wasteQuantity"`
	ExporterDetail         ExporterDetail         `json:"exporterDetail"`
	ImporterDetail         ImporterDetail         `json:"importerDetail"`
	CollectionDate         CollectionDate         `json:"collectionDate"`
	Carriers               Carriers               `json:"carriers"`
	CollectionDetail       CollectionDetail       `json:"collectionDetail"`
	UkExitLocation         UkExitLocation         `json:"ukExitLocation"`
	TransitCountries       TransitCountries       `json:"transitCountries"`
	RecoveryFacilityDetail RecoveryFacilityDetail `json:"recoveryFacilityDetail"`
	SubmissionConfirmation SubmissionConfirmation `json:"submissionConfirmation"`
	SubmissionDeclaration  SubmissionDeclaration  `json:"submissionDeclaration"`
	SubmissionState        SubmissionState        `json:"submissionState"`
}

// NewDraft creates an empty draft. Quantity and the recovery facility
// section are gated on the waste description; the two declaration gates
// are gated on everything else.
func NewDraft(id uuid.UUID, reference string) *DraftSubmission {
	return &DraftSubmission{
		ID:                     id,
		Reference:              reference,
		WasteDescription:       WasteDescription{Status: SectionNotStarted},
		WasteQuantity:          WasteQuantity{Status: SectionCannotStart},
		ExporterDetail:         ExporterDetail{Status: SectionNotStarted},
		ImporterDetail:         ImporterDetail{Status: SectionNotStarted},
		CollectionDate:         CollectionDate{Status: SectionNotStarted},
		Carriers:               Carriers{Status: SectionNotStarted, Transport: true},
		CollectionDetail:       CollectionDetail{Status: SectionNotStarted},
		UkExitLocation:         UkExitLocation{Status: SectionNotStarted},
		TransitCountries:       TransitCountries{Status: SectionNotStarted},
		RecoveryFacilityDetail: RecoveryFacilityDetail{Status: SectionCannotStart},
		SubmissionConfirmation: SubmissionConfirmation{Status: SectionCannotStart},
		SubmissionDeclaration:  SubmissionDeclaration{Status: SectionCannotStart},
		SubmissionState:        SubmissionState{Status: StateInProgress, Timestamp: time.Now().UTC()},
	}
}

// SectionStatuses returns the status of every section that gates the
// confirmation, in a stable order.
func (d *DraftSubmission) SectionStatuses() []SectionStatus {
	return []SectionStatus{
		d.WasteDescription.Status,
		d.WasteQuantity.Status,
		d.ExporterDetail.Status,
		d.ImporterDetail.Status,
		d.CollectionDate.Status,
		d.Carriers.Status,
		d.CollectionDetail.Status,
		d.UkExitLocation.Status,
		d.TransitCountries.Status,
		d.RecoveryFacilityDetail.Status,
	}
}

// AllSectionsComplete reports whether every non-gating section is Complete.
func (d *DraftSubmission) AllSectionsComplete() bool {
	for _, s := range d.SectionStatuses() {
		if s != SectionComplete {
			return false
		}
	}
	return true
}

// HasEstimates reports whether either the quantity or the date is still an
// estimate.
func (d *DraftSubmission) HasEstimates() bool {
	return d.WasteQuantity.Kind == QuantityEstimate || d.CollectionDate.Kind == DateEstimate
}
