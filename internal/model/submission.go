package model

import "github.com/google/uuid"

// Submission is the immutable-identity aggregate produced by declaring a
// draft or by bulk CSV import. It is never edited section-by-section; the
// only post-declaration mutations are the estimate-to-actual updates and
// cancellation handled by the submission service.
type Submission struct {
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
	SubmissionDeclaration  DeclarationData        `json:"submissionDeclaration"`
	SubmissionState        SubmissionState        `json:"submissionState"`
}

// HasEstimates reports whether quantity or date is still estimate-typed.
func (s *Submission) HasEstimates() bool {
	return s.WasteQuantity.Kind == QuantityEstimate || s.CollectionDate.Kind == DateEstimate
}
