// Package draftengine is the mutation engine for drafts and templates.
//
// Sections depend on each other: the waste-code shape drives the carriers'
// transport flag and the legal recovery-facility types, and the two
// declaration gates derive from every other section's status. To keep the
// cascade order explicit, all mutations go through the functions here,
// which apply the change to the whole aggregate and then recompute the
// derived state. Callers never assign section statuses directly.
package draftengine

import (
	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/model"
)

// WasteCodeTransition classifies a proposed waste-code change.
type WasteCodeTransition int

const (
	// TransitionNone: no code before and after, or the identical code.
	TransitionNone WasteCodeTransition = iota
	// TransitionInitial: first code on a draft that had none.
	TransitionInitial
	TransitionBulkToSmall
	TransitionSmallToBulk
	TransitionBulkToBulkDifferentType
	// TransitionBulkToBulkSameType: same bulk classification, different
	// code. Carrier and facility values survive but must be re-confirmed.
	TransitionBulkToBulkSameType
)

// ShapeChange reports whether the transition invalidates carriers and
// recovery facilities entirely.
func (t WasteCodeTransition) ShapeChange() bool {
	switch t {
	case TransitionBulkToSmall, TransitionSmallToBulk, TransitionBulkToBulkDifferentType:
		return true
	}
	return false
}

// Classify determines the transition between the current and proposed
// waste codes.
func Classify(current, proposed *model.WasteCode) WasteCodeTransition {
	switch {
	case proposed == nil:
		return TransitionNone
	case current == nil:
		return TransitionInitial
	case current.Type == proposed.Type && current.Code == proposed.Code:
		return TransitionNone
	case current.Type.Bulk() && !proposed.Type.Bulk():
		return TransitionBulkToSmall
	case !current.Type.Bulk() && proposed.Type.Bulk():
		return TransitionSmallToBulk
	case current.Type != proposed.Type:
		return TransitionBulkToBulkDifferentType
	default:
		return TransitionBulkToBulkSameType
	}
}

// CarriersTransport derives the carriers' transport flag from the waste
// code: means of transport applies to bulk waste only. A draft without a
// code keeps transport on.
func CarriersTransport(code *model.WasteCode) bool {
	return code == nil || code.Type.Bulk()
}

// SetWasteDescription applies a waste-description update and cascades:
//
//   - Any shape change (small<->bulk, or a different bulk classification)
//     resets carriers and recovery facilities to NotStarted with empty
//     values, and resets the quantity so stale units cannot survive.
//   - A same-classification code change preserves carrier and facility
//     values but demotes both sections to Started for re-confirmation.
//   - On a shape change a value that is only Started also loses its EWC
//     codes, national code and description.
//   - The transport flag is recomputed from the new code in all cases.
func SetWasteDescription(d *model.DraftSubmission, value model.WasteDescription) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if value.Status != model.SectionStarted && value.Status != model.SectionComplete {
		return apperr.BadRequest("waste description status must be Started or Complete")
	}
	if value.Status == model.SectionComplete &&
		(value.WasteCode == nil || len(value.EwcCodes) == 0 || value.Description == "") {
		return apperr.BadRequest("a complete waste description needs a waste code, EWC codes and a description")
	}

	transition := Classify(d.WasteDescription.WasteCode, value.WasteCode)

	if transition.ShapeChange() {
		if value.Status == model.SectionStarted {
			value.EwcCodes = nil
			value.NationalCode = nil
			value.Description = ""
		}
		d.Carriers = model.Carriers{
			Status:    model.SectionNotStarted,
			Transport: CarriersTransport(value.WasteCode),
		}
		d.RecoveryFacilityDetail = model.RecoveryFacilityDetail{Status: model.SectionNotStarted}
		if transition == TransitionBulkToSmall || transition == TransitionSmallToBulk {
			d.WasteQuantity = model.WasteQuantity{Status: model.SectionNotStarted}
		}
	} else if transition == TransitionBulkToBulkSameType {
		d.Carriers.Status = model.SectionStarted
		d.RecoveryFacilityDetail.Status = model.SectionStarted
	}

	d.Carriers.Transport = CarriersTransport(value.WasteCode)
	d.WasteDescription = value

	unlockWasteGates(d)
	RecomputeGating(d)
	return nil
}

// SetWasteQuantity applies a quantity update. The unit is always derived
// from the waste-code type and the quantity type; any caller-supplied unit
// is overwritten.
func SetWasteQuantity(d *model.DraftSubmission, value model.WasteQuantity) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if d.WasteQuantity.Status == model.SectionCannotStart {
		return apperr.NotFound("waste quantity cannot start before the waste description")
	}
	codeType := model.WasteCodeNotApplicable
	if d.WasteDescription.WasteCode != nil {
		codeType = d.WasteDescription.WasteCode.Type
	}
	if value.ActualData != nil {
		value.ActualData.Unit = model.DeriveUnit(codeType, value.ActualData.QuantityType)
	}
	if value.EstimateData != nil {
		value.EstimateData.Unit = model.DeriveUnit(codeType, value.EstimateData.QuantityType)
	}
	if value.Status == model.SectionComplete && value.Authoritative() == nil {
		return apperr.BadRequest("a complete waste quantity needs an amount")
	}
	d.WasteQuantity = value
	RecomputeGating(d)
	return nil
}

// SetCollectionDate applies a collection-date update.
func SetCollectionDate(d *model.DraftSubmission, value model.CollectionDate) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if value.Status == model.SectionComplete && value.Authoritative() == nil {
		return apperr.BadRequest("a complete collection date needs a date")
	}
	d.CollectionDate = value
	RecomputeGating(d)
	return nil
}

// SetExporterDetail applies an exporter update.
func SetExporterDetail(d *model.DraftSubmission, value model.ExporterDetail) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if value.Status == model.SectionComplete &&
		(value.ExporterAddress == nil || value.ExporterContactDetails == nil) {
		return apperr.BadRequest("a complete exporter detail needs an address and contact details")
	}
	d.ExporterDetail = value
	RecomputeGating(d)
	return nil
}

// SetImporterDetail applies an importer update.
func SetImporterDetail(d *model.DraftSubmission, value model.ImporterDetail) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if value.Status == model.SectionComplete &&
		(value.ImporterAddressDetails == nil || value.ImporterContactDetails == nil) {
		return apperr.BadRequest("a complete importer detail needs an address and contact details")
	}
	d.ImporterDetail = value
	RecomputeGating(d)
	return nil
}

// SetCollectionDetail applies a waste-collection update.
func SetCollectionDetail(d *model.DraftSubmission, value model.CollectionDetail) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if value.Status == model.SectionComplete &&
		(value.Address == nil || value.ContactDetails == nil) {
		return apperr.BadRequest("a complete collection detail needs an address and contact details")
	}
	d.CollectionDetail = value
	RecomputeGating(d)
	return nil
}

// SetUkExitLocation applies a UK exit location update.
func SetUkExitLocation(d *model.DraftSubmission, value model.UkExitLocation) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	d.UkExitLocation = value
	RecomputeGating(d)
	return nil
}

// SetReference replaces the exporter's own reference for the draft.
func SetReference(d *model.DraftSubmission, reference string) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	d.Reference = reference
	return nil
}

// SetTransitCountries applies a transit-countries update.
func SetTransitCountries(d *model.DraftSubmission, value model.TransitCountries) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	d.TransitCountries = value
	RecomputeGating(d)
	return nil
}

// SetConfirmation records the exporter's confirmation that the declaration
// is correct. Only legal once every other section is Complete.
func SetConfirmation(d *model.DraftSubmission, confirmed bool) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if d.SubmissionConfirmation.Status == model.SectionCannotStart {
		return apperr.NotFound("the declaration cannot be confirmed until every section is complete")
	}
	if confirmed {
		d.SubmissionConfirmation = model.SubmissionConfirmation{Status: model.SectionComplete, Confirmed: true}
	} else {
		d.SubmissionConfirmation = model.SubmissionConfirmation{Status: model.SectionNotStarted}
	}
	RecomputeGating(d)
	return nil
}

// unlockWasteGates opens the sections gated on the waste description once
// a waste code exists, and closes them again if it disappears.
func unlockWasteGates(d *model.DraftSubmission) {
	hasCode := d.WasteDescription.WasteCode != nil
	if hasCode {
		if d.WasteQuantity.Status == model.SectionCannotStart {
			d.WasteQuantity = model.WasteQuantity{Status: model.SectionNotStarted}
		}
		if d.RecoveryFacilityDetail.Status == model.SectionCannotStart {
			d.RecoveryFacilityDetail = model.RecoveryFacilityDetail{Status: model.SectionNotStarted}
		}
	} else {
		d.WasteQuantity = model.WasteQuantity{Status: model.SectionCannotStart}
		d.RecoveryFacilityDetail = model.RecoveryFacilityDetail{Status: model.SectionCannotStart}
	}
}

// RecomputeGating recomputes the confirmation and declaration sections.
// It is idempotent and total: whatever the draft's shape, it produces a
// valid gating status and never fails.
//
// The confirmation can only be NotStarted (or beyond) when every other
// section is Complete; the declaration can only be NotStarted (or beyond)
// when the confirmation is Complete. A section regressing pulls both
// gates back to CannotStart.
func RecomputeGating(d *model.DraftSubmission) {
	if d.AllSectionsComplete() {
		if d.SubmissionConfirmation.Status == model.SectionCannotStart {
			d.SubmissionConfirmation = model.SubmissionConfirmation{Status: model.SectionNotStarted}
		}
	} else {
		d.SubmissionConfirmation = model.SubmissionConfirmation{Status: model.SectionCannotStart}
	}

	if d.SubmissionConfirmation.Status == model.SectionComplete {
		if d.SubmissionDeclaration.Status == model.SectionCannotStart {
			d.SubmissionDeclaration = model.SubmissionDeclaration{Status: model.SectionNotStarted}
		}
	} else {
		d.SubmissionDeclaration = model.SubmissionDeclaration{Status: model.SectionCannotStart}
	}
}

// checkWriteable rejects mutations on drafts that have left InProgress.
func checkWriteable(d *model.DraftSubmission) error {
	if d.SubmissionState.Status != model.StateInProgress {
		return apperr.NotFound("draft is no longer editable")
	}
	return nil
}
