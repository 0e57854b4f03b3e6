package draftengine

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/model"
)

// Template mutations mirror the draft ones without the per-shipment
// sections (quantity, collection date) and without the declaration gates.
// Template carriers never carry transport details; those are entered per
// shipment.

// SetTemplateWasteDescription applies a waste-description update to a
// template, with the same carrier/facility cascade as on a draft.
func SetTemplateWasteDescription(t *model.Template, value model.WasteDescription) error {
	if value.Status != model.SectionStarted && value.Status != model.SectionComplete {
		return apperr.BadRequest("waste description status must be Started or Complete")
	}
	if value.Status == model.SectionComplete &&
		(value.WasteCode == nil || len(value.EwcCodes) == 0 || value.Description == "") {
		return apperr.BadRequest("a complete waste description needs a waste code, EWC codes and a description")
	}

	transition := Classify(t.WasteDescription.WasteCode, value.WasteCode)

	if transition.ShapeChange() {
		if value.Status == model.SectionStarted {
			value.EwcCodes = nil
			value.NationalCode = nil
			value.Description = ""
		}
		t.Carriers = model.Carriers{
			Status:    model.SectionNotStarted,
			Transport: CarriersTransport(value.WasteCode),
		}
		t.RecoveryFacilityDetail = model.RecoveryFacilityDetail{Status: model.SectionNotStarted}
	} else if transition == TransitionBulkToBulkSameType {
		t.Carriers.Status = model.SectionStarted
		t.RecoveryFacilityDetail.Status = model.SectionStarted
	}

	t.Carriers.Transport = CarriersTransport(value.WasteCode)
	t.WasteDescription = value
	if t.WasteDescription.WasteCode != nil && t.RecoveryFacilityDetail.Status == model.SectionCannotStart {
		t.RecoveryFacilityDetail = model.RecoveryFacilityDetail{Status: model.SectionNotStarted}
	}
	touch(t)
	return nil
}

// SetTemplateSection applies one of the simple section updates and stamps
// the template's lastModified.
func SetTemplateSection(t *model.Template, apply func(*model.Template)) {
	apply(t)
	touch(t)
}

// Templates hold fewer carriers and facilities than drafts: a template
// keeps the standing parties of a repeat route, and the extra slots are
// for per-shipment additions on the draft. Transport details are never
// stored on a template either.
const (
	TemplateCarrierLimit  = model.MaxCarriers - 1
	TemplateFacilityLimit = model.MaxFacilitiesCombined - 1
)

// CreateTemplateCarrier appends a new empty carrier to a template.
func CreateTemplateCarrier(t *model.Template, status model.SectionStatus) (model.Carrier, error) {
	if status != model.SectionStarted {
		return model.Carrier{}, apperr.BadRequestf("carrier cannot be created with status %s", status)
	}
	if len(t.Carriers.Values) >= TemplateCarrierLimit {
		return model.Carrier{}, apperr.BadRequestf("Cannot add more than %d carriers", TemplateCarrierLimit)
	}
	carrier := model.Carrier{ID: uuid.New()}
	t.Carriers.Status = model.SectionStarted
	t.Carriers.Transport = CarriersTransport(t.WasteDescription.WasteCode)
	t.Carriers.Values = append(t.Carriers.Values, carrier)
	touch(t)
	return carrier, nil
}

// SetTemplateCarrier replaces a template carrier in place, stripping any
// transport details.
func SetTemplateCarrier(t *model.Template, id uuid.UUID, value model.Carrier, status model.SectionStatus) error {
	if status != model.SectionStarted && status != model.SectionComplete {
		return apperr.BadRequestf("carrier cannot be set with status %s", status)
	}
	idx := -1
	for i, c := range t.Carriers.Values {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || t.Carriers.Status == model.SectionNotStarted {
		return apperr.NotFound("carrier not found")
	}
	value.ID = id
	value.TransportDetails = nil
	t.Carriers.Values[idx] = value
	if status == model.SectionComplete {
		for _, c := range t.Carriers.Values {
			if c.AddressDetails == nil || c.ContactDetails == nil {
				return apperr.BadRequest("every carrier must be complete before the section can be")
			}
		}
	}
	t.Carriers.Status = status
	touch(t)
	return nil
}

// DeleteTemplateCarrier removes a template carrier.
func DeleteTemplateCarrier(t *model.Template, id uuid.UUID) error {
	if t.Carriers.Status == model.SectionNotStarted {
		return apperr.NotFound("carriers have not been started")
	}
	idx := -1
	for i, c := range t.Carriers.Values {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("carrier not found")
	}
	t.Carriers.Values = append(t.Carriers.Values[:idx], t.Carriers.Values[idx+1:]...)
	if len(t.Carriers.Values) == 0 {
		t.Carriers = model.Carriers{
			Status:    model.SectionNotStarted,
			Transport: CarriersTransport(t.WasteDescription.WasteCode),
		}
	} else {
		t.Carriers.Status = model.SectionStarted
	}
	touch(t)
	return nil
}

func touch(t *model.Template) {
	t.TemplateDetails.LastModified = time.Now().UTC()
}

// DraftFromTemplate instantiates a draft from a template. Section values
// are deep-copied with fresh item identities; the per-shipment sections
// start empty and the gates are recomputed.
func DraftFromTemplate(t *model.Template, id uuid.UUID, reference string) *model.DraftSubmission {
	d := model.NewDraft(id, reference)
	d.WasteDescription = copyWasteDescription(t.WasteDescription)
	d.ExporterDetail = copyExporterDetail(t.ExporterDetail)
	d.ImporterDetail = copyImporterDetail(t.ImporterDetail)
	d.Carriers = copyCarriers(t.Carriers, true)
	d.CollectionDetail = copyCollectionDetail(t.CollectionDetail)
	d.UkExitLocation = copyUkExitLocation(t.UkExitLocation)
	d.TransitCountries = copyTransitCountries(t.TransitCountries)
	d.RecoveryFacilityDetail = copyRecoveryFacilityDetail(t.RecoveryFacilityDetail)

	// Template carriers lack shipment transport details, so a Complete
	// section from a bulk-waste template still needs finishing.
	if d.Carriers.Transport && d.Carriers.Status == model.SectionComplete {
		d.Carriers.Status = model.SectionStarted
	}

	unlockWasteGates(d)
	RecomputeGating(d)
	return d
}

// TemplateFromDraft copies a draft's reusable sections into a new
// template.
func TemplateFromDraft(d *model.DraftSubmission, id uuid.UUID, name, description string) *model.Template {
	t := model.NewTemplate(id, name, description)
	populateTemplate(t,
		d.WasteDescription, d.ExporterDetail, d.ImporterDetail, d.Carriers,
		d.CollectionDetail, d.UkExitLocation, d.TransitCountries, d.RecoveryFacilityDetail)
	return t
}

// TemplateFromSubmission copies a submission's reusable sections into a
// new template.
func TemplateFromSubmission(s *model.Submission, id uuid.UUID, name, description string) *model.Template {
	t := model.NewTemplate(id, name, description)
	populateTemplate(t,
		s.WasteDescription, s.ExporterDetail, s.ImporterDetail, s.Carriers,
		s.CollectionDetail, s.UkExitLocation, s.TransitCountries, s.RecoveryFacilityDetail)
	return t
}

// DraftFromSubmission copies a submission into a fresh draft. Quantity and
// collection date are per-shipment and start over.
func DraftFromSubmission(s *model.Submission, id uuid.UUID, reference string) *model.DraftSubmission {
	d := model.NewDraft(id, reference)
	d.WasteDescription = copyWasteDescription(s.WasteDescription)
	d.ExporterDetail = copyExporterDetail(s.ExporterDetail)
	d.ImporterDetail = copyImporterDetail(s.ImporterDetail)
	d.Carriers = copyCarriers(s.Carriers, false)
	d.CollectionDetail = copyCollectionDetail(s.CollectionDetail)
	d.UkExitLocation = copyUkExitLocation(s.UkExitLocation)
	d.TransitCountries = copyTransitCountries(s.TransitCountries)
	d.RecoveryFacilityDetail = copyRecoveryFacilityDetail(s.RecoveryFacilityDetail)
	unlockWasteGates(d)
	RecomputeGating(d)
	return d
}

func populateTemplate(t *model.Template,
	wd model.WasteDescription, exp model.ExporterDetail, imp model.ImporterDetail,
	carriers model.Carriers, cd model.CollectionDetail, exit model.UkExitLocation,
	transit model.TransitCountries, rfd model.RecoveryFacilityDetail,
) {
	t.WasteDescription = copyWasteDescription(wd)
	t.ExporterDetail = copyExporterDetail(exp)
	t.ImporterDetail = copyImporterDetail(imp)
	t.Carriers = copyCarriers(carriers, true)
	t.CollectionDetail = copyCollectionDetail(cd)
	t.UkExitLocation = copyUkExitLocation(exit)
	t.TransitCountries = copyTransitCountries(transit)
	t.RecoveryFacilityDetail = copyRecoveryFacilityDetail(rfd)

	// Stripped transport details mean bulk-waste carriers cannot stay
	// Complete on a template.
	if t.Carriers.Transport && t.Carriers.Status == model.SectionComplete {
		t.Carriers.Status = model.SectionStarted
	}

	// A draft may carry more items than a template holds; keep the first
	// ones and leave the section Started so the trimmed set gets reviewed.
	if len(t.Carriers.Values) > TemplateCarrierLimit {
		t.Carriers.Values = t.Carriers.Values[:TemplateCarrierLimit]
		t.Carriers.Status = model.SectionStarted
	}
	if len(t.RecoveryFacilityDetail.Values) > TemplateFacilityLimit {
		t.RecoveryFacilityDetail.Values = t.RecoveryFacilityDetail.Values[:TemplateFacilityLimit]
		t.RecoveryFacilityDetail.Status = model.SectionStarted
	}
}

// CreateTemplateRecoveryFacility appends a new empty facility to a
// template.
func CreateTemplateRecoveryFacility(t *model.Template, status model.SectionStatus) (model.RecoveryFacility, error) {
	if t.RecoveryFacilityDetail.Status == model.SectionCannotStart {
		return model.RecoveryFacility{}, apperr.NotFound("recovery facilities cannot start before the waste description")
	}
	if status != model.SectionStarted {
		return model.RecoveryFacility{}, apperr.BadRequestf("recovery facility cannot be created with status %s", status)
	}
	if len(t.RecoveryFacilityDetail.Values) >= TemplateFacilityLimit {
		return model.RecoveryFacility{}, apperr.BadRequestf("Cannot add more than %d recovery facilities", TemplateFacilityLimit)
	}
	facility := model.RecoveryFacility{ID: uuid.New()}
	t.RecoveryFacilityDetail.Status = model.SectionStarted
	t.RecoveryFacilityDetail.Values = append(t.RecoveryFacilityDetail.Values, facility)
	touch(t)
	return facility, nil
}

// SetTemplateRecoveryFacility replaces a template facility in place, with
// the same type legality and per-type bounds as on a draft.
func SetTemplateRecoveryFacility(t *model.Template, id uuid.UUID, value model.RecoveryFacility, status model.SectionStatus) error {
	if status != model.SectionStarted && status != model.SectionComplete {
		return apperr.BadRequestf("recovery facility cannot be set with status %s", status)
	}
	s := t.RecoveryFacilityDetail.Status
	if s == model.SectionNotStarted || s == model.SectionCannotStart {
		return apperr.NotFound("recovery facilities have not been started")
	}
	idx := -1
	for i, f := range t.RecoveryFacilityDetail.Values {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("recovery facility not found")
	}

	if value.FacilityType != nil {
		bulk := t.WasteDescription.WasteCode != nil && t.WasteDescription.WasteCode.Type.Bulk()
		if value.FacilityType.Type == model.FacilityLaboratory && bulk {
			return apperr.BadRequest("Do not enter any laboratory details if you are exporting bulk waste")
		}
		if value.FacilityType.Type != model.FacilityLaboratory && !bulk {
			return apperr.BadRequest("do not enter any recovery facility or interim site details for laboratory waste")
		}

		counts := t.RecoveryFacilityDetail.CountByType()
		if prev := t.RecoveryFacilityDetail.Values[idx].FacilityType; prev != nil {
			counts[prev.Type]--
		}
		counts[value.FacilityType.Type]++
		switch {
		case counts[model.FacilityLaboratory] > model.MaxLaboratories:
			return apperr.BadRequestf("Cannot add more than %d laboratory", model.MaxLaboratories)
		case counts[model.FacilityInterimSite] > model.MaxInterimSites:
			return apperr.BadRequestf("Cannot add more than %d interim site", model.MaxInterimSites)
		case counts[model.FacilityRecoveryFacility] > model.MaxRecoveryFacilities:
			return apperr.BadRequestf("Cannot add more than %d recovery facilities", model.MaxRecoveryFacilities)
		}
	}

	value.ID = id
	t.RecoveryFacilityDetail.Values[idx] = value
	if status == model.SectionComplete {
		for _, f := range t.RecoveryFacilityDetail.Values {
			if f.AddressDetails == nil || f.ContactDetails == nil || f.FacilityType == nil {
				return apperr.BadRequest("every recovery facility must be complete before the section can be")
			}
		}
	}
	t.RecoveryFacilityDetail.Status = status
	touch(t)
	return nil
}

// DeleteTemplateRecoveryFacility removes a template facility.
func DeleteTemplateRecoveryFacility(t *model.Template, id uuid.UUID) error {
	s := t.RecoveryFacilityDetail.Status
	if s == model.SectionNotStarted || s == model.SectionCannotStart {
		return apperr.NotFound("recovery facilities have not been started")
	}
	idx := -1
	for i, f := range t.RecoveryFacilityDetail.Values {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("recovery facility not found")
	}
	t.RecoveryFacilityDetail.Values = append(t.RecoveryFacilityDetail.Values[:idx], t.RecoveryFacilityDetail.Values[idx+1:]...)
	if len(t.RecoveryFacilityDetail.Values) == 0 {
		t.RecoveryFacilityDetail = model.RecoveryFacilityDetail{Status: model.SectionNotStarted}
	} else {
		t.RecoveryFacilityDetail.Status = model.SectionStarted
	}
	touch(t)
	return nil
}
