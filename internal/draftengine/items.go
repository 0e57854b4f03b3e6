package draftengine

import (
	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/model"
)

// Multi-item section operations. Identity is assigned at creation and
// preserved across edits; cardinality bounds are enforced at create-time.

// CreateCarrier appends a new empty carrier and returns it. The caller
// must supply status Started, matching how the wizard begins a new item.
func CreateCarrier(d *model.DraftSubmission, status model.SectionStatus) (model.Carrier, error) {
	if err := checkWriteable(d); err != nil {
		return model.Carrier{}, err
	}
	if status != model.SectionStarted {
		return model.Carrier{}, apperr.BadRequestf("carrier cannot be created with status %s", status)
	}
	if len(d.Carriers.Values) >= model.MaxCarriers {
		return model.Carrier{}, apperr.BadRequestf("Cannot add more than %d carriers", model.MaxCarriers)
	}

	carrier := model.Carrier{ID: uuid.New()}
	d.Carriers.Status = model.SectionStarted
	d.Carriers.Transport = CarriersTransport(d.WasteDescription.WasteCode)
	d.Carriers.Values = append(d.Carriers.Values, carrier)
	RecomputeGating(d)
	return carrier, nil
}

// GetCarrier returns the carrier with the given id.
func GetCarrier(d *model.DraftSubmission, id uuid.UUID) (model.Carrier, error) {
	if d.Carriers.Status == model.SectionNotStarted || d.Carriers.Status == model.SectionCannotStart {
		return model.Carrier{}, apperr.NotFound("carriers have not been started")
	}
	for _, c := range d.Carriers.Values {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Carrier{}, apperr.NotFound("carrier not found")
}

// SetCarrier replaces the carrier with the given id in place. The section
// takes the caller-supplied status; Complete requires every carrier to be
// fully populated. Transport details are only legal when transport applies.
func SetCarrier(d *model.DraftSubmission, id uuid.UUID, value model.Carrier, status model.SectionStatus) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if status != model.SectionStarted && status != model.SectionComplete {
		return apperr.BadRequestf("carrier cannot be set with status %s", status)
	}
	if !d.Carriers.Transport && value.TransportDetails != nil {
		return apperr.BadRequest("do not enter any means of transport details for laboratory waste")
	}

	idx := -1
	for i, c := range d.Carriers.Values {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 || d.Carriers.Status == model.SectionNotStarted || d.Carriers.Status == model.SectionCannotStart {
		return apperr.NotFound("carrier not found")
	}

	value.ID = id
	d.Carriers.Values[idx] = value

	if status == model.SectionComplete {
		for _, c := range d.Carriers.Values {
			if !carrierComplete(c, d.Carriers.Transport) {
				return apperr.BadRequest("every carrier must be complete before the section can be")
			}
		}
	}
	d.Carriers.Status = status
	RecomputeGating(d)
	return nil
}

// DeleteCarrier removes the carrier with the given id. Deleting the last
// carrier reverts the whole section to NotStarted.
func DeleteCarrier(d *model.DraftSubmission, id uuid.UUID) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if d.Carriers.Status == model.SectionNotStarted || d.Carriers.Status == model.SectionCannotStart {
		return apperr.NotFound("carriers have not been started")
	}
	idx := -1
	for i, c := range d.Carriers.Values {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("carrier not found")
	}

	d.Carriers.Values = append(d.Carriers.Values[:idx], d.Carriers.Values[idx+1:]...)
	if len(d.Carriers.Values) == 0 {
		d.Carriers = model.Carriers{
			Status:    model.SectionNotStarted,
			Transport: CarriersTransport(d.WasteDescription.WasteCode),
		}
	} else {
		d.Carriers.Status = model.SectionStarted
	}
	RecomputeGating(d)
	return nil
}

func carrierComplete(c model.Carrier, transport bool) bool {
	if c.AddressDetails == nil || c.ContactDetails == nil {
		return false
	}
	if transport && c.TransportDetails == nil {
		return false
	}
	return true
}

// CreateRecoveryFacility appends a new empty facility item. The caller
// must supply status Started. The combined bound covers recovery
// facilities, interim sites and laboratories together; per-type bounds are
// checked once the item's type is set.
func CreateRecoveryFacility(d *model.DraftSubmission, status model.SectionStatus) (model.RecoveryFacility, error) {
	if err := checkWriteable(d); err != nil {
		return model.RecoveryFacility{}, err
	}
	if d.RecoveryFacilityDetail.Status == model.SectionCannotStart {
		return model.RecoveryFacility{}, apperr.NotFound("recovery facilities cannot start before the waste description")
	}
	if status != model.SectionStarted {
		return model.RecoveryFacility{}, apperr.BadRequestf("recovery facility cannot be created with status %s", status)
	}
	if len(d.RecoveryFacilityDetail.Values) >= model.MaxFacilitiesCombined {
		return model.RecoveryFacility{}, apperr.BadRequestf("Cannot add more than %d recovery facilities", model.MaxFacilitiesCombined)
	}

	facility := model.RecoveryFacility{ID: uuid.New()}
	d.RecoveryFacilityDetail.Status = model.SectionStarted
	d.RecoveryFacilityDetail.Values = append(d.RecoveryFacilityDetail.Values, facility)
	RecomputeGating(d)
	return facility, nil
}

// GetRecoveryFacility returns the facility with the given id.
func GetRecoveryFacility(d *model.DraftSubmission, id uuid.UUID) (model.RecoveryFacility, error) {
	s := d.RecoveryFacilityDetail.Status
	if s == model.SectionNotStarted || s == model.SectionCannotStart {
		return model.RecoveryFacility{}, apperr.NotFound("recovery facilities have not been started")
	}
	for _, f := range d.RecoveryFacilityDetail.Values {
		if f.ID == id {
			return f, nil
		}
	}
	return model.RecoveryFacility{}, apperr.NotFound("recovery facility not found")
}

// SetRecoveryFacility replaces the facility with the given id. Facility
// type legality follows the waste code: laboratories only for laboratory
// waste, recovery facilities and interim sites only for bulk waste.
func SetRecoveryFacility(d *model.DraftSubmission, id uuid.UUID, value model.RecoveryFacility, status model.SectionStatus) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	if status != model.SectionStarted && status != model.SectionComplete {
		return apperr.BadRequestf("recovery facility cannot be set with status %s", status)
	}
	s := d.RecoveryFacilityDetail.Status
	if s == model.SectionNotStarted || s == model.SectionCannotStart {
		return apperr.NotFound("recovery facilities have not been started")
	}

	idx := -1
	for i, f := range d.RecoveryFacilityDetail.Values {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("recovery facility not found")
	}

	if value.FacilityType != nil {
		bulk := d.WasteDescription.WasteCode != nil && d.WasteDescription.WasteCode.Type.Bulk()
		if value.FacilityType.Type == model.FacilityLaboratory && bulk {
			return apperr.BadRequest("Do not enter any laboratory details if you are exporting bulk waste")
		}
		if value.FacilityType.Type != model.FacilityLaboratory && !bulk {
			return apperr.BadRequest("do not enter any recovery facility or interim site details for laboratory waste")
		}

		counts := d.RecoveryFacilityDetail.CountByType()
		if prev := d.RecoveryFacilityDetail.Values[idx].FacilityType; prev != nil {
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
	d.RecoveryFacilityDetail.Values[idx] = value

	if status == model.SectionComplete {
		for _, f := range d.RecoveryFacilityDetail.Values {
			if f.AddressDetails == nil || f.ContactDetails == nil || f.FacilityType == nil {
				return apperr.BadRequest("every recovery facility must be complete before the section can be")
			}
		}
	}
	d.RecoveryFacilityDetail.Status = status
	RecomputeGating(d)
	return nil
}

// DeleteRecoveryFacility removes the facility with the given id. Deleting
// the last one reverts the section to NotStarted.
func DeleteRecoveryFacility(d *model.DraftSubmission, id uuid.UUID) error {
	if err := checkWriteable(d); err != nil {
		return err
	}
	s := d.RecoveryFacilityDetail.Status
	if s == model.SectionNotStarted || s == model.SectionCannotStart {
		return apperr.NotFound("recovery facilities have not been started")
	}
	idx := -1
	for i, f := range d.RecoveryFacilityDetail.Values {
		if f.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("recovery facility not found")
	}

	d.RecoveryFacilityDetail.Values = append(d.RecoveryFacilityDetail.Values[:idx], d.RecoveryFacilityDetail.Values[idx+1:]...)
	if len(d.RecoveryFacilityDetail.Values) == 0 {
		d.RecoveryFacilityDetail = model.RecoveryFacilityDetail{Status: model.SectionNotStarted}
	} else {
		d.RecoveryFacilityDetail.Status = model.SectionStarted
	}
	RecomputeGating(d)
	return nil
}
