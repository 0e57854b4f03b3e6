package bulk

import (
	"strings"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/refdata"
	"github.com/greenlist/annexvii/internal/validation"
)

// RowResult is the outcome for one CSV row: either a complete submission
// value or the full list of problems found.
type RowResult struct {
	Index             int                                           `json:"index"`
	FieldErrors       []validation.FieldFormatError                 `json:"fieldFormatErrors,omitempty"`
	CombinationErrors []validation.InvalidAttributeCombinationError `json:"invalidStructureErrors,omitempty"`
	Submission        *model.Submission                             `json:"value,omitempty"`
}

// Valid reports whether the row produced a submission.
func (r RowResult) Valid() bool {
	return len(r.FieldErrors) == 0 && len(r.CombinationErrors) == 0
}

// Validator validates flat rows against the reference data.
type Validator struct {
	ref *refdata.Store
	loc validation.Locale
}

// NewValidator builds a row validator for the given locale.
func NewValidator(ref *refdata.Store, loc validation.Locale) *Validator {
	return &Validator{ref: ref, loc: loc}
}

const msgCtx = validation.ContextCSV

// ValidateRow validates one row completely, accumulating every field
// error. Cross-section checks run only among the sections that validated
// on their own.
func (v *Validator) ValidateRow(row FlatRow, index int) RowResult {
	out := RowResult{Index: index}
	fail := func(errs ...validation.FieldFormatError) {
		out.FieldErrors = append(out.FieldErrors, errs...)
	}

	refRes := validation.Reference(row.Reference, v.loc, msgCtx)
	if !refRes.Valid {
		fail(refRes.Errors...)
	}

	wcRes := v.wasteCode(row)
	if !wcRes.Valid {
		fail(wcRes.Errors...)
	}

	ewcRes := validation.EwcCodes(splitList(row.EwcCodes), v.ref, v.loc, msgCtx)
	if !ewcRes.Valid {
		fail(ewcRes.Errors...)
	}
	natRes := validation.NationalCode(row.NationalCode, v.loc, msgCtx)
	if !natRes.Valid {
		fail(natRes.Errors...)
	}
	descRes := validation.WasteDescriptionText(row.WasteDescription, v.loc, msgCtx)
	if !descRes.Valid {
		fail(descRes.Errors...)
	}

	qtyRes := validation.WasteQuantity(
		row.EstimatedOrActualWasteQuantity,
		row.WasteQuantityTonnes, row.WasteQuantityCubicMetres, row.WasteQuantityKilograms,
		v.loc, msgCtx)
	if !qtyRes.Valid {
		fail(qtyRes.Errors...)
	}

	expRes := validation.ExporterDetail(validation.ExporterDetailInput{
		AddressLine1:     row.ExporterAddressLine1,
		AddressLine2:     row.ExporterAddressLine2,
		TownCity:         row.ExporterTownOrCity,
		Postcode:         row.ExporterPostcode,
		Country:          row.ExporterCountry,
		OrganisationName: row.ExporterOrganisationName,
		FullName:         row.ExporterContactFullName,
		EmailAddress:     row.ExporterEmailAddress,
		PhoneNumber:      row.ExporterContactPhoneNumber,
		FaxNumber:        row.ExporterFaxNumber,
	}, v.ref, v.loc, msgCtx)
	if !expRes.Valid {
		fail(expRes.Errors...)
	}

	impRes := validation.ImporterDetail(validation.ImporterDetailInput{
		OrganisationName: row.ImporterOrganisationName,
		Address:          row.ImporterAddress,
		Country:          row.ImporterCountry,
		FullName:         row.ImporterContactFullName,
		EmailAddress:     row.ImporterEmailAddress,
		PhoneNumber:      row.ImporterContactPhoneNumber,
		FaxNumber:        row.ImporterFaxNumber,
	}, v.ref, v.loc, msgCtx)
	if !impRes.Valid {
		fail(impRes.Errors...)
	}

	dateRes := validation.CollectionDate(row.EstimatedOrActualCollectionDate, row.WasteCollectionDate, v.loc, msgCtx)
	if !dateRes.Valid {
		fail(dateRes.Errors...)
	}

	bulkWaste := v.rowIsBulk(row, wcRes)

	carriers, carriersHaveTransport := v.carriers(row, bulkWaste, fail)

	colRes := validation.CollectionDetail(validation.CollectionDetailInput{
		AddressLine1:     row.WasteCollectionAddressLine1,
		AddressLine2:     row.WasteCollectionAddressLine2,
		TownCity:         row.WasteCollectionTownOrCity,
		Postcode:         row.WasteCollectionPostcode,
		Country:          row.WasteCollectionCountry,
		OrganisationName: row.WasteCollectionOrganisationName,
		FullName:         row.WasteCollectionContactFullName,
		EmailAddress:     row.WasteCollectionEmailAddress,
		PhoneNumber:      row.WasteCollectionContactPhoneNumber,
		FaxNumber:        row.WasteCollectionFaxNumber,
	}, v.ref, v.loc, msgCtx)
	if !colRes.Valid {
		fail(colRes.Errors...)
	}

	exitRes := validation.UkExitLocationValue(row.WhereWasteLeavesUk, v.loc, msgCtx)
	if !exitRes.Valid {
		fail(exitRes.Errors...)
	}

	transitRes := validation.TransitCountries(splitList(row.TransitCountries), v.ref, v.loc, msgCtx)
	if !transitRes.Valid {
		fail(transitRes.Errors...)
	}

	facilities, hasLaboratory, hasRecoveryOrInterim := v.facilities(row, bulkWaste, fail)

	// Cross-section rules, among valid sections only.
	if wcRes.Valid && qtyRes.Valid {
		if e := validation.CheckWasteCodeQuantity(wcRes.Value, qtyRes.Value, v.loc, msgCtx); e != nil {
			out.CombinationErrors = append(out.CombinationErrors, *e)
		}
	}
	if wcRes.Valid {
		if e := validation.CheckWasteCodeCarriers(wcRes.Value, carriersHaveTransport, v.loc, msgCtx); e != nil {
			out.CombinationErrors = append(out.CombinationErrors, *e)
		}
		out.CombinationErrors = append(out.CombinationErrors,
			validation.CheckWasteCodeFacilities(wcRes.Value.Type, hasLaboratory, hasRecoveryOrInterim, v.loc, msgCtx)...)
	}
	if impRes.Valid && transitRes.Valid {
		if e := validation.CheckImporterTransit(impRes.Value, transitRes.Value, v.loc, msgCtx); e != nil {
			out.CombinationErrors = append(out.CombinationErrors, *e)
		}
	}

	if !out.Valid() {
		return out
	}

	out.Submission = assemble(refRes.Value, wcRes.Value, ewcRes.Value, natRes.Value,
		descRes.Value, qtyRes.Value, expRes.Value, impRes.Value, dateRes.Value,
		carriers, bulkWaste, colRes.Value, exitRes.Value, transitRes.Value, facilities)
	return out
}

// ValidateRows validates every row. Indexes are 1-based over the given
// rows; callers dealing with files add their own header offset.
func (v *Validator) ValidateRows(rows []FlatRow) []RowResult {
	out := make([]RowResult, 0, len(rows))
	for i, row := range rows {
		out = append(out, v.ValidateRow(row, i+1))
	}
	return out
}

// wasteCode picks the populated code column and validates it. Exactly one
// of the five columns may be set; the laboratory column marks small waste
// with no code.
func (v *Validator) wasteCode(row FlatRow) validation.Result[model.WasteCode] {
	type column struct {
		value    string
		codeType model.WasteCodeType
	}
	var populated []column
	for _, c := range []column{
		{row.BaselAnnexIXCode, model.WasteCodeBaselAnnexIX},
		{row.OecdCode, model.WasteCodeOECD},
		{row.AnnexIIIACode, model.WasteCodeAnnexIIIA},
		{row.AnnexIIIBCode, model.WasteCodeAnnexIIIB},
		{row.Laboratory, model.WasteCodeNotApplicable},
	} {
		if strings.TrimSpace(c.value) != "" {
			populated = append(populated, c)
		}
	}
	switch len(populated) {
	case 0:
		return validation.Fail[model.WasteCode](validation.FieldFormat(
			validation.FieldWasteDescription, validation.KeyEmptyWasteCodeType, v.loc, msgCtx))
	case 1:
		c := populated[0]
		if c.codeType == model.WasteCodeNotApplicable {
			return validation.Ok(model.WasteCode{Type: c.codeType})
		}
		return validation.WasteCode(string(c.codeType), c.value, v.ref, v.loc, msgCtx)
	default:
		return validation.Fail[model.WasteCode](validation.FieldFormat(
			validation.FieldWasteDescription, validation.KeyTooManyWasteCodeType, v.loc, msgCtx))
	}
}

// rowIsBulk decides the waste shape for dependent sections. When the code
// column itself failed, the laboratory column still tells us which shape
// the exporter intended.
func (v *Validator) rowIsBulk(row FlatRow, wcRes validation.Result[model.WasteCode]) bool {
	if wcRes.Valid {
		return wcRes.Value.Type.Bulk()
	}
	return strings.TrimSpace(row.Laboratory) == ""
}

func (v *Validator) carriers(row FlatRow, bulkWaste bool, fail func(...validation.FieldFormatError)) ([]model.Carrier, bool) {
	var out []model.Carrier
	haveTransport := false
	for i, cols := range row.Carriers {
		in := validation.CarrierInput{
			OrganisationName:        cols.OrganisationName,
			Address:                 cols.Address,
			Country:                 cols.Country,
			FullName:                cols.ContactFullName,
			EmailAddress:            cols.EmailAddress,
			PhoneNumber:             cols.ContactPhoneNumber,
			FaxNumber:               cols.FaxNumber,
			MeansOfTransport:        cols.MeansOfTransport,
			MeansOfTransportDetails: cols.MeansOfTransportDetails,
		}
		// The first carrier is mandatory; later slots are validated only
		// when any of their columns is populated.
		if i > 0 && in.Blank() {
			continue
		}
		if in.HasTransport() {
			haveTransport = true
		}
		res := validation.Carrier(in, bulkWaste, i+1, v.ref, v.loc, msgCtx)
		if !res.Valid {
			fail(res.Errors...)
			continue
		}
		out = append(out, res.Value)
	}
	return out, haveTransport
}

func (v *Validator) facilities(row FlatRow, bulkWaste bool, fail func(...validation.FieldFormatError)) ([]model.RecoveryFacility, bool, bool) {
	var out []model.RecoveryFacility
	hasLaboratory := false
	hasRecoveryOrInterim := false
	index := 0

	validate := func(cols FacilityColumns, t model.FacilityType) {
		index++
		res := validation.RecoveryFacilityEntry(validation.RecoveryFacilityInput{
			OrganisationName: cols.OrganisationName,
			Address:          cols.Address,
			Country:          cols.Country,
			FullName:         cols.ContactFullName,
			EmailAddress:     cols.EmailAddress,
			PhoneNumber:      cols.ContactPhoneNumber,
			FaxNumber:        cols.FaxNumber,
			Code:             cols.Code,
		}, t, index, v.ref, v.loc, msgCtx)
		if !res.Valid {
			fail(res.Errors...)
			return
		}
		out = append(out, res.Value)
	}

	if !facilityBlank(row.InterimSite) {
		hasRecoveryOrInterim = true
		validate(row.InterimSite, model.FacilityInterimSite)
	}
	if !facilityBlank(row.LaboratoryDetails) {
		hasLaboratory = true
		validate(row.LaboratoryDetails, model.FacilityLaboratory)
	}
	recoveryPresent := false
	for _, cols := range row.RecoveryFacilities {
		if facilityBlank(cols) {
			continue
		}
		recoveryPresent = true
		hasRecoveryOrInterim = true
		validate(cols, model.FacilityRecoveryFacility)
	}

	// Each shape requires its own treatment site: a laboratory for small
	// waste, at least one recovery facility for bulk waste. Validating the
	// empty first group surfaces the per-column errors.
	if bulkWaste && !recoveryPresent {
		validate(row.RecoveryFacilities[0], model.FacilityRecoveryFacility)
	}
	if !bulkWaste && !hasLaboratory {
		validate(row.LaboratoryDetails, model.FacilityLaboratory)
	}
	return out, hasLaboratory, hasRecoveryOrInterim
}

func facilityBlank(cols FacilityColumns) bool {
	return cols.OrganisationName == "" && cols.Address == "" && cols.Country == "" &&
		cols.ContactFullName == "" && cols.ContactPhoneNumber == "" &&
		cols.FaxNumber == "" && cols.EmailAddress == "" && cols.Code == ""
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ";")
}

func assemble(reference string, wasteCode model.WasteCode, ewcCodes []string,
	nationalCode model.OptionalString, description string, quantity model.WasteQuantity,
	exporter model.ExporterDetail, importer model.ImporterDetail, date model.CollectionDate,
	carriers []model.Carrier, bulkWaste bool, collection model.CollectionDetail,
	exitLocation model.OptionalString, transit []string, facilities []model.RecoveryFacility,
) *model.Submission {
	for i := range carriers {
		carriers[i].ID = uuid.New()
	}
	for i := range facilities {
		facilities[i].ID = uuid.New()
	}

	state := model.StateSubmittedWithActuals
	if quantity.Kind == model.QuantityEstimate || date.Kind == model.DateEstimate {
		state = model.StateSubmittedWithEstimates
	}

	return &model.Submission{
		ID:        uuid.New(),
		Reference: reference,
		WasteDescription: model.WasteDescription{
			Status:       model.SectionComplete,
			WasteCode:    &wasteCode,
			EwcCodes:     ewcCodes,
			NationalCode: &nationalCode,
			Description:  description,
		},
		WasteQuantity:  quantity,
		ExporterDetail: exporter,
		ImporterDetail: importer,
		CollectionDate: date,
		Carriers: model.Carriers{
			Status:    model.SectionComplete,
			Transport: bulkWaste,
			Values:    carriers,
		},
		CollectionDetail: collection,
		UkExitLocation: model.UkExitLocation{
			Status:       model.SectionComplete,
			ExitLocation: &exitLocation,
		},
		TransitCountries: model.TransitCountries{
			Status: model.SectionComplete,
			Values: transit,
		},
		RecoveryFacilityDetail: model.RecoveryFacilityDetail{
			Status: model.SectionComplete,
			Values: facilities,
		},
		SubmissionState: model.SubmissionState{Status: state},
	}
}
