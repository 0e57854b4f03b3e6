package bulk

import (
	"testing"

	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/refdata"
	"github.com/greenlist/annexvii/internal/validation"
)

// validBulkRow is a fully valid bulk-waste row: AnnexIIIA combined code,
// actual weight, one carrier, one recovery facility.
func validBulkRow() FlatRow {
	row := FlatRow{
		Reference:        "REF-2026-001",
		AnnexIIIACode:    "B1010 and B1050",
		EwcCodes:         "010101;010102",
		WasteDescription: "mixed metal turnings",

		WasteQuantityTonnes:            "12.5",
		EstimatedOrActualWasteQuantity: "Actual",

		ExporterOrganisationName:   "Greenlist Ltd",
		ExporterAddressLine1:       "2 Dock Rd",
		ExporterTownOrCity:         "Bristol",
		ExporterCountry:            "United Kingdom (England) [GB-ENG]",
		ExporterPostcode:           "BS1 4AQ",
		ExporterContactFullName:    "A Smith",
		ExporterContactPhoneNumber: "01179000000",
		ExporterEmailAddress:       "a@greenlist.example",

		ImporterOrganisationName:   "Acme Recycling",
		ImporterAddress:            "1 Quay St, Calais",
		ImporterCountry:            "France",
		ImporterContactFullName:    "J Dupont",
		ImporterContactPhoneNumber: "0033111222333",
		ImporterEmailAddress:       "j@acme.example",

		WasteCollectionDate:             "01/10/2026",
		EstimatedOrActualCollectionDate: "Actual",

		WasteCollectionOrganisationName:   "Greenlist Ltd",
		WasteCollectionAddressLine1:       "2 Dock Rd",
		WasteCollectionTownOrCity:         "Bristol",
		WasteCollectionCountry:            "United Kingdom (England) [GB-ENG]",
		WasteCollectionContactFullName:    "A Smith",
		WasteCollectionContactPhoneNumber: "01179000000",
		WasteCollectionEmailAddress:       "a@greenlist.example",

		WhereWasteLeavesUk: "Dover",
		TransitCountries:   "Belgium;Netherlands",
	}
	row.Carriers[0] = CarrierColumns{
		OrganisationName:        "Midway Haulage",
		Address:                 "3 Freight Park, Ashford",
		Country:                 "United Kingdom (England) [GB-ENG]",
		ContactFullName:         "B Jones",
		ContactPhoneNumber:      "01233111222",
		EmailAddress:            "b@midway.example",
		MeansOfTransport:        "Road",
		MeansOfTransportDetails: "articulated lorry",
	}
	row.RecoveryFacilities[0] = FacilityColumns{
		OrganisationName:   "Acme Recycling",
		Address:            "1 Quay St, Calais",
		Country:            "France",
		ContactFullName:    "J Dupont",
		ContactPhoneNumber: "0033111222333",
		EmailAddress:       "j@acme.example",
		Code:               "R4",
	}
	return row
}

// validSmallRow is a fully valid laboratory-waste row: estimate volume in
// litres, no transport details, one laboratory.
func validSmallRow() FlatRow {
	row := validBulkRow()
	row.AnnexIIIACode = ""
	row.Laboratory = "Yes"
	row.WasteQuantityTonnes = ""
	row.WasteQuantityKilograms = "20"
	row.EstimatedOrActualWasteQuantity = "Estimate"
	row.Carriers[0].MeansOfTransport = ""
	row.Carriers[0].MeansOfTransportDetails = ""
	row.RecoveryFacilities[0] = FacilityColumns{}
	row.LaboratoryDetails = FacilityColumns{
		OrganisationName:   "Trace Labs",
		Address:            "9 Chemin Vert, Lyon",
		Country:            "France",
		ContactFullName:    "C Martin",
		ContactPhoneNumber: "0033444555666",
		EmailAddress:       "c@tracelabs.example",
		Code:               "D9",
	}
	return row
}

func newTestValidator() *Validator {
	return NewValidator(refdata.Default(), validation.LocaleEN)
}

func TestValidateRow_BulkRowProducesSubmission(t *testing.T) {
	res := newTestValidator().ValidateRow(validBulkRow(), 1)
	if !res.Valid() {
		t.Fatalf("field errors %+v, combination errors %+v", res.FieldErrors, res.CombinationErrors)
	}
	s := res.Submission
	if s == nil {
		t.Fatal("no submission assembled")
	}
	if s.WasteDescription.WasteCode.Type != model.WasteCodeAnnexIIIA {
		t.Errorf("code type = %s", s.WasteDescription.WasteCode.Type)
	}
	if got := s.WasteQuantity.ActualData; got == nil || got.Unit != model.UnitTonne || got.Value != 12.5 {
		t.Errorf("quantity = %+v, want 12.5 tonnes actual", got)
	}
	if s.SubmissionState.Status != model.StateSubmittedWithActuals {
		t.Errorf("state = %s, want SubmittedWithActuals", s.SubmissionState.Status)
	}
	if len(s.Carriers.Values) != 1 || !s.Carriers.Transport {
		t.Errorf("carriers = %+v", s.Carriers)
	}
	if len(s.TransitCountries.Values) != 2 || s.TransitCountries.Values[0] != "Belgium [BE]" {
		t.Errorf("transit = %v", s.TransitCountries.Values)
	}
	statuses := []model.SectionStatus{
		s.WasteDescription.Status, s.WasteQuantity.Status, s.ExporterDetail.Status,
		s.ImporterDetail.Status, s.CollectionDate.Status, s.Carriers.Status,
		s.CollectionDetail.Status, s.UkExitLocation.Status, s.TransitCountries.Status,
		s.RecoveryFacilityDetail.Status,
	}
	for i, st := range statuses {
		if st != model.SectionComplete {
			t.Errorf("section %d = %s, want Complete", i, st)
		}
	}
}

func TestValidateRow_SmallRowProducesSubmission(t *testing.T) {
	res := newTestValidator().ValidateRow(validSmallRow(), 1)
	if !res.Valid() {
		t.Fatalf("field errors %+v, combination errors %+v", res.FieldErrors, res.CombinationErrors)
	}
	s := res.Submission
	if s.WasteDescription.WasteCode.Type != model.WasteCodeNotApplicable {
		t.Errorf("code type = %s", s.WasteDescription.WasteCode.Type)
	}
	if got := s.WasteQuantity.EstimateData; got == nil || got.Unit != model.UnitKilogram {
		t.Errorf("quantity = %+v, want kilograms estimate", got)
	}
	if s.SubmissionState.Status != model.StateSubmittedWithEstimates {
		t.Errorf("state = %s, want SubmittedWithEstimates", s.SubmissionState.Status)
	}
	if s.Carriers.Transport {
		t.Error("transport flag should be off for laboratory waste")
	}
	if len(s.RecoveryFacilityDetail.Values) != 1 ||
		s.RecoveryFacilityDetail.Values[0].FacilityType.Type != model.FacilityLaboratory {
		t.Errorf("facilities = %+v", s.RecoveryFacilityDetail.Values)
	}
}

func TestValidateRow_MisspelledQuantityDiscriminator(t *testing.T) {
	row := validBulkRow()
	row.EstimatedOrActualWasteQuantity = "Actuals"
	res := newTestValidator().ValidateRow(row, 1)
	if res.Valid() {
		t.Fatal("row should be invalid")
	}
	if len(res.FieldErrors) != 1 {
		t.Fatalf("got %d field errors, want exactly 1: %+v", len(res.FieldErrors), res.FieldErrors)
	}
	want := validation.MessageFor(validation.KeyWasteQuantityMissingType, validation.LocaleEN, validation.ContextCSV)
	if res.FieldErrors[0].Message != want {
		t.Errorf("message = %q, want %q", res.FieldErrors[0].Message, want)
	}
	if len(res.CombinationErrors) != 0 {
		t.Errorf("no combination errors expected, got %+v", res.CombinationErrors)
	}
}

func TestValidateRow_WasteCodeColumnCount(t *testing.T) {
	v := newTestValidator()

	none := validBulkRow()
	none.AnnexIIIACode = ""
	res := v.ValidateRow(none, 1)
	wantEmpty := validation.MessageFor(validation.KeyEmptyWasteCodeType, validation.LocaleEN, validation.ContextCSV)
	if res.Valid() || !hasMessage(res.FieldErrors, wantEmpty) {
		t.Errorf("no code column: errors = %+v, want %q", res.FieldErrors, wantEmpty)
	}

	two := validBulkRow()
	two.BaselAnnexIXCode = "B1010"
	res = v.ValidateRow(two, 1)
	wantTooMany := validation.MessageFor(validation.KeyTooManyWasteCodeType, validation.LocaleEN, validation.ContextCSV)
	if res.Valid() || !hasMessage(res.FieldErrors, wantTooMany) {
		t.Errorf("two code columns: errors = %+v, want %q", res.FieldErrors, wantTooMany)
	}
}

func TestValidateRow_AccumulatesAcrossSections(t *testing.T) {
	row := validBulkRow()
	row.Reference = ""
	row.EwcCodes = "999999"
	row.ImporterCountry = "Atlantis"
	res := newTestValidator().ValidateRow(row, 1)
	if res.Valid() {
		t.Fatal("row should be invalid")
	}
	if len(res.FieldErrors) != 3 {
		t.Errorf("got %d field errors, want 3: %+v", len(res.FieldErrors), res.FieldErrors)
	}
}

func TestValidateRow_CrossChecksSkipInvalidSections(t *testing.T) {
	// An invalid waste code means the code/quantity combination cannot be
	// judged, so only the field error is reported.
	row := validBulkRow()
	row.AnnexIIIACode = "B9999 and B8888"
	res := newTestValidator().ValidateRow(row, 1)
	if res.Valid() {
		t.Fatal("row should be invalid")
	}
	if len(res.CombinationErrors) != 0 {
		t.Errorf("combination errors should be skipped, got %+v", res.CombinationErrors)
	}
}

func TestValidateRow_BulkQuantityInKilogramsConflicts(t *testing.T) {
	row := validBulkRow()
	row.WasteQuantityTonnes = ""
	row.WasteQuantityKilograms = "20"
	res := newTestValidator().ValidateRow(row, 1)
	if res.Valid() {
		t.Fatal("row should be invalid")
	}
	if len(res.FieldErrors) != 0 {
		t.Errorf("field errors = %+v, want none", res.FieldErrors)
	}
	if len(res.CombinationErrors) != 1 {
		t.Fatalf("combination errors = %+v, want 1", res.CombinationErrors)
	}
}

func TestValidateRow_TransportOnLaboratoryWasteConflicts(t *testing.T) {
	row := validSmallRow()
	row.Carriers[0].MeansOfTransport = "Road"
	row.Carriers[0].MeansOfTransportDetails = "van"
	res := newTestValidator().ValidateRow(row, 1)
	if res.Valid() {
		t.Fatal("row should be invalid")
	}
	if len(res.CombinationErrors) != 1 {
		t.Errorf("combination errors = %+v, want 1", res.CombinationErrors)
	}
}

func TestValidateRow_FirstCarrierMandatory(t *testing.T) {
	row := validBulkRow()
	row.Carriers[0] = CarrierColumns{}
	res := newTestValidator().ValidateRow(row, 1)
	if res.Valid() {
		t.Fatal("row should be invalid")
	}
	found := false
	for _, e := range res.FieldErrors {
		if e.Field == validation.FieldCarriers && e.Index == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("no first-carrier errors in %+v", res.FieldErrors)
	}
}

func TestValidateRow_BlankLaterCarrierSlotsSkipped(t *testing.T) {
	res := newTestValidator().ValidateRow(validBulkRow(), 1)
	if !res.Valid() {
		t.Fatalf("errors = %+v", res.FieldErrors)
	}
	if len(res.Submission.Carriers.Values) != 1 {
		t.Errorf("got %d carriers, want 1", len(res.Submission.Carriers.Values))
	}
}

func TestValidateRow_BulkNeedsRecoveryFacility(t *testing.T) {
	row := validBulkRow()
	row.RecoveryFacilities[0] = FacilityColumns{}
	res := newTestValidator().ValidateRow(row, 1)
	if res.Valid() {
		t.Fatal("bulk waste with no recovery facility should be invalid")
	}
	found := false
	for _, e := range res.FieldErrors {
		if e.Field == validation.FieldRecoveryFacilityDetail {
			found = true
		}
	}
	if !found {
		t.Errorf("no facility errors in %+v", res.FieldErrors)
	}
}

func TestValidateRow_SmallNeedsLaboratory(t *testing.T) {
	row := validSmallRow()
	row.LaboratoryDetails = FacilityColumns{}
	res := newTestValidator().ValidateRow(row, 1)
	if res.Valid() {
		t.Fatal("laboratory waste with no laboratory should be invalid")
	}
}

func TestValidateRows_Indexes(t *testing.T) {
	rows := []FlatRow{validBulkRow(), validSmallRow()}
	results := newTestValidator().ValidateRows(rows)
	if len(results) != 2 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Index != 1 || results[1].Index != 2 {
		t.Errorf("indexes = %d, %d, want 1, 2", results[0].Index, results[1].Index)
	}
}

func hasMessage(errs []validation.FieldFormatError, message string) bool {
	for _, e := range errs {
		if e.Message == message {
			return true
		}
	}
	return false
}
