package draftengine

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/model"
)

func bulkCode(code string) *model.WasteCode {
	return &model.WasteCode{Type: model.WasteCodeAnnexIIIA, Code: code}
}

func smallCode() *model.WasteCode {
	return &model.WasteCode{Type: model.WasteCodeNotApplicable}
}

func completeDescription(code *model.WasteCode) model.WasteDescription {
	return model.WasteDescription{
		Status:      model.SectionComplete,
		WasteCode:   code,
		EwcCodes:    []string{"010101"},
		Description: "metal turnings",
	}
}

func testAddress() *model.EntityAddress {
	return &model.EntityAddress{OrganisationName: "Acme Recycling", Address: "1 Quay St", Country: "France"}
}

func testContact() *model.EntityContact {
	return &model.EntityContact{FullName: "J Dupont", EmailAddress: "j@acme.example", PhoneNumber: "0033111222"}
}

// draftWithCarriers builds a bulk-waste draft with one complete carrier
// and one complete recovery facility, ready for cascade tests.
func draftWithCarriers(t *testing.T) *model.DraftSubmission {
	t.Helper()
	d := model.NewDraft(uuid.New(), "REF-001")
	if err := SetWasteDescription(d, completeDescription(bulkCode("B1010"))); err != nil {
		t.Fatalf("SetWasteDescription: %v", err)
	}
	c, err := CreateCarrier(d, model.SectionStarted)
	if err != nil {
		t.Fatalf("CreateCarrier: %v", err)
	}
	carrier := model.Carrier{
		AddressDetails:   testAddress(),
		ContactDetails:   testContact(),
		TransportDetails: &model.TransportDetails{Type: model.TransportSea},
	}
	if err := SetCarrier(d, c.ID, carrier, model.SectionComplete); err != nil {
		t.Fatalf("SetCarrier: %v", err)
	}
	f, err := CreateRecoveryFacility(d, model.SectionStarted)
	if err != nil {
		t.Fatalf("CreateRecoveryFacility: %v", err)
	}
	facility := model.RecoveryFacility{
		AddressDetails: testAddress(),
		ContactDetails: testContact(),
		FacilityType:   &model.FacilityTypeDetail{Type: model.FacilityRecoveryFacility, RecoveryCode: "R3"},
	}
	if err := SetRecoveryFacility(d, f.ID, facility, model.SectionComplete); err != nil {
		t.Fatalf("SetRecoveryFacility: %v", err)
	}
	return d
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name              string
		current, proposed *model.WasteCode
		want              WasteCodeTransition
	}{
		{"nil to nil", nil, nil, TransitionNone},
		{"drop code", bulkCode("B1010"), nil, TransitionNone},
		{"initial", nil, bulkCode("B1010"), TransitionInitial},
		{"identical", bulkCode("B1010"), bulkCode("B1010"), TransitionNone},
		{"bulk to small", bulkCode("B1010"), smallCode(), TransitionBulkToSmall},
		{"small to bulk", smallCode(), bulkCode("B1010"), TransitionSmallToBulk},
		{"different bulk type", &model.WasteCode{Type: model.WasteCodeOECD, Code: "GB040"}, bulkCode("B1010"), TransitionBulkToBulkDifferentType},
		{"same type new code", bulkCode("B1010"), bulkCode("B1050"), TransitionBulkToBulkSameType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.current, tt.proposed); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSetWasteDescription_UnlocksGatedSections(t *testing.T) {
	d := model.NewDraft(uuid.New(), "REF-001")
	if err := SetWasteDescription(d, completeDescription(bulkCode("B1010"))); err != nil {
		t.Fatalf("SetWasteDescription: %v", err)
	}
	if d.WasteQuantity.Status != model.SectionNotStarted {
		t.Errorf("quantity = %s, want NotStarted", d.WasteQuantity.Status)
	}
	if d.RecoveryFacilityDetail.Status != model.SectionNotStarted {
		t.Errorf("facilities = %s, want NotStarted", d.RecoveryFacilityDetail.Status)
	}
	if !d.Carriers.Transport {
		t.Error("transport should be on for bulk waste")
	}
}

func TestSetWasteDescription_BulkToSmallResetsEverything(t *testing.T) {
	d := draftWithCarriers(t)
	if err := SetWasteQuantity(d, model.WasteQuantity{
		Status:       model.SectionComplete,
		Kind:         model.QuantityEstimate,
		EstimateData: &model.WasteQuantityData{QuantityType: model.QuantityWeight, Value: 10},
	}); err != nil {
		t.Fatalf("SetWasteQuantity: %v", err)
	}

	if err := SetWasteDescription(d, completeDescription(smallCode())); err != nil {
		t.Fatalf("SetWasteDescription: %v", err)
	}
	if d.Carriers.Status != model.SectionNotStarted || len(d.Carriers.Values) != 0 {
		t.Errorf("carriers = %s with %d values, want empty NotStarted", d.Carriers.Status, len(d.Carriers.Values))
	}
	if d.Carriers.Transport {
		t.Error("transport should be off for laboratory waste")
	}
	if d.RecoveryFacilityDetail.Status != model.SectionNotStarted || len(d.RecoveryFacilityDetail.Values) != 0 {
		t.Errorf("facilities = %s with %d values, want empty NotStarted",
			d.RecoveryFacilityDetail.Status, len(d.RecoveryFacilityDetail.Values))
	}
	if d.WasteQuantity.Status != model.SectionNotStarted || d.WasteQuantity.EstimateData != nil {
		t.Errorf("quantity should be reset, got %s", d.WasteQuantity.Status)
	}
}

func TestSetWasteDescription_DifferentBulkTypeKeepsQuantity(t *testing.T) {
	d := draftWithCarriers(t)
	if err := SetWasteQuantity(d, model.WasteQuantity{
		Status:       model.SectionComplete,
		Kind:         model.QuantityEstimate,
		EstimateData: &model.WasteQuantityData{QuantityType: model.QuantityWeight, Value: 10},
	}); err != nil {
		t.Fatalf("SetWasteQuantity: %v", err)
	}

	oecd := completeDescription(&model.WasteCode{Type: model.WasteCodeOECD, Code: "GB040"})
	if err := SetWasteDescription(d, oecd); err != nil {
		t.Fatalf("SetWasteDescription: %v", err)
	}
	if d.Carriers.Status != model.SectionNotStarted || len(d.Carriers.Values) != 0 {
		t.Errorf("carriers = %s with %d values, want empty NotStarted", d.Carriers.Status, len(d.Carriers.Values))
	}
	if d.WasteQuantity.Status != model.SectionComplete {
		t.Errorf("quantity = %s, want Complete (both codes bulk)", d.WasteQuantity.Status)
	}
}

func TestSetWasteDescription_SameTypeDemotesPreservingValues(t *testing.T) {
	d := draftWithCarriers(t)

	if err := SetWasteDescription(d, completeDescription(bulkCode("B1050"))); err != nil {
		t.Fatalf("SetWasteDescription: %v", err)
	}
	if d.Carriers.Status != model.SectionStarted {
		t.Errorf("carriers = %s, want Started", d.Carriers.Status)
	}
	if len(d.Carriers.Values) != 1 || d.Carriers.Values[0].AddressDetails == nil {
		t.Error("carrier values should be preserved on a same-type code change")
	}
	if d.RecoveryFacilityDetail.Status != model.SectionStarted {
		t.Errorf("facilities = %s, want Started", d.RecoveryFacilityDetail.Status)
	}
	if len(d.RecoveryFacilityDetail.Values) != 1 {
		t.Error("facility values should be preserved on a same-type code change")
	}
}

func TestSetWasteDescription_ShapeChangeTrimsStartedValue(t *testing.T) {
	d := draftWithCarriers(t)
	started := model.WasteDescription{
		Status:       model.SectionStarted,
		WasteCode:    smallCode(),
		EwcCodes:     []string{"010101"},
		NationalCode: &model.OptionalString{Provided: true, Value: "NAT-1"},
		Description:  "stale",
	}
	if err := SetWasteDescription(d, started); err != nil {
		t.Fatalf("SetWasteDescription: %v", err)
	}
	if d.WasteDescription.EwcCodes != nil || d.WasteDescription.NationalCode != nil || d.WasteDescription.Description != "" {
		t.Errorf("started value should lose EWC codes, national code and description: %+v", d.WasteDescription)
	}
}

func TestSetWasteDescription_CompleteNeedsFullPayload(t *testing.T) {
	d := model.NewDraft(uuid.New(), "REF-001")
	incomplete := model.WasteDescription{Status: model.SectionComplete, WasteCode: bulkCode("B1010")}
	err := SetWasteDescription(d, incomplete)
	if !apperr.IsBadRequest(err) {
		t.Fatalf("err = %v, want BadRequest", err)
	}
}

func TestSetWasteQuantity_GatedBeforeWasteCode(t *testing.T) {
	d := model.NewDraft(uuid.New(), "REF-001")
	err := SetWasteQuantity(d, model.WasteQuantity{Status: model.SectionStarted})
	if !apperr.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestSetWasteQuantity_DerivesUnit(t *testing.T) {
	d := model.NewDraft(uuid.New(), "REF-001")
	if err := SetWasteDescription(d, completeDescription(bulkCode("B1010 and B1050"))); err != nil {
		t.Fatalf("SetWasteDescription: %v", err)
	}
	q := model.WasteQuantity{
		Status: model.SectionComplete,
		Kind:   model.QuantityActual,
		ActualData: &model.WasteQuantityData{
			QuantityType: model.QuantityWeight,
			Unit:         model.UnitLitre, // caller-supplied unit is ignored
			Value:        12.5,
		},
	}
	if err := SetWasteQuantity(d, q); err != nil {
		t.Fatalf("SetWasteQuantity: %v", err)
	}
	if got := d.WasteQuantity.ActualData.Unit; got != model.UnitTonne {
		t.Errorf("unit = %s, want %s", got, model.UnitTonne)
	}
}

func TestSetWasteQuantity_SmallVolumeEstimateIsLitres(t *testing.T) {
	d := model.NewDraft(uuid.New(), "REF-001")
	if err := SetWasteDescription(d, completeDescription(smallCode())); err != nil {
		t.Fatalf("SetWasteDescription: %v", err)
	}
	q := model.WasteQuantity{
		Status:       model.SectionComplete,
		Kind:         model.QuantityEstimate,
		EstimateData: &model.WasteQuantityData{QuantityType: model.QuantityVolume, Value: 200},
	}
	if err := SetWasteQuantity(d, q); err != nil {
		t.Fatalf("SetWasteQuantity: %v", err)
	}
	if got := d.WasteQuantity.EstimateData.Unit; got != model.UnitLitre {
		t.Errorf("unit = %s, want %s", got, model.UnitLitre)
	}
}

func TestSetConfirmation_GatedUntilComplete(t *testing.T) {
	d := model.NewDraft(uuid.New(), "REF-001")
	err := SetConfirmation(d, true)
	if !apperr.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestRecomputeGating_RegressionPullsGatesBack(t *testing.T) {
	d := completeDraft(t)
	if err := SetConfirmation(d, true); err != nil {
		t.Fatalf("SetConfirmation: %v", err)
	}
	if d.SubmissionDeclaration.Status != model.SectionNotStarted {
		t.Fatalf("declaration = %s, want NotStarted", d.SubmissionDeclaration.Status)
	}

	// Regressing any section pulls both gates back to CannotStart.
	if err := SetExporterDetail(d, model.ExporterDetail{Status: model.SectionStarted}); err != nil {
		t.Fatalf("SetExporterDetail: %v", err)
	}
	if d.SubmissionConfirmation.Status != model.SectionCannotStart {
		t.Errorf("confirmation = %s, want CannotStart", d.SubmissionConfirmation.Status)
	}
	if d.SubmissionDeclaration.Status != model.SectionCannotStart {
		t.Errorf("declaration = %s, want CannotStart", d.SubmissionDeclaration.Status)
	}
}

func TestRecomputeGating_Idempotent(t *testing.T) {
	d := completeDraft(t)
	RecomputeGating(d)
	confirmation := d.SubmissionConfirmation
	RecomputeGating(d)
	if d.SubmissionConfirmation != confirmation {
		t.Errorf("gating changed on a second recompute: %+v", d.SubmissionConfirmation)
	}
}

func TestCheckWriteable(t *testing.T) {
	d := model.NewDraft(uuid.New(), "REF-001")
	d.SubmissionState.Status = model.StateSubmittedWithEstimates
	err := SetUkExitLocation(d, model.UkExitLocation{Status: model.SectionComplete, ExitLocation: &model.OptionalString{}})
	if !apperr.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}
	if err != nil && !strings.Contains(err.Error(), "no longer editable") {
		t.Errorf("err = %q", err)
	}
}

// completeDraft builds a draft with every section Complete, so the
// confirmation gate has just opened.
func completeDraft(t *testing.T) *model.DraftSubmission {
	t.Helper()
	d := draftWithCarriers(t)
	steps := []struct {
		name string
		fn   func() error
	}{
		{"quantity", func() error {
			return SetWasteQuantity(d, model.WasteQuantity{
				Status:       model.SectionComplete,
				Kind:         model.QuantityEstimate,
				EstimateData: &model.WasteQuantityData{QuantityType: model.QuantityWeight, Value: 10},
			})
		}},
		{"exporter", func() error {
			return SetExporterDetail(d, model.ExporterDetail{
				Status: model.SectionComplete,
				ExporterAddress: &model.Address{
					AddressLine1: "2 Dock Rd", TownCity: "Bristol", Postcode: "BS1 1AA", Country: "England",
				},
				ExporterContactDetails: &model.ContactDetails{
					OrganisationName: "Greenlist Ltd", FullName: "A Smith",
					EmailAddress: "a@greenlist.example", PhoneNumber: "01179000000",
				},
			})
		}},
		{"importer", func() error {
			return SetImporterDetail(d, model.ImporterDetail{
				Status:                 model.SectionComplete,
				ImporterAddressDetails: testAddress(),
				ImporterContactDetails: testContact(),
			})
		}},
		{"date", func() error {
			return SetCollectionDate(d, model.CollectionDate{
				Status:       model.SectionComplete,
				Kind:         model.DateEstimate,
				EstimateDate: &model.DateValue{Day: "01", Month: "10", Year: "2026"},
			})
		}},
		{"collection", func() error {
			return SetCollectionDetail(d, model.CollectionDetail{
				Status: model.SectionComplete,
				Address: &model.Address{
					AddressLine1: "2 Dock Rd", TownCity: "Bristol", Country: "England",
				},
				ContactDetails: &model.ContactDetails{
					OrganisationName: "Greenlist Ltd", FullName: "A Smith",
					EmailAddress: "a@greenlist.example", PhoneNumber: "01179000000",
				},
			})
		}},
		{"exit", func() error {
			return SetUkExitLocation(d, model.UkExitLocation{
				Status:       model.SectionComplete,
				ExitLocation: &model.OptionalString{Provided: true, Value: "Dover"},
			})
		}},
		{"transit", func() error {
			return SetTransitCountries(d, model.TransitCountries{
				Status: model.SectionComplete,
				Values: []string{"France [FR]"},
			})
		}},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			t.Fatalf("%s: %v", s.name, err)
		}
	}
	if d.SubmissionConfirmation.Status != model.SectionNotStarted {
		t.Fatalf("confirmation = %s after completing every section", d.SubmissionConfirmation.Status)
	}
	return d
}
