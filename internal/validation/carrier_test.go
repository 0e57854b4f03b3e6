package validation

import (
	"testing"

	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/refdata"
)

func validCarrierInput() CarrierInput {
	return CarrierInput{
		OrganisationName:        "Acme Haulage",
		Address:                 "1 Quay St, Calais",
		Country:                 "France",
		FullName:                "J Dupont",
		EmailAddress:            "j@acme.example",
		PhoneNumber:             "0033111222333",
		MeansOfTransport:        "Sea",
		MeansOfTransportDetails: "container vessel",
	}
}

func TestParseTransportType(t *testing.T) {
	tests := []struct {
		raw    string
		want   model.TransportType
		wantOK bool
	}{
		{"Road", model.TransportRoad, true},
		{"sea", model.TransportSea, true},
		{"Inland Waterways", model.TransportInlandWaterways, true},
		{"inlandwaterways", model.TransportInlandWaterways, true},
		{"  rail  ", model.TransportRail, true},
		{"lorry", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTransportType(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseTransportType(%q) = %v, %v", tt.raw, got, ok)
		}
	}
}

func TestCarrier_Valid(t *testing.T) {
	ref := refdata.Default()
	res := Carrier(validCarrierInput(), true, 1, ref, LocaleEN, ContextCSV)
	if !res.Valid {
		t.Fatalf("errors = %+v", res.Errors)
	}
	c := res.Value
	if c.AddressDetails == nil || c.AddressDetails.Country != "France [FR]" {
		t.Errorf("country not canonicalized: %+v", c.AddressDetails)
	}
	if c.TransportDetails == nil || c.TransportDetails.Type != model.TransportSea {
		t.Errorf("transport = %+v", c.TransportDetails)
	}
}

func TestCarrier_UKCountryAllowed(t *testing.T) {
	ref := refdata.Default()
	in := validCarrierInput()
	in.Country = "United Kingdom (England) [GB-ENG]"
	res := Carrier(in, true, 1, ref, LocaleEN, ContextCSV)
	if !res.Valid {
		t.Fatalf("errors = %+v", res.Errors)
	}
}

func TestCarrier_TransportRequiredForBulk(t *testing.T) {
	ref := refdata.Default()
	in := validCarrierInput()
	in.MeansOfTransport = ""
	in.MeansOfTransportDetails = ""
	res := Carrier(in, true, 2, ref, LocaleEN, ContextCSV)
	if res.Valid {
		t.Fatal("missing transport should fail for bulk waste")
	}
	if len(res.Errors) != 1 || res.Errors[0].Index != 2 {
		t.Errorf("errors = %+v, want one with index 2", res.Errors)
	}
}

func TestCarrier_TransportIgnoredForSmall(t *testing.T) {
	ref := refdata.Default()
	in := validCarrierInput()
	res := Carrier(in, false, 1, ref, LocaleEN, ContextCSV)
	if !res.Valid {
		t.Fatalf("errors = %+v", res.Errors)
	}
	if res.Value.TransportDetails != nil {
		t.Error("transport details should not be built when transport does not apply")
	}
}

func TestCarrier_AccumulatesErrors(t *testing.T) {
	ref := refdata.Default()
	in := CarrierInput{MeansOfTransport: "lorry"}
	res := Carrier(in, true, 1, ref, LocaleEN, ContextCSV)
	if res.Valid {
		t.Fatal("empty carrier should fail")
	}
	if len(res.Errors) < 4 {
		t.Errorf("got %d errors, want address, contact and transport errors: %+v", len(res.Errors), res.Errors)
	}
}

func validFacilityInput() RecoveryFacilityInput {
	return RecoveryFacilityInput{
		OrganisationName: "Acme Recycling",
		Address:          "2 Harbour Way, Rotterdam",
		Country:          "Netherlands",
		FullName:         "K Visser",
		EmailAddress:     "k@acme.example",
		PhoneNumber:      "0031666777888",
		Code:             "R3",
	}
}

func TestRecoveryFacilityEntry_Codes(t *testing.T) {
	ref := refdata.Default()
	tests := []struct {
		name    string
		ftype   model.FacilityType
		code    string
		wantOK  bool
		wantKey MessageKey
	}{
		{"recovery code", model.FacilityRecoveryFacility, "R3", true, ""},
		{"lower case canonicalized", model.FacilityRecoveryFacility, "r3", true, ""},
		{"interim code", model.FacilityInterimSite, "R13", true, ""},
		{"non-interim code on interim site", model.FacilityInterimSite, "R3", false, KeyInvalidInterimRecoveryCode},
		{"disposal code", model.FacilityLaboratory, "D1", true, ""},
		{"recovery code on laboratory", model.FacilityLaboratory, "R3", false, KeyInvalidDisposalCode},
		{"empty", model.FacilityRecoveryFacility, "", false, KeyEmptyRecoveryCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validFacilityInput()
			in.Code = tt.code
			res := RecoveryFacilityEntry(in, tt.ftype, 1, ref, LocaleEN, ContextCSV)
			if res.Valid != tt.wantOK {
				t.Fatalf("valid = %v, errors = %+v", res.Valid, res.Errors)
			}
			if !tt.wantOK {
				want := MessageFor(tt.wantKey, LocaleEN, ContextCSV)
				if len(res.Errors) != 1 || res.Errors[0].Message != want {
					t.Errorf("errors = %+v, want one %q", res.Errors, want)
				}
			}
		})
	}
}

func TestRecoveryFacilityEntry_Canonicalizes(t *testing.T) {
	ref := refdata.Default()
	in := validFacilityInput()
	in.Code = "r3"
	res := RecoveryFacilityEntry(in, model.FacilityRecoveryFacility, 1, ref, LocaleEN, ContextCSV)
	if !res.Valid {
		t.Fatalf("errors = %+v", res.Errors)
	}
	if res.Value.FacilityType.RecoveryCode != "R3" {
		t.Errorf("code = %q, want R3", res.Value.FacilityType.RecoveryCode)
	}
}

func TestCheckWasteCodeQuantity(t *testing.T) {
	bulk := model.WasteCode{Type: model.WasteCodeAnnexIIIA, Code: "B1010 and B1050"}
	small := model.WasteCode{Type: model.WasteCodeNotApplicable}
	quantity := func(unit model.QuantityUnit) model.WasteQuantity {
		return model.WasteQuantity{
			Status:       model.SectionComplete,
			Kind:         model.QuantityEstimate,
			EstimateData: &model.WasteQuantityData{Unit: unit, Value: 1},
		}
	}
	if err := CheckWasteCodeQuantity(bulk, quantity(model.UnitTonne), LocaleEN, ContextCSV); err != nil {
		t.Errorf("bulk + tonnes: %+v", err)
	}
	if err := CheckWasteCodeQuantity(bulk, quantity(model.UnitKilogram), LocaleEN, ContextCSV); err == nil {
		t.Error("bulk + kilograms should conflict")
	}
	if err := CheckWasteCodeQuantity(small, quantity(model.UnitLitre), LocaleEN, ContextCSV); err != nil {
		t.Errorf("small + litres: %+v", err)
	}
	if err := CheckWasteCodeQuantity(small, quantity(model.UnitCubicMetre), LocaleEN, ContextCSV); err == nil {
		t.Error("small + cubic metres should conflict")
	}
}

func TestCheckWasteCodeCarriers(t *testing.T) {
	small := model.WasteCode{Type: model.WasteCodeNotApplicable}
	if err := CheckWasteCodeCarriers(small, true, LocaleEN, ContextCSV); err == nil {
		t.Error("laboratory waste with transport columns should conflict")
	}
	if err := CheckWasteCodeCarriers(small, false, LocaleEN, ContextCSV); err != nil {
		t.Errorf("got %+v", err)
	}
}

func TestCheckImporterTransit(t *testing.T) {
	importer := model.ImporterDetail{
		Status:                 model.SectionComplete,
		ImporterAddressDetails: &model.EntityAddress{Country: "France [FR]"},
	}
	if err := CheckImporterTransit(importer, []string{"Belgium [BE]", "France [FR]"}, LocaleEN, ContextCSV); err == nil {
		t.Error("importer country in the transit list should conflict")
	}
	if err := CheckImporterTransit(importer, []string{"Belgium [BE]"}, LocaleEN, ContextCSV); err != nil {
		t.Errorf("got %+v", err)
	}
}

func TestCheckWasteCodeFacilities(t *testing.T) {
	if errs := CheckWasteCodeFacilities(model.WasteCodeBaselAnnexIX, true, true, LocaleEN, ContextCSV); len(errs) != 1 {
		t.Errorf("bulk + laboratory: got %d errors, want 1", len(errs))
	}
	if errs := CheckWasteCodeFacilities(model.WasteCodeNotApplicable, true, true, LocaleEN, ContextCSV); len(errs) != 1 {
		t.Errorf("small + recovery: got %d errors, want 1", len(errs))
	}
	if errs := CheckWasteCodeFacilities(model.WasteCodeBaselAnnexIX, false, true, LocaleEN, ContextCSV); len(errs) != 0 {
		t.Errorf("bulk + recovery: got %+v", errs)
	}
}
