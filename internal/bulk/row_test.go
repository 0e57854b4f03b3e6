package bulk

import "testing"

func TestCheckHeader(t *testing.T) {
	ok := []string{"Reference", "BaselAnnexIXCode", "FirstCarrierMeansOfTransport", "LaboratoryDisposalCode"}
	if err := CheckHeader(ok); err != nil {
		t.Fatalf("CheckHeader: %v", err)
	}
	if err := CheckHeader([]string{"Reference", "Refference"}); err == nil {
		t.Fatal("a typo'd column name should be rejected")
	}
	// Blank padding columns are tolerated.
	if err := CheckHeader([]string{"Reference", "", "  "}); err != nil {
		t.Fatalf("CheckHeader with blanks: %v", err)
	}
}

func TestCheckHeader_CaseInsensitive(t *testing.T) {
	if err := CheckHeader([]string{"REFERENCE", "annexiiiacode", "FifthRecoveryFacilityRecoveryCode"}); err != nil {
		t.Fatalf("CheckHeader: %v", err)
	}
}

func TestRowFromRecord(t *testing.T) {
	header := []string{
		"Reference", "AnnexIIIACode", "SecondCarrierOrganisationName",
		"InterimSiteRecoveryCode", "ThirdRecoveryFacilityCountry",
	}
	record := []string{" REF-1 ", "B1010 and B1050", "Midway Haulage", "R13", "France"}
	row := RowFromRecord(header, record)

	if row.Reference != "REF-1" {
		t.Errorf("Reference = %q, want trimmed REF-1", row.Reference)
	}
	if row.AnnexIIIACode != "B1010 and B1050" {
		t.Errorf("AnnexIIIACode = %q", row.AnnexIIIACode)
	}
	if row.Carriers[1].OrganisationName != "Midway Haulage" {
		t.Errorf("second carrier org = %q", row.Carriers[1].OrganisationName)
	}
	if row.InterimSite.Code != "R13" {
		t.Errorf("interim code = %q", row.InterimSite.Code)
	}
	if row.RecoveryFacilities[2].Country != "France" {
		t.Errorf("third facility country = %q", row.RecoveryFacilities[2].Country)
	}
}

func TestRowFromRecord_ShortRecord(t *testing.T) {
	header := []string{"Reference", "AnnexIIIACode"}
	row := RowFromRecord(header, []string{"REF-1"})
	if row.Reference != "REF-1" || row.AnnexIIIACode != "" {
		t.Errorf("row = %+v", row)
	}
}
