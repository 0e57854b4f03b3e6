// Package bulk validates flat CSV rows into complete submissions,
// accumulating every rule violation per row rather than stopping at the
// first.
package bulk

import (
	"fmt"
	"strings"
)

// CarrierColumns is one ordinal carrier group of a CSV row.
type CarrierColumns struct {
	OrganisationName        string
	Address                 string
	Country                 string
	ContactFullName         string
	ContactPhoneNumber      string
	FaxNumber               string
	EmailAddress            string
	MeansOfTransport        string
	MeansOfTransportDetails string
}

// FacilityColumns is one treatment-site column group: an interim site, the
// laboratory, or one ordinal recovery facility. Code holds the group's
// recovery or disposal code column.
type FacilityColumns struct {
	OrganisationName   string
	Address            string
	Country            string
	ContactFullName    string
	ContactPhoneNumber string
	FaxNumber          string
	EmailAddress       string
	Code               string
}

// FlatRow is one CSV row with every column named. Ordinal groups (first
// to fifth carrier, first to fifth recovery facility) are indexed slices.
type FlatRow struct {
	Reference string

	BaselAnnexIXCode string
	OecdCode         string
	AnnexIIIACode    string
	AnnexIIIBCode    string
	Laboratory       string

	EwcCodes         string
	NationalCode     string
	WasteDescription string

	WasteQuantityTonnes            string
	WasteQuantityCubicMetres       string
	WasteQuantityKilograms         string
	EstimatedOrActualWasteQuantity string

	ExporterOrganisationName   string
	ExporterAddressLine1       string
	ExporterAddressLine2       string
	ExporterTownOrCity         string
	ExporterCountry            string
	ExporterPostcode           string
	ExporterContactFullName    string
	ExporterContactPhoneNumber string
	ExporterFaxNumber          string
	ExporterEmailAddress       string

	ImporterOrganisationName   string
	ImporterAddress            string
	ImporterCountry            string
	ImporterContactFullName    string
	ImporterContactPhoneNumber string
	ImporterFaxNumber          string
	ImporterEmailAddress       string

	WasteCollectionDate             string
	EstimatedOrActualCollectionDate string

	Carriers [5]CarrierColumns

	WasteCollectionOrganisationName   string
	WasteCollectionAddressLine1       string
	WasteCollectionAddressLine2       string
	WasteCollectionTownOrCity         string
	WasteCollectionCountry            string
	WasteCollectionPostcode           string
	WasteCollectionContactFullName    string
	WasteCollectionContactPhoneNumber string
	WasteCollectionFaxNumber          string
	WasteCollectionEmailAddress       string

	WhereWasteLeavesUk string
	TransitCountries   string

	InterimSite        FacilityColumns
	LaboratoryDetails  FacilityColumns
	RecoveryFacilities [5]FacilityColumns
}

var ordinals = [5]string{"first", "second", "third", "fourth", "fifth"}

// columnSetters maps lower-cased header names to field setters. Built
// once at init.
var columnSetters = buildColumnSetters()

func buildColumnSetters() map[string]func(*FlatRow, string) {
	m := map[string]func(*FlatRow, string){
		"reference": func(r *FlatRow, v string) { r.Reference = v },

		"baselannexixcode": func(r *FlatRow, v string) { r.BaselAnnexIXCode = v },
		"oecdcode":         func(r *FlatRow, v string) { r.OecdCode = v },
		"annexiiiacode":    func(r *FlatRow, v string) { r.AnnexIIIACode = v },
		"annexiiibcode":    func(r *FlatRow, v string) { r.AnnexIIIBCode = v },
		"laboratory":       func(r *FlatRow, v string) { r.Laboratory = v },

		"ewccodes":         func(r *FlatRow, v string) { r.EwcCodes = v },
		"nationalcode":     func(r *FlatRow, v string) { r.NationalCode = v },
		"wastedescription": func(r *FlatRow, v string) { r.WasteDescription = v },

		"wastequantitytonnes":            func(r *FlatRow, v string) { r.WasteQuantityTonnes = v },
		"wastequantitycubicmetres":       func(r *FlatRow, v string) { r.WasteQuantityCubicMetres = v },
		"wastequantitykilograms":         func(r *FlatRow, v string) { r.WasteQuantityKilograms = v },
		"estimatedoractualwastequantity": func(r *FlatRow, v string) { r.EstimatedOrActualWasteQuantity = v },

		"exporterorganisationname":   func(r *FlatRow, v string) { r.ExporterOrganisationName = v },
		"exporteraddressline1":       func(r *FlatRow, v string) { r.ExporterAddressLine1 = v },
		"exporteraddressline2":       func(r *FlatRow, v string) { r.ExporterAddressLine2 = v },
		"exportertownorcity":         func(r *FlatRow, v string) { r.ExporterTownOrCity = v },
		"exportercountry":            func(r *FlatRow, v string) { r.ExporterCountry = v },
		"exporterpostcode":           func(r *FlatRow, v string) { r.ExporterPostcode = v },
		"exportercontactfullname":    func(r *FlatRow, v string) { r.ExporterContactFullName = v },
		"exportercontactphonenumber": func(r *FlatRow, v string) { r.ExporterContactPhoneNumber = v },
		"exporterfaxnumber":          func(r *FlatRow, v string) { r.ExporterFaxNumber = v },
		"exporteremailaddress":       func(r *FlatRow, v string) { r.ExporterEmailAddress = v },

		"importerorganisationname":   func(r *FlatRow, v string) { r.ImporterOrganisationName = v },
		"importeraddress":            func(r *FlatRow, v string) { r.ImporterAddress = v },
		"importercountry":            func(r *FlatRow, v string) { r.ImporterCountry = v },
		"importercontactfullname":    func(r *FlatRow, v string) { r.ImporterContactFullName = v },
		"importercontactphonenumber": func(r *FlatRow, v string) { r.ImporterContactPhoneNumber = v },
		"importerfaxnumber":          func(r *FlatRow, v string) { r.ImporterFaxNumber = v },
		"importeremailaddress":       func(r *FlatRow, v string) { r.ImporterEmailAddress = v },

		"wastecollectiondate":             func(r *FlatRow, v string) { r.WasteCollectionDate = v },
		"estimatedoractualcollectiondate": func(r *FlatRow, v string) { r.EstimatedOrActualCollectionDate = v },

		"wastecollectionorganisationname":   func(r *FlatRow, v string) { r.WasteCollectionOrganisationName = v },
		"wastecollectionaddressline1":       func(r *FlatRow, v string) { r.WasteCollectionAddressLine1 = v },
		"wastecollectionaddressline2":       func(r *FlatRow, v string) { r.WasteCollectionAddressLine2 = v },
		"wastecollectiontownorcity":         func(r *FlatRow, v string) { r.WasteCollectionTownOrCity = v },
		"wastecollectioncountry":            func(r *FlatRow, v string) { r.WasteCollectionCountry = v },
		"wastecollectionpostcode":           func(r *FlatRow, v string) { r.WasteCollectionPostcode = v },
		"wastecollectioncontactfullname":    func(r *FlatRow, v string) { r.WasteCollectionContactFullName = v },
		"wastecollectioncontactphonenumber": func(r *FlatRow, v string) { r.WasteCollectionContactPhoneNumber = v },
		"wastecollectionfaxnumber":          func(r *FlatRow, v string) { r.WasteCollectionFaxNumber = v },
		"wastecollectionemailaddress":       func(r *FlatRow, v string) { r.WasteCollectionEmailAddress = v },

		"wherewasteleavesuk": func(r *FlatRow, v string) { r.WhereWasteLeavesUk = v },
		"transitcountries":   func(r *FlatRow, v string) { r.TransitCountries = v },

		"interimsiteorganisationname":   func(r *FlatRow, v string) { r.InterimSite.OrganisationName = v },
		"interimsiteaddress":            func(r *FlatRow, v string) { r.InterimSite.Address = v },
		"interimsitecountry":            func(r *FlatRow, v string) { r.InterimSite.Country = v },
		"interimsitecontactfullname":    func(r *FlatRow, v string) { r.InterimSite.ContactFullName = v },
		"interimsitecontactphonenumber": func(r *FlatRow, v string) { r.InterimSite.ContactPhoneNumber = v },
		"interimsitefaxnumber":          func(r *FlatRow, v string) { r.InterimSite.FaxNumber = v },
		"interimsiteemailaddress":       func(r *FlatRow, v string) { r.InterimSite.EmailAddress = v },
		"interimsiterecoverycode":       func(r *FlatRow, v string) { r.InterimSite.Code = v },

		"laboratoryorganisationname":   func(r *FlatRow, v string) { r.LaboratoryDetails.OrganisationName = v },
		"laboratoryaddress":            func(r *FlatRow, v string) { r.LaboratoryDetails.Address = v },
		"laboratorycountry":            func(r *FlatRow, v string) { r.LaboratoryDetails.Country = v },
		"laboratorycontactfullname":    func(r *FlatRow, v string) { r.LaboratoryDetails.ContactFullName = v },
		"laboratorycontactphonenumber": func(r *FlatRow, v string) { r.LaboratoryDetails.ContactPhoneNumber = v },
		"laboratoryfaxnumber":          func(r *FlatRow, v string) { r.LaboratoryDetails.FaxNumber = v },
		"laboratoryemailaddress":       func(r *FlatRow, v string) { r.LaboratoryDetails.EmailAddress = v },
		"laboratorydisposalcode":       func(r *FlatRow, v string) { r.LaboratoryDetails.Code = v },
	}

	for i, ord := range ordinals {
		i := i
		m[ord+"carrierorganisationname"] = func(r *FlatRow, v string) { r.Carriers[i].OrganisationName = v }
		m[ord+"carrieraddress"] = func(r *FlatRow, v string) { r.Carriers[i].Address = v }
		m[ord+"carriercountry"] = func(r *FlatRow, v string) { r.Carriers[i].Country = v }
		m[ord+"carriercontactfullname"] = func(r *FlatRow, v string) { r.Carriers[i].ContactFullName = v }
		m[ord+"carriercontactphonenumber"] = func(r *FlatRow, v string) { r.Carriers[i].ContactPhoneNumber = v }
		m[ord+"carrierfaxnumber"] = func(r *FlatRow, v string) { r.Carriers[i].FaxNumber = v }
		m[ord+"carrieremailaddress"] = func(r *FlatRow, v string) { r.Carriers[i].EmailAddress = v }
		m[ord+"carriermeansoftransport"] = func(r *FlatRow, v string) { r.Carriers[i].MeansOfTransport = v }
		m[ord+"carriermeansoftransportdetails"] = func(r *FlatRow, v string) { r.Carriers[i].MeansOfTransportDetails = v }

		m[ord+"recoveryfacilityorganisationname"] = func(r *FlatRow, v string) { r.RecoveryFacilities[i].OrganisationName = v }
		m[ord+"recoveryfacilityaddress"] = func(r *FlatRow, v string) { r.RecoveryFacilities[i].Address = v }
		m[ord+"recoveryfacilitycountry"] = func(r *FlatRow, v string) { r.RecoveryFacilities[i].Country = v }
		m[ord+"recoveryfacilitycontactfullname"] = func(r *FlatRow, v string) { r.RecoveryFacilities[i].ContactFullName = v }
		m[ord+"recoveryfacilitycontactphonenumber"] = func(r *FlatRow, v string) { r.RecoveryFacilities[i].ContactPhoneNumber = v }
		m[ord+"recoveryfacilityfaxnumber"] = func(r *FlatRow, v string) { r.RecoveryFacilities[i].FaxNumber = v }
		m[ord+"recoveryfacilityemailaddress"] = func(r *FlatRow, v string) { r.RecoveryFacilities[i].EmailAddress = v }
		m[ord+"recoveryfacilityrecoverycode"] = func(r *FlatRow, v string) { r.RecoveryFacilities[i].Code = v }
	}
	return m
}

// CheckHeader verifies every column name is recognised. Column order is
// free; unknown names are rejected so a typo'd header fails loudly rather
// than silently dropping a column.
func CheckHeader(header []string) error {
	for _, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := columnSetters[key]; !ok {
			return fmt.Errorf("unknown column %q", name)
		}
	}
	return nil
}

// RowFromRecord maps one CSV record onto a FlatRow using the file's
// header. Values are trimmed; columns beyond the header are ignored.
func RowFromRecord(header, record []string) FlatRow {
	var row FlatRow
	for i, name := range header {
		if i >= len(record) {
			break
		}
		key := strings.ToLower(strings.TrimSpace(name))
		if set, ok := columnSetters[key]; ok {
			set(&row, strings.TrimSpace(record[i]))
		}
	}
	return row
}
