// Package model defines the section value model for Annex VII waste-export
// declarations.
//
// Every section of a declaration is tracked independently with a closed set
// of statuses. A section's payload is only ever legal for its status:
// NotStarted and CannotStart carry nothing, Started carries a partial
// payload, Complete carries the full payload. Status transitions happen
// exclusively through the draft engine - callers never assign statuses
// directly.
package model

import "github.com/google/uuid"

// SectionStatus is the completion state of one declaration section.
type SectionStatus string

const (
	SectionCannotStart SectionStatus = "CannotStart"
	SectionNotStarted  SectionStatus = "NotStarted"
	SectionStarted     SectionStatus = "Started"
	SectionComplete    SectionStatus = "Complete"
)

// WasteCodeType discriminates the waste-code classification. NotApplicable
// denotes small (laboratory) waste; every other type denotes bulk waste.
type WasteCodeType string

const (
	WasteCodeNotApplicable WasteCodeType = "NotApplicable"
	WasteCodeBaselAnnexIX  WasteCodeType = "BaselAnnexIX"
	WasteCodeOECD          WasteCodeType = "OECD"
	WasteCodeAnnexIIIA     WasteCodeType = "AnnexIIIA"
	WasteCodeAnnexIIIB     WasteCodeType = "AnnexIIIB"
)

// Bulk reports whether the type denotes bulk waste.
func (t WasteCodeType) Bulk() bool { return t != WasteCodeNotApplicable }

// WasteCodeTypes lists every legal waste-code type.
var WasteCodeTypes = []WasteCodeType{
	WasteCodeNotApplicable,
	WasteCodeBaselAnnexIX,
	WasteCodeOECD,
	WasteCodeAnnexIIIA,
	WasteCodeAnnexIIIB,
}

// WasteCode identifies the waste classification. Code is empty when Type is
// NotApplicable.
type WasteCode struct {
	Type WasteCodeType `json:"type"`
	Code string        `json:"code,omitempty"`
}

// OptionalString is a yes/no answer with an optional value, used for the
// national code and the UK exit location.
type OptionalString struct {
	Provided bool   `json:"provided"`
	Value    string `json:"value,omitempty"`
}

// WasteDescription is the waste classification section. The waste code's
// type drives the shape of Carriers.Transport and the legal recovery
// facility types, so edits to it cascade through the whole draft.
type WasteDescription struct {
	Status       SectionStatus   `json:"status"`
	WasteCode    *WasteCode      `json:"wasteCode,omitempty"`
	EwcCodes     []string        `json:"ewcCodes,omitempty"`
	NationalCode *OptionalString `json:"nationalCode,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// QuantityType distinguishes weight from volume measurements.
type QuantityType string

const (
	QuantityWeight QuantityType = "Weight"
	QuantityVolume QuantityType = "Volume"
)

// QuantityUnit is derived from the waste-code type and quantity type, never
// supplied by callers.
type QuantityUnit string

const (
	UnitTonne      QuantityUnit = "Tonne"
	UnitKilogram   QuantityUnit = "Kilogram"
	UnitCubicMetre QuantityUnit = "Cubic Metre"
	UnitLitre      QuantityUnit = "Litre"
)

// DeriveUnit computes the measurement unit from the waste-code type and the
// quantity type. It is a pure function of exactly those two inputs.
func DeriveUnit(t WasteCodeType, qt QuantityType) QuantityUnit {
	if qt == QuantityVolume {
		if t.Bulk() {
			return UnitCubicMetre
		}
		return UnitLitre
	}
	if t.Bulk() {
		return UnitTonne
	}
	return UnitKilogram
}

// QuantityKind marks which quantity slot is authoritative.
type QuantityKind string

const (
	QuantityActual   QuantityKind = "ActualData"
	QuantityEstimate QuantityKind = "EstimateData"
)

// WasteQuantityData is one measured or estimated quantity.
type WasteQuantityData struct {
	QuantityType QuantityType `json:"quantityType"`
	Unit         QuantityUnit `json:"unit"`
	Value        float64      `json:"value"`
}

// WasteQuantity is the quantity section. Both slots may be populated at
// once: after an estimate-first submission is updated with actuals, the
// stale estimate is kept alongside the authoritative actual.
type WasteQuantity struct {
	Status       SectionStatus      `json:"status"`
	Kind         QuantityKind       `json:"type,omitempty"`
	ActualData   *WasteQuantityData `json:"actualData,omitempty"`
	EstimateData *WasteQuantityData `json:"estimateData,omitempty"`
}

// Authoritative returns the slot selected by Kind, or nil.
func (q WasteQuantity) Authoritative() *WasteQuantityData {
	if q.Kind == QuantityActual {
		return q.ActualData
	}
	return q.EstimateData
}

// DateKind marks which collection-date slot is authoritative.
type DateKind string

const (
	DateActual   DateKind = "ActualDate"
	DateEstimate DateKind = "EstimateDate"
)

// DateValue holds a calendar date as zero-padded strings.
type DateValue struct {
	Day   string `json:"day"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

// CollectionDate is the collection-date section, with the same dual-slot
// shape as WasteQuantity.
type CollectionDate struct {
	Status       SectionStatus `json:"status"`
	Kind         DateKind      `json:"type,omitempty"`
	ActualDate   *DateValue    `json:"actualDate,omitempty"`
	EstimateDate *DateValue    `json:"estimateDate,omitempty"`
}

// Authoritative returns the slot selected by Kind, or nil.
func (c CollectionDate) Authoritative() *DateValue {
	if c.Kind == DateActual {
		return c.ActualDate
	}
	return c.EstimateDate
}

// Address is a structured UK-style address.
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	TownCity     string `json:"townCity"`
	Postcode     string `json:"postcode,omitempty"`
	Country      string `json:"country"`
}

// ContactDetails identifies the responsible person at an organisation.
type ContactDetails struct {
	OrganisationName string `json:"organisationName"`
	FullName         string `json:"fullName"`
	EmailAddress     string `json:"emailAddress"`
	PhoneNumber      string `json:"phoneNumber"`
	FaxNumber        string `json:"faxNumber,omitempty"`
}

// EntityAddress is the free-form address used for importers, carriers and
// recovery facilities outside the UK.
type EntityAddress struct {
	OrganisationName string `json:"organisationName"`
	Address          string `json:"address"`
	Country          string `json:"country"`
}

// EntityContact mirrors ContactDetails for free-form entities.
type EntityContact struct {
	FullName     string `json:"fullName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
	FaxNumber    string `json:"faxNumber,omitempty"`
}

// ExporterDetail is the exporter address and contact section.
type ExporterDetail struct {
	Status                 SectionStatus   `json:"status"`
	ExporterAddress        *Address        `json:"exporterAddress,omitempty"`
	ExporterContactDetails *ContactDetails `json:"exporterContactDetails,omitempty"`
}

// ImporterDetail is the importer address and contact section.
type ImporterDetail struct {
	Status                 SectionStatus  `json:"status"`
	ImporterAddressDetails *EntityAddress `json:"importerAddressDetails,omitempty"`
	ImporterContactDetails *EntityContact `json:"importerContactDetails,omitempty"`
}

// TransportType is the means of transport for one carrier leg.
type TransportType string

const (
	TransportRoad            TransportType = "Road"
	TransportRail            TransportType = "Rail"
	TransportSea             TransportType = "Sea"
	TransportAir             TransportType = "Air"
	TransportInlandWaterways TransportType = "InlandWaterways"
)

// TransportDetails describes how a carrier moves the waste. Only legal when
// the parent Carriers section has Transport set (bulk waste).
type TransportDetails struct {
	Type        TransportType `json:"type"`
	Description string        `json:"description,omitempty"`
}

// MaxCarriers bounds the carriers collection.
const MaxCarriers = 5

// Carrier is one item of the carriers section. ID is assigned at creation
// and preserved across edits.
type Carrier struct {
	ID               uuid.UUID         `json:"id"`
	AddressDetails   *EntityAddress    `json:"addressDetails,omitempty"`
	ContactDetails   *EntityContact    `json:"contactDetails,omitempty"`
	TransportDetails *TransportDetails `json:"transportDetails,omitempty"`
}

// Carriers is the multi-item carriers section. Transport is recomputed from
// the waste-code type on every relevant mutation and is true for bulk waste.
type Carriers struct {
	Status    SectionStatus `json:"status"`
	Transport bool          `json:"transport"`
	Values    []Carrier     `json:"values,omitempty"`
}

// CollectionDetail is the waste-collection address and contact section.
type CollectionDetail struct {
	Status         SectionStatus   `json:"status"`
	Address        *Address        `json:"address,omitempty"`
	ContactDetails *ContactDetails `json:"contactDetails,omitempty"`
}

// UkExitLocation records where the waste leaves the UK, if known.
type UkExitLocation struct {
	Status       SectionStatus   `json:"status"`
	ExitLocation *OptionalString `json:"exitLocation,omitempty"`
}

// TransitCountries lists the countries the shipment passes through.
type TransitCountries struct {
	Status SectionStatus `json:"status"`
	Values []string      `json:"values,omitempty"`
}

// FacilityType discriminates recovery-facility items. Laboratory is only
// legal for small waste; the other two only for bulk waste.
type FacilityType string

const (
	FacilityLaboratory       FacilityType = "Laboratory"
	FacilityInterimSite      FacilityType = "InterimSite"
	FacilityRecoveryFacility FacilityType = "RecoveryFacility"
)

// FacilityTypeDetail carries the code appropriate to the facility type:
// a disposal code for laboratories, a recovery code otherwise.
type FacilityTypeDetail struct {
	Type         FacilityType `json:"type"`
	RecoveryCode string       `json:"recoveryCode,omitempty"`
	DisposalCode string       `json:"disposalCode,omitempty"`
}

// Facility cardinality bounds, enforced at create-time.
const (
	MaxRecoveryFacilities = 5
	MaxInterimSites       = 1
	MaxLaboratories       = 1
	MaxFacilitiesCombined = 6
)

// RecoveryFacility is one item of the recovery-facility section.
type RecoveryFacility struct {
	ID             uuid.UUID           `json:"id"`
	AddressDetails *EntityAddress      `json:"addressDetails,omitempty"`
	ContactDetails *EntityContact      `json:"contactDetails,omitempty"`
	FacilityType   *FacilityTypeDetail `json:"recoveryFacilityType,omitempty"`
}

// RecoveryFacilityDetail is the multi-item recovery-facility section. It is
// gated on the waste description: CannotStart until a waste code exists.
type RecoveryFacilityDetail struct {
	Status SectionStatus      `json:"status"`
	Values []RecoveryFacility `json:"values,omitempty"`
}

// CountByType returns how many items of each facility type exist.
func (r RecoveryFacilityDetail) CountByType() map[FacilityType]int {
	counts := make(map[FacilityType]int)
	for _, v := range r.Values {
		if v.FacilityType != nil {
			counts[v.FacilityType.Type]++
		}
	}
	return counts
}
