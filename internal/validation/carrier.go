package validation

import (
	"strings"

	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/refdata"
)

// ParseTransportType interprets a free-text means of transport.
// "inland waterways" in any spacing or case normalizes to InlandWaterways.
func ParseTransportType(raw string) (model.TransportType, bool) {
	switch strings.Join(strings.Fields(strings.ToLower(raw)), " ") {
	case "road":
		return model.TransportRoad, true
	case "rail":
		return model.TransportRail, true
	case "sea":
		return model.TransportSea, true
	case "air":
		return model.TransportAir, true
	case "inland waterways", "inlandwaterways", "inland waterway":
		return model.TransportInlandWaterways, true
	}
	return "", false
}

// CarrierInput is the flat input for one carrier.
type CarrierInput struct {
	OrganisationName        string
	Address                 string
	Country                 string
	FullName                string
	EmailAddress            string
	PhoneNumber             string
	FaxNumber               string
	MeansOfTransport        string
	MeansOfTransportDetails string
}

// Blank reports whether every column of the carrier slot is empty, so
// unused ordinal slots in a CSV row can be skipped.
func (in CarrierInput) Blank() bool {
	return in.OrganisationName == "" && in.Address == "" && in.Country == "" &&
		in.FullName == "" && in.EmailAddress == "" && in.PhoneNumber == "" &&
		in.FaxNumber == "" && in.MeansOfTransport == "" && in.MeansOfTransportDetails == ""
}

// HasTransport reports whether either transport column is populated.
func (in CarrierInput) HasTransport() bool {
	return strings.TrimSpace(in.MeansOfTransport) != "" || strings.TrimSpace(in.MeansOfTransportDetails) != ""
}

// Carrier validates one carrier. transport controls whether means of
// transport applies (bulk waste); when it does, the type is required and
// the description is required once a type is chosen. When it does not
// apply the transport columns are ignored here - the cross-section rule
// flags them. index is the carrier's 1-based position.
func Carrier(in CarrierInput, transport bool, index int, ref *refdata.Store, loc Locale, ctx MessageContext) Result[model.Carrier] {
	addr, errs := validateEntityAddress(FieldCarriers, in.OrganisationName, in.Address, in.Country, true, ref, loc, ctx, index)
	contact, contactErrs := validateEntityContact(FieldCarriers, in.FullName, in.EmailAddress, in.PhoneNumber, in.FaxNumber, loc, ctx, index)
	errs = append(errs, contactErrs...)

	carrier := model.Carrier{
		AddressDetails: &addr,
		ContactDetails: &contact,
	}

	if transport {
		raw := strings.TrimSpace(in.MeansOfTransport)
		if raw == "" {
			errs = append(errs, ferrAt(FieldCarriers, KeyEmptyTransport, loc, ctx, index))
		} else if transportType, ok := ParseTransportType(raw); !ok {
			errs = append(errs, ferrAt(FieldCarriers, KeyInvalidTransport, loc, ctx, index))
		} else {
			description := strings.TrimSpace(in.MeansOfTransportDetails)
			if description == "" {
				errs = append(errs, ferrAt(FieldCarriers, KeyEmptyTransport, loc, ctx, index))
			} else if len(description) > TransportDescriptionMax {
				errs = append(errs, ferrAt(FieldCarriers, KeyCharTooManyTransportDescription, loc, ctx, index))
			} else {
				carrier.TransportDetails = &model.TransportDetails{Type: transportType, Description: description}
			}
		}
	}

	if len(errs) > 0 {
		return failList[model.Carrier](errs)
	}
	return Ok(carrier)
}

// RecoveryFacilityInput is the flat input for one recovery facility,
// interim site or laboratory.
type RecoveryFacilityInput struct {
	OrganisationName string
	Address          string
	Country          string
	FullName         string
	EmailAddress     string
	PhoneNumber      string
	FaxNumber        string
	Code             string // recovery code, or disposal code for laboratories
}

// Blank reports whether every column of the facility slot is empty.
func (in RecoveryFacilityInput) Blank() bool {
	return in.OrganisationName == "" && in.Address == "" && in.Country == "" &&
		in.FullName == "" && in.EmailAddress == "" && in.PhoneNumber == "" &&
		in.FaxNumber == "" && in.Code == ""
}

// RecoveryFacilityEntry validates one facility of the given type. The code
// rule depends on the type: laboratories take a disposal code, interim
// sites an interim recovery code (R12/R13), recovery facilities any
// recovery code. Codes match case-insensitively and canonicalize (r1->R1).
func RecoveryFacilityEntry(in RecoveryFacilityInput, facilityType model.FacilityType, index int, ref *refdata.Store, loc Locale, ctx MessageContext) Result[model.RecoveryFacility] {
	addr, errs := validateEntityAddress(FieldRecoveryFacilityDetail, in.OrganisationName, in.Address, in.Country, true, ref, loc, ctx, index)
	contact, contactErrs := validateEntityContact(FieldRecoveryFacilityDetail, in.FullName, in.EmailAddress, in.PhoneNumber, in.FaxNumber, loc, ctx, index)
	errs = append(errs, contactErrs...)

	detail := &model.FacilityTypeDetail{Type: facilityType}
	code := strings.TrimSpace(in.Code)

	switch facilityType {
	case model.FacilityLaboratory:
		if code == "" {
			errs = append(errs, ferrAt(FieldRecoveryFacilityDetail, KeyEmptyDisposalCode, loc, ctx, index))
		} else if entry, ok := ref.DisposalCode(code); !ok {
			errs = append(errs, ferrAt(FieldRecoveryFacilityDetail, KeyInvalidDisposalCode, loc, ctx, index))
		} else {
			detail.DisposalCode = entry.Code
		}
	case model.FacilityInterimSite:
		if code == "" {
			errs = append(errs, ferrAt(FieldRecoveryFacilityDetail, KeyEmptyRecoveryCode, loc, ctx, index))
		} else if entry, ok := ref.RecoveryCode(code); !ok {
			errs = append(errs, ferrAt(FieldRecoveryFacilityDetail, KeyInvalidRecoveryCode, loc, ctx, index))
		} else if !entry.Interim {
			errs = append(errs, ferrAt(FieldRecoveryFacilityDetail, KeyInvalidInterimRecoveryCode, loc, ctx, index))
		} else {
			detail.RecoveryCode = entry.Code
		}
	default:
		if code == "" {
			errs = append(errs, ferrAt(FieldRecoveryFacilityDetail, KeyEmptyRecoveryCode, loc, ctx, index))
		} else if entry, ok := ref.RecoveryCode(code); !ok {
			errs = append(errs, ferrAt(FieldRecoveryFacilityDetail, KeyInvalidRecoveryCode, loc, ctx, index))
		} else {
			detail.RecoveryCode = entry.Code
		}
	}

	if len(errs) > 0 {
		return failList[model.RecoveryFacility](errs)
	}
	return Ok(model.RecoveryFacility{
		AddressDetails: &addr,
		ContactDetails: &contact,
		FacilityType:   detail,
	})
}
