package draftengine

import (
	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/model"
)

// Deep copies for the section values that move between drafts, templates
// and submissions. Collection items get fresh identities on every copy so
// two records never share an item id.

func copyWasteDescription(in model.WasteDescription) model.WasteDescription {
	out := in
	if in.WasteCode != nil {
		wc := *in.WasteCode
		out.WasteCode = &wc
	}
	if in.EwcCodes != nil {
		out.EwcCodes = append([]string(nil), in.EwcCodes...)
	}
	if in.NationalCode != nil {
		nc := *in.NationalCode
		out.NationalCode = &nc
	}
	return out
}

func copyExporterDetail(in model.ExporterDetail) model.ExporterDetail {
	out := in
	if in.ExporterAddress != nil {
		a := *in.ExporterAddress
		out.ExporterAddress = &a
	}
	if in.ExporterContactDetails != nil {
		c := *in.ExporterContactDetails
		out.ExporterContactDetails = &c
	}
	return out
}

func copyImporterDetail(in model.ImporterDetail) model.ImporterDetail {
	out := in
	if in.ImporterAddressDetails != nil {
		a := *in.ImporterAddressDetails
		out.ImporterAddressDetails = &a
	}
	if in.ImporterContactDetails != nil {
		c := *in.ImporterContactDetails
		out.ImporterContactDetails = &c
	}
	return out
}

func copyCollectionDetail(in model.CollectionDetail) model.CollectionDetail {
	out := in
	if in.Address != nil {
		a := *in.Address
		out.Address = &a
	}
	if in.ContactDetails != nil {
		c := *in.ContactDetails
		out.ContactDetails = &c
	}
	return out
}

func copyUkExitLocation(in model.UkExitLocation) model.UkExitLocation {
	out := in
	if in.ExitLocation != nil {
		e := *in.ExitLocation
		out.ExitLocation = &e
	}
	return out
}

func copyTransitCountries(in model.TransitCountries) model.TransitCountries {
	out := in
	if in.Values != nil {
		out.Values = append([]string(nil), in.Values...)
	}
	return out
}

func copyCarriers(in model.Carriers, stripTransport bool) model.Carriers {
	out := in
	out.Values = nil
	for _, c := range in.Values {
		cc := c
		cc.ID = uuid.New()
		if c.AddressDetails != nil {
			a := *c.AddressDetails
			cc.AddressDetails = &a
		}
		if c.ContactDetails != nil {
			cd := *c.ContactDetails
			cc.ContactDetails = &cd
		}
		if stripTransport || c.TransportDetails == nil {
			cc.TransportDetails = nil
		} else {
			td := *c.TransportDetails
			cc.TransportDetails = &td
		}
		out.Values = append(out.Values, cc)
	}
	return out
}

func copyRecoveryFacilityDetail(in model.RecoveryFacilityDetail) model.RecoveryFacilityDetail {
	out := in
	out.Values = nil
	for _, f := range in.Values {
		ff := f
		ff.ID = uuid.New()
		if f.AddressDetails != nil {
			a := *f.AddressDetails
			ff.AddressDetails = &a
		}
		if f.ContactDetails != nil {
			c := *f.ContactDetails
			ff.ContactDetails = &c
		}
		if f.FacilityType != nil {
			t := *f.FacilityType
			ff.FacilityType = &t
		}
		out.Values = append(out.Values, ff)
	}
	return out
}
