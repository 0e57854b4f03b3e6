package validation

import (
	"strings"

	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/refdata"
)

// validateAddress checks a structured UK-style address. Postcode is
// optional; country resolves against the list including UK entries.
func validateAddress(field string, line1, line2, townCity, postcode, country string, ref *refdata.Store, loc Locale, ctx MessageContext) (model.Address, []FieldFormatError) {
	var errs []FieldFormatError
	addr := model.Address{
		AddressLine1: strings.TrimSpace(line1),
		AddressLine2: strings.TrimSpace(line2),
		TownCity:     strings.TrimSpace(townCity),
		Postcode:     strings.TrimSpace(postcode),
	}

	if addr.AddressLine1 == "" {
		errs = append(errs, ferr(field, KeyEmptyAddressLine1, loc, ctx))
	} else if len(addr.AddressLine1) > FreeTextMaxLength {
		errs = append(errs, ferr(field, KeyCharTooManyAddressLine1, loc, ctx))
	}
	if len(addr.AddressLine2) > FreeTextMaxLength {
		errs = append(errs, ferr(field, KeyCharTooManyAddressLine2, loc, ctx))
	}
	if addr.TownCity == "" {
		errs = append(errs, ferr(field, KeyEmptyTownCity, loc, ctx))
	} else if len(addr.TownCity) > FreeTextMaxLength {
		errs = append(errs, ferr(field, KeyCharTooManyTownCity, loc, ctx))
	}
	if addr.Postcode != "" && !postcodePattern.MatchString(addr.Postcode) {
		errs = append(errs, ferr(field, KeyInvalidPostcode, loc, ctx))
	}

	if strings.TrimSpace(country) == "" {
		errs = append(errs, ferr(field, KeyEmptyCountry, loc, ctx))
	} else if canonical, ok := ref.Country(country, true); !ok {
		errs = append(errs, ferr(field, KeyInvalidCountry, loc, ctx))
	} else {
		addr.Country = canonical
	}

	return addr, errs
}

// validateContact checks an organisation contact. Fax is optional.
func validateContact(field string, orgName, fullName, email, phone, fax string, loc Locale, ctx MessageContext, index int) (model.ContactDetails, []FieldFormatError) {
	var errs []FieldFormatError
	add := func(key MessageKey) {
		errs = append(errs, ferrAt(field, key, loc, ctx, index))
	}
	contact := model.ContactDetails{
		OrganisationName: strings.TrimSpace(orgName),
		FullName:         strings.TrimSpace(fullName),
		EmailAddress:     strings.TrimSpace(email),
		PhoneNumber:      strings.TrimSpace(phone),
		FaxNumber:        strings.TrimSpace(fax),
	}

	if contact.OrganisationName == "" {
		add(KeyEmptyOrganisationName)
	} else if len(contact.OrganisationName) > FreeTextMaxLength {
		add(KeyCharTooManyOrganisationName)
	}
	if contact.FullName == "" {
		add(KeyEmptyFullName)
	} else if len(contact.FullName) > FreeTextMaxLength {
		add(KeyCharTooManyFullName)
	}
	if contact.EmailAddress == "" {
		add(KeyEmptyEmail)
	} else if len(contact.EmailAddress) > FreeTextMaxLength {
		add(KeyCharTooManyEmail)
	} else if !emailPattern.MatchString(contact.EmailAddress) {
		add(KeyInvalidEmail)
	}
	if contact.PhoneNumber == "" {
		add(KeyEmptyPhone)
	} else if !phonePattern.MatchString(contact.PhoneNumber) {
		add(KeyInvalidPhone)
	}
	if contact.FaxNumber != "" && !phonePattern.MatchString(contact.FaxNumber) {
		add(KeyInvalidFax)
	}

	return contact, errs
}

// validateEntityAddress checks a free-form entity address (importer,
// carrier, recovery facility). includeUK controls whether UK countries are
// legal for the entity.
func validateEntityAddress(field string, orgName, address, country string, includeUK bool, ref *refdata.Store, loc Locale, ctx MessageContext, index int) (model.EntityAddress, []FieldFormatError) {
	var errs []FieldFormatError
	add := func(key MessageKey) {
		errs = append(errs, ferrAt(field, key, loc, ctx, index))
	}
	addr := model.EntityAddress{
		OrganisationName: strings.TrimSpace(orgName),
		Address:          strings.TrimSpace(address),
	}

	if addr.OrganisationName == "" {
		add(KeyEmptyOrganisationName)
	} else if len(addr.OrganisationName) > FreeTextMaxLength {
		add(KeyCharTooManyOrganisationName)
	}
	if addr.Address == "" {
		add(KeyEmptyAddress)
	} else if len(addr.Address) > FreeTextMaxLength {
		add(KeyCharTooManyAddress)
	}
	if strings.TrimSpace(country) == "" {
		add(KeyEmptyCountry)
	} else if canonical, ok := ref.Country(country, includeUK); !ok {
		add(KeyInvalidCountry)
	} else {
		addr.Country = canonical
	}

	return addr, errs
}

// validateEntityContact checks a free-form entity contact.
func validateEntityContact(field string, fullName, email, phone, fax string, loc Locale, ctx MessageContext, index int) (model.EntityContact, []FieldFormatError) {
	var errs []FieldFormatError
	add := func(key MessageKey) {
		errs = append(errs, ferrAt(field, key, loc, ctx, index))
	}
	contact := model.EntityContact{
		FullName:     strings.TrimSpace(fullName),
		EmailAddress: strings.TrimSpace(email),
		PhoneNumber:  strings.TrimSpace(phone),
		FaxNumber:    strings.TrimSpace(fax),
	}

	if contact.FullName == "" {
		add(KeyEmptyFullName)
	} else if len(contact.FullName) > FreeTextMaxLength {
		add(KeyCharTooManyFullName)
	}
	if contact.EmailAddress == "" {
		add(KeyEmptyEmail)
	} else if len(contact.EmailAddress) > FreeTextMaxLength {
		add(KeyCharTooManyEmail)
	} else if !emailPattern.MatchString(contact.EmailAddress) {
		add(KeyInvalidEmail)
	}
	if contact.PhoneNumber == "" {
		add(KeyEmptyPhone)
	} else if !phonePattern.MatchString(contact.PhoneNumber) {
		add(KeyInvalidPhone)
	}
	if contact.FaxNumber != "" && !phonePattern.MatchString(contact.FaxNumber) {
		add(KeyInvalidFax)
	}

	return contact, errs
}

// ExporterDetailInput is the flat exporter input.
type ExporterDetailInput struct {
	AddressLine1     string
	AddressLine2     string
	TownCity         string
	Postcode         string
	Country          string
	OrganisationName string
	FullName         string
	EmailAddress     string
	PhoneNumber      string
	FaxNumber        string
}

// ExporterDetail validates the exporter section.
func ExporterDetail(in ExporterDetailInput, ref *refdata.Store, loc Locale, ctx MessageContext) Result[model.ExporterDetail] {
	addr, addrErrs := validateAddress(FieldExporterDetail, in.AddressLine1, in.AddressLine2, in.TownCity, in.Postcode, in.Country, ref, loc, ctx)
	contact, contactErrs := validateContact(FieldExporterDetail, in.OrganisationName, in.FullName, in.EmailAddress, in.PhoneNumber, in.FaxNumber, loc, ctx, 0)

	if errs := append(addrErrs, contactErrs...); len(errs) > 0 {
		return failList[model.ExporterDetail](errs)
	}
	return Ok(model.ExporterDetail{
		Status:                 model.SectionComplete,
		ExporterAddress:        &addr,
		ExporterContactDetails: &contact,
	})
}

// CollectionDetailInput is the flat waste-collection input; it shares the
// exporter's shape.
type CollectionDetailInput = ExporterDetailInput

// CollectionDetail validates the waste-collection section.
func CollectionDetail(in CollectionDetailInput, ref *refdata.Store, loc Locale, ctx MessageContext) Result[model.CollectionDetail] {
	addr, addrErrs := validateAddress(FieldCollectionDetail, in.AddressLine1, in.AddressLine2, in.TownCity, in.Postcode, in.Country, ref, loc, ctx)
	contact, contactErrs := validateContact(FieldCollectionDetail, in.OrganisationName, in.FullName, in.EmailAddress, in.PhoneNumber, in.FaxNumber, loc, ctx, 0)

	if errs := append(addrErrs, contactErrs...); len(errs) > 0 {
		return failList[model.CollectionDetail](errs)
	}
	return Ok(model.CollectionDetail{
		Status:         model.SectionComplete,
		Address:        &addr,
		ContactDetails: &contact,
	})
}

// ImporterDetailInput is the flat importer input.
type ImporterDetailInput struct {
	OrganisationName string
	Address          string
	Country          string
	FullName         string
	EmailAddress     string
	PhoneNumber      string
	FaxNumber        string
}

// ImporterDetail validates the importer section. The importer cannot be in
// the UK, so UK country entries are not legal here.
func ImporterDetail(in ImporterDetailInput, ref *refdata.Store, loc Locale, ctx MessageContext) Result[model.ImporterDetail] {
	addr, addrErrs := validateEntityAddress(FieldImporterDetail, in.OrganisationName, in.Address, in.Country, false, ref, loc, ctx, 0)
	contact, contactErrs := validateEntityContact(FieldImporterDetail, in.FullName, in.EmailAddress, in.PhoneNumber, in.FaxNumber, loc, ctx, 0)

	if errs := append(addrErrs, contactErrs...); len(errs) > 0 {
		return failList[model.ImporterDetail](errs)
	}
	return Ok(model.ImporterDetail{
		Status:                 model.SectionComplete,
		ImporterAddressDetails: &addr,
		ImporterContactDetails: &contact,
	})
}
