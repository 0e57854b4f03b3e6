package validation

import (
	"regexp"
	"strings"

	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/refdata"
)

// Field length bounds shared by several rules.
const (
	FreeTextMaxLength           = 250
	WasteDescriptionMaxLength   = 100
	NationalCodeMaxLength       = 50
	UkExitLocationMaxLength     = 50
	TransportDescriptionMax     = 200
	EwcCodesMax                 = 5
	BulkQuantityMax             = 1_000_000
	SmallQuantityKilogramsMax   = 25
)

var (
	ewcCodePattern        = regexp.MustCompile(`^[0-9]{6}\*?$`)
	nationalCodePattern   = regexp.MustCompile(`^[A-Za-z0-9\\\/\- ]*$`)
	ukExitLocationPattern = regexp.MustCompile(`^[A-Za-z0-9 \'\,\-\.]*$`)
	templateNamePattern   = regexp.MustCompile(`^[A-Za-z0-9 \'\-]+$`)
	emailPattern          = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern          = regexp.MustCompile(`^\+?[0-9 ()\-]{7,20}$`)
	postcodePattern       = regexp.MustCompile(`^[A-Za-z]{1,2}[0-9][A-Za-z0-9]? ?[0-9][A-Za-z]{2}$`)
)

// ferr builds a FieldFormatError from the catalog.
func ferr(field string, key MessageKey, loc Locale, ctx MessageContext) FieldFormatError {
	return FieldFormatError{Field: field, Message: MessageFor(key, loc, ctx)}
}

// ferrAt is ferr with a 1-based item index for multi-value sections.
func ferrAt(field string, key MessageKey, loc Locale, ctx MessageContext, index int) FieldFormatError {
	return FieldFormatError{Field: field, Message: MessageFor(key, loc, ctx), Index: index}
}

// FieldFormat builds a single field-format error from the message
// catalog, for callers assembling section-level errors of their own.
func FieldFormat(field string, key MessageKey, loc Locale, ctx MessageContext) FieldFormatError {
	return ferr(field, key, loc, ctx)
}

// Reference validates the exporter's own reference: non-empty and at most
// 20 characters.
func Reference(value string, loc Locale, ctx MessageContext) Result[string] {
	ref := strings.TrimSpace(value)
	if ref == "" {
		return Fail[string](ferr(FieldReference, KeyEmptyReference, loc, ctx))
	}
	if len(ref) > model.ReferenceMaxLength {
		return Fail[string](ferr(FieldReference, KeyCharTooManyReference, loc, ctx))
	}
	return Ok(ref)
}

// WasteCode validates a waste-code type and code pair against the
// reference list for that type. NotApplicable requires no code.
func WasteCode(rawType, rawCode string, ref *refdata.Store, loc Locale, ctx MessageContext) Result[model.WasteCode] {
	var codeType model.WasteCodeType
	found := false
	for _, t := range model.WasteCodeTypes {
		if strings.EqualFold(strings.TrimSpace(rawType), string(t)) {
			codeType = t
			found = true
			break
		}
	}
	if !found {
		return Fail[model.WasteCode](ferr(FieldWasteDescription, KeyEmptyWasteCodeType, loc, ctx))
	}

	if codeType == model.WasteCodeNotApplicable {
		return Ok(model.WasteCode{Type: codeType})
	}

	entry, ok := ref.WasteCode(codeType, rawCode)
	if !ok {
		return Fail[model.WasteCode](ferr(FieldWasteDescription, KeyInvalidWasteCode, loc, ctx))
	}
	return Ok(model.WasteCode{Type: codeType, Code: entry.Code})
}

// EwcCodes validates one to five unique EWC codes against the reference
// list, normalizing spacing and hyphens. All failures are reported.
func EwcCodes(codes []string, ref *refdata.Store, loc Locale, ctx MessageContext) Result[[]string] {
	cleaned := make([]string, 0, len(codes))
	for _, c := range codes {
		if v := strings.TrimSpace(c); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return Fail[[]string](ferr(FieldWasteDescription, KeyEmptyEwcCodes, loc, ctx))
	}
	if len(cleaned) > EwcCodesMax {
		return Fail[[]string](ferr(FieldWasteDescription, KeyTooManyEwcCodes, loc, ctx))
	}

	var errs []FieldFormatError
	seen := make(map[string]bool)
	out := make([]string, 0, len(cleaned))
	for _, raw := range cleaned {
		norm := strings.ReplaceAll(strings.ReplaceAll(raw, " ", ""), "-", "")
		if !ewcCodePattern.MatchString(norm) {
			errs = append(errs, ferr(FieldWasteDescription, KeyInvalidEwcCodes, loc, ctx))
			continue
		}
		entry, ok := ref.EwcCode(norm)
		if !ok {
			errs = append(errs, ferr(FieldWasteDescription, KeyInvalidEwcCodes, loc, ctx))
			continue
		}
		if seen[entry.Code] {
			errs = append(errs, ferr(FieldWasteDescription, KeyDuplicateEwcCode, loc, ctx))
			continue
		}
		seen[entry.Code] = true
		out = append(out, entry.Code)
	}
	if len(errs) > 0 {
		return failList[[]string](errs)
	}
	return Ok(out)
}

// NationalCode validates the optional national code. An empty value means
// "not provided" and is valid.
func NationalCode(value string, loc Locale, ctx MessageContext) Result[model.OptionalString] {
	v := strings.TrimSpace(value)
	if v == "" {
		return Ok(model.OptionalString{Provided: false})
	}
	if len(v) > NationalCodeMaxLength || !nationalCodePattern.MatchString(v) {
		return Fail[model.OptionalString](ferr(FieldWasteDescription, KeyInvalidNationalCode, loc, ctx))
	}
	return Ok(model.OptionalString{Provided: true, Value: v})
}

// WasteDescriptionText validates the free-text waste description.
func WasteDescriptionText(value string, loc Locale, ctx MessageContext) Result[string] {
	v := strings.TrimSpace(value)
	if v == "" {
		return Fail[string](ferr(FieldWasteDescription, KeyEmptyWasteDescription, loc, ctx))
	}
	if len(v) > WasteDescriptionMaxLength {
		return Fail[string](ferr(FieldWasteDescription, KeyCharTooManyWasteDescription, loc, ctx))
	}
	return Ok(v)
}

// UkExitLocationValue validates the optional UK exit location.
func UkExitLocationValue(value string, loc Locale, ctx MessageContext) Result[model.OptionalString] {
	v := strings.TrimSpace(value)
	if v == "" {
		return Ok(model.OptionalString{Provided: false})
	}
	if len(v) > UkExitLocationMaxLength || !ukExitLocationPattern.MatchString(v) {
		return Fail[model.OptionalString](ferr(FieldUkExitLocation, KeyInvalidUkExitLocation, loc, ctx))
	}
	return Ok(model.OptionalString{Provided: true, Value: v})
}

// TransitCountries validates the transit-country list against the country
// reference list (UK entries excluded). Duplicates are rejected.
func TransitCountries(countries []string, ref *refdata.Store, loc Locale, ctx MessageContext) Result[[]string] {
	var errs []FieldFormatError
	seen := make(map[string]bool)
	out := make([]string, 0, len(countries))
	for _, raw := range countries {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		canonical, ok := ref.Country(name, false)
		if !ok {
			errs = append(errs, ferr(FieldTransitCountries, KeyInvalidTransitCountry, loc, ctx))
			continue
		}
		if seen[canonical] {
			errs = append(errs, ferr(FieldTransitCountries, KeyDuplicateTransitCountry, loc, ctx))
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	if len(errs) > 0 {
		return failList[[]string](errs)
	}
	return Ok(out)
}

// TemplateName validates a template name: letters, digits, spaces,
// apostrophes and hyphens, at most 50 characters.
func TemplateName(name string, loc Locale, ctx MessageContext) Result[string] {
	v := strings.TrimSpace(name)
	if v == "" {
		return Fail[string](ferr(FieldTemplateDetails, KeyEmptyTemplateName, loc, ctx))
	}
	if len(v) > model.TemplateNameMaxLength || !templateNamePattern.MatchString(v) {
		return Fail[string](ferr(FieldTemplateDetails, KeyInvalidTemplateName, loc, ctx))
	}
	return Ok(v)
}

// TemplateDescription validates the optional template description.
func TemplateDescription(description string, loc Locale, ctx MessageContext) Result[string] {
	v := strings.TrimSpace(description)
	if len(v) > model.TemplateDescriptionMaxLength {
		return Fail[string](ferr(FieldTemplateDetails, KeyCharTooManyTemplateDescription, loc, ctx))
	}
	return Ok(v)
}
