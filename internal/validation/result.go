// Package validation is the pure rules library for Annex VII declarations.
//
// Every rule takes raw string input and returns either a typed value or a
// list of field-format errors; rules never touch storage and never panic.
// Messages are locale-aware (en/cy) and context-aware: the interactive
// form and the bulk CSV upload word some errors differently.
//
// Cross-section rules live in crosssection.go and are only run among
// sections that individually validated.
package validation

// Locale selects the message language.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleCY Locale = "cy"
)

// MessageContext selects between interactive-form and bulk-CSV wording.
type MessageContext string

const (
	ContextAPI MessageContext = "api"
	ContextCSV MessageContext = "csv"
)

// Section field names used on errors.
const (
	FieldReference              = "Reference"
	FieldWasteDescription       = "WasteDescription"
	FieldWasteQuantity          = "WasteQuantity"
	FieldExporterDetail         = "ExporterDetail"
	FieldImporterDetail         = "ImporterDetail"
	FieldCollectionDate         = "CollectionDate"
	FieldCarriers               = "Carriers"
	FieldCollectionDetail       = "CollectionDetail"
	FieldUkExitLocation         = "UkExitLocation"
	FieldTransitCountries       = "TransitCountries"
	FieldRecoveryFacilityDetail = "RecoveryFacilityDetail"
	FieldTemplateDetails        = "TemplateDetails"
)

// FieldFormatError reports that one section's one input failed isolated
// validation. Index is 1-based when the input sits inside a multi-value
// section (carrier 2, recovery facility 3), zero otherwise.
type FieldFormatError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Index   int    `json:"index,omitempty"`
}

// InvalidAttributeCombinationError reports that two or more individually
// valid sections conflict.
type InvalidAttributeCombinationError struct {
	Fields  []string `json:"fields"`
	Message string   `json:"message"`
}

// Result carries either a validated typed value or the errors that stopped
// it. Exactly one of the two is meaningful, discriminated by Valid.
type Result[T any] struct {
	Valid  bool
	Value  T
	Errors []FieldFormatError
}

// Ok wraps a validated value.
func Ok[T any](value T) Result[T] {
	return Result[T]{Valid: true, Value: value}
}

// Fail wraps one or more field-format errors.
func Fail[T any](errs ...FieldFormatError) Result[T] {
	return Result[T]{Errors: errs}
}

// failList wraps an accumulated error slice.
func failList[T any](errs []FieldFormatError) Result[T] {
	return Result[T]{Errors: errs}
}
