package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/greenlist/annexvii/internal/model"
)

// parseEstimateOrActual interprets the shared Estimate/Actual discriminator
// column. The match is exact apart from case and spacing: misspellings like
// "Actuals" are rejected.
func parseEstimateOrActual(raw string) (actual bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "actual":
		return true, true
	case "estimate":
		return false, true
	}
	return false, false
}

// WasteQuantity validates the flat quantity inputs: the estimate/actual
// discriminator plus exactly one of the three amount columns. The unit is
// derived from which column carries the amount, never supplied by callers.
// Discriminator and amount are validated independently so a row reports
// every problem at once.
func WasteQuantity(estimateOrActual, tonnes, cubicMetres, kilograms string, loc Locale, ctx MessageContext) Result[model.WasteQuantity] {
	var errs []FieldFormatError

	actual, kindOK := parseEstimateOrActual(estimateOrActual)
	if !kindOK {
		errs = append(errs, ferr(FieldWasteQuantity, KeyWasteQuantityMissingType, loc, ctx))
	}

	type amount struct {
		raw          string
		quantityType model.QuantityType
		unit         model.QuantityUnit
	}
	var populated []amount
	for _, a := range []amount{
		{tonnes, model.QuantityWeight, model.UnitTonne},
		{cubicMetres, model.QuantityVolume, model.UnitCubicMetre},
		{kilograms, model.QuantityWeight, model.UnitKilogram},
	} {
		if strings.TrimSpace(a.raw) != "" {
			populated = append(populated, a)
		}
	}

	var data *model.WasteQuantityData
	switch len(populated) {
	case 0:
		errs = append(errs, ferr(FieldWasteQuantity, KeyEmptyWasteQuantity, loc, ctx))
	case 1:
		a := populated[0]
		value, err := strconv.ParseFloat(strings.TrimSpace(a.raw), 64)
		switch {
		case err != nil:
			errs = append(errs, ferr(FieldWasteQuantity, KeyInvalidWasteQuantity, loc, ctx))
		case value <= 0:
			errs = append(errs, ferr(FieldWasteQuantity, KeyZeroWasteQuantity, loc, ctx))
		case a.unit == model.UnitKilogram && value > SmallQuantityKilogramsMax:
			errs = append(errs, ferr(FieldWasteQuantity, KeyTooLargeKilogramsQuantity, loc, ctx))
		case a.unit != model.UnitKilogram && value > BulkQuantityMax:
			errs = append(errs, ferr(FieldWasteQuantity, KeyInvalidWasteQuantity, loc, ctx))
		default:
			data = &model.WasteQuantityData{QuantityType: a.quantityType, Unit: a.unit, Value: value}
		}
	default:
		errs = append(errs, ferr(FieldWasteQuantity, KeyTooManyWasteQuantity, loc, ctx))
	}

	if len(errs) > 0 {
		return failList[model.WasteQuantity](errs)
	}

	quantity := model.WasteQuantity{Status: model.SectionComplete}
	if actual {
		quantity.Kind = model.QuantityActual
		quantity.ActualData = data
	} else {
		quantity.Kind = model.QuantityEstimate
		quantity.EstimateData = data
	}
	return Ok(quantity)
}

// DateParts validates day/month/year strings as a real calendar date and
// returns them zero-padded. Dates in the past are deliberately accepted:
// shipments are routinely recorded after the fact.
func DateParts(day, month, year string, loc Locale, ctx MessageContext) Result[model.DateValue] {
	d, errD := strconv.Atoi(strings.TrimSpace(day))
	m, errM := strconv.Atoi(strings.TrimSpace(month))
	y, errY := strconv.Atoi(strings.TrimSpace(year))
	if errD != nil || errM != nil || errY != nil || y < 1000 || y > 9999 {
		return Fail[model.DateValue](ferr(FieldCollectionDate, KeyInvalidCollectionDate, loc, ctx))
	}
	// time.Date normalizes out-of-range components, so round-trip to
	// detect e.g. 31/02.
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || t.Month() != time.Month(m) || t.Day() != d {
		return Fail[model.DateValue](ferr(FieldCollectionDate, KeyInvalidCollectionDate, loc, ctx))
	}
	return Ok(model.DateValue{
		Day:   fmt.Sprintf("%02d", d),
		Month: fmt.Sprintf("%02d", m),
		Year:  strconv.Itoa(y),
	})
}

// CollectionDate validates the flat collection-date inputs: the
// estimate/actual discriminator plus one date in DD/MM/YYYY form
// (hyphens accepted). Both parts are validated independently.
func CollectionDate(estimateOrActual, date string, loc Locale, ctx MessageContext) Result[model.CollectionDate] {
	var errs []FieldFormatError

	actual, kindOK := parseEstimateOrActual(estimateOrActual)
	if !kindOK {
		errs = append(errs, ferr(FieldCollectionDate, KeyCollectionDateMissingType, loc, ctx))
	}

	var value *model.DateValue
	raw := strings.TrimSpace(date)
	if raw == "" {
		errs = append(errs, ferr(FieldCollectionDate, KeyEmptyCollectionDate, loc, ctx))
	} else {
		parts := strings.FieldsFunc(raw, func(r rune) bool { return r == '/' || r == '-' })
		if len(parts) != 3 {
			errs = append(errs, ferr(FieldCollectionDate, KeyInvalidCollectionDate, loc, ctx))
		} else if res := DateParts(parts[0], parts[1], parts[2], loc, ctx); !res.Valid {
			errs = append(errs, res.Errors...)
		} else {
			value = &res.Value
		}
	}

	if len(errs) > 0 {
		return failList[model.CollectionDate](errs)
	}

	collection := model.CollectionDate{Status: model.SectionComplete}
	if actual {
		collection.Kind = model.DateActual
		collection.ActualDate = value
	} else {
		collection.Kind = model.DateEstimate
		collection.EstimateDate = value
	}
	return Ok(collection)
}
