package validation

import (
	"github.com/greenlist/annexvii/internal/model"
)

// Cross-section rules. These run only once the sections they span have
// individually validated, and report conflicts between them.

// comb builds an InvalidAttributeCombinationError from the catalog.
func comb(key MessageKey, loc Locale, ctx MessageContext, fields ...string) InvalidAttributeCombinationError {
	return InvalidAttributeCombinationError{Fields: fields, Message: MessageFor(key, loc, ctx)}
}

// CheckWasteCodeQuantity rejects quantity units inconsistent with the
// waste-code shape: laboratory waste must be weighed in kilograms (or
// measured in litres), bulk waste in tonnes or cubic metres.
func CheckWasteCodeQuantity(code model.WasteCode, quantity model.WasteQuantity, loc Locale, ctx MessageContext) *InvalidAttributeCombinationError {
	data := quantity.Authoritative()
	if data == nil {
		return nil
	}
	smallUnit := data.Unit == model.UnitKilogram || data.Unit == model.UnitLitre
	if code.Type.Bulk() && smallUnit {
		e := comb(KeyBulkQuantityUnits, loc, ctx, FieldWasteDescription, FieldWasteQuantity)
		return &e
	}
	if !code.Type.Bulk() && !smallUnit {
		e := comb(KeyLaboratoryQuantityUnits, loc, ctx, FieldWasteDescription, FieldWasteQuantity)
		return &e
	}
	return nil
}

// CheckWasteCodeCarriers rejects means-of-transport detail on laboratory
// waste. carriersHaveTransport reports whether any carrier input populated
// a transport column.
func CheckWasteCodeCarriers(code model.WasteCode, carriersHaveTransport bool, loc Locale, ctx MessageContext) *InvalidAttributeCombinationError {
	if !code.Type.Bulk() && carriersHaveTransport {
		e := comb(KeyLaboratoryTransport, loc, ctx, FieldWasteDescription, FieldCarriers)
		return &e
	}
	return nil
}

// CheckImporterTransit rejects a transit-country list that contains the
// importer's own country.
func CheckImporterTransit(importer model.ImporterDetail, transitCountries []string, loc Locale, ctx MessageContext) *InvalidAttributeCombinationError {
	if importer.ImporterAddressDetails == nil {
		return nil
	}
	for _, c := range transitCountries {
		if c == importer.ImporterAddressDetails.Country {
			e := comb(KeyImporterTransitClash, loc, ctx, FieldImporterDetail, FieldTransitCountries)
			return &e
		}
	}
	return nil
}

// CheckWasteCodeFacilities rejects facility groups inconsistent with the
// waste-code shape: laboratory details only accompany laboratory waste,
// recovery facilities and interim sites only accompany bulk waste.
func CheckWasteCodeFacilities(codeType model.WasteCodeType, hasLaboratory, hasRecoveryOrInterim bool, loc Locale, ctx MessageContext) []InvalidAttributeCombinationError {
	var errs []InvalidAttributeCombinationError
	if codeType.Bulk() && hasLaboratory {
		errs = append(errs, comb(KeyLaboratoryForBulkWaste, loc, ctx, FieldWasteDescription, FieldRecoveryFacilityDetail))
	}
	if !codeType.Bulk() && hasRecoveryOrInterim {
		errs = append(errs, comb(KeyRecoveryForSmallWaste, loc, ctx, FieldWasteDescription, FieldRecoveryFacilityDetail))
	}
	return errs
}
