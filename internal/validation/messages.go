package validation

// MessageKey names one validation message in the catalog. Keys follow the
// style of the upstream guidance wording ("emptyTransport", "missingType")
// so bulk-upload diagnostics can be traced back to a single rule.
type MessageKey string

const (
	KeyEmptyReference       MessageKey = "emptyReference"
	KeyCharTooManyReference MessageKey = "charTooManyReference"

	KeyEmptyWasteCodeType           MessageKey = "emptyWasteCodeType"
	KeyTooManyWasteCodeType         MessageKey = "tooManyWasteCodeType"
	KeyInvalidWasteCode             MessageKey = "invalidWasteCode"
	KeyEmptyEwcCodes                MessageKey = "emptyEwcCodes"
	KeyInvalidEwcCodes              MessageKey = "invalidEwcCodes"
	KeyDuplicateEwcCode             MessageKey = "duplicateEwcCode"
	KeyTooManyEwcCodes              MessageKey = "tooManyEwcCodes"
	KeyInvalidNationalCode          MessageKey = "invalidNationalCode"
	KeyEmptyWasteDescription        MessageKey = "emptyWasteDescription"
	KeyCharTooManyWasteDescription  MessageKey = "charTooManyWasteDescription"

	KeyWasteQuantityMissingType    MessageKey = "missingType"
	KeyEmptyWasteQuantity          MessageKey = "emptyWasteQuantity"
	KeyTooManyWasteQuantity        MessageKey = "tooManyWasteQuantity"
	KeyInvalidWasteQuantity        MessageKey = "invalidWasteQuantity"
	KeyZeroWasteQuantity           MessageKey = "zeroWasteQuantity"
	KeyTooLargeKilogramsQuantity   MessageKey = "tooLargeKilogramsQuantity"
	KeyCollectionDateMissingType   MessageKey = "missingTypeCollectionDate"
	KeyEmptyCollectionDate         MessageKey = "emptyCollectionDate"
	KeyInvalidCollectionDate       MessageKey = "invalidCollectionDate"

	KeyEmptyAddressLine1            MessageKey = "emptyAddressLine1"
	KeyCharTooManyAddressLine1      MessageKey = "charTooManyAddressLine1"
	KeyCharTooManyAddressLine2      MessageKey = "charTooManyAddressLine2"
	KeyEmptyTownCity                MessageKey = "emptyTownCity"
	KeyCharTooManyTownCity          MessageKey = "charTooManyTownCity"
	KeyInvalidPostcode              MessageKey = "invalidPostcode"
	KeyEmptyCountry                 MessageKey = "emptyCountry"
	KeyInvalidCountry               MessageKey = "invalidCountry"
	KeyEmptyAddress                 MessageKey = "emptyAddress"
	KeyCharTooManyAddress           MessageKey = "charTooManyAddress"
	KeyEmptyOrganisationName        MessageKey = "emptyOrganisationName"
	KeyCharTooManyOrganisationName  MessageKey = "charTooManyOrganisationName"
	KeyEmptyFullName                MessageKey = "emptyFullName"
	KeyCharTooManyFullName          MessageKey = "charTooManyFullName"
	KeyEmptyEmail                   MessageKey = "emptyEmail"
	KeyInvalidEmail                 MessageKey = "invalidEmail"
	KeyCharTooManyEmail             MessageKey = "charTooManyEmail"
	KeyEmptyPhone                   MessageKey = "emptyPhone"
	KeyInvalidPhone                 MessageKey = "invalidPhone"
	KeyInvalidFax                   MessageKey = "invalidFax"

	KeyEmptyTransport                  MessageKey = "emptyTransport"
	KeyInvalidTransport                MessageKey = "invalidTransport"
	KeyCharTooManyTransportDescription MessageKey = "charTooManyTransportDescription"

	KeyInvalidUkExitLocation  MessageKey = "invalidUkExitLocation"
	KeyInvalidTransitCountry  MessageKey = "invalidTransitCountry"
	KeyDuplicateTransitCountry MessageKey = "duplicateTransitCountry"

	KeyEmptyRecoveryCode          MessageKey = "emptyRecoveryCode"
	KeyInvalidRecoveryCode        MessageKey = "invalidRecoveryCode"
	KeyInvalidInterimRecoveryCode MessageKey = "invalidInterimRecoveryCode"
	KeyEmptyDisposalCode          MessageKey = "emptyDisposalCode"
	KeyInvalidDisposalCode        MessageKey = "invalidDisposalCode"

	KeyEmptyTemplateName              MessageKey = "emptyTemplateName"
	KeyInvalidTemplateName            MessageKey = "invalidTemplateName"
	KeyCharTooManyTemplateDescription MessageKey = "charTooManyTemplateDescription"
)

// Cross-section combination message keys.
const (
	KeyLaboratoryQuantityUnits MessageKey = "laboratoryQuantityUnits"
	KeyBulkQuantityUnits       MessageKey = "bulkQuantityUnits"
	KeyLaboratoryTransport     MessageKey = "laboratoryTransport"
	KeyLaboratoryForBulkWaste  MessageKey = "laboratoryForBulkWaste"
	KeyRecoveryForSmallWaste   MessageKey = "recoveryForSmallWaste"
	KeyImporterTransitClash    MessageKey = "importerTransitClash"
)

type localised struct {
	en string
	cy string
}

func (l localised) pick(loc Locale) string {
	if loc == LocaleCY && l.cy != "" {
		return l.cy
	}
	return l.en
}

// message pairs interactive-form and bulk-CSV wording. The csv variant is
// optional and falls back to the api wording.
type message struct {
	api localised
	csv localised
}

func (m message) pick(loc Locale, ctx MessageContext) string {
	if ctx == ContextCSV && (m.csv.en != "" || m.csv.cy != "") {
		return m.csv.pick(loc)
	}
	return m.api.pick(loc)
}

// MessageFor resolves a catalog key to its message text.
func MessageFor(key MessageKey, loc Locale, ctx MessageContext) string {
	return catalog[key].pick(loc, ctx)
}

var catalog = map[MessageKey]message{
	KeyEmptyReference: {
		api: localised{en: "Enter a unique reference", cy: "Rhowch gyfeirnod unigryw"},
		csv: localised{en: "Enter a unique reference for this record", cy: "Rhowch gyfeirnod unigryw ar gyfer y cofnod hwn"},
	},
	KeyCharTooManyReference: {
		api: localised{en: "The unique reference must be 20 characters or less", cy: "Rhaid i'r cyfeirnod unigryw fod yn 20 nod neu lai"},
	},

	KeyEmptyWasteCodeType: {
		api: localised{en: "Enter a waste code type", cy: "Rhowch fath o god gwastraff"},
		csv: localised{
			en: "Enter a Basel Annex IX, OECD, Annex IIIA or Annex IIIB waste code, or mark the record as laboratory waste",
			cy: "Rhowch god gwastraff Basel Atodiad IX, OECD, Atodiad IIIA neu Atodiad IIIB, neu nodwch y cofnod fel gwastraff labordy",
		},
	},
	KeyTooManyWasteCodeType: {
		api: localised{en: "You can only enter one waste code type", cy: "Dim ond un math o god gwastraff y gallwch ei roi"},
	},
	KeyInvalidWasteCode: {
		api: localised{en: "Enter a waste code from the list", cy: "Rhowch god gwastraff o'r rhestr"},
	},
	KeyEmptyEwcCodes: {
		api: localised{en: "Enter an EWC code", cy: "Rhowch god EWC"},
	},
	KeyInvalidEwcCodes: {
		api: localised{en: "Enter an EWC code in the correct format", cy: "Rhowch god EWC yn y fformat cywir"},
	},
	KeyDuplicateEwcCode: {
		api: localised{en: "You have entered this EWC code already", cy: "Rydych eisoes wedi rhoi'r cod EWC hwn"},
	},
	KeyTooManyEwcCodes: {
		api: localised{en: "You can only enter a maximum of 5 EWC codes", cy: "Dim ond uchafswm o 5 cod EWC y gallwch eu rhoi"},
	},
	KeyInvalidNationalCode: {
		api: localised{en: "The national code can only include letters, numbers, spaces, hyphens and back and forward slashes", cy: "Gall y cod cenedlaethol gynnwys llythrennau, rhifau, bylchau, cysylltnodau a slaesau yn unig"},
	},
	KeyEmptyWasteDescription: {
		api: localised{en: "Enter a description of the waste", cy: "Rhowch ddisgrifiad o'r gwastraff"},
	},
	KeyCharTooManyWasteDescription: {
		api: localised{en: "The description must be 100 characters or less", cy: "Rhaid i'r disgrifiad fod yn 100 nod neu lai"},
	},

	KeyWasteQuantityMissingType: {
		api: localised{en: "Enter either an estimated or actual amount", cy: "Rhowch naill ai swm amcangyfrifedig neu wirioneddol"},
		csv: localised{en: "Enter 'Estimate' or 'Actual' for the waste quantity", cy: "Rhowch 'Estimate' neu 'Actual' ar gyfer maint y gwastraff"},
	},
	KeyEmptyWasteQuantity: {
		api: localised{en: "Enter an amount of waste", cy: "Rhowch faint o wastraff"},
	},
	KeyTooManyWasteQuantity: {
		api: localised{en: "Only enter one amount of waste", cy: "Rhowch un swm o wastraff yn unig"},
	},
	KeyInvalidWasteQuantity: {
		api: localised{en: "Enter the amount using only numbers", cy: "Rhowch y swm gan ddefnyddio rhifau yn unig"},
	},
	KeyZeroWasteQuantity: {
		api: localised{en: "The amount must be greater than 0", cy: "Rhaid i'r swm fod yn fwy na 0"},
	},
	KeyTooLargeKilogramsQuantity: {
		api: localised{en: "The weight must be 25 kilograms or less", cy: "Rhaid i'r pwysau fod yn 25 cilogram neu lai"},
	},
	KeyCollectionDateMissingType: {
		api: localised{en: "Enter either an estimated or actual collection date", cy: "Rhowch naill ai ddyddiad casglu amcangyfrifedig neu wirioneddol"},
		csv: localised{en: "Enter 'Estimate' or 'Actual' for the collection date", cy: "Rhowch 'Estimate' neu 'Actual' ar gyfer y dyddiad casglu"},
	},
	KeyEmptyCollectionDate: {
		api: localised{en: "Enter a collection date", cy: "Rhowch ddyddiad casglu"},
	},
	KeyInvalidCollectionDate: {
		api: localised{en: "Enter a real collection date", cy: "Rhowch ddyddiad casglu go iawn"},
	},

	KeyEmptyAddressLine1: {
		api: localised{en: "Enter an address line 1", cy: "Rhowch linell gyfeiriad 1"},
	},
	KeyCharTooManyAddressLine1: {
		api: localised{en: "Address line 1 must be 250 characters or less", cy: "Rhaid i linell gyfeiriad 1 fod yn 250 nod neu lai"},
	},
	KeyCharTooManyAddressLine2: {
		api: localised{en: "Address line 2 must be 250 characters or less", cy: "Rhaid i linell gyfeiriad 2 fod yn 250 nod neu lai"},
	},
	KeyEmptyTownCity: {
		api: localised{en: "Enter a town or city", cy: "Rhowch dref neu ddinas"},
	},
	KeyCharTooManyTownCity: {
		api: localised{en: "The town or city must be 250 characters or less", cy: "Rhaid i'r dref neu'r ddinas fod yn 250 nod neu lai"},
	},
	KeyInvalidPostcode: {
		api: localised{en: "Enter a real postcode", cy: "Rhowch god post go iawn"},
	},
	KeyEmptyCountry: {
		api: localised{en: "Enter a country", cy: "Rhowch wlad"},
	},
	KeyInvalidCountry: {
		api: localised{en: "Enter a country from the list", cy: "Rhowch wlad o'r rhestr"},
		csv: localised{en: "Enter the country in full", cy: "Rhowch enw'r wlad yn llawn"},
	},
	KeyEmptyAddress: {
		api: localised{en: "Enter an address", cy: "Rhowch gyfeiriad"},
	},
	KeyCharTooManyAddress: {
		api: localised{en: "The address must be 250 characters or less", cy: "Rhaid i'r cyfeiriad fod yn 250 nod neu lai"},
	},
	KeyEmptyOrganisationName: {
		api: localised{en: "Enter an organisation name", cy: "Rhowch enw sefydliad"},
	},
	KeyCharTooManyOrganisationName: {
		api: localised{en: "The organisation name must be 250 characters or less", cy: "Rhaid i enw'r sefydliad fod yn 250 nod neu lai"},
	},
	KeyEmptyFullName: {
		api: localised{en: "Enter a full name", cy: "Rhowch enw llawn"},
	},
	KeyCharTooManyFullName: {
		api: localised{en: "The full name must be 250 characters or less", cy: "Rhaid i'r enw llawn fod yn 250 nod neu lai"},
	},
	KeyEmptyEmail: {
		api: localised{en: "Enter an email address", cy: "Rhowch gyfeiriad e-bost"},
	},
	KeyInvalidEmail: {
		api: localised{en: "Enter a real email address", cy: "Rhowch gyfeiriad e-bost go iawn"},
	},
	KeyCharTooManyEmail: {
		api: localised{en: "The email address must be 250 characters or less", cy: "Rhaid i'r cyfeiriad e-bost fod yn 250 nod neu lai"},
	},
	KeyEmptyPhone: {
		api: localised{en: "Enter a phone number", cy: "Rhowch rif ffôn"},
	},
	KeyInvalidPhone: {
		api: localised{en: "Enter a real phone number", cy: "Rhowch rif ffôn go iawn"},
	},
	KeyInvalidFax: {
		api: localised{en: "Enter a real fax number", cy: "Rhowch rif ffacs go iawn"},
	},

	KeyEmptyTransport: {
		api: localised{en: "Enter the means of transport", cy: "Rhowch y dull cludo"},
	},
	KeyInvalidTransport: {
		api: localised{en: "Enter the means of transport from the list: road, rail, sea, air, inland waterways", cy: "Rhowch y dull cludo o'r rhestr: ffordd, rheilffordd, môr, awyr, dyfrffyrdd mewndirol"},
	},
	KeyCharTooManyTransportDescription: {
		api: localised{en: "The transport details must be 200 characters or less", cy: "Rhaid i'r manylion cludo fod yn 200 nod neu lai"},
	},

	KeyInvalidUkExitLocation: {
		api: localised{en: "The exit location can only include letters, numbers, spaces, apostrophes, commas, hyphens and full stops", cy: "Gall y lleoliad gadael gynnwys llythrennau, rhifau, bylchau, collnodau, comas, cysylltnodau ac atalnodau llawn yn unig"},
	},
	KeyInvalidTransitCountry: {
		api: localised{en: "Enter transit countries from the list", cy: "Rhowch wledydd tramwy o'r rhestr"},
		csv: localised{en: "Enter each transit country in full, separated by semicolons", cy: "Rhowch bob gwlad dramwy yn llawn, wedi'u gwahanu gan hanner colonau"},
	},
	KeyDuplicateTransitCountry: {
		api: localised{en: "You have entered this transit country already", cy: "Rydych eisoes wedi rhoi'r wlad dramwy hon"},
	},

	KeyEmptyRecoveryCode: {
		api: localised{en: "Enter a recovery code", cy: "Rhowch god adfer"},
	},
	KeyInvalidRecoveryCode: {
		api: localised{en: "Enter a recovery code from the list", cy: "Rhowch god adfer o'r rhestr"},
	},
	KeyInvalidInterimRecoveryCode: {
		api: localised{en: "Enter an interim site recovery code (R12 or R13)", cy: "Rhowch god adfer safle interim (R12 neu R13)"},
	},
	KeyEmptyDisposalCode: {
		api: localised{en: "Enter a disposal code", cy: "Rhowch god gwaredu"},
	},
	KeyInvalidDisposalCode: {
		api: localised{en: "Enter a disposal code from the list", cy: "Rhowch god gwaredu o'r rhestr"},
	},

	KeyEmptyTemplateName: {
		api: localised{en: "Enter a name for the template", cy: "Rhowch enw ar gyfer y templed"},
	},
	KeyInvalidTemplateName: {
		api: localised{en: "The template name can only include letters, numbers, spaces, apostrophes and hyphens, and must be 50 characters or less", cy: "Gall enw'r templed gynnwys llythrennau, rhifau, bylchau, collnodau a chysylltnodau yn unig, a rhaid iddo fod yn 50 nod neu lai"},
	},
	KeyCharTooManyTemplateDescription: {
		api: localised{en: "The template description must be 100 characters or less", cy: "Rhaid i ddisgrifiad y templed fod yn 100 nod neu lai"},
	},

	KeyLaboratoryQuantityUnits: {
		api: localised{en: "Laboratory waste must be measured as a weight in kilograms", cy: "Rhaid mesur gwastraff labordy fel pwysau mewn cilogramau"},
	},
	KeyBulkQuantityUnits: {
		api: localised{en: "Bulk waste must be measured in tonnes or cubic metres", cy: "Rhaid mesur gwastraff swmp mewn tunelli neu fetrau ciwbig"},
	},
	KeyLaboratoryTransport: {
		api: localised{en: "Do not enter any means of transport details for laboratory waste", cy: "Peidiwch â rhoi unrhyw fanylion dull cludo ar gyfer gwastraff labordy"},
	},
	KeyLaboratoryForBulkWaste: {
		api: localised{en: "Do not enter any laboratory details if you are exporting bulk waste", cy: "Peidiwch â rhoi unrhyw fanylion labordy os ydych yn allforio gwastraff swmp"},
	},
	KeyRecoveryForSmallWaste: {
		api: localised{en: "Do not enter any recovery facility or interim site details for laboratory waste", cy: "Peidiwch â rhoi unrhyw fanylion cyfleuster adfer na safle interim ar gyfer gwastraff labordy"},
	},
	KeyImporterTransitClash: {
		api: localised{en: "The importer country cannot also be a transit country", cy: "Ni all gwlad y mewnforiwr fod yn wlad dramwy hefyd"},
	},
}
