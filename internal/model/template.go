package model

import (
	"time"

	"github.com/google/uuid"
)

// Template name and description bounds.
const (
	TemplateNameMaxLength        = 50
	TemplateDescriptionMaxLength = 100
)

// TemplateDetails names a reusable declaration skeleton. Name is unique per
// account.
type TemplateDetails struct {
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Created      time.Time `json:"created"`
	LastModified time.Time `json:"lastModified"`
}

// Template is a reusable draft skeleton. It carries the sections worth
// reusing across declarations; quantity, collection date and the two
// declaration gates are per-shipment and excluded.
type Template struct {
	ID                     uuid.UUID              `json:"id"`
	TemplateDetails        TemplateDetails        `json:"templateDetails"`
	WasteDescription       WasteDescription       `json:"wasteDescription"`
	ExporterDetail         ExporterDetail         `json:"exporterDetail"`
	ImporterDetail         ImporterDetail         `json:"importerDetail"`
	Carriers               Carriers               `json:"carriers"`
	CollectionDetail       CollectionDetail       `json:"collectionDetail"`
	UkExitLocation         UkExitLocation         `json:"ukExitLocation"`
	TransitCountries       TransitCountries       `json:"transitCountries"`
	RecoveryFacilityDetail RecoveryFacilityDetail `json:"recoveryFacilityDetail"`
}

// NewTemplate creates an empty template.
func NewTemplate(id uuid.UUID, name, description string) *Template {
	now := time.Now().UTC()
	return &Template{
		ID: id,
		TemplateDetails: TemplateDetails{
			Name:         name,
			Description:  description,
			Created:      now,
			LastModified: now,
		},
		WasteDescription:       WasteDescription{Status: SectionNotStarted},
		ExporterDetail:         ExporterDetail{Status: SectionNotStarted},
		ImporterDetail:         ImporterDetail{Status: SectionNotStarted},
		Carriers:               Carriers{Status: SectionNotStarted, Transport: true},
		CollectionDetail:       CollectionDetail{Status: SectionNotStarted},
		UkExitLocation:         UkExitLocation{Status: SectionNotStarted},
		TransitCountries:       TransitCountries{Status: SectionNotStarted},
		RecoveryFacilityDetail: RecoveryFacilityDetail{Status: SectionCannotStart},
	}
}
