package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/draftengine"
	"github.com/greenlist/annexvii/internal/metrics"
	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/recordstore"
	"github.com/greenlist/annexvii/internal/validation"
)

// TemplateService manages one account's reusable declaration skeletons.
// Template names are unique within the account, compared
// case-insensitively; two accounts can hold the same name.
type TemplateService struct {
	store   recordstore.Store
	account string
	log     *slog.Logger
}

// NewTemplateService wires a template service over the given store,
// scoped to one account.
func NewTemplateService(store recordstore.Store, account string, log *slog.Logger) *TemplateService {
	return &TemplateService{store: store, account: account, log: log}
}

func (s *TemplateService) checkDetails(name, description string) (string, string, error) {
	nameRes := validation.TemplateName(name, validation.LocaleEN, validation.ContextAPI)
	if !nameRes.Valid {
		return "", "", invalid(nameRes.Errors)
	}
	descRes := validation.TemplateDescription(description, validation.LocaleEN, validation.ContextAPI)
	if !descRes.Valid {
		return "", "", invalid(descRes.Errors)
	}
	return nameRes.Value, descRes.Value, nil
}

func (s *TemplateService) checkNameFree(ctx context.Context, name string, exclude uuid.UUID) error {
	all, err := loadAll[model.Template](ctx, s.store, recordstore.ContainerTemplates, s.account)
	if err != nil {
		return err
	}
	for _, t := range all {
		if t.ID != exclude && strings.EqualFold(t.TemplateDetails.Name, name) {
			return apperr.Conflict("a template with this name already exists")
		}
	}
	return nil
}

// CreateTemplate creates an empty template.
func (s *TemplateService) CreateTemplate(ctx context.Context, name, description string) (*model.Template, error) {
	name, description, err := s.checkDetails(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	tmpl := model.NewTemplate(uuid.New(), name, description)
	if err := persist(ctx, s.store, recordstore.ContainerTemplates, s.account, tmpl.ID, tmpl); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "template created", "id", tmpl.ID, "name", name)
	return tmpl, nil
}

// CreateTemplateFromDraft copies a draft's reusable sections into a new
// template.
func (s *TemplateService) CreateTemplateFromDraft(ctx context.Context, draftID uuid.UUID, name, description string) (*model.Template, error) {
	name, description, err := s.checkDetails(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	draft, err := load[model.DraftSubmission](ctx, s.store, recordstore.ContainerDrafts, s.account, draftID)
	if err != nil {
		return nil, err
	}
	if draft.SubmissionState.Status == model.StateDeleted {
		return nil, recordstore.ErrNotFound(recordstore.ContainerDrafts)
	}
	tmpl := draftengine.TemplateFromDraft(draft, uuid.New(), name, description)
	if err := persist(ctx, s.store, recordstore.ContainerTemplates, s.account, tmpl.ID, tmpl); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "template created from draft", "id", tmpl.ID, "draft", draftID)
	return tmpl, nil
}

// CreateTemplateFromSubmission copies a submission's reusable sections
// into a new template.
func (s *TemplateService) CreateTemplateFromSubmission(ctx context.Context, submissionID uuid.UUID, name, description string) (*model.Template, error) {
	name, description, err := s.checkDetails(name, description)
	if err != nil {
		return nil, err
	}
	if err := s.checkNameFree(ctx, name, uuid.Nil); err != nil {
		return nil, err
	}
	sub, err := load[model.Submission](ctx, s.store, recordstore.ContainerSubmissions, s.account, submissionID)
	if err != nil {
		return nil, err
	}
	tmpl := draftengine.TemplateFromSubmission(sub, uuid.New(), name, description)
	if err := persist(ctx, s.store, recordstore.ContainerTemplates, s.account, tmpl.ID, tmpl); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "template created from submission", "id", tmpl.ID, "submission", submissionID)
	return tmpl, nil
}

// GetTemplate fetches one template.
func (s *TemplateService) GetTemplate(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	return load[model.Template](ctx, s.store, recordstore.ContainerTemplates, s.account, id)
}

// GetTemplates lists templates, most recently modified first.
func (s *TemplateService) GetTemplates(ctx context.Context, limit int, token string) (recordstore.Page[model.Template], error) {
	all, err := loadAll[model.Template](ctx, s.store, recordstore.ContainerTemplates, s.account)
	if err != nil {
		return recordstore.Page[model.Template]{}, err
	}
	values := make([]model.Template, 0, len(all))
	for _, t := range all {
		values = append(values, *t)
	}
	sort.Slice(values, func(i, j int) bool {
		return values[i].TemplateDetails.LastModified.After(values[j].TemplateDetails.LastModified)
	})
	return recordstore.Paginate(values, limit, token), nil
}

// GetNumberOfTemplates counts stored templates.
func (s *TemplateService) GetNumberOfTemplates(ctx context.Context) (int, error) {
	return s.store.Count(ctx, recordstore.ContainerTemplates, s.account)
}

// UpdateTemplateDetails renames a template or changes its description.
func (s *TemplateService) UpdateTemplateDetails(ctx context.Context, id uuid.UUID, name, description string) error {
	name, description, err := s.checkDetails(name, description)
	if err != nil {
		return err
	}
	tmpl, err := s.GetTemplate(ctx, id)
	if err != nil {
		return err
	}
	if !strings.EqualFold(tmpl.TemplateDetails.Name, name) {
		if err := s.checkNameFree(ctx, name, id); err != nil {
			return err
		}
	}
	tmpl.TemplateDetails.Name = name
	tmpl.TemplateDetails.Description = description
	tmpl.TemplateDetails.LastModified = time.Now().UTC()
	return persist(ctx, s.store, recordstore.ContainerTemplates, s.account, id, tmpl)
}

// DeleteTemplate removes a template permanently.
func (s *TemplateService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, recordstore.ContainerTemplates, s.account, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "template deleted", "id", id)
	return nil
}

// mutate loads a template, applies one engine operation and persists it.
func (s *TemplateService) mutate(ctx context.Context, id uuid.UUID, section string, apply func(*model.Template) error) error {
	tmpl, err := s.GetTemplate(ctx, id)
	if err != nil {
		return err
	}
	if err := apply(tmpl); err != nil {
		return err
	}
	if err := persist(ctx, s.store, recordstore.ContainerTemplates, s.account, id, tmpl); err != nil {
		return err
	}
	metrics.SectionMutations.WithLabelValues(section).Inc()
	return nil
}

func (s *TemplateService) SetWasteDescription(ctx context.Context, id uuid.UUID, value model.WasteDescription) error {
	return s.mutate(ctx, id, "wasteDescription", func(t *model.Template) error {
		return draftengine.SetTemplateWasteDescription(t, value)
	})
}

func (s *TemplateService) SetExporterDetail(ctx context.Context, id uuid.UUID, value model.ExporterDetail) error {
	return s.setSection(ctx, id, "exporterDetail", value.Status,
		value.Status == model.SectionComplete && (value.ExporterAddress == nil || value.ExporterContactDetails == nil),
		func(t *model.Template) { t.ExporterDetail = value })
}

func (s *TemplateService) SetImporterDetail(ctx context.Context, id uuid.UUID, value model.ImporterDetail) error {
	return s.setSection(ctx, id, "importerDetail", value.Status,
		value.Status == model.SectionComplete && (value.ImporterAddressDetails == nil || value.ImporterContactDetails == nil),
		func(t *model.Template) { t.ImporterDetail = value })
}

func (s *TemplateService) SetCollectionDetail(ctx context.Context, id uuid.UUID, value model.CollectionDetail) error {
	return s.setSection(ctx, id, "collectionDetail", value.Status,
		value.Status == model.SectionComplete && (value.Address == nil || value.ContactDetails == nil),
		func(t *model.Template) { t.CollectionDetail = value })
}

func (s *TemplateService) SetUkExitLocation(ctx context.Context, id uuid.UUID, value model.UkExitLocation) error {
	return s.setSection(ctx, id, "ukExitLocation", value.Status,
		value.Status == model.SectionComplete && value.ExitLocation == nil,
		func(t *model.Template) { t.UkExitLocation = value })
}

func (s *TemplateService) SetTransitCountries(ctx context.Context, id uuid.UUID, value model.TransitCountries) error {
	return s.setSection(ctx, id, "transitCountries", value.Status, false,
		func(t *model.Template) { t.TransitCountries = value })
}

func (s *TemplateService) setSection(ctx context.Context, id uuid.UUID, section string, status model.SectionStatus, incomplete bool, apply func(*model.Template)) error {
	if status != model.SectionStarted && status != model.SectionComplete {
		return apperr.BadRequestf("%s status must be Started or Complete", section)
	}
	if incomplete {
		return apperr.BadRequestf("a complete %s section needs all of its values", section)
	}
	return s.mutate(ctx, id, section, func(t *model.Template) error {
		draftengine.SetTemplateSection(t, apply)
		return nil
	})
}

// CreateCarrier appends an empty carrier to a template.
func (s *TemplateService) CreateCarrier(ctx context.Context, id uuid.UUID, status model.SectionStatus) (model.Carrier, error) {
	var created model.Carrier
	err := s.mutate(ctx, id, "carriers", func(t *model.Template) error {
		var err error
		created, err = draftengine.CreateTemplateCarrier(t, status)
		return err
	})
	return created, err
}

func (s *TemplateService) SetCarrier(ctx context.Context, id, carrierID uuid.UUID, value model.Carrier, status model.SectionStatus) error {
	return s.mutate(ctx, id, "carriers", func(t *model.Template) error {
		return draftengine.SetTemplateCarrier(t, carrierID, value, status)
	})
}

func (s *TemplateService) DeleteCarrier(ctx context.Context, id, carrierID uuid.UUID) error {
	return s.mutate(ctx, id, "carriers", func(t *model.Template) error {
		return draftengine.DeleteTemplateCarrier(t, carrierID)
	})
}

// CreateRecoveryFacility appends an empty facility to a template.
func (s *TemplateService) CreateRecoveryFacility(ctx context.Context, id uuid.UUID, status model.SectionStatus) (model.RecoveryFacility, error) {
	var created model.RecoveryFacility
	err := s.mutate(ctx, id, "recoveryFacilityDetail", func(t *model.Template) error {
		var err error
		created, err = draftengine.CreateTemplateRecoveryFacility(t, status)
		return err
	})
	return created, err
}

func (s *TemplateService) SetRecoveryFacility(ctx context.Context, id, facilityID uuid.UUID, value model.RecoveryFacility, status model.SectionStatus) error {
	return s.mutate(ctx, id, "recoveryFacilityDetail", func(t *model.Template) error {
		return draftengine.SetTemplateRecoveryFacility(t, facilityID, value, status)
	})
}

func (s *TemplateService) DeleteRecoveryFacility(ctx context.Context, id, facilityID uuid.UUID) error {
	return s.mutate(ctx, id, "recoveryFacilityDetail", func(t *model.Template) error {
		return draftengine.DeleteTemplateRecoveryFacility(t, facilityID)
	})
}
