package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/draftengine"
	"github.com/greenlist/annexvii/internal/metrics"
	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/recordstore"
	"github.com/greenlist/annexvii/internal/validation"
)

// DraftService manages the lifecycle of one account's draft declarations
// up to and including the moment they are declared as submissions.
type DraftService struct {
	store   recordstore.Store
	account string
	log     *slog.Logger
}

// NewDraftService wires a draft service over the given store, scoped to
// one account. Every record it reads or writes belongs to that account.
func NewDraftService(store recordstore.Store, account string, log *slog.Logger) *DraftService {
	return &DraftService{store: store, account: account, log: log}
}

// CreateDraft creates an empty draft under the exporter's own reference.
func (s *DraftService) CreateDraft(ctx context.Context, reference string) (*model.DraftSubmission, error) {
	res := validation.Reference(reference, validation.LocaleEN, validation.ContextAPI)
	if !res.Valid {
		return nil, invalid(res.Errors)
	}
	draft := model.NewDraft(uuid.New(), res.Value)
	if err := persist(ctx, s.store, recordstore.ContainerDrafts, s.account, draft.ID, draft); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "draft created", "id", draft.ID, "reference", draft.Reference)
	return draft, nil
}

// CreateDraftFromTemplate instantiates a draft from a stored template.
func (s *DraftService) CreateDraftFromTemplate(ctx context.Context, templateID uuid.UUID, reference string) (*model.DraftSubmission, error) {
	res := validation.Reference(reference, validation.LocaleEN, validation.ContextAPI)
	if !res.Valid {
		return nil, invalid(res.Errors)
	}
	tmpl, err := load[model.Template](ctx, s.store, recordstore.ContainerTemplates, s.account, templateID)
	if err != nil {
		return nil, err
	}
	draft := draftengine.DraftFromTemplate(tmpl, uuid.New(), res.Value)
	if err := persist(ctx, s.store, recordstore.ContainerDrafts, s.account, draft.ID, draft); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "draft created from template", "id", draft.ID, "template", templateID)
	return draft, nil
}

// CreateDraftFromSubmission copies a past submission into a new draft so a
// repeat shipment starts pre-filled.
func (s *DraftService) CreateDraftFromSubmission(ctx context.Context, submissionID uuid.UUID, reference string) (*model.DraftSubmission, error) {
	res := validation.Reference(reference, validation.LocaleEN, validation.ContextAPI)
	if !res.Valid {
		return nil, invalid(res.Errors)
	}
	sub, err := load[model.Submission](ctx, s.store, recordstore.ContainerSubmissions, s.account, submissionID)
	if err != nil {
		return nil, err
	}
	draft := draftengine.DraftFromSubmission(sub, uuid.New(), res.Value)
	if err := persist(ctx, s.store, recordstore.ContainerDrafts, s.account, draft.ID, draft); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "draft created from submission", "id", draft.ID, "submission", submissionID)
	return draft, nil
}

// GetDraft fetches one draft. Deleted drafts behave as missing.
func (s *DraftService) GetDraft(ctx context.Context, id uuid.UUID) (*model.DraftSubmission, error) {
	draft, err := load[model.DraftSubmission](ctx, s.store, recordstore.ContainerDrafts, s.account, id)
	if err != nil {
		return nil, err
	}
	if draft.SubmissionState.Status == model.StateDeleted {
		return nil, recordstore.ErrNotFound(recordstore.ContainerDrafts)
	}
	return draft, nil
}

// GetDrafts lists in-progress drafts, newest first, one page at a time.
func (s *DraftService) GetDrafts(ctx context.Context, limit int, token string) (recordstore.Page[model.DraftSubmission], error) {
	all, err := loadAll[model.DraftSubmission](ctx, s.store, recordstore.ContainerDrafts, s.account)
	if err != nil {
		return recordstore.Page[model.DraftSubmission]{}, err
	}
	kept := make([]model.DraftSubmission, 0, len(all))
	for _, d := range all {
		if d.SubmissionState.Status == model.StateInProgress {
			kept = append(kept, *d)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].SubmissionState.Timestamp.After(kept[j].SubmissionState.Timestamp)
	})
	return recordstore.Paginate(kept, limit, token), nil
}

// DeleteDraft soft-deletes a draft. The record stays in the store but no
// read or write operation will see it again.
func (s *DraftService) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return err
	}
	if draft.SubmissionState.Status != model.StateInProgress {
		return apperr.BadRequestf("draft in state %s cannot be deleted", draft.SubmissionState.Status)
	}
	draft.SubmissionState = model.SubmissionState{
		Status:    model.StateDeleted,
		Timestamp: time.Now().UTC(),
	}
	if err := persist(ctx, s.store, recordstore.ContainerDrafts, s.account, id, draft); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "draft deleted", "id", id)
	return nil
}

// mutate loads a draft, applies one engine operation and persists the
// result.
func (s *DraftService) mutate(ctx context.Context, id uuid.UUID, section string, apply func(*model.DraftSubmission) error) error {
	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return err
	}
	if err := apply(draft); err != nil {
		return err
	}
	if err := persist(ctx, s.store, recordstore.ContainerDrafts, s.account, id, draft); err != nil {
		return err
	}
	metrics.SectionMutations.WithLabelValues(section).Inc()
	return nil
}

// SetReference changes the exporter's own reference on an editable draft.
func (s *DraftService) SetReference(ctx context.Context, id uuid.UUID, reference string) error {
	res := validation.Reference(reference, validation.LocaleEN, validation.ContextAPI)
	if !res.Valid {
		return invalid(res.Errors)
	}
	return s.mutate(ctx, id, "reference", func(d *model.DraftSubmission) error {
		return draftengine.SetReference(d, res.Value)
	})
}

func (s *DraftService) SetWasteDescription(ctx context.Context, id uuid.UUID, value model.WasteDescription) error {
	return s.mutate(ctx, id, "wasteDescription", func(d *model.DraftSubmission) error {
		return draftengine.SetWasteDescription(d, value)
	})
}

func (s *DraftService) SetWasteQuantity(ctx context.Context, id uuid.UUID, value model.WasteQuantity) error {
	return s.mutate(ctx, id, "wasteQuantity", func(d *model.DraftSubmission) error {
		return draftengine.SetWasteQuantity(d, value)
	})
}

func (s *DraftService) SetCollectionDate(ctx context.Context, id uuid.UUID, value model.CollectionDate) error {
	return s.mutate(ctx, id, "collectionDate", func(d *model.DraftSubmission) error {
		return draftengine.SetCollectionDate(d, value)
	})
}

func (s *DraftService) SetExporterDetail(ctx context.Context, id uuid.UUID, value model.ExporterDetail) error {
	return s.mutate(ctx, id, "exporterDetail", func(d *model.DraftSubmission) error {
		return draftengine.SetExporterDetail(d, value)
	})
}

func (s *DraftService) SetImporterDetail(ctx context.Context, id uuid.UUID, value model.ImporterDetail) error {
	return s.mutate(ctx, id, "importerDetail", func(d *model.DraftSubmission) error {
		return draftengine.SetImporterDetail(d, value)
	})
}

func (s *DraftService) SetCollectionDetail(ctx context.Context, id uuid.UUID, value model.CollectionDetail) error {
	return s.mutate(ctx, id, "collectionDetail", func(d *model.DraftSubmission) error {
		return draftengine.SetCollectionDetail(d, value)
	})
}

func (s *DraftService) SetUkExitLocation(ctx context.Context, id uuid.UUID, value model.UkExitLocation) error {
	return s.mutate(ctx, id, "ukExitLocation", func(d *model.DraftSubmission) error {
		return draftengine.SetUkExitLocation(d, value)
	})
}

func (s *DraftService) SetTransitCountries(ctx context.Context, id uuid.UUID, value model.TransitCountries) error {
	return s.mutate(ctx, id, "transitCountries", func(d *model.DraftSubmission) error {
		return draftengine.SetTransitCountries(d, value)
	})
}

func (s *DraftService) SetSubmissionConfirmation(ctx context.Context, id uuid.UUID, confirmed bool) error {
	return s.mutate(ctx, id, "submissionConfirmation", func(d *model.DraftSubmission) error {
		return draftengine.SetConfirmation(d, confirmed)
	})
}

// CreateCarrier appends an empty carrier to the draft's carrier section.
func (s *DraftService) CreateCarrier(ctx context.Context, id uuid.UUID, status model.SectionStatus) (model.Carrier, error) {
	var created model.Carrier
	err := s.mutate(ctx, id, "carriers", func(d *model.DraftSubmission) error {
		var err error
		created, err = draftengine.CreateCarrier(d, status)
		return err
	})
	return created, err
}

func (s *DraftService) GetCarrier(ctx context.Context, id, carrierID uuid.UUID) (model.Carrier, error) {
	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return model.Carrier{}, err
	}
	return draftengine.GetCarrier(draft, carrierID)
}

func (s *DraftService) SetCarrier(ctx context.Context, id, carrierID uuid.UUID, value model.Carrier, status model.SectionStatus) error {
	return s.mutate(ctx, id, "carriers", func(d *model.DraftSubmission) error {
		return draftengine.SetCarrier(d, carrierID, value, status)
	})
}

func (s *DraftService) DeleteCarrier(ctx context.Context, id, carrierID uuid.UUID) error {
	return s.mutate(ctx, id, "carriers", func(d *model.DraftSubmission) error {
		return draftengine.DeleteCarrier(d, carrierID)
	})
}

// CreateRecoveryFacility appends an empty facility to the draft.
func (s *DraftService) CreateRecoveryFacility(ctx context.Context, id uuid.UUID, status model.SectionStatus) (model.RecoveryFacility, error) {
	var created model.RecoveryFacility
	err := s.mutate(ctx, id, "recoveryFacilityDetail", func(d *model.DraftSubmission) error {
		var err error
		created, err = draftengine.CreateRecoveryFacility(d, status)
		return err
	})
	return created, err
}

func (s *DraftService) GetRecoveryFacility(ctx context.Context, id, facilityID uuid.UUID) (model.RecoveryFacility, error) {
	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return model.RecoveryFacility{}, err
	}
	return draftengine.GetRecoveryFacility(draft, facilityID)
}

func (s *DraftService) SetRecoveryFacility(ctx context.Context, id, facilityID uuid.UUID, value model.RecoveryFacility, status model.SectionStatus) error {
	return s.mutate(ctx, id, "recoveryFacilityDetail", func(d *model.DraftSubmission) error {
		return draftengine.SetRecoveryFacility(d, facilityID, value, status)
	})
}

func (s *DraftService) DeleteRecoveryFacility(ctx context.Context, id, facilityID uuid.UUID) error {
	return s.mutate(ctx, id, "recoveryFacilityDetail", func(d *model.DraftSubmission) error {
		return draftengine.DeleteRecoveryFacility(d, facilityID)
	})
}

// Declare turns a confirmed draft into a submission. The draft record is
// replaced by a submission record under the same id; the initial lifecycle
// state depends on whether quantity or date is still an estimate.
func (s *DraftService) Declare(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	draft, err := s.GetDraft(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.SubmissionState.Status != model.StateInProgress {
		return nil, apperr.BadRequestf("draft in state %s cannot be declared", draft.SubmissionState.Status)
	}
	if draft.SubmissionDeclaration.Status != model.SectionNotStarted || !draft.SubmissionConfirmation.Confirmed {
		return nil, apperr.BadRequest("draft must be confirmed before it can be declared")
	}
	if !draft.AllSectionsComplete() {
		return nil, apperr.BadRequest("every section must be complete before the draft can be declared")
	}

	now := time.Now().UTC()
	state := model.StateSubmittedWithActuals
	if draft.HasEstimates() {
		state = model.StateSubmittedWithEstimates
	}
	sub := &model.Submission{
		ID:                     draft.ID,
		Reference:              draft.Reference,
		WasteDescription:       draft.WasteDescription,
		WasteQuantity:          draft.WasteQuantity,
		ExporterDetail:         draft.ExporterDetail,
		ImporterDetail:         draft.ImporterDetail,
		CollectionDate:         draft.CollectionDate,
		Carriers:               draft.Carriers,
		CollectionDetail:       draft.CollectionDetail,
		UkExitLocation:         draft.UkExitLocation,
		TransitCountries:       draft.TransitCountries,
		RecoveryFacilityDetail: draft.RecoveryFacilityDetail,
		SubmissionDeclaration: model.DeclarationData{
			DeclarationTimestamp: now,
			TransactionID:        model.TransactionID(draft.ID, now),
		},
		SubmissionState: model.SubmissionState{Status: state, Timestamp: now},
	}

	if err := persist(ctx, s.store, recordstore.ContainerSubmissions, s.account, sub.ID, sub); err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, recordstore.ContainerDrafts, s.account, draft.ID); err != nil {
		return nil, err
	}
	metrics.Declarations.WithLabelValues(string(state)).Inc()
	s.log.InfoContext(ctx, "draft declared", "id", sub.ID, "transactionId", sub.SubmissionDeclaration.TransactionID, "state", state)
	return sub, nil
}
