package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/metrics"
	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/recordstore"
)

// SubmissionService reads one account's declared submissions and applies
// the only mutations allowed after declaration: cancellation and
// replacing estimates with actuals.
type SubmissionService struct {
	store   recordstore.Store
	account string
	log     *slog.Logger
}

// NewSubmissionService wires a submission service over the given store,
// scoped to one account.
func NewSubmissionService(store recordstore.Store, account string, log *slog.Logger) *SubmissionService {
	return &SubmissionService{store: store, account: account, log: log}
}

// GetSubmission fetches one submission. Cancelled submissions behave as
// missing.
func (s *SubmissionService) GetSubmission(ctx context.Context, id uuid.UUID) (*model.Submission, error) {
	sub, err := load[model.Submission](ctx, s.store, recordstore.ContainerSubmissions, s.account, id)
	if err != nil {
		return nil, err
	}
	if sub.SubmissionState.Status.Terminal() {
		return nil, recordstore.ErrNotFound(recordstore.ContainerSubmissions)
	}
	return sub, nil
}

// SubmissionQuery filters a submission listing. An empty States slice
// keeps every non-terminal state.
type SubmissionQuery struct {
	States        []model.SubmissionStateStatus
	EstimatesOnly bool
	Limit         int
	Token         string
}

// GetSubmissions lists submissions newest first, filtered and paged.
func (s *SubmissionService) GetSubmissions(ctx context.Context, q SubmissionQuery) (recordstore.Page[model.Submission], error) {
	all, err := loadAll[model.Submission](ctx, s.store, recordstore.ContainerSubmissions, s.account)
	if err != nil {
		return recordstore.Page[model.Submission]{}, err
	}
	kept := make([]model.Submission, 0, len(all))
	for _, sub := range all {
		if !matchesQuery(sub, q) {
			continue
		}
		kept = append(kept, *sub)
	}
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].SubmissionDeclaration.DeclarationTimestamp.After(kept[j].SubmissionDeclaration.DeclarationTimestamp)
	})
	return recordstore.Paginate(kept, q.Limit, q.Token), nil
}

func matchesQuery(sub *model.Submission, q SubmissionQuery) bool {
	if len(q.States) == 0 {
		if sub.SubmissionState.Status.Terminal() {
			return false
		}
	} else {
		found := false
		for _, st := range q.States {
			if sub.SubmissionState.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.EstimatesOnly && !sub.HasEstimates() {
		return false
	}
	return true
}

// SubmissionCounts summarises the exporter's records for the dashboard.
type SubmissionCounts struct {
	CompletedWithEstimates int `json:"completedWithEstimates"`
	CompletedWithActuals   int `json:"completedWithActuals"`
	Incomplete             int `json:"incomplete"`
}

// GetNumberOfSubmissions counts submissions by progress group. Incomplete
// covers in-progress drafts.
func (s *SubmissionService) GetNumberOfSubmissions(ctx context.Context) (SubmissionCounts, error) {
	var counts SubmissionCounts
	subs, err := loadAll[model.Submission](ctx, s.store, recordstore.ContainerSubmissions, s.account)
	if err != nil {
		return counts, err
	}
	for _, sub := range subs {
		switch sub.SubmissionState.Status {
		case model.StateSubmittedWithEstimates:
			counts.CompletedWithEstimates++
		case model.StateSubmittedWithActuals, model.StateUpdatedWithActuals:
			counts.CompletedWithActuals++
		}
	}
	drafts, err := loadAll[model.DraftSubmission](ctx, s.store, recordstore.ContainerDrafts, s.account)
	if err != nil {
		return counts, err
	}
	for _, d := range drafts {
		if d.SubmissionState.Status == model.StateInProgress {
			counts.Incomplete++
		}
	}
	return counts, nil
}

// CancelSubmission cancels a submission that still rests on estimates.
// Reason is required when the type is Other.
func (s *SubmissionService) CancelSubmission(ctx context.Context, id uuid.UUID, cancellation model.CancellationType) error {
	if cancellation.Type == model.CancellationOther && cancellation.Reason == "" {
		return apperr.BadRequest("a cancellation reason is required")
	}
	sub, err := load[model.Submission](ctx, s.store, recordstore.ContainerSubmissions, s.account, id)
	if err != nil {
		// A record that is still a draft has nothing to cancel yet;
		// treat the call as settled.
		if apperr.IsNotFound(err) {
			if draft, derr := load[model.DraftSubmission](ctx, s.store, recordstore.ContainerDrafts, s.account, id); derr == nil &&
				draft.SubmissionState.Status == model.StateInProgress {
				return nil
			}
		}
		return err
	}
	switch sub.SubmissionState.Status {
	case model.StateSubmittedWithEstimates:
	case model.StateCancelled:
		// Cancelling twice settles on the first cancellation.
		return nil
	default:
		return apperr.BadRequestf("submission in state %s cannot be cancelled", sub.SubmissionState.Status)
	}
	sub.SubmissionState = model.SubmissionState{
		Status:           model.StateCancelled,
		Timestamp:        time.Now().UTC(),
		CancellationType: &cancellation,
	}
	if err := persist(ctx, s.store, recordstore.ContainerSubmissions, s.account, id, sub); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "submission cancelled", "id", id, "type", cancellation.Type)
	return nil
}

// SetWasteQuantity records the measured quantity on an estimate-first
// submission. Only actual-typed values on a SubmittedWithEstimates record
// change anything; every other call is accepted and ignored. The previous
// estimate stays in its slot.
func (s *SubmissionService) SetWasteQuantity(ctx context.Context, id uuid.UUID, value model.WasteQuantity) error {
	sub, err := load[model.Submission](ctx, s.store, recordstore.ContainerSubmissions, s.account, id)
	if err != nil {
		return err
	}
	if sub.SubmissionState.Status != model.StateSubmittedWithEstimates ||
		value.Kind != model.QuantityActual || value.ActualData == nil {
		return nil
	}
	data := *value.ActualData
	if sub.WasteDescription.WasteCode != nil {
		data.Unit = model.DeriveUnit(sub.WasteDescription.WasteCode.Type, data.QuantityType)
	}
	sub.WasteQuantity.Kind = model.QuantityActual
	sub.WasteQuantity.ActualData = &data
	return s.persistActual(ctx, sub)
}

// SetCollectionDate records the actual collection date on an
// estimate-first submission, with the same no-op tolerance as
// SetWasteQuantity.
func (s *SubmissionService) SetCollectionDate(ctx context.Context, id uuid.UUID, value model.CollectionDate) error {
	sub, err := load[model.Submission](ctx, s.store, recordstore.ContainerSubmissions, s.account, id)
	if err != nil {
		return err
	}
	if sub.SubmissionState.Status != model.StateSubmittedWithEstimates ||
		value.Kind != model.DateActual || value.ActualDate == nil {
		return nil
	}
	date := *value.ActualDate
	sub.CollectionDate.Kind = model.DateActual
	sub.CollectionDate.ActualDate = &date
	return s.persistActual(ctx, sub)
}

func (s *SubmissionService) persistActual(ctx context.Context, sub *model.Submission) error {
	if !sub.HasEstimates() {
		sub.SubmissionState = model.SubmissionState{
			Status:    model.StateUpdatedWithActuals,
			Timestamp: time.Now().UTC(),
		}
	}
	if err := persist(ctx, s.store, recordstore.ContainerSubmissions, s.account, sub.ID, sub); err != nil {
		return err
	}
	metrics.ActualUpdates.Inc()
	s.log.InfoContext(ctx, "submission updated with actuals", "id", sub.ID, "state", sub.SubmissionState.Status)
	return nil
}
