package bulk

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/metrics"
	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/recordstore"
)

// Service runs the bulk pipeline for one account: CSV in, per-row
// outcomes out, and a single write creating every submission once all
// rows are valid.
type Service struct {
	validator *Validator
	store     recordstore.Store
	account   string
	log       *slog.Logger
}

// NewService wires the bulk service, scoped to one account.
func NewService(validator *Validator, store recordstore.Store, account string, log *slog.Logger) *Service {
	return &Service{validator: validator, store: store, account: account, log: log}
}

// ValidateCSV reads a whole CSV stream and validates every data row.
// Row indexes count data rows from 1, matching how exporters see their
// spreadsheet minus the header.
func (s *Service) ValidateCSV(ctx context.Context, r io.Reader) ([]RowResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperr.BadRequest("the file has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if err := CheckHeader(header); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	var rows []FlatRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, RowFromRecord(header, record))
	}

	results := s.validator.ValidateRows(rows)
	valid, invalid := 0, 0
	for _, res := range results {
		if res.Valid() {
			valid++
		} else {
			invalid++
		}
	}
	metrics.RowsValidated.WithLabelValues("valid").Add(float64(valid))
	metrics.RowsValidated.WithLabelValues("invalid").Add(float64(invalid))
	s.log.InfoContext(ctx, "bulk rows validated", "total", len(results), "valid", valid, "invalid", invalid)
	return results, nil
}

// CreateSubmissions persists the submissions of a fully valid batch in one
// store write. Any invalid row rejects the whole batch.
func (s *Service) CreateSubmissions(ctx context.Context, results []RowResult) ([]*model.Submission, error) {
	if len(results) == 0 {
		return nil, apperr.BadRequest("the batch has no rows")
	}
	now := time.Now().UTC()
	records := make(map[uuid.UUID][]byte, len(results))
	subs := make([]*model.Submission, 0, len(results))
	for _, res := range results {
		if !res.Valid() || res.Submission == nil {
			return nil, apperr.BadRequestf("row %d is not valid", res.Index)
		}
		sub := res.Submission
		sub.SubmissionDeclaration = model.DeclarationData{
			DeclarationTimestamp: now,
			TransactionID:        model.TransactionID(sub.ID, now),
		}
		sub.SubmissionState.Timestamp = now
		body, err := json.Marshal(sub)
		if err != nil {
			return nil, fmt.Errorf("encode submission %s: %w", sub.ID, err)
		}
		records[sub.ID] = body
		subs = append(subs, sub)
	}
	if err := s.store.SaveMany(ctx, recordstore.ContainerSubmissions, s.account, records); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "bulk submissions created", "count", len(subs))
	return subs, nil
}
