// Package service implements the draft, template and submission
// operations over a record store. All business mutation rules live in the
// draft engine and the validation rules; services load, delegate and
// persist.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/recordstore"
	"github.com/greenlist/annexvii/internal/validation"
)

func load[T any](ctx context.Context, store recordstore.Store, container recordstore.Container, account string, id uuid.UUID) (*T, error) {
	body, err := store.Get(ctx, container, account, id)
	if err != nil {
		return nil, err
	}
	var value T
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, fmt.Errorf("decode %s record %s: %w", container, id, err)
	}
	return &value, nil
}

func persist[T any](ctx context.Context, store recordstore.Store, container recordstore.Container, account string, id uuid.UUID, value *T) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s record %s: %w", container, id, err)
	}
	return store.Save(ctx, container, account, id, body)
}

func loadAll[T any](ctx context.Context, store recordstore.Store, container recordstore.Container, account string) ([]*T, error) {
	bodies, err := store.List(ctx, container, account)
	if err != nil {
		return nil, err
	}
	out := make([]*T, 0, len(bodies))
	for _, body := range bodies {
		var value T
		if err := json.Unmarshal(body, &value); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", container, err)
		}
		out = append(out, &value)
	}
	return out, nil
}

// invalid maps a failed validation result to a bad-request error carrying
// every rule message.
func invalid(errs []validation.FieldFormatError) error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return apperr.BadRequest(strings.Join(msgs, "; "))
}
