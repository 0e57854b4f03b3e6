package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
	"github.com/greenlist/annexvii/internal/model"
	"github.com/greenlist/annexvii/internal/recordstore"
)

func TestCreateTemplate(t *testing.T) {
	svc := NewTemplateService(recordstore.NewMemory(), testAccount, testLogger())
	tmpl, err := svc.CreateTemplate(context.Background(), "quarterly metals", "standing export")
	if err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	got, err := svc.GetTemplate(context.Background(), tmpl.ID)
	if err != nil {
		t.Fatalf("GetTemplate: %v", err)
	}
	if got.TemplateDetails.Name != "quarterly metals" {
		t.Errorf("name = %q", got.TemplateDetails.Name)
	}
	if got.WasteDescription.Status != model.SectionNotStarted {
		t.Errorf("waste description = %s", got.WasteDescription.Status)
	}
}

func TestCreateTemplate_InvalidDetails(t *testing.T) {
	svc := NewTemplateService(recordstore.NewMemory(), testAccount, testLogger())
	if _, err := svc.CreateTemplate(context.Background(), "", ""); !apperr.IsBadRequest(err) {
		t.Fatalf("empty name: %v, want BadRequest", err)
	}
	if _, err := svc.CreateTemplate(context.Background(), "bad/name", ""); !apperr.IsBadRequest(err) {
		t.Fatalf("illegal characters: %v, want BadRequest", err)
	}
}

func TestCreateTemplate_NameConflict(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(recordstore.NewMemory(), testAccount, testLogger())
	if _, err := svc.CreateTemplate(ctx, "Quarterly Metals", ""); err != nil {
		t.Fatalf("CreateTemplate: %v", err)
	}
	// Comparison is case-insensitive.
	_, err := svc.CreateTemplate(ctx, "quarterly metals", "")
	if !apperr.IsConflict(err) {
		t.Fatalf("err = %v, want Conflict", err)
	}
}

func TestUpdateTemplateDetails(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(recordstore.NewMemory(), testAccount, testLogger())
	first, _ := svc.CreateTemplate(ctx, "first", "")
	second, _ := svc.CreateTemplate(ctx, "second", "")

	// Keeping your own name is not a conflict.
	if err := svc.UpdateTemplateDetails(ctx, first.ID, "first", "new description"); err != nil {
		t.Fatalf("same-name update: %v", err)
	}
	// Taking another template's name is.
	if err := svc.UpdateTemplateDetails(ctx, second.ID, "First", ""); !apperr.IsConflict(err) {
		t.Fatalf("err = %v, want Conflict", err)
	}
	if err := svc.UpdateTemplateDetails(ctx, second.ID, "renamed", ""); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, _ := svc.GetTemplate(ctx, second.ID)
	if got.TemplateDetails.Name != "renamed" {
		t.Errorf("name = %q", got.TemplateDetails.Name)
	}
}

func TestDeleteTemplate_Hard(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemory()
	svc := NewTemplateService(store, testAccount, testLogger())
	tmpl, _ := svc.CreateTemplate(ctx, "doomed", "")

	if err := svc.DeleteTemplate(ctx, tmpl.ID); err != nil {
		t.Fatalf("DeleteTemplate: %v", err)
	}
	if _, err := svc.GetTemplate(ctx, tmpl.ID); !apperr.IsNotFound(err) {
		t.Fatalf("GetTemplate after delete: %v, want NotFound", err)
	}
	// Unlike drafts, templates are removed outright.
	count, _ := store.Count(ctx, recordstore.ContainerTemplates, testAccount)
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
	// The name is free again.
	if _, err := svc.CreateTemplate(ctx, "doomed", ""); err != nil {
		t.Errorf("recreate: %v", err)
	}
}

func TestGetNumberOfTemplates(t *testing.T) {
	ctx := context.Background()
	svc := NewTemplateService(recordstore.NewMemory(), testAccount, testLogger())
	for _, name := range []string{"one", "two", "three"} {
		if _, err := svc.CreateTemplate(ctx, name, ""); err != nil {
			t.Fatalf("CreateTemplate %s: %v", name, err)
		}
	}
	n, err := svc.GetNumberOfTemplates(ctx)
	if err != nil || n != 3 {
		t.Fatalf("GetNumberOfTemplates = %d, %v", n, err)
	}
}

func TestCreateTemplateFromDraft(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemory()
	draft := completeDraft(t, true)
	storeDraft(t, store, draft)
	svc := NewTemplateService(store, testAccount, testLogger())

	tmpl, err := svc.CreateTemplateFromDraft(ctx, draft.ID, "repeat export", "")
	if err != nil {
		t.Fatalf("CreateTemplateFromDraft: %v", err)
	}
	if tmpl.WasteDescription.Status != model.SectionComplete {
		t.Errorf("waste description = %s", tmpl.WasteDescription.Status)
	}
	if len(tmpl.Carriers.Values) != 1 || tmpl.Carriers.Values[0].TransportDetails != nil {
		t.Errorf("carriers = %+v, want one with transport stripped", tmpl.Carriers.Values)
	}
}

func TestCreateTemplateFromDraft_DeletedDraft(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemory()
	drafts := NewDraftService(store, testAccount, testLogger())
	draft, _ := drafts.CreateDraft(ctx, "REF-001")
	if err := drafts.DeleteDraft(ctx, draft.ID); err != nil {
		t.Fatalf("DeleteDraft: %v", err)
	}
	svc := NewTemplateService(store, testAccount, testLogger())
	_, err := svc.CreateTemplateFromDraft(ctx, draft.ID, "ghost", "")
	if !apperr.IsNotFound(err) {
		t.Fatalf("err = %v, want NotFound", err)
	}
}

func TestCreateTemplateFromSubmission(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemory()
	sub := declaredSubmission(t, store, false)
	svc := NewTemplateService(store, testAccount, testLogger())

	tmpl, err := svc.CreateTemplateFromSubmission(ctx, sub.ID, "from submission", "")
	if err != nil {
		t.Fatalf("CreateTemplateFromSubmission: %v", err)
	}
	if tmpl.ImporterDetail.Status != model.SectionComplete {
		t.Errorf("importer = %s", tmpl.ImporterDetail.Status)
	}
	if _, err := svc.CreateTemplateFromSubmission(ctx, uuid.New(), "missing", ""); !apperr.IsNotFound(err) {
		t.Errorf("missing submission: %v, want NotFound", err)
	}
}

func TestCreateTemplate_SameNameDifferentAccounts(t *testing.T) {
	ctx := context.Background()
	store := recordstore.NewMemory()
	first := NewTemplateService(store, "acc-001", testLogger())
	second := NewTemplateService(store, "acc-002", testLogger())

	if _, err := first.CreateTemplate(ctx, "quarterly metals", ""); err != nil {
		t.Fatalf("first account: %v", err)
	}
	// Names are unique within an account, so the neighbour is free to reuse it.
	if _, err := second.CreateTemplate(ctx, "quarterly metals", ""); err != nil {
		t.Fatalf("second account: %v", err)
	}
	if _, err := second.CreateTemplate(ctx, "Quarterly Metals", ""); !apperr.IsConflict(err) {
		t.Fatalf("err = %v, want Conflict within the account", err)
	}

	for _, svc := range []*TemplateService{first, second} {
		n, err := svc.GetNumberOfTemplates(ctx)
		if err != nil || n != 1 {
			t.Errorf("GetNumberOfTemplates = %d, %v, want 1", n, err)
		}
	}
}
