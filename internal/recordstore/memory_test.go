package recordstore

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
)

func TestMemory_CRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	id := uuid.New()

	if _, err := m.Get(ctx, ContainerDrafts, "acc-001", id); !apperr.IsNotFound(err) {
		t.Fatalf("Get on empty store: %v, want NotFound", err)
	}

	if err := m.Save(ctx, ContainerDrafts, "acc-001", id, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	body, err := m.Get(ctx, ContainerDrafts, "acc-001", id)
	if err != nil || string(body) != `{"a":1}` {
		t.Fatalf("Get = %q, %v", body, err)
	}

	// Same id in another container is a distinct record.
	if _, err := m.Get(ctx, ContainerSubmissions, "acc-001", id); !apperr.IsNotFound(err) {
		t.Fatalf("containers leak: %v", err)
	}

	if err := m.Delete(ctx, ContainerDrafts, "acc-001", id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Delete(ctx, ContainerDrafts, "acc-001", id); !apperr.IsNotFound(err) {
		t.Fatalf("second Delete: %v, want NotFound", err)
	}
}

func TestMemory_CopiesBodies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	id := uuid.New()

	in := []byte(`{"a":1}`)
	if err := m.Save(ctx, ContainerDrafts, "acc-001", id, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	in[2] = 'x'

	out, err := m.Get(ctx, ContainerDrafts, "acc-001", id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(out) != `{"a":1}` {
		t.Errorf("stored body aliased the caller's slice: %q", out)
	}
	out[2] = 'y'
	again, _ := m.Get(ctx, ContainerDrafts, "acc-001", id)
	if string(again) != `{"a":1}` {
		t.Errorf("returned body aliased the store's copy: %q", again)
	}
}

func TestMemory_ListAndCount(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for i := 0; i < 3; i++ {
		if err := m.Save(ctx, ContainerTemplates, "acc-001", uuid.New(), []byte(`{}`)); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	records, err := m.List(ctx, ContainerTemplates, "acc-001")
	if err != nil || len(records) != 3 {
		t.Fatalf("List = %d records, %v", len(records), err)
	}
	count, err := m.Count(ctx, ContainerTemplates, "acc-001")
	if err != nil || count != 3 {
		t.Fatalf("Count = %d, %v", count, err)
	}
	if n, _ := m.Count(ctx, ContainerDrafts, "acc-001"); n != 0 {
		t.Errorf("drafts count = %d, want 0", n)
	}
}

func TestMemory_SaveMany(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	records := map[uuid.UUID][]byte{
		uuid.New(): []byte(`{"n":1}`),
		uuid.New(): []byte(`{"n":2}`),
	}
	if err := m.SaveMany(ctx, ContainerSubmissions, "acc-001", records); err != nil {
		t.Fatalf("SaveMany: %v", err)
	}
	count, _ := m.Count(ctx, ContainerSubmissions, "acc-001")
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestMemory_AccountIsolation(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	id := uuid.New()

	if err := m.Save(ctx, ContainerDrafts, "acc-001", id, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// The same id under another account is a distinct record.
	if _, err := m.Get(ctx, ContainerDrafts, "acc-002", id); !apperr.IsNotFound(err) {
		t.Fatalf("Get under other account: %v, want NotFound", err)
	}
	if err := m.Delete(ctx, ContainerDrafts, "acc-002", id); !apperr.IsNotFound(err) {
		t.Fatalf("Delete under other account: %v, want NotFound", err)
	}
	records, err := m.List(ctx, ContainerDrafts, "acc-002")
	if err != nil || len(records) != 0 {
		t.Fatalf("List under other account = %d records, %v", len(records), err)
	}
	if n, _ := m.Count(ctx, ContainerDrafts, "acc-002"); n != 0 {
		t.Errorf("count under other account = %d, want 0", n)
	}

	if err := m.Save(ctx, ContainerDrafts, "acc-002", id, []byte(`{"b":2}`)); err != nil {
		t.Fatalf("Save under other account: %v", err)
	}
	body, err := m.Get(ctx, ContainerDrafts, "acc-001", id)
	if err != nil || string(body) != `{"a":1}` {
		t.Fatalf("first account record changed: %q, %v", body, err)
	}
}

func TestPaginate(t *testing.T) {
	values := make([]int, 33)
	for i := range values {
		values[i] = i
	}

	tests := []struct {
		name        string
		limit       int
		token       string
		wantCurrent int
		wantLen     int
		wantFirst   int
	}{
		{"first page default token", 15, "", 1, 15, 0},
		{"second page", 15, "2", 2, 15, 15},
		{"last short page", 15, "3", 3, 3, 30},
		{"unknown token means page one", 15, "nonsense", 1, 15, 0},
		{"token past the end means page one", 15, "9", 1, 15, 0},
		{"zero limit defaults", 0, "", 1, 15, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(values, tt.limit, tt.token)
			if page.CurrentPage != tt.wantCurrent {
				t.Errorf("CurrentPage = %d, want %d", page.CurrentPage, tt.wantCurrent)
			}
			if len(page.Values) != tt.wantLen {
				t.Fatalf("len(Values) = %d, want %d", len(page.Values), tt.wantLen)
			}
			if page.Values[0] != tt.wantFirst {
				t.Errorf("Values[0] = %d, want %d", page.Values[0], tt.wantFirst)
			}
			if page.TotalRecords != 33 || page.TotalPages != 3 {
				t.Errorf("totals = %d records, %d pages", page.TotalRecords, page.TotalPages)
			}
			if len(page.Pages) != 3 || page.Pages[1].Token != "2" {
				t.Errorf("page links = %+v", page.Pages)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate([]string{}, 15, "")
	if page.TotalRecords != 0 || page.TotalPages != 1 || page.CurrentPage != 1 {
		t.Errorf("page = %+v", page)
	}
	if len(page.Values) != 0 {
		t.Errorf("values = %v", page.Values)
	}
}
