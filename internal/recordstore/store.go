package recordstore

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/greenlist/annexvii/internal/apperr"
)

// Container names one of the record families a store holds.
type Container string

const (
	ContainerDrafts      Container = "drafts"
	ContainerSubmissions Container = "submissions"
	ContainerTemplates   Container = "templates"
)

// Store persists declaration records as JSON documents keyed by id within
// a container, partitioned by account. Every operation is scoped to one
// account: a record saved under one account is invisible to every other.
// Values returned by Get and List are private copies; callers mutate
// freely and persist with Save.
type Store interface {
	Get(ctx context.Context, container Container, account string, id uuid.UUID) ([]byte, error)
	Save(ctx context.Context, container Container, account string, id uuid.UUID, body []byte) error
	Delete(ctx context.Context, container Container, account string, id uuid.UUID) error
	List(ctx context.Context, container Container, account string) ([][]byte, error)
	Count(ctx context.Context, container Container, account string) (int, error)
	SaveMany(ctx context.Context, container Container, account string, records map[uuid.UUID][]byte) error
	Close() error
}

// ErrNotFound reports a missing record in a way services can surface
// directly.
func ErrNotFound(container Container) error {
	switch container {
	case ContainerDrafts:
		return apperr.NotFound("draft not found")
	case ContainerSubmissions:
		return apperr.NotFound("submission not found")
	case ContainerTemplates:
		return apperr.NotFound("template not found")
	}
	return apperr.NotFound("record not found")
}

// PageLink points at one reachable page of a listing.
type PageLink struct {
	PageNumber int    `json:"pageNumber"`
	Token      string `json:"token"`
}

// Page is one window of a listing plus enough shape to render paging
// controls. Tokens are stringified page numbers; an unknown token means
// page one.
type Page[T any] struct {
	TotalRecords int        `json:"totalRecords"`
	TotalPages   int        `json:"totalPages"`
	CurrentPage  int        `json:"currentPage"`
	Pages        []PageLink `json:"pages"`
	Values       []T        `json:"values"`
}

// Paginate slices values into a page of at most limit items, starting at
// the page the token names.
func Paginate[T any](values []T, limit int, token string) Page[T] {
	if limit <= 0 {
		limit = 15
	}
	total := len(values)
	totalPages := (total + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}

	current := 1
	if n, err := strconv.Atoi(token); err == nil && n >= 1 && n <= totalPages {
		current = n
	}

	pages := make([]PageLink, 0, totalPages)
	for i := 1; i <= totalPages; i++ {
		pages = append(pages, PageLink{PageNumber: i, Token: strconv.Itoa(i)})
	}

	start := (current - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		TotalRecords: total,
		TotalPages:   totalPages,
		CurrentPage:  current,
		Pages:        pages,
		Values:       values[start:end],
	}
}
