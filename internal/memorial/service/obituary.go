package service

import (
	"context"
	"errors"
	"strings"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/store"
	"github.com/willowgate/memorial/pkg/idx"
	"github.com/willowgate/memorial/pkg/slogx"
)

// ErrNotOwner is returned when a mutation is attempted by someone other than
// the obituary's author.
var ErrNotOwner = errors.New("not the obituary author")

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// apiSortFields maps the public sortBy parameter onto store sort columns.
// Anything unknown falls back to creation time.
var apiSortFields = map[string]string{
	"createdAt": store.SortCreatedAt,
	"deathDate": store.SortDeathDate,
	"firstName": store.SortFirstName,
	"lastName":  store.SortLastName,
	"viewCount": store.SortViewCount,
}

// ListParams are the public listing query parameters, pre-normalization.
type ListParams struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc" (default)
}

// Pagination describes the page that was returned and the overall result set.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

type ObituaryService struct {
	Store store.Store
}

// ListPublished returns the public listing: published obituaries only, with
// optional text search, allow-listed sorting, and pagination.
func (s *ObituaryService) ListPublished(
	ctx context.Context,
	p ListParams,
) ([]domain.Obituary, Pagination, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}

	sortBy, ok := apiSortFields[p.SortBy]
	if !ok {
		sortBy = store.SortCreatedAt
	}

	published := true
	filter := store.ObituaryFilter{
		Published: &published,
		Search:    strings.TrimSpace(p.Search),
		SortBy:    sortBy,
		SortDesc:  p.SortOrder != "asc",
		Page:      p.Page,
		Limit:     p.Limit,
	}

	obituaries, total, err := s.Store.Obituaries().ListObituaries(ctx, filter)
	if err != nil {
		return nil, Pagination{}, err
	}

	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return obituaries, Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: pages}, nil
}

// Get fetches a single obituary and counts the view. The increment is exactly
// one per successful fetch, repeated fetches included, and happens in-engine.
func (s *ObituaryService) Get(ctx context.Context, id string) (domain.Obituary, error) {
	if err := s.Store.Obituaries().IncrementViewCount(ctx, id); err != nil {
		return domain.Obituary{}, err
	}
	return s.Store.Obituaries().GetObituary(ctx, id)
}

// ListMine returns everything the user authored, drafts included, newest
// first. Per-author volumes are small, so no pagination.
func (s *ObituaryService) ListMine(ctx context.Context, authorID string) ([]domain.Obituary, error) {
	obituaries, _, err := s.Store.Obituaries().ListObituaries(ctx, store.ObituaryFilter{
		AuthorID: authorID,
		SortBy:   store.SortCreatedAt,
		SortDesc: true,
	})
	return obituaries, err
}

// Create stores a new obituary owned by the caller.
func (s *ObituaryService) Create(
	ctx context.Context,
	authorID string,
	o domain.Obituary,
) (domain.Obituary, error) {
	o.ID = idx.New()
	o.AuthorID = authorID
	o.ViewCount = 0

	if err := s.Store.Obituaries().CreateObituary(ctx, o); err != nil {
		return domain.Obituary{}, err
	}

	slogx.FromContext(ctx).Info("obituary created",
		"obituary_id", o.ID, "author_id", authorID, "published", o.IsPublished)
	return s.Store.Obituaries().GetObituary(ctx, o.ID)
}

// Update replaces an obituary's content. Only the author may mutate it;
// anyone else gets ErrNotOwner.
func (s *ObituaryService) Update(
	ctx context.Context,
	actorID, id string,
	o domain.Obituary,
) (domain.Obituary, error) {
	existing, err := s.Store.Obituaries().GetObituary(ctx, id)
	if err != nil {
		return domain.Obituary{}, err
	}
	if existing.AuthorID != actorID {
		return domain.Obituary{}, ErrNotOwner
	}

	o.ID = id
	o.AuthorID = existing.AuthorID
	if err := s.Store.Obituaries().UpdateObituary(ctx, o); err != nil {
		return domain.Obituary{}, err
	}
	return s.Store.Obituaries().GetObituary(ctx, id)
}

// Delete removes an obituary. The author may delete their own and an admin
// may delete any; comments go with it via the schema's cascade.
func (s *ObituaryService) Delete(ctx context.Context, actor domain.User, id string) error {
	existing, err := s.Store.Obituaries().GetObituary(ctx, id)
	if err != nil {
		return err
	}
	if existing.AuthorID != actor.ID && !actor.Role.IsAdmin() {
		return ErrNotOwner
	}
	return s.Store.Obituaries().DeleteObituary(ctx, id)
}

// AdminList returns all obituaries regardless of publication state, newest
// first, optionally filtered by author.
func (s *ObituaryService) AdminList(ctx context.Context, authorID string) ([]domain.Obituary, error) {
	obituaries, _, err := s.Store.Obituaries().ListObituaries(ctx, store.ObituaryFilter{
		AuthorID: authorID,
		SortBy:   store.SortCreatedAt,
		SortDesc: true,
	})
	return obituaries, err
}

// AdminDelete removes any obituary without an ownership check. Role gating
// happens at the route.
func (s *ObituaryService) AdminDelete(ctx context.Context, id string) error {
	return s.Store.Obituaries().DeleteObituary(ctx, id)
}
