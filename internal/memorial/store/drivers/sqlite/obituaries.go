package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/store"
)

type obituariesRepo struct {
	q querier
}

const obituaryColumns = `
	o.id, o.title, o.first_name, o.last_name, o.maiden_name, o.featured_image,
	o.description, o.birth_date, o.death_date, o.funeral_date, o.visitation_date,
	o.funeral_location, o.graveyard_location, o.survived_by, o.predeceased,
	o.author_id, o.is_published, o.view_count, o.created_at, o.updated_at,
	u.first_name, u.last_name, u.email`

const obituaryFrom = ` FROM obituaries o JOIN users u ON u.id = o.author_id`

var sortColumns = map[string]string{
	store.SortCreatedAt: "o.created_at",
	store.SortDeathDate: "o.death_date",
	store.SortFirstName: "o.first_name",
	store.SortLastName:  "o.last_name",
	store.SortViewCount: "o.view_count",
}

func scanObituary(row interface{ Scan(...any) error }) (domain.Obituary, error) {
	var (
		o                         domain.Obituary
		funeralDate               sql.NullTime
		visitationDate            sql.NullTime
		funeralLoc, graveyardLoc  sql.NullString
		survivedBy, predeceased   string
		authorFirst, authorLast   string
		authorEmail               string
	)

	err := row.Scan(
		&o.ID, &o.Title, &o.FirstName, &o.LastName, &o.MaidenName, &o.FeaturedImage,
		&o.Description, &o.Dates.BirthDate, &o.Dates.DeathDate, &funeralDate, &visitationDate,
		&funeralLoc, &graveyardLoc, &survivedBy, &predeceased,
		&o.AuthorID, &o.IsPublished, &o.ViewCount, &o.CreatedAt, &o.UpdatedAt,
		&authorFirst, &authorLast, &authorEmail,
	)
	if err != nil {
		return domain.Obituary{}, err
	}

	o.Dates.FuneralDate = mapNullTimePtr(funeralDate)
	o.Dates.VisitationDate = mapNullTimePtr(visitationDate)
	o.Author = &domain.AuthorRef{
		ID:        o.AuthorID,
		FirstName: authorFirst,
		LastName:  authorLast,
		Email:     authorEmail,
	}

	if funeralLoc.Valid {
		var loc domain.ObituaryLocation
		if err := json.Unmarshal([]byte(funeralLoc.String), &loc); err != nil {
			return domain.Obituary{}, fmt.Errorf("sqlite: decode funeral location: %w", err)
		}
		o.FuneralLocation = &loc
	}
	if graveyardLoc.Valid {
		var loc domain.ObituaryLocation
		if err := json.Unmarshal([]byte(graveyardLoc.String), &loc); err != nil {
			return domain.Obituary{}, fmt.Errorf("sqlite: decode graveyard location: %w", err)
		}
		o.GraveyardLocation = &loc
	}
	if err := json.Unmarshal([]byte(survivedBy), &o.SurvivedBy); err != nil {
		return domain.Obituary{}, fmt.Errorf("sqlite: decode survived_by: %w", err)
	}
	if err := json.Unmarshal([]byte(predeceased), &o.Predeceased); err != nil {
		return domain.Obituary{}, fmt.Errorf("sqlite: decode predeceased: %w", err)
	}

	return o, nil
}

func (r *obituariesRepo) GetObituary(ctx context.Context, id string) (domain.Obituary, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+obituaryColumns+obituaryFrom+` WHERE o.id = ?`, id)
	o, err := scanObituary(row)
	if err != nil {
		return domain.Obituary{}, mapNotFound(err)
	}
	return o, nil
}

// buildFilter translates an ObituaryFilter into a WHERE clause and args.
func buildFilter(f store.ObituaryFilter) (string, []any) {
	conds := []string{"1=1"}
	args := []any{}

	if f.Published != nil {
		conds = append(conds, "o.is_published = ?")
		args = append(args, *f.Published)
	}
	if f.AuthorID != "" {
		conds = append(conds, "o.author_id = ?")
		args = append(args, f.AuthorID)
	}
	if f.Search != "" {
		// Case-insensitive substring search over the indexed text fields.
		like := "%" + escapeLike(f.Search) + "%"
		conds = append(conds,
			`(o.title LIKE ? ESCAPE '\' OR o.first_name LIKE ? ESCAPE '\' OR o.last_name LIKE ? ESCAPE '\' OR o.description LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like, like)
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	return strings.ReplaceAll(s, `_`, `\_`)
}

func (r *obituariesRepo) ListObituaries(
	ctx context.Context,
	f store.ObituaryFilter,
) ([]domain.Obituary, int64, error) {
	where, args := buildFilter(f)

	var total int64
	if err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM obituaries o`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = sortColumns[store.SortCreatedAt]
	}
	dir := "ASC"
	if f.SortDesc {
		dir = "DESC"
	}
	// Secondary order by id keeps pagination deterministic across ties.
	query := `SELECT ` + obituaryColumns + obituaryFrom + where +
		fmt.Sprintf(" ORDER BY %s %s, o.id %s", col, dir, dir)

	if f.Page > 0 && f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, (f.Page-1)*f.Limit)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	obituaries := []domain.Obituary{}
	for rows.Next() {
		o, err := scanObituary(rows)
		if err != nil {
			return nil, 0, err
		}
		obituaries = append(obituaries, o)
	}
	return obituaries, total, rows.Err()
}

func (r *obituariesRepo) CreateObituary(ctx context.Context, o domain.Obituary) error {
	funeralLoc, err := jsonNull(o.FuneralLocation, o.FuneralLocation != nil)
	if err != nil {
		return err
	}
	graveyardLoc, err := jsonNull(o.GraveyardLocation, o.GraveyardLocation != nil)
	if err != nil {
		return err
	}
	survivedBy, err := jsonList(o.SurvivedBy)
	if err != nil {
		return err
	}
	predeceased, err := jsonList(o.Predeceased)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = r.q.ExecContext(ctx, `
		INSERT INTO obituaries (
			id, title, first_name, last_name, maiden_name, featured_image,
			description, birth_date, death_date, funeral_date, visitation_date,
			funeral_location, graveyard_location, survived_by, predeceased,
			author_id, is_published, view_count, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		o.ID, o.Title, o.FirstName, o.LastName, o.MaidenName, o.FeaturedImage,
		o.Description, o.Dates.BirthDate, o.Dates.DeathDate,
		mapOptionalTime(o.Dates.FuneralDate), mapOptionalTime(o.Dates.VisitationDate),
		funeralLoc, graveyardLoc, survivedBy, predeceased,
		o.AuthorID, o.IsPublished, now, now,
	)
	return err
}

func (r *obituariesRepo) UpdateObituary(ctx context.Context, o domain.Obituary) error {
	funeralLoc, err := jsonNull(o.FuneralLocation, o.FuneralLocation != nil)
	if err != nil {
		return err
	}
	graveyardLoc, err := jsonNull(o.GraveyardLocation, o.GraveyardLocation != nil)
	if err != nil {
		return err
	}
	survivedBy, err := jsonList(o.SurvivedBy)
	if err != nil {
		return err
	}
	predeceased, err := jsonList(o.Predeceased)
	if err != nil {
		return err
	}

	res, err := r.q.ExecContext(ctx, `
		UPDATE obituaries SET
			title = ?, first_name = ?, last_name = ?, maiden_name = ?,
			featured_image = ?, description = ?, birth_date = ?, death_date = ?,
			funeral_date = ?, visitation_date = ?, funeral_location = ?,
			graveyard_location = ?, survived_by = ?, predeceased = ?,
			is_published = ?, updated_at = ?
		WHERE id = ?`,
		o.Title, o.FirstName, o.LastName, o.MaidenName,
		o.FeaturedImage, o.Description, o.Dates.BirthDate, o.Dates.DeathDate,
		mapOptionalTime(o.Dates.FuneralDate), mapOptionalTime(o.Dates.VisitationDate),
		funeralLoc, graveyardLoc, survivedBy, predeceased,
		o.IsPublished, time.Now().UTC(), o.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *obituariesRepo) DeleteObituary(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM obituaries WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *obituariesRepo) DeleteObituariesByAuthor(ctx context.Context, authorID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM obituaries WHERE author_id = ?`, authorID)
	return err
}

// IncrementViewCount delegates the increment to the engine as a single UPDATE
// so concurrent viewers never lose updates.
func (r *obituariesRepo) IncrementViewCount(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE obituaries SET view_count = view_count + 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
