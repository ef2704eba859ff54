package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/store"
)

type commentsRepo struct {
	q querier
}

const commentColumns = `id, obituary_id, content, author_first_name, author_last_name,
	author_email, is_approved, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (domain.Comment, error) {
	var c domain.Comment
	err := row.Scan(
		&c.ID,
		&c.ObituaryID,
		&c.Content,
		&c.Author.FirstName,
		&c.Author.LastName,
		&c.Author.Email,
		&c.IsApproved,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Comment{}, err
	}
	return c, nil
}

func (r *commentsRepo) CreateComment(ctx context.Context, c domain.Comment) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO comments (
			id, obituary_id, content, author_first_name, author_last_name,
			author_email, is_approved, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ObituaryID, c.Content, c.Author.FirstName, c.Author.LastName,
		c.Author.Email, c.IsApproved, now, now,
	)
	return err
}

func (r *commentsRepo) GetComment(ctx context.Context, id string) (domain.Comment, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = ?`, id)
	c, err := scanComment(row)
	if err != nil {
		return domain.Comment{}, mapNotFound(err)
	}
	return c, nil
}

func (r *commentsRepo) ListComments(
	ctx context.Context,
	obituaryID string,
	approvedOnly bool,
) ([]domain.Comment, error) {
	conds := []string{"obituary_id = ?"}
	args := []any{obituaryID}
	if approvedOnly {
		conds = append(conds, "is_approved = TRUE")
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE `+strings.Join(conds, " AND ")+
			` ORDER BY created_at DESC, id DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectComments(rows)
}

func (r *commentsRepo) ListPendingComments(ctx context.Context) ([]domain.Comment, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE is_approved = FALSE
		 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectComments(rows)
}

func collectComments(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *commentsRepo) ApproveComment(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE comments SET is_approved = TRUE, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *commentsRepo) DeleteComment(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
