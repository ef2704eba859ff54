package service

import (
	"context"
	"strings"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/store"
	"github.com/willowgate/memorial/pkg/idx"
	"github.com/willowgate/memorial/pkg/slogx"
)

// CommentService is the moderation gate: visitor comments enter unapproved
// and stay invisible until an admin approves them.
type CommentService struct {
	Store store.Store
}

// Create stores a visitor comment against an existing obituary. No session is
// required. IsApproved is forced to false here regardless of what the client
// sent.
func (s *CommentService) Create(
	ctx context.Context,
	obituaryID, content string,
	author domain.CommentAuthor,
) (domain.Comment, error) {
	// A comment must always reference an existing obituary.
	if _, err := s.Store.Obituaries().GetObituary(ctx, obituaryID); err != nil {
		return domain.Comment{}, err
	}

	comment := domain.Comment{
		ID:         idx.New(),
		ObituaryID: obituaryID,
		Content:    strings.TrimSpace(content),
		Author: domain.CommentAuthor{
			FirstName: strings.TrimSpace(author.FirstName),
			LastName:  strings.TrimSpace(author.LastName),
			Email:     strings.ToLower(strings.TrimSpace(author.Email)),
		},
		IsApproved: false,
	}

	if err := s.Store.Comments().CreateComment(ctx, comment); err != nil {
		return domain.Comment{}, err
	}
	return s.Store.Comments().GetComment(ctx, comment.ID)
}

// ListApproved returns the publicly visible comments for an obituary, newest
// first. Pending comments never appear here.
func (s *CommentService) ListApproved(ctx context.Context, obituaryID string) ([]domain.Comment, error) {
	return s.Store.Comments().ListComments(ctx, obituaryID, true)
}

// ListPending returns the moderation queue across all obituaries.
func (s *CommentService) ListPending(ctx context.Context) ([]domain.Comment, error) {
	return s.Store.Comments().ListPendingComments(ctx)
}

// Approve makes a comment publicly visible.
func (s *CommentService) Approve(ctx context.Context, id string) (domain.Comment, error) {
	if err := s.Store.Comments().ApproveComment(ctx, id); err != nil {
		return domain.Comment{}, err
	}
	slogx.FromContext(ctx).Info("comment approved", "comment_id", id)
	return s.Store.Comments().GetComment(ctx, id)
}

// Delete removes a comment outright (rejection path of moderation).
func (s *CommentService) Delete(ctx context.Context, id string) error {
	return s.Store.Comments().DeleteComment(ctx, id)
}
