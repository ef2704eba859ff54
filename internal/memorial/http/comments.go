package http

import (
	"net/http"
	"unicode/utf8"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/service"
	"github.com/willowgate/memorial/pkg/httpx"
)

type CommentsHandler struct {
	Comments *service.CommentService
}

// HandleList returns approved comments for an obituary, newest first.
// Pending comments are never visible here.
func (h *CommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	comments, err := h.Comments.ListApproved(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"comments": toCommentResponses(comments)})
}

type commentRequest struct {
	Content string               `json:"content"`
	Author  domain.CommentAuthor `json:"author"`
}

func (req *commentRequest) validate() *httpx.APIError {
	switch {
	case req.Content == "":
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Comment content is required")
	// Characters, not bytes: multi-byte content counts the way the schema's
	// length check does.
	case utf8.RuneCountInString(req.Content) > domain.MaxCommentLength:
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Comment cannot exceed 500 characters")
	case req.Author.FirstName == "" || req.Author.LastName == "":
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "First name and last name are required")
	case req.Author.Email == "":
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Email is required")
	}
	return nil
}

// HandleCreate accepts a visitor comment. No session required; the comment
// enters the moderation queue unapproved no matter what the client sent.
func (h *CommentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req commentRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if apiErr := req.validate(); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	comment, err := h.Comments.Create(r.Context(), id, req.Content, req.Author)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"comment": toCommentResponse(comment),
		"message": "Comment submitted for approval",
	})
}
