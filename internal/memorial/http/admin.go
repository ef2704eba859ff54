package http

import (
	"net/http"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/service"
	"github.com/willowgate/memorial/pkg/httpx"
)

// AdminHandler serves the admin surface. All of its routes sit behind the
// session and role middleware, so handlers can assume an admin caller.
type AdminHandler struct {
	Users      *service.UserService
	Obituaries *service.ObituaryService
	Comments   *service.CommentService
}

// HandleListUsers returns every account, newest first.
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"users": toUserResponses(users)})
}

type adminCreateUserRequest struct {
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	Role      domain.Role `json:"role"`
}

// HandleCreateUser creates an account with an explicit role. Unlike public
// registration, this can mint admins.
func (h *AdminHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req adminCreateUserRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" || req.Role == "" {
		httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "All fields are required").WriteError(w)
		return
	}

	user, err := h.Users.Register(r.Context(), service.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    toUserResponse(user),
	})
}

// HandleDeleteUser removes an account and everything it authored. Deleting
// your own admin account is refused.
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := userFrom(r.Context())
	if !ok {
		httpx.ErrUnauthorized.WriteError(w)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Users.Delete(r.Context(), actor.ID, id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "User and related obituaries deleted"})
}

// HandleListObituaries returns every obituary, drafts included, optionally
// filtered to one author via ?userId=.
func (h *AdminHandler) HandleListObituaries(w http.ResponseWriter, r *http.Request) {
	obituaries, err := h.Obituaries.AdminList(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"obituaries": toObituaryResponses(obituaries)})
}

// HandleDeleteObituary removes any obituary regardless of who authored it.
func (h *AdminHandler) HandleDeleteObituary(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Obituaries.AdminDelete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Obituary deleted"})
}

// HandleListPendingComments returns the moderation queue.
func (h *AdminHandler) HandleListPendingComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.Comments.ListPending(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"comments": toCommentResponses(comments)})
}

// HandleApproveComment flips a pending comment to publicly visible.
func (h *AdminHandler) HandleApproveComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	comment, err := h.Comments.Approve(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"comment": toCommentResponse(comment),
		"message": "Comment approved",
	})
}

// HandleDeleteComment rejects a comment by removing it.
func (h *AdminHandler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Comments.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}
