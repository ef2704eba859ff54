package http

import (
	"net/http"
	"strconv"

	"github.com/willowgate/memorial/internal/memorial/service"
	"github.com/willowgate/memorial/pkg/httpx"
)

type ObituariesHandler struct {
	Obituaries *service.ObituaryService
}

// HandleList serves the public listing with search, sorting, and pagination.
//
//	@Summary	List published obituaries
//	@Tags		Obituaries
//	@Produce	json
//	@Param		page		query		int		false	"page number (1-based)"
//	@Param		limit		query		int		false	"page size"
//	@Param		search		query		string	false	"text search over title/name/description"
//	@Param		sortBy		query		string	false	"createdAt|deathDate|firstName|lastName|viewCount"
//	@Param		sortOrder	query		string	false	"asc|desc"
//	@Success	200			{object}	object	"obituaries and pagination block"
//	@Router		/api/obituaries [get].
func (h *ObituariesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	obituaries, pagination, err := h.Obituaries.ListPublished(r.Context(), service.ListParams{
		Page:      page,
		Limit:     limit,
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"obituaries": toObituaryResponses(obituaries),
		"pagination": pagination,
	})
}

// HandleGet serves a single obituary and counts the view. Every successful
// fetch increments the counter, repeated fetches included.
func (h *ObituariesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	obituary, err := h.Obituaries.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"obituary": toObituaryResponse(obituary)})
}

// HandleListMine returns the caller's own obituaries, drafts included.
func (h *ObituariesHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		httpx.ErrUnauthorized.WriteError(w)
		return
	}

	obituaries, err := h.Obituaries.ListMine(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"obituaries": toObituaryResponses(obituaries)})
}

// HandleCreate stores a new obituary owned by the caller.
func (h *ObituariesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		httpx.ErrUnauthorized.WriteError(w)
		return
	}

	var req obituaryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if apiErr := req.validate(); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	obituary, err := h.Obituaries.Create(r.Context(), user.ID, req.toDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{"obituary": toObituaryResponse(obituary)})
}

// HandleUpdate replaces an obituary. Author-only; a non-owner gets 403.
func (h *ObituariesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		httpx.ErrUnauthorized.WriteError(w)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req obituaryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if apiErr := req.validate(); apiErr != nil {
		apiErr.WriteError(w)
		return
	}

	obituary, err := h.Obituaries.Update(r.Context(), user.ID, id, req.toDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"obituary": toObituaryResponse(obituary)})
}

// HandleDelete removes an obituary. Allowed for the author and for admins;
// comments cascade with it.
func (h *ObituariesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		httpx.ErrUnauthorized.WriteError(w)
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.Obituaries.Delete(r.Context(), user, id); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Obituary deleted successfully"})
}
