package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/willowgate/memorial/internal/memorial/domain"
	"github.com/willowgate/memorial/internal/memorial/service"
	"github.com/willowgate/memorial/internal/memorial/store"
	"github.com/willowgate/memorial/pkg/httpx"
	"github.com/willowgate/memorial/pkg/idx"
	"github.com/willowgate/memorial/pkg/slogx"
)

// pathID validates the {id} path value as a ULID. Nothing else can reference
// a stored record, so a malformed id short-circuits to 404 without a query.
func pathID(r *http.Request) (string, error) {
	return idx.Parse(r.PathValue("id"))
}

// userResponse is the client-visible shape of a user. The password hash never
// appears here.
type userResponse struct {
	ID        string      `json:"id"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

// obituaryRequest is the write payload for creating or replacing an obituary.
type obituaryRequest struct {
	Title             string                   `json:"title"`
	FirstName         string                   `json:"firstName"`
	LastName          string                   `json:"lastName"`
	MaidenName        string                   `json:"maidenName"`
	FeaturedImage     string                   `json:"featuredImage"`
	Description       string                   `json:"description"`
	Dates             domain.ObituaryDates     `json:"dates"`
	FuneralLocation   *domain.ObituaryLocation `json:"funeralLocation"`
	GraveyardLocation *domain.ObituaryLocation `json:"graveyardLocation"`
	SurvivedBy        []string                 `json:"survivedBy"`
	Predeceased       []string                 `json:"predeceased"`
	IsPublished       bool                     `json:"isPublished"`
}

// validate reports the first missing required field as a client-facing error.
func (req *obituaryRequest) validate() *httpx.APIError {
	switch {
	case req.Title == "":
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Title is required")
	case req.FirstName == "":
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "First name is required")
	case req.LastName == "":
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Last name is required")
	case req.Description == "":
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Description is required")
	case req.Dates.BirthDate.IsZero():
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Birth date is required")
	case req.Dates.DeathDate.IsZero():
		return httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Death date is required")
	}
	return nil
}

func (req *obituaryRequest) toDomain() domain.Obituary {
	return domain.Obituary{
		Title:             req.Title,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		MaidenName:        req.MaidenName,
		FeaturedImage:     req.FeaturedImage,
		Description:       req.Description,
		Dates:             req.Dates,
		FuneralLocation:   req.FuneralLocation,
		GraveyardLocation: req.GraveyardLocation,
		SurvivedBy:        req.SurvivedBy,
		Predeceased:       req.Predeceased,
		IsPublished:       req.IsPublished,
	}
}

type obituaryResponse struct {
	ID                string                   `json:"id"`
	Title             string                   `json:"title"`
	FirstName         string                   `json:"firstName"`
	LastName          string                   `json:"lastName"`
	MaidenName        string                   `json:"maidenName,omitempty"`
	FeaturedImage     string                   `json:"featuredImage,omitempty"`
	Description       string                   `json:"description"`
	Dates             domain.ObituaryDates     `json:"dates"`
	FuneralLocation   *domain.ObituaryLocation `json:"funeralLocation,omitempty"`
	GraveyardLocation *domain.ObituaryLocation `json:"graveyardLocation,omitempty"`
	SurvivedBy        []string                 `json:"survivedBy"`
	Predeceased       []string                 `json:"predeceased"`
	Author            *domain.AuthorRef        `json:"author"`
	IsPublished       bool                     `json:"isPublished"`
	ViewCount         int64                    `json:"viewCount"`
	CreatedAt         time.Time                `json:"createdAt"`
	UpdatedAt         time.Time                `json:"updatedAt"`
}

func toObituaryResponse(o domain.Obituary) obituaryResponse {
	return obituaryResponse{
		ID:                o.ID,
		Title:             o.Title,
		FirstName:         o.FirstName,
		LastName:          o.LastName,
		MaidenName:        o.MaidenName,
		FeaturedImage:     o.FeaturedImage,
		Description:       o.Description,
		Dates:             o.Dates,
		FuneralLocation:   o.FuneralLocation,
		GraveyardLocation: o.GraveyardLocation,
		SurvivedBy:        o.SurvivedBy,
		Predeceased:       o.Predeceased,
		Author:            o.Author,
		IsPublished:       o.IsPublished,
		ViewCount:         o.ViewCount,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func toObituaryResponses(obituaries []domain.Obituary) []obituaryResponse {
	out := make([]obituaryResponse, 0, len(obituaries))
	for _, o := range obituaries {
		out = append(out, toObituaryResponse(o))
	}
	return out
}

type commentResponse struct {
	ID         string               `json:"id"`
	ObituaryID string               `json:"obituaryId"`
	Content    string               `json:"content"`
	Author     domain.CommentAuthor `json:"author"`
	IsApproved bool                 `json:"isApproved"`
	CreatedAt  time.Time            `json:"createdAt"`
}

func toCommentResponse(c domain.Comment) commentResponse {
	return commentResponse{
		ID:         c.ID,
		ObituaryID: c.ObituaryID,
		Content:    c.Content,
		Author:     c.Author,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
	}
}

func toCommentResponses(comments []domain.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out
}

// writeError translates any failure into the response taxonomy. Unclassified
// errors become opaque 500s; the detail goes to the log only.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *httpx.APIError
	switch {
	case errors.As(err, &apiErr):
		// already classified
	case errors.Is(err, store.ErrNotFound), errors.Is(err, idx.ErrInvalid):
		apiErr = httpx.ErrNotFound
	case errors.Is(err, service.ErrNotOwner):
		apiErr = httpx.ErrForbidden
	case errors.Is(err, service.ErrInvalidCredentials):
		apiErr = httpx.NewAPIError(http.StatusUnauthorized, httpx.CodeUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrEmailTaken):
		apiErr = httpx.NewAPIError(http.StatusConflict, httpx.CodeConflict, "User already exists with this email")
	case errors.Is(err, service.ErrPasswordTooShort):
		apiErr = httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Password must be at least 6 characters")
	case errors.Is(err, service.ErrInvalidRole):
		apiErr = httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Role must be family or admin")
	case errors.Is(err, service.ErrSelfDelete):
		apiErr = httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "You can't delete your own admin account.")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		apiErr = httpx.ErrServerError
	}
	apiErr.WriteError(w)
}
