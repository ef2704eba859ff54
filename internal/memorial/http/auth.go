package http

import (
	"net/http"

	"github.com/willowgate/memorial/internal/memorial/service"
	"github.com/willowgate/memorial/pkg/httpx"
	"github.com/willowgate/memorial/pkg/slogx"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type RegisterHandler struct {
	Users         *service.UserService
	Tokens        *service.TokenService
	SecureCookies bool
}

// ServeHTTP handles account registration.
//
//	@Summary		Register a new account
//	@Description	Creates a family account, issues a session token, and sets the auth cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		object	true	"firstName, lastName, email, password"
//	@Success		201		{object}	object	"message and created user"
//	@Failure		400		{object}	httpx.APIError
//	@Failure		409		{object}	httpx.APIError
//	@Router			/api/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "All fields are required").WriteError(w)
		return
	}

	user, err := h.Users.Register(r.Context(), service.RegisterParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.SetSessionCookie(w, token, service.DefaultSessionTTL, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    toUserResponse(user),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginHandler struct {
	Users         *service.UserService
	Tokens        *service.TokenService
	SecureCookies bool
}

// ServeHTTP handles credential login.
//
//	@Summary	Log in
//	@Tags		Auth
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	object	"message and user"
//	@Failure	401	{object}	httpx.APIError
//	@Router		/api/auth/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.NewAPIError(http.StatusBadRequest, httpx.CodeValidation, "Email and password are required").WriteError(w)
		return
	}

	user, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.Tokens.Issue(user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	slogx.FromContext(r.Context()).Info("user logged in", "user_id", user.ID)

	httpx.SetSessionCookie(w, token, service.DefaultSessionTTL, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Logged in successfully",
		"user":    toUserResponse(user),
	})
}

type LogoutHandler struct {
	SecureCookies bool
}

// ServeHTTP clears the session cookie. Tokens are stateless, so there is
// nothing to revoke server-side.
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.ClearSessionCookie(w, h.SecureCookies)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

type MeHandler struct{}

// ServeHTTP returns the resolved session user.
//
//	@Summary	Current user
//	@Tags		Auth
//	@Produce	json
//	@Success	200	{object}	object
//	@Failure	401	{object}	httpx.APIError
//	@Router		/api/auth/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(r.Context())
	if !ok {
		httpx.ErrUnauthorized.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"user": toUserResponse(user)})
}
