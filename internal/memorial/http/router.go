package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/willowgate/memorial/internal/memorial/service"
	"github.com/willowgate/memorial/internal/memorial/store"
	"github.com/willowgate/memorial/pkg/httpx"
	"github.com/willowgate/memorial/pkg/slogx"

	_ "github.com/willowgate/memorial/api/memorial" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger
	secureCookies bool

	store store.Store

	TokenService    *service.TokenService
	SessionService  *service.SessionService
	UserService     *service.UserService
	ObituaryService *service.ObituaryService
	CommentService  *service.CommentService

	// Pages serves the front-end (static build output). The page guard wraps
	// it to enforce session redirects on navigation.
	Pages http.Handler
}

func NewRouter(
	buildVersion string,
	secureCookies bool,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		logger:        logger,
		secureCookies: secureCookies,
		store:         st,
	}

	// Default middleware chain applied to every request.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerObituaries()
	r.registerAdmin()
	r.registerSystem()
	r.registerPages()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	register := &RegisterHandler{
		Users:         r.UserService,
		Tokens:        r.TokenService,
		SecureCookies: r.secureCookies,
	}
	login := &LoginHandler{
		Users:         r.UserService,
		Tokens:        r.TokenService,
		SecureCookies: r.secureCookies,
	}

	// Credential endpoints carry strict per-IP limits against brute force.
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(register, httpx.RateLimitByIP(httpx.StrictLimit)))
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(login, httpx.RateLimitByIP(httpx.StrictLimit)))

	r.Mux.Handle("POST /api/auth/logout",
		&LogoutHandler{SecureCookies: r.secureCookies})

	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(&MeHandler{}, r.requireSession()))
}

func (r *Router) registerObituaries() {
	h := &ObituariesHandler{Obituaries: r.ObituaryService}
	c := &CommentsHandler{Comments: r.CommentService}

	r.Mux.Handle("GET /api/obituaries",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit)))

	r.Mux.Handle("POST /api/obituaries",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), r.requireSession()))

	// The literal /my pattern wins over the {id} wildcard.
	r.Mux.Handle("GET /api/obituaries/my",
		httpx.Chain(http.HandlerFunc(h.HandleListMine), r.requireSession()))

	r.Mux.Handle("GET /api/obituaries/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit)))
	r.Mux.Handle("PUT /api/obituaries/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate), r.requireSession()))
	r.Mux.Handle("DELETE /api/obituaries/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete), r.requireSession()))

	r.Mux.Handle("GET /api/obituaries/{id}/comments",
		httpx.Chain(http.HandlerFunc(c.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit)))
	r.Mux.Handle("POST /api/obituaries/{id}/comments",
		httpx.Chain(http.HandlerFunc(c.HandleCreate),
			httpx.RateLimitByIP(httpx.ModerateLimit)))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		Users:      r.UserService,
		Obituaries: r.ObituaryService,
		Comments:   r.CommentService,
	}

	admin := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, r.requireSession(), requireAdmin())
	}

	r.Mux.Handle("GET /api/admin/users", admin(h.HandleListUsers))
	r.Mux.Handle("POST /api/admin/users", admin(h.HandleCreateUser))
	r.Mux.Handle("DELETE /api/admin/users/{id}", admin(h.HandleDeleteUser))

	r.Mux.Handle("GET /api/admin/obituaries", admin(h.HandleListObituaries))
	r.Mux.Handle("DELETE /api/admin/obituaries/{id}", admin(h.HandleDeleteObituary))

	r.Mux.Handle("GET /api/admin/comments", admin(h.HandleListPendingComments))
	r.Mux.Handle("POST /api/admin/comments/{id}/approve", admin(h.HandleApproveComment))
	r.Mux.Handle("DELETE /api/admin/comments/{id}", admin(h.HandleDeleteComment))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}

func (r *Router) registerPages() {
	pages := r.Pages
	if pages == nil {
		pages = http.NotFoundHandler()
	}

	guard := &PageGuard{
		Tokens:        r.TokenService,
		SecureCookies: r.secureCookies,
	}
	r.Mux.Handle("/", guard.Middleware()(pages))
}
