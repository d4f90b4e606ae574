package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/meridian-erp/meridian-erp/internal/auth"
	"github.com/meridian-erp/meridian-erp/internal/ledger/journals"
	"github.com/meridian-erp/meridian-erp/internal/ledger/opening"
	"github.com/meridian-erp/meridian-erp/internal/ledger/reports"
	"github.com/meridian-erp/meridian-erp/internal/navigation"
	"github.com/meridian-erp/meridian-erp/internal/observability"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/rbac"
	"github.com/meridian-erp/meridian-erp/internal/shared"
	"github.com/meridian-erp/meridian-erp/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Authorizer     *navigation.Authorizer

	AuthHandler       *auth.Handler
	JournalsHandler   *journals.Handler
	OpeningHandler    *opening.Handler
	ReportsHandler    *reports.Handler
	NavigationHandler *navigation.Handler
	RBACHandler       *rbac.Handler
	JobHandler        *jobs.Handler

	RBACMiddleware rbac.Middleware
	Metrics        *observability.Metrics
}

// NewRouter constructs the chi.Router with Meridian defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Authorizer:     params.Authorizer,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/csrf", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		token, err := params.CSRFManager.EnsureToken(r.Context(), sess)
		if err != nil {
			httpx.Problem(w, http.StatusInternalServerError, "csrf", "token unavailable")
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"csrf_token": token})
	})

	// The navigation gate bounces anonymous requests off /dashboard before
	// the handler runs, so the session always carries a user here.
	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		payload := map[string]any{
			"user_id": sess.User(),
			"role":    sess.Role(),
			"env":     params.Config.AppEnv,
		}
		if flash := sess.PopFlash(); flash != nil {
			payload["flash"] = flash
		}
		httpx.JSON(w, http.StatusOK, payload)
	})

	// The root path has no entry in the menu table, so the gate lets
	// anonymous requests through and the handler decides the landing page.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		sess := shared.SessionFromContext(r.Context())
		if sess == nil || sess.User() == "" {
			http.Redirect(w, r, navigation.LoginPath, http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, navigation.DashboardPath, http.StatusSeeOther)
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/accounts", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(params.RBACMiddleware.RequireAny(
				shared.PermAccountsJournalsView,
				shared.PermAccountsJournalsPost,
			))
			r.Route("/journals", params.JournalsHandler.MountRoutes)
		})
		r.Group(func(r chi.Router) {
			r.Use(params.RBACMiddleware.RequireAny(
				shared.PermAccountsOpeningView,
				shared.PermAccountsOpeningPost,
			))
			r.Route("/opening", params.OpeningHandler.MountRoutes)
		})
		r.Group(func(r chi.Router) {
			r.Use(params.RBACMiddleware.RequireAny(shared.PermAccountsReportsView))
			r.Mount("/reports", params.ReportsHandler.Routes())
		})
	})

	r.Route("/navigation", params.NavigationHandler.MountRoutes)

	r.Route("/settings", params.RBACHandler.MountRoutes)

	r.Route("/jobs", params.JobHandler.MountRoutes)

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
