package reports

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler serves trial balance reports.
type Handler struct {
	service   *Service
	rateLimit func(http.Handler) http.Handler
}

// NewHandler constructs the report handler with a per-user rate limit.
func NewHandler(service *Service) *Handler {
	limiter := httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		sess := shared.SessionFromContext(r.Context())
		if sess != nil {
			if user := strings.TrimSpace(sess.User()); user != "" {
				return "user:" + user, nil
			}
		}
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			return "ip:" + r.RemoteAddr, nil
		}
		return "ip:" + host, nil
	}))
	return &Handler{service: service, rateLimit: limiter}
}

// Routes registers report endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Get("/trial-balance", h.handleTrialBalance)
	})
	return r
}

func (h *Handler) handleTrialBalance(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}
	tb, err := h.service.TrialBalance(r.Context(), filter)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, Format(tb))
}

func parseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	entityID, err := strconv.ParseInt(q.Get("entity_id"), 10, 64)
	if err != nil || entityID <= 0 {
		return Filter{}, errInvalidFilter("entity_id is required")
	}
	from, err := time.Parse("2006-01-02", q.Get("from"))
	if err != nil {
		return Filter{}, errInvalidFilter("from must be YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", q.Get("to"))
	if err != nil {
		return Filter{}, errInvalidFilter("to must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return Filter{}, errInvalidFilter("to must not precede from")
	}
	return Filter{EntityID: entityID, From: from, To: to}, nil
}

type errInvalidFilter string

func (e errInvalidFilter) Error() string { return string(e) }
