package navigation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler serves the navigation payload derived from the menu.
type Handler struct {
	logger *slog.Logger
	menu   []Entry
}

// NewHandler constructs a Handler over the given menu.
func NewHandler(logger *slog.Logger, menu []Entry) *Handler {
	return &Handler{logger: logger, menu: menu}
}

// MountRoutes registers navigation routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/menu", h.menuHandler)
}

func (h *Handler) menuHandler(w http.ResponseWriter, r *http.Request) {
	var sess *Session
	if stored := shared.SessionFromContext(r.Context()); stored != nil && stored.User() != "" {
		sess = &Session{
			UserID:      stored.User(),
			Role:        stored.Role(),
			Permissions: stored.Permissions(),
		}
	}
	if sess == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"menu": VisibleMenu(h.menu, sess)})
}
