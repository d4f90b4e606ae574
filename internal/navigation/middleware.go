package navigation

import (
	"log/slog"
	"net/http"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Middleware applies the authorizer to every request. A session the earlier
// middleware failed to resolve arrives as nil and is treated as anonymous,
// so failures degrade to a login redirect rather than an open gate.
func Middleware(a *Authorizer, logger *slog.Logger, onDeny func(segment string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var sess *Session
			if stored := shared.SessionFromContext(r.Context()); stored != nil && stored.User() != "" {
				sess = &Session{
					UserID:      stored.User(),
					Role:        stored.Role(),
					Permissions: stored.Permissions(),
				}
			}
			decision := a.Authorize(r.URL.Path, sess)
			if decision.Allowed() {
				next.ServeHTTP(w, r)
				return
			}
			if logger != nil {
				logger.Debug("navigation redirect",
					slog.String("path", r.URL.Path),
					slog.String("location", decision.Location()))
			}
			if onDeny != nil {
				segment, _ := splitPath(r.URL.Path)
				onDeny(segment)
			}
			http.Redirect(w, r, decision.Location(), http.StatusSeeOther)
		})
	}
}
