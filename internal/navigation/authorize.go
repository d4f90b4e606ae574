package navigation

import (
	"strings"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Default redirect targets.
const (
	LoginPath     = "/auth/login"
	DashboardPath = "/dashboard"
)

// Session is the request identity the authorizer decides over. It is a
// plain value so decisions stay pure; the middleware fills it from the
// cookie session and passes nil when the request is anonymous.
type Session struct {
	UserID      string
	Role        string
	Permissions []string
}

// Decision is the outcome of an authorization check: either the request may
// proceed or it must be redirected.
type Decision struct {
	allowed  bool
	location string
}

// Allow lets the request proceed.
func Allow() Decision {
	return Decision{allowed: true}
}

// RedirectTo denies the request and names the redirect target.
func RedirectTo(url string) Decision {
	return Decision{location: url}
}

// Allowed reports whether the request may proceed.
func (d Decision) Allowed() bool {
	return d.allowed
}

// Location returns the redirect target for denied requests.
func (d Decision) Location() string {
	return d.location
}

// Authorizer decides per request whether a session may enter a module path.
// It holds only immutable state derived from the menu.
type Authorizer struct {
	table     Table
	protected map[string]struct{}
}

// NewAuthorizer builds an Authorizer from the menu definition.
func NewAuthorizer(menu []Entry) *Authorizer {
	table := BuildTable(menu)
	protected := make(map[string]struct{})
	for _, segment := range table.Segments() {
		protected[segment] = struct{}{}
	}
	return &Authorizer{table: table, protected: protected}
}

// Authorize decides whether the session may visit pathname.
//
// Anonymous sessions are bounced to the login page for protected paths.
// Admin roles skip permission lookups entirely. Regular users must hold the
// module's required permission, or at least one of the required list; when a
// list-gated module is entered at its bare root, the first held permission
// in declared order picks the submodule to land on.
func (a *Authorizer) Authorize(pathname string, sess *Session) Decision {
	segment, rest := splitPath(pathname)
	authenticated := sess != nil && sess.UserID != ""

	loginSegment, loginRest := splitPath(LoginPath)
	if segment == loginSegment && rest == loginRest {
		if authenticated {
			return RedirectTo(DashboardPath)
		}
		return Allow()
	}

	if _, ok := a.protected[segment]; !ok {
		return Allow()
	}

	if !authenticated {
		return RedirectTo(LoginPath)
	}

	req, mapped := a.table.Lookup(segment)

	if shared.IsAdminRole(sess.Role) {
		if mapped && req.IsAnyOf() && rest == "" {
			return RedirectTo("/" + segment + "/" + SubmoduleSlug(req.First()))
		}
		return Allow()
	}

	if !mapped || req.IsZero() {
		return Allow()
	}

	perm, ok := req.FirstHeld(permissionSet(sess.Permissions))
	if !ok {
		return RedirectTo(DashboardPath)
	}
	if req.IsAnyOf() && rest == "" {
		return RedirectTo("/" + segment + "/" + SubmoduleSlug(perm))
	}
	return Allow()
}

// splitPath separates the first path segment from the remainder. Trailing
// slashes do not count as a sub-path, so "/sales/" is still a bare root.
func splitPath(pathname string) (segment, rest string) {
	trimmed := strings.TrimPrefix(pathname, "/")
	trimmed = strings.TrimSuffix(trimmed, "/")
	if idx := strings.IndexByte(trimmed, '/'); idx >= 0 {
		return trimmed[:idx], trimmed[idx+1:]
	}
	return trimmed, ""
}
