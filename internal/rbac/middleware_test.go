package rbac_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/meridian-erp/meridian-erp/internal/rbac"
	"github.com/meridian-erp/meridian-erp/internal/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type stubSource struct {
	perms []string
	calls int
}

func (s *stubSource) EffectivePermissions(ctx context.Context, userID int64) ([]string, error) {
	s.calls++
	return s.perms, nil
}

func requestWithIdentity(t *testing.T, userID, role string, perms []string) *http.Request {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	sess, err := manager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if userID != "" {
		sess.SetIdentity(userID, role, perms)
	}
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func serve(mw func(http.Handler) http.Handler, req *http.Request) *httptest.ResponseRecorder {
	res := httptest.NewRecorder()
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(res, req)
	return res
}

func TestRequireAnyUsesSessionCache(t *testing.T) {
	source := &stubSource{}
	mw := rbac.Middleware{Source: source}

	req := requestWithIdentity(t, "1", shared.RoleUser, []string{"sales:customers:view"})
	res := serve(mw.RequireAny("sales:customers:view"), req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if source.calls != 0 {
		t.Fatalf("expected no database lookup, got %d calls", source.calls)
	}
}

func TestRequireAnyDeniesMissingPermission(t *testing.T) {
	mw := rbac.Middleware{}

	req := requestWithIdentity(t, "1", shared.RoleUser, []string{"hr:employees:view"})
	res := serve(mw.RequireAny("sales:customers:view"), req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestRequireAnyDeniesAnonymous(t *testing.T) {
	mw := rbac.Middleware{}

	req := requestWithIdentity(t, "", "", nil)
	res := serve(mw.RequireAny("sales:customers:view"), req)
	if res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestRequireAnyAdminBypass(t *testing.T) {
	mw := rbac.Middleware{}

	for _, role := range []string{shared.RoleAdmin, shared.RoleSuperAdmin} {
		req := requestWithIdentity(t, "1", role, nil)
		res := serve(mw.RequireAny("sales:customers:view"), req)
		if res.Code != http.StatusOK {
			t.Fatalf("role %s: expected 200, got %d", role, res.Code)
		}
	}
}

func TestRequireAnyFallsBackToSource(t *testing.T) {
	source := &stubSource{perms: []string{"banking:accounts:view"}}
	mw := rbac.Middleware{Source: source}

	req := requestWithIdentity(t, "42", shared.RoleUser, nil)
	res := serve(mw.RequireAny("banking:accounts:view"), req)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	if source.calls != 1 {
		t.Fatalf("expected one source lookup, got %d", source.calls)
	}
}

func TestRequireAll(t *testing.T) {
	mw := rbac.Middleware{}

	req := requestWithIdentity(t, "1", shared.RoleUser, []string{"sales:invoices:view", "sales:invoices:edit"})
	if res := serve(mw.RequireAll("sales:invoices:view", "sales:invoices:edit"), req); res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}

	req = requestWithIdentity(t, "1", shared.RoleUser, []string{"sales:invoices:view"})
	if res := serve(mw.RequireAll("sales:invoices:view", "sales:invoices:edit"), req); res.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", res.Code)
	}
}

func TestRequireAnyEmptyPermListAllows(t *testing.T) {
	mw := rbac.Middleware{}
	req := requestWithIdentity(t, "", "", nil)
	if res := serve(mw.RequireAny(), req); res.Code != http.StatusOK {
		t.Fatalf("expected 200 for unprotected group, got %d", res.Code)
	}
}
