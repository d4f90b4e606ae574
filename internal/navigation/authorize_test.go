package navigation

import (
	"testing"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

func newTestAuthorizer() *Authorizer {
	return NewAuthorizer(DefaultMenu())
}

func TestAuthorizeAnonymousProtectedPath(t *testing.T) {
	a := newTestAuthorizer()
	decision := a.Authorize("/sales", nil)
	if decision.Allowed() {
		t.Fatalf("expected redirect for anonymous request")
	}
	if decision.Location() != LoginPath {
		t.Fatalf("expected redirect to %s got %s", LoginPath, decision.Location())
	}
}

func TestAuthorizeAnonymousUnmappedPath(t *testing.T) {
	a := newTestAuthorizer()
	decision := a.Authorize("/quick-sale", nil)
	if !decision.Allowed() {
		t.Fatalf("unmapped segment must be unrestricted, got redirect to %s", decision.Location())
	}
}

func TestAuthorizeLoginPage(t *testing.T) {
	a := newTestAuthorizer()

	if decision := a.Authorize(LoginPath, nil); !decision.Allowed() {
		t.Fatalf("anonymous login page access should be allowed")
	}

	sess := &Session{UserID: "7", Role: shared.RoleUser}
	decision := a.Authorize(LoginPath, sess)
	if decision.Allowed() {
		t.Fatalf("authenticated user on login page should be redirected")
	}
	if decision.Location() != DashboardPath {
		t.Fatalf("expected redirect to %s got %s", DashboardPath, decision.Location())
	}
}

func TestAuthorizeLoginPageTrailingSlash(t *testing.T) {
	a := newTestAuthorizer()

	if decision := a.Authorize(LoginPath+"/", nil); !decision.Allowed() {
		t.Fatalf("anonymous login page access should be allowed")
	}

	sess := &Session{UserID: "7", Role: shared.RoleUser}
	decision := a.Authorize(LoginPath+"/", sess)
	if decision.Allowed() {
		t.Fatalf("authenticated user on login page should be redirected")
	}
	if decision.Location() != DashboardPath {
		t.Fatalf("expected redirect to %s got %s", DashboardPath, decision.Location())
	}
}

func TestAuthorizeAdminBypass(t *testing.T) {
	a := newTestAuthorizer()
	for _, role := range []string{shared.RoleAdmin, shared.RoleSuperAdmin} {
		sess := &Session{UserID: "1", Role: role}
		if decision := a.Authorize("/sales/invoices", sess); !decision.Allowed() {
			t.Fatalf("role %s should bypass permission checks", role)
		}
		if decision := a.Authorize("/hr/employees", sess); !decision.Allowed() {
			t.Fatalf("role %s should bypass permission checks", role)
		}
	}
}

func TestAuthorizeAdminBareModuleRootRedirect(t *testing.T) {
	a := newTestAuthorizer()
	sess := &Session{UserID: "1", Role: shared.RoleAdmin}

	decision := a.Authorize("/sales", sess)
	if decision.Allowed() {
		t.Fatalf("bare module root should redirect to first submodule")
	}
	if decision.Location() != "/sales/customers" {
		t.Fatalf("expected /sales/customers got %s", decision.Location())
	}

	// Trailing slash is still a bare root.
	decision = a.Authorize("/sales/", sess)
	if decision.Location() != "/sales/customers" {
		t.Fatalf("expected /sales/customers got %s", decision.Location())
	}
}

func TestAuthorizeUserWithoutPermission(t *testing.T) {
	a := newTestAuthorizer()
	sess := &Session{UserID: "9", Role: shared.RoleUser}

	decision := a.Authorize("/sales", sess)
	if decision.Allowed() {
		t.Fatalf("user without sales permissions should be redirected")
	}
	if decision.Location() != DashboardPath {
		t.Fatalf("expected redirect to %s got %s", DashboardPath, decision.Location())
	}
}

func TestAuthorizeUserBareRootFirstHeldWins(t *testing.T) {
	a := newTestAuthorizer()
	sess := &Session{
		UserID:      "9",
		Role:        shared.RoleUser,
		Permissions: []string{shared.PermSalesCustomersView},
	}

	decision := a.Authorize("/sales", sess)
	if decision.Allowed() {
		t.Fatalf("bare root should redirect to the held submodule")
	}
	if decision.Location() != "/sales/customers" {
		t.Fatalf("expected /sales/customers got %s", decision.Location())
	}

	// Held permission later in the declared list redirects there instead.
	sess.Permissions = []string{shared.PermSalesInvoicesView}
	decision = a.Authorize("/sales", sess)
	if decision.Location() != "/sales/invoices" {
		t.Fatalf("expected /sales/invoices got %s", decision.Location())
	}

	// With several held, declared order wins over session order.
	sess.Permissions = []string{shared.PermSalesInvoicesView, shared.PermSalesCustomersView}
	decision = a.Authorize("/sales", sess)
	if decision.Location() != "/sales/customers" {
		t.Fatalf("declared order should win, expected /sales/customers got %s", decision.Location())
	}
}

func TestAuthorizeUserSubPathAllowed(t *testing.T) {
	a := newTestAuthorizer()
	sess := &Session{
		UserID:      "9",
		Role:        shared.RoleUser,
		Permissions: []string{shared.PermSalesInvoicesView},
	}
	if decision := a.Authorize("/sales/invoices", sess); !decision.Allowed() {
		t.Fatalf("user holding a sales permission should enter sub-paths")
	}
}

func TestAuthorizeUserSingleRequirement(t *testing.T) {
	a := newTestAuthorizer()

	granted := &Session{
		UserID:      "3",
		Role:        shared.RoleUser,
		Permissions: []string{shared.PermGroupsGroupsView},
	}
	if decision := a.Authorize("/groups", granted); !decision.Allowed() {
		t.Fatalf("single requirement held should allow, got redirect to %s", decision.Location())
	}

	denied := &Session{UserID: "4", Role: shared.RoleUser}
	decision := a.Authorize("/groups", denied)
	if decision.Allowed() || decision.Location() != DashboardPath {
		t.Fatalf("single requirement missing should redirect to dashboard")
	}
}

func TestAuthorizeDashboardNeedsNoPermission(t *testing.T) {
	a := newTestAuthorizer()
	sess := &Session{UserID: "5", Role: shared.RoleUser}
	if decision := a.Authorize("/dashboard", sess); !decision.Allowed() {
		t.Fatalf("dashboard should be open to any authenticated user")
	}
	if decision := a.Authorize("/dashboard", nil); decision.Allowed() {
		t.Fatalf("dashboard should still require a session")
	}
}

func TestSubmoduleSlug(t *testing.T) {
	cases := map[string]string{
		"sales:customers:view":   "customers",
		"accounts:journals:post": "journals",
		"malformed":              "",
	}
	for perm, want := range cases {
		if got := SubmoduleSlug(perm); got != want {
			t.Fatalf("SubmoduleSlug(%q) = %q want %q", perm, got, want)
		}
	}
}
