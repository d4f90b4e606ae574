package navigation

import (
	"testing"

	"github.com/meridian-erp/meridian-erp/internal/shared"
)

func TestBuildTableSegments(t *testing.T) {
	table := BuildTable(DefaultMenu())

	req, ok := table.Lookup("sales")
	if !ok {
		t.Fatalf("sales segment should be mapped")
	}
	if !req.IsAnyOf() {
		t.Fatalf("sales requirement should be a permission list")
	}
	if req.First() != shared.PermSalesCustomersView {
		t.Fatalf("sales first permission = %q", req.First())
	}

	req, ok = table.Lookup("groups")
	if !ok || req.IsAnyOf() {
		t.Fatalf("groups should map to a single permission")
	}

	req, ok = table.Lookup("dashboard")
	if !ok {
		t.Fatalf("dashboard should be mapped as a known module")
	}
	if !req.IsZero() {
		t.Fatalf("dashboard should have no permission requirement")
	}

	if _, ok := table.Lookup("quick-sale"); ok {
		t.Fatalf("unknown segment should not be mapped")
	}
}

func TestBuildTableFirstEntryWins(t *testing.T) {
	menu := []Entry{
		{Title: "Sales", URL: "/sales", Requirement: Single("sales:customers:view")},
		{Title: "Sales Legacy", URL: "/sales/legacy", Requirement: Single("sales:legacy:view")},
	}
	table := BuildTable(menu)
	req, ok := table.Lookup("sales")
	if !ok || req.First() != "sales:customers:view" {
		t.Fatalf("first declared entry should own the segment")
	}
}

func TestVisibleMenu(t *testing.T) {
	menu := DefaultMenu()

	admin := &Session{UserID: "1", Role: shared.RoleAdmin}
	if got, want := len(VisibleMenu(menu, admin)), len(menu); got != want {
		t.Fatalf("admin should see %d entries, saw %d", want, got)
	}

	user := &Session{
		UserID:      "2",
		Role:        shared.RoleUser,
		Permissions: []string{shared.PermSalesInvoicesView},
	}
	items := VisibleMenu(menu, user)
	if len(items) != 2 {
		t.Fatalf("expected dashboard and sales, got %d entries", len(items))
	}
	if items[0].URL != "/dashboard" || items[1].URL != "/sales" {
		t.Fatalf("unexpected visible menu: %+v", items)
	}
}
