package navigation

import "strings"

type requirementKind int

const (
	requirementNone requirementKind = iota
	requirementSingle
	requirementAnyOf
)

// Requirement is the permission gate on a menu entry, expressed as a tagged
// variant: no requirement, a single permission, or a list of which at least
// one must be held. The list order is significant: the first held permission
// decides where a bare module root redirects.
type Requirement struct {
	kind  requirementKind
	perms []string
}

// Single requires exactly one permission.
func Single(perm string) Requirement {
	return Requirement{kind: requirementSingle, perms: []string{perm}}
}

// AnyOf requires at least one of the listed permissions.
func AnyOf(perms ...string) Requirement {
	return Requirement{kind: requirementAnyOf, perms: perms}
}

// IsZero reports whether no permission is required.
func (r Requirement) IsZero() bool {
	return r.kind == requirementNone || len(r.perms) == 0
}

// IsAnyOf reports whether the requirement is a permission list.
func (r Requirement) IsAnyOf() bool {
	return r.kind == requirementAnyOf
}

// Permissions returns the declared permission keys in order.
func (r Requirement) Permissions() []string {
	return r.perms
}

// First returns the first declared permission, or "".
func (r Requirement) First() string {
	if len(r.perms) == 0 {
		return ""
	}
	return r.perms[0]
}

// FirstHeld returns the first declared permission present in held, in
// declared order.
func (r Requirement) FirstHeld(held map[string]struct{}) (string, bool) {
	for _, p := range r.perms {
		if _, ok := held[p]; ok {
			return p, true
		}
	}
	return "", false
}

// SubmoduleSlug derives a page slug from a permission key. Keys follow the
// module:submodule:action convention, so the slug is the second token. This
// ties permission naming to URL structure and is relied on by bare-root
// redirects; changing the key format breaks it.
func SubmoduleSlug(perm string) string {
	parts := strings.Split(perm, ":")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
