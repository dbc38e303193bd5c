package session

import (
	"strings"

	"golang.org/x/text/cases"
)

// Role is one of the fixed user roles.
type Role string

// Known roles.
const (
	RoleNone      Role = ""
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RoleRecruiter Role = "recruiter"
	RoleClient    Role = "client"
)

// RoleSelectionPath is the entry route for unauthenticated users and unknown roles.
const RoleSelectionPath = "/auth/choice"

var roleSynonyms = map[string]Role{
	"admin":          RoleAdmin,
	"administrator":  RoleAdmin,
	"administrateur": RoleAdmin,
	"manager":        RoleManager,
	"gestionnaire":   RoleManager,
	"responsable":    RoleManager,
	"recruiter":      RoleRecruiter,
	"recruteur":      RoleRecruiter,
	"rh":             RoleRecruiter,
	"client":         RoleClient,
	"customer":       RoleClient,
}

var dashboards = map[Role]string{
	RoleAdmin:     "/admin",
	RoleManager:   "/manager",
	RoleRecruiter: "/recruiter",
	RoleClient:    "/client",
}

var folder = cases.Fold()

// ParseRole normalizes a backend role string. Unknown values yield RoleNone.
func ParseRole(s string) Role {
	key := folder.String(strings.TrimSpace(s))
	return roleSynonyms[key]
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := dashboards[r]
	return ok
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// DashboardPath maps a role (any accepted spelling) to its landing route.
// Unknown or empty roles map to RoleSelectionPath.
func DashboardPath[T ~string](role T) string {
	if path, ok := dashboards[ParseRole(string(role))]; ok {
		return path
	}
	return RoleSelectionPath
}

// ProtectedPaths returns the dashboard route prefixes of every role.
func ProtectedPaths() map[string]Role {
	paths := make(map[string]Role, len(dashboards))
	for role, path := range dashboards {
		paths[path] = role
	}
	return paths
}
