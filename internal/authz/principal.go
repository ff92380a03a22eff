// Package authz carries the authenticated principal and the scope-filtering
// primitive applied by every resource-returning operation.
package authz

import "fmt"

// Role defines the principal roles known to the system.
type Role string

const (
	// RoleAdmin can see the whole portfolio.
	RoleAdmin Role = "admin"
	// RoleOwner is bound to a single property.
	RoleOwner Role = "owner"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleOwner
}

// Principal is the authenticated identity plus its role and visibility scope.
// It is reconstructed per request from a validated credential and never
// persisted beyond request scope.
type Principal struct {
	Identity string
	Role     Role
	Scope    ScopeValue
}

// String returns a representation suitable for audit logs.
func (p Principal) String() string {
	return fmt.Sprintf("%s:%s[%s]", p.Role, p.Identity, p.Scope)
}
