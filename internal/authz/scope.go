package authz

import (
	"github.com/samber/lo"
)

// allClaim is the legacy wire sentinel for an unrestricted scope. It only
// appears inside credential claims; everywhere else the scope is a ScopeValue.
const allClaim = "ALL"

// ScopeValue restricts a principal's visibility over portfolio resources.
// It is either unrestricted or bound to exactly one property.
type ScopeValue struct {
	all        bool
	propertyID string
}

// AllResources returns the unrestricted scope.
func AllResources() ScopeValue {
	return ScopeValue{all: true}
}

// SingleResource returns a scope bound to one property. An empty id is
// conservatively treated as a scope that matches nothing rather than
// everything.
func SingleResource(propertyID string) ScopeValue {
	return ScopeValue{propertyID: propertyID}
}

// IsAll reports whether the scope is unrestricted.
func (s ScopeValue) IsAll() bool {
	return s.all
}

// PropertyID returns the bound property id, if the scope is restricted.
func (s ScopeValue) PropertyID() (string, bool) {
	if s.all {
		return "", false
	}

	return s.propertyID, true
}

// Allows reports whether the scope permits visibility of the given property.
func (s ScopeValue) Allows(propertyID string) bool {
	if s.all {
		return true
	}

	return s.propertyID != "" && s.propertyID == propertyID
}

// Claim encodes the scope for embedding in a credential.
func (s ScopeValue) Claim() string {
	if s.all {
		return allClaim
	}

	return s.propertyID
}

// ParseScopeClaim decodes a scope claim. The legacy "ALL" sentinel and the
// empty claim both mean unrestricted, matching credentials issued for admins
// with no property binding.
func ParseScopeClaim(claim string) ScopeValue {
	if claim == "" || claim == allClaim {
		return AllResources()
	}

	return SingleResource(claim)
}

func (s ScopeValue) String() string {
	if s.all {
		return "all-resources"
	}

	return "property:" + s.propertyID
}

// Scoped is any resource that carries a property binding.
type Scoped interface {
	ResourceID() string
}

// ApplyScope filters resources down to those visible to the principal.
// The unrestricted scope returns the input unchanged, preserving order and
// count. Filtering to a scope with no matching resources yields an empty
// slice, never an error.
func ApplyScope[R Scoped](p Principal, resources []R) []R {
	if p.Scope.IsAll() {
		return resources
	}

	return lo.Filter(resources, func(r R, _ int) bool {
		return p.Scope.Allows(r.ResourceID())
	})
}
