// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an identity can have in the system.
type Role string

const (
	// RoleUser indicates a regular user role. Every identity holds it.
	RoleUser Role = "user"
	// RoleAdmin indicates an administrator role, granted explicitly.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// rank orders roles by privilege; higher dominates lower.
func (r Role) rank() int {
	switch r {
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	default:
		return 0
	}
}

// Satisfies reports whether this role meets the given requirement.
// Admin satisfies any requirement; user satisfies only user.
func (r Role) Satisfies(required Role) bool {
	if !r.IsValid() || !required.IsValid() {
		return false
	}

	return r.rank() >= required.rank()
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// Primary returns the single most-privileged role of the set, the role
// embedded in access tokens. An empty set defaults to RoleUser.
func (rs Roles) Primary() Role {
	best := RoleUser
	for _, r := range rs {
		if r.IsValid() && r.rank() > best.rank() {
			best = r
		}
	}

	return best
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := Role(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
