package enums

import "fmt"

// Role is the flat permission level stored on each user row.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleStaff  Role = "staff"
	RoleViewer Role = "viewer"
)

var validRoles = []Role{RoleAdmin, RoleStaff, RoleViewer}

// IsValid reports whether the value matches the canonical role enum.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// CanWrite reports whether the role is allowed on mutating routes.
func (r Role) CanWrite() bool {
	return r == RoleAdmin || r == RoleStaff
}

// ParseRole converts the raw string to Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}
