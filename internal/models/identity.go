package models

import "github.com/google/uuid"

// Identity is the authenticated actor executing a request.
// It carries the role and unit used by the access policy.
type Identity struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	FullName string    `json:"full_name"`
	Unit     string    `json:"unit"`
	Role     string    `json:"role"`
}

// IsAdmin reports whether the identity has the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
