package user

import "github.com/google/uuid"

type Role string

const (
	RoleMember Role = "member"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleStaff, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanManageAll reports whether the role may act on reservations it does not own.
func (r Role) CanManageAll() bool {
	return r == RoleStaff || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Identity is the authenticated caller as issued by the identity provider.
// It is only used to tag reservation owners and gate cancellation.
type Identity struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  Role
}
