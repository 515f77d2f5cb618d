package model

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin     UserRole = "ADMIN"
	UserRoleStaff     UserRole = "STAFF"
	UserRoleRequester UserRole = "REQUESTER"
)

// Principal is the authenticated caller, passed explicitly into every
// service method rather than read from ambient context.
type Principal struct {
	UserID uuid.UUID
	OrgID  *int64
	Role   UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}

func (p Principal) IsStaff() bool {
	return p.Role == UserRoleStaff
}
