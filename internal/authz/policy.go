package authz

import (
	"errors"

	"user-manager/internal/domain"
	"user-manager/internal/token"
)

var (
	// ErrNotAuthorized denies callers that do not hold the admin role.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrCannotModifyAdmin denies an admin touching another admin's record.
	ErrCannotModifyAdmin = errors.New("cannot change other admin")
)

// CanModify decides whether the caller may update or delete the target
// user. It is a pure function with no side effects: only admins may mutate
// users, and an admin record may be mutated only by that admin itself.
// Role comparison is case-insensitive against the canonical enum text.
func CanModify(caller token.Identity, target *domain.User) error {
	callerRole, err := domain.ParseRole(caller.Role)
	if err != nil || callerRole != domain.RoleAdmin {
		return ErrNotAuthorized
	}
	if target.Role.IsAdmin() && caller.Username != target.Username {
		return ErrCannotModifyAdmin
	}
	return nil
}
