package auth

import (
	"errors"

	"church/internal/entity"
)

var (
	// ErrAccountInactive is returned for identities that no longer resolve to
	// an active user, even when their token is still valid.
	ErrAccountInactive = errors.New("account inactive")
	ErrRoleNotAllowed  = errors.New("role not allowed")
)

// RoleSet lists the roles permitted to perform an operation. Roles are not
// hierarchical; membership is checked explicitly.
type RoleSet map[string]struct{}

func NewRoleSet(roles ...string) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

func (s RoleSet) Contains(role string) bool {
	_, ok := s[role]
	return ok
}

var (
	AnyRole   = NewRoleSet(entity.UserRoleAdmin, entity.UserRoleLeader, entity.UserRoleMember)
	Editors   = NewRoleSet(entity.UserRoleAdmin, entity.UserRoleLeader)
	AdminOnly = NewRoleSet(entity.UserRoleAdmin)
)

// Authorize decides whether user, freshly loaded from the store, may act under
// the allowed role set.
func Authorize(user *entity.DbUser, allowed RoleSet) error {
	if user == nil || !user.IsActive {
		return ErrAccountInactive
	}
	if !allowed.Contains(user.Role) {
		return ErrRoleNotAllowed
	}
	return nil
}
