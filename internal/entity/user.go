package entity

import (
	"strings"
	"time"
)

const (
	UserRoleAdmin  = "admin"
	UserRoleLeader = "leader"
	UserRoleMember = "member"
)

// ValidRole reports whether role is one of the enumerated member roles.
func ValidRole(role string) bool {
	switch role {
	case UserRoleAdmin, UserRoleLeader, UserRoleMember:
		return true
	default:
		return false
	}
}

// DbUser represents a persisted church member account.
type DbUser struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"column:first_name;type:varchar(100);not null" json:"first_name"`
	LastName     string    `gorm:"column:last_name;type:varchar(100);not null" json:"last_name"`
	Role         string    `gorm:"column:role;type:varchar(20);index;not null;default:member" json:"role"`
	DepartmentID *uint     `gorm:"column:department_id;index" json:"department_id"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	Department *DbDepartment `gorm:"foreignKey:DepartmentID" json:"-"`
}

// TableName overrides default pluralised name.
func (DbUser) TableName() string {
	return "users"
}

// FullName joins first and last name the way listings display authors.
func (u *DbUser) FullName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserSummary is a lightweight user description returned to clients.
type UserSummary struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	DepartmentID *uint     `json:"department_id"`
	Department   *string   `json:"department"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// MemberQuery supports filtering the member directory.
type MemberQuery struct {
	BaseParams
	Role            string `form:"role"`
	DepartmentID    uint   `form:"department_id"`
	Keyword         string `form:"keyword"`
	IncludeInactive bool   `form:"include_inactive"`
}

type AuthLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthRegisterRequest struct {
	Email        string `json:"email" binding:"required,email"`
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Password     string `json:"password" binding:"required,min=8"`
	Role         string `json:"role" binding:"omitempty,church_role"`
	DepartmentID *uint  `json:"department_id"`
}

type AuthResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      UserSummary `json:"user"`
}

// MemberUpdateRequest replaces every mutable member field at once.
type MemberUpdateRequest struct {
	FirstName    string `json:"first_name" binding:"required"`
	LastName     string `json:"last_name" binding:"required"`
	Role         string `json:"role" binding:"required,church_role"`
	DepartmentID *uint  `json:"department_id"`
}

type MemberListResponse struct {
	Members []UserSummary `json:"members"`
	Meta    *Meta         `json:"meta"`
}

// UserUpdates holds the columns an update may touch.
type UserUpdates struct {
	FirstName    *string
	LastName     *string
	Role         *string
	DepartmentID *uint
	// ClearDepartment stores NULL when DepartmentID is nil.
	ClearDepartment bool
	IsActive        *bool
	PasswordHash    *string
}

// ToMap 转换为 GORM 更新 map（内部使用）
func (u UserUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.FirstName != nil {
		updates["first_name"] = *u.FirstName
	}
	if u.LastName != nil {
		updates["last_name"] = *u.LastName
	}
	if u.Role != nil {
		updates["role"] = *u.Role
	}
	if u.DepartmentID != nil {
		updates["department_id"] = *u.DepartmentID
	} else if u.ClearDepartment {
		updates["department_id"] = nil
	}
	if u.IsActive != nil {
		updates["is_active"] = *u.IsActive
	}
	if u.PasswordHash != nil {
		updates["password_hash"] = *u.PasswordHash
	}
	return updates
}

// IsEmpty 检查是否没有任何更新字段
func (u UserUpdates) IsEmpty() bool {
	return len(u.ToMap()) == 0
}
