package model

import (
	"church/internal/entity"
	"church/internal/model/sql"
	"context"
)

// ErrDepartmentInUse is returned when deleting a department members still reference.
var ErrDepartmentInUse = sql.ErrDepartmentInUse

// Repository 定义数据库操作接口
//
// Lookups of absent rows return gorm.ErrRecordNotFound.
type Repository interface {
	// 成员
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetActiveUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListMembers(ctx context.Context, params *entity.MemberQuery) ([]entity.DbUser, *entity.Meta, error)
	DeactivateUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// 部门
	ListDepartments(ctx context.Context) ([]entity.DbDepartment, error)
	GetDepartment(ctx context.Context, id uint) (*entity.DbDepartment, error)
	CreateDepartment(ctx context.Context, department *entity.DbDepartment) error
	UpdateDepartment(ctx context.Context, id uint, updates entity.DepartmentUpdates) error
	DeleteDepartment(ctx context.Context, id uint) error

	// 公告
	ListActiveAnnouncements(ctx context.Context) ([]entity.DbAnnouncement, error)
	GetAnnouncement(ctx context.Context, id uint) (*entity.DbAnnouncement, error)
	CreateAnnouncement(ctx context.Context, announcement *entity.DbAnnouncement) error
	UpdateAnnouncement(ctx context.Context, id uint, title, content string) error
	DeactivateAnnouncement(ctx context.Context, id uint) error

	// 活动
	ListEvents(ctx context.Context) ([]entity.DbEvent, error)
	GetEvent(ctx context.Context, id uint) (*entity.DbEvent, error)
	CreateEvent(ctx context.Context, event *entity.DbEvent) error
	UpdateEvent(ctx context.Context, id uint, updates entity.EventUpdates) error
	DeleteEvent(ctx context.Context, id uint) error

	// 讲道
	ListSermons(ctx context.Context) ([]entity.DbSermon, error)
	GetSermon(ctx context.Context, id uint) (*entity.DbSermon, error)
	CreateSermon(ctx context.Context, sermon *entity.DbSermon) error
	UpdateSermon(ctx context.Context, id uint, updates entity.SermonUpdates) error
	UpdateSermonMedia(ctx context.Context, id uint, updates entity.SermonMediaUpdates) error
	DeleteSermon(ctx context.Context, id uint) error
}

var _ Repository = (*sql.GormRepository)(nil)
