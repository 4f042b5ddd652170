package sql

import (
	"church/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// departmentsWithCounts selects departments together with their active member count.
func (r *GormRepository) departmentsWithCounts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&entity.DbDepartment{}).
		Select("departments.*, COUNT(users.id) AS member_count").
		Joins("LEFT JOIN users ON users.department_id = departments.id AND users.is_active = ?", true).
		Group("departments.id")
}

// ListDepartments returns every department in insertion order.
func (r *GormRepository) ListDepartments(ctx context.Context) ([]entity.DbDepartment, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var departments []entity.DbDepartment
	if err := r.departmentsWithCounts(ctx).Order("departments.id ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

// GetDepartment loads one department with its member count.
func (r *GormRepository) GetDepartment(ctx context.Context, id uint) (*entity.DbDepartment, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var department entity.DbDepartment
	if err := r.departmentsWithCounts(ctx).Where("departments.id = ?", id).Take(&department).Error; err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *GormRepository) CreateDepartment(ctx context.Context, department *entity.DbDepartment) error {
	if err := r.ready(); err != nil {
		return err
	}
	if department == nil {
		return fmt.Errorf("department is nil")
	}
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *GormRepository) UpdateDepartment(ctx context.Context, id uint, updates entity.DepartmentUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid department id")
	}
	return r.db.WithContext(ctx).Model(&entity.DbDepartment{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// DeleteDepartment removes a department unless any user, active or not,
// still points at it.
func (r *GormRepository) DeleteDepartment(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var department entity.DbDepartment
		if err := tx.First(&department, id).Error; err != nil {
			return err
		}

		var references int64
		if err := tx.Model(&entity.DbUser{}).Where("department_id = ?", id).Count(&references).Error; err != nil {
			return err
		}
		if references > 0 {
			return ErrDepartmentInUse
		}

		return r.deleteByID(tx, &entity.DbDepartment{}, id)
	})
}
