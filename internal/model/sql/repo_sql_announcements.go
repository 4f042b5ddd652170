package sql

import (
	"church/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ListActiveAnnouncements returns active announcements, newest first.
func (r *GormRepository) ListActiveAnnouncements(ctx context.Context) ([]entity.DbAnnouncement, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var announcements []entity.DbAnnouncement
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Order("id DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}

// GetAnnouncement loads an active announcement; soft-deleted ones are not found.
func (r *GormRepository) GetAnnouncement(ctx context.Context, id uint) (*entity.DbAnnouncement, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var announcement entity.DbAnnouncement
	if err := r.db.WithContext(ctx).Preload("Author").Where("is_active = ?", true).First(&announcement, id).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

func (r *GormRepository) CreateAnnouncement(ctx context.Context, announcement *entity.DbAnnouncement) error {
	if err := r.ready(); err != nil {
		return err
	}
	if announcement == nil {
		return fmt.Errorf("announcement is nil")
	}
	return r.db.WithContext(ctx).Create(announcement).Error
}

// UpdateAnnouncement rewrites title and content of an active announcement.
func (r *GormRepository) UpdateAnnouncement(ctx context.Context, id uint, title, content string) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid announcement id")
	}
	return r.db.WithContext(ctx).
		Model(&entity.DbAnnouncement{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]interface{}{"title": title, "content": content}).Error
}

// DeactivateAnnouncement soft-deletes an announcement.
func (r *GormRepository) DeactivateAnnouncement(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	result := r.db.WithContext(ctx).
		Model(&entity.DbAnnouncement{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
