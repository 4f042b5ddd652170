package sql

import (
	"church/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ListSermons returns sermons ordered by sermon date, latest first.
func (r *GormRepository) ListSermons(ctx context.Context) ([]entity.DbSermon, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var sermons []entity.DbSermon
	if err := r.db.WithContext(ctx).Order("sermon_date DESC").Order("id DESC").Find(&sermons).Error; err != nil {
		return nil, err
	}
	return sermons, nil
}

func (r *GormRepository) GetSermon(ctx context.Context, id uint) (*entity.DbSermon, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var sermon entity.DbSermon
	if err := r.db.WithContext(ctx).First(&sermon, id).Error; err != nil {
		return nil, err
	}
	return &sermon, nil
}

func (r *GormRepository) CreateSermon(ctx context.Context, sermon *entity.DbSermon) error {
	if err := r.ready(); err != nil {
		return err
	}
	if sermon == nil {
		return fmt.Errorf("sermon is nil")
	}
	return r.db.WithContext(ctx).Create(sermon).Error
}

func (r *GormRepository) UpdateSermon(ctx context.Context, id uint, updates entity.SermonUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid sermon id")
	}
	return r.db.WithContext(ctx).Model(&entity.DbSermon{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// UpdateSermonMedia points the sermon at newly uploaded audio or video.
func (r *GormRepository) UpdateSermonMedia(ctx context.Context, id uint, updates entity.SermonMediaUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	values := updates.ToMap()
	if id == 0 || len(values) == 0 {
		return fmt.Errorf("invalid sermon media update")
	}
	return r.db.WithContext(ctx).Model(&entity.DbSermon{}).Where("id = ?", id).Updates(values).Error
}

// DeleteSermon removes a sermon permanently.
func (r *GormRepository) DeleteSermon(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.deleteByID(r.db.WithContext(ctx), &entity.DbSermon{}, id)
}
