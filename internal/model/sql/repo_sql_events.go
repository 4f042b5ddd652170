package sql

import (
	"church/internal/entity"
	"context"
	"fmt"

	"gorm.io/gorm"
)

// ListEvents returns events ordered by event date, latest first.
func (r *GormRepository) ListEvents(ctx context.Context) ([]entity.DbEvent, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	var events []entity.DbEvent
	if err := r.db.WithContext(ctx).Preload("Organizer").Order("event_date DESC").Order("id DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormRepository) GetEvent(ctx context.Context, id uint) (*entity.DbEvent, error) {
	if err := r.ready(); err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	var event entity.DbEvent
	if err := r.db.WithContext(ctx).Preload("Organizer").First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *GormRepository) CreateEvent(ctx context.Context, event *entity.DbEvent) error {
	if err := r.ready(); err != nil {
		return err
	}
	if event == nil {
		return fmt.Errorf("event is nil")
	}
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormRepository) UpdateEvent(ctx context.Context, id uint, updates entity.EventUpdates) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return fmt.Errorf("invalid event id")
	}
	return r.db.WithContext(ctx).Model(&entity.DbEvent{}).Where("id = ?", id).Updates(updates.ToMap()).Error
}

// DeleteEvent removes an event permanently.
func (r *GormRepository) DeleteEvent(ctx context.Context, id uint) error {
	if err := r.ready(); err != nil {
		return err
	}
	if id == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.deleteByID(r.db.WithContext(ctx), &entity.DbEvent{}, id)
}
