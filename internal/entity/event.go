package entity

import "time"

type DbEvent struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Title       string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	EventDate   time.Time `gorm:"column:event_date;index;not null" json:"event_date"`
	Location    string    `gorm:"column:location;type:varchar(200)" json:"location"`
	OrganizerID uint      `gorm:"column:organizer_id;index;not null" json:"organizer_id"`

	Organizer *DbUser `gorm:"foreignKey:OrganizerID" json:"-"`
}

func (DbEvent) TableName() string {
	return "events"
}

// EventRequest carries event_date as text so date-only and zone-less
// timestamps are accepted alongside RFC 3339.
type EventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	EventDate   string `json:"event_date" binding:"required"`
	Location    string `json:"location" binding:"required"`
}

type Event struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	OrganizerID uint      `json:"organizer_id"`
	Organizer   string    `json:"organizer"`
}

type EventListResponse struct {
	Events []Event `json:"events"`
}

type EventUpdates struct {
	Title       string
	Description string
	EventDate   time.Time
	Location    string
}

func (u EventUpdates) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"title":       u.Title,
		"description": u.Description,
		"event_date":  u.EventDate,
		"location":    u.Location,
	}
}
