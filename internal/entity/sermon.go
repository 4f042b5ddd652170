package entity

import (
	"time"

	"gorm.io/datatypes"
)

// SermonDateLayout is the wire format of sermon_date.
const SermonDateLayout = "2006-01-02"

type DbSermon struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Title      string         `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Speaker    string         `gorm:"column:speaker;type:varchar(100);not null" json:"speaker"`
	Scripture  *string        `gorm:"column:scripture;type:varchar(200)" json:"scripture"`
	AudioURL   *string        `gorm:"column:audio_url;type:varchar(500)" json:"audio_url"`
	VideoURL   *string        `gorm:"column:video_url;type:varchar(500)" json:"video_url"`
	SermonDate datatypes.Date `gorm:"column:sermon_date;index;not null" json:"sermon_date"`
}

func (DbSermon) TableName() string {
	return "sermons"
}

type SermonRequest struct {
	Title      string  `json:"title" binding:"required"`
	Speaker    string  `json:"speaker" binding:"required"`
	Scripture  *string `json:"scripture"`
	AudioURL   *string `json:"audio_url" binding:"omitempty,url"`
	VideoURL   *string `json:"video_url" binding:"omitempty,url"`
	SermonDate string  `json:"sermon_date" binding:"required"`
}

type Sermon struct {
	ID         uint    `json:"id"`
	Title      string  `json:"title"`
	Speaker    string  `json:"speaker"`
	Scripture  *string `json:"scripture"`
	AudioURL   *string `json:"audio_url"`
	VideoURL   *string `json:"video_url"`
	SermonDate string  `json:"sermon_date"`
}

type SermonListResponse struct {
	Sermons []Sermon `json:"sermons"`
}

// SermonUpdates replaces every mutable column; nil optionals are stored as NULL.
type SermonUpdates struct {
	Title      string
	Speaker    string
	Scripture  *string
	AudioURL   *string
	VideoURL   *string
	SermonDate time.Time
}

func (u SermonUpdates) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"title":       u.Title,
		"speaker":     u.Speaker,
		"scripture":   nullableString(u.Scripture),
		"audio_url":   nullableString(u.AudioURL),
		"video_url":   nullableString(u.VideoURL),
		"sermon_date": datatypes.Date(u.SermonDate),
	}
}

// SermonMediaUpdates points one media column at an uploaded object.
type SermonMediaUpdates struct {
	AudioURL *string
	VideoURL *string
}

func (u SermonMediaUpdates) ToMap() map[string]interface{} {
	updates := make(map[string]interface{})
	if u.AudioURL != nil {
		updates["audio_url"] = *u.AudioURL
	}
	if u.VideoURL != nil {
		updates["video_url"] = *u.VideoURL
	}
	return updates
}

func nullableString(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
