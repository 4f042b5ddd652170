package entity

import "time"

// DbAnnouncement is soft-deleted through IsActive and never removed.
type DbAnnouncement struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Content   string    `gorm:"column:content;type:text;not null" json:"content"`
	AuthorID  uint      `gorm:"column:author_id;index;not null" json:"author_id"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`

	Author *DbUser `gorm:"foreignKey:AuthorID" json:"-"`
}

func (DbAnnouncement) TableName() string {
	return "announcements"
}

type AnnouncementRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type Announcement struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  uint      `json:"author_id"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AnnouncementListResponse struct {
	Announcements []Announcement `json:"announcements"`
}
