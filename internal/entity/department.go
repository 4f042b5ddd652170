package entity

import "time"

// DbDepartment groups members under an optional leading user.
type DbDepartment struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	LeaderID    *uint     `gorm:"column:leader_id;index" json:"leader_id"`

	// Filled by listing queries only.
	MemberCount int64 `gorm:"column:member_count;->;-:migration" json:"member_count"`
}

func (DbDepartment) TableName() string {
	return "departments"
}

type DepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	LeaderID    *uint  `json:"leader_id"`
}

type Department struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LeaderID    *uint     `json:"leader_id"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type DepartmentListResponse struct {
	Departments []Department `json:"departments"`
}

// DepartmentUpdates always carries the full set of mutable columns.
type DepartmentUpdates struct {
	Name        string
	Description string
	LeaderID    *uint
}

func (u DepartmentUpdates) ToMap() map[string]interface{} {
	updates := map[string]interface{}{
		"name":        u.Name,
		"description": u.Description,
		"leader_id":   nil,
	}
	if u.LeaderID != nil {
		updates["leader_id"] = *u.LeaderID
	}
	return updates
}
