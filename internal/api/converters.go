package api

import (
	"church/internal/entity"
	"time"
)

func makeUserSummary(user *entity.DbUser) entity.UserSummary {
	if user == nil {
		return entity.UserSummary{}
	}
	summary := entity.UserSummary{
		ID:           user.ID,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
	}
	if user.Department != nil {
		name := user.Department.Name
		summary.Department = &name
	}
	return summary
}

func makeAnnouncement(a *entity.DbAnnouncement) entity.Announcement {
	return entity.Announcement{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		AuthorID:  a.AuthorID,
		Author:    a.Author.FullName(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func makeEvent(e *entity.DbEvent) entity.Event {
	return entity.Event{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		EventDate:   e.EventDate,
		Location:    e.Location,
		OrganizerID: e.OrganizerID,
		Organizer:   e.Organizer.FullName(),
	}
}

func makeDepartment(d *entity.DbDepartment) entity.Department {
	return entity.Department{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		LeaderID:    d.LeaderID,
		MemberCount: d.MemberCount,
		CreatedAt:   d.CreatedAt,
	}
}

func makeSermon(s *entity.DbSermon) entity.Sermon {
	return entity.Sermon{
		ID:         s.ID,
		Title:      s.Title,
		Speaker:    s.Speaker,
		Scripture:  s.Scripture,
		AudioURL:   s.AudioURL,
		VideoURL:   s.VideoURL,
		SermonDate: time.Time(s.SermonDate).Format(entity.SermonDateLayout),
	}
}
