package api

import (
	"church/internal/auth"
	"church/internal/entity"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const announcementNotFound = "announcement not found"

func (h *HTTPHandler) ListAnnouncements(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AnyRole); !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	announcements, err := h.repo.ListActiveAnnouncements(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list announcements")
		InternalError(c, "failed to load announcements")
		return
	}

	response := entity.AnnouncementListResponse{
		Announcements: make([]entity.Announcement, 0, len(announcements)),
	}
	for idx := range announcements {
		response.Announcements = append(response.Announcements, makeAnnouncement(&announcements[idx]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *HTTPHandler) GetAnnouncement(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AnyRole); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeAnnouncementNotFound, announcementNotFound)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	announcement, err := h.repo.GetAnnouncement(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeAnnouncementNotFound, announcementNotFound, "failed to load announcement")
		return
	}
	c.JSON(http.StatusOK, makeAnnouncement(announcement))
}

func (h *HTTPHandler) CreateAnnouncement(c *gin.Context) {
	author, ok := h.authorize(c, auth.Editors)
	if !ok {
		return
	}

	var req entity.AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	title, ok := requireText(c, "title", req.Title)
	if !ok {
		return
	}
	content, ok := requireText(c, "content", req.Content)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	announcement := &entity.DbAnnouncement{
		Title:    title,
		Content:  content,
		AuthorID: author.ID,
		IsActive: true,
	}
	if err := h.repo.CreateAnnouncement(ctx, announcement); err != nil {
		logrus.WithError(err).Error("failed to create announcement")
		InternalError(c, "failed to create announcement")
		return
	}
	announcement.Author = author
	c.JSON(http.StatusCreated, makeAnnouncement(announcement))
}

func (h *HTTPHandler) UpdateAnnouncement(c *gin.Context) {
	if _, ok := h.authorize(c, auth.Editors); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeAnnouncementNotFound, announcementNotFound)
	if !ok {
		return
	}

	var req entity.AnnouncementRequest
	if !bindJSON(c, &req) {
		return
	}
	title, ok := requireText(c, "title", req.Title)
	if !ok {
		return
	}
	content, ok := requireText(c, "content", req.Content)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.repo.GetAnnouncement(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeAnnouncementNotFound, announcementNotFound, "failed to load announcement")
		return
	}
	if err := h.repo.UpdateAnnouncement(ctx, id, title, content); err != nil {
		logrus.WithError(err).WithField("announcement_id", id).Error("failed to update announcement")
		InternalError(c, "failed to update announcement")
		return
	}

	updated, err := h.repo.GetAnnouncement(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeAnnouncementNotFound, announcementNotFound, "failed to load announcement")
		return
	}
	c.JSON(http.StatusOK, makeAnnouncement(updated))
}

// DeleteAnnouncement hides an announcement from listings.
func (h *HTTPHandler) DeleteAnnouncement(c *gin.Context) {
	if _, ok := h.authorize(c, auth.Editors); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeAnnouncementNotFound, announcementNotFound)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.DeactivateAnnouncement(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeAnnouncementNotFound, announcementNotFound, "failed to delete announcement")
		return
	}
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "Announcement deleted"})
}
