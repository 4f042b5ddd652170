package api

import (
	"church/internal/auth"
	"church/internal/entity"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

const sermonNotFound = "sermon not found"

func (h *HTTPHandler) ListSermons(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AnyRole); !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	sermons, err := h.repo.ListSermons(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list sermons")
		InternalError(c, "failed to load sermons")
		return
	}

	response := entity.SermonListResponse{Sermons: make([]entity.Sermon, 0, len(sermons))}
	for idx := range sermons {
		response.Sermons = append(response.Sermons, makeSermon(&sermons[idx]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *HTTPHandler) GetSermon(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AnyRole); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeSermonNotFound, sermonNotFound)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	sermon, err := h.repo.GetSermon(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeSermonNotFound, sermonNotFound, "failed to load sermon")
		return
	}
	c.JSON(http.StatusOK, makeSermon(sermon))
}

func (h *HTTPHandler) CreateSermon(c *gin.Context) {
	if _, ok := h.authorize(c, auth.Editors); !ok {
		return
	}

	updates, ok := bindSermon(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	sermon := &entity.DbSermon{
		Title:      updates.Title,
		Speaker:    updates.Speaker,
		Scripture:  updates.Scripture,
		AudioURL:   updates.AudioURL,
		VideoURL:   updates.VideoURL,
		SermonDate: datatypes.Date(updates.SermonDate),
	}
	if err := h.repo.CreateSermon(ctx, sermon); err != nil {
		logrus.WithError(err).Error("failed to create sermon")
		InternalError(c, "failed to create sermon")
		return
	}
	c.JSON(http.StatusCreated, makeSermon(sermon))
}

// UpdateSermon replaces every field; omitted optional fields are cleared.
func (h *HTTPHandler) UpdateSermon(c *gin.Context) {
	if _, ok := h.authorize(c, auth.Editors); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeSermonNotFound, sermonNotFound)
	if !ok {
		return
	}

	updates, ok := bindSermon(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.repo.GetSermon(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeSermonNotFound, sermonNotFound, "failed to load sermon")
		return
	}
	if err := h.repo.UpdateSermon(ctx, id, updates); err != nil {
		logrus.WithError(err).WithField("sermon_id", id).Error("failed to update sermon")
		InternalError(c, "failed to update sermon")
		return
	}

	updated, err := h.repo.GetSermon(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeSermonNotFound, sermonNotFound, "failed to load sermon")
		return
	}
	c.JSON(http.StatusOK, makeSermon(updated))
}

func (h *HTTPHandler) DeleteSermon(c *gin.Context) {
	if _, ok := h.authorize(c, auth.Editors); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeSermonNotFound, sermonNotFound)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.DeleteSermon(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeSermonNotFound, sermonNotFound, "failed to delete sermon")
		return
	}
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "Sermon deleted"})
}

func bindSermon(c *gin.Context) (entity.SermonUpdates, bool) {
	var req entity.SermonRequest
	if !bindJSON(c, &req) {
		return entity.SermonUpdates{}, false
	}

	updates := entity.SermonUpdates{
		Scripture: trimOptional(req.Scripture),
		AudioURL:  trimOptional(req.AudioURL),
		VideoURL:  trimOptional(req.VideoURL),
	}
	var ok bool
	if updates.Title, ok = requireText(c, "title", req.Title); !ok {
		return updates, false
	}
	if updates.Speaker, ok = requireText(c, "speaker", req.Speaker); !ok {
		return updates, false
	}

	sermonDate, err := parseSermonDate(req.SermonDate)
	if err != nil {
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest,
			"sermon_date must be a YYYY-MM-DD date",
			gin.H{"field": "sermon_date"})
		return updates, false
	}
	updates.SermonDate = sermonDate
	return updates, true
}
