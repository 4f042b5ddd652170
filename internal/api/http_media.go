package api

import (
	"church/internal/auth"
	"church/internal/entity"
	"church/internal/storage"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxUploadMB = 200
	uploadTimeout      = 10 * time.Minute
	// multipart framing and the kind field ride on top of the file itself
	multipartOverhead = 1 << 20
)

// UploadSermonMedia stores an audio or video recording and points the
// sermon's audio_url or video_url at it.
func (h *HTTPHandler) UploadSermonMedia(c *gin.Context) {
	if _, ok := h.authorize(c, auth.Editors); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeSermonNotFound, sermonNotFound)
	if !ok {
		return
	}
	if h.media == nil {
		ServiceUnavailable(c, "media storage is not configured")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.repo.GetSermon(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeSermonNotFound, sermonNotFound, "failed to load sermon")
		return
	}

	maxBytes := h.cfg.MediaMaxUploadMB
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadMB
	}
	maxBytes <<= 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			h.uploadTooLarge(c, maxBytes)
		case errors.Is(err, http.ErrMissingFile):
			MissingField(c, "file")
		default:
			InvalidPayload(c)
		}
		return
	}
	if fileHeader.Size > maxBytes {
		h.uploadTooLarge(c, maxBytes)
		return
	}

	obj := storage.NewObject(id, c.PostForm("kind"), fileHeader.Filename)
	if err := obj.Validate(); err != nil {
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeUnsupportedMedia,
			"kind must be audio or video with a matching file type",
			gin.H{"kind": obj.Kind, "extension": obj.Extension})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logrus.WithError(err).Error("failed to open uploaded file")
		InvalidPayload(c)
		return
	}
	defer file.Close()

	uploadCtx, cancelUpload := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancelUpload()

	key, err := h.media.Put(uploadCtx, file, fileHeader.Size, obj)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyObject) {
			MissingField(c, "file")
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"sermon_id": id,
			"kind":      obj.Kind,
			"size":      fileHeader.Size,
		}).Error("failed to store sermon media")
		ServiceUnavailable(c, "failed to store media")
		return
	}

	url := storage.PublicURL(h.mediaPublicBase, key)
	var updates entity.SermonMediaUpdates
	if obj.Kind == storage.KindAudio {
		updates.AudioURL = &url
	} else {
		updates.VideoURL = &url
	}

	ctx, cancel = requestContext(c)
	defer cancel()

	if err := h.repo.UpdateSermonMedia(ctx, id, updates); err != nil {
		logrus.WithError(err).WithField("sermon_id", id).Error("failed to attach sermon media")
		InternalError(c, "failed to attach media")
		return
	}

	logrus.WithFields(logrus.Fields{
		"sermon_id": id,
		"kind":      obj.Kind,
		"key":       key,
	}).Info("sermon media stored")

	updated, err := h.repo.GetSermon(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeSermonNotFound, sermonNotFound, "failed to load sermon")
		return
	}
	c.JSON(http.StatusOK, makeSermon(updated))
}

func (h *HTTPHandler) uploadTooLarge(c *gin.Context, maxBytes int64) {
	ErrorResponse(c, http.StatusRequestEntityTooLarge, ErrCodeUploadTooLarge,
		fmt.Sprintf("upload exceeds %d MB", maxBytes>>20))
}
