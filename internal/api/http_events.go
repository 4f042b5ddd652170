package api

import (
	"church/internal/auth"
	"church/internal/entity"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const eventNotFound = "event not found"

func (h *HTTPHandler) ListEvents(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AnyRole); !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	events, err := h.repo.ListEvents(ctx)
	if err != nil {
		logrus.WithError(err).Error("failed to list events")
		InternalError(c, "failed to load events")
		return
	}

	response := entity.EventListResponse{Events: make([]entity.Event, 0, len(events))}
	for idx := range events {
		response.Events = append(response.Events, makeEvent(&events[idx]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *HTTPHandler) GetEvent(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AnyRole); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeEventNotFound, eventNotFound)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	event, err := h.repo.GetEvent(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeEventNotFound, eventNotFound, "failed to load event")
		return
	}
	c.JSON(http.StatusOK, makeEvent(event))
}

func (h *HTTPHandler) CreateEvent(c *gin.Context) {
	organizer, ok := h.authorize(c, auth.Editors)
	if !ok {
		return
	}

	updates, ok := bindEvent(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	event := &entity.DbEvent{
		Title:       updates.Title,
		Description: updates.Description,
		EventDate:   updates.EventDate,
		Location:    updates.Location,
		OrganizerID: organizer.ID,
	}
	if err := h.repo.CreateEvent(ctx, event); err != nil {
		logrus.WithError(err).Error("failed to create event")
		InternalError(c, "failed to create event")
		return
	}
	event.Organizer = organizer
	c.JSON(http.StatusCreated, makeEvent(event))
}

func (h *HTTPHandler) UpdateEvent(c *gin.Context) {
	if _, ok := h.authorize(c, auth.Editors); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeEventNotFound, eventNotFound)
	if !ok {
		return
	}

	updates, ok := bindEvent(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.repo.GetEvent(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeEventNotFound, eventNotFound, "failed to load event")
		return
	}
	if err := h.repo.UpdateEvent(ctx, id, updates); err != nil {
		logrus.WithError(err).WithField("event_id", id).Error("failed to update event")
		InternalError(c, "failed to update event")
		return
	}

	updated, err := h.repo.GetEvent(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeEventNotFound, eventNotFound, "failed to load event")
		return
	}
	c.JSON(http.StatusOK, makeEvent(updated))
}

// DeleteEvent removes the event for good; a second delete is a 404.
func (h *HTTPHandler) DeleteEvent(c *gin.Context) {
	if _, ok := h.authorize(c, auth.Editors); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeEventNotFound, eventNotFound)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.DeleteEvent(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeEventNotFound, eventNotFound, "failed to delete event")
		return
	}
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "Event deleted"})
}

func bindEvent(c *gin.Context) (entity.EventUpdates, bool) {
	var req entity.EventRequest
	if !bindJSON(c, &req) {
		return entity.EventUpdates{}, false
	}

	var updates entity.EventUpdates
	var ok bool
	if updates.Title, ok = requireText(c, "title", req.Title); !ok {
		return updates, false
	}
	if updates.Description, ok = requireText(c, "description", req.Description); !ok {
		return updates, false
	}
	if updates.Location, ok = requireText(c, "location", req.Location); !ok {
		return updates, false
	}

	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeInvalidRequest,
			"event_date must be an ISO 8601 date-time",
			gin.H{"field": "event_date"})
		return updates, false
	}
	updates.EventDate = eventDate
	return updates, true
}
