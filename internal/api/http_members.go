package api

import (
	"church/internal/auth"
	"church/internal/entity"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	maxMemberPageSize = 100

	// keeps (page-1)*page_size well inside int range
	maxMemberPage = 1 << 20
)

func (h *HTTPHandler) ListMembers(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AdminOnly); !ok {
		return
	}

	var query entity.MemberQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.PageSize <= 0 {
		query.PageSize = 20
	}
	if query.PageSize > maxMemberPageSize {
		query.PageSize = maxMemberPageSize
	}
	if query.Page > maxMemberPage {
		query.Page = maxMemberPage
	}
	query.Role = strings.ToLower(strings.TrimSpace(query.Role))
	if query.Role != "" && !entity.ValidRole(query.Role) {
		BadRequest(c, ErrCodeInvalidRequest, "unknown role filter")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	users, meta, err := h.repo.ListMembers(ctx, &query)
	if err != nil {
		logrus.WithError(err).Error("failed to list members")
		InternalError(c, "failed to load members")
		return
	}

	response := entity.MemberListResponse{
		Members: make([]entity.UserSummary, 0, len(users)),
		Meta:    meta,
	}
	for idx := range users {
		response.Members = append(response.Members, makeUserSummary(&users[idx]))
	}
	c.JSON(http.StatusOK, response)
}

func (h *HTTPHandler) GetMember(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AdminOnly); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeUserNotFound, "member not found")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		h.respondLoadError(c, err, ErrCodeUserNotFound, "member not found", "failed to load member")
		return
	}
	c.JSON(http.StatusOK, makeUserSummary(user))
}

// UpdateMember replaces name, role and department of a member.
func (h *HTTPHandler) UpdateMember(c *gin.Context) {
	if _, ok := h.authorize(c, auth.AdminOnly); !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeUserNotFound, "member not found")
	if !ok {
		return
	}

	var req entity.MemberUpdateRequest
	if !bindJSON(c, &req) {
		return
	}
	firstName, ok := requireText(c, "first_name", req.FirstName)
	if !ok {
		return
	}
	lastName, ok := requireText(c, "last_name", req.LastName)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.repo.GetUserByID(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeUserNotFound, "member not found", "failed to load member")
		return
	}
	if !h.checkDepartmentRef(c, req.DepartmentID) {
		return
	}

	role := req.Role
	updates := entity.UserUpdates{
		FirstName:       &firstName,
		LastName:        &lastName,
		Role:            &role,
		DepartmentID:    req.DepartmentID,
		ClearDepartment: req.DepartmentID == nil,
	}
	if err := h.repo.UpdateUser(ctx, id, updates); err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to update member")
		InternalError(c, "failed to update member")
		return
	}

	updated, err := h.repo.GetUserByID(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("failed to reload member")
		InternalError(c, "failed to load updated member")
		return
	}
	c.JSON(http.StatusOK, makeUserSummary(updated))
}

// DeleteMember deactivates a member; the row and its email stay reserved.
func (h *HTTPHandler) DeleteMember(c *gin.Context) {
	caller, ok := h.authorize(c, auth.AdminOnly)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, ErrCodeUserNotFound, "member not found")
	if !ok {
		return
	}
	if caller.ID == id {
		BadRequest(c, ErrCodeCannotDeleteSelf, "cannot delete current user")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.repo.DeactivateUser(ctx, id); err != nil {
		h.respondLoadError(c, err, ErrCodeUserNotFound, "member not found", "failed to delete member")
		return
	}

	logrus.WithFields(logrus.Fields{"user_id": id, "deleted_by": caller.ID}).Info("member deactivated")
	c.JSON(http.StatusOK, entity.MessageResponse{Message: "Member deleted"})
}

// respondLoadError maps a missing row to 404 and anything else to a logged 500.
func (h *HTTPHandler) respondLoadError(c *gin.Context, err error, notFoundCode, notFoundMessage, failure string) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, notFoundCode, notFoundMessage)
		return
	}
	logrus.WithError(err).WithField("path", c.FullPath()).Error(failure)
	InternalError(c, failure)
}
