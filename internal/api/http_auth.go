package api

import (
	"church/internal/auth"
	"church/internal/entity"
	"church/internal/metrics"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Login exchanges credentials for a bearer token. Unknown email, disabled
// account and wrong password all produce the same 401.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		MissingField(c, "email")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.repo.GetActiveUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("failed to look up user for login")
		InternalError(c, "failed to process login")
		return
	}

	var valid bool
	if user == nil {
		valid = auth.SimulatePasswordCheck(req.Password)
	} else {
		valid = auth.VerifyPassword(user.PasswordHash, req.Password)
	}
	if !valid {
		h.metrics.ObserveLogin(metrics.LoginFailed)
		logrus.Debug("login rejected")
		ErrorResponse(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid credentials")
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	h.metrics.ObserveLogin(metrics.LoginSucceeded)
	c.JSON(http.StatusOK, entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      makeUserSummary(user),
	})
}

// Register lets admins and leaders create accounts. Only an admin may hand
// out the admin role.
func (h *HTTPHandler) Register(c *gin.Context) {
	caller, ok := h.authorize(c, auth.Editors)
	if !ok {
		return
	}

	var req entity.AuthRegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	email, ok := requireText(c, "email", req.Email)
	if !ok {
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

	role := req.Role
	if role == "" {
		role = entity.UserRoleMember
	}
	if role == entity.UserRoleAdmin && caller.Role != entity.UserRoleAdmin {
		Forbidden(c, "only admins can create admin accounts")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if !h.checkDepartmentRef(c, req.DepartmentID) {
		return
	}

	if _, err := h.repo.GetUserByEmail(ctx, email); err == nil {
		BadRequest(c, ErrCodeEmailExists, "email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithError(err).Error("failed to check email availability")
		InternalError(c, "failed to register user")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		MissingField(c, "password")
		return
	}

	user := &entity.DbUser{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Role:         role,
		DepartmentID: req.DepartmentID,
		IsActive:     true,
	}
	if err := h.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			BadRequest(c, ErrCodeEmailExists, "email already exists")
			return
		}
		logrus.WithError(err).Error("failed to create user")
		InternalError(c, "failed to register user")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    user.ID,
		"role":       user.Role,
		"created_by": caller.ID,
	}).Info("user registered")

	created, err := h.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		created = user
	}
	c.JSON(http.StatusCreated, makeUserSummary(created))
}

// Me returns the caller's own profile.
func (h *HTTPHandler) Me(c *gin.Context) {
	user, ok := h.authorize(c, auth.AnyRole)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, makeUserSummary(user))
}

// checkDepartmentRef verifies an optional department id points at an
// existing department.
func (h *HTTPHandler) checkDepartmentRef(c *gin.Context, departmentID *uint) bool {
	if departmentID == nil {
		return true
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if _, err := h.repo.GetDepartment(ctx, *departmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			InvalidReference(c, "department_id")
			return false
		}
		logrus.WithError(err).Error("failed to load referenced department")
		InternalError(c, "failed to verify department")
		return false
	}
	return true
}
