package api

import (
	"errors"
	"net/http"
	"strings"

	"church/internal/auth"
	"church/internal/entity"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	currentUserIDContextKey = "current-user-id"
)

// AuthMiddleware JWT 认证中间件
//
// Only the token is checked here. Account status and role are decided per
// handler by authorize, against a fresh read of the user.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "missing authorization header",
			})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "invalid authorization header format",
			})
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeUnauthorized,
				Message: "missing bearer token",
			})
			return
		}

		claims, err := h.authManager.ParseToken(tokenString)
		if err != nil {
			logrus.WithError(err).Debug("rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, APIError{
				Code:    ErrCodeSessionExpired,
				Message: "token is invalid or expired",
			})
			return
		}

		c.Set(currentUserIDContextKey, claims.UserID)
		c.Next()
	}
}

// CurrentUserID 从上下文获取令牌中的用户 ID
func CurrentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(currentUserIDContextKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok && id != 0
}

// authorize reloads the caller and checks it against allowed. On denial the
// response is already written and ok is false.
func (h *HTTPHandler) authorize(c *gin.Context, allowed auth.RoleSet) (*entity.DbUser, bool) {
	userID, ok := CurrentUserID(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return nil, false
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.repo.GetUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logrus.WithError(err).WithField("user_id", userID).Error("failed to load user")
			InternalError(c, "failed to verify user")
			return nil, false
		}
		user = nil
	}

	switch err := auth.Authorize(user, allowed); {
	case err == nil:
		return user, true
	case errors.Is(err, auth.ErrAccountInactive):
		h.metrics.ObserveDenial("inactive")
		ErrorResponse(c, http.StatusForbidden, ErrCodeUserDisabled, "account is disabled")
	default:
		h.metrics.ObserveDenial("role")
		Forbidden(c, "access denied")
	}
	return nil, false
}
