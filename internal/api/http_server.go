package api

import (
	"church/internal/auth"
	"church/internal/config"
	"church/internal/metrics"
	"church/internal/model"
	"church/internal/storage"
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const requestTimeout = 5 * time.Second

// HTTPHandler HTTP 请求处理器
type HTTPHandler struct {
	cfg             config.Config
	repo            model.Repository
	media           storage.MediaStore
	mediaPublicBase string
	authManager     *auth.Manager
	metrics         *metrics.HTTPMetrics
}

// NewHTTPHandler 创建 HTTP 处理器实例
func NewHTTPHandler(cfg config.Config, repo model.Repository, media storage.MediaStore, m *metrics.HTTPMetrics) (*HTTPHandler, error) {
	expiry := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authManager, err := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, expiry)
	if err != nil {
		return nil, err
	}

	registerBindingRules()

	return &HTTPHandler{
		cfg:             cfg,
		repo:            repo,
		media:           media,
		mediaPublicBase: normalisePublicBase(cfg.StoragePublicBaseURL),
		authManager:     authManager,
		metrics:         m,
	}, nil
}

// normalisePublicBase 规范化公共 URL 基础路径
func normalisePublicBase(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		trimmed = "/files"
	}
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return strings.TrimRight(trimmed, "/")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return strings.TrimRight(trimmed, "/")
}

// servesLocalMedia reports whether recordings live on disk below a path the
// router itself must serve.
func (h *HTTPHandler) servesLocalMedia() (string, bool) {
	if h.media == nil {
		return "", false
	}
	local, ok := h.media.(storage.LocalDirProvider)
	if !ok || strings.HasPrefix(h.mediaPublicBase, "http") {
		return "", false
	}
	return local.LocalDir(), true
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// parseIDParam reads a positive numeric path parameter. Malformed ids are
// reported as not found, matching how routes treat absent records.
func parseIDParam(c *gin.Context, notFoundCode, notFoundMessage string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		NotFound(c, notFoundCode, notFoundMessage)
		return 0, false
	}
	return uint(id), true
}
