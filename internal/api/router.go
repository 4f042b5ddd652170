package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and every route onto a fresh gin engine.
func NewRouter(h *HTTPHandler) *gin.Engine {
	r := gin.New()

	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())
	if h.metrics != nil {
		r.Use(h.metrics.Middleware())
	}
	r.Use(CORSMiddleware(h.cfg.CORSAllowOrigins))
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	authGroup := r.Group("/auth")
	authGroup.POST("/login", h.Login)
	authGroup.POST("/register", h.AuthMiddleware(), h.Register)
	authGroup.GET("/me", h.AuthMiddleware(), h.Me)

	protected := r.Group("/api")
	protected.Use(h.AuthMiddleware())

	protected.GET("/announcements", h.ListAnnouncements)
	protected.POST("/announcements", h.CreateAnnouncement)
	protected.GET("/announcements/:id", h.GetAnnouncement)
	protected.PUT("/announcements/:id", h.UpdateAnnouncement)
	protected.DELETE("/announcements/:id", h.DeleteAnnouncement)

	protected.GET("/events", h.ListEvents)
	protected.POST("/events", h.CreateEvent)
	protected.GET("/events/:id", h.GetEvent)
	protected.PUT("/events/:id", h.UpdateEvent)
	protected.DELETE("/events/:id", h.DeleteEvent)

	protected.GET("/departments", h.ListDepartments)
	protected.POST("/departments", h.CreateDepartment)
	protected.GET("/departments/:id", h.GetDepartment)
	protected.PUT("/departments/:id", h.UpdateDepartment)
	protected.DELETE("/departments/:id", h.DeleteDepartment)

	protected.GET("/sermons", h.ListSermons)
	protected.POST("/sermons", h.CreateSermon)
	protected.GET("/sermons/:id", h.GetSermon)
	protected.PUT("/sermons/:id", h.UpdateSermon)
	protected.DELETE("/sermons/:id", h.DeleteSermon)
	protected.POST("/sermons/:id/media", h.UploadSermonMedia)

	protected.GET("/members", h.ListMembers)
	protected.GET("/members/:id", h.GetMember)
	protected.PUT("/members/:id", h.UpdateMember)
	protected.DELETE("/members/:id", h.DeleteMember)

	if dir, ok := h.servesLocalMedia(); ok {
		r.Static(h.mediaPublicBase, dir)
	}

	return r
}
