package api

import (
	"net/http"

	"BuildPulse/internal/scheduler"
	"BuildPulse/internal/settings"

	"github.com/gin-gonic/gin"
)

// Server exposes the dashboard's consumed capabilities over HTTP: read the
// snapshot, trigger a poll, and round-trip the settings editor.
type Server struct {
	coord *scheduler.Coordinator
}

func NewServer(coord *scheduler.Coordinator) *Server {
	return &Server{coord: coord}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.GET("/snapshot", s.getSnapshot)
		api.POST("/refresh", s.refresh)
		api.GET("/settings", s.getSettings)
		api.PUT("/settings", s.putSettings)
		api.POST("/settings/reset", s.resetSettings)
		api.GET("/sectors", s.getSectors)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) getSnapshot(c *gin.Context) {
	snap := s.coord.Snapshot()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"code":    "not_ready",
			"message": "first poll has not completed yet",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": "ok", "data": snap})
}

func (s *Server) refresh(c *gin.Context) {
	snap := s.coord.RunNow()
	c.JSON(http.StatusOK, gin.H{"code": "ok", "data": snap})
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": "ok", "data": s.coord.Settings()})
}

// putSettings replaces the settings wholesale. An invalid body is rejected
// with a diagnostic and the previously saved settings stay active.
func (s *Server) putSettings(c *gin.Context) {
	var cfg settings.Settings
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "bad_request",
			"message": err.Error(),
		})
		return
	}
	if err := s.coord.Apply(cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":    "invalid_settings",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": "ok", "data": s.coord.Settings()})
}

// resetSettings returns the built-in defaults without persisting them; the
// editor round-trips them back through PUT if the user confirms.
func (s *Server) resetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": "ok", "data": settings.Default()})
}

func (s *Server) getSectors(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": "ok", "data": s.coord.Settings().Sectors})
}
