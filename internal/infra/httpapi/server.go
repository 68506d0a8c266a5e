package httpapi

import (
	"context"
	"net/http"

	"gitremind/internal/app"
	"gitremind/internal/domain/reminder"
	"gitremind/internal/domain/settings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// APIResponse is the envelope for every command response.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Server exposes the engine's command interface to the presentation
// collaborator over HTTP. The engine already converts internal failures to
// sentinel values, so handlers only translate those into the envelope.
type Server struct {
	engine app.EngineService
	logger *logrus.Logger
	srv    *http.Server
}

func NewServer(engine app.EngineService, addr string, logger *logrus.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		logger: logger,
		srv:    &http.Server{Addr: addr, Handler: router},
	}

	api := router.Group("/api")
	{
		api.GET("/reminders", s.listReminders)
		api.POST("/reminders", s.saveReminder)
		api.DELETE("/reminders/:id", s.deleteReminder)
		api.GET("/settings", s.getSettings)
		api.PATCH("/settings", s.saveSettings)
		api.POST("/reset", s.resetApp)
		api.POST("/notifications/progressive", s.scheduleProgressive)
	}

	return s
}

// Start blocks serving the command API until Shutdown.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.srv.Addr).Info("Command API listening")
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) listReminders(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: s.engine.Reminders()})
}

func (s *Server) saveReminder(c *gin.Context) {
	var r reminder.Reminder
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "invalid reminder payload"})
		return
	}
	saved := s.engine.SaveReminder(r)
	if saved == nil {
		c.JSON(http.StatusOK, APIResponse{Success: false, Error: "reminder could not be saved"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: saved})
}

func (s *Server) deleteReminder(c *gin.Context) {
	ok := s.engine.DeleteReminder(c.Param("id"))
	c.JSON(http.StatusOK, APIResponse{Success: ok})
}

func (s *Server) getSettings(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: s.engine.Settings()})
}

func (s *Server) saveSettings(c *gin.Context) {
	var p settings.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "invalid settings payload"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: s.engine.SaveSettings(p)})
}

func (s *Server) resetApp(c *gin.Context) {
	c.JSON(http.StatusOK, APIResponse{Success: s.engine.ResetApp()})
}

func (s *Server) scheduleProgressive(c *gin.Context) {
	var r reminder.Reminder
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{Success: false, Error: "invalid reminder payload"})
		return
	}
	c.JSON(http.StatusOK, APIResponse{Success: s.engine.ScheduleProgressiveNotification(r)})
}
