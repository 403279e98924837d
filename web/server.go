// Package web serves the timer over a JSON API.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/preferences"
	"github.com/benjamonnguyen/pomomo-timer/timer"
)

type Timer interface {
	Snapshot() timer.Snapshot
	Start() timer.Snapshot
	Pause() timer.Snapshot
	Resume() timer.Snapshot
	Reset() timer.Snapshot
	Skip() timer.Snapshot
	UpdateSettings(context.Context, pomomo.Settings) (timer.Snapshot, error)
}

type Stats interface {
	Summary(ctx context.Context, now time.Time) pomomo.Statistics
	Today(ctx context.Context, now time.Time) int
}

type Tasks interface {
	List(context.Context) []pomomo.ExistingTaskRecord
	Add(ctx context.Context, text string, estimatedPomodoros int) (pomomo.ExistingTaskRecord, error)
	Toggle(context.Context, pomomo.TaskID) (pomomo.ExistingTaskRecord, bool, error)
	Remove(context.Context, pomomo.TaskID) (bool, error)
}

type Preferences interface {
	Preferences(context.Context) preferences.Preferences
	SetDarkMode(context.Context, bool) error
	SetSoundEnabled(context.Context, bool) error
}

type Server struct {
	timer Timer
	stats Stats
	tasks Tasks
	prefs Preferences
	l     *log.Logger
	now   func() time.Time

	router *gin.Engine
}

func NewServer(t Timer, stats Stats, tasks Tasks, prefs Preferences, logger *log.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	s := &Server{
		timer:  t,
		stats:  stats,
		tasks:  tasks,
		prefs:  prefs,
		l:      logger,
		now:    time.Now,
		router: router,
	}

	api := router.Group("/api")
	{
		api.GET("/state", s.handleState)
		api.POST("/timer/:action", s.handleTimerAction)
		api.GET("/settings", s.handleGetSettings)
		api.PUT("/settings", s.handlePutSettings)
		api.GET("/stats", s.handleStats)
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleAddTask)
		api.POST("/tasks/:id/toggle", s.handleToggleTask)
		api.DELETE("/tasks/:id", s.handleRemoveTask)
		api.GET("/preferences", s.handleGetPreferences)
		api.PUT("/preferences", s.handlePutPreferences)
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func requestLogger(l *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Debug("handled request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
