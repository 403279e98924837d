package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/benjamonnguyen/pomomo-timer"
	"github.com/benjamonnguyen/pomomo-timer/tasks"
	"github.com/benjamonnguyen/pomomo-timer/timer"
)

type stateResponse struct {
	Phase              pomomo.Phase    `json:"phase"`
	Label              string          `json:"label"`
	RemainingSeconds   int             `json:"remainingSeconds"`
	Display            string          `json:"display"`
	Progress           float64         `json:"progress"`
	Running            bool            `json:"running"`
	Paused             bool            `json:"paused"`
	CompletedPomodoros int             `json:"completedPomodoros"`
	TodayPomodoros     int             `json:"todayPomodoros"`
	Settings           pomomo.Settings `json:"settings"`
}

func (s *Server) state(c *gin.Context, snap timer.Snapshot) stateResponse {
	return stateResponse{
		Phase:              snap.Phase,
		Label:              snap.Phase.String(),
		RemainingSeconds:   int(snap.Remaining.Seconds()),
		Display:            timer.FormatRemaining(snap.Remaining),
		Progress:           snap.Progress(),
		Running:            snap.Running,
		Paused:             snap.Paused,
		CompletedPomodoros: snap.CompletedPomodoros,
		TodayPomodoros:     s.stats.Today(c.Request.Context(), s.now()),
		Settings:           snap.Settings,
	}
}

func (s *Server) handleState(c *gin.Context) {
	c.JSON(http.StatusOK, s.state(c, s.timer.Snapshot()))
}

func (s *Server) handleTimerAction(c *gin.Context) {
	var op func() timer.Snapshot
	switch c.Param("action") {
	case "start":
		op = s.timer.Start
	case "pause":
		op = s.timer.Pause
	case "resume":
		op = s.timer.Resume
	case "reset":
		op = s.timer.Reset
	case "skip":
		op = s.timer.Skip
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown action: " + c.Param("action")})
		return
	}
	c.JSON(http.StatusOK, s.state(c, op()))
}

func (s *Server) handleGetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, s.timer.Snapshot().Settings)
}

func (s *Server) handlePutSettings(c *gin.Context) {
	var settings pomomo.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, err := s.timer.UpdateSettings(c.Request.Context(), settings)
	if err != nil {
		if errors.Is(err, pomomo.ErrInvalidSettings) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.l.Error("failed to update settings", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, snap.Settings)
}

func (s *Server) handleStats(c *gin.Context) {
	now := s.now()
	stats := s.stats.Summary(c.Request.Context(), now)
	c.JSON(http.StatusOK, gin.H{
		"statistics":     stats,
		"todayPomodoros": s.stats.Today(c.Request.Context(), now),
	})
}

func (s *Server) handleListTasks(c *gin.Context) {
	list := s.tasks.List(c.Request.Context())
	if list == nil {
		list = []pomomo.ExistingTaskRecord{}
	}
	c.JSON(http.StatusOK, gin.H{
		"tasks": list,
		"count": len(list),
	})
}

type addTaskRequest struct {
	Text               string `json:"text"`
	EstimatedPomodoros int    `json:"estimatedPomodoros"`
}

func (s *Server) handleAddTask(c *gin.Context) {
	req := addTaskRequest{EstimatedPomodoros: 1}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	task, err := s.tasks.Add(c.Request.Context(), req.Text, req.EstimatedPomodoros)
	if err != nil {
		if errors.Is(err, tasks.ErrEmptyText) || errors.Is(err, tasks.ErrInvalidEstimate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.l.Error("failed to add task", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (s *Server) handleToggleTask(c *gin.Context) {
	task, found, err := s.tasks.Toggle(c.Request.Context(), pomomo.TaskID(c.Param("id")))
	if err != nil {
		s.l.Error("failed to toggle task", "id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (s *Server) handleRemoveTask(c *gin.Context) {
	if _, err := s.tasks.Remove(c.Request.Context(), pomomo.TaskID(c.Param("id"))); err != nil {
		s.l.Error("failed to remove task", "id", c.Param("id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGetPreferences(c *gin.Context) {
	c.JSON(http.StatusOK, s.prefs.Preferences(c.Request.Context()))
}

type preferencesRequest struct {
	DarkMode     *bool `json:"darkMode"`
	SoundEnabled *bool `json:"soundEnabled"`
}

func (s *Server) handlePutPreferences(c *gin.Context) {
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if req.DarkMode != nil {
		if err := s.prefs.SetDarkMode(ctx, *req.DarkMode); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	if req.SoundEnabled != nil {
		if err := s.prefs.SetSoundEnabled(ctx, *req.SoundEnabled); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, s.prefs.Preferences(ctx))
}
