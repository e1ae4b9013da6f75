package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matchcomb/matchcomb/app/calendar"
	"github.com/matchcomb/matchcomb/app/match"
)

func NewHandler(engine ScheduleEngine, syncer CalendarSyncer, primarySource match.Source) *Handler {
	return &Handler{
		engine:        engine,
		syncer:        syncer,
		primarySource: primarySource,
	}
}

// scheduleRequest carries the optional filter selections. Pointers
// distinguish an absent field from a present non-array value, which
// gin rejects during binding.
type scheduleRequest struct {
	SelectedTeams   *[]string `json:"selectedTeams"`
	SelectedLeagues *[]string `json:"selectedLeagues"`
	Source          string    `json:"source"`
}

func (h *Handler) GetTeams(c *gin.Context) {
	source, ok := h.resolveSource(c, c.Query("source"))
	if !ok {
		return
	}

	teams, err := h.engine.Teams(c.Request.Context(), source)
	if err != nil {
		slog.Error("Failed to load teams", "source", source, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load teams"})
		return
	}

	c.JSON(http.StatusOK, teams)
}

func (h *Handler) GetLeagues(c *gin.Context) {
	source, ok := h.resolveSource(c, c.Query("source"))
	if !ok {
		return
	}

	leagues, err := h.engine.Leagues(c.Request.Context(), source)
	if err != nil {
		slog.Error("Failed to load leagues", "source", source, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leagues"})
		return
	}

	c.JSON(http.StatusOK, leagues)
}

func (h *Handler) PostSchedule(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Debug("Rejected schedule request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	source, ok := h.resolveSource(c, req.Source)
	if !ok {
		return
	}

	var selectedTeams, selectedLeagues []string
	if req.SelectedTeams != nil {
		selectedTeams = *req.SelectedTeams
	}
	if req.SelectedLeagues != nil {
		selectedLeagues = *req.SelectedLeagues
	}

	matches, err := h.engine.Matches(c.Request.Context(), source, selectedTeams, selectedLeagues)
	if err != nil {
		slog.Error("Failed to load schedule", "source", source, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load schedule"})
		return
	}

	c.JSON(http.StatusOK, matches)
}

func (h *Handler) PostCalendarAdd(c *gin.Context) {
	var m match.Match
	if err := c.ShouldBindJSON(&m); err != nil {
		slog.Debug("Rejected calendar request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	outcome, err := h.syncer.Sync(c.Request.Context(), m)
	if err != nil {
		if errors.Is(err, calendar.ErrAuthorizationPending) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "Calendar authorization pending, check server logs for the consent URL",
			})
			return
		}

		slog.Error("Failed to sync calendar event", "match_id", m.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to add event to calendar",
		})
		return
	}

	message := "Event added to calendar"
	if outcome == calendar.OutcomeExists {
		message = "Event already exists in calendar"
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// resolveSource maps the optional source parameter to a known source,
// falling back to the configured primary. Writes the error response
// itself so handlers can bail out on !ok.
func (h *Handler) resolveSource(c *gin.Context, name string) (match.Source, bool) {
	if name == "" {
		return h.primarySource, true
	}

	source := match.Source(name)
	if !h.engine.Knows(source) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown source"})
		return "", false
	}
	return source, true
}
