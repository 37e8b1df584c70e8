package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
	log             logging.Logger
}

func NewScheduleHandler(scheduleService service.ScheduleService, log logging.Logger) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService, log: log}
}

// GetSchedule godoc
// @Summary Get the gym's opening hours
// @Tags Schedule
// @Produce json
// @Success 200 {object} domain.GymSchedule
// @Failure 404 {object} gin.H "No schedule set"
// @Router /schedule [get]
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	schedule, err := h.scheduleService.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve the schedule.")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

// SaveSchedule godoc
// @Summary Create or replace the gym's opening hours
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param schedule body domain.GymSchedule true "Weekly hours"
// @Success 200 {object} domain.GymSchedule
// @Failure 400 {object} gin.H "Invalid hours"
// @Failure 409 {object} gin.H "Remote store disabled"
// @Router /schedule [put]
func (h *ScheduleHandler) SaveSchedule(c *gin.Context) {
	var schedule domain.GymSchedule
	if !bindJSON(c, &schedule) {
		return
	}
	saved, err := h.scheduleService.Save(c.Request.Context(), &schedule)
	if err != nil {
		respondError(c, h.log, err, "Failed to save the schedule.")
		return
	}
	c.JSON(http.StatusOK, saved)
}
