package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

type RankingHandler struct {
	rankingService service.RankingService
	log            logging.Logger
}

func NewRankingHandler(rankingService service.RankingService, log logging.Logger) *RankingHandler {
	return &RankingHandler{rankingService: rankingService, log: log}
}

type OneRepMaxResponse struct {
	Weight    float64 `json:"weight"`
	Reps      int     `json:"reps"`
	OneRepMax float64 `json:"oneRepMax"`
}

// ListRankings godoc
// @Summary List rankings
// @Description Empty while the remote backend is disabled.
// @Tags Rankings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Ranking
// @Router /rankings [get]
func (h *RankingHandler) ListRankings(c *gin.Context) {
	rankings, err := h.rankingService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve rankings.")
		return
	}
	c.JSON(http.StatusOK, rankings)
}

// GetRanking godoc
// @Summary Get a ranking
// @Tags Rankings
// @Produce json
// @Security BearerAuth
// @Param rankingId path string true "Ranking ID"
// @Success 200 {object} domain.Ranking
// @Failure 409 {object} gin.H "Remote backend disabled"
// @Router /rankings/{rankingId} [get]
func (h *RankingHandler) GetRanking(c *gin.Context) {
	ranking, err := h.rankingService.Get(c.Request.Context(), c.Param("rankingId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve ranking.")
		return
	}
	c.JSON(http.StatusOK, ranking)
}

// CreateRanking godoc
// @Summary Create a ranking
// @Tags Rankings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ranking body domain.Ranking true "Ranking"
// @Success 201 {object} domain.Ranking
// @Router /rankings [post]
func (h *RankingHandler) CreateRanking(c *gin.Context) {
	var ranking domain.Ranking
	if !bindJSON(c, &ranking) {
		return
	}
	ranking.ID = ""
	saved, err := h.rankingService.Create(c.Request.Context(), &ranking)
	if err != nil {
		respondError(c, h.log, err, "Failed to create ranking.")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdateRanking godoc
// @Summary Replace a ranking
// @Tags Rankings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rankingId path string true "Ranking ID"
// @Param ranking body domain.Ranking true "Ranking"
// @Success 200 {object} domain.Ranking
// @Router /rankings/{rankingId} [put]
func (h *RankingHandler) UpdateRanking(c *gin.Context) {
	var ranking domain.Ranking
	if !bindJSON(c, &ranking) {
		return
	}
	ranking.ID = c.Param("rankingId")
	saved, err := h.rankingService.Update(c.Request.Context(), &ranking)
	if err != nil {
		respondError(c, h.log, err, "Failed to update ranking.")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteRanking godoc
// @Summary Delete a ranking
// @Tags Rankings
// @Security BearerAuth
// @Param rankingId path string true "Ranking ID"
// @Success 204
// @Router /rankings/{rankingId} [delete]
func (h *RankingHandler) DeleteRanking(c *gin.Context) {
	if err := h.rankingService.Delete(c.Request.Context(), c.Param("rankingId")); err != nil {
		respondError(c, h.log, err, "Failed to delete ranking.")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddEntry godoc
// @Summary Record a result in a ranking
// @Description Replaces the user's earlier entry. Athletes can only record their own results.
// @Tags Rankings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param rankingId path string true "Ranking ID"
// @Param entry body domain.RankingEntry true "Entry"
// @Success 200 {object} domain.Ranking
// @Router /rankings/{rankingId}/entries [post]
func (h *RankingHandler) AddEntry(c *gin.Context) {
	var entry domain.RankingEntry
	if !bindJSON(c, &entry) {
		return
	}
	if role, _ := getUserRoleFromContext(c); role == domain.RoleAthlete {
		entry.UserID, _ = getUserIDFromContext(c)
	}
	ranking, err := h.rankingService.AddEntry(c.Request.Context(), c.Param("rankingId"), entry)
	if err != nil {
		respondError(c, h.log, err, "Failed to record entry.")
		return
	}
	c.JSON(http.StatusOK, ranking)
}

// RemoveEntry godoc
// @Summary Remove a user's result from a ranking
// @Tags Rankings
// @Produce json
// @Security BearerAuth
// @Param rankingId path string true "Ranking ID"
// @Param userId path string true "User ID"
// @Success 200 {object} domain.Ranking
// @Router /rankings/{rankingId}/entries/{userId} [delete]
func (h *RankingHandler) RemoveEntry(c *gin.Context) {
	ranking, err := h.rankingService.RemoveEntry(c.Request.Context(), c.Param("rankingId"), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to remove entry.")
		return
	}
	c.JSON(http.StatusOK, ranking)
}

// OneRepMax godoc
// @Summary Estimate a one-rep max (Epley)
// @Tags Rankings
// @Produce json
// @Param weight query number true "Lifted weight"
// @Param reps query int true "Repetitions"
// @Success 200 {object} OneRepMaxResponse
// @Failure 400 {object} gin.H "Invalid weight or reps"
// @Router /one-rep-max [get]
func (h *RankingHandler) OneRepMax(c *gin.Context) {
	weight, err := strconv.ParseFloat(c.Query("weight"), 64)
	if err != nil || weight <= 0 {
		abortWithError(c, http.StatusBadRequest, "weight must be a positive number")
		return
	}
	reps, err := strconv.Atoi(c.Query("reps"))
	if err != nil || reps <= 0 {
		abortWithError(c, http.StatusBadRequest, "reps must be a positive integer")
		return
	}
	c.JSON(http.StatusOK, OneRepMaxResponse{
		Weight:    weight,
		Reps:      reps,
		OneRepMax: domain.CalculateOneRepMax(weight, reps),
	})
}
