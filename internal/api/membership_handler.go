package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

type MembershipHandler struct {
	membershipService service.MembershipService
	log               logging.Logger
}

func NewMembershipHandler(membershipService service.MembershipService, log logging.Logger) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService, log: log}
}

// ListCards godoc
// @Summary List membership cards
// @Description Statuses are effective: active cards past their expiry read as expired.
// @Tags Membership
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.MembershipCard
// @Router /membership-cards [get]
func (h *MembershipHandler) ListCards(c *gin.Context) {
	cards, err := h.membershipService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve membership cards.")
		return
	}
	c.JSON(http.StatusOK, cards)
}

// ListUserCards godoc
// @Summary Membership cards of one user
// @Tags Membership
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} domain.MembershipCard
// @Router /users/{userId}/membership-cards [get]
func (h *MembershipHandler) ListUserCards(c *gin.Context) {
	userID := c.Param("userId")
	if !selfOrStaff(c, userID) {
		return
	}
	cards, err := h.membershipService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve membership cards.")
		return
	}
	c.JSON(http.StatusOK, cards)
}

// CreateCard godoc
// @Summary Create a membership card
// @Tags Membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param card body domain.MembershipCard true "Card"
// @Success 201 {object} domain.MembershipCard
// @Router /membership-cards [post]
func (h *MembershipHandler) CreateCard(c *gin.Context) {
	var card domain.MembershipCard
	if !bindJSON(c, &card) {
		return
	}
	card.ID = ""
	saved, err := h.membershipService.Create(c.Request.Context(), &card)
	if err != nil {
		respondError(c, h.log, err, "Failed to create membership card.")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdateCard godoc
// @Summary Replace a membership card
// @Tags Membership
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param cardId path string true "Card ID"
// @Param card body domain.MembershipCard true "Card"
// @Success 200 {object} domain.MembershipCard
// @Router /membership-cards/{cardId} [put]
func (h *MembershipHandler) UpdateCard(c *gin.Context) {
	var card domain.MembershipCard
	if !bindJSON(c, &card) {
		return
	}
	card.ID = c.Param("cardId")
	saved, err := h.membershipService.Update(c.Request.Context(), &card)
	if err != nil {
		respondError(c, h.log, err, "Failed to update membership card.")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteCard godoc
// @Summary Delete a membership card
// @Tags Membership
// @Security BearerAuth
// @Param cardId path string true "Card ID"
// @Success 204
// @Router /membership-cards/{cardId} [delete]
func (h *MembershipHandler) DeleteCard(c *gin.Context) {
	if err := h.membershipService.Delete(c.Request.Context(), c.Param("cardId")); err != nil {
		respondError(c, h.log, err, "Failed to delete membership card.")
		return
	}
	c.Status(http.StatusNoContent)
}
