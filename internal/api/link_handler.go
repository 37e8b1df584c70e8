package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

type LinkHandler struct {
	linkService service.LinkService
	log         logging.Logger
}

func NewLinkHandler(linkService service.LinkService, log logging.Logger) *LinkHandler {
	return &LinkHandler{linkService: linkService, log: log}
}

// ListLinks godoc
// @Summary List curated links
// @Tags Links
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Only active links"
// @Success 200 {array} domain.Link
// @Router /links [get]
func (h *LinkHandler) ListLinks(c *gin.Context) {
	links, err := h.linkService.List(c.Request.Context(), c.Query("active") == "true")
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve links.")
		return
	}
	c.JSON(http.StatusOK, links)
}

// CreateLink godoc
// @Summary Create a link
// @Tags Links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param link body domain.Link true "Link"
// @Success 201 {object} domain.Link
// @Router /links [post]
func (h *LinkHandler) CreateLink(c *gin.Context) {
	var link domain.Link
	if !bindJSON(c, &link) {
		return
	}
	link.ID = ""
	saved, err := h.linkService.Create(c.Request.Context(), &link)
	if err != nil {
		respondError(c, h.log, err, "Failed to create link.")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdateLink godoc
// @Summary Replace a link
// @Tags Links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param linkId path string true "Link ID"
// @Param link body domain.Link true "Link"
// @Success 200 {object} domain.Link
// @Router /links/{linkId} [put]
func (h *LinkHandler) UpdateLink(c *gin.Context) {
	var link domain.Link
	if !bindJSON(c, &link) {
		return
	}
	link.ID = c.Param("linkId")
	saved, err := h.linkService.Update(c.Request.Context(), &link)
	if err != nil {
		respondError(c, h.log, err, "Failed to update link.")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteLink godoc
// @Summary Delete a link
// @Tags Links
// @Security BearerAuth
// @Param linkId path string true "Link ID"
// @Success 204
// @Router /links/{linkId} [delete]
func (h *LinkHandler) DeleteLink(c *gin.Context) {
	if err := h.linkService.Delete(c.Request.Context(), c.Param("linkId")); err != nil {
		respondError(c, h.log, err, "Failed to delete link.")
		return
	}
	c.Status(http.StatusNoContent)
}
