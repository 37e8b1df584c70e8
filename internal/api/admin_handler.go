package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

// BackendSwitch reads and flips the remote backend flag.
type BackendSwitch interface {
	RemoteEnabled(ctx context.Context) bool
	Set(ctx context.Context, enabled bool) error
}

// StorageChecker reports on the local store.
type StorageChecker interface {
	Check(ctx context.Context) localstore.CheckResult
}

type AdminHandler struct {
	backend BackendSwitch
	remote  service.RemoteService // nil when no remote store is configured
	storage StorageChecker
	log     logging.Logger
}

func NewAdminHandler(backend BackendSwitch, remote service.RemoteService, storage StorageChecker, log logging.Logger) *AdminHandler {
	return &AdminHandler{backend: backend, remote: remote, storage: storage, log: log}
}

type BackendStatus struct {
	RemoteEnabled    bool `json:"remoteEnabled"`
	RemoteConfigured bool `json:"remoteConfigured"`
}

type SetBackendRequest struct {
	RemoteEnabled *bool `json:"remoteEnabled" binding:"required"`
}

type MigrateRequest struct {
	PreserveIDs bool `json:"preserveIds"`
}

type MigrateResponse struct {
	Report *service.MigrationReport `json:"report"`
	Error  string                   `json:"error,omitempty"`
}

func (h *AdminHandler) status(ctx context.Context) BackendStatus {
	return BackendStatus{RemoteEnabled: h.backend.RemoteEnabled(ctx), RemoteConfigured: h.remote != nil}
}

// GetBackend godoc
// @Summary Which backend serves reads and writes
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BackendStatus
// @Router /admin/backend [get]
func (h *AdminHandler) GetBackend(c *gin.Context) {
	c.JSON(http.StatusOK, h.status(c.Request.Context()))
}

// SetBackend godoc
// @Summary Switch between the local and the remote backend
// @Description Data is never copied by switching; use /admin/migrate for that.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SetBackendRequest true "Flag"
// @Success 200 {object} BackendStatus
// @Failure 503 {object} gin.H "Remote backend not configured"
// @Router /admin/backend [put]
func (h *AdminHandler) SetBackend(c *gin.Context) {
	var req SetBackendRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.backend.Set(c.Request.Context(), *req.RemoteEnabled); err != nil {
		respondError(c, h.log, err, "Failed to switch backend.")
		return
	}
	h.log.Info(c.Request.Context(), "backend switched", "remote", *req.RemoteEnabled)
	c.JSON(http.StatusOK, h.status(c.Request.Context()))
}

// Migrate godoc
// @Summary Copy local folders, plans and users to the remote store
// @Description Stops at the first failing record; the partial report is returned with the error.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MigrateRequest false "Options"
// @Success 200 {object} MigrateResponse
// @Failure 502 {object} MigrateResponse "Migration stopped on a remote error"
// @Failure 503 {object} gin.H "Remote backend not configured"
// @Router /admin/migrate [post]
func (h *AdminHandler) Migrate(c *gin.Context) {
	var req MigrateRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if h.remote == nil {
		respondError(c, h.log, service.ErrRemoteUnavailable, "")
		return
	}
	report, err := h.remote.MigrateFromLocalStore(c.Request.Context(), service.MigrationOptions{PreserveIDs: req.PreserveIDs})
	if err != nil {
		h.log.Error(c.Request.Context(), "migration failed", "err", err)
		c.JSON(http.StatusBadGateway, MigrateResponse{Report: report, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MigrateResponse{Report: report})
}

// Healthz godoc
// @Summary Local storage health
// @Tags Health
// @Produce json
// @Success 200 {object} localstore.CheckResult
// @Failure 503 {object} localstore.CheckResult
// @Router /healthz [get]
func (h *AdminHandler) Healthz(c *gin.Context) {
	result := h.storage.Check(c.Request.Context())
	status := http.StatusOK
	if !result.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, result)
}
