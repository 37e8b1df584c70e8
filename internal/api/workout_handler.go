package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
	log            logging.Logger
}

func NewWorkoutHandler(workoutService service.WorkoutService, log logging.Logger) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, log: log}
}

// --- Plans ---

// ListPlans godoc
// @Summary List workout plans
// @Description Lists every plan, or only those directly inside folderId when the query parameter is present ("" is the root).
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param folderId query string false "Folder ID"
// @Success 200 {array} domain.WorkoutPlan
// @Router /plans [get]
func (h *WorkoutHandler) ListPlans(c *gin.Context) {
	var (
		plans []domain.WorkoutPlan
		err   error
	)
	if folderID, ok := c.GetQuery("folderId"); ok {
		plans, err = h.workoutService.ListPlansByFolder(c.Request.Context(), folderID)
	} else {
		plans, err = h.workoutService.ListPlans(c.Request.Context())
	}
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve workout plans.")
		return
	}
	if plans == nil {
		plans = []domain.WorkoutPlan{}
	}
	c.JSON(http.StatusOK, plans)
}

// GetPlan godoc
// @Summary Get a workout plan
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} domain.WorkoutPlan
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{planId} [get]
func (h *WorkoutHandler) GetPlan(c *gin.Context) {
	plan, err := h.workoutService.GetPlan(c.Request.Context(), c.Param("planId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve workout plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// CreatePlan godoc
// @Summary Create a workout plan
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body domain.WorkoutPlan true "Plan"
// @Success 201 {object} domain.WorkoutPlan
// @Failure 400 {object} gin.H "Invalid input"
// @Router /plans [post]
func (h *WorkoutHandler) CreatePlan(c *gin.Context) {
	var plan domain.WorkoutPlan
	if !bindJSON(c, &plan) {
		return
	}
	plan.ID = ""
	if plan.Coach == "" {
		plan.Coach, _ = getUserIDFromContext(c)
	}
	saved, err := h.workoutService.SavePlan(c.Request.Context(), &plan)
	if err != nil {
		respondError(c, h.log, err, "Failed to create workout plan.")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdatePlan godoc
// @Summary Replace a workout plan
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param plan body domain.WorkoutPlan true "Plan"
// @Success 200 {object} domain.WorkoutPlan
// @Router /plans/{planId} [put]
func (h *WorkoutHandler) UpdatePlan(c *gin.Context) {
	var plan domain.WorkoutPlan
	if !bindJSON(c, &plan) {
		return
	}
	plan.ID = c.Param("planId")
	saved, err := h.workoutService.SavePlan(c.Request.Context(), &plan)
	if err != nil {
		respondError(c, h.log, err, "Failed to update workout plan.")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeletePlan godoc
// @Summary Delete a workout plan
// @Tags Workouts
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 204
// @Router /plans/{planId} [delete]
func (h *WorkoutHandler) DeletePlan(c *gin.Context) {
	if err := h.workoutService.DeletePlan(c.Request.Context(), c.Param("planId")); err != nil {
		respondError(c, h.log, err, "Failed to delete workout plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Variants ---

// AddVariant godoc
// @Summary Add a variant to a plan
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param variant body domain.WorkoutVariant true "Variant"
// @Success 201 {object} domain.WorkoutVariant
// @Router /plans/{planId}/variants [post]
func (h *WorkoutHandler) AddVariant(c *gin.Context) {
	var variant domain.WorkoutVariant
	if !bindJSON(c, &variant) {
		return
	}
	saved, err := h.workoutService.AddVariant(c.Request.Context(), c.Param("planId"), variant)
	if err != nil {
		respondError(c, h.log, err, "Failed to add variant.")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// DeleteVariant godoc
// @Summary Delete a plan variant
// @Tags Workouts
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param variantId path string true "Variant ID"
// @Success 204
// @Router /plans/{planId}/variants/{variantId} [delete]
func (h *WorkoutHandler) DeleteVariant(c *gin.Context) {
	if err := h.workoutService.DeleteVariant(c.Request.Context(), c.Param("planId"), c.Param("variantId")); err != nil {
		respondError(c, h.log, err, "Failed to delete variant.")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetVariantExercises godoc
// @Summary Exercises of a plan with a variant applied
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param variantId path string true "Variant ID, or 'original'"
// @Success 200 {array} domain.Exercise
// @Router /plans/{planId}/variants/{variantId}/exercises [get]
func (h *WorkoutHandler) GetVariantExercises(c *gin.Context) {
	exercises, err := h.workoutService.VariantExercises(c.Request.Context(), c.Param("planId"), c.Param("variantId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to resolve variant exercises.")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// --- Folders ---

// ListFolders godoc
// @Summary List folders
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.WorkoutFolder
// @Router /folders [get]
func (h *WorkoutHandler) ListFolders(c *gin.Context) {
	folders, err := h.workoutService.ListFolders(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve folders.")
		return
	}
	if folders == nil {
		folders = []domain.WorkoutFolder{}
	}
	c.JSON(http.StatusOK, folders)
}

// GetFolderTree godoc
// @Summary Folder hierarchy with the plans inside each folder
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.FolderTree
// @Router /folders/tree [get]
func (h *WorkoutHandler) GetFolderTree(c *gin.Context) {
	tree, err := h.workoutService.FolderTree(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to build folder tree.")
		return
	}
	c.JSON(http.StatusOK, tree)
}

// GetFolder godoc
// @Summary Get a folder
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param folderId path string true "Folder ID"
// @Success 200 {object} domain.WorkoutFolder
// @Router /folders/{folderId} [get]
func (h *WorkoutHandler) GetFolder(c *gin.Context) {
	folder, err := h.workoutService.GetFolder(c.Request.Context(), c.Param("folderId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve folder.")
		return
	}
	c.JSON(http.StatusOK, folder)
}

// GetSubfolders godoc
// @Summary Direct children of a folder
// @Tags Folders
// @Produce json
// @Security BearerAuth
// @Param folderId path string true "Folder ID"
// @Success 200 {array} domain.WorkoutFolder
// @Router /folders/{folderId}/subfolders [get]
func (h *WorkoutHandler) GetSubfolders(c *gin.Context) {
	folders, err := h.workoutService.Subfolders(c.Request.Context(), c.Param("folderId"))
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve subfolders.")
		return
	}
	c.JSON(http.StatusOK, folders)
}

// CreateFolder godoc
// @Summary Create a folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param folder body domain.WorkoutFolder true "Folder"
// @Success 201 {object} domain.WorkoutFolder
// @Failure 400 {object} gin.H "Invalid input, unknown parent or cycle"
// @Router /folders [post]
func (h *WorkoutHandler) CreateFolder(c *gin.Context) {
	var folder domain.WorkoutFolder
	if !bindJSON(c, &folder) {
		return
	}
	folder.ID = ""
	saved, err := h.workoutService.SaveFolder(c.Request.Context(), &folder)
	if err != nil {
		respondError(c, h.log, err, "Failed to create folder.")
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdateFolder godoc
// @Summary Replace a folder
// @Tags Folders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param folderId path string true "Folder ID"
// @Param folder body domain.WorkoutFolder true "Folder"
// @Success 200 {object} domain.WorkoutFolder
// @Router /folders/{folderId} [put]
func (h *WorkoutHandler) UpdateFolder(c *gin.Context) {
	var folder domain.WorkoutFolder
	if !bindJSON(c, &folder) {
		return
	}
	folder.ID = c.Param("folderId")
	saved, err := h.workoutService.SaveFolder(c.Request.Context(), &folder)
	if err != nil {
		respondError(c, h.log, err, "Failed to update folder.")
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteFolder godoc
// @Summary Delete a folder
// @Description Sub-folders move to the deleted folder's parent, plans move to the root.
// @Tags Folders
// @Security BearerAuth
// @Param folderId path string true "Folder ID"
// @Success 204
// @Router /folders/{folderId} [delete]
func (h *WorkoutHandler) DeleteFolder(c *gin.Context) {
	if err := h.workoutService.DeleteFolder(c.Request.Context(), c.Param("folderId")); err != nil {
		respondError(c, h.log, err, "Failed to delete folder.")
		return
	}
	c.Status(http.StatusNoContent)
}
