package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

type UserHandler struct {
	userService service.UserService
	log         logging.Logger
}

func NewUserHandler(userService service.UserService, log logging.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// UserRequest is the body of create and update calls. Password is optional
// on update; role is always required.
type UserRequest struct {
	Name             string                  `json:"name" binding:"required"`
	Email            string                  `json:"email" binding:"required,email"`
	Password         string                  `json:"password"`
	Role             string                  `json:"role" binding:"required,oneof=admin coach athlete atleta"`
	MembershipStatus domain.MembershipStatus `json:"membershipStatus"`
	PaymentStatus    domain.PaymentStatus    `json:"paymentStatus"`
	Phone            string                  `json:"phone"`
	BirthDate        string                  `json:"birthDate"`
	Notes            string                  `json:"notes"`
	WorkoutPlans     []domain.PlanRef        `json:"workoutPlans"`
}

func (r UserRequest) toDomain(id string) *domain.User {
	return &domain.User{
		ID:               id,
		Name:             r.Name,
		Email:            r.Email,
		Role:             domain.Role(r.Role),
		MembershipStatus: r.MembershipStatus,
		PaymentStatus:    r.PaymentStatus,
		Phone:            r.Phone,
		BirthDate:        r.BirthDate,
		Notes:            r.Notes,
		WorkoutPlans:     r.WorkoutPlans,
	}
}

type AssignPlanRequest struct {
	PlanID    string `json:"planId" binding:"required"`
	VariantID string `json:"variantId"`
}

// ListUsers godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve users.")
		return
	}
	c.JSON(http.StatusOK, mapUsersToResponse(users))
}

// GetUser godoc
// @Summary Get a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "User not found"
// @Router /users/{userId} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("userId")
	if !selfOrStaff(c, userID) {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve user.")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// CreateUser godoc
// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UserRequest true "User details"
// @Success 201 {object} UserResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Admin only"
// @Failure 409 {object} gin.H "Email already exists"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Save(c.Request.Context(), req.toDomain(""), req.Password)
	if err != nil {
		respondError(c, h.log, err, "Failed to create user.")
		return
	}
	c.JSON(http.StatusCreated, MapUserToResponse(user))
}

// UpdateUser godoc
// @Summary Update a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param user body UserRequest true "User details"
// @Success 200 {object} UserResponse
// @Failure 403 {object} gin.H "Admin only"
// @Failure 409 {object} gin.H "Email already exists"
// @Router /users/{userId} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Save(c.Request.Context(), req.toDomain(c.Param("userId")), req.Password)
	if err != nil {
		respondError(c, h.log, err, "Failed to update user.")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags Users
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 204
// @Router /users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, h.log, err, "Failed to delete user.")
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignPlan godoc
// @Summary Assign a plan (optionally one variant) to a user
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param ref body AssignPlanRequest true "Plan reference"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "User, plan or variant not found"
// @Router /users/{userId}/plans [post]
func (h *UserHandler) AssignPlan(c *gin.Context) {
	var req AssignPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	ref := domain.PlanRef{PlanID: req.PlanID, VariantID: req.VariantID}
	user, err := h.userService.AssignPlan(c.Request.Context(), c.Param("userId"), ref)
	if err != nil {
		respondError(c, h.log, err, "Failed to assign plan.")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UnassignPlan godoc
// @Summary Remove a plan reference from a user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param planId path string true "Plan ID"
// @Param variantId query string false "Only remove this variant"
// @Success 200 {object} UserResponse
// @Router /users/{userId}/plans/{planId} [delete]
func (h *UserHandler) UnassignPlan(c *gin.Context) {
	ref := domain.PlanRef{PlanID: c.Param("planId"), VariantID: c.Query("variantId")}
	user, err := h.userService.UnassignPlan(c.Request.Context(), c.Param("userId"), ref)
	if err != nil {
		respondError(c, h.log, err, "Failed to unassign plan.")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// GetAssignedWorkouts godoc
// @Summary Workouts assigned to a user, variants applied
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {array} service.AssignedWorkout
// @Router /users/{userId}/workouts [get]
func (h *UserHandler) GetAssignedWorkouts(c *gin.Context) {
	userID := c.Param("userId")
	if !selfOrStaff(c, userID) {
		return
	}
	workouts, err := h.userService.AssignedWorkouts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Failed to retrieve assigned workouts.")
		return
	}
	c.JSON(http.StatusOK, workouts)
}
