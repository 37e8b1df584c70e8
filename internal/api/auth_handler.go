package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
	log         logging.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, userService service.UserService, log logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService, log: log}
}

// --- Request/Response Structs ---

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID               string                  `json:"id"`
	Name             string                  `json:"name"`
	Email            string                  `json:"email"`
	Role             domain.Role             `json:"role"`
	MembershipStatus domain.MembershipStatus `json:"membershipStatus,omitempty"`
	PaymentStatus    domain.PaymentStatus    `json:"paymentStatus,omitempty"`
	Phone            string                  `json:"phone,omitempty"`
	BirthDate        string                  `json:"birthDate,omitempty"`
	Notes            string                  `json:"notes,omitempty"`
	WorkoutPlans     []domain.PlanRef        `json:"workoutPlans"`
	CreatedAt        time.Time               `json:"createdAt"`
	UpdatedAt        time.Time               `json:"updatedAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Login godoc
// @Summary Log in a user
// @Description Authenticates a user against the selected backend and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
			return
		}
		respondError(c, h.log, err, "An unexpected error occurred during login")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	user, err := h.userService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Failed to load current user")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
// Crucially excludes PasswordHash.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	plans := user.WorkoutPlans
	if plans == nil {
		plans = []domain.PlanRef{}
	}
	return UserResponse{
		ID:               user.ID,
		Name:             user.Name,
		Email:            user.Email,
		Role:             user.Role,
		MembershipStatus: user.MembershipStatus,
		PaymentStatus:    user.PaymentStatus,
		Phone:            user.Phone,
		BirthDate:        user.BirthDate,
		Notes:            user.Notes,
		WorkoutPlans:     plans,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

func mapUsersToResponse(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, MapUserToResponse(&users[i]))
	}
	return out
}
