package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/localstore"
	"kw8/gym-app/internal/repository"
	localrepo "kw8/gym-app/internal/repository/local"
	"kw8/gym-app/internal/service"
)

const testSecret = "test-secret"

type testServer struct {
	router *gin.Engine
	users  service.UserService
	auth   service.AuthService
}

// newTestServer wires the API over an in-memory local store with no
// remote store and no object storage.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := localstore.New(localstore.NewMemoryBackend(), nil)
	selector := service.NewFlagSelector(store, false)
	backends := service.NewBackends(selector, localrepo.NewRepositories(store), repository.Repositories{}, nil)

	users := service.NewUserService(backends)
	workouts := service.NewWorkoutService(backends)
	auth := service.NewAuthService(users, testSecret, 0)

	router := gin.New()
	SetupRoutes(router, Dependencies{
		JWTSecret:  testSecret,
		Auth:       auth,
		Users:      users,
		Workouts:   workouts,
		Rankings:   service.NewRankingService(backends),
		Links:      service.NewLinkService(backends),
		Membership: service.NewMembershipService(backends),
		Media:      service.NewMediaService(workouts, nil),
		Schedule:   service.NewScheduleService(backends),
		Backend:    selector,
		Storage:    store,
	})
	return &testServer{router: router, users: users, auth: auth}
}

func (s *testServer) createUser(t *testing.T, name, email string, role domain.Role, password string) (*domain.User, string) {
	t.Helper()
	u, err := s.users.Save(context.Background(), &domain.User{Name: name, Email: email, Role: role}, password)
	require.NoError(t, err)
	token, err := s.auth.IssueToken(u)
	require.NoError(t, err)
	return u, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "Coach", "coach@gym.test", domain.RoleCoach, "pw-123")

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "coach@gym.test", Password: "pw-123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "passwordHash")
	resp := decode[LoginResponse](t, w)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, domain.RoleCoach, resp.User.Role)

	w = s.do(t, http.MethodGet, "/api/v1/me", resp.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "coach@gym.test", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleChecks(t *testing.T) {
	s := newTestServer(t)
	athlete, athleteToken := s.createUser(t, "Ana", "ana@gym.test", domain.RoleAthlete, "")
	other, _ := s.createUser(t, "Bo", "bo@gym.test", domain.RoleAthlete, "")

	w := s.do(t, http.MethodGet, "/api/v1/users", athleteToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/users/"+athlete.ID+"/workouts", athleteToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/users/"+other.ID+"/workouts", athleteToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUserWritesRequireAdminAndKnownRole(t *testing.T) {
	s := newTestServer(t)
	_, coachToken := s.createUser(t, "Coach", "coach@gym.test", domain.RoleCoach, "")
	admin, adminToken := s.createUser(t, "Root", "root@gym.test", domain.RoleAdmin, "")

	// A coach cannot mint accounts, with or without a role.
	noRole := map[string]string{"name": "Mallory", "email": "m@gym.test", "password": "pw-1"}
	w := s.do(t, http.MethodPost, "/api/v1/users", coachToken, noRole)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/users", coachToken,
		UserRequest{Name: "Mallory", Email: "m@gym.test", Password: "pw-1", Role: "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodPut, "/api/v1/users/"+admin.ID, coachToken,
		UserRequest{Name: "Root", Email: "root@gym.test", Password: "taken-over", Role: "coach"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	_, err := s.users.GetByEmail(context.Background(), "m@gym.test")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Email: "m@gym.test", Password: "pw-1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Admins must name a known role; nothing defaults to admin.
	w = s.do(t, http.MethodPost, "/api/v1/users", adminToken, noRole)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPost, "/api/v1/users", adminToken,
		UserRequest{Name: "Mallory", Email: "m@gym.test", Role: "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/users", adminToken,
		UserRequest{Name: "Mallory", Email: "m@gym.test", Password: "pw-1", Role: "atleta"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[UserResponse](t, w)
	assert.Equal(t, domain.RoleAthlete, created.Role)

	w = s.do(t, http.MethodPut, "/api/v1/users/"+created.ID, adminToken,
		UserRequest{Name: "Mallory", Email: "root@gym.test", Role: "athlete"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPlansAndFolders(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "Coach", "coach@gym.test", domain.RoleCoach, "")

	w := s.do(t, http.MethodPost, "/api/v1/folders", token, domain.WorkoutFolder{Name: "Strength"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	folder := decode[domain.WorkoutFolder](t, w)

	w = s.do(t, http.MethodPost, "/api/v1/plans", token, domain.WorkoutPlan{
		Name:      "5x5",
		FolderID:  folder.ID,
		Exercises: []domain.Exercise{{Name: "Squat", Sets: 5, Reps: 5}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	plan := decode[domain.WorkoutPlan](t, w)
	assert.NotEmpty(t, plan.Coach)

	w = s.do(t, http.MethodGet, "/api/v1/plans?folderId="+folder.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]domain.WorkoutPlan](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/v1/folders/tree", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tree := decode[domain.FolderTree](t, w)
	require.Len(t, tree.Folders, 1)
	assert.Len(t, tree.Folders[0].Plans, 1)

	w = s.do(t, http.MethodPost, "/api/v1/plans", token, domain.WorkoutPlan{Name: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/plans/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/folders/"+folder.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/plans/"+plan.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[domain.WorkoutPlan](t, w).FolderID)
}

func TestRemoteOnlyAndAdminWithoutRemote(t *testing.T) {
	s := newTestServer(t)
	_, token := s.createUser(t, "Root", "root@gym.test", domain.RoleAdmin, "")

	w := s.do(t, http.MethodGet, "/api/v1/rankings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/rankings", token, domain.Ranking{Name: "Bench"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/admin/backend", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, BackendStatus{}, decode[BackendStatus](t, w))

	enable := true
	w = s.do(t, http.MethodPut, "/api/v1/admin/backend", token, SetBackendRequest{RemoteEnabled: &enable})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/admin/migrate", token, MigrateRequest{})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/schedule", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(t, http.MethodPut, "/api/v1/schedule", token, domain.GymSchedule{})
	assert.Equal(t, http.StatusConflict, w.Code)
	_, coachToken := s.createUser(t, "Coach", "coach@gym.test", domain.RoleCoach, "")
	w = s.do(t, http.MethodPut, "/api/v1/schedule", coachToken, domain.GymSchedule{})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/media/download-url?key=plans/p/image/x.png", token, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOneRepMaxAndHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/one-rep-max?weight=100&reps=10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 133.0, decode[OneRepMaxResponse](t, w).OneRepMax)

	w = s.do(t, http.MethodGet, "/api/v1/one-rep-max?weight=abc&reps=10", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[localstore.CheckResult](t, w).ReadWriteOK)

	w = s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
