package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kw8/gym-app/internal/domain"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

// Dependencies carries everything SetupRoutes wires into handlers.
type Dependencies struct {
	JWTSecret  string
	Auth       service.AuthService
	Users      service.UserService
	Workouts   service.WorkoutService
	Rankings   service.RankingService
	Links      service.LinkService
	Membership service.MembershipService
	Media      service.MediaService
	Schedule   service.ScheduleService
	Remote     service.RemoteService // nil without a remote store
	Backend    BackendSwitch
	Storage    StorageChecker
	Log        logging.Logger
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	log := deps.Log
	if log == nil {
		log = logging.Discard()
	}

	authHandler := NewAuthHandler(deps.Auth, deps.Users, log)
	userHandler := NewUserHandler(deps.Users, log)
	workoutHandler := NewWorkoutHandler(deps.Workouts, log)
	rankingHandler := NewRankingHandler(deps.Rankings, log)
	linkHandler := NewLinkHandler(deps.Links, log)
	membershipHandler := NewMembershipHandler(deps.Membership, log)
	mediaHandler := NewMediaHandler(deps.Media, log)
	scheduleHandler := NewScheduleHandler(deps.Schedule, log)
	adminHandler := NewAdminHandler(deps.Backend, deps.Remote, deps.Storage, log)

	authMiddleware := AuthMiddleware(deps.JWTSecret)
	staff := RoleMiddleware(domain.RoleAdmin, domain.RoleCoach)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/healthz", adminHandler.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
		apiV1.GET("/one-rep-max", rankingHandler.OneRepMax)
		apiV1.GET("/schedule", scheduleHandler.GetSchedule)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Users ---
		users := protected.Group("/users")
		{
			users.GET("", staff, userHandler.ListUsers)
			users.POST("", adminOnly, userHandler.CreateUser)
			users.GET("/:userId", userHandler.GetUser)
			users.PUT("/:userId", adminOnly, userHandler.UpdateUser)
			users.DELETE("/:userId", adminOnly, userHandler.DeleteUser)
			users.POST("/:userId/plans", staff, userHandler.AssignPlan)
			users.DELETE("/:userId/plans/:planId", staff, userHandler.UnassignPlan)
			users.GET("/:userId/workouts", userHandler.GetAssignedWorkouts)
			users.GET("/:userId/membership-cards", membershipHandler.ListUserCards)
		}

		// --- Plans, variants and media ---
		plans := protected.Group("/plans")
		plans.Use(staff)
		{
			plans.GET("", workoutHandler.ListPlans)
			plans.POST("", workoutHandler.CreatePlan)
			plans.GET("/:planId", workoutHandler.GetPlan)
			plans.PUT("/:planId", workoutHandler.UpdatePlan)
			plans.DELETE("/:planId", workoutHandler.DeletePlan)

			plans.POST("/:planId/variants", workoutHandler.AddVariant)
			plans.DELETE("/:planId/variants/:variantId", workoutHandler.DeleteVariant)
			plans.GET("/:planId/variants/:variantId/exercises", workoutHandler.GetVariantExercises)

			plans.POST("/:planId/media/upload-url", mediaHandler.RequestUploadURL)
			plans.POST("/:planId/media", mediaHandler.ConfirmUpload)
			plans.DELETE("/:planId/media", mediaHandler.DeleteMedia)
		}
		protected.GET("/media/download-url", mediaHandler.DownloadURL)

		// --- Folders ---
		folders := protected.Group("/folders")
		folders.Use(staff)
		{
			folders.GET("", workoutHandler.ListFolders)
			folders.POST("", workoutHandler.CreateFolder)
			folders.GET("/tree", workoutHandler.GetFolderTree)
			folders.GET("/:folderId", workoutHandler.GetFolder)
			folders.PUT("/:folderId", workoutHandler.UpdateFolder)
			folders.DELETE("/:folderId", workoutHandler.DeleteFolder)
			folders.GET("/:folderId/subfolders", workoutHandler.GetSubfolders)
		}

		// --- Remote-only collections ---
		rankings := protected.Group("/rankings")
		{
			rankings.GET("", rankingHandler.ListRankings)
			rankings.GET("/:rankingId", rankingHandler.GetRanking)
			rankings.POST("", staff, rankingHandler.CreateRanking)
			rankings.PUT("/:rankingId", staff, rankingHandler.UpdateRanking)
			rankings.DELETE("/:rankingId", staff, rankingHandler.DeleteRanking)
			rankings.POST("/:rankingId/entries", rankingHandler.AddEntry)
			rankings.DELETE("/:rankingId/entries/:userId", staff, rankingHandler.RemoveEntry)
		}

		links := protected.Group("/links")
		{
			links.GET("", linkHandler.ListLinks)
			links.POST("", adminOnly, linkHandler.CreateLink)
			links.PUT("/:linkId", adminOnly, linkHandler.UpdateLink)
			links.DELETE("/:linkId", adminOnly, linkHandler.DeleteLink)
		}

		protected.PUT("/schedule", adminOnly, scheduleHandler.SaveSchedule)

		cards := protected.Group("/membership-cards")
		cards.Use(adminOnly)
		{
			cards.GET("", membershipHandler.ListCards)
			cards.POST("", membershipHandler.CreateCard)
			cards.PUT("/:cardId", membershipHandler.UpdateCard)
			cards.DELETE("/:cardId", membershipHandler.DeleteCard)
		}

		admin := protected.Group("/admin")
		admin.Use(adminOnly)
		{
			admin.GET("/backend", adminHandler.GetBackend)
			admin.PUT("/backend", adminHandler.SetBackend)
			admin.POST("/migrate", adminHandler.Migrate)
		}
	}
}
