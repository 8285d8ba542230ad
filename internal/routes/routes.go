package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/woffu/woffu/internal/config"
	"github.com/woffu/woffu/internal/database"
	"github.com/woffu/woffu/internal/handlers"
	"github.com/woffu/woffu/internal/middleware"
	"github.com/woffu/woffu/internal/models"
	"github.com/woffu/woffu/internal/services"
)

func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"db_connected": database.GetDB() != nil,
		})
	})

	// Initialize services
	db := database.GetDB()
	authService := services.NewAuthService(cfg, db)
	workflowService := services.NewWorkflowService(db)
	dashboardService := services.NewDashboardService(db, cfg.DueSoonDays)
	reportService := services.NewReportService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(workflowService, reportService)
	approvalHandler := handlers.NewApprovalHandler(workflowService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	memberHandler := handlers.NewMemberHandler()

	// API routes
	api := router.Group("/api")

	// Middleware to check database readiness
	api.Use(func(c *gin.Context) {
		if database.GetDB() == nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"error": "Service initializing, please try again shortly",
			})
			return
		}
		c.Next()
	})

	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)

			// Protected auth routes
			authProtected := auth.Group("")
			authProtected.Use(middleware.AuthMiddleware(authService))
			{
				authProtected.GET("/me", authHandler.GetCurrentMember)
				authProtected.POST("/change-password", authHandler.ChangePassword)
			}
		}

		// Project routes
		projects := api.Group("/projects")
		projects.Use(middleware.AuthMiddleware(authService))
		{
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.POST("/:id/request-status", projectHandler.RequestStatus)
			projects.GET("/:id/status-requests", projectHandler.GetProjectRequests)
			projects.GET("/:id/logs", projectHandler.GetProjectLogs)
			projects.GET("/:id/report", projectHandler.GetProjectReport)

			// Leader-only CRUD
			projects.POST("", middleware.RequireLeader(), projectHandler.CreateProject)
			projects.PATCH("/:id", middleware.RequireLeader(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireLeader(), projectHandler.DeleteProject)
		}

		// Approval routes (leader only)
		approvals := api.Group("/approvals")
		approvals.Use(middleware.AuthMiddleware(authService), middleware.RequireLeader())
		{
			approvals.GET("", approvalHandler.ListApprovals)
			approvals.POST("/:id/approve", approvalHandler.Approve)
			approvals.POST("/:id/reject", approvalHandler.Reject)
			approvals.POST("/history/clear", approvalHandler.ClearHistory)
		}

		// Dashboard
		api.GET("/dashboard", middleware.AuthMiddleware(authService), dashboardHandler.GetDashboard)

		// Member routes
		members := api.Group("/members")
		members.Use(middleware.AuthMiddleware(authService))
		{
			members.GET("", memberHandler.ListMembers)
			members.PATCH("/:id", memberHandler.UpdateMember)
		}
	}

	return router
}

// SeedLeader creates the default leader account if none exists
func SeedLeader(cfg *config.Config, authService *services.AuthService) error {
	_, _, err := authService.Login(cfg.LeaderEmail, cfg.LeaderPassword)
	if err == nil {
		return nil // Leader exists
	}

	_, err = authService.Register(
		cfg.LeaderEmail,
		cfg.LeaderPassword, // Default password -- should be changed
		cfg.LeaderName,
		models.DepartmentAll,
		models.RoleLeader,
	)
	return err
}
