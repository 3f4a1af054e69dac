package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/projectpulse/project-management-api/internal/config"
	"github.com/projectpulse/project-management-api/internal/database"
	"github.com/projectpulse/project-management-api/internal/handlers"
	"github.com/projectpulse/project-management-api/internal/logging"
	"github.com/projectpulse/project-management-api/internal/messaging"
	"github.com/projectpulse/project-management-api/internal/middleware"
	"github.com/projectpulse/project-management-api/internal/repository"
	"github.com/projectpulse/project-management-api/internal/services"
	"github.com/projectpulse/project-management-api/internal/token"
)

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	gin.SetMode(cfg.GinMode)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	orgUserRepo := repository.NewOrgUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logRepo := repository.NewNotificationLogRepository(db)
	teamRepo := repository.NewTeamRepository(db)

	// Services
	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	dispatcher := messaging.NewVonageClient(cfg, logger, nil)
	authService := services.NewAuthService(userRepo, orgRepo, codec, logger)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, logRepo, dispatcher, logger)
	orgUserService := services.NewOrgUserService(userRepo, orgRepo, orgUserRepo)
	teamService := services.NewTeamService(teamRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	orgUserHandler := handlers.NewOrgUserHandler(orgUserService, taskService)
	teamHandler := handlers.NewTeamHandler(teamService, orgUserService)
	webhookHandler := handlers.NewWebhookHandler(cfg.WebhookUsername, cfg.WebhookPassword)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "This is home route"})
	})

	auth := router.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	router.POST("/inbound", middleware.RequireProviderSignature(cfg.VonageJWTSecret), webhookHandler.Inbound)

	authorized := router.Group("/")
	authorized.Use(middleware.RequireAuth(codec, userRepo))
	{
		projects := authorized.Group("/projects")
		{
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
			projects.GET("/:id", projectHandler.Get)
			projects.DELETE("/:id", projectHandler.Delete)
		}

		tasks := authorized.Group("/tasks")
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/:taskId", taskHandler.Get)
			tasks.PATCH("/:taskId", taskHandler.Update)
			tasks.PATCH("/:taskId/status", taskHandler.UpdateStatus)
			tasks.POST("/:taskId/checklist", taskHandler.CreateChecklist)
			tasks.GET("/:taskId/checklist", taskHandler.ListChecklists)
			tasks.PATCH("/:taskId/checklist/:checklistId", taskHandler.UpdateChecklist)
		}

		orgUsers := authorized.Group("/organization-users")
		{
			orgUsers.GET("", orgUserHandler.List)
			orgUsers.POST("", orgUserHandler.Create)
			orgUsers.DELETE("/:id", orgUserHandler.Delete)
			orgUsers.GET("/:id/tasks", orgUserHandler.ListTasks)
		}

		authorized.GET("/teams", teamHandler.List)
		authorized.GET("/employees", teamHandler.ListEmployees)
	}

	logger.Info("Starting server", zap.String("port", cfg.Port))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
