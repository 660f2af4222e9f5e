package handlers

import (
	"clientboard/internal/cache"
	"clientboard/internal/config"
	"clientboard/internal/middleware"
	"clientboard/internal/repository"
	"clientboard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers onto a gin engine.
// cacheClient may be nil; board reads then go straight to the database.
func SetupRouter(cfg *config.Config, db *gorm.DB, cacheClient *cache.Client) *gin.Engine {
	// Repositories
	historyRepo := repository.NewHistoryRepository(db)
	taskRepo := repository.NewTaskRepository(db, historyRepo)
	clientRepo := repository.NewClientRepository(db)
	linkRepo := repository.NewLinkRepository(db)
	templateRepo := repository.NewTemplateRepository(db)

	// Services
	clientService := services.NewClientService(clientRepo)
	templateService := services.NewTemplateService(templateRepo, clientRepo)
	taskService := services.NewTaskService(
		taskRepo, historyRepo, clientRepo, linkRepo, templateRepo,
		cacheClient, cfg.BoardCacheTTL())
	linkService := services.NewApprovalLinkService(
		linkRepo, clientRepo, taskRepo, cfg.PublicBaseURL, cfg.ApprovalLinkTTL())
	publicService := services.NewPublicActionService(linkRepo, taskRepo, cacheClient)

	// Handlers
	clientHandler := NewClientHandler(clientService)
	taskHandler := NewTaskHandler(taskService)
	templateHandler := NewTemplateHandler(templateService)
	linkHandler := NewLinkHandler(linkService)
	publicHandler := NewPublicHandler(linkService, publicService)
	healthHandler := NewHealthHandler(db)

	router := gin.Default()

	// Anonymous surface
	router.GET("/healthz", healthHandler.Check)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/approval/:uniqueId", publicHandler.Show)
	router.POST("/public/update-client-task-status", publicHandler.Action)

	// Operator API
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		api.POST("/clients", clientHandler.Create)
		api.GET("/clients", clientHandler.List)
		api.GET("/clients/:id", clientHandler.Get)
		api.PUT("/clients/:id", clientHandler.Update)
		api.DELETE("/clients/:id", clientHandler.Delete)

		api.POST("/tasks", taskHandler.Create)
		api.GET("/tasks", taskHandler.List)
		api.GET("/tasks/:id", taskHandler.Get)
		api.PUT("/tasks/:id", taskHandler.Update)
		api.DELETE("/tasks/:id", taskHandler.Delete)
		api.GET("/tasks/:id/history", taskHandler.History)
		api.POST("/tasks/reorder", taskHandler.Reorder)
		api.POST("/tasks/generate", taskHandler.Generate)

		api.POST("/templates", templateHandler.Create)
		api.GET("/templates", templateHandler.List)
		api.PUT("/templates/:id", templateHandler.Update)
		api.DELETE("/templates/:id", templateHandler.Delete)

		api.POST("/approval-links", linkHandler.Issue)
		api.GET("/approval-links", linkHandler.List)
		api.DELETE("/approval-links/:id", linkHandler.Revoke)
	}

	return router
}
