package httpapi

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything Setup needs to wire the route table.
type Handlers struct {
	Auth      *AuthHandler
	Tasks     *TaskHandler
	Messages  *MessageHandler
	Users     *UserAdminHandler
	Evidences *EvidenceHandler
	Health    *HealthHandler
}

// Setup registers all routes. Every /api route runs the session middleware;
// authorization itself lives in the services, not in the route table.
func Setup(router *gin.Engine, h *Handlers, authenticate gin.HandlerFunc) {
	router.GET("/healthz", h.Health.Check)

	api := router.Group("/api")
	api.Use(authenticate)
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", h.Auth.Logout)
			authGroup.GET("/me", h.Auth.Me)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.Tasks.List)
			tasks.POST("", h.Tasks.Create)
			tasks.GET("/:id", h.Tasks.Get)
			tasks.PATCH("/:id", h.Tasks.Update)
			tasks.POST("/:id/complete", h.Tasks.MarkCompleted)
			tasks.GET("/:id/evidences", h.Evidences.List)
			tasks.POST("/:id/evidences", h.Evidences.Upload)
		}

		messages := api.Group("/messages")
		{
			messages.GET("", h.Messages.List)
			messages.POST("", h.Messages.Send)
			messages.POST("/:id/read", h.Messages.MarkRead)
		}

		users := api.Group("/users")
		{
			users.GET("", h.Users.List)
			users.POST("/:id/block", h.Users.Block)
			users.POST("/:id/unblock", h.Users.Unblock)
			users.POST("/:id/impersonate", h.Users.Impersonate)
		}
	}
}
