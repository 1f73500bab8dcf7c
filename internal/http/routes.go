package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "study-planner.com/study-planner/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, verifier middleware.IdentityVerifier, rateLimitPerMinute int) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api/v1",
		middleware.Authenticate(verifier),
		middleware.RateLimiter(rateLimitPerMinute, time.Minute),
	)

	api.GET("/me", h.Me)

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/stats", h.TaskStats)
	api.GET("/tasks/:id", h.GetTask)
	api.PATCH("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.POST("/tasks/:id/cycle-status", h.CycleTaskStatus)
	api.POST("/tasks/:id/favorite", h.ToggleTaskFavorite)

	api.GET("/preferences", h.GetPreferences)
	api.PUT("/preferences", h.SavePreferences)
	api.GET("/profile", h.GetProfile)
	api.PUT("/profile", h.SaveProfile)
}
