package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "github.com/shubham-khot-pro/todo-service/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/todos", h.CreateTask)
	e.GET("/todos", h.ListTasks)
	e.GET("/todos/deleted", h.ListDeletedTasks)
	e.GET("/todos/:id", h.GetTask)
	e.PUT("/todos/:id", h.EditTask)
	e.POST("/todos/:id/toggle", h.ToggleTask)
	e.DELETE("/todos/:id", h.SoftDeleteTask)
	e.POST("/todos/:id/restore", h.RestoreTask)
	e.DELETE("/todos/:id/purge", h.HardDeleteTask)
	e.GET("/todos/:id/history", h.TaskHistory)

	e.POST("/digests", h.RequestDigest)
	e.GET("/digests/preview", h.PreviewDigest)
}
