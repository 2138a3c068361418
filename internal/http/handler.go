package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "github.com/shubham-khot-pro/todo-service/internal/data_models"
	apperrors "github.com/shubham-khot-pro/todo-service/internal/errors"
	"github.com/shubham-khot-pro/todo-service/internal/http/validators"
	"github.com/shubham-khot-pro/todo-service/internal/queue"
	repository "github.com/shubham-khot-pro/todo-service/internal/repositories"
	"github.com/shubham-khot-pro/todo-service/internal/services"
)

// Handler is the thin HTTP collaborator over the core. Authentication is
// upstream: the owner arrives in the X-User-ID header, and an optional
// X-Actor-ID names a different acting user for audit attribution.
type Handler struct {
	taskService   *services.TaskService
	digestService *services.DigestService
	digestQueue   queue.DigestQueue
}

func NewHandler(
	taskService *services.TaskService,
	digestService *services.DigestService,
	digestQueue queue.DigestQueue,
) *Handler {
	return &Handler{
		taskService:   taskService,
		digestService: digestService,
		digestQueue:   digestQueue,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	owner, actor, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateTitle(req.Title); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), owner, actor, req.Title, req.Description)
	if err != nil {
		return asHTTPError(err, "failed to create todo")
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	owner, _, err := identity(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	filters := listFilters(c)

	tasks, err := h.taskService.ListActive(ctx, owner, filters)
	if err != nil {
		return asHTTPError(err, "failed to list todos")
	}

	deletedCount, err := h.taskService.CountDeleted(ctx, owner)
	if err != nil {
		return asHTTPError(err, "failed to list todos")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(tasks),
		"deleted_count": deletedCount,
		"todos":         tasks,
	})
}

func (h *Handler) ListDeletedTasks(c echo.Context) error {
	owner, _, err := identity(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListDeleted(c.Request().Context(), owner)
	if err != nil {
		return asHTTPError(err, "failed to list deleted todos")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"todos": tasks,
	})
}

func (h *Handler) GetTask(c echo.Context) error {
	owner, _, err := identity(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return asHTTPError(err, "failed to load todo")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) EditTask(c echo.Context) error {
	owner, actor, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.EditTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateTitle(req.Title); err != nil {
		return err
	}

	task, err := h.taskService.EditTask(c.Request().Context(), owner, actor, c.Param("id"), req.Title, req.Description)
	if err != nil {
		return asHTTPError(err, "failed to edit todo")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ToggleTask(c echo.Context) error {
	owner, actor, err := identity(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleCompletion(c.Request().Context(), owner, actor, c.Param("id"))
	if err != nil {
		return asHTTPError(err, "failed to toggle todo")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) SoftDeleteTask(c echo.Context) error {
	owner, actor, err := identity(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.SoftDelete(c.Request().Context(), owner, actor, c.Param("id"))
	if err != nil {
		return asHTTPError(err, "failed to delete todo")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) RestoreTask(c echo.Context) error {
	owner, actor, err := identity(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.Restore(c.Request().Context(), owner, actor, c.Param("id"))
	if err != nil {
		return asHTTPError(err, "failed to restore todo")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) HardDeleteTask(c echo.Context) error {
	owner, actor, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.taskService.HardDelete(c.Request().Context(), owner, actor, c.Param("id")); err != nil {
		return asHTTPError(err, "failed to purge todo")
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) TaskHistory(c echo.Context) error {
	owner, _, err := identity(c)
	if err != nil {
		return err
	}

	events, err := h.taskService.History(c.Request().Context(), owner, c.Param("id"))
	if err != nil {
		return asHTTPError(err, "failed to load todo history")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count":  len(events),
		"events": events,
	})
}

// PreviewDigest renders the caller's digest body synchronously, without
// sending anything.
func (h *Handler) PreviewDigest(c echo.Context) error {
	owner, _, err := identity(c)
	if err != nil {
		return err
	}

	body, err := h.digestService.BuildDigest(c.Request().Context(), owner)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build digest")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"subject": services.DigestSubject,
		"body":    body,
	})
}

// RequestDigest schedules an outstanding-tasks email for the caller. The
// actual build and send happen on the digest workers.
func (h *Handler) RequestDigest(c echo.Context) error {
	owner, _, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.digestQueue.Enqueue(c.Request().Context(), owner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to schedule digest")
	}

	return c.NoContent(http.StatusAccepted)
}

func identity(c echo.Context) (owner, actor string, err error) {
	owner = c.Request().Header.Get("X-User-ID")
	if owner == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "X-User-ID header is required")
	}

	actor = c.Request().Header.Get("X-Actor-ID")
	if actor == "" {
		actor = owner
	}
	return owner, actor, nil
}

func listFilters(c echo.Context) repository.ListFilters {
	var filters repository.ListFilters

	if v := c.QueryParam("completed"); v != "" {
		completed := v == "true" || v == "1"
		filters.Completed = &completed
	}
	if v := c.QueryParam("created_today"); v == "true" || v == "1" {
		filters.CreatedToday = true
	}
	if v := c.QueryParam("recent_event_days"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			filters.RecentEventDays = days
		}
	}

	return filters
}

func asHTTPError(err error, fallback string) error {
	if apperrors.IsUserError(err) {
		return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback)
}
