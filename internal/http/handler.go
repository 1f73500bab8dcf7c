package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"study-planner.com/study-planner/internal/auth"
	dto "study-planner.com/study-planner/internal/data_models"
	apperrors "study-planner.com/study-planner/internal/errors"
	middleware "study-planner.com/study-planner/internal/http/middlewares"
	"study-planner.com/study-planner/internal/http/validators"
	model "study-planner.com/study-planner/internal/models"
	"study-planner.com/study-planner/internal/services"
)

type Handler struct {
	taskService     *services.TaskService
	settingsService *services.SettingsService
	now             func() time.Time
}

func NewHandler(taskService *services.TaskService, settingsService *services.SettingsService) *Handler {
	return &Handler{
		taskService:     taskService,
		settingsService: settingsService,
		now:             time.Now,
	}
}

func identity(c echo.Context) (auth.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.UserID == "" {
		return auth.Identity{}, apperrors.ErrUnauthenticated
	}
	return id, nil
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h *Handler) Me(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}

func (h *Handler) ListTasks(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var q dto.ListTasksQuery
	if err := c.Bind(&q); err != nil {
		return apperrors.Validation("invalid query parameters")
	}
	if err := validators.ValidateListTasksQuery(&q); err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), id.UserID, model.TaskFilter{
		Status:   q.Status,
		Priority: q.Priority,
		Search:   q.Search,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": dto.NewTaskResponses(tasks, h.now()),
	})
}

func (h *Handler) TaskStats(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	stats, err := h.taskService.Stats(c.Request().Context(), id.UserID, h.now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) CreateTask(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), id.UserID, services.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Subject:     req.Subject,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, dto.NewTaskResponse(*task, h.now()))
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponse(*task, h.now()))
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), id.UserID, c.Param("id"), services.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		Subject:      req.Subject,
		Priority:     req.Priority,
		Status:       req.Status,
		DueDate:      req.DueDate,
		ClearDueDate: req.ClearDueDate,
		IsFavorite:   req.IsFavorite,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponse(*task, h.now()))
}

func (h *Handler) CycleTaskStatus(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.CycleStatus(c.Request().Context(), id.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponse(*task, h.now()))
}

func (h *Handler) ToggleTaskFavorite(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleFavorite(c.Request().Context(), id.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto.NewTaskResponse(*task, h.now()))
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id.UserID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) GetPreferences(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.settingsService.GetPreferences(c.Request().Context(), id.UserID))
}

func (h *Handler) SavePreferences(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.PreferencesRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}

	prefs, err := h.settingsService.SavePreferences(c.Request().Context(), id.UserID, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prefs)
}

func (h *Handler) GetProfile(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	profile, err := h.settingsService.GetProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *Handler) SaveProfile(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var req dto.ProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	if err := validators.Struct(&req); err != nil {
		return err
	}

	profile, err := h.settingsService.SaveProfile(c.Request().Context(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
