package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/taskflow/taskflow/internal/tasks/application/commands"
	"github.com/taskflow/taskflow/internal/tasks/application/queries"
	"github.com/taskflow/taskflow/internal/tasks/domain/task"
)

// TaskHandler handles task API requests.
type TaskHandler struct {
	createTask *commands.CreateTaskHandler
	updateTask *commands.UpdateTaskHandler
	toggleTask *commands.ToggleTaskHandler
	deleteTask *commands.DeleteTaskHandler
	listTasks  *queries.ListTasksHandler
	getTask    *queries.GetTaskHandler
	logger     *slog.Logger
}

// TaskHandlerConfig holds dependencies for the task handler.
type TaskHandlerConfig struct {
	CreateTask *commands.CreateTaskHandler
	UpdateTask *commands.UpdateTaskHandler
	ToggleTask *commands.ToggleTaskHandler
	DeleteTask *commands.DeleteTaskHandler
	ListTasks  *queries.ListTasksHandler
	GetTask    *queries.GetTaskHandler
	Logger     *slog.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(cfg TaskHandlerConfig) *TaskHandler {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &TaskHandler{
		createTask: cfg.CreateTask,
		updateTask: cfg.UpdateTask,
		toggleTask: cfg.ToggleTask,
		deleteTask: cfg.DeleteTask,
		listTasks:  cfg.ListTasks,
		getTask:    cfg.GetTask,
		logger:     cfg.Logger,
	}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// Create handles POST /api/v1/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	created, err := h.createTask.Handle(r.Context(), commands.CreateTaskCommand{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, queries.ToDTO(created))
}

// List handles GET /api/v1/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	tasks, err := h.listTasks.Handle(r.Context(), queries.ListTasksQuery{OwnerID: ownerID})
	if err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

// Get handles GET /api/v1/tasks/{taskID}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(r.PathValue("taskID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	dto, err := h.getTask.Handle(r.Context(), queries.GetTaskQuery{OwnerID: ownerID, TaskID: taskID})
	if err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto)
}

// Update handles PUT /api/v1/tasks/{taskID}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(r.PathValue("taskID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	updated, err := h.updateTask.Handle(r.Context(), commands.UpdateTaskCommand{
		OwnerID:     ownerID,
		TaskID:      taskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, queries.ToDTO(updated))
}

// Toggle handles POST /api/v1/tasks/{taskID}/toggle
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(r.PathValue("taskID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	toggled, err := h.toggleTask.Handle(r.Context(), commands.ToggleTaskCommand{OwnerID: ownerID, TaskID: taskID})
	if err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, queries.ToDTO(toggled))
}

// Delete handles DELETE /api/v1/tasks/{taskID}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	taskID, err := uuid.Parse(r.PathValue("taskID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Task not found")
		return
	}

	if err := h.deleteTask.Handle(r.Context(), commands.DeleteTaskCommand{OwnerID: ownerID, TaskID: taskID}); err != nil {
		h.respondTaskError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted"})
}

// respondTaskError maps application errors to HTTP responses. Missing
// and foreign tasks share the same 404 so ownership is never leaked.
func (h *TaskHandler) respondTaskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, task.ErrEmptyTitle), errors.Is(err, task.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, task.ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "Task not found")
	default:
		h.logger.ErrorContext(r.Context(), "task request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
