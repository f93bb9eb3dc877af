package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/avsivakumar/tada/internal/model"
	"github.com/avsivakumar/tada/internal/service"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	tasks     *service.TaskService
	reminders *service.ReminderService
}

func NewTaskHandler(tasks *service.TaskService, reminders *service.ReminderService) *TaskHandler {
	return &TaskHandler{tasks: tasks, reminders: reminders}
}

// List returns active tasks, optionally filtered.
// GET /api/tasks?q=...&status=pending|completed&priority=high|medium|low
func (h *TaskHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		tasks []model.Task
		err   error
	)
	if q := c.Query("q"); q != "" {
		tasks, err = h.tasks.SearchTasks(ctx, q)
	} else {
		tasks, err = h.tasks.ListTasks(ctx)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	tasks = filterTasks(tasks, c.Query("status"), c.Query("priority"))
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var input service.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Priority == "" {
		input.Priority = "medium"
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, err := h.tasks.GetTask(c.Request.Context(), id)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// PUT /api/tasks/:id
func (h *TaskHandler) Replace(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var input service.TaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.ReplaceTask(c.Request.Context(), id, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DELETE /api/tasks/:id — soft delete.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if err := h.tasks.DeleteTask(c.Request.Context(), id); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// PATCH /api/tasks/:id/toggle
func (h *TaskHandler) Toggle(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, err := h.tasks.ToggleCompletion(c.Request.Context(), id, time.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /api/tasks/:id/snooze {"minutes": 10}
func (h *TaskHandler) Snooze(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req struct {
		Minutes int `json:"minutes" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Snooze(c.Request.Context(), id, req.Minutes, time.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// POST /api/tasks/:id/dismiss
func (h *TaskHandler) Dismiss(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	task, err := h.tasks.Dismiss(c.Request.Context(), id, time.Now())
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// PATCH /api/tasks/:id/reschedule {"dueDate": "2025-11-01"}
func (h *TaskHandler) Reschedule(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req struct {
		DueDate string `json:"dueDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.tasks.Reschedule(c.Request.Context(), id, req.DueDate)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// GET /api/reminders/due — latest due-reminder snapshot.
func (h *TaskHandler) DueReminders(c *gin.Context) {
	due, err := h.reminders.Refresh(c.Request.Context(), time.Now())
	if err != nil {
		// Fall back to the last good snapshot instead of failing the read.
		due = h.reminders.Current()
	}
	c.JSON(http.StatusOK, gin.H{"reminders": due, "total": len(due)})
}

// GET /api/stats — aggregates over the current snapshot, templates excluded.
func (h *TaskHandler) Stats(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, service.ComputeStats(tasks, time.Now()))
}

func taskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return uint(id), true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
	case errors.Is(err, service.ErrTemplateNotCompletable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func filterTasks(tasks []model.Task, status, priority string) []model.Task {
	if status == "" && priority == "" {
		return tasks
	}
	out := tasks[:0]
	for _, t := range tasks {
		if status == "completed" && !t.Completed {
			continue
		}
		if status == "pending" && t.Completed {
			continue
		}
		if priority != "" && t.Priority != priority {
			continue
		}
		out = append(out, t)
	}
	return out
}
