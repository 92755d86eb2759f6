package handler

import (
	"net/http"

	"github.com/TogetherPinz/TogetherPinz-BE/internal/model"
	"github.com/TogetherPinz/TogetherPinz-BE/internal/service"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc *service.TaskService
}

func NewTaskHandler(svc *service.TaskService) *TaskHandler {
	return &TaskHandler{svc: svc}
}

// Create godoc
// @Summary Create a task under a pin (members only)
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.TaskInfo
// @Router /api/pins/{pinId}/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	pinID, ok := pathID(c, "pinId")
	if !ok {
		return
	}

	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := GetAuthUser(c)
	info, err := h.svc.CreateTask(c.Request.Context(), user.ID, pinID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, info)
}

// List godoc
// @Summary List tasks of a pin (members only)
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.TaskInfo
// @Router /api/pins/{pinId}/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	pinID, ok := pathID(c, "pinId")
	if !ok {
		return
	}

	user := GetAuthUser(c)
	infos, err := h.svc.ListTasks(c.Request.Context(), user.ID, pinID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, infos)
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.TaskInfo
// @Router /api/tasks/{taskId} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	var req model.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := GetAuthUser(c)
	info, err := h.svc.UpdateTask(c.Request.Context(), user.ID, taskID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Complete godoc
// @Summary Mark a task completed
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.TaskInfo
// @Router /api/tasks/{taskId}/complete [put]
func (h *TaskHandler) Complete(c *gin.Context) {
	h.setCompleted(c, true)
}

// Uncomplete godoc
// @Summary Mark a task not completed
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.TaskInfo
// @Router /api/tasks/{taskId}/uncomplete [put]
func (h *TaskHandler) Uncomplete(c *gin.Context) {
	h.setCompleted(c, false)
}

func (h *TaskHandler) setCompleted(c *gin.Context, completed bool) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	user := GetAuthUser(c)
	info, err := h.svc.SetCompleted(c.Request.Context(), user.ID, taskID, completed)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// Delete godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H
// @Router /api/tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	user := GetAuthUser(c)
	if err := h.svc.DeleteTask(c.Request.Context(), user.ID, taskID); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "할 일이 삭제되었습니다."})
}

// AddTimeInfo godoc
// @Summary Add a repeating time window to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} model.TaskTimeInfoDto
// @Router /api/tasks/{taskId}/times [post]
func (h *TaskHandler) AddTimeInfo(c *gin.Context) {
	taskID, ok := pathID(c, "taskId")
	if !ok {
		return
	}

	var req model.CreateTaskTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user := GetAuthUser(c)
	info, err := h.svc.AddTimeInfo(c.Request.Context(), user.ID, taskID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, model.TaskTimeInfoDto{
		ID:        info.ID,
		StartTime: info.StartTime,
		EndTime:   info.EndTime,
	})
}
