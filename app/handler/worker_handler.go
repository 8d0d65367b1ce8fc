package handler

import (
	"net/http"

	"anser/internal/model"
	"anser/internal/service"
	"anser/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WorkerHandler serves worker fleet queries.
type WorkerHandler struct {
	workerService *service.WorkerService
}

// NewWorkerHandler creates a new worker handler
func NewWorkerHandler(workerService *service.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

// ListWorkers returns the IDs of every worker that ever heartbeated.
func (h *WorkerHandler) ListWorkers(c *gin.Context) {
	ids, err := h.workerService.GetAllWorkers(c.Request.Context())
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to list workers: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}

// ListWorkersByStatus returns the IDs of workers in the requested status.
// Only persisted statuses (online, offline) are addressable.
func (h *WorkerHandler) ListWorkersByStatus(c *gin.Context) {
	status, ok := model.ParseWorkerStatus(c.Param("status"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown worker status"})
		return
	}

	ids, err := h.workerService.GetWorkersOfStatus(c.Request.Context(), status)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to list workers by status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, ids)
}

// GetWorkerStatus returns a single worker's status, NOT_REGISTERED for an
// unknown ID.
func (h *WorkerHandler) GetWorkerStatus(c *gin.Context) {
	workerID := c.Param("workerId")

	status, err := h.workerService.GetWorkerStatus(c.Request.Context(), workerID)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to get worker status: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, model.WorkerStatusResponse{Status: status})
}

// ListHeartbeats returns a worker's full heartbeat history, oldest first.
func (h *WorkerHandler) ListHeartbeats(c *gin.Context) {
	workerID := c.Param("workerId")

	records, err := h.workerService.GetHeartbeats(c.Request.Context(), workerID)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to list heartbeats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []*model.HeartbeatRecord{}
	}
	c.JSON(http.StatusOK, records)
}
