package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"anser/internal/model"
	"anser/internal/service"
	"anser/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HeartbeatHandler receives worker heartbeats.
type HeartbeatHandler struct {
	heartbeatService *service.HeartbeatService
}

// NewHeartbeatHandler creates a new heartbeat handler
func NewHeartbeatHandler(heartbeatService *service.HeartbeatService) *HeartbeatHandler {
	return &HeartbeatHandler{heartbeatService: heartbeatService}
}

// AddHeartbeat handles POST /anser/heartbeat/:workerId. A body that is not
// exactly a heartbeat is rejected before any state changes. The response is
// empty when the worker has nothing to do, otherwise the pending command
// mailbox.
func (h *HeartbeatHandler) AddHeartbeat(c *gin.Context) {
	workerID := c.Param("workerId")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if !model.BodyIsHeartbeat(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body is not a heartbeat"})
		return
	}

	var hb model.Heartbeat
	if err := json.Unmarshal(body, &hb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed heartbeat"})
		return
	}

	resp, err := h.heartbeatService.AddHeartbeat(c.Request.Context(), workerID, &hb)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to handle heartbeat from %s: %v", workerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(resp.Commands) == 0 {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, resp)
}
