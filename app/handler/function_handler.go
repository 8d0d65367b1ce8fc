package handler

import (
	"net/http"

	"anser/internal/service"
	"anser/pkg/logger"

	"github.com/gin-gonic/gin"
)

// FunctionHandler serves function catalogs.
type FunctionHandler struct {
	functionService *service.FunctionService
}

// NewFunctionHandler creates a new function handler
func NewFunctionHandler(functionService *service.FunctionService) *FunctionHandler {
	return &FunctionHandler{functionService: functionService}
}

// ControllerFunctions returns the functions the controller itself provides.
func (h *FunctionHandler) ControllerFunctions(c *gin.Context) {
	c.JSON(http.StatusOK, h.functionService.ControllerFunctions())
}

// WorkerFunctions returns the catalog a worker last reported, empty if it
// never reported one.
func (h *FunctionHandler) WorkerFunctions(c *gin.Context) {
	workerID := c.Param("workerId")

	funcs, err := h.functionService.WorkerFunctions(c.Request.Context(), workerID)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to get worker functions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, funcs)
}
