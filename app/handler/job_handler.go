package handler

import (
	"errors"
	"io"
	"net/http"

	"anser/internal/model"
	"anser/internal/service"
	"anser/pkg/logger"

	"github.com/gin-gonic/gin"
)

// JobHandler receives job placement and stop requests.
type JobHandler struct {
	jobService *service.JobService
}

// NewJobHandler creates a new job handler
func NewJobHandler(jobService *service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// PlaceJob handles POST /anser/jobs/add/worker/:workerId. Shape and video IO
// problems are 400s; placement failures the worker side is responsible for
// come back as a FAILED_TO_START body with status 200.
func (h *JobHandler) PlaceJob(c *gin.Context) {
	workerID := c.Param("workerId")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}
	if !model.BodyIsJobRunConfig(body) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body is not a job run config"})
		return
	}

	conf, err := model.ParseJobRunConfig(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.jobService.PlaceJob(c.Request.Context(), workerID, conf)
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to place job on %s: %v", workerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// StopJob handles POST /anser/jobs/stop/:jobId.
func (h *JobHandler) StopJob(c *gin.Context) {
	jobID := c.Param("jobId")

	resp, err := h.jobService.StopJob(c.Request.Context(), jobID)
	if errors.Is(err, service.ErrJobNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), "failed to stop job %s: %v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resp)
}
