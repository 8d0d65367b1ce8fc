package router

import (
	"net/http"

	"anser/app/handler"
	"anser/app/middleware"
	"anser/pkg/config"

	"github.com/gin-gonic/gin"
)

// Router Router
type Router struct {
	workerHandler    *handler.WorkerHandler
	heartbeatHandler *handler.HeartbeatHandler
	functionHandler  *handler.FunctionHandler
	jobHandler       *handler.JobHandler
}

// NewRouter creates a new Router
func NewRouter(workerHandler *handler.WorkerHandler, heartbeatHandler *handler.HeartbeatHandler, functionHandler *handler.FunctionHandler, jobHandler *handler.JobHandler) *Router {
	return &Router{
		workerHandler:    workerHandler,
		heartbeatHandler: heartbeatHandler,
		functionHandler:  functionHandler,
		jobHandler:       jobHandler,
	}
}

// Setup sets up routes. Everything under /anser sits behind the auth and
// version gates; the root liveness probe does not.
func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.Recovery())
	engine.Use(middleware.Logger())

	// Liveness probe, ungated so load balancers don't need credentials.
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": config.ControllerVersion})
	})

	anser := engine.Group("/anser")
	anser.Use(middleware.Auth())
	anser.Use(middleware.VersionCheck(config.ControllerVersion))
	{
		// Lets callers probe their credentials and version without side effects.
		anser.GET("/auth/check", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "authorized"})
		})

		anser.GET("/workers", r.workerHandler.ListWorkers)
		anser.GET("/workers/status/:status", r.workerHandler.ListWorkersByStatus)
		anser.GET("/workers/:workerId/status", r.workerHandler.GetWorkerStatus)

		anser.GET("/heartbeats/:workerId", r.workerHandler.ListHeartbeats)
		anser.POST("/heartbeat/:workerId", r.heartbeatHandler.AddHeartbeat)

		anser.GET("/functions/anser", r.functionHandler.ControllerFunctions)
		anser.GET("/functions/:workerId", r.functionHandler.WorkerFunctions)

		anser.POST("/jobs/add/worker/:workerId", r.jobHandler.PlaceJob)
		anser.POST("/jobs/stop/:jobId", r.jobHandler.StopJob)
	}
}
