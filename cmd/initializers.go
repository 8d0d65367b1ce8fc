package main

import (
	"fmt"
	"net/http"

	"anser/app/handler"
	"anser/app/router"
	"anser/internal/service"
	"anser/pkg/config"
	"anser/pkg/function"
	"anser/pkg/logger"
	mysqlstore "anser/pkg/store/mysql"
	redisstore "anser/pkg/store/redis"

	"github.com/gin-gonic/gin"
)

// initConfig initializes configuration
func (app *Application) initConfig() error {
	if err := config.Init(); err != nil {
		return err
	}
	app.config = config.GlobalConfig
	return nil
}

// initLogger initializes logging
func (app *Application) initLogger() error {
	if err := logger.Init(); err != nil {
		return err
	}
	app.registerCleanup(func() {
		logger.Sync()
		logger.InfoCtx(app.ctx, "Logging system has been closed")
	})
	return nil
}

// initMySQL initializes MySQL
func (app *Application) initMySQL() error {
	repo, err := mysqlstore.NewRepository(app.config.MySQL.DSN)
	if err != nil {
		return err
	}

	app.mysqlRepo = repo
	app.registerCleanup(func() {
		repo.Close()
		logger.InfoCtx(app.ctx, "MySQL connection has been closed")
	})

	return nil
}

// initRedis initializes Redis
func (app *Application) initRedis() error {
	client, err := redisstore.NewRedisClient(app.config)
	if err != nil {
		return err
	}

	app.redisClient = client
	app.systemInfo = redisstore.NewSystemInfoRepository(client)
	app.registerCleanup(func() {
		client.Close()
		logger.InfoCtx(app.ctx, "Redis connection has been closed")
	})

	return nil
}

// initFunctionRegistry initializes the controller's own function catalog.
func (app *Application) initFunctionRegistry() error {
	registry := function.NewRegistry(config.ControllerVersion)

	for _, desc := range builtinFunctions() {
		id, err := registry.Register(desc)
		if err != nil {
			return fmt.Errorf("failed to register builtin function %s: %w", desc.Name, err)
		}
		logger.InfoCtx(app.ctx, "registered builtin function %s as %s", desc.Name, id)
	}

	app.registry = registry
	return nil
}

// builtinFunctions returns the functions the controller provides without any
// worker: currently a single RTMP passthrough.
func builtinFunctions() []*function.Description {
	input, err := function.NewVideoIO("Source", "source", function.IOTypeRTMP, "any", "any")
	if err != nil {
		panic(err)
	}
	output, err := function.NewVideoOutput("Program", "program", function.IOTypeRTMP, "1080i50", "16:9")
	if err != nil {
		panic(err)
	}

	return []*function.Description{
		{
			Name:          "Passthrough",
			PackageName:   "anser-builtin",
			Author:        "anser",
			Version:       "1.0.0",
			TargetVersion: config.ControllerVersion,
			Main:          "passthrough",
			Config: []function.ConfigField{
				{
					Name: "Latency mode",
					ID:   "latencyMode",
					Type: function.ConfigTypeDropdown,
					Constraints: function.Constraint{
						Type:           function.ConstraintDropdown,
						AcceptedValues: []interface{}{"low", "normal", "safe"},
					},
				},
			},
			Inputs:  []*function.VideoIO{input},
			Outputs: []*function.VideoIO{output},
		},
	}
}

// initServices initializes service layer
func (app *Application) initServices() error {
	app.workerService = service.NewWorkerService(
		app.mysqlRepo.Worker,
		app.mysqlRepo.Heartbeat,
		app.mysqlRepo.Command,
		app.systemInfo,
		app.mysqlRepo.WorkerFunction,
		app.config.State,
	)

	app.jobService = service.NewJobService(
		app.mysqlRepo.Worker,
		app.mysqlRepo.WorkerFunction,
		app.mysqlRepo.Job,
		app.mysqlRepo.Command,
	)

	app.heartbeatService = service.NewHeartbeatService(
		app.workerService,
		app.jobService,
		app.mysqlRepo.Heartbeat,
		app.mysqlRepo.Command,
		app.systemInfo,
		app.mysqlRepo.WorkerFunction,
	)

	app.functionService = service.NewFunctionService(app.registry, app.mysqlRepo.WorkerFunction)

	return nil
}

// initHandlers initializes handler layer
func (app *Application) initHandlers() error {
	app.workerHandler = handler.NewWorkerHandler(app.workerService)
	app.heartbeatHandler = handler.NewHeartbeatHandler(app.heartbeatService)
	app.functionHandler = handler.NewFunctionHandler(app.functionService)
	app.jobHandler = handler.NewJobHandler(app.jobService)
	return nil
}

// initHTTPServer initializes HTTP server
func (app *Application) initHTTPServer() error {
	r := router.NewRouter(app.workerHandler, app.heartbeatHandler, app.functionHandler, app.jobHandler)

	// Set Gin mode
	gin.SetMode(app.config.Server.Mode)

	// Create Gin engine
	app.ginEngine = gin.New()
	app.ginEngine.Use(gin.Recovery())

	// Setup routes
	r.Setup(app.ginEngine)

	// Create HTTP server
	app.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.config.Server.Port),
		Handler: app.ginEngine,
	}

	return nil
}
