package main

import (
	"context"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/eems-edu/exam-marking-service/internal/config"
	"github.com/eems-edu/exam-marking-service/internal/events"
	"github.com/eems-edu/exam-marking-service/internal/handlers"
	"github.com/eems-edu/exam-marking-service/internal/services"
	"github.com/eems-edu/exam-marking-service/internal/store"
	"github.com/eems-edu/exam-marking-service/internal/utils"
	"github.com/eems-edu/exam-marking-service/internal/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	st := store.Open(cfg.DataFile, logger)
	if cfg.SeedUsers {
		services.SeedDefaultUsers(st, logger)
	}
	if migrated := st.MigrateUserPasswords(services.HashPassword); migrated > 0 {
		logger.Info("migrated plaintext passwords", "count", migrated)
	}

	publisher := events.NewChannelPublisher("eems.events", utils.ToSlogLogger(logger))
	defer publisher.Close()

	ctx := context.Background()
	if err := events.StartAuditLog(ctx, publisher, utils.ToSlogLogger(logger)); err != nil {
		logger.LogError(err, "failed to start event audit log")
	}

	v := validator.New()
	serviceManager := services.NewServiceManager(st, publisher, v, logger, cfg.JWTSecret, cfg.TokenTTL)
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	handlerManager.SetupRoutes(router)

	logger.Info("starting exam marking service",
		"port", cfg.Port,
		"data_file", cfg.DataFile,
		"environment", cfg.Environment)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.LogError(err, "server exited")
		os.Exit(1)
	}
}
