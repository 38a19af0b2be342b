package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/api/swagger"
	"github.com/noah-isme/ssis-api/internal/handler"
	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/internal/repository"
	"github.com/noah-isme/ssis-api/internal/router"
	"github.com/noah-isme/ssis-api/internal/service"
	"github.com/noah-isme/ssis-api/pkg/config"
	"github.com/noah-isme/ssis-api/pkg/database"
	"github.com/noah-isme/ssis-api/pkg/logger"
)

// @title SSIS API
// @version 1.0.0
// @description Student, program and college records with token authentication.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	swagger.SwaggerInfo.BasePath = cfg.APIPrefix

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var metrics *service.MetricsService
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
		metricsHandler = metrics.Handler()
	}

	validate := service.NewValidator()

	studentRepo := repository.NewStudentRepository(db, metrics)
	programRepo := repository.NewProgramRepository(db, metrics)
	collegeRepo := repository.NewCollegeRepository(db, metrics)
	userRepo := repository.NewUserRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	programSvc := service.NewProgramService(programRepo, validate, logr)
	collegeSvc := service.NewCollegeService(collegeRepo, validate, logr)

	engine := router.New(router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		Logger:         logr,
		Metrics:        metrics,
	}, router.Handlers{
		Students: handler.NewStudentHandler(studentSvc),
		Programs: handler.NewResourceHandler[models.Program](programSvc, "code", "college"),
		Colleges: handler.NewResourceHandler[models.College](collegeSvc, "code"),
		Auth:     handler.NewAuthHandler(authSvc),
		Health:   handler.NewHealthHandler(db, metricsHandler, logr),
		Tokens:   authSvc,
	})

	if err := serve(engine, cfg.Port, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func serve(engine http.Handler, port int, logr *zap.Logger) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case sig := <-signals:
		logr.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
