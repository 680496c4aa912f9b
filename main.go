package main

import (
	"context"
	"errors"
	"estoque-console/config"
	_ "estoque-console/docs"
	"estoque-console/metrics"
	"estoque-console/routes"
	"estoque-console/services"
	"estoque-console/utils"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title Estoque Console API
// @version 1.0
// @description Back-office console for the inventory API: catalog, sales and dashboard.
// @host localhost:8090
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		hashPasswordCommand(os.Args[2:])
		return
	}

	cfg := config.LoadConfig()
	logger := config.InitLogger(cfg)
	defer config.SyncLogger()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.InitRedis(cfg)
	defer config.CloseRedis()

	reg := metrics.NewRegistry()
	svc := services.New(
		services.NewDepsFromConfig(cfg, logger, config.RedisClient, reg),
		services.OptionsFromConfig(cfg),
	)
	if !svc.Auth.Enabled() {
		logger.Warn("operator auth disabled, set OPERATOR_USER and OPERATOR_PASSWORD_HASH to enable it")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc.Sales.StartSweeper(ctx, time.Minute)

	router := routes.NewRouter(svc, reg, routes.RouterOptions{OriginURL: cfg.OriginURL, Logger: logger})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.AppEnv),
			zap.String("backend", cfg.BackendURL),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

// hashPasswordCommand prints the argon2 hash for OPERATOR_PASSWORD_HASH.
func hashPasswordCommand(args []string) {
	if len(args) != 1 {
		log.Fatal("usage: estoque-console hash-password <password>")
	}
	hash, err := utils.HashPassword(args[0])
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	fmt.Println(hash)
}
