package api

import (
	"estoque-console/config"
	_ "estoque-console/docs"
	"estoque-console/metrics"
	"estoque-console/routes"
	"estoque-console/services"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

// initApp builds the console once per function instance. Sale drafts live in
// instance memory, so drafts do not survive a cold start.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		logger := config.InitLogger(cfg)
		config.InitRedis(cfg)

		reg := metrics.NewRegistry()
		svc := services.New(
			services.NewDepsFromConfig(cfg, logger, config.RedisClient, reg),
			services.OptionsFromConfig(cfg),
		)

		router = routes.NewRouter(svc, reg, routes.RouterOptions{OriginURL: cfg.OriginURL, Logger: logger})
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
