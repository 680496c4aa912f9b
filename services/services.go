package services

import (
	"context"
	"estoque-console/config"
	"estoque-console/metrics"
	"estoque-console/models"
	"estoque-console/repositories"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	Products  *repositories.ProductRepository
	Orders    *repositories.OrderRepository
	Dashboard *repositories.DashboardRepository
	Cache     *repositories.ProductCache
	Logger    *zap.Logger
	Metrics   *metrics.Registry
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

type Options struct {
	SaleDraftTTL time.Duration
	Auth         AuthConfig
}

type Services struct {
	Catalog   *CatalogService
	Sales     *SaleService
	Orders    *OrderService
	Dashboard *DashboardService
	Auth      *AuthService
}

// New builds the services and wires a completed sale to refresh order history
// and drop cached product lists.
func New(deps Deps, opts Options) *Services {
	svc := &Services{
		Catalog:   NewCatalogService(deps),
		Sales:     NewSaleService(deps, opts.SaleDraftTTL),
		Orders:    NewOrderService(deps),
		Dashboard: NewDashboardService(deps),
		Auth:      NewAuthService(opts.Auth),
	}

	svc.Sales.OnSuccess(func(ctx context.Context, _ *models.Order) {
		svc.Orders.MarkStale()
	})
	svc.Sales.OnSuccess(func(ctx context.Context, _ *models.Order) {
		svc.Catalog.Invalidate(context.WithoutCancel(ctx))
	})
	return svc
}

// NewDepsFromConfig wires the API client, repositories and cache for cfg.
// rdb may be nil, in which case product lists are not cached.
func NewDepsFromConfig(cfg *config.Config, logger *zap.Logger, rdb *redis.Client, reg *metrics.Registry) Deps {
	client := repositories.NewAPIClient(repositories.ClientOptions{
		BaseURL:          cfg.BackendURL,
		Timeout:          cfg.BackendTimeout,
		MaxResponseBytes: cfg.MaxResponseBytes,
		Metrics:          reg,
	})

	return Deps{
		Products:  repositories.NewProductRepository(client),
		Orders:    repositories.NewOrderRepository(client),
		Dashboard: repositories.NewDashboardRepository(client),
		Cache:     repositories.NewProductCache(rdb, cfg.CatalogCacheTTL, logger, reg),
		Logger:    logger,
		Metrics:   reg,
	}
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SaleDraftTTL: cfg.SaleDraftTTL,
		Auth: AuthConfig{
			OperatorUser:         cfg.OperatorUser,
			OperatorPasswordHash: cfg.OperatorPasswordHash,
			JWTSecret:            cfg.JWTSecret,
			JWTExpiry:            cfg.JWTExpiry,
		},
	}
}
