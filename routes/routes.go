package routes

import (
	"estoque-console/controllers"
	"estoque-console/metrics"
	"estoque-console/middleware"
	"estoque-console/services"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

type RouterOptions struct {
	OriginURL string
	Logger    *zap.Logger
}

func SetupRoutes(router *gin.Engine, svc *services.Services, reg *metrics.Registry) {
	controllers.RegisterValidators()

	authCtrl := &controllers.AuthController{Auth: svc.Auth}
	productCtrl := &controllers.ProductController{Catalog: svc.Catalog}
	saleCtrl := &controllers.SaleController{Sales: svc.Sales}
	orderCtrl := &controllers.OrderController{Orders: svc.Orders}
	dashboardCtrl := &controllers.DashboardController{Dashboard: svc.Dashboard}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(reg.Handler()))

	router.POST("/auth/login", authCtrl.Login)

	api := router.Group("/api")
	api.GET("/categorias", productCtrl.Categories)

	auth := api.Group("/")
	auth.Use(middleware.AuthMiddleware(svc.Auth))
	{
		auth.GET("/dashboard", dashboardCtrl.Get)

		auth.GET("/produtos", productCtrl.List)
		auth.POST("/produtos", productCtrl.Create)
		auth.PUT("/produtos/:id", productCtrl.Update)
		auth.DELETE("/produtos/:id", productCtrl.Delete)

		auth.POST("/vendas/rascunhos", saleCtrl.Open)
		auth.GET("/vendas/rascunhos/:id", saleCtrl.Get)
		auth.DELETE("/vendas/rascunhos/:id", saleCtrl.Close)
		auth.POST("/vendas/rascunhos/:id/itens", saleCtrl.AddLine)
		auth.DELETE("/vendas/rascunhos/:id/itens/:produtoId", saleCtrl.RemoveLine)
		auth.POST("/vendas/rascunhos/:id/finalizar", saleCtrl.Submit)

		auth.GET("/pedidos", orderCtrl.List)
		auth.GET("/pedidos/:id", orderCtrl.Get)
	}
}

// NewRouter builds the engine with the console's middleware stack and routes.
func NewRouter(svc *services.Services, reg *metrics.Registry, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.Logger != nil {
		router.Use(middleware.RequestLogger(opts.Logger, reg))
	}
	router.Use(middleware.CORSMiddleware(opts.OriginURL))

	SetupRoutes(router, svc, reg)
	return router
}
