package serverApp

import (
	"net/http"

	config "topup-store/configs"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/middleware"
	"topup-store/internal/repository"

	adminHandler "topup-store/internal/handler/admin"
	catalogHandler "topup-store/internal/handler/catalog"
	checkoutHandler "topup-store/internal/handler/checkout"
	orderHandler "topup-store/internal/handler/order"
	adminService "topup-store/internal/service/admin"
	catalogService "topup-store/internal/service/catalog"
	checkoutService "topup-store/internal/service/checkout"
	orderService "topup-store/internal/service/order"

	"github.com/gin-gonic/gin"
)

// Setup initializes the HTTP server with middleware and routes
func Setup(engine *gin.Engine, payload *config.SetupServerDto) {
	InitMiddleware(engine, payload.Env.CorsOrigins)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  http.StatusOK,
			"service": Health(payload),
		})
	})

	e := engine.Group(BasePath())
	InitRoutes(e, payload)
}

// BasePath returns the base API path
func BasePath() string {
	return "/api"
}

// InitMiddleware initializes global middleware
func InitMiddleware(e *gin.Engine, corsOrigins []string) {
	e.Use(middleware.CorsMiddleware(corsOrigins))
	e.Use(middleware.RequestInit())
	e.Use(middleware.ResponseInit())
}

// Health reports each backing service as healthy or unhealthy.
func Health(payload *config.SetupServerDto) gin.H {
	status := func(ok bool) gin.H {
		if ok {
			return gin.H{"status": "healthy"}
		}
		return gin.H{"status": "unhealthy"}
	}

	return gin.H{
		"database": status(payload.Db != nil && !payload.Db.IsCloseConnection()),
		"redis":    status(payload.Rds != nil && payload.Rds.Ping() == nil),
		"rabbitmq": status(payload.Rb != nil && !payload.Rb.IsClosed()),
		"storage":  status(payload.S3 != nil),
		"ai":       status(payload.Ai.Enabled()),
	}
}

func newOrderService(payload *config.SetupServerDto, rp repository.IRepository) orderService.IService {
	return orderService.NewService(*payload.Ctx, rp, orderService.Options{
		Redis:     payload.Rds,
		Publisher: payload.Publisher,
		Reviewer:  payload.Ai,
		S3:        payload.S3,
		HTTP: helper.NewHTTPClient(&helper.HTTPClientConfig{
			RequestTimeout: 30,
			MaxBodyBytes:   payload.Env.MaxReceiptBytes(),
		}),
	})
}

func InitRoutes(e *gin.RouterGroup, payload *config.SetupServerDto) {
	ctx := *payload.Ctx
	env := payload.Env

	// setup repo
	rp := repository.NewRepository(payload.Db)

	// === Orders ===
	OrderService := newOrderService(payload, rp)
	OrderHandler := orderHandler.NewHandler(ctx, OrderService)
	OrderHandler.NewRoutes(e)

	// === Catalog ===
	CatalogService := catalogService.NewService(ctx, rp, nil)
	CatalogHandler := catalogHandler.NewHandler(ctx, CatalogService)
	CatalogHandler.NewRoutes(e)

	// === Checkout ===
	CheckoutService := checkoutService.NewService(ctx, rp, checkoutService.Options{
		Store:          payload.Rds,
		Orders:         OrderService,
		Uploader:       checkoutService.NewS3ReceiptUploader(payload.S3, env.MaxReceiptBytes()),
		Currency:       env.Currency,
		Mode:           env.OrderMode,
		WhatsAppNumber: env.WhatsAppPhone,
		SessionTTL:     env.SessionTTL(),
		WAKey:          payload.WAKey,
	})
	CheckoutHandler := checkoutHandler.NewHandler(ctx, CheckoutService, env.MaxReceiptBytes())
	CheckoutHandler.NewRoutes(e)

	// === Admin ===
	AdminService := adminService.NewService(ctx, env.AdminEmail, env.AdminPassword)
	AdminHandler := adminHandler.NewHandler(ctx, AdminService)
	AdminHandler.NewRoutes(e)
}
