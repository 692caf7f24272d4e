package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contaluz/internal/domain"
	"contaluz/internal/handler"
	"contaluz/internal/middleware"
	"contaluz/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	billH *handler.BillHandler,
	userH *handler.UserHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks and metrics
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Legacy processing endpoint. Auth is resolved inside the handler so the
	// flat error envelope stays exactly as originally published.
	r.Any("/api/process-bill", billH.ProcessLegacy)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.Refresh)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Bill routes
	bills := protected.Group("/bills")
	bills.POST("/process", billH.Process)
	bills.GET("", billH.List)
	bills.GET("/summary", billH.Summary)
	bills.GET("/export", billH.Export)
	bills.PATCH("/:id/paid", billH.TogglePaid)
	bills.PATCH("/:id/compensation-type", billH.ToggleCompensationType)
	bills.PUT("/:id/discount", billH.SetDiscount)
	bills.DELETE("/:id", billH.Delete)

	// User management
	users := protected.Group("/users")
	users.POST("", middleware.RequireRole(domain.RoleAdmin), userH.Create)

	return r
}
