// Package router assembles the gin engine: ambient middleware, system endpoints
// and the versioned resource and auth routes.
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/ssis-api/internal/handler"
	"github.com/noah-isme/ssis-api/internal/middleware"
	"github.com/noah-isme/ssis-api/internal/models"
	"github.com/noah-isme/ssis-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/ssis-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/ssis-api/pkg/middleware/requestid"
)

// Options configures the engine.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	// EnableDocs mounts Swagger UI at /docs.
	EnableDocs bool
	Logger     *zap.Logger
	Metrics    middleware.RequestObserver
}

// Handlers are the HTTP entry points served by the engine.
type Handlers struct {
	Students *handler.StudentHandler
	Programs *handler.ResourceHandler[models.Program]
	Colleges *handler.ResourceHandler[models.College]
	Auth     *handler.AuthHandler
	Health   *handler.HealthHandler
	Tokens   middleware.TokenValidator
}

// New builds the gin engine.
func New(opts Options, h Handlers) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api/v1"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", h.Health.Prometheus)
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := middleware.JWT(h.Tokens)
	api := r.Group(opts.APIPrefix)

	students := api.Group("/students")
	{
		students.GET("", h.Students.List)
		students.GET("/:id", h.Students.Get)
		students.POST("", requireAuth, h.Students.Create)
		students.PUT("/:id", requireAuth, h.Students.Update)
		students.DELETE("/:id", requireAuth, h.Students.Delete)
		students.PATCH("/:id/image", requireAuth, h.Students.UpdateImage)
		students.DELETE("/:id/image", requireAuth, h.Students.DeleteImage)
	}

	registerResource(api.Group("/programs"), h.Programs, requireAuth)
	registerResource(api.Group("/colleges"), h.Colleges, requireAuth)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.GET("/protected", requireAuth, h.Auth.Protected)
	}

	return r
}

func registerResource[T any](group *gin.RouterGroup, h *handler.ResourceHandler[T], requireAuth gin.HandlerFunc) {
	key := "/:" + h.Param()
	group.GET("", h.List)
	group.GET(key, h.Get)
	group.POST("", requireAuth, h.Create)
	group.PUT(key, requireAuth, h.Update)
	group.DELETE(key, requireAuth, h.Delete)
}
