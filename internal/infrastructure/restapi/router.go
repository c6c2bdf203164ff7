package restapi

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "roast_agent/internal/infrastructure/restapi/docs"
)

// RouterOptions configures the optional parts of the router.
type RouterOptions struct {
	AllowOrigins []string
	// MetricsHandler is mounted at MetricsPath when non-nil.
	MetricsHandler http.Handler
	MetricsPath    string
	// SwaggerPath mounts the API docs UI when non-empty.
	SwaggerPath string
}

// SetupRouter configures and returns the gin engine.
func SetupRouter(roastHandler *RoastHandler, logger *zap.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(ZapLoggerMiddleware(logger))
	router.Use(RecoveryMiddleware(logger))

	corsConfig := cors.DefaultConfig()
	if len(opts.AllowOrigins) == 0 || (len(opts.AllowOrigins) == 1 && opts.AllowOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.AllowOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	router.Use(cors.New(corsConfig))

	router.GET("/", roastHandler.IndexHandler)
	router.GET("/healthz", roastHandler.HealthHandler)

	api := router.Group("/api")
	{
		api.POST("/roast", roastHandler.PostRoastHandler)
	}

	if opts.MetricsHandler != nil {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, gin.WrapH(opts.MetricsHandler))
	}

	if opts.SwaggerPath != "" {
		router.GET(strings.TrimSuffix(opts.SwaggerPath, "/")+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return router
}
