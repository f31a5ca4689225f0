package server

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redocMiddleware "github.com/go-openapi/runtime/middleware"
	"github.com/labchat/labchat-server/internal/middleware"
	"github.com/labchat/labchat-server/pkg/event"
	"github.com/labchat/labchat-server/pkg/health"
	"github.com/labchat/labchat-server/pkg/lab"
	"github.com/labchat/labchat-server/pkg/lookup"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func GetEngine(logger *slog.Logger, basePath string, labHandler lab.Handler, lookupHandler lookup.Handler, eventHandler event.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	redoc(router, basePath)

	router.GET("/health", health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	lab.Routes(router, labHandler)
	lookup.Routes(router, lookupHandler)
	event.Routes(router, eventHandler)

	return r
}

func redoc(router *gin.RouterGroup, basePath string) {
	router.StaticFile("/swagger.yaml", "./swagger/swagger.yaml")

	redocOpts := redocMiddleware.RedocOpts{
		BasePath: basePath,
		SpecURL:  "./swagger.yaml",
	}
	router.GET("/docs", func(c *gin.Context) {
		redocHandler := redocMiddleware.Redoc(redocOpts, nil)
		redocHandler.ServeHTTP(c.Writer, c.Request)
	})
}
