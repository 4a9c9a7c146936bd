package handler

import (
	"OrientadorFP_Backend/internal/config"
	"OrientadorFP_Backend/internal/middleware"

	_ "OrientadorFP_Backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// NewRouter wires middleware and routes.
func NewRouter(h *Handler, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	router := gin.New()
	// nil trusts no proxy, so ClientIP is the peer address
	if err := router.SetTrustedProxies(cfg.Server.Proxies()); err != nil {
		logger.Error("invalid trusted proxies, ignoring X-Forwarded-For", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logger), middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	origins := cfg.Server.Origins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.RequestIDHeader)
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	modelLimit := h.limiter.Middleware()

	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.POST("/orientacion", modelLimit, h.Orientacion)
		api.GET("/orientaciones/:id", h.GetOrientacion)
		api.GET("/ciudades", h.Ciudades)
		api.GET("/ciudades/debug", h.CiudadesDebug)
		api.GET("/municipios", h.Municipios)
		api.GET("/centros", h.Centros)
	}

	api.POST("/admin/login", modelLimit, h.AdminLogin)
	admin := api.Group("/admin").Use(middleware.AdminAuth(h.issuer))
	{
		admin.POST("/reload", h.AdminReload)
		admin.GET("/orientaciones", h.AdminOrientaciones)
	}

	// each questionnaire on the socket is metered by h.limiter
	router.GET("/ws/orientacion", h.OrientacionStream)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
