package restapi

import (
	"net/http"
	"time"

	"nft_staker/internal/app/port"
	"nft_staker/internal/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const swaggerSpecRoute = "/docs/swagger.yaml"

// SetupRouter wires middleware and routes and returns the gin engine.
func SetupRouter(h *Handler, cfgProvider port.ConfigProvider, zapLogger *zap.Logger) *gin.Engine {
	cfg := cfgProvider.GetConfig()
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowOrigins
	if len(cfg.CORS.AllowOrigins) == 1 && cfg.CORS.AllowOrigins[0] == "*" {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/wallet", h.GetWallet)
		v1.POST("/wallet/connect", h.ConnectWallet)
		v1.POST("/wallet/disconnect", h.DisconnectWallet)

		v1.GET("/mint", h.GetMint)
		v1.POST("/mint/claim", h.Claim)

		v1.GET("/stake", h.GetStake)
		v1.POST("/stake/:tokenId", h.Stake)
		v1.POST("/stake/:tokenId/withdraw", h.Withdraw)

		v1.POST("/rewards/claim", h.ClaimRewards)

		v1.GET("/activity", h.ListActivity)
	}

	if cfg.Swagger.Enabled {
		router.StaticFile(swaggerSpecRoute, cfg.Swagger.SpecPath)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL(swaggerSpecRoute)))
		zapLogger.Info("Swagger UI enabled", zap.String("path", "/swagger/index.html"), zap.String("spec", cfg.Swagger.SpecPath))
	}

	return router
}

// ZapLoggerMiddleware writes one access log line per request.
func ZapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			logger.Error("HTTP request", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		logger.Info("HTTP request", fields...)
	}
}
