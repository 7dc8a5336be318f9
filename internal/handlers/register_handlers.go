package handlers

import (
	"net/http"

	"github.com/SscSPs/bookkeeping_app/cmd/docs"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// apiMiddleware is applied to the /api/v1 group only.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	apiMiddleware ...gin.HandlerFunc,
) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := dto.RegisterValidations(v); err != nil {
			panic(err)
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services, apiMiddleware)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	apiMiddleware []gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", apiMiddleware...)

	registerExchangeRateRoutes(v1, service.ExchangeRate, cfg.ECBTargetCurrency)
	registerConversionRoutes(v1, service.ExchangeRate)
	registerRecordRoutes(v1, service.Records)
	registerBackfillRoutes(v1, service.Backfill, cfg.BackfillPause)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
