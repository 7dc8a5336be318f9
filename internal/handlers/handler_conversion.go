package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type conversionHandler struct {
	resolver portssvc.ExchangeRateResolverSvc
}

func registerConversionRoutes(rg *gin.RouterGroup, resolver portssvc.ExchangeRateResolverSvc) {
	h := &conversionHandler{resolver: resolver}
	rg.POST("/conversions", h.convert)
}

// convert godoc
// @Summary Convert an amount to EUR
// @Description Converts an amount in minor units into EUR minor units using the rate for the given date
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Amount to convert"
// @Success 200 {object} dto.ConvertResponse "converted is false when no rate was available"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to convert amount"
// @Router /conversions [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	currency := domain.NormalizeCurrencyCode(req.Currency)

	amount, ok, err := h.resolver.ConvertToEUR(c.Request.Context(), *req.AmountMinor, currency, date)
	if err != nil {
		respondError(c, logger, err, "Failed to convert amount")
		return
	}

	resp := dto.ConvertResponse{
		AmountMinor: *req.AmountMinor,
		Currency:    currency,
		Date:        domain.FormatDate(date),
		Converted:   ok,
	}
	if ok {
		resp.AmountEURMinor = &amount
	}
	c.JSON(http.StatusOK, resp)
}
