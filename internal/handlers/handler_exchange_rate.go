package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
	targetCurrency      string
	now                 func() time.Time
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade, targetCurrency string) *exchangeRateHandler {
	if targetCurrency = domain.NormalizeCurrencyCode(targetCurrency); targetCurrency == "" {
		targetCurrency = domain.DefaultTargetCurrency
	}
	return &exchangeRateHandler{
		exchangeRateService: ers,
		targetCurrency:      targetCurrency,
		now:                 time.Now,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade, targetCurrency string) {
	h := newExchangeRateHandler(exchangeRateService, targetCurrency)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.POST("", h.createExchangeRate)
		exchangeRates.GET("/:currency", h.getExchangeRate)
		exchangeRates.GET("/:currency/latest", h.getLatestExchangeRate)
	}
}

// createExchangeRate godoc
// @Summary Store an exchange rate
// @Description Stores (or overwrites) the rate of a currency against EUR for one date
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to store exchange rate"
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	logger.Info("Received request to store exchange rate",
		slog.String("currency", req.Currency),
		slog.String("date", req.Date),
		slog.String("rate", req.Rate.String()),
	)

	stored, err := h.exchangeRateService.StoreRate(c.Request.Context(), req.Currency, date, req.Rate)
	if err != nil {
		respondError(c, logger, err, "Failed to store exchange rate")
		return
	}

	logger.Info("Exchange rate stored successfully", slog.String("rate_id", stored.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(stored))
}

// getExchangeRate godoc
// @Summary Resolve an exchange rate
// @Description Resolves the rate of a currency against EUR for a date, fetching from the ECB and falling back to the latest earlier business day
// @Tags exchange rates
// @Produce  json
// @Param   currency path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ResolvedRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code or date"
// @Failure 404 {object} map[string]string "No rate available"
// @Failure 500 {object} map[string]string "Failed to resolve exchange rate"
// @Router /exchange-rates/{currency} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	currency := domain.NormalizeCurrencyCode(c.Param("currency"))
	if !domain.IsCurrencyCode(currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency code must be 3 letters"})
		return
	}
	var params dto.GetExchangeRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	date, err := dateOrToday(params.Date, h.now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	logger = logger.With(slog.String("currency", currency), slog.String("date", domain.FormatDate(date)))
	rate, ok, err := h.exchangeRateService.GetRate(c.Request.Context(), currency, date)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve exchange rate")
		return
	}
	if !ok {
		logger.Info("No exchange rate available")
		c.JSON(http.StatusNotFound, gin.H{"error": "No exchange rate available for " + currency + " on " + domain.FormatDate(date)})
		return
	}

	c.JSON(http.StatusOK, dto.ResolvedRateResponse{
		Currency:      currency,
		ToCurrency:    h.targetCurrency,
		RequestedDate: domain.FormatDate(date),
		Rate:          rate,
	})
}

// getLatestExchangeRate godoc
// @Summary Latest stored exchange rate
// @Description Returns the newest stored rate dated on or before the given date, without contacting the ECB
// @Tags exchange rates
// @Produce  json
// @Param   currency path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code or date"
// @Failure 404 {object} map[string]string "Exchange rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /exchange-rates/{currency}/latest [get]
func (h *exchangeRateHandler) getLatestExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.GetExchangeRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	date, err := dateOrToday(params.Date, h.now)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	rate, err := h.exchangeRateService.LatestRateOnOrBefore(c.Request.Context(), c.Param("currency"), date)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve exchange rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary List stored exchange rates
// @Description Lists stored rates newest first with token pagination
// @Tags exchange rates
// @Produce  json
// @Param   currency query string false "Currency Code"
// @Param   from query string false "Earliest date (YYYY-MM-DD)"
// @Param   to query string false "Latest date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" minimum(1) maximum(500)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, resp)
}
