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

type recordHandler struct {
	recordService portssvc.FinancialRecordSvcFacade
}

func registerRecordRoutes(rg *gin.RouterGroup, recordService portssvc.FinancialRecordSvcFacade) {
	h := &recordHandler{recordService: recordService}

	records := rg.Group("/records")
	{
		records.GET("", h.listRecords)
		records.POST("", h.createRecord)
		records.GET("/:recordID", h.getRecord)
		records.PUT("/:recordID", h.updateRecord)
	}

	otherIncomes := rg.Group("/other-incomes")
	{
		otherIncomes.POST("", h.createOtherIncome)
		otherIncomes.PUT("/:recordID", h.updateOtherIncome)
	}
}

// createRecord godoc
// @Summary Create a financial record
// @Description Creates an invoice, bill or other-income record. Other income is converted to EUR on save.
// @Tags records
// @Accept  json
// @Produce  json
// @Param   record body dto.SaveRecordRequest true "Record details"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create record"
// @Router /records [post]
func (h *recordHandler) createRecord(c *gin.Context) {
	h.create(c, "")
}

// createOtherIncome godoc
// @Summary Create an other-income record
// @Description Creates an other-income record and converts its amount to EUR. A missing rate leaves amountEURMinor unset.
// @Tags records
// @Accept  json
// @Produce  json
// @Param   record body dto.SaveRecordRequest true "Record details (kind is ignored)"
// @Success 201 {object} dto.RecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 500 {object} map[string]string "Failed to create record"
// @Router /other-incomes [post]
func (h *recordHandler) createOtherIncome(c *gin.Context) {
	h.create(c, domain.RecordKindOtherIncome)
}

func (h *recordHandler) create(c *gin.Context, forceKind domain.RecordKind) {
	logger := middleware.GetLoggerFromContext(c)
	req, ok := bindSaveRecord(c, forceKind)
	if !ok {
		return
	}

	record, err := h.recordService.CreateRecord(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "Failed to create record")
		return
	}
	logger.Info("Record created", slog.String("record_id", record.RecordID), slog.String("kind", string(record.Kind)))
	c.JSON(http.StatusCreated, dto.ToRecordResponse(record))
}

// updateRecord godoc
// @Summary Update a financial record
// @Description Replaces the fields of a record. Other income is reconverted to EUR on save.
// @Tags records
// @Accept  json
// @Produce  json
// @Param   recordID path string true "Record ID"
// @Param   record body dto.SaveRecordRequest true "Record details"
// @Success 200 {object} dto.RecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Failed to update record"
// @Router /records/{recordID} [put]
func (h *recordHandler) updateRecord(c *gin.Context) {
	h.update(c, "")
}

// updateOtherIncome godoc
// @Summary Update an other-income record
// @Description Replaces the fields of an other-income record and reconverts it to EUR
// @Tags records
// @Accept  json
// @Produce  json
// @Param   recordID path string true "Record ID"
// @Param   record body dto.SaveRecordRequest true "Record details (kind is ignored)"
// @Success 200 {object} dto.RecordResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Failed to update record"
// @Router /other-incomes/{recordID} [put]
func (h *recordHandler) updateOtherIncome(c *gin.Context) {
	h.update(c, domain.RecordKindOtherIncome)
}

func (h *recordHandler) update(c *gin.Context, forceKind domain.RecordKind) {
	logger := middleware.GetLoggerFromContext(c)
	recordID := c.Param("recordID")
	req, ok := bindSaveRecord(c, forceKind)
	if !ok {
		return
	}

	record, err := h.recordService.UpdateRecord(c.Request.Context(), recordID, req)
	if err != nil {
		respondError(c, logger.With(slog.String("record_id", recordID)), err, "Failed to update record")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

func bindSaveRecord(c *gin.Context, forceKind domain.RecordKind) (dto.SaveRecordRequest, bool) {
	var req dto.SaveRecordRequest
	if forceKind != "" {
		req.Kind = forceKind
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to bind JSON for record", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return req, false
	}
	if forceKind != "" {
		req.Kind = forceKind
	}
	return req, true
}

// getRecord godoc
// @Summary Get a financial record
// @Tags records
// @Produce  json
// @Param   recordID path string true "Record ID"
// @Success 200 {object} dto.RecordResponse
// @Failure 404 {object} map[string]string "Record not found"
// @Failure 500 {object} map[string]string "Failed to get record"
// @Router /records/{recordID} [get]
func (h *recordHandler) getRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	record, err := h.recordService.GetRecord(c.Request.Context(), c.Param("recordID"))
	if err != nil {
		respondError(c, logger, err, "Failed to get record")
		return
	}
	c.JSON(http.StatusOK, dto.ToRecordResponse(record))
}

// listRecords godoc
// @Summary List financial records
// @Description Lists records by date with token pagination, optionally only those still lacking an EUR amount
// @Tags records
// @Produce  json
// @Param   type query string false "invoice, bill or other_income"
// @Param   pending query bool false "Only records without an EUR amount"
// @Param   limit query int false "Page size" minimum(1) maximum(500)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListRecordsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list records"
// @Router /records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.recordService.ListRecords(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list records")
		return
	}
	c.JSON(http.StatusOK, resp)
}
