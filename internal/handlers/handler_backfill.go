package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type backfillHandler struct {
	backfillService portssvc.BackfillSvc
	defaultPause    time.Duration
}

func registerBackfillRoutes(rg *gin.RouterGroup, backfillService portssvc.BackfillSvc, defaultPause time.Duration) {
	h := &backfillHandler{backfillService: backfillService, defaultPause: defaultPause}
	rg.POST("/backfill", h.runBackfill)
}

// runBackfill godoc
// @Summary Backfill EUR amounts
// @Description Converts stored records that lack an EUR amount (or all of them with force). Runs as a dry run unless dryRun is false.
// @Tags backfill
// @Accept  json
// @Produce  json
// @Param   options body dto.BackfillRequest false "Backfill options"
// @Success 200 {object} domain.BackfillReport
// @Failure 400 {object} map[string]string "Invalid options"
// @Failure 500 {object} map[string]string "Backfill aborted"
// @Router /backfill [post]
func (h *backfillHandler) runBackfill(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.BackfillRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	opts, err := req.ToBackfillOptions(h.defaultPause)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.backfillService.RunBackfill(c.Request.Context(), opts)
	if err != nil {
		logger.Error("Backfill aborted", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Backfill aborted", "report": report})
		return
	}
	c.JSON(http.StatusOK, report)
}
