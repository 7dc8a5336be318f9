package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// respondError maps err to a status code and writes it. Server errors hide
// the cause behind failMsg.
func respondError(c *gin.Context, logger *slog.Logger, err error, failMsg string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failMsg})
		return
	}
	logger.Warn(failMsg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}

// dateOrToday parses an optional YYYY-MM-DD value, defaulting to today (UTC).
func dateOrToday(raw string, now func() time.Time) (time.Time, error) {
	if raw == "" {
		return domain.NormalizeDate(now().UTC()), nil
	}
	return domain.ParseDate(raw)
}
