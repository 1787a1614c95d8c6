package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"twse_codes/internal/feature/codes/usecase"

	"github.com/gin-gonic/gin"
)

// DownloadUsecase triggers a fresh snapshot download.
type DownloadUsecase interface {
	DownloadCodes(ctx context.Context, opts usecase.DownloadOptions) error
}

// DownloadHandler handles snapshot refresh requests.
type DownloadHandler struct {
	uc DownloadUsecase
}

// NewDownloadHandler creates a new DownloadHandler.
func NewDownloadHandler(uc DownloadUsecase) *DownloadHandler {
	return &DownloadHandler{uc: uc}
}

// Refresh serves POST /codes/refresh. By default only the SQL table the API
// reads from is rewritten; the to_csv and to_sql query parameters override
// the sink selection.
func (h *DownloadHandler) Refresh(c *gin.Context) {
	toCSV, err := strconv.ParseBool(c.DefaultQuery("to_csv", "false"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to_csv must be a boolean"})
		return
	}
	toSQL, err := strconv.ParseBool(c.DefaultQuery("to_sql", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to_sql must be a boolean"})
		return
	}

	opts := usecase.DownloadOptions{ToCSV: toCSV, ToSQL: toSQL}
	if err := h.uc.DownloadCodes(c.Request.Context(), opts); err != nil {
		if errors.Is(err, usecase.ErrNoSinkEnabled) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
