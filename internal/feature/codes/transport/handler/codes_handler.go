// Package handler exposes the codes feature over HTTP.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"twse_codes/internal/feature/codes/domain"
	"twse_codes/internal/feature/codes/domain/entity"
	"twse_codes/internal/feature/codes/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// CodesUsecase reads the persisted code snapshot.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type CodesUsecase interface {
	Get(ctx context.Context, details bool, category entity.Category) ([]entity.CodeRecord, error)
}

// CodesHandler handles read requests for the persisted code snapshot.
type CodesHandler struct {
	uc CodesUsecase
}

// NewCodesHandler creates a new CodesHandler.
func NewCodesHandler(uc CodesUsecase) *CodesHandler {
	return &CodesHandler{uc: uc}
}

// List serves GET /codes. Query parameters: category (TWSE, OTC or FUTURE,
// empty for all) and details (default true). With details off only code,
// name and category are returned per record.
func (h *CodesHandler) List(c *gin.Context) {
	details, err := strconv.ParseBool(c.DefaultQuery("details", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "details must be a boolean"})
		return
	}
	category, ok := entity.ParseCategory(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrUnknownCategory.Error()})
		return
	}

	records, err := h.uc.Get(c.Request.Context(), details, category)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoSnapshot):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUnknownCategory):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if !details {
		out := make([]dto.CodeItem, 0, len(records))
		for _, r := range records {
			out = append(out, dto.CodeItem{Code: r.Code, Name: r.Name, Category: string(r.Category)})
		}
		c.JSON(http.StatusOK, out)
		return
	}

	out := make([]dto.CodeDetail, 0, len(records))
	for _, r := range records {
		out = append(out, dto.CodeDetail{
			Code:         r.Code,
			Name:         r.Name,
			Category:     string(r.Category),
			SecurityType: r.SecurityType,
			ISIN:         r.ISIN,
			ListingDate:  r.ListingDate,
			Market:       r.Market,
			Industry:     r.Industry,
			CFICode:      r.CFICode,
			Remark:       r.Remark,
		})
	}
	c.JSON(http.StatusOK, out)
}
