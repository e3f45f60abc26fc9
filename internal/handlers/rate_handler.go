package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
	"nivesh/internal/services"
)

// RateHandler serves and records the USD/INR exchange rate.
type RateHandler struct {
	rateService  services.RateServicer
	auditService services.AuditServicer
}

// NewRateHandler creates a new RateHandler.
func NewRateHandler(rateService services.RateServicer, auditService services.AuditServicer) *RateHandler {
	return &RateHandler{rateService: rateService, auditService: auditService}
}

// RateResponse is the current USD/INR rate.
type RateResponse struct {
	Base  currency.Code   `json:"base"`
	Quote currency.Code   `json:"quote"`
	Rate  decimal.Decimal `json:"rate" swaggertype:"string"`
	AsOf  time.Time       `json:"as_of"`
}

// RecordRateRequest represents a rate pushed by the pipeline.
type RecordRateRequest struct {
	Rate *decimal.Decimal `json:"rate" binding:"required" swaggertype:"string"`
	AsOf *time.Time       `json:"as_of"`
}

// GetUSDINR handles fetching the current rate.
// @Summary     Current USD/INR rate
// @Description Latest stored rate, refreshed from the forex source once it is older than the configured max age
// @Tags        rates
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} RateResponse "Rate"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     503 {object} ErrorResponse "No rate available"
// @Router      /rates/usd-inr [get]
func (h *RateHandler) GetUSDINR(c *gin.Context) {
	rate, err := h.rateService.CurrentRate(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rate": RateResponse{
		Base:  currency.USD,
		Quote: currency.INR,
		Rate:  rate.Value(),
		AsOf:  rate.AsOf(),
	}})
}

// RecordRate handles a rate pushed by the pipeline.
// @Summary     Push a USD/INR rate
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body RecordRateRequest true "Observed rate"
// @Success     201 {object} models.ExchangeRate "Rate stored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pipeline/rates [post]
func (h *RateHandler) RecordRate(c *gin.Context) {
	actor, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RecordRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asOf := time.Now().UTC()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}
	rate, err := currency.NewRate(*req.Rate, asOf)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	row, err := h.rateService.RecordRate(c.Request.Context(), rate, models.RateSourcePipeline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(actor, "RECORD_RATE", "exchange_rate", row.ID, c.ClientIP(),
		map[string]any{"rate": row.Rate.String(), "as_of": row.AsOf})

	c.JSON(http.StatusCreated, gin.H{"rate": row})
}
