package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
	apperrors "nivesh/internal/errors"
	"nivesh/internal/pagination"
	"nivesh/internal/services"
)

// AssetHandler handles asset record requests.
type AssetHandler struct {
	assetService services.AssetServicer
	auditService services.AuditServicer
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService, auditService: auditService}
}

// CreateAssetRequest represents the request payload for recording an asset lot.
// When total_invested or current_value are omitted they are derived from
// quantity and the matching price.
type CreateAssetRequest struct {
	PortfolioID   *string          `json:"portfolio_id" binding:"omitempty,uuid"`
	AccountID     *string          `json:"account_id" binding:"omitempty,uuid"`
	Symbol        string           `json:"symbol" binding:"max=32"`
	Name          string           `json:"name" binding:"max=200"`
	AssetType     string           `json:"asset_type" binding:"required,asset_type_key"`
	Quantity      decimal.Decimal  `json:"quantity" swaggertype:"string"`
	PurchasePrice decimal.Decimal  `json:"purchase_price" swaggertype:"string"`
	CurrentPrice  decimal.Decimal  `json:"current_price" swaggertype:"string"`
	TotalInvested *decimal.Decimal `json:"total_invested" swaggertype:"string"`
	CurrentValue  *decimal.Decimal `json:"current_value" swaggertype:"string"`
	Currency      string           `json:"currency" binding:"omitempty,currency_code"`
}

// CreateAsset handles recording a new asset lot.
// @Summary     Record an asset
// @Description Record one holding lot, optionally inside a portfolio and linked to a cash account
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateAssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio or account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	asset, err := h.assetService.CreateAsset(c.Request.Context(), userID, services.AssetInput{
		PortfolioID:   req.PortfolioID,
		AccountID:     req.AccountID,
		Symbol:        req.Symbol,
		Name:          req.Name,
		AssetType:     req.AssetType,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
		CurrentPrice:  req.CurrentPrice,
		TotalInvested: req.TotalInvested,
		CurrentValue:  req.CurrentValue,
		Currency:      currency.Code(req.Currency),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ASSET", "asset", asset.ID, c.ClientIP(),
		map[string]any{"symbol": asset.Symbol, "asset_type": asset.AssetType, "current_value": asset.CurrentValue.String()})

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// ListAssets handles listing the user's assets.
// @Summary     List assets
// @Description Get a paginated list of asset lots, optionally limited to one portfolio
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       portfolio_id query string false "Portfolio ID"
// @Param       page         query int    false "Page number (default 1)"
// @Param       page_size    query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Paginated assets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets [get]
func (h *AssetHandler) ListAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.assetService.ListAssets(c.Request.Context(), userID, optionalQuery(c, "portfolio_id"), page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAsset handles fetching one asset.
// @Summary     Get an asset
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.Asset "Asset"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAsset(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset handles deleting one asset.
// @Summary     Delete an asset
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} map[string]string "Asset deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.assetService.DeleteAsset(c.Request.Context(), userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ASSET", "asset", id, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}
