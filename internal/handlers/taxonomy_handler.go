package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/services"
)

// TaxonomyHandler handles asset type taxonomy requests.
type TaxonomyHandler struct {
	taxonomyService services.TaxonomyServicer
	auditService    services.AuditServicer
}

// NewTaxonomyHandler creates a new TaxonomyHandler.
func NewTaxonomyHandler(taxonomyService services.TaxonomyServicer, auditService services.AuditServicer) *TaxonomyHandler {
	return &TaxonomyHandler{taxonomyService: taxonomyService, auditService: auditService}
}

// UpsertAssetTypeRequest represents the request payload for defining an asset type.
type UpsertAssetTypeRequest struct {
	Category     string `json:"category" binding:"required,min=1,max=64"`
	DisplayLabel string `json:"display_label" binding:"max=64"`
}

// ListAssetTypes handles listing the taxonomy.
// @Summary     List asset types
// @Tags        taxonomy
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  models.AssetType "Asset types"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /asset-types [get]
func (h *TaxonomyHandler) ListAssetTypes(c *gin.Context) {
	types, err := h.taxonomyService.ListAssetTypes(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset_types": types})
}

// UpsertAssetType handles creating or replacing one asset type.
// @Summary     Define an asset type
// @Description Create or replace the category and label of an asset type
// @Tags        taxonomy
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       name    path string                 true "Asset type key"
// @Param       request body UpsertAssetTypeRequest true "Category and label"
// @Success     200 {object} models.AssetType "Asset type"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /asset-types/{name} [put]
func (h *TaxonomyHandler) UpsertAssetType(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpsertAssetTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	at, err := h.taxonomyService.UpsertAssetType(c.Request.Context(), c.Param("name"), req.Category, req.DisplayLabel)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPSERT_ASSET_TYPE", "asset_type", at.Name, c.ClientIP(),
		map[string]any{"category": at.Category, "display_label": at.DisplayLabel})

	c.JSON(http.StatusOK, gin.H{"asset_type": at})
}
