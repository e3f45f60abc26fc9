package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"nivesh/internal/models"
	"nivesh/internal/pagination"
)

func setupAuditRouter(handler *AuditHandler) *gin.Engine {
	r := gin.New()
	r.GET("/audit-logs", injectUserID(testUserID), handler.ListEntries)
	return r
}

func TestAuditHandler_ListEntries(t *testing.T) {
	t.Run("passes filter and page", func(t *testing.T) {
		var gotUser string
		var gotType *string
		var gotPage pagination.PageRequest
		audit := &mockAuditService{
			listEntriesFn: func(_ context.Context, userID string, resourceType *string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error) {
				gotUser, gotType, gotPage = userID, resourceType, page
				result := pagination.NewPageResponse([]models.AuditLog{{Action: "DELETE_ASSET", ResourceType: "asset"}}, 2, 5, 6)
				return &result, nil
			},
		}
		r := setupAuditRouter(NewAuditHandler(audit))

		rec := doRequest(r, "GET", "/audit-logs?resource_type=asset&page=2&page_size=5", "")
		assertStatus(t, rec, http.StatusOK)

		if gotUser != testUserID {
			t.Errorf("expected user %s, got %s", testUserID, gotUser)
		}
		if gotType == nil || *gotType != "asset" {
			t.Errorf("expected resource type asset, got %v", gotType)
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("expected page 2 size 5, got %+v", gotPage)
		}
		result := parseJSON(t, rec)
		if result["total_pages"] != float64(2) {
			t.Errorf("expected 2 total pages, got %v", result["total_pages"])
		}
	})

	t.Run("rejects oversized page", func(t *testing.T) {
		r := setupAuditRouter(NewAuditHandler(&mockAuditService{}))

		rec := doRequest(r, "GET", "/audit-logs?page_size=500", "")
		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}
