package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
	"nivesh/internal/services"
)

type mockPortfolioService struct {
	createPortfolioFn func(ctx context.Context, userID, name, description string) (*models.Portfolio, error)
	listPortfoliosFn  func(ctx context.Context, userID string) ([]models.Portfolio, error)
	getPortfolioFn    func(ctx context.Context, userID, portfolioID string) (*models.Portfolio, error)
}

func (m *mockPortfolioService) CreatePortfolio(ctx context.Context, userID, name, description string) (*models.Portfolio, error) {
	if m.createPortfolioFn != nil {
		return m.createPortfolioFn(ctx, userID, name, description)
	}
	return &models.Portfolio{}, nil
}

func (m *mockPortfolioService) ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	if m.listPortfoliosFn != nil {
		return m.listPortfoliosFn(ctx, userID)
	}
	return []models.Portfolio{}, nil
}

func (m *mockPortfolioService) GetPortfolio(ctx context.Context, userID, portfolioID string) (*models.Portfolio, error) {
	if m.getPortfolioFn != nil {
		return m.getPortfolioFn(ctx, userID, portfolioID)
	}
	return &models.Portfolio{}, nil
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

func setupPortfolioRouter(handler *PortfolioHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/portfolios", handler.CreatePortfolio)
	auth.GET("/portfolios", handler.ListPortfolios)
	auth.GET("/portfolios/:id", handler.GetPortfolio)
	return r
}

func TestPortfolioHandler_CreatePortfolio(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		svc := &mockPortfolioService{
			createPortfolioFn: func(_ context.Context, userID, name, description string) (*models.Portfolio, error) {
				return &models.Portfolio{Base: models.Base{ID: "p1"}, UserID: userID, Name: name, Description: description}, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc))

		rec := doRequest(r, "POST", "/portfolios", `{"name":"Retirement","description":"long term"}`)
		assertStatus(t, rec, http.StatusCreated)

		p := parseJSON(t, rec)["portfolio"].(map[string]interface{})
		if p["name"] != "Retirement" {
			t.Errorf("expected name Retirement, got %v", p["name"])
		}
		if p["user_id"] != testUserID {
			t.Errorf("expected user %s, got %v", testUserID, p["user_id"])
		}
	})

	t.Run("returns 400 without name", func(t *testing.T) {
		r := setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}))

		rec := doRequest(r, "POST", "/portfolios", `{"description":"x"}`)
		assertStatus(t, rec, http.StatusBadRequest)
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestPortfolioHandler_ListPortfolios(t *testing.T) {
	svc := &mockPortfolioService{
		listPortfoliosFn: func(context.Context, string) ([]models.Portfolio, error) {
			return []models.Portfolio{{Name: "A"}, {Name: "B"}}, nil
		},
	}
	r := setupPortfolioRouter(NewPortfolioHandler(svc))

	rec := doRequest(r, "GET", "/portfolios", "")
	assertStatus(t, rec, http.StatusOK)

	list := parseJSON(t, rec)["portfolios"].([]interface{})
	if len(list) != 2 {
		t.Errorf("expected 2 portfolios, got %d", len(list))
	}
}

func TestPortfolioHandler_GetPortfolio(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		svc := &mockPortfolioService{
			getPortfolioFn: func(context.Context, string, string) (*models.Portfolio, error) {
				return nil, apperrors.ErrPortfolioNotFound
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc))

		rec := doRequest(r, "GET", "/portfolios/nope", "")
		assertStatus(t, rec, http.StatusNotFound)
		assertErrorCode(t, parseJSON(t, rec), "PORTFOLIO_NOT_FOUND")
	})

	t.Run("passes path id", func(t *testing.T) {
		var gotID string
		svc := &mockPortfolioService{
			getPortfolioFn: func(_ context.Context, _ string, id string) (*models.Portfolio, error) {
				gotID = id
				return &models.Portfolio{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupPortfolioRouter(NewPortfolioHandler(svc))

		rec := doRequest(r, "GET", "/portfolios/p42", "")
		assertStatus(t, rec, http.StatusOK)
		if gotID != "p42" {
			t.Errorf("expected id p42, got %s", gotID)
		}
	})
}
