package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"nivesh/internal/currency"
	apperrors "nivesh/internal/errors"
	"nivesh/internal/services"
	"nivesh/internal/valuation"
)

// DashboardHandler serves the computed valuation views.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// HoldingsResponse is the grouped holdings view.
type HoldingsResponse struct {
	Scope         string                     `json:"scope"`
	Currency      currency.Code              `json:"currency"`
	RateAsOf      *time.Time                 `json:"rate_as_of,omitempty"`
	StaleHoldings int                        `json:"stale_holdings"`
	Holdings      []valuation.GroupedHolding `json:"holdings"`
}

// AllocationResponse is the category allocation view.
type AllocationResponse struct {
	Scope      string                     `json:"scope"`
	CashPolicy string                     `json:"cash_policy"`
	RateAsOf   *time.Time                 `json:"rate_as_of,omitempty"`
	Allocation *valuation.Allocation      `json:"allocation"`
	Categories []valuation.CategoryBucket `json:"categories"`
}

// ViewResponse is the drill-down navigator state.
type ViewResponse struct {
	Scope    string              `json:"scope"`
	RateAsOf *time.Time          `json:"rate_as_of,omitempty"`
	View     valuation.ViewState `json:"view"`
}

func parseDashboardQuery(c *gin.Context) (services.DashboardQuery, error) {
	q := services.DashboardQuery{PortfolioID: optionalQuery(c, "portfolio_id")}

	if v := c.Query("currency"); v != "" {
		code, err := currency.ParseCode(v)
		if err != nil {
			return q, apperrors.ErrInvalidCurrency
		}
		q.Currency = code
	}

	if v := c.Query("policy"); v != "" {
		p, ok := valuation.PolicyByName(v)
		if !ok {
			return q, apperrors.WithMessage(apperrors.ErrInvalidInput, "policy must be 'separate' or 'merged'")
		}
		q.Policy = &p
	}

	switch v := strings.ToLower(c.Query("sort")); v {
	case "":
	case string(valuation.SortByValue), string(valuation.SortByGain), string(valuation.SortByName):
		q.Sort = valuation.SortOrder(v)
	default:
		return q, apperrors.WithMessage(apperrors.ErrInvalidInput, "sort must be 'value', 'gain' or 'name'")
	}
	return q, nil
}

func (h *DashboardHandler) compute(c *gin.Context) (*valuation.Result, bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	q, err := parseDashboardQuery(c)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	res, err := h.dashboardService.Compute(c.Request.Context(), userID, q)
	if err != nil {
		respondWithError(c, err)
		return nil, false
	}
	return res, true
}

// Holdings handles the grouped holdings view.
// @Summary     Grouped holdings
// @Description Holdings grouped by symbol with totals, gain/loss and display-currency values
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       portfolio_id query string false "Portfolio ID (all portfolios when omitted)"
// @Param       currency     query string false "Display currency (INR or USD)"
// @Param       sort         query string false "Sort order (value, gain, name)"
// @Success     200 {object} HoldingsResponse "Grouped holdings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Portfolio selection changed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/holdings [get]
func (h *DashboardHandler) Holdings(c *gin.Context) {
	res, ok := h.compute(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, HoldingsResponse{
		Scope:         res.Scope,
		Currency:      res.Currency,
		RateAsOf:      res.RateAsOf,
		StaleHoldings: res.StaleHoldings,
		Holdings:      res.Holdings,
	})
}

// Allocation handles the category allocation view.
// @Summary     Allocation by category
// @Description Category and type totals with percentages; cash accounts are placed by the cash policy
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       portfolio_id query string false "Portfolio ID (all portfolios when omitted)"
// @Param       currency     query string false "Display currency (INR or USD)"
// @Param       policy       query string false "Cash policy (separate, merged)"
// @Success     200 {object} AllocationResponse "Allocation"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Portfolio selection changed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/allocation [get]
func (h *DashboardHandler) Allocation(c *gin.Context) {
	res, ok := h.compute(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, AllocationResponse{
		Scope:      res.Scope,
		CashPolicy: res.Policy,
		RateAsOf:   res.RateAsOf,
		Allocation: res.Allocation,
		Categories: res.Allocation.CategoryRows(),
	})
}

// View handles the drill-down view. With a category it shows that
// category's types; an unknown or cash-only category stays at the top level.
// @Summary     Drill-down view
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Param       portfolio_id query string false "Portfolio ID (all portfolios when omitted)"
// @Param       currency     query string false "Display currency (INR or USD)"
// @Param       policy       query string false "Cash policy (separate, merged)"
// @Param       category     query string false "Category to drill into"
// @Success     200 {object} ViewResponse "View state"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "Portfolio selection changed"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/view [get]
func (h *DashboardHandler) View(c *gin.Context) {
	res, ok := h.compute(c)
	if !ok {
		return
	}

	nav := valuation.NewNavigator()
	if category := c.Query("category"); category != "" {
		nav.SelectCategory(res.Allocation, category)
	}

	c.JSON(http.StatusOK, ViewResponse{
		Scope:    res.Scope,
		RateAsOf: res.RateAsOf,
		View:     nav.View(res.Allocation),
	})
}
