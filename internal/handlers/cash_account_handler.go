package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
	apperrors "nivesh/internal/errors"
	"nivesh/internal/services"
	"nivesh/internal/valuation"
)

// CashAccountHandler handles bank, demat and crypto cash account requests.
type CashAccountHandler struct {
	accountService services.CashAccountServicer
	auditService   services.AuditServicer
}

// NewCashAccountHandler creates a new CashAccountHandler.
func NewCashAccountHandler(accountService services.CashAccountServicer, auditService services.AuditServicer) *CashAccountHandler {
	return &CashAccountHandler{accountService: accountService, auditService: auditService}
}

// CreateCashAccountRequest represents the request payload for opening a cash account.
type CreateCashAccountRequest struct {
	PortfolioID *string         `json:"portfolio_id" binding:"omitempty,uuid"`
	Kind        string          `json:"kind" binding:"required,account_kind"`
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Balance     decimal.Decimal `json:"balance" swaggertype:"string"`
	Currency    string          `json:"currency" binding:"omitempty,currency_code"`
}

// UpdateBalanceRequest represents the request payload for replacing a balance.
type UpdateBalanceRequest struct {
	Balance *decimal.Decimal `json:"balance" binding:"required" swaggertype:"string"`
}

// CreateAccount handles opening a cash account.
// @Summary     Open a cash account
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateCashAccountRequest true "Account details"
// @Success     201 {object} models.CashAccount "Account created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [post]
func (h *CashAccountHandler) CreateAccount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCashAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), userID, services.CashAccountInput{
		PortfolioID: req.PortfolioID,
		Kind:        valuation.AccountKind(req.Kind),
		Name:        req.Name,
		Balance:     req.Balance,
		Currency:    currency.Code(req.Currency),
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CASH_ACCOUNT", "cash_account", acc.ID, c.ClientIP(),
		map[string]any{"kind": acc.Kind, "name": acc.Name, "balance": acc.Balance.String()})

	c.JSON(http.StatusCreated, gin.H{"account": acc})
}

// ListAccounts handles listing the user's cash accounts.
// @Summary     List cash accounts
// @Tags        accounts
// @Produce     json
// @Security    BearerAuth
// @Param       kind query string false "Account kind (bank, demat, crypto)"
// @Success     200 {array}  models.CashAccount "Accounts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts [get]
func (h *CashAccountHandler) ListAccounts(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var kind *valuation.AccountKind
	if v := c.Query("kind"); v != "" {
		k := valuation.AccountKind(v)
		if !k.Valid() {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "kind must be 'bank', 'demat' or 'crypto'"))
			return
		}
		kind = &k
	}

	list, err := h.accountService.ListAccounts(c.Request.Context(), userID, kind)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": list})
}

// UpdateBalance handles replacing the balance of a cash account.
// @Summary     Update an account balance
// @Tags        accounts
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Account ID"
// @Param       request body UpdateBalanceRequest true "New balance"
// @Success     200 {object} models.CashAccount "Account updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Account not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /accounts/{id}/balance [put]
func (h *CashAccountHandler) UpdateBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	acc, err := h.accountService.UpdateBalance(c.Request.Context(), userID, c.Param("id"), *req.Balance)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_BALANCE", "cash_account", acc.ID, c.ClientIP(),
		map[string]any{"balance": acc.Balance.String()})

	c.JSON(http.StatusOK, gin.H{"account": acc})
}
