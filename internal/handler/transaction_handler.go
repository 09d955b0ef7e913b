package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/middleware"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

// TransactionCommander defines the engine operations used by TransactionHandler.
type TransactionCommander interface {
	Deposit(ctx context.Context, cmd cqrs.DepositCommand) (*models.TransactionView, error)
	Withdraw(ctx context.Context, cmd cqrs.WithdrawCommand) (*models.TransactionView, error)
	Transfer(ctx context.Context, cmd cqrs.TransferCommand) (*models.TransactionView, error)
}

// StatementQuerier defines the read-side operations used by TransactionHandler.
type StatementQuerier interface {
	GetStatement(ctx context.Context, q cqrs.GetStatementQuery) ([]models.TransactionView, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  StatementQuerier
}

// Amounts carry no validate tag: the engine itself rejects non-positive
// values before touching any account, and decimals fall outside the
// validator's numeric tags.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	Amount                   decimal.Decimal `json:"amount"`
	DestinationAccountNumber int64           `json:"destinationAccountNumber" validate:"required,gt=0"`
}

type StatementResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
}

func NewTransactionHandler(commands TransactionCommander, queries StatementQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

// Deposit credits the authenticated customer's account.
func (h *TransactionHandler) Deposit(c *gin.Context) {
	login, _ := middleware.GetLogin(c)

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.commands.Deposit(c.Request.Context(), cqrs.DepositCommand{
		Amount:     req.Amount,
		OwnerLogin: login,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// Withdraw debits the authenticated customer's account.
func (h *TransactionHandler) Withdraw(c *gin.Context) {
	login, _ := middleware.GetLogin(c)

	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.commands.Withdraw(c.Request.Context(), cqrs.WithdrawCommand{
		Amount:     req.Amount,
		OwnerLogin: login,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// Transfer moves funds from the authenticated customer's account to the
// account with the given public number.
func (h *TransactionHandler) Transfer(c *gin.Context) {
	login, _ := middleware.GetLogin(c)

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.Transfer(c.Request.Context(), cqrs.TransferCommand{
		Amount:            req.Amount,
		DestinationNumber: req.DestinationAccountNumber,
		OwnerLogin:        login,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// GetStatement returns the authenticated customer's transactions, newest first.
func (h *TransactionHandler) GetStatement(c *gin.Context) {
	login, _ := middleware.GetLogin(c)

	views, err := h.queries.GetStatement(c.Request.Context(), cqrs.GetStatementQuery{OwnerLogin: login})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	if views == nil {
		views = []models.TransactionView{}
	}
	c.JSON(http.StatusOK, StatementResponse{Transactions: views})
}
