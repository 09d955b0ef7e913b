package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/middleware"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	CreateAccount(ctx context.Context, cmd cqrs.CreateAccountCommand) (*models.Account, error)
	DeleteAccount(ctx context.Context, cmd cqrs.DeleteAccountCommand) error
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetOwnAccount(ctx context.Context, q cqrs.GetOwnAccountQuery) (*models.AccountView, error)
	GetAccount(ctx context.Context, q cqrs.GetAccountQuery) (*models.AccountView, error)
	ListAccounts(ctx context.Context, q cqrs.ListAccountsQuery) ([]models.AccountView, error)
}

type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

type CreateAccountRequest struct {
	BranchNumber int64  `json:"branchNumber" validate:"required,gt=0"`
	Type         string `json:"type" validate:"required,oneof=CHECKING SAVINGS"`
}

type ListAccountsResponse struct {
	Accounts []models.AccountView `json:"accounts"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

// CreateAccount opens an account for the authenticated customer.
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	login, _ := middleware.GetLogin(c)

	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.commands.CreateAccount(c.Request.Context(), cqrs.CreateAccountCommand{
		BranchNumber: req.BranchNumber,
		OwnerLogin:   login,
		Type:         models.AccountType(req.Type),
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// GetOwnAccount returns the authenticated customer's account.
func (h *AccountHandler) GetOwnAccount(c *gin.Context) {
	login, _ := middleware.GetLogin(c)

	view, err := h.queries.GetOwnAccount(c.Request.Context(), cqrs.GetOwnAccountQuery{OwnerLogin: login})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListAccounts returns all accounts, optionally filtered by ?type=.
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	views, err := h.queries.ListAccounts(c.Request.Context(), cqrs.ListAccountsQuery{
		Type: models.AccountType(c.Query("type")),
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	if views == nil {
		views = []models.AccountView{}
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
}

// GetAccount returns any account by internal id (back-office view).
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetAccount(c.Request.Context(), cqrs.GetAccountQuery{AccountID: id})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// DeleteAccount removes a zero-balance account.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.commands.DeleteAccount(c.Request.Context(), cqrs.DeleteAccountCommand{AccountID: id}); err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// pathID parses the :id path parameter, answering 400 itself when malformed.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
