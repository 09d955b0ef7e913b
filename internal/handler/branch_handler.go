package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/middleware"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

type BranchCommander interface {
	CreateBranch(ctx context.Context, cmd cqrs.CreateBranchCommand) (*models.Branch, error)
	UpdateBranch(ctx context.Context, cmd cqrs.UpdateBranchCommand) (*models.Branch, error)
	DeleteBranch(ctx context.Context, cmd cqrs.DeleteBranchCommand) error
}

type BranchQuerier interface {
	GetBranch(ctx context.Context, q cqrs.GetBranchQuery) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
}

type BranchHandler struct {
	commands BranchCommander
	queries  BranchQuerier
}

type CreateBranchRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=100"`
	Number int64  `json:"number" validate:"required,gt=0"`
	Phone  string `json:"phone" validate:"required"`
	City   string `json:"city" validate:"required"`
	State  string `json:"state" validate:"required,len=2"`
}

type UpdateBranchRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"required"`
	City  string `json:"city" validate:"required"`
	State string `json:"state" validate:"required,len=2"`
}

type ListBranchesResponse struct {
	Branches []models.Branch `json:"branches"`
}

func NewBranchHandler(commands BranchCommander, queries BranchQuerier) *BranchHandler {
	return &BranchHandler{commands: commands, queries: queries}
}

func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req CreateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	branch, err := h.commands.CreateBranch(c.Request.Context(), cqrs.CreateBranchCommand{
		Name:   req.Name,
		Number: req.Number,
		Phone:  req.Phone,
		City:   req.City,
		State:  req.State,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, branch)
}

func (h *BranchHandler) GetBranch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	branch, err := h.queries.GetBranch(c.Request.Context(), cqrs.GetBranchQuery{BranchID: id})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) ListBranches(c *gin.Context) {
	branches, err := h.queries.ListBranches(c.Request.Context())
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	if branches == nil {
		branches = []models.Branch{}
	}
	c.JSON(http.StatusOK, ListBranchesResponse{Branches: branches})
}

func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateBranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	branch, err := h.commands.UpdateBranch(c.Request.Context(), cqrs.UpdateBranchCommand{
		BranchID: id,
		Name:     req.Name,
		Phone:    req.Phone,
		City:     req.City,
		State:    req.State,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, branch)
}

func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.commands.DeleteBranch(c.Request.Context(), cqrs.DeleteBranchCommand{BranchID: id}); err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
