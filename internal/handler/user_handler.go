package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/middleware"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

type UserCommander interface {
	RegisterUser(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error)
	UpdateUser(ctx context.Context, cmd cqrs.UpdateUserCommand) (*models.User, error)
	DeleteUser(ctx context.Context, cmd cqrs.DeleteUserCommand) error
}

type UserQuerier interface {
	GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.User, error)
	ListCustomers(ctx context.Context) ([]models.User, error)
}

// UserHandler serves both customer self-registration and the admin-only
// back-office user routes. The role each route registers is fixed at wiring
// time, so one handler covers customers and admins.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
	role     models.UserRole
}

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	CPF      string `json:"cpf" validate:"required,len=11,numeric"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Login    string `json:"login" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
}

type UpdateUserRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
}

type ListUsersResponse struct {
	Users []models.User `json:"users"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier, role models.UserRole) *UserHandler {
	return &UserHandler{commands: commands, queries: queries, role: role}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.commands.RegisterUser(c.Request.Context(), cqrs.RegisterUserCommand{
		Name:     req.Name,
		CPF:      req.CPF,
		Email:    req.Email,
		Phone:    req.Phone,
		Login:    req.Login,
		Password: req.Password,
		Role:     h.role,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	login, _ := middleware.GetLogin(c)
	role, _ := middleware.GetRole(c)

	user, err := h.queries.GetUser(c.Request.Context(), cqrs.GetUserQuery{
		UserID:          id,
		RequestingLogin: login,
		RequestingRole:  role,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListCustomers(c *gin.Context) {
	users, err := h.queries.ListCustomers(c.Request.Context())
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, ListUsersResponse{Users: users})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	login, _ := middleware.GetLogin(c)

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	user, err := h.commands.UpdateUser(c.Request.Context(), cqrs.UpdateUserCommand{
		UserID:          id,
		RequestingLogin: login,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
	})
	if err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	login, _ := middleware.GetLogin(c)

	if err := h.commands.DeleteUser(c.Request.Context(), cqrs.DeleteUserCommand{
		UserID:          id,
		RequestingLogin: login,
	}); err != nil {
		middleware.RespondWithDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
