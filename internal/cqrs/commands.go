package cqrs

import (
	"github.com/shopspring/decimal"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

type CreateBranchCommand struct {
	Name   string
	Number int64
	Phone  string
	City   string
	State  string
}

type UpdateBranchCommand struct {
	BranchID int64
	Name     string
	Phone    string
	City     string
	State    string
}

type DeleteBranchCommand struct {
	BranchID int64
}

type RegisterUserCommand struct {
	Name     string
	CPF      string
	Email    string
	Phone    string
	Login    string
	Password string
	Role     models.UserRole
}

type UpdateUserCommand struct {
	UserID          int64
	RequestingLogin string
	Name            string
	Email           string
	Phone           string
}

type DeleteUserCommand struct {
	UserID          int64
	RequestingLogin string
}

type CreateAccountCommand struct {
	BranchNumber int64
	OwnerLogin   string
	Type         models.AccountType
}

type DeleteAccountCommand struct {
	AccountID int64
}

// DepositCommand and WithdrawCommand act on the account bound to OwnerLogin,
// which the engine resolves itself; callers never name an account directly.
type DepositCommand struct {
	Amount     decimal.Decimal
	OwnerLogin string
}

type WithdrawCommand struct {
	Amount     decimal.Decimal
	OwnerLogin string
}

type TransferCommand struct {
	Amount            decimal.Decimal
	DestinationNumber int64
	OwnerLogin        string
}
