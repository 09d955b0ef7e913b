package cqrs

import "github.com/mateus-ssouza/sevencc-bank/internal/models"

// ---------- Auth ----------

type LoginCommand struct {
	Login    string
	Password string
}

type RefreshTokenCommand struct {
	Token string
}

// ---------- Branch queries ----------

type GetBranchQuery struct {
	BranchID int64
}

// ---------- User queries ----------

type GetUserQuery struct {
	UserID          int64
	RequestingLogin string
	RequestingRole  models.UserRole
}

// ---------- Account queries ----------

// GetOwnAccountQuery fetches the account bound to the authenticated customer.
type GetOwnAccountQuery struct {
	OwnerLogin string
}

type GetAccountQuery struct {
	AccountID int64
}

// ListAccountsQuery fetches all accounts, optionally filtered by type.
type ListAccountsQuery struct {
	Type models.AccountType
}

// ---------- Statement queries ----------

// GetStatementQuery fetches the transaction history of the authenticated
// customer's account, newest first.
type GetStatementQuery struct {
	OwnerLogin string
}
