package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole discriminates ordinary customers from back-office administrators.
type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleAdmin    UserRole = "ADMIN"
)

// AccountType discriminates the two account variants. Type-specific behaviour
// (interest vs. maintenance fee) is selected by switching on this value.
type AccountType string

const (
	AccountChecking AccountType = "CHECKING"
	AccountSavings  AccountType = "SAVINGS"
)

// ValidAccountType reports whether t is a recognised account type.
func ValidAccountType(t AccountType) bool {
	return t == AccountChecking || t == AccountSavings
}

// TransactionType identifies the kind of money movement a record captures.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTransfer   TransactionType = "TRANSFER"
)

// Branch is an organisational unit owning accounts, identified by a unique number.
type Branch struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Number    int64     `json:"number"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"createdTimestamp"`
	UpdatedAt time.Time `json:"updatedTimestamp"`
}

// User is a customer or administrator. A customer holds at most one account.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	CPF          string    `json:"cpf"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Login        string    `json:"login"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdTimestamp"`
	UpdatedAt    time.Time `json:"updatedTimestamp"`
}

// Account is the monetary container. Balance is only ever written by the
// transaction engine, account creation and the settlement job.
type Account struct {
	ID         int64           `json:"id"`
	Number     int64           `json:"number"`
	Balance    decimal.Decimal `json:"balance"`
	Type       AccountType     `json:"type"`
	BranchID   int64           `json:"-"`
	CustomerID int64           `json:"-"`
	CreatedAt  time.Time       `json:"createdTimestamp"`
	UpdatedAt  time.Time       `json:"updatedTimestamp"`
}

// Transaction is the immutable record of a deposit, withdrawal or transfer.
// DestinationAccountID is populated only for transfers.
type Transaction struct {
	ID                   int64           `json:"id"`
	Amount               decimal.Decimal `json:"amount"`
	Type                 TransactionType `json:"type"`
	SourceAccountID      int64           `json:"-"`
	DestinationAccountID *int64          `json:"-"`
	CreatedAt            time.Time       `json:"createdTimestamp"`
}
