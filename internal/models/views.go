package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountView is the read-optimised projection of an account, carrying the
// branch and owner references resolved to their public identifiers.
// CustomerID is kept for ownership checks but never serialised.
type AccountView struct {
	ID           int64           `json:"id"`
	Number       int64           `json:"number"`
	Balance      decimal.Decimal `json:"balance"`
	Type         AccountType     `json:"type"`
	BranchNumber int64           `json:"branchNumber"`
	BranchName   string          `json:"branchName"`
	CustomerID   int64           `json:"-"`
	CustomerName string          `json:"customerName"`
	CreatedAt    time.Time       `json:"createdTimestamp"`
}

// TransactionView is the read-optimised projection of a transaction as it
// appears on a statement. Account references are exposed as public numbers.
type TransactionView struct {
	ID                int64           `json:"id"`
	Amount            decimal.Decimal `json:"amount"`
	Type              TransactionType `json:"type"`
	SourceNumber      int64           `json:"sourceAccountNumber"`
	DestinationNumber *int64          `json:"destinationAccountNumber,omitempty"`
	CreatedAt         time.Time       `json:"createdTimestamp"`
}
