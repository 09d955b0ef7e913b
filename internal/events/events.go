package events

import "time"

// Event types
const (
	AccountCreated = "account.created"
	AccountDeleted = "account.deleted"

	TransactionCreated = "transaction.created"

	InterestApplied = "settlement.interest.applied"
	FeeApplied      = "settlement.fee.applied"
)

// Stream names
const (
	AccountEventsStream     = "account.events"
	TransactionEventsStream = "transaction.events"
	SettlementEventsStream  = "settlement.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID     int64  `json:"accountId"`
	AccountNumber int64  `json:"accountNumber"`
	OwnerLogin    string `json:"ownerLogin"`
	AccountType   string `json:"accountType"`
}

type AccountDeletedEvent struct {
	AccountID     int64 `json:"accountId"`
	AccountNumber int64 `json:"accountNumber"`
}

// Transaction events. Destination is zero for deposits and withdrawals.
type TransactionCreatedEvent struct {
	TransactionID int64  `json:"transactionId"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	SourceID      int64  `json:"sourceAccountId"`
	DestinationID int64  `json:"destinationAccountId,omitempty"`
}

// Settlement events, one per settled account.
type SettlementAppliedEvent struct {
	AccountID  int64  `json:"accountId"`
	NewBalance string `json:"newBalance"`
	Change     string `json:"change"`
}
