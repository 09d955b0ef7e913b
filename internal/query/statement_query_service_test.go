package query

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/cqrs"
	"github.com/mateus-ssouza/sevencc-bank/internal/events"
	"github.com/mateus-ssouza/sevencc-bank/internal/models"
)

func statementFixture() (*StatementQueryService, *fakeStatements, *fakeAccountViews) {
	users := &stubUsers{byLogin: map[string]*models.User{
		"alice": {ID: 7, Login: "alice", Role: models.RoleCustomer},
	}}
	accounts := &stubAccounts{byCustomerID: map[int64]*models.Account{
		7: {ID: 3, Number: 123456, CustomerID: 7},
	}}

	newest := models.TransactionView{
		ID: 2, Amount: decimal.RequireFromString("5.00"),
		Type: models.TransactionDeposit, SourceNumber: 123456,
		CreatedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
	}
	oldest := models.TransactionView{
		ID: 1, Amount: decimal.RequireFromString("10.00"),
		Type: models.TransactionWithdrawal, SourceNumber: 123456,
		CreatedAt: time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC),
	}
	statements := &fakeStatements{byAccountID: map[int64][]models.TransactionView{
		3: {newest, oldest},
	}}
	accountViews := &fakeAccountViews{}

	return NewStatementQueryService(users, accounts, statements, accountViews), statements, accountViews
}

func TestGetStatement(t *testing.T) {
	svc, _, _ := statementFixture()

	views, err := svc.GetStatement(context.Background(), cqrs.GetStatementQuery{OwnerLogin: "alice"})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.True(t, views[0].CreatedAt.After(views[1].CreatedAt), "newest entry first")
}

func TestGetStatementUnknownCustomer(t *testing.T) {
	svc, _, _ := statementFixture()

	_, err := svc.GetStatement(context.Background(), cqrs.GetStatementQuery{OwnerLogin: "ghost"})
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.NotFound))
}

func TestHandleTransactionEventInvalidatesBothSides(t *testing.T) {
	svc, statements, accountViews := statementFixture()

	err := svc.HandleTransactionEvent(context.Background(), events.Event{
		Type: events.TransactionCreated,
		Data: events.TransactionCreatedEvent{
			TransactionID: 9,
			Type:          string(models.TransactionTransfer),
			Amount:        "50.00",
			SourceID:      3,
			DestinationID: 4,
		},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{3, 4}, statements.invalidated)
	assert.ElementsMatch(t, []int64{3, 4}, accountViews.invalidated)
}

func TestHandleTransactionEventIgnoresOtherTypes(t *testing.T) {
	svc, statements, accountViews := statementFixture()

	err := svc.HandleTransactionEvent(context.Background(), events.Event{
		Type: events.AccountCreated,
		Data: events.AccountCreatedEvent{AccountID: 3},
	})
	require.NoError(t, err)
	assert.Empty(t, statements.invalidated)
	assert.Empty(t, accountViews.invalidated)
}
