package command

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mateus-ssouza/sevencc-bank/internal/models"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

// fakeStore is an in-memory Store. InTx snapshots the mutable state before
// running fn and restores it when fn fails, mirroring a rollback.
type fakeStore struct {
	mu           sync.Mutex
	branchRepo   *fakeBranchRepo
	userRepo     *fakeUserRepo
	accountRepo  *fakeAccountRepo
	transactRepo *fakeTransactionRepo
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		branchRepo:   &fakeBranchRepo{byID: map[int64]*models.Branch{}},
		userRepo:     &fakeUserRepo{byID: map[int64]*models.User{}},
		accountRepo:  &fakeAccountRepo{byID: map[int64]*models.Account{}},
		transactRepo: &fakeTransactionRepo{},
	}
}

func (f *fakeStore) Branches() repository.BranchRepository          { return f.branchRepo }
func (f *fakeStore) Users() repository.UserRepository               { return f.userRepo }
func (f *fakeStore) Accounts() repository.AccountRepository         { return f.accountRepo }
func (f *fakeStore) Transactions() repository.TransactionRepository { return f.transactRepo }

func (f *fakeStore) InTx(ctx context.Context, fn func(r repository.Repos) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	accountSnap := make(map[int64]*models.Account, len(f.accountRepo.byID))
	for id, account := range f.accountRepo.byID {
		copied := *account
		accountSnap[id] = &copied
	}
	transactSnap := append([]*models.Transaction(nil), f.transactRepo.records...)

	if err := fn(f); err != nil {
		f.accountRepo.byID = accountSnap
		f.transactRepo.records = transactSnap
		return err
	}
	return nil
}

// ---------- branches ----------

type fakeBranchRepo struct {
	byID   map[int64]*models.Branch
	nextID int64
}

func (r *fakeBranchRepo) Create(_ context.Context, branch *models.Branch) error {
	r.nextID++
	branch.ID = r.nextID
	r.byID[branch.ID] = branch
	return nil
}

func (r *fakeBranchRepo) GetByID(_ context.Context, id int64) (*models.Branch, error) {
	branch, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *branch
	return &copied, nil
}

func (r *fakeBranchRepo) GetByNumber(_ context.Context, number int64) (*models.Branch, error) {
	for _, branch := range r.byID {
		if branch.Number == number {
			copied := *branch
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeBranchRepo) List(_ context.Context) ([]models.Branch, error) {
	branches := make([]models.Branch, 0, len(r.byID))
	for _, branch := range r.byID {
		branches = append(branches, *branch)
	}
	return branches, nil
}

func (r *fakeBranchRepo) Update(_ context.Context, branch *models.Branch) error {
	if _, ok := r.byID[branch.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *branch
	r.byID[branch.ID] = &copied
	return nil
}

func (r *fakeBranchRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------- users ----------

type fakeUserRepo struct {
	byID   map[int64]*models.User
	nextID int64
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.nextID++
	user.ID = r.nextID
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByLogin(_ context.Context, login string) (*models.User, error) {
	for _, user := range r.byID {
		if user.Login == login {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) ExistsByLoginEmailOrCPF(_ context.Context, login, email, cpf string) (bool, error) {
	for _, user := range r.byID {
		if user.Login == login || user.Email == email || user.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context, role models.UserRole) ([]models.User, error) {
	users := make([]models.User, 0, len(r.byID))
	for _, user := range r.byID {
		if user.Role == role {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.byID[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *user
	r.byID[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------- accounts ----------

type fakeAccountRepo struct {
	byID   map[int64]*models.Account
	nextID int64

	// existsCollisions makes ExistsByNumber report a taken number for the
	// first N calls, regardless of number, to exercise the re-draw loop.
	existsCollisions int
	existsCalls      int

	// lockedNumbers records every GetByNumberForUpdate call in order.
	lockedNumbers []int64
}

func (r *fakeAccountRepo) Create(_ context.Context, account *models.Account) error {
	r.nextID++
	account.ID = r.nextID
	r.byID[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*models.Account, error) {
	account, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAccountRepo) GetByCustomerIDForUpdate(ctx context.Context, customerID int64) (*models.Account, error) {
	return r.GetByCustomerID(ctx, customerID)
}

func (r *fakeAccountRepo) GetByCustomerID(_ context.Context, customerID int64) (*models.Account, error) {
	for _, account := range r.byID {
		if account.CustomerID == customerID {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) GetByNumberForUpdate(_ context.Context, number int64) (*models.Account, error) {
	r.lockedNumbers = append(r.lockedNumbers, number)
	for _, account := range r.byID {
		if account.Number == number {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAccountRepo) ExistsByNumber(_ context.Context, number int64) (bool, error) {
	r.existsCalls++
	if r.existsCollisions != 0 {
		r.existsCollisions--
		return true, nil
	}
	for _, account := range r.byID {
		if account.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccountRepo) ExistsByCustomerID(_ context.Context, customerID int64) (bool, error) {
	for _, account := range r.byID {
		if account.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccountRepo) ExistsByBranchID(_ context.Context, branchID int64) (bool, error) {
	for _, account := range r.byID {
		if account.BranchID == branchID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAccountRepo) List(_ context.Context, typeFilter models.AccountType) ([]models.Account, error) {
	accounts := make([]models.Account, 0, len(r.byID))
	for _, account := range r.byID {
		if typeFilter != "" && account.Type != typeFilter {
			continue
		}
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

func (r *fakeAccountRepo) UpdateBalance(_ context.Context, id int64, balance decimal.Decimal) error {
	account, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	account.Balance = balance
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ---------- transactions ----------

type fakeTransactionRepo struct {
	records []*models.Transaction
	nextID  int64
}

func (r *fakeTransactionRepo) Create(_ context.Context, transaction *models.Transaction) error {
	r.nextID++
	transaction.ID = r.nextID
	r.records = append(r.records, transaction)
	return nil
}

func (r *fakeTransactionRepo) ListByAccountID(_ context.Context, accountID int64) ([]models.Transaction, error) {
	var out []models.Transaction
	for i := len(r.records) - 1; i >= 0; i-- {
		record := r.records[i]
		if record.SourceAccountID == accountID ||
			(record.DestinationAccountID != nil && *record.DestinationAccountID == accountID) {
			out = append(out, *record)
		}
	}
	return out, nil
}

// ---------- collaborators ----------

type fakePublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	Stream string
	Type   string
	Data   any
}

func (p *fakePublisher) Publish(_ context.Context, stream, eventType string, data any) error {
	p.events = append(p.events, publishedEvent{Stream: stream, Type: eventType, Data: data})
	return nil
}

type fakeInvalidator struct {
	invalidated []int64
}

func (v *fakeInvalidator) Invalidate(_ context.Context, accountID int64) {
	v.invalidated = append(v.invalidated, accountID)
}

// ---------- seed helpers ----------

func seedBranch(s *fakeStore, number int64) *models.Branch {
	branch := &models.Branch{Name: "Downtown", Number: number, Phone: "555-0100", City: "Springfield", State: "IL"}
	_ = s.branchRepo.Create(context.Background(), branch)
	return branch
}

func seedCustomer(s *fakeStore, login string) *models.User {
	user := &models.User{
		Name:  "Alice Example",
		CPF:   "12345678901",
		Email: login + "@example.com",
		Login: login,
		Role:  models.RoleCustomer,
	}
	_ = s.userRepo.Create(context.Background(), user)
	return user
}

func seedAccount(s *fakeStore, customer *models.User, number int64, balance string, accountType models.AccountType) *models.Account {
	account := &models.Account{
		Number:     number,
		Balance:    decimal.RequireFromString(balance),
		Type:       accountType,
		BranchID:   1,
		CustomerID: customer.ID,
	}
	_ = s.accountRepo.Create(context.Background(), account)
	return account
}
