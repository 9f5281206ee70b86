package accounts_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/uptrace/bun"

	accounts "github.com/goliatone/go-accounts"
)

// MockUsers is a testify mock for the Users repository.
type MockUsers struct {
	mock.Mock
}

var _ accounts.Users = (*MockUsers)(nil)

func (m *MockUsers) GetByEmail(ctx context.Context, email string) (*accounts.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*accounts.User, error) {
	args := m.Called(ctx, tx, email)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByPhone(ctx context.Context, phone string) (*accounts.User, error) {
	args := m.Called(ctx, phone)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByPhoneTx(ctx context.Context, tx bun.IDB, phone string) (*accounts.User, error) {
	args := m.Called(ctx, tx, phone)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByID(ctx context.Context, id uuid.UUID) (*accounts.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) GetByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*accounts.User, error) {
	args := m.Called(ctx, tx, id)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, record *accounts.User, criteria ...repository.InsertCriteria) (*accounts.User, error) {
	args := m.Called(ctx, record)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) CreateTx(ctx context.Context, tx bun.IDB, record *accounts.User, criteria ...repository.InsertCriteria) (*accounts.User, error) {
	args := m.Called(ctx, tx, record)
	if u := args.Get(0); u != nil {
		return u.(*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUsers) List(ctx context.Context, criteria ...repository.SelectCriteria) ([]*accounts.User, error) {
	args := m.Called(ctx)
	if u := args.Get(0); u != nil {
		return u.([]*accounts.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockRepositoryManager routes Users() to a MockUsers and runs transactions
// inline.
type MockRepositoryManager struct {
	UsersRepo *MockUsers
}

var _ accounts.RepositoryManager = (*MockRepositoryManager)(nil)

func NewMockRepositoryManager() *MockRepositoryManager {
	return &MockRepositoryManager{UsersRepo: &MockUsers{}}
}

func (m *MockRepositoryManager) Validate() error { return nil }

func (m *MockRepositoryManager) MustValidate() {}

func (m *MockRepositoryManager) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	return f(ctx, bun.Tx{})
}

func (m *MockRepositoryManager) Users() accounts.Users { return m.UsersRepo }

// MockMailer is a testify mock for the Mailer interface.
type MockMailer struct {
	mock.Mock
}

var _ accounts.Mailer = (*MockMailer)(nil)

func (m *MockMailer) Send(ctx context.Context, msg accounts.MailMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// fixedCodes always generates the same activation code.
type fixedCodes struct {
	code string
}

func (f fixedCodes) Generate() (string, error) { return f.code, nil }

func notFoundErr() error {
	return repository.NewRecordNotFound()
}

func testConfig() *accounts.Config {
	return &accounts.Config{
		AccessTokenSecret:      "access-secret-test",
		RefreshTokenSecret:     "refresh-secret-test",
		ActivationSecret:       "activation-secret-test",
		ActivationTokenTTL:     5 * time.Minute,
		AccessTokenTTL:         15 * time.Minute,
		RefreshTokenTTL:        72 * time.Hour,
		RenewedAccessTokenTTL:  168 * time.Hour,
		RenewedRefreshTokenTTL: 15 * time.Minute,
		ActivationCodeDigits:   4,
	}
}
