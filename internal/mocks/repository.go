package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/loan-tracker/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanMember, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanMember), args.Error(1)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) CreateWithOwner(ctx context.Context, loan *domain.Loan, ownerID uuid.UUID) error {
	args := m.Called(ctx, loan, ownerID)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.UserLoanView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserLoanView), args.Error(1)
}

func (m *MockLoanRepository) GetLink(ctx context.Context, loanID, userID uuid.UUID) (*domain.UserLoan, error) {
	args := m.Called(ctx, loanID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserLoan), args.Error(1)
}

func (m *MockLoanRepository) CreateLink(ctx context.Context, link *domain.UserLoan) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

type MockLoanCache struct {
	mock.Mock
}

func (m *MockLoanCache) Get(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanCache) Set(ctx context.Context, loan *domain.Loan) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}
