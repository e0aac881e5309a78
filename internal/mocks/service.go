package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/loan-tracker/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) CreateUser(ctx context.Context, request *domain.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockLoanService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockLoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) GetLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

func (m *MockLoanService) ListUserLoans(ctx context.Context, userID uuid.UUID) ([]*domain.UserLoanView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.UserLoanView), args.Error(1)
}

func (m *MockLoanService) ListLoanUsers(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanMember, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanMember), args.Error(1)
}

func (m *MockLoanService) ShareLoan(ctx context.Context, loanID uuid.UUID, request *domain.ShareLoanRequest) (*domain.UserLoan, error) {
	args := m.Called(ctx, loanID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserLoan), args.Error(1)
}

func (m *MockLoanService) GetSchedule(ctx context.Context, loanID uuid.UUID) ([]domain.ScheduleEntry, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleEntry), args.Error(1)
}

func (m *MockLoanService) GetSummary(ctx context.Context, loanID uuid.UUID, month int) (*domain.Summary, error) {
	args := m.Called(ctx, loanID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Summary), args.Error(1)
}

// NewMockLoanService creates a new mock loan service instance
func NewMockLoanService() *MockLoanService {
	return &MockLoanService{}
}
