package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/loan-tracker/internal/domain"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by normalized email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListByLoanID lists users linked to a loan, owner first
	ListByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanMember, error)
}

// LoanRepository defines the interface for loan data operations
type LoanRepository interface {
	// CreateWithOwner creates a loan and its owner link in one transaction
	CreateWithOwner(ctx context.Context, loan *domain.Loan, ownerID uuid.UUID) error

	// GetByID retrieves a loan by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)

	// ListByUserID lists loans linked to a user
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.UserLoanView, error)

	// GetLink retrieves the link between a loan and a user
	GetLink(ctx context.Context, loanID, userID uuid.UUID) (*domain.UserLoan, error)

	// CreateLink links a user to a loan
	CreateLink(ctx context.Context, link *domain.UserLoan) error
}
