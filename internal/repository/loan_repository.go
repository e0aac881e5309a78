package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/loan-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) CreateWithOwner(ctx context.Context, loan *domain.Loan, ownerID uuid.UUID) error {
	loanQuery := `
		INSERT INTO loans (id, amount, annual_interest_rate, loan_term_in_months, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	linkQuery := `
		INSERT INTO user_loans (user_id, loan_id, user_type, created_at)
		VALUES ($1, $2, $3, $4)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, loanQuery,
		loan.ID,
		loan.Amount,
		loan.AnnualInterestRate,
		loan.LoanTermInMonths,
		loan.CreatedAt,
		loan.UpdatedAt,
	)
	if err != nil {
		return translate(err)
	}

	_, err = tx.ExecContext(ctx, linkQuery, ownerID, loan.ID, domain.UserTypeOwner, loan.CreatedAt)
	if err != nil {
		return translate(err)
	}

	return tx.Commit()
}

func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	query := `
		SELECT id, amount, annual_interest_rate, loan_term_in_months, created_at, updated_at
		FROM loans
		WHERE id = $1
	`

	var loan domain.Loan
	if err := r.db.GetContext(ctx, &loan, query, id); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.UserLoanView, error) {
	query := `
		SELECT l.id, l.amount, l.annual_interest_rate, l.loan_term_in_months, l.created_at, l.updated_at, ul.user_type
		FROM loans l
		JOIN user_loans ul ON ul.loan_id = l.id
		WHERE ul.user_id = $1
		ORDER BY l.created_at
	`

	loans := []*domain.UserLoanView{}
	if err := r.db.SelectContext(ctx, &loans, query, userID); err != nil {
		return nil, err
	}

	return loans, nil
}

func (r *loanRepository) GetLink(ctx context.Context, loanID, userID uuid.UUID) (*domain.UserLoan, error) {
	query := `
		SELECT user_id, loan_id, user_type, created_at
		FROM user_loans
		WHERE loan_id = $1 AND user_id = $2
	`

	var link domain.UserLoan
	if err := r.db.GetContext(ctx, &link, query, loanID, userID); err != nil {
		return nil, err
	}

	return &link, nil
}

func (r *loanRepository) CreateLink(ctx context.Context, link *domain.UserLoan) error {
	query := `
		INSERT INTO user_loans (user_id, loan_id, user_type, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, link.UserID, link.LoanID, link.UserType, link.CreatedAt)
	return translate(err)
}
