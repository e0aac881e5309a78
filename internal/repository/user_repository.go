package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/segyhp/loan-tracker/internal/domain"

	"github.com/jmoiron/sqlx"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return translate(err)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, name, email, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) ListByLoanID(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanMember, error) {
	query := `
		SELECT u.id, u.name, u.email, u.created_at, u.updated_at, ul.user_type
		FROM users u
		JOIN user_loans ul ON ul.user_id = u.id
		WHERE ul.loan_id = $1
		ORDER BY ul.user_type = 'owner' DESC, ul.created_at
	`

	members := []*domain.LoanMember{}
	if err := r.db.SelectContext(ctx, &members, query, loanID); err != nil {
		return nil, err
	}

	return members, nil
}
