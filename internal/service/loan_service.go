package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/loan-tracker/internal/amortization"
	"github.com/segyhp/loan-tracker/internal/config"
	"github.com/segyhp/loan-tracker/internal/domain"
	"github.com/segyhp/loan-tracker/internal/repository"
	customError "github.com/segyhp/loan-tracker/pkg/errors"
	"github.com/segyhp/loan-tracker/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultMaxTermMonths = 600
	defaultMaxAnnualRate = 1000
	// matches loans.annual_interest_rate NUMERIC(9,4)
	ratePlaces = 4
)

// maxLoanAmount is the first value loans.amount NUMERIC(15,2) cannot store
var maxLoanAmount = decimal.New(1, 13)

// LoanCache caches loan records. Get returns nil, nil on a miss.
type LoanCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	Set(ctx context.Context, loan *domain.Loan) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, uuid.UUID) (*domain.Loan, error) { return nil, nil }
func (noopCache) Set(context.Context, *domain.Loan) error { return nil }

type LoanService struct {
	UserRepo      repository.UserRepository
	LoanRepo      repository.LoanRepository
	cache         LoanCache
	maxTermMonths int
	maxAnnualRate decimal.Decimal
	logger        *zap.Logger
	now           func() time.Time
}

func NewLoanService(
	userRepo repository.UserRepository,
	loanRepo repository.LoanRepository,
	cache LoanCache,
	cfg *config.Config,
	logger *zap.Logger,
) *LoanService {
	if cache == nil {
		cache = noopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	maxTerm := defaultMaxTermMonths
	if cfg != nil && cfg.Business.MaxTermMonths > 0 {
		maxTerm = cfg.Business.MaxTermMonths
	}
	maxRate := decimal.NewFromInt(defaultMaxAnnualRate)
	if cfg != nil && cfg.Business.MaxAnnualRate > 0 {
		maxRate = decimal.NewFromFloat(cfg.Business.MaxAnnualRate)
	}

	return &LoanService{
		UserRepo:      userRepo,
		LoanRepo:      loanRepo,
		cache:         cache,
		maxTermMonths: maxTerm,
		maxAnnualRate: maxRate,
		logger:        logger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// CreateUser registers a user; emails are unique case-insensitively
func (s *LoanService) CreateUser(ctx context.Context, request *domain.CreateUserRequest) (*domain.User, error) {
	name := strings.TrimSpace(request.Name)
	email := utils.NormalizeEmail(request.Email)
	if name == "" || email == "" {
		return nil, customError.WrapInvalidInput("name and email are required")
	}

	existing, err := s.UserRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, customError.WrapUserAlreadyExists(email)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	user := &domain.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.UserRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, customError.WrapUserAlreadyExists(email)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return user, nil
}

// GetUser returns a user by ID
func (s *LoanService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.UserRepo.GetByID(ctx, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapUserNotFound(userID.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return user, nil
}

// CreateLoan validates the terms and stores the loan with its owner link.
// Amount and rate are rounded to the stored precision first, so the returned
// and cached loan matches what a later database read yields.
func (s *LoanService) CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error) {
	amount := utils.RoundCurrency(request.Amount)
	rate := request.AnnualInterestRate.Round(ratePlaces)
	if err := s.validateTerms(amount, rate, request.LoanTermInMonths); err != nil {
		return nil, err
	}

	if _, err := s.GetUser(ctx, request.OwnerID); err != nil {
		return nil, err
	}

	now := s.now()
	loan := &domain.Loan{
		ID:                 uuid.New(),
		Amount:             amount,
		AnnualInterestRate: rate,
		LoanTermInMonths:   request.LoanTermInMonths,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.LoanRepo.CreateWithOwner(ctx, loan, request.OwnerID); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheLoan(ctx, loan)

	return loan, nil
}

func (s *LoanService) validateTerms(amount, annualRate decimal.Decimal, termMonths int) error {
	if !amount.IsPositive() {
		return customError.WrapInvalidInput("amount must be greater than 0")
	}
	if !amount.LessThan(maxLoanAmount) {
		return customError.WrapInvalidInput(fmt.Sprintf("amount must be less than %s", maxLoanAmount))
	}
	if annualRate.IsNegative() {
		return customError.WrapInvalidInput("annual_interest_rate must not be negative")
	}
	if annualRate.GreaterThan(s.maxAnnualRate) {
		return customError.WrapInvalidInput(fmt.Sprintf("annual_interest_rate must not exceed %s", s.maxAnnualRate))
	}
	if termMonths <= 0 || termMonths > s.maxTermMonths {
		return customError.WrapInvalidInput(fmt.Sprintf("loan_term_in_months must be between 1 and %d", s.maxTermMonths))
	}
	return nil
}

// GetLoan reads through the cache; cache failures fall back to the database
func (s *LoanService) GetLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error) {
	cached, err := s.cache.Get(ctx, loanID)
	if err != nil {
		s.logCacheError("loan cache read failed", "service.GetLoan", loanID, err)
	}
	if cached != nil {
		return cached, nil
	}

	loan, err := s.LoanRepo.GetByID(ctx, loanID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapLoanNotFound(loanID.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.cacheLoan(ctx, loan)

	return loan, nil
}

func (s *LoanService) cacheLoan(ctx context.Context, loan *domain.Loan) {
	if err := s.cache.Set(ctx, loan); err != nil {
		s.logCacheError("loan cache write failed", "service.cacheLoan", loan.ID, err)
	}
}

// logCacheError records a cache failure; callers carry on against the database
func (s *LoanService) logCacheError(msg, op string, loanID uuid.UUID, err error) {
	cacheErr := customError.WrapCacheError(err)
	s.logger.Warn(msg,
		zap.String("op", op),
		zap.String("code", customError.Code(cacheErr)),
		zap.String("loan_id", loanID.String()),
		zap.Error(cacheErr),
	)
}

// ListUserLoans returns every loan the user owns or has been shared
func (s *LoanService) ListUserLoans(ctx context.Context, userID uuid.UUID) ([]*domain.UserLoanView, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	loans, err := s.LoanRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// ListLoanUsers returns every user linked to the loan
func (s *LoanService) ListLoanUsers(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanMember, error) {
	if _, err := s.GetLoan(ctx, loanID); err != nil {
		return nil, err
	}

	members, err := s.UserRepo.ListByLoanID(ctx, loanID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return members, nil
}

// ShareLoan gives another user viewer access. Only the owner may share.
func (s *LoanService) ShareLoan(ctx context.Context, loanID uuid.UUID, request *domain.ShareLoanRequest) (*domain.UserLoan, error) {
	if request.OwnerID == request.UserID {
		return nil, customError.WrapInvalidInput("a loan cannot be shared with its owner")
	}

	if _, err := s.GetLoan(ctx, loanID); err != nil {
		return nil, err
	}

	ownerLink, err := s.LoanRepo.GetLink(ctx, loanID, request.OwnerID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}
	if ownerLink == nil || ownerLink.UserType != domain.UserTypeOwner {
		return nil, customError.WrapNotLoanOwner(loanID.String(), request.OwnerID.String())
	}

	if _, err := s.GetUser(ctx, request.UserID); err != nil {
		return nil, err
	}

	existing, err := s.LoanRepo.GetLink(ctx, loanID, request.UserID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapDatabaseError(err)
	}
	if existing != nil {
		return nil, customError.WrapLoanAlreadyShared(loanID.String(), request.UserID.String())
	}

	link := &domain.UserLoan{
		UserID:    request.UserID,
		LoanID:    loanID,
		UserType:  domain.UserTypeViewer,
		CreatedAt: s.now(),
	}
	if err := s.LoanRepo.CreateLink(ctx, link); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, customError.WrapLoanAlreadyShared(loanID.String(), request.UserID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	return link, nil
}

// GetSchedule returns the full amortization schedule for a loan
func (s *LoanService) GetSchedule(ctx context.Context, loanID uuid.UUID) ([]domain.ScheduleEntry, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	return amortization.ComputeSchedule(loan.Amount, loan.AnnualInterestRate, loan.LoanTermInMonths), nil
}

// GetSummary returns balance and cumulative principal and interest as of month
func (s *LoanService) GetSummary(ctx context.Context, loanID uuid.UUID, month int) (*domain.Summary, error) {
	loan, err := s.GetLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	summary, err := amortization.ComputeSummary(loan.Amount, loan.AnnualInterestRate, loan.LoanTermInMonths, month)
	if errors.Is(err, amortization.ErrMonthOutOfRange) {
		return nil, customError.WrapMonthOutOfRange(month, loan.LoanTermInMonths, err)
	}
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
