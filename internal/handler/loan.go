package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/segyhp/loan-tracker/internal/domain"
	customError "github.com/segyhp/loan-tracker/pkg/errors"
	"github.com/segyhp/loan-tracker/pkg/response"
	"github.com/segyhp/loan-tracker/pkg/utils"
)

// LoanService is the behavior the HTTP layer needs from the service layer
type LoanService interface {
	CreateUser(ctx context.Context, request *domain.CreateUserRequest) (*domain.User, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	CreateLoan(ctx context.Context, request *domain.CreateLoanRequest) (*domain.Loan, error)
	GetLoan(ctx context.Context, loanID uuid.UUID) (*domain.Loan, error)
	ListUserLoans(ctx context.Context, userID uuid.UUID) ([]*domain.UserLoanView, error)
	ListLoanUsers(ctx context.Context, loanID uuid.UUID) ([]*domain.LoanMember, error)
	ShareLoan(ctx context.Context, loanID uuid.UUID, request *domain.ShareLoanRequest) (*domain.UserLoan, error)
	GetSchedule(ctx context.Context, loanID uuid.UUID) ([]domain.ScheduleEntry, error)
	GetSummary(ctx context.Context, loanID uuid.UUID, month int) (*domain.Summary, error)
}

type LoanHandler struct {
	service   LoanService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewLoanHandler(service LoanService, logger *zap.Logger) *LoanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoanHandler{
		service:   service,
		validator: newValidator(),
		logger:    logger,
	}
}

// decode reads and validates a JSON body, answering 400 itself on failure
func (h *LoanHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid JSON payload", err)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return false
	}
	return true
}

func (h *LoanHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := utils.ParseID(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "Invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *LoanHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := customError.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("op", op),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	response.ErrorWithCode(w, status, customError.Code(err), customError.PublicMessage(err), nil)
}

// CreateUser handles POST /api/v1/users
func (h *LoanHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateUserRequest
	if !h.decode(w, r, &request) {
		return
	}

	user, err := h.service.CreateUser(r.Context(), &request)
	if err != nil {
		h.fail(w, r, "handler.CreateUser", err)
		return
	}

	response.Created(w, user)
}

// GetUser handles GET /api/v1/users/{userId}
func (h *LoanHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "handler.GetUser", err)
		return
	}

	response.Success(w, user)
}

// ListUserLoans handles GET /api/v1/users/{userId}/loans
func (h *LoanHandler) ListUserLoans(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "userId")
	if !ok {
		return
	}

	loans, err := h.service.ListUserLoans(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "handler.ListUserLoans", err)
		return
	}

	response.Success(w, domain.UserLoansResponse{UserID: userID, Loans: loans})
}

// CreateLoan handles POST /api/v1/loans
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateLoanRequest
	if !h.decode(w, r, &request) {
		return
	}

	loan, err := h.service.CreateLoan(r.Context(), &request)
	if err != nil {
		h.fail(w, r, "handler.CreateLoan", err)
		return
	}

	response.Created(w, loan)
}

// GetLoan handles GET /api/v1/loans/{loanId}
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.pathID(w, r, "loanId")
	if !ok {
		return
	}

	loan, err := h.service.GetLoan(r.Context(), loanID)
	if err != nil {
		h.fail(w, r, "handler.GetLoan", err)
		return
	}

	response.Success(w, loan)
}

// ShareLoan handles POST /api/v1/loans/{loanId}/share
func (h *LoanHandler) ShareLoan(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.pathID(w, r, "loanId")
	if !ok {
		return
	}

	var request domain.ShareLoanRequest
	if !h.decode(w, r, &request) {
		return
	}

	link, err := h.service.ShareLoan(r.Context(), loanID, &request)
	if err != nil {
		h.fail(w, r, "handler.ShareLoan", err)
		return
	}

	response.Created(w, link)
}

// ListLoanUsers handles GET /api/v1/loans/{loanId}/users
func (h *LoanHandler) ListLoanUsers(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.pathID(w, r, "loanId")
	if !ok {
		return
	}

	members, err := h.service.ListLoanUsers(r.Context(), loanID)
	if err != nil {
		h.fail(w, r, "handler.ListLoanUsers", err)
		return
	}

	response.Success(w, domain.LoanUsersResponse{LoanID: loanID, Users: members})
}

// GetSchedule handles GET /api/v1/loans/{loanId}/schedule
func (h *LoanHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.pathID(w, r, "loanId")
	if !ok {
		return
	}

	schedule, err := h.service.GetSchedule(r.Context(), loanID)
	if err != nil {
		h.fail(w, r, "handler.GetSchedule", err)
		return
	}

	response.Success(w, domain.ScheduleResponse{LoanID: loanID, Schedule: schedule})
}

// GetSummary handles GET /api/v1/loans/{loanId}/summary/{month}
func (h *LoanHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	loanID, ok := h.pathID(w, r, "loanId")
	if !ok {
		return
	}

	month, err := utils.ParseMonth(mux.Vars(r)["month"])
	if err != nil {
		response.BadRequest(w, "Invalid month", err)
		return
	}

	summary, err := h.service.GetSummary(r.Context(), loanID, month)
	if err != nil {
		h.fail(w, r, "handler.GetSummary", err)
		return
	}

	response.Success(w, domain.SummaryResponse{LoanID: loanID, Summary: *summary})
}
