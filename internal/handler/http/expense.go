package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/expense"
	"github.com/kelolahr/hrms-backend-go/internal/handler/http/response"
)

type ExpenseHandler interface {
	CreateAdvance(w http.ResponseWriter, r *http.Request)
	CreateClaim(w http.ResponseWriter, r *http.Request)
	DecideClaim(w http.ResponseWriter, r *http.Request)
	ListClaims(w http.ResponseWriter, r *http.Request)
}

type ExpenseHandlerImpl struct {
	expenseService expense.ExpenseService
}

func NewExpenseHandler(expenseService expense.ExpenseService) ExpenseHandler {
	return &ExpenseHandlerImpl{expenseService: expenseService}
}

// CreateAdvance implements ExpenseHandler.
func (h *ExpenseHandlerImpl) CreateAdvance(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req expense.CreateAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateAdvance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	advance, err := h.expenseService.CreateAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Advance created successfully", advance)
}

// CreateClaim implements ExpenseHandler.
func (h *ExpenseHandlerImpl) CreateClaim(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req expense.CreateClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateClaim decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	claim, err := h.expenseService.CreateClaim(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Expense claim created successfully", claim)
}

// DecideClaim implements ExpenseHandler.
func (h *ExpenseHandlerImpl) DecideClaim(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	claimID := chi.URLParam(r, "id")
	if claimID == "" {
		response.BadRequest(w, "Claim ID is required", nil)
		return
	}

	var req struct {
		Action   string `json:"action"`
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideClaim decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Action != string(approval.ActionApprove) && req.Action != string(approval.ActionReject) {
		response.BadRequest(w, "Action must be approve or reject", nil)
		return
	}

	actor := expense.Actor{UserID: claims.UserID, EmployeeID: claims.EmployeeID, Role: claims.Role}
	claim, err := h.expenseService.DecideClaim(r.Context(), claimID, actor,
		approval.Action(req.Action), req.Comments)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Expense claim "+string(claim.State), claim)
}

// ListClaims implements ExpenseHandler.
func (h *ExpenseHandlerImpl) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	expenseClaims, err := h.expenseService.ListClaims(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, expenseClaims)
}
