package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/handler/http/response"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
)

type LeaveHandler interface {
	CreateType(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)

	CreatePolicy(w http.ResponseWriter, r *http.Request)
	ActivatePolicy(w http.ResponseWriter, r *http.Request)
	ListPolicies(w http.ResponseWriter, r *http.Request)
	CreateMapping(w http.ResponseWriter, r *http.Request)
	ListMappings(w http.ResponseWriter, r *http.Request)
	ResolvePolicy(w http.ResponseWriter, r *http.Request)

	GetMyBalances(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	GetLedger(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)

	TriggerAccrualRun(w http.ResponseWriter, r *http.Request)
	ListAccrualRuns(w http.ResponseWriter, r *http.Request)

	ClosePeriod(w http.ResponseWriter, r *http.Request)
	ListClosures(w http.ResponseWriter, r *http.Request)

	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)

	CreateEncashment(w http.ResponseWriter, r *http.Request)
	DecideEncashment(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

func leaveActor(c authClaims) leave.Actor {
	return leave.Actor{UserID: c.UserID, EmployeeID: c.EmployeeID, Role: c.Role}
}

// CreateType implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveType, err := l.leaveService.CreateLeaveType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created successfully", leaveType)
}

// ListTypes implements LeaveHandler.
func (l *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	leaveTypes, err := l.leaveService.ListLeaveTypes(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaveTypes)
}

// CreatePolicy implements LeaveHandler.
func (l *LeaveHandlerImpl) CreatePolicy(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreatePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePolicy decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	policy, err := l.leaveService.CreatePolicy(r.Context(), req.ToPolicy())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave policy created successfully", policy)
}

// ActivatePolicy implements LeaveHandler.
func (l *LeaveHandlerImpl) ActivatePolicy(w http.ResponseWriter, r *http.Request) {
	policyID := chi.URLParam(r, "id")
	if policyID == "" {
		response.BadRequest(w, "Policy ID is required", nil)
		return
	}

	if err := l.leaveService.ActivatePolicy(r.Context(), policyID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave policy activated successfully", nil)
}

// ListPolicies implements LeaveHandler.
func (l *LeaveHandlerImpl) ListPolicies(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	policies, err := l.leaveService.ListPolicies(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, policies)
}

// CreateMapping implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateMapping(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.CreateMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateMapping decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	mapping, err := l.leaveService.CreateMapping(r.Context(), req.ToMapping())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Policy mapping created successfully", mapping)
}

// ListMappings implements LeaveHandler.
func (l *LeaveHandlerImpl) ListMappings(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	mappings, err := l.leaveService.ListMappings(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mappings)
}

// ResolvePolicy implements LeaveHandler.
func (l *LeaveHandlerImpl) ResolvePolicy(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	asOf, ok := validator.IsValidDate(r.URL.Query().Get("as_of"))
	if !ok {
		response.BadRequest(w, "Query parameter as_of must be YYYY-MM-DD", nil)
		return
	}

	mapping, err := l.leaveService.ResolvePolicy(r.Context(), employeeID, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapping)
}

// GetMyBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	balances, err := l.leaveService.GetBalances(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// GetBalances implements LeaveHandler.
func (l *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	balances, err := l.leaveService.GetBalances(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, balances)
}

// GetLedger implements LeaveHandler.
func (l *LeaveHandlerImpl) GetLedger(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	leaveTypeID := chi.URLParam(r, "leaveTypeID")
	if employeeID == "" || leaveTypeID == "" {
		response.BadRequest(w, "Employee ID and leave type ID are required", nil)
		return
	}

	logs, err := l.leaveService.GetLedger(r.Context(), employeeID, leaveTypeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, logs)
}

// AdjustBalance implements LeaveHandler.
func (l *LeaveHandlerImpl) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AdjustBalance decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := l.leaveService.AdjustBalance(r.Context(), req, leaveActor(claims))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Balance adjusted successfully", result)
}

// Reconcile implements LeaveHandler.
func (l *LeaveHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	periodStart, periodEnd, ok := validator.IsValidDateRange(
		r.URL.Query().Get("period_start"), r.URL.Query().Get("period_end"))
	if !ok {
		response.BadRequest(w, "Query parameters period_start and period_end must be a valid date range", nil)
		return
	}

	results, err := l.leaveService.Reconcile(r.Context(), claims.CompanyID, periodStart, periodEnd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// TriggerAccrualRun implements LeaveHandler.
func (l *LeaveHandlerImpl) TriggerAccrualRun(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.TriggerAccrualRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("TriggerAccrualRun decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	run, err := l.leaveService.TriggerAccrualRun(r.Context(), req, leaveActor(claims))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Accrual run completed", run)
}

// ListAccrualRuns implements LeaveHandler.
func (l *LeaveHandlerImpl) ListAccrualRuns(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	runs, err := l.leaveService.ListAccrualRuns(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, runs)
}

// ClosePeriod implements LeaveHandler.
func (l *LeaveHandlerImpl) ClosePeriod(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.ClosePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClosePeriod decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	closure, err := l.leaveService.ClosePeriod(r.Context(), req, leaveActor(claims))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Period closed successfully", closure)
}

// ListClosures implements LeaveHandler.
func (l *LeaveHandlerImpl) ListClosures(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	closures, err := l.leaveService.ListClosures(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, closures)
}

// CreateRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveRequest, err := l.leaveService.CreateRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request created successfully", leaveRequest)
}

func (l *LeaveHandlerImpl) decideRequest(w http.ResponseWriter, r *http.Request, action approval.Action) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.DecideRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	leaveRequest, err := l.leaveService.DecideRequest(r.Context(), req, leaveActor(claims), action)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request "+string(leaveRequest.State), leaveRequest)
}

// ApproveRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	l.decideRequest(w, r, approval.ActionApprove)
}

// RejectRequest implements LeaveHandler.
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	l.decideRequest(w, r, approval.ActionReject)
}

// ListRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := l.leaveService.ListRequests(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// GetMyRequests implements LeaveHandler.
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	requests, err := l.leaveService.ListMyRequests(r.Context(), claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// CreateEncashment implements LeaveHandler.
func (l *LeaveHandlerImpl) CreateEncashment(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req leave.CreateEncashmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEncashment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	encashment, err := l.leaveService.CreateEncashment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Encashment request created successfully", encashment)
}

// DecideEncashment implements LeaveHandler.
func (l *LeaveHandlerImpl) DecideEncashment(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Encashment request ID is required", nil)
		return
	}

	var req struct {
		Action   string `json:"action"`
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideEncashment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Action != string(approval.ActionApprove) && req.Action != string(approval.ActionReject) {
		response.BadRequest(w, "Action must be approve or reject", nil)
		return
	}

	encashment, err := l.leaveService.DecideEncashment(r.Context(), requestID,
		leaveActor(claims), approval.Action(req.Action), req.Comments)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Encashment request "+string(encashment.State), encashment)
}
