package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kelolahr/hrms-backend-go/internal/domain/payroll"
	"github.com/kelolahr/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	CreateMapping(w http.ResponseWriter, r *http.Request)
	ListMappings(w http.ResponseWriter, r *http.Request)
	GenerateSummaries(w http.ResponseWriter, r *http.Request)
	ListSummaries(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

// CreateMapping implements PayrollHandler.
func (h *PayrollHandlerImpl) CreateMapping(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.CreateMappingRequest
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

	mapping, err := h.payrollService.CreateMapping(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Day type mapping created successfully", mapping)
}

// ListMappings implements PayrollHandler.
func (h *PayrollHandlerImpl) ListMappings(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	mappings, err := h.payrollService.ListMappings(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mappings)
}

// GenerateSummaries implements PayrollHandler.
func (h *PayrollHandlerImpl) GenerateSummaries(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req payroll.GenerateSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateSummaries decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summaries, err := h.payrollService.GenerateSummaries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll summaries generated successfully", summaries)
}

// ListSummaries implements PayrollHandler.
func (h *PayrollHandlerImpl) ListSummaries(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	req := payroll.GenerateSummaryRequest{
		CompanyID:   claims.CompanyID,
		PeriodStart: r.URL.Query().Get("period_start"),
		PeriodEnd:   r.URL.Query().Get("period_end"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summaries, err := h.payrollService.ListSummaries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summaries)
}
