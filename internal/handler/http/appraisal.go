package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/appraisal"
	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/handler/http/response"
)

type AppraisalHandler interface {
	CreateCycle(w http.ResponseWriter, r *http.Request)
	ListCycles(w http.ResponseWriter, r *http.Request)

	CreateForm(w http.ResponseWriter, r *http.Request)
	GetForm(w http.ResponseWriter, r *http.Request)
	SubmitRatings(w http.ResponseWriter, r *http.Request)
	SubmitForm(w http.ResponseWriter, r *http.Request)
	DecideForm(w http.ResponseWriter, r *http.Request)

	CreateProposal(w http.ResponseWriter, r *http.Request)
	DecideProposal(w http.ResponseWriter, r *http.Request)
	ListProposals(w http.ResponseWriter, r *http.Request)
}

type AppraisalHandlerImpl struct {
	appraisalService appraisal.AppraisalService
}

func NewAppraisalHandler(appraisalService appraisal.AppraisalService) AppraisalHandler {
	return &AppraisalHandlerImpl{appraisalService: appraisalService}
}

func appraisalActor(c authClaims) appraisal.Actor {
	return appraisal.Actor{UserID: c.UserID, EmployeeID: c.EmployeeID, Role: c.Role}
}

// CreateCycle implements AppraisalHandler.
func (h *AppraisalHandlerImpl) CreateCycle(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req appraisal.CreateCycleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCycle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	cycle, err := h.appraisalService.CreateCycle(r.Context(), req, req.ToItems())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Appraisal cycle created successfully", cycle)
}

// ListCycles implements AppraisalHandler.
func (h *AppraisalHandlerImpl) ListCycles(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	cycles, err := h.appraisalService.ListCycles(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cycles)
}

// CreateForm implements AppraisalHandler.
func (h *AppraisalHandlerImpl) CreateForm(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	cycleID := chi.URLParam(r, "cycleID")
	if cycleID == "" {
		response.BadRequest(w, "Cycle ID is required", nil)
		return
	}

	form, err := h.appraisalService.CreateForm(r.Context(), cycleID, claims.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Appraisal form created successfully", form)
}

// GetForm implements AppraisalHandler.
func (h *AppraisalHandlerImpl) GetForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "id")
	if formID == "" {
		response.BadRequest(w, "Form ID is required", nil)
		return
	}

	form, err := h.appraisalService.GetForm(r.Context(), formID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, form)
}

// SubmitRatings implements AppraisalHandler.
func (h *AppraisalHandlerImpl) SubmitRatings(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	formID := chi.URLParam(r, "id")
	if formID == "" {
		response.BadRequest(w, "Form ID is required", nil)
		return
	}

	current, err := h.appraisalService.GetForm(r.Context(), formID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req appraisal.SubmitRatingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitRatings decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.FormID = formID
	// The form owner rates themselves, anyone else rates as manager.
	req.AsRole = "manager"
	if claims.EmployeeID != "" && claims.EmployeeID == current.EmployeeID {
		req.AsRole = "self"
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	form, err := h.appraisalService.SubmitRatings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ratings submitted successfully", form)
}

// SubmitForm implements AppraisalHandler.
func (h *AppraisalHandlerImpl) SubmitForm(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "id")
	if formID == "" {
		response.BadRequest(w, "Form ID is required", nil)
		return
	}

	form, err := h.appraisalService.SubmitForm(r.Context(), formID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Appraisal form submitted successfully", form)
}

// DecideForm implements AppraisalHandler.
func (h *AppraisalHandlerImpl) DecideForm(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	formID := chi.URLParam(r, "id")
	if formID == "" {
		response.BadRequest(w, "Form ID is required", nil)
		return
	}

	var req struct {
		Action   string `json:"action"`
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideForm decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Action != string(approval.ActionApprove) && req.Action != string(approval.ActionReject) {
		response.BadRequest(w, "Action must be approve or reject", nil)
		return
	}

	form, err := h.appraisalService.DecideForm(r.Context(), formID,
		appraisalActor(claims), approval.Action(req.Action), req.Comments)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Appraisal form "+string(form.State), form)
}

// CreateProposal implements AppraisalHandler.
func (h *AppraisalHandlerImpl) CreateProposal(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req appraisal.CreatePIProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateProposal decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	proposal, err := h.appraisalService.CreateProposal(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Proposal created successfully", proposal)
}

// DecideProposal implements AppraisalHandler.
func (h *AppraisalHandlerImpl) DecideProposal(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	proposalID := chi.URLParam(r, "id")
	if proposalID == "" {
		response.BadRequest(w, "Proposal ID is required", nil)
		return
	}

	var req struct {
		Action   string `json:"action"`
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideProposal decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Action != string(approval.ActionApprove) && req.Action != string(approval.ActionReject) {
		response.BadRequest(w, "Action must be approve or reject", nil)
		return
	}

	proposal, err := h.appraisalService.DecideProposal(r.Context(), proposalID,
		appraisalActor(claims), approval.Action(req.Action), req.Comments)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Proposal "+string(proposal.Status), proposal)
}

// ListProposals implements AppraisalHandler.
func (h *AppraisalHandlerImpl) ListProposals(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	proposals, err := h.appraisalService.ListProposals(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, proposals)
}
