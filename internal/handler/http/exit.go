package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/exit"
	"github.com/kelolahr/hrms-backend-go/internal/handler/http/response"
)

type ExitHandler interface {
	CreateResignation(w http.ResponseWriter, r *http.Request)
	DecideResignation(w http.ResponseWriter, r *http.Request)
	ListResignations(w http.ResponseWriter, r *http.Request)

	InitChecklist(w http.ResponseWriter, r *http.Request)
	GetChecklist(w http.ResponseWriter, r *http.Request)
	ClearItem(w http.ResponseWriter, r *http.Request)
	ReturnAsset(w http.ResponseWriter, r *http.Request)
	SubmitHRForm(w http.ResponseWriter, r *http.Request)
	CompleteExit(w http.ResponseWriter, r *http.Request)

	CreateFnF(w http.ResponseWriter, r *http.Request)
	SettleFnF(w http.ResponseWriter, r *http.Request)
}

type ExitHandlerImpl struct {
	exitService exit.ExitService
}

func NewExitHandler(exitService exit.ExitService) ExitHandler {
	return &ExitHandlerImpl{exitService: exitService}
}

func exitActor(c authClaims) exit.Actor {
	return exit.Actor{UserID: c.UserID, EmployeeID: c.EmployeeID, Role: c.Role}
}

// CreateResignation implements ExitHandler.
func (h *ExitHandlerImpl) CreateResignation(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req exit.CreateResignationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateResignation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	resignation, err := h.exitService.CreateResignation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Resignation submitted successfully", resignation)
}

// DecideResignation implements ExitHandler.
func (h *ExitHandlerImpl) DecideResignation(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resignationID := chi.URLParam(r, "id")
	if resignationID == "" {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	var req struct {
		Action   string `json:"action"`
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideResignation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Action != string(approval.ActionApprove) && req.Action != string(approval.ActionReject) {
		response.BadRequest(w, "Action must be approve or reject", nil)
		return
	}

	resignation, err := h.exitService.DecideResignation(r.Context(), resignationID,
		exitActor(claims), approval.Action(req.Action), req.Comments)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Resignation "+string(resignation.State), resignation)
}

// ListResignations implements ExitHandler.
func (h *ExitHandlerImpl) ListResignations(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resignations, err := h.exitService.ListResignations(r.Context(), claims.CompanyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resignations)
}

// InitChecklist implements ExitHandler.
func (h *ExitHandlerImpl) InitChecklist(w http.ResponseWriter, r *http.Request) {
	resignationID := chi.URLParam(r, "id")
	if resignationID == "" {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	var req exit.InitChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("InitChecklist decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ResignationID = resignationID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.exitService.InitChecklist(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Exit checklist initiated successfully", nil)
}

// GetChecklist implements ExitHandler.
func (h *ExitHandlerImpl) GetChecklist(w http.ResponseWriter, r *http.Request) {
	resignationID := chi.URLParam(r, "id")
	if resignationID == "" {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	items, assets, form, err := h.exitService.GetChecklist(r.Context(), resignationID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]any{
		"clearance_items": items,
		"assets":          assets,
		"hr_form":         form,
	})
}

// ClearItem implements ExitHandler.
func (h *ExitHandlerImpl) ClearItem(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	itemID := chi.URLParam(r, "itemID")
	if itemID == "" {
		response.BadRequest(w, "Clearance item ID is required", nil)
		return
	}

	var req struct {
		Remarks *string `json:"remarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClearItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.exitService.ClearItem(r.Context(), itemID, exitActor(claims), req.Remarks); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clearance item cleared successfully", nil)
}

// ReturnAsset implements ExitHandler.
func (h *ExitHandlerImpl) ReturnAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")
	if assetID == "" {
		response.BadRequest(w, "Asset ID is required", nil)
		return
	}

	if err := h.exitService.ReturnAsset(r.Context(), assetID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Asset marked returned", nil)
}

// SubmitHRForm implements ExitHandler.
func (h *ExitHandlerImpl) SubmitHRForm(w http.ResponseWriter, r *http.Request) {
	resignationID := chi.URLParam(r, "id")
	if resignationID == "" {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	var req struct {
		Feedback *string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitHRForm decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.exitService.SubmitHRForm(r.Context(), resignationID, req.Feedback); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exit interview form submitted successfully", nil)
}

// CompleteExit implements ExitHandler.
func (h *ExitHandlerImpl) CompleteExit(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resignationID := chi.URLParam(r, "id")
	if resignationID == "" {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	if err := h.exitService.CompleteExit(r.Context(), resignationID, exitActor(claims)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exit completed successfully", nil)
}

// CreateFnF implements ExitHandler.
func (h *ExitHandlerImpl) CreateFnF(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resignationID := chi.URLParam(r, "id")
	if resignationID == "" {
		response.BadRequest(w, "Resignation ID is required", nil)
		return
	}

	var req exit.CreateFnFRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateFnF decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ResignationID = resignationID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	fnf, err := h.exitService.CreateFnF(r.Context(), req, exitActor(claims))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Full and final settlement created successfully", fnf)
}

// SettleFnF implements ExitHandler.
func (h *ExitHandlerImpl) SettleFnF(w http.ResponseWriter, r *http.Request) {
	fnfID := chi.URLParam(r, "fnfID")
	if fnfID == "" {
		response.BadRequest(w, "Settlement ID is required", nil)
		return
	}

	if err := h.exitService.SettleFnF(r.Context(), fnfID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settlement marked settled", nil)
}
