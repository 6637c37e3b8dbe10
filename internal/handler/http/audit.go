package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/handler/http/response"
)

var auditKinds = map[string]approval.EntityKind{
	string(approval.KindLeaveRequest):   approval.KindLeaveRequest,
	string(approval.KindEncashment):     approval.KindEncashment,
	string(approval.KindRegularisation): approval.KindRegularisation,
	string(approval.KindResignation):    approval.KindResignation,
	string(approval.KindExpenseClaim):   approval.KindExpenseClaim,
	string(approval.KindAppraisalForm):  approval.KindAppraisalForm,
	string(approval.KindPIProposal):     approval.KindPIProposal,
}

type AuditHandler interface {
	GetTrail(w http.ResponseWriter, r *http.Request)
}

// AuditHandlerImpl reads the append-only approval trail directly; there is no
// business logic between the table and the response.
type AuditHandlerImpl struct {
	actions approval.ApprovalActionRepository
}

func NewAuditHandler(actions approval.ApprovalActionRepository) AuditHandler {
	return &AuditHandlerImpl{actions: actions}
}

// GetTrail implements AuditHandler.
func (h *AuditHandlerImpl) GetTrail(w http.ResponseWriter, r *http.Request) {
	kind, ok := auditKinds[chi.URLParam(r, "kind")]
	if !ok {
		response.BadRequest(w, "Unknown entity kind", nil)
		return
	}
	entityID := chi.URLParam(r, "entityID")
	if entityID == "" {
		response.BadRequest(w, "Entity ID is required", nil)
		return
	}

	trail, err := h.actions.GetByEntity(r.Context(), kind, entityID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, trail)
}
