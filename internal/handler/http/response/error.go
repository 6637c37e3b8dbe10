package response

import (
	"errors"
	"net/http"

	"github.com/kelolahr/hrms-backend-go/internal/domain/appraisal"
	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/domain/employee"
	"github.com/kelolahr/hrms-backend-go/internal/domain/exit"
	"github.com/kelolahr/hrms-backend-go/internal/domain/expense"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/domain/payroll"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Shared approval workflow errors
	case errors.Is(err, approval.ErrInvalidStageTransition):
		Conflict(w, err.Error())
	case errors.Is(err, approval.ErrAlreadyProcessed):
		Conflict(w, err.Error())
	case errors.Is(err, approval.ErrNotSubmittable):
		Conflict(w, err.Error())

	// Role errors
	case errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrMissingClaims):
		Unauthorized(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Reporting manager not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrManagerCycleDetected):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrEmployeeSeparated):
		Conflict(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrPolicyNotFound):
		NotFound(w, "Leave policy not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrEncashmentNotFound):
		NotFound(w, "Encashment request not found")
	case errors.Is(err, leave.ErrAccrualRunNotFound):
		NotFound(w, "Accrual run not found")
	case errors.Is(err, leave.ErrNoPolicyMapping):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrPeriodClosed):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrDuplicateAccrual):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, leave.ErrEncashmentNotAllowed):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrRegularisationNotFound):
		NotFound(w, "Regularisation request not found")
	case errors.Is(err, attendance.ErrNoWorkSchedule):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, attendance.ErrIncompleteAttendance):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrPunchOutOfOrder):
		BadRequest(w, err.Error(), nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrSummaryNotFound):
		NotFound(w, "Payroll summary not found")
	case errors.Is(err, payroll.ErrUnmappedStatus):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, payroll.ErrMappingExists):
		Conflict(w, err.Error())

	// Exit domain errors
	case errors.Is(err, exit.ErrResignationNotFound):
		NotFound(w, "Resignation request not found")
	case errors.Is(err, exit.ErrResignationExists),
		errors.Is(err, exit.ErrExitAlreadyCompleted),
		errors.Is(err, exit.ErrFnFExists):
		Conflict(w, err.Error())
	case errors.Is(err, exit.ErrResignationNotApproved),
		errors.Is(err, exit.ErrChecklistNotInitiated),
		errors.Is(err, exit.ErrClearancePending),
		errors.Is(err, exit.ErrAssetsNotReturned),
		errors.Is(err, exit.ErrHRFormNotSubmitted),
		errors.Is(err, exit.ErrFnFNotEligible):
		UnprocessableEntity(w, err.Error())

	// Appraisal domain errors
	case errors.Is(err, appraisal.ErrCycleNotFound):
		NotFound(w, "Appraisal cycle not found")
	case errors.Is(err, appraisal.ErrFormNotFound):
		NotFound(w, "Appraisal form not found")
	case errors.Is(err, appraisal.ErrProposalNotFound):
		NotFound(w, "PI proposal not found")
	case errors.Is(err, appraisal.ErrCycleClosed),
		errors.Is(err, appraisal.ErrFormExists):
		Conflict(w, err.Error())
	case errors.Is(err, appraisal.ErrUnknownItem):
		UnprocessableEntity(w, err.Error())

	// Expense domain errors
	case errors.Is(err, expense.ErrClaimNotFound):
		NotFound(w, "Expense claim not found")
	case errors.Is(err, expense.ErrAdvanceNotFound):
		NotFound(w, "Expense advance not found")
	case errors.Is(err, expense.ErrAdvanceClosed):
		Conflict(w, err.Error())

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
