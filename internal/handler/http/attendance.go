package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kelolahr/hrms-backend-go/internal/domain/approval"
	"github.com/kelolahr/hrms-backend-go/internal/domain/attendance"
	"github.com/kelolahr/hrms-backend-go/internal/handler/http/response"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	ClassifyDay(w http.ResponseWriter, r *http.Request)
	ProcessRange(w http.ResponseWriter, r *http.Request)
	GetMyAttendance(w http.ResponseWriter, r *http.Request)
	GetCompanyAttendance(w http.ResponseWriter, r *http.Request)

	CreateRegularisation(w http.ResponseWriter, r *http.Request)
	DecideRegularisation(w http.ResponseWriter, r *http.Request)

	CreateSchedule(w http.ResponseWriter, r *http.Request)
	AssignSchedule(w http.ResponseWriter, r *http.Request)
	CreateCalendar(w http.ResponseWriter, r *http.Request)
	AddHoliday(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

func attendanceActor(c authClaims) attendance.Actor {
	return attendance.Actor{UserID: c.UserID, EmployeeID: c.EmployeeID, Role: c.Role}
}

// Punch implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req attendance.RecordPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Punch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	punch, err := h.attendanceService.RecordPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded successfully", punch)
}

// ClassifyDay implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ClassifyDay(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.BadRequest(w, "Query parameter date must be YYYY-MM-DD", nil)
		return
	}

	daily, err := h.attendanceService.ClassifyDay(r.Context(), employeeID, claims.CompanyID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Day classified successfully", attendance.ToDailyResponse(daily))
}

// ProcessRange implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ProcessRange(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.ProcessRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ProcessRange decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ProcessRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance processed successfully", map[string]any{
		"processed_days": len(records),
	})
}

func attendanceRange(r *http.Request) (start, end string) {
	return r.URL.Query().Get("start"), r.URL.Query().Get("end")
}

// GetMyAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyAttendance(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	start, end, ok := validator.IsValidDateRange(attendanceRange(r))
	if !ok {
		response.BadRequest(w, "Query parameters start and end must be a valid date range", nil)
		return
	}

	records, err := h.attendanceService.GetMyAttendance(r.Context(), claims.EmployeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetCompanyAttendance implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetCompanyAttendance(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	start, end, ok := validator.IsValidDateRange(attendanceRange(r))
	if !ok {
		response.BadRequest(w, "Query parameters start and end must be a valid date range", nil)
		return
	}

	records, err := h.attendanceService.GetCompanyAttendance(r.Context(), claims.CompanyID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// CreateRegularisation implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CreateRegularisation(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if claims.EmployeeID == "" {
		response.Forbidden(w, "Employee ID not found in token")
		return
	}

	var req attendance.CreateRegularisationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRegularisation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = claims.EmployeeID
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	request, err := h.attendanceService.CreateRegularisation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Regularisation request created successfully", request)
}

// DecideRegularisation implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DecideRegularisation(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Regularisation request ID is required", nil)
		return
	}

	var req struct {
		Action   string `json:"action"`
		Comments string `json:"comments"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("DecideRegularisation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.Action != string(approval.ActionApprove) && req.Action != string(approval.ActionReject) {
		response.BadRequest(w, "Action must be approve or reject", nil)
		return
	}

	request, err := h.attendanceService.DecideRegularisation(r.Context(), requestID,
		attendanceActor(claims), approval.Action(req.Action), req.Comments)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Regularisation request "+string(request.State), request)
}

// CreateSchedule implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	schedule, err := h.attendanceService.CreateSchedule(r.Context(), req.ToSchedule())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Work schedule created successfully", schedule)
}

// AssignSchedule implements AttendanceHandler.
func (h *AttendanceHandlerImpl) AssignSchedule(w http.ResponseWriter, r *http.Request) {
	var req attendance.AssignScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	effectiveFrom, _ := validator.IsValidDate(req.EffectiveFrom)
	if err := h.attendanceService.AssignSchedule(r.Context(), req.EmployeeID, req.ScheduleID, effectiveFrom); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work schedule assigned successfully", nil)
}

// CreateCalendar implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CreateCalendar(w http.ResponseWriter, r *http.Request) {
	claims, err := claimsFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req attendance.CreateCalendarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCalendar decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = claims.CompanyID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	calendar, err := h.attendanceService.CreateCalendar(r.Context(), attendance.HolidayCalendar{
		CompanyID: req.CompanyID,
		Name:      req.Name,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday calendar created successfully", calendar)
}

// AddHoliday implements AttendanceHandler.
func (h *AttendanceHandlerImpl) AddHoliday(w http.ResponseWriter, r *http.Request) {
	calendarID := chi.URLParam(r, "id")
	if calendarID == "" {
		response.BadRequest(w, "Calendar ID is required", nil)
		return
	}

	var req attendance.AddHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddHoliday decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CalendarID = calendarID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date, _ := validator.IsValidDate(req.Date)
	holiday, err := h.attendanceService.AddHoliday(r.Context(), attendance.Holiday{
		CalendarID: req.CalendarID,
		Date:       date,
		Name:       req.Name,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday added successfully", holiday)
}
