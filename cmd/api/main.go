package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelolahr/hrms-backend-go/internal/config"
	"github.com/kelolahr/hrms-backend-go/internal/domain/leave"
	"github.com/kelolahr/hrms-backend-go/internal/domain/user"
	appHTTP "github.com/kelolahr/hrms-backend-go/internal/handler/http"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/cron"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/database"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/jwt"
	"github.com/kelolahr/hrms-backend-go/internal/repository/postgresql"
	appraisalService "github.com/kelolahr/hrms-backend-go/internal/service/appraisal"
	attendanceService "github.com/kelolahr/hrms-backend-go/internal/service/attendance"
	employeeService "github.com/kelolahr/hrms-backend-go/internal/service/employee"
	exitService "github.com/kelolahr/hrms-backend-go/internal/service/exit"
	expenseService "github.com/kelolahr/hrms-backend-go/internal/service/expense"
	leaveService "github.com/kelolahr/hrms-backend-go/internal/service/leave"
	payrollService "github.com/kelolahr/hrms-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	balanceRepo := postgresql.NewBalanceRepository(db)
	accrualRepo := postgresql.NewAccrualRepository(db)
	closureRepo := postgresql.NewClosureRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	actionRepo := postgresql.NewApprovalActionRepository(db)
	punchRepo := postgresql.NewPunchRepository(db)
	dailyRepo := postgresql.NewDailyRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	regularisationRepo := postgresql.NewRegularisationRepository(db)
	overrideRepo := postgresql.NewOverrideRepository(db)
	mappingRepo := postgresql.NewMappingRepository(db)
	summaryRepo := postgresql.NewSummaryRepository(db)
	resignationRepo := postgresql.NewResignationRepository(db)
	checklistRepo := postgresql.NewChecklistRepository(db)
	fnfRepo := postgresql.NewFnFRepository(db)
	cycleRepo := postgresql.NewCycleRepository(db)
	formRepo := postgresql.NewFormRepository(db)
	proposalRepo := postgresql.NewPIProposalRepository(db)
	claimRepo := postgresql.NewClaimRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(
		db,
		leaveTypeRepo,
		policyRepo,
		balanceRepo,
		accrualRepo,
		closureRepo,
		requestRepo,
		actionRepo,
		employeeRepo,
		dailyRepo,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		punchRepo,
		dailyRepo,
		scheduleRepo,
		regularisationRepo,
		overrideRepo,
		requestRepo,
		closureRepo,
		actionRepo,
		employeeRepo,
	)
	payrollSvc := payrollService.NewPayrollService(db, mappingRepo, summaryRepo, dailyRepo, employeeRepo, closureRepo)
	exitSvc := exitService.NewExitService(db, resignationRepo, checklistRepo, fnfRepo, actionRepo, employeeRepo, leaveSvc)
	appraisalSvc := appraisalService.NewAppraisalService(db, cycleRepo, formRepo, proposalRepo, actionRepo, employeeRepo)
	expenseSvc := expenseService.NewExpenseService(db, claimRepo, advanceRepo, actionRepo, employeeRepo)

	handlers := appHTTP.Handlers{
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Exit:       appHTTP.NewExitHandler(exitSvc),
		Appraisal:  appHTTP.NewAppraisalHandler(appraisalSvc),
		Expense:    appHTTP.NewExpenseHandler(expenseSvc),
		Audit:      appHTTP.NewAuditHandler(actionRepo),
	}
	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	scheduler := cron.NewScheduler()
	if cfg.Accrual.Enabled {
		scheduler.AddJob("leave-accrual", cfg.Accrual.Interval, func(ctx context.Context) error {
			return runMonthlyAccrual(ctx, employeeRepo.ListCompanyIDs, leaveSvc)
		})
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}

// runMonthlyAccrual credits the current month for every company. Reruns are
// safe, duplicate periods are rejected by the run guard.
func runMonthlyAccrual(ctx context.Context, listCompanies func(context.Context) ([]string, error), svc leave.LeaveService) error {
	now := time.Now().UTC()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	companyIDs, err := listCompanies(ctx)
	if err != nil {
		return fmt.Errorf("list companies: %w", err)
	}

	actor := leave.Actor{UserID: "system", Role: user.RoleAdmin}
	for _, companyID := range companyIDs {
		req := leave.TriggerAccrualRunRequest{
			CompanyID:   companyID,
			RunType:     "monthly",
			PeriodStart: periodStart.Format("2006-01-02"),
			PeriodEnd:   periodEnd.Format("2006-01-02"),
		}
		if _, err := svc.TriggerAccrualRun(ctx, req, actor); err != nil {
			if errors.Is(err, leave.ErrDuplicateAccrual) {
				continue
			}
			slog.Error("Accrual run failed", "company_id", companyID, "error", err)
		}
	}
	return nil
}
