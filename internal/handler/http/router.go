package http

import (
	"log/slog"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/kelolahr/hrms-backend-go/internal/config"
	"github.com/kelolahr/hrms-backend-go/internal/handler/http/middleware"
	"github.com/kelolahr/hrms-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Employee   EmployeeHandler
	Leave      LeaveHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Exit       ExitHandler
	Appraisal  AppraisalHandler
	Expense    ExpenseHandler
	Audit      AuditHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "kelolahr"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(httprate.LimitByIP(100, time.Minute))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)
				r.Get("/{employeeID}/balances", h.Leave.GetBalances)
				r.Get("/{employeeID}/balances/{leaveTypeID}/ledger", h.Leave.GetLedger)
				r.Get("/{employeeID}/policy", h.Leave.ResolvePolicy)
				r.Get("/{employeeID}/attendance/classify", h.Attendance.ClassifyDay)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Get("/types", h.Leave.ListTypes)

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", h.Leave.CreateRequest)
					r.Get("/", h.Leave.ListRequests)
					r.Get("/my", h.Leave.GetMyRequests)
					r.Post("/{id}/approve", h.Leave.ApproveRequest)
					r.Post("/{id}/reject", h.Leave.RejectRequest)
				})

				r.Route("/encashments", func(r chi.Router) {
					r.Post("/", h.Leave.CreateEncashment)
					r.Post("/{id}/decide", h.Leave.DecideEncashment)
				})

				r.Get("/balances/my", h.Leave.GetMyBalances)

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/types", h.Leave.CreateType)

					r.Route("/policies", func(r chi.Router) {
						r.Post("/", h.Leave.CreatePolicy)
						r.Get("/", h.Leave.ListPolicies)
						r.Post("/{id}/activate", h.Leave.ActivatePolicy)
					})
					r.Route("/mappings", func(r chi.Router) {
						r.Post("/", h.Leave.CreateMapping)
						r.Get("/", h.Leave.ListMappings)
					})

					r.Post("/balances/adjust", h.Leave.AdjustBalance)
					r.Get("/balances/reconcile", h.Leave.Reconcile)

					r.Route("/accruals", func(r chi.Router) {
						r.Post("/", h.Leave.TriggerAccrualRun)
						r.Get("/", h.Leave.ListAccrualRuns)
					})
					r.Route("/closures", func(r chi.Router) {
						r.Post("/", h.Leave.ClosePeriod)
						r.Get("/", h.Leave.ListClosures)
					})
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/punch", h.Attendance.Punch)
				r.Get("/my", h.Attendance.GetMyAttendance)

				r.Route("/regularisations", func(r chi.Router) {
					r.Post("/", h.Attendance.CreateRegularisation)
					r.Post("/{id}/decide", h.Attendance.DecideRegularisation)
				})

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", h.Attendance.GetCompanyAttendance)
					r.Post("/process", h.Attendance.ProcessRange)

					r.Post("/schedules", h.Attendance.CreateSchedule)
					r.Post("/schedules/assign", h.Attendance.AssignSchedule)
					r.Post("/calendars", h.Attendance.CreateCalendar)
					r.Post("/calendars/{id}/holidays", h.Attendance.AddHoliday)
				})
			})

			// HR only
			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Route("/mappings", func(r chi.Router) {
					r.Post("/", h.Payroll.CreateMapping)
					r.Get("/", h.Payroll.ListMappings)
				})
				r.Route("/summaries", func(r chi.Router) {
					r.Post("/generate", h.Payroll.GenerateSummaries)
					r.Get("/", h.Payroll.ListSummaries)
				})
			})

			r.Route("/exit", func(r chi.Router) {
				r.Route("/resignations", func(r chi.Router) {
					r.Post("/", h.Exit.CreateResignation)
					r.Post("/{id}/decide", h.Exit.DecideResignation)

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Get("/", h.Exit.ListResignations)
						r.Post("/{id}/checklist", h.Exit.InitChecklist)
						r.Get("/{id}/checklist", h.Exit.GetChecklist)
						r.Post("/{id}/hr-form", h.Exit.SubmitHRForm)
						r.Post("/{id}/complete", h.Exit.CompleteExit)
						r.Post("/{id}/fnf", h.Exit.CreateFnF)
					})
				})

				// HR only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Post("/clearance-items/{itemID}/clear", h.Exit.ClearItem)
					r.Post("/assets/{assetID}/return", h.Exit.ReturnAsset)
					r.Post("/fnf/{fnfID}/settle", h.Exit.SettleFnF)
				})
			})

			r.Route("/appraisal", func(r chi.Router) {
				r.Get("/cycles", h.Appraisal.ListCycles)
				r.Post("/cycles/{cycleID}/forms", h.Appraisal.CreateForm)

				r.Route("/forms/{id}", func(r chi.Router) {
					r.Get("/", h.Appraisal.GetForm)
					r.Post("/ratings", h.Appraisal.SubmitRatings)
					r.Post("/submit", h.Appraisal.SubmitForm)
					r.Post("/decide", h.Appraisal.DecideForm)
				})

				r.Route("/proposals", func(r chi.Router) {
					r.Post("/", h.Appraisal.CreateProposal)
					r.Post("/{id}/decide", h.Appraisal.DecideProposal)

					// HR only
					r.With(middleware.RequireHR).Get("/", h.Appraisal.ListProposals)
				})

				// HR only
				r.With(middleware.RequireHR).Post("/cycles", h.Appraisal.CreateCycle)
			})

			r.Route("/expenses", func(r chi.Router) {
				r.Route("/claims", func(r chi.Router) {
					r.Post("/", h.Expense.CreateClaim)
					r.Get("/", h.Expense.ListClaims)
					r.Post("/{id}/decide", h.Expense.DecideClaim)
				})

				// HR only
				r.With(middleware.RequireHR).Post("/advances", h.Expense.CreateAdvance)
			})

			// HR only
			r.With(middleware.RequireHR).Get("/audit/{kind}/{entityID}", h.Audit.GetTrail)
		})
	})
	return r
}
