package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ems-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ems-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Pinger is a dependency reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Master     MasterHandler
	Schedule   ScheduleHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

type RouterOptions struct {
	Logger      *slog.Logger
	CORSOrigins []string
	JWTService  jwt.Service
	Metrics     *metrics.Metrics
	Health      map[string]Pinger
}

func NewRouter(opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", healthHandler(opts.Health))
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(opts.JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", h.Employee.ListEmployees)
				r.Get("/{id}", h.Employee.GetEmployee)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeactivateEmployee)
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", h.Master.ListDepartments)
				r.Get("/{id}", h.Master.GetDepartment)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Master.CreateDepartment)
					r.Put("/{id}", h.Master.UpdateDepartment)
					r.Delete("/{id}", h.Master.DeleteDepartment)
				})
			})

			r.Route("/designations", func(r chi.Router) {
				r.Get("/", h.Master.ListDesignations)
				r.Get("/{id}", h.Master.GetDesignation)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Master.CreateDesignation)
					r.Put("/{id}", h.Master.UpdateDesignation)
					r.Delete("/{id}", h.Master.DeleteDesignation)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", h.Schedule.ListShifts)
				r.Get("/{id}", h.Schedule.GetShift)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Schedule.CreateShift)
					r.Put("/{id}", h.Schedule.UpdateShift)
					r.Delete("/{id}", h.Schedule.DeleteShift)
				})
			})

			r.Route("/employee-shifts", func(r chi.Router) {
				r.Get("/", h.Schedule.ListEmployeeShifts)
				r.Get("/{id}", h.Schedule.GetEmployeeShift)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Schedule.AssignShift)
					r.Put("/{id}", h.Schedule.UpdateEmployeeShift)
					r.Delete("/{id}", h.Schedule.DeleteEmployeeShift)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/", h.Attendance.ListAttendance)
				r.Get("/{id}", h.Attendance.GetAttendance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Attendance.CreateAttendance)
					r.Put("/{id}", h.Attendance.UpdateAttendance)
					r.Delete("/{id}", h.Attendance.DeleteAttendance)
				})
			})

			r.Route("/salary-templates", func(r chi.Router) {
				r.Get("/", h.Payroll.ListTemplates)
				r.Get("/{employeeID}", h.Payroll.GetTemplate)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Payroll.UpsertTemplate)
					r.Put("/{employeeID}", h.Payroll.UpsertTemplate)
					r.Delete("/{employeeID}", h.Payroll.DeleteTemplate)
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/", h.Payroll.ListPayrollRuns)
				r.Get("/summary", h.Payroll.GetPayrollSummary)
				r.Get("/{id}", h.Payroll.GetPayrollRun)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", h.Payroll.GeneratePayroll)
					r.Put("/{id}", h.Payroll.UpdatePayrollRun)
					r.Delete("/{id}", h.Payroll.DeletePayrollRun)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendance/daily", h.Report.AttendanceDaily)
				r.Get("/attendance/range", h.Report.AttendanceRange)
				r.Get("/attendance/summary", h.Report.AttendanceSummary)
				r.Get("/attendance/late", h.Report.AttendanceLate)
				r.Get("/shifts/coverage", h.Report.ShiftsCoverage)
				r.Get("/shifts/roster", h.Report.ShiftsRoster)
				r.Get("/payroll/summary", h.Report.PayrollSummary)
				r.Get("/payroll/payslip", h.Report.Payslip)
				r.Get("/salary/department-cost", h.Report.SalaryDepartmentCost)
				r.Get("/overtime", h.Report.Overtime)
				r.Get("/headcount", h.Report.Headcount)
				r.Get("/employees/profile", h.Report.EmployeeProfile)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/kpis", h.Dashboard.GetKPIs)
				r.Get("/attendance/trend", h.Dashboard.GetAttendanceTrend)
				r.Get("/attendance/breakdown", h.Dashboard.GetAttendanceBreakdown)
				r.Get("/attendance/late", h.Dashboard.GetAttendanceLate)
				r.Get("/shifts/coverage", h.Dashboard.GetShiftsCoverage)
				r.Get("/departments/headcount", h.Dashboard.GetDepartmentsHeadcount)
				r.Get("/overtime/top", h.Dashboard.GetOvertimeTop)
				r.Get("/payroll/trend", h.Dashboard.GetPayrollTrend)
				r.Get("/payroll/department", h.Dashboard.GetPayrollDepartment)
				r.Get("/payroll/coverage", h.Dashboard.GetPayrollCoverage)
				r.Get("/employee/{employeeID}/snapshot", h.Dashboard.GetEmployeeSnapshot)
			})
		})
	})

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// healthHandler pings every dependency; any failure turns the response into a 503.
func healthHandler(deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		result := healthResponse{Status: "ok", Checks: make(map[string]string, len(deps))}
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				slog.Warn("health check failed", "dependency", name, "error", err)
				result.Checks[name] = "down"
				result.Status = "degraded"
				continue
			}
			result.Checks[name] = "up"
		}

		if result.Status != "ok" {
			response.ServiceUnavailable(w, result)
			return
		}
		response.Success(w, result)
	}
}
