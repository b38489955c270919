package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/ulule/limiter/v3"
)

// RouterOptions carries the infrastructure settings of the router
type RouterOptions struct {
	AppName        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// Limiter is optional. Nil disables rate limiting.
	Limiter *limiter.Limiter
	// FilesDir is served under /files/ when set.
	FilesDir string
}

type Handlers struct {
	Master     MasterHandler
	Employee   EmployeeHandler
	Calendar   CalendarHandler
	Attendance AttendanceHandler
	Overtime   OvertimeHandler
	Leave      LeaveHandler
	Bonus      AdjustmentHandler
	Prepaid    AdjustmentHandler
	Payroll    PayrollHandler
	Dashboard  DashboardHandler
}

func NewRouter(opts RouterOptions, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition", "X-RateLimit-Remaining"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.Limiter != nil {
		r.Use(middleware.RateLimit(opts.Limiter))
	}

	if opts.FilesDir != "" {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(opts.FilesDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", h.Master.ListDepartments)
			r.Post("/", h.Master.CreateDepartment)
			r.Get("/{id}", h.Master.GetDepartment)
			r.Put("/{id}", h.Master.UpdateDepartment)
			r.Delete("/{id}", h.Master.DeleteDepartment)
		})

		r.Route("/positions", func(r chi.Router) {
			r.Get("/", h.Master.ListPositions)
			r.Post("/", h.Master.CreatePosition)
			r.Get("/{id}", h.Master.GetPosition)
			r.Put("/{id}", h.Master.UpdatePosition)
			r.Delete("/{id}", h.Master.DeletePosition)
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)
			r.Get("/{id}", h.Employee.GetEmployee)
			r.Put("/{id}", h.Employee.UpdateEmployee)
			r.Delete("/{id}", h.Employee.DeleteEmployee)
		})

		r.Get("/calendar/{year}/{month}", h.Calendar.GetMonth)

		r.Route("/month-configs/{year}/{month}", func(r chi.Router) {
			r.Get("/", h.Payroll.GetMonthConfig)
			r.Put("/", h.Payroll.UpdateMonthConfig)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.ListExceptions)
			r.Put("/", h.Attendance.UpsertException)
			r.Delete("/{id}", h.Attendance.DeleteException)
			r.Get("/grid", h.Attendance.GetGrid)
			r.Post("/grid", h.Attendance.SaveGrid)
			r.Get("/export", h.Attendance.ExportGrid)
		})

		r.Route("/overtime", func(r chi.Router) {
			r.Get("/", h.Overtime.ListEntries)
			r.Put("/", h.Overtime.SetHours)
			r.Get("/grid", h.Overtime.GetGrid)
			r.Post("/grid", h.Overtime.SaveGrid)
			r.Get("/export", h.Overtime.ExportGrid)
		})

		r.Route("/leave-types", func(r chi.Router) {
			r.Get("/", h.Leave.ListTypes)
			r.Post("/", h.Leave.CreateType)
			r.Get("/{id}", h.Leave.GetType)
			r.Put("/{id}", h.Leave.UpdateType)
			r.Delete("/{id}", h.Leave.DeleteType)
		})

		r.Get("/leave-balances", h.Leave.ListBalances)

		r.Route("/leave-entries", func(r chi.Router) {
			r.Get("/", h.Leave.ListEntries)
			r.Post("/", h.Leave.CreateEntry)
			r.Post("/preview", h.Leave.PreviewEntry)
			r.Delete("/{id}", h.Leave.DeleteEntry)
			r.Get("/{id}/revert-preview", h.Leave.PreviewRevert)
		})

		mountAdjustments := func(path string, handler AdjustmentHandler) {
			r.Route(path, func(r chi.Router) {
				r.Get("/", handler.List)
				r.Post("/", handler.Create)
				r.Get("/{id}", handler.Get)
				r.Put("/{id}", handler.Update)
				r.Delete("/{id}", handler.Delete)
			})
		}
		mountAdjustments("/bonuses", h.Bonus)
		mountAdjustments("/prepaids", h.Prepaid)

		r.Route("/payroll/runs", func(r chi.Router) {
			r.Get("/", h.Payroll.ListRuns)
			r.Post("/", h.Payroll.CreateRun)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Payroll.GetRun)
				r.Delete("/", h.Payroll.DeleteRun)
				r.Post("/calculate", h.Payroll.CalculateRun)
				r.Post("/finalize", h.Payroll.FinalizeRun)
				r.Get("/lines", h.Payroll.ListLines)
				r.Get("/export.xlsx", h.Payroll.ExportXLSX)
				r.Get("/report.pdf", h.Payroll.ExportPDF)
			})
		})

		r.Get("/dashboard", h.Dashboard.GetPeriodDashboard)
	})
	return r
}
