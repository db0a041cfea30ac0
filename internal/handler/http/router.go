package http

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type Handlers struct {
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Loan       LoanHandler
	Advance    AdvanceHandler
	Payroll    PayrollHandler
	Report     ReportHandler
}

func NewRouter(logger *slog.Logger, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.List)
			r.Post("/", h.Employee.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Employee.Get)
				r.Put("/", h.Employee.Update)
				r.Delete("/", h.Employee.Delete)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", h.Attendance.ListByPeriod)
			r.Post("/", h.Attendance.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Attendance.Get)
				r.Put("/", h.Attendance.Update)
				r.Delete("/", h.Attendance.Delete)
			})
		})

		r.Route("/loans", func(r chi.Router) {
			r.Get("/", h.Loan.List)
			r.Post("/", h.Loan.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Loan.Get)
				r.Put("/", h.Loan.Update)
				r.Delete("/", h.Loan.Delete)
			})
		})

		r.Route("/advances", func(r chi.Router) {
			r.Get("/", h.Advance.List)
			r.Post("/", h.Advance.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Advance.Get)
				r.Put("/", h.Advance.Update)
				r.Delete("/", h.Advance.Delete)
			})
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Payroll.GetSettings)
				r.Put("/", h.Payroll.UpdateSettings)
			})

			r.Post("/generate", h.Payroll.Generate)
			r.Post("/pay-all", h.Payroll.PayAll)

			r.Route("/records", func(r chi.Router) {
				r.Get("/", h.Payroll.ListRecords)
				r.Get("/summary", h.Payroll.GetSummary)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Payroll.GetRecord)
					r.Delete("/", h.Payroll.DeleteRecord)
					r.Post("/pay", h.Payroll.PaySalary)
				})
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/payroll", h.Report.PayrollReport)
			r.Get("/attendance", h.Report.AttendanceReport)
			r.Get("/yearly-summary", h.Report.YearlySummary)
			r.Get("/salary-distribution", h.Report.SalaryDistribution)
		})
	})

	return r
}
