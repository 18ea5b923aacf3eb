package http

import (
	"log/slog"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the HTTP-level settings.
type RouterConfig struct {
	AllowedOrigins []string
	LogLevel       slog.Level
}

// Handlers groups the route handlers mounted under /api/v1.
type Handlers struct {
	Attendance AttendanceHandler
	Calendar   CalendarHandler
	Overtime   OvertimeHandler
	Payroll    PayrollHandler
	User       UserHandler
}

func NewRouter(cfg RouterConfig, logger *slog.Logger, jwtService jwt.Service, profiles middleware.ProfileLoader, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(middleware.Authenticate(jwtService, profiles))

		r.Route("/attendance", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
			})

			// Self or attendance.view_all, decided per target user by the service
			r.Get("/logs/{userId}/{date}", h.Attendance.GetDailyLog)
			r.Get("/summary/{userId}/{month}/{year}", h.Attendance.GetMonthlySummary)

			r.With(middleware.RequirePermission(user.PermissionAttendanceOverride)).
				Patch("/override/{userId}/{date}", h.Attendance.SetOverride)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/working-days/{month}/{year}", h.Calendar.GetWorkingDays)
			r.Get("/holidays/{year}", h.Calendar.ListHolidays)
			r.Get("/saturday-off/{month}/{year}", h.Calendar.GetSaturdayOff)
			r.With(middleware.RequirePermission(user.PermissionCalendarManage)).
				Put("/saturday-off/{month}/{year}", h.Calendar.SetSaturdayOff)
		})

		r.Route("/overtime", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionOvertimeReview))
			r.Get("/pending", h.Overtime.ListPending)
			r.Put("/review/{recordId}", h.Overtime.Review)
		})

		r.Route("/payroll", func(r chi.Router) {
			r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
			r.Post("/generate", h.Payroll.Generate)
			r.Get("/{month}/{year}", h.Payroll.List)
			r.Get("/{month}/{year}/export", h.Payroll.Export)
			r.Patch("/records/{recordId}/paid", h.Payroll.MarkPaid)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/me", h.User.Me)
			r.With(middleware.RequirePermission(user.PermissionSalaryManage)).
				Patch("/{id}/salary", h.User.UpdateSalary)
		})
	})

	return r
}
