package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/relief-experts/attendance-backend-go/internal/config"
	"github.com/relief-experts/attendance-backend-go/internal/domain/admin"
	"github.com/relief-experts/attendance-backend-go/internal/handler/http/middleware"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/jwt"
)

type Handlers struct {
	Portal       PortalHandler
	Auth         AuthHandler
	Attendance   AttendanceHandler
	Center       CenterHandler
	Employee     EmployeeHandler
	Master       MasterHandler
	Notification NotificationHandler
	Report       ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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

	r.Route("/api/v1", func(r chi.Router) {
		// Public portal surface. The gate authenticates attempts via
		// device binding, not tokens.
		r.Route("/portal", func(r chi.Router) {
			r.Post("/check-in", h.Portal.CheckIn)
			r.Post("/check-out", h.Portal.CheckOut)
			r.Get("/state", h.Portal.State)
			r.Get("/notifications", h.Portal.Notifications)
			r.Get("/settings", h.Portal.Settings)
			r.Get("/time", h.Portal.Time)
		})

		r.Post("/auth/login", h.Auth.Login)

		// Admin dashboard surface.
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Post("/auth/logout", h.Auth.Logout)

			r.Route("/admins", func(r chi.Router) {
				r.Use(middleware.RequireRole(admin.RoleSuperAdmin))
				r.Post("/", h.Auth.CreateAdmin)
				r.Get("/", h.Auth.ListAdmins)
				r.Put("/{id}", h.Auth.UpdateAdmin)
				r.Delete("/{id}", h.Auth.DeleteAdmin)
			})

			r.Route("/centers", func(r chi.Router) {
				r.Get("/", h.Center.List)
				r.Get("/{id}", h.Center.Get)
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(admin.RoleSuperAdmin, admin.RoleGeneralManager))
					r.Post("/", h.Center.Create)
					r.Put("/{id}", h.Center.Update)
					r.Delete("/{id}", h.Center.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)
				r.Post("/", h.Employee.Create)
				r.Put("/{id}", h.Employee.Update)
				r.Post("/{id}/reset-device", h.Employee.ResetDevice)
				r.Delete("/{id}", h.Employee.Delete)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Delete("/{id}", h.Attendance.Delete)
			})

			r.Get("/reports/timesheet", h.Report.Timesheet)

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Master.ListHolidays)
				r.Post("/", h.Master.CreateHoliday)
				r.Delete("/{id}", h.Master.DeleteHoliday)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", h.Master.ListProjects)
				r.Post("/", h.Master.CreateProject)
				r.Put("/{id}", h.Master.UpdateProject)
				r.Delete("/{id}", h.Master.DeleteProject)
			})

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", h.Master.ListTemplates)
				r.Put("/", h.Master.UpsertTemplate)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Master.GetSettings)
				r.With(middleware.RequireRole(admin.RoleSuperAdmin)).Put("/", h.Master.UpdateSettings)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Post("/", h.Notification.Send)
				r.Delete("/{id}", h.Notification.Delete)
			})
		})
	})

	return r
}
