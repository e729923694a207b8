package http

import (
	"log/slog"
	"os"

	"github.com/communityroots/volunteer-backend-go/internal/config"
	"github.com/communityroots/volunteer-backend-go/internal/domain/user"
	"github.com/communityroots/volunteer-backend-go/internal/handler/http/middleware"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth        AuthHandler
	User        UserHandler
	Profile     ProfileHandler
	Application ApplicationHandler
	Shift       ShiftHandler
	Attendance  AttendanceHandler
	HourLog     HourLogHandler
	Group       GroupHandler
	Dashboard   DashboardHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "volunteer-hub"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", h.Auth.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", h.Auth.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", h.Auth.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", h.User.Me)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.User.List)
					r.Get("/{userID}", h.User.Get)
					r.Put("/{userID}/role", h.User.UpdateRole)
					r.Put("/{userID}/active", h.User.SetActive)
					r.Get("/{userID}/profile", h.Profile.Get)
				})
			})

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", h.Profile.My)
				r.Put("/", h.Profile.UpdateMy)
			})

			r.Route("/applications", func(r chi.Router) {
				r.Post("/draft", h.Application.SaveDraft)
				r.Post("/", h.Application.Submit)
				r.Get("/my", h.Application.My)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionApplicationReview))
					r.Get("/", h.Application.ListPending)
					r.Get("/{applicationID}", h.Application.Get)
					r.Post("/{applicationID}/approve", h.Application.Approve)
					r.Post("/{applicationID}/reject", h.Application.Reject)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftView))
					r.Get("/", h.Shift.List)
					r.Get("/my", h.Shift.MyShifts)
					r.Get("/{shiftID}", h.Shift.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftSignup))
					r.Post("/{shiftID}/signup", h.Shift.SignUp)
					r.Delete("/{shiftID}/signup", h.Shift.CancelSignup)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", h.Shift.Create)
					r.Put("/{shiftID}", h.Shift.Update)
					r.Delete("/{shiftID}", h.Shift.Cancel)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftRoster))
					r.Get("/{shiftID}/roster", h.Shift.Roster)
					r.Get("/{shiftID}/sessions", h.Attendance.ShiftSessions)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceCheckIn))
					r.Post("/checkin", h.Attendance.CheckIn)
					r.Post("/sessions/{sessionID}/checkout", h.Attendance.CheckOut)
				})
				r.Get("/my", h.Attendance.MySessions)
			})

			r.Route("/hours", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHoursLog))
					r.Post("/", h.HourLog.LogHours)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHoursViewOwn))
					r.Get("/my", h.HourLog.MyEntries)
					r.Get("/my/total", h.HourLog.MyTotal)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHoursApprove))
					r.Get("/pending", h.HourLog.Pending)
					r.Post("/{entryID}/approve", h.HourLog.Approve)
					r.Get("/volunteers/{volunteerID}/total", h.HourLog.VolunteerTotal)
				})
			})

			r.Route("/groups", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionGroupView))
					r.Get("/", h.Group.List)
					r.Get("/{groupID}", h.Group.Get)
					r.Get("/{groupID}/members", h.Group.ListMembers)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Group.Create)
					r.Delete("/{groupID}", h.Group.Delete)
				})

				// Group admins pass the service-level membership check
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionGroupManage))
					r.Post("/{groupID}/members", h.Group.AddMember)
					r.Delete("/{groupID}/members/{userID}", h.Group.RemoveMember)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/my", h.Dashboard.Volunteer)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionDashboardView))
					r.Get("/", h.Dashboard.Admin)
				})
			})
		})
	})
	return r
}
