package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/fleetdesk/timeclock-backend-go/internal/config"
	"github.com/fleetdesk/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	shiftHandler ShiftHandler,
	scheduleHandler ScheduleHandler,
	payrollHandler PayrollHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
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

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Route("/shifts", func(r chi.Router) {
				r.Post("/clock-in", shiftHandler.ClockIn)
				r.Get("/active", shiftHandler.GetActive)
				r.Get("/", shiftHandler.List)

				r.Route("/{id}", func(r chi.Router) {
					r.Post("/break/start", shiftHandler.StartBreak)
					r.Post("/break/end", shiftHandler.EndBreak)
					r.Post("/clock-out", shiftHandler.ClockOut)
				})
			})

			r.Route("/schedule", func(r chi.Router) {
				r.Get("/upcoming", scheduleHandler.ListUpcoming)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Post("/mark-read", notificationHandler.MarkRead)
				r.Get("/stream", notificationHandler.Stream)
			})

			// Admin only
			r.Route("/admin/payroll", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/generate", payrollHandler.Generate)
				r.Get("/", payrollHandler.List)

				r.Route("/{id}", func(r chi.Router) {
					r.Post("/approve", payrollHandler.Approve)
					r.Post("/mark-paid", payrollHandler.MarkPaid)
				})
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}
