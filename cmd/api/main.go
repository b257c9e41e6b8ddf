package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetdesk/timeclock-backend-go/internal/config"
	appHTTP "github.com/fleetdesk/timeclock-backend-go/internal/handler/http"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/cron"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/database"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/jwt"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/lock"
	"github.com/fleetdesk/timeclock-backend-go/internal/pkg/sse"
	"github.com/fleetdesk/timeclock-backend-go/internal/repository/postgresql"
	notificationService "github.com/fleetdesk/timeclock-backend-go/internal/service/notification"
	payrollService "github.com/fleetdesk/timeclock-backend-go/internal/service/payroll"
	scheduleService "github.com/fleetdesk/timeclock-backend-go/internal/service/schedule"
	shiftService "github.com/fleetdesk/timeclock-backend-go/internal/service/shift"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	shiftRepo := postgresql.NewShiftRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduledShiftRepo := postgresql.NewScheduledShiftRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	notificationSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{})
	locks := lock.NewKeyedMutex()

	shiftSvc := shiftService.NewShiftService(shiftRepo, locks, notificationSvc, cfg.Timeclock.BreakMaxDuration)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, shiftRepo, employeeRepo, notificationSvc, cfg.Payroll)
	scheduleSvc := scheduleService.NewScheduleService(scheduledShiftRepo)

	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationSvc, hub)

	router := appHTTP.NewRouter(
		cfg,
		jwtSvc,
		shiftHandler,
		scheduleHandler,
		payrollHandler,
		notificationHandler,
	)

	scheduler := cron.NewScheduler()
	timeclockJobs := cron.NewTimeclockJobs(shiftRepo, shiftSvc, cfg.Timeclock.BreakMaxDuration)
	timeclockJobs.RegisterJobs(scheduler, cfg.Timeclock.BreakMonitorInterval)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server starting", slog.Int("port", cfg.App.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", slog.Any("error", err))
	}

	scheduler.Stop()
	notificationSvc.Stop()
}
