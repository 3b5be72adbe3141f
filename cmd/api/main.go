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

	"github.com/relief-experts/attendance-backend-go/internal/config"
	appHTTP "github.com/relief-experts/attendance-backend-go/internal/handler/http"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/changefeed"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/cron"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/database"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/geoclock"
	"github.com/relief-experts/attendance-backend-go/internal/pkg/jwt"
	"github.com/relief-experts/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/relief-experts/attendance-backend-go/internal/service/attendance"
	authService "github.com/relief-experts/attendance-backend-go/internal/service/auth"
	centerService "github.com/relief-experts/attendance-backend-go/internal/service/center"
	employeeService "github.com/relief-experts/attendance-backend-go/internal/service/employee"
	"github.com/relief-experts/attendance-backend-go/internal/service/master"
	notificationService "github.com/relief-experts/attendance-backend-go/internal/service/notification"
	reportService "github.com/relief-experts/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	feed := changefeed.NewHub()

	attendanceRepo := postgresql.NewAttendanceRepository(db, feed)
	centerRepo := postgresql.NewCenterRepository(db, feed)
	employeeRepo := postgresql.NewEmployeeRepository(db, feed)
	holidayRepo := postgresql.NewHolidayRepository(db, feed)
	projectRepo := postgresql.NewProjectRepository(db, feed)
	notificationRepo := postgresql.NewNotificationRepository(db, feed)
	templateRepo := postgresql.NewTemplateRepository(db, feed)
	settingsRepo := postgresql.NewSettingsRepository(db, feed)
	adminRepo := postgresql.NewAdminRepository(db, feed)

	clock := geoclock.NewClock(cfg.TimeSync.Sources, cfg.TimeSync.FetchTimeout)
	if err := clock.Resolve(context.Background()); err != nil {
		slog.Warn("Initial time sync failed, starting with local clock", "error", err)
	}

	snapshot := reportService.NewSnapshot()
	if err := snapshot.Prime(context.Background(), attendanceRepo, employeeRepo, centerRepo, holidayRepo); err != nil {
		fmt.Println("Error priming report snapshot:", err)
		return
	}
	snapshot.Watch(context.Background(), feed)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	gate := attendanceService.NewGateService(db, clock, attendanceRepo, employeeRepo, centerRepo, templateRepo, cfg.Attendance)
	auth := authService.NewAuthService(adminRepo, jwtService)
	centers := centerService.NewCenterService(centerRepo)
	employees := employeeService.NewEmployeeService(employeeRepo, centerRepo)
	masterSvc := master.NewMasterService(holidayRepo, projectRepo, templateRepo, settingsRepo)
	notifications := notificationService.NewNotificationService(notificationRepo)
	reports := reportService.NewReconstructorService(snapshot, clock)

	scheduler := cron.NewScheduler()
	jobs := cron.NewJobs(clock, attendanceRepo, employeeRepo, centerRepo, holidayRepo)
	jobs.Register(scheduler, cfg.TimeSync.Interval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Portal:       appHTTP.NewPortalHandler(gate, notifications, masterSvc, clock),
		Auth:         appHTTP.NewAuthHandler(auth),
		Attendance:   appHTTP.NewAttendanceHandler(gate),
		Center:       appHTTP.NewCenterHandler(centers),
		Employee:     appHTTP.NewEmployeeHandler(employees),
		Master:       appHTTP.NewMasterHandler(masterSvc),
		Notification: appHTTP.NewNotificationHandler(notifications),
		Report:       appHTTP.NewReportHandler(reports),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: finish in-flight requests, then let the
	// deferred scheduler and pool teardown run.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
