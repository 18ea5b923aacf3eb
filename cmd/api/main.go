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

	"github.com/cmlabs-hris/workforce-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/workforce-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/geo"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/holiday"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-backend-go/internal/repository/mongodb"
	"github.com/cmlabs-hris/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/workforce-backend-go/internal/service/attendance"
	calendarService "github.com/cmlabs-hris/workforce-backend-go/internal/service/calendar"
	overtimeService "github.com/cmlabs-hris/workforce-backend-go/internal/service/overtime"
	payrollService "github.com/cmlabs-hris/workforce-backend-go/internal/service/payroll"
	userService "github.com/cmlabs-hris/workforce-backend-go/internal/service/user"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return err
	}

	mongoDB, err := database.NewMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoDB.Close(closeCtx); err != nil {
			slog.Warn("Failed to close mongo client", "error", err)
		}
	}()

	holidays, err := holiday.Load(cfg.Calendar.HolidayFile)
	if err != nil {
		return err
	}

	loc := cfg.Location()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	overrideRepo := postgresql.NewOverrideRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(mongoDB)
	workingDaysCache := mongodb.NewWorkingDaysCache(mongoDB)

	JWTService := jwt.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	fence := geo.Fence{
		Center:       geo.Point{Latitude: cfg.Office.Latitude, Longitude: cfg.Office.Longitude},
		RadiusMeters: cfg.Office.GeofenceRadiusMeters,
	}

	userSvc := userService.NewUserService(userRepo)
	calendarSvc := calendarService.NewCalendarService(settingsRepo, workingDaysCache, holidays)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		overrideRepo,
		userRepo,
		attendanceService.NewClassifier(loc),
		fence,
	)
	overtimeSvc := overtimeService.NewOvertimeService(attendanceRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, attendanceRepo, userRepo, calendarSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{AllowedOrigins: cfg.App.AllowedOrigins, LogLevel: cfg.SlogLevel()},
		logger,
		JWTService,
		userSvc,
		appHTTP.Handlers{
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Calendar:   appHTTP.NewCalendarHandler(calendarSvc),
			Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
			Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
			User:       appHTTP.NewUserHandler(userSvc),
		},
	)

	scheduler := cron.NewScheduler()
	scheduler.AddJob(cron.WorkingDaysRefreshJobName, cfg.Calendar.RefreshInterval, cron.WorkingDaysRefresh(calendarSvc, loc, time.Now))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
