package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vigilo-hq/vigilo-backend-go/internal/config"
	appHTTP "github.com/vigilo-hq/vigilo-backend-go/internal/handler/http"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/cron"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/database"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/jwt"
	"github.com/vigilo-hq/vigilo-backend-go/internal/pkg/oauth"
	"github.com/vigilo-hq/vigilo-backend-go/internal/repository/postgresql"
	authService "github.com/vigilo-hq/vigilo-backend-go/internal/service/auth"
	employeeService "github.com/vigilo-hq/vigilo-backend-go/internal/service/employee"
	reportService "github.com/vigilo-hq/vigilo-backend-go/internal/service/report"
	shiftService "github.com/vigilo-hq/vigilo-backend-go/internal/service/shift"
	timeclockService "github.com/vigilo-hq/vigilo-backend-go/internal/service/timeclock"
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

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	sessionRepo := postgresql.NewClockSessionRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	businessLoc := cfg.BusinessLocation()
	resolver := timeclockService.NewResolver(businessLoc)
	reconciler := timeclockService.NewReconciler(businessLoc)
	aggregator := reportService.NewAggregator(resolver, reconciler)

	authSvc := authService.NewAuthService(userRepo, JWTService, GoogleService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo)
	sessionSvc := timeclockService.NewClockSessionService(sessionRepo, employeeRepo)
	reportSvc := reportService.NewReportService(employeeRepo, sessionRepo, shiftRepo, aggregator)

	sweeper := timeclockService.NewSweeper(sessionRepo, shiftRepo, resolver, cfg.Sweep.Grace)
	scheduler := cron.NewScheduler()
	cron.NewTimeclockJobs(sweeper).RegisterJobs(scheduler, cfg.Sweep.Interval, cfg.Sweep.TickTimeout)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, cfg.App.FrontendURL)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	timeclockHandler := appHTTP.NewTimeclockHandler(sessionSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		authHandler,
		employeeHandler,
		shiftHandler,
		timeclockHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	_ = server.Close()
}
