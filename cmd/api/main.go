package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/communityroots/volunteer-backend-go/internal/config"
	appHTTP "github.com/communityroots/volunteer-backend-go/internal/handler/http"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/cron"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/database"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/email"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/jwt"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/migrate"
	"github.com/communityroots/volunteer-backend-go/internal/pkg/oauth"
	"github.com/communityroots/volunteer-backend-go/internal/repository/postgresql"
	applicationService "github.com/communityroots/volunteer-backend-go/internal/service/application"
	attendanceService "github.com/communityroots/volunteer-backend-go/internal/service/attendance"
	serviceAuth "github.com/communityroots/volunteer-backend-go/internal/service/auth"
	dashboardService "github.com/communityroots/volunteer-backend-go/internal/service/dashboard"
	groupService "github.com/communityroots/volunteer-backend-go/internal/service/group"
	hourlogService "github.com/communityroots/volunteer-backend-go/internal/service/hourlog"
	profileService "github.com/communityroots/volunteer-backend-go/internal/service/profile"
	shiftService "github.com/communityroots/volunteer-backend-go/internal/service/shift"
	userService "github.com/communityroots/volunteer-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := migrate.Up(ctx, db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)
	profileRepo := postgresql.NewProfileRepository(db)
	applicationRepo := postgresql.NewApplicationRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	signupRepo := postgresql.NewSignupRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	hourLogRepo := postgresql.NewHourLogRepository(db)
	groupRepo := postgresql.NewGroupRepository(db)
	membershipRepo := postgresql.NewMembershipRepository(db)
	outboxRepo := postgresql.NewOutboxRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authService := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	userSvc := userService.NewUserService(db, userRepo, JWTRepository)
	profileSvc := profileService.NewProfileService(profileRepo)
	applicationSvc := applicationService.NewApplicationService(db, applicationRepo, userRepo, profileRepo, outboxRepo)
	shiftSvc := shiftService.NewShiftService(db, shiftRepo, signupRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, sessionRepo, shiftRepo, signupRepo, hourLogRepo)
	hourLogSvc := hourlogService.NewHourLogService(db, hourLogRepo, membershipRepo)
	groupSvc := groupService.NewGroupService(db, groupRepo, membershipRepo, userRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, shiftRepo, signupRepo, sessionRepo, hourLogRepo)

	scheduler := cron.NewScheduler()
	cron.NewNotificationJobs(outboxRepo, emailService, cfg.Jobs).RegisterJobs(scheduler)
	cron.NewShiftJobs(shiftRepo, signupRepo, sessionRepo, userRepo, outboxRepo, cfg.Jobs).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:        appHTTP.NewAuthHandler(JWTService, authService, GoogleService, cfg.App.FrontendURL),
		User:        appHTTP.NewUserHandler(userSvc),
		Profile:     appHTTP.NewProfileHandler(profileSvc),
		Application: appHTTP.NewApplicationHandler(applicationSvc),
		Shift:       appHTTP.NewShiftHandler(shiftSvc),
		Attendance:  appHTTP.NewAttendanceHandler(attendanceSvc),
		HourLog:     appHTTP.NewHourLogHandler(hourLogSvc),
		Group:       appHTTP.NewGroupHandler(groupSvc),
		Dashboard:   appHTTP.NewDashboardHandler(dashboardSvc),
	}

	router := appHTTP.NewRouter(cfg, JWTService, handlers)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
