package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"conferencecentral/config"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/cache"
	deliveryhttp "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
	"conferencecentral/internal/tasks"
)

const serviceTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	aggregateCache, err := cache.New(cache.Config{
		Provider:  cfg.CacheProvider,
		RedisAddr: cfg.RedisAddr,
	})
	if err != nil {
		logger.Error("init cache", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddr,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	})
	if err != nil {
		logger.Error("init mailer", "err", err)
		os.Exit(1)
	}

	// Repositories
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	registrationTxRepo := postgres.NewRegistrationTxRepository(db)

	// Services
	dispatcher := tasks.New(logger, 2, 128)
	profileService := services.NewProfileService(profileRepo, serviceTimeout)
	emailService := services.NewEmailService(mailer)
	aggregateService := services.NewAggregateService(conferenceRepo, sessionRepo, aggregateCache)
	conferenceService := services.NewConferenceService(conferenceRepo, sessionRepo, profileRepo, profileService, dispatcher, serviceTimeout)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo, profileRepo, profileService, dispatcher, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationTxRepo, profileService, serviceTimeout)

	// Background work: confirmation emails and the post-commit speaker-repeat
	// check, plus the periodic announcement recompute.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher.Handle(domain.TaskConferenceEmail, func(ctx context.Context, t domain.Task) error {
		return emailService.SendConferenceConfirmation(ctx, t.Email, t.Info)
	})
	dispatcher.Handle(domain.TaskSessionEmail, func(ctx context.Context, t domain.Task) error {
		return emailService.SendSessionConfirmation(ctx, t.Email, t.Info)
	})
	dispatcher.Handle(domain.TaskSpeakerRepeat, func(ctx context.Context, t domain.Task) error {
		_, err := aggregateService.CheckSpeakerRepeat(ctx, t.ConferenceID, t.Speaker)
		return err
	})
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	go tasks.RunPeriodic(ctx, cfg.AnnouncementInterval, logger, "announcement", func(ctx context.Context) error {
		_, err := aggregateService.RecomputeAnnouncement(ctx)
		return err
	})

	// HTTP
	issuer, verifier := auth.NewJWT(cfg.JWTSecret)
	mux := deliveryhttp.NewRouter(
		verifier,
		controllers.NewConferenceController(logger, conferenceService, registrationService),
		controllers.NewSessionController(logger, sessionService),
		controllers.NewProfileController(logger, profileService),
		controllers.NewAggregateController(logger, aggregateService),
	)

	// Local development mints its own tokens; deployed environments get them
	// from the identity provider.
	if cfg.Environment != "production" {
		authController := controllers.NewAuthController(logger, issuer)
		mux.HandleFunc("POST /auth/token", authController.IssueToken)
	}

	handler := middleware.Logging(logger, middleware.CORS(corsOrigins(cfg), mux))
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

func corsOrigins(cfg *config.Config) []string {
	if cfg.Environment == "production" {
		return nil
	}
	return []string{"http://localhost:3000", "http://localhost:5173"}
}
