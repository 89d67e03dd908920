package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"campuscert/config"
	authadapter "campuscert/internal/adapters/auth"
	emailadapter "campuscert/internal/adapters/email"
	"campuscert/internal/adapters/identifier"
	"campuscert/internal/adapters/integrity"
	httpdelivery "campuscert/internal/delivery/http"
	"campuscert/internal/delivery/http/controllers"
	"campuscert/internal/delivery/http/middleware"
	"campuscert/internal/repository/postgres"
	"campuscert/internal/services"
)

// @title CampusCert API
// @version 1.0
// @description Attendance check-in with tamper-evident certificate issuance and public verification.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
// @securityDefinitions.apikey AdminKeyAuth
// @in header
// @name X-Admin-Key
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("database unreachable", "err", err)
		os.Exit(1)
	}

	// Repositories
	attendanceRepo := postgres.NewAttendanceRepository(db)
	certificateRepo := postgres.NewCertificateRepository(db)

	// Adapters
	idGen := identifier.NewUUIDGenerator()
	codec := integrity.NewSHA256Codec()
	tokenVerifier := authadapter.NewJWTVerifier(cfg.JWTSecret)
	adminKeys := authadapter.NewBcryptKeyVerifier(cfg.AdminAPIKeyHash)

	mailer, err := emailadapter.NewMailer(emailadapter.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: emailadapter.SESConfig{
			Region:             cfg.Email.SES.Region,
			AccessKeyID:        cfg.Email.SES.AccessKeyID,
			SecretAccessKey:    cfg.Email.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.SES.InsecureSkipVerify,
		},
	})
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	// Services
	ledger := services.NewAttendanceLedger(attendanceRepo, cfg.StorageTimeout)
	certificates := services.NewCertificateService(ledger, certificateRepo, idGen, codec, cfg.StorageTimeout)
	emails := services.NewEmailService(mailer, emailadapter.NewTemplateRenderer())

	// HTTP
	checkInCtrl := controllers.NewCheckInController(logger, certificates, emails)
	certificateCtrl := controllers.NewCertificateController(logger, certificates)
	attendanceCtrl := controllers.NewAttendanceController(logger, ledger)

	mux := httpdelivery.NewRouter(logger, tokenVerifier, adminKeys, checkInCtrl, certificateCtrl, attendanceCtrl)
	handler := middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}
