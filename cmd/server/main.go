package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"contaluz/internal/config"
	"contaluz/internal/email/noop"
	"contaluz/internal/email/ses"
	"contaluz/internal/extractor/gemini"
	"contaluz/internal/handler"
	"contaluz/internal/port"
	"contaluz/internal/repository/postgres"
	"contaluz/internal/router"
	"contaluz/internal/service"
	s3storage "contaluz/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	billRepo := postgres.NewBillRepo(db)
	docRepo := postgres.NewBillDocumentRepo(db)

	// Document archiving is optional; without a bucket the pipeline runs
	// extraction-only.
	var storage port.ObjectStorage
	if cfg.Archive.Enabled() {
		storage, err = s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	billExtractor := gemini.NewExtractor(&cfg.Extractor)
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	billSvc := service.NewBillService(billRepo, docRepo, billExtractor, storage, &cfg.Archive)
	userSvc := service.NewUserService(userRepo, emailSender)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	billH := handler.NewBillHandler(billSvc, authSvc, cfg.Extractor.APIKey != "")
	userH := handler.NewUserHandler(userSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, authH, billH, userH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
