package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq"

	"participationletters/config"
	"participationletters/internal/adapters/email"
	"participationletters/internal/adapters/pdf"
	"participationletters/internal/adapters/storage"
	"participationletters/internal/domain"
	"participationletters/internal/repository/postgres"
	"participationletters/internal/services"
)

// app holds the clients and services shared by every subcommand.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	db      *sql.DB
	letters domain.LetterService
	scanner domain.ScannerService
}

// newApp loads configuration and wires repositories, adapters and services.
// The caller owns the returned app and must Close it.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger()

	if cfg.AutoMigrate {
		if err := migrateUp(cfg.DBUrl, logger); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store, err := storage.NewS3Store(logger, storage.S3Config{
		Bucket:             cfg.Storage.Bucket,
		Region:             cfg.Storage.Region,
		AccessKeyID:        cfg.Storage.AccessKeyID,
		SecretAccessKey:    cfg.Storage.SecretAccessKey,
		Endpoint:           cfg.Storage.Endpoint,
		UsePathStyle:       cfg.Storage.UsePathStyle,
		PublicBaseURL:      cfg.Storage.PublicBaseURL,
		InsecureSkipVerify: cfg.Storage.InsecureSkipVerify,
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create artifact store: %w", err), db.Close())
	}

	mailer, err := email.NewMailer(logger, email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.Email.SESRegion,
			AccessKeyID:     cfg.Email.SESAccessKeyID,
			SecretAccessKey: cfg.Email.SESSecretAccessKey,
		},
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("create mailer: %w", err), db.Close())
	}

	letterRepo := postgres.NewLetterRepository(db)
	letters := services.NewLetterService(logger, pdf.NewLetterRenderer(), store, letterRepo, cfg.RequestTimeout)
	scanner := services.NewScannerService(
		logger,
		postgres.NewEventRepository(db),
		postgres.NewParticipantRepository(db),
		letterRepo,
		letters,
		services.NewEmailService(mailer, email.NewTemplateRenderer()),
		cfg.ScanTimeout,
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		db:      db,
		letters: letters,
		scanner: scanner,
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func migrateUp(databaseURL string, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(databaseURL, logger)
	if err != nil {
		return err
	}
	return errors.Join(m.Up(), m.Close())
}
