package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/filedesk/internal/filedesk/blob"
	httpapi "github.com/aussiebroadwan/filedesk/internal/filedesk/http"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/mail"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/service"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store"
	"github.com/aussiebroadwan/filedesk/internal/filedesk/store/drivers/sqlite"
	"github.com/aussiebroadwan/filedesk/pkg/cryptox"
	"github.com/aussiebroadwan/filedesk/pkg/jwtx"
	"github.com/aussiebroadwan/filedesk/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags "-X".
var BuildVersion = "v0.1.0"

// Application wires the console's storage, services and HTTP server.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	blobs    blob.Store
	notifier service.Notifier

	signer   jwtx.Signer
	keys     *jwtx.KeySet
	verifier jwtx.Verifier

	authService         *service.AuthService
	tokenService        *service.TokenService
	auditService        *service.AuditService
	documentService     *service.DocumentService
	directoryService    *service.DirectoryService
	applicationService  *service.ApplicationService
	accessService       *service.AccessService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "filedesk",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := app.initBlobs(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	signer, keys, verifier, err := InitSigningKey(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.signer, app.keys, app.verifier = signer, keys, verifier

	app.initNotifier()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for in-process tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("filedesk starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains HTTP within the grace period, stops the sweeper and
// closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down filedesk...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("filedesk stopped")
	return nil
}

// initDatabase opens the SQLite file and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initBlobs(ctx context.Context) error {
	switch app.cfg.BlobBackend {
	case "minio":
		st, err := blob.NewMinIOStore(ctx, blob.MinIOConfig{
			Endpoint:  app.cfg.MinIOEndpoint,
			AccessKey: app.cfg.MinIOAccessKey,
			SecretKey: app.cfg.MinIOSecretKey,
			Bucket:    app.cfg.MinIOBucket,
			UseSSL:    app.cfg.MinIOUseSSL,
		}, app.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize minio blob store: %w", err)
		}
		app.blobs = st
		app.logger.Info("blob store ready", "backend", "minio", "bucket", app.cfg.MinIOBucket)
	default:
		st, err := blob.NewLocalStore(app.cfg.BlobDir)
		if err != nil {
			return fmt.Errorf("failed to initialize local blob store: %w", err)
		}
		app.blobs = st
		app.logger.Info("blob store ready", "backend", "local", "dir", app.cfg.BlobDir)
	}
	return nil
}

func (app *Application) initNotifier() {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("SMTP_HOST not set, reset links will be logged instead of emailed")
		app.notifier = &mail.LogNotifier{Logger: app.logger}
		return
	}
	app.notifier = mail.NewSMTPNotifier(mail.SMTPConfig{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	})
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.auditService = &service.AuditService{Store: app.db}

	app.authService = &service.AuthService{
		Store:            app.db,
		Notifier:         app.notifier,
		LockoutThreshold: app.cfg.LockoutThreshold,
		LockoutWindow:    app.cfg.LockoutWindow,
		ResetTTL:         app.cfg.ResetTokenTTL,
		ResetURLBase:     app.cfg.ResetURLBase,
	}
	app.tokenService = &service.TokenService{
		Signer: app.signer,
		Issuer: app.cfg.TokenIssuer,
		TTL:    app.cfg.AccessTokenTTL,
	}

	app.documentService = &service.DocumentService{
		Store:    app.db,
		Blobs:    app.blobs,
		Recorder: app.auditService,
	}
	app.directoryService = &service.DirectoryService{Store: app.db, Recorder: app.auditService}
	app.applicationService = &service.ApplicationService{Store: app.db, Recorder: app.auditService}
	app.accessService = &service.AccessService{Store: app.db, Recorder: app.auditService}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.blobs,
		app.logger,
	)

	router.AuthService = app.authService
	router.TokenService = app.tokenService
	router.DocumentService = app.documentService
	router.DirectoryService = app.directoryService
	router.ApplicationService = app.applicationService
	router.AccessService = app.accessService
	router.AuditService = app.auditService
	router.MaxUploadBytes = app.cfg.MaxUploadBytes
	if app.cfg.LockoutThreshold >= router.LoginLimit.Burst {
		app.logger.Warn("login rate limit burst does not exceed the lockout threshold, locked accounts will see 429 instead of 403",
			"lockout_threshold", app.cfg.LockoutThreshold,
			"login_burst", router.LoginLimit.Burst)
	}
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
