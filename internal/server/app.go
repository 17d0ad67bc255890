// Package server wires configuration, storage, services and the HTTP
// transport into a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/formifyx/backend/internal/common"
	"github.com/formifyx/backend/internal/logging"
	"github.com/formifyx/backend/internal/server/auth"
	"github.com/formifyx/backend/internal/server/config"
	"github.com/formifyx/backend/internal/server/httpserver"
	"github.com/formifyx/backend/internal/server/mail"
	"github.com/formifyx/backend/internal/server/repositories/repomanager"
	"github.com/formifyx/backend/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	httpServer  *httpserver.HTTPServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	gin.SetMode(c.GinMode)

	rm, err := newRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx); err != nil {
		rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	tokens, err := auth.NewTokenIssuer([]byte(c.SecretKey))
	if err != nil {
		rm.Close()
		return nil, err
	}

	sender, err := newSender(ctx, c, logger)
	if err != nil {
		rm.Close()
		return nil, err
	}

	hasher, err := auth.NewHasher()
	if err != nil {
		rm.Close()
		return nil, err
	}

	us := services.NewUserService(rm, hasher, tokens, logger)
	ps := services.NewProfileService(rm, logger)
	ns := services.NewNewsletterService(sender, c.MailFrom, c.SiteURL, logger)

	hs := httpserver.NewHTTPServer(httpserver.Options{
		Address:         c.EndpointAddrHTTP,
		AllowedOrigins:  c.AllowedOrigins,
		MaxBodyBytes:    c.MaxBodyBytes,
		ShutdownTimeout: c.ShutdownTimeout,
		HealthCheck:     rm.Ping,
	}, logger, us, ps, ns)

	return &App{config: c, logger: logger, repomanager: rm, httpServer: hs}, nil
}

func newRepositoryManager(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
	if dsn == common.MemoryDSN {
		return repomanager.NewMemoryRepositoryManager(), nil
	}
	return repomanager.OpenPostgres(ctx, dsn)
}

func newSender(ctx context.Context, c *config.Config, logger logging.Logger) (mail.Sender, error) {
	if c.SMTPUser == "" || c.SMTPPassword == "" {
		logger.Warn(ctx, "SMTP credentials not set, newsletter mail will only be logged")
		return mail.NewLogSender(logger), nil
	}
	return mail.NewSMTPSender(mail.SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUser,
		Password: c.SMTPPassword,
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until ctx is cancelled or a termination signal arrives,
// then closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	err := app.httpServer.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "http server stopped", "error", err)
	}

	if cerr := app.repomanager.Close(); cerr != nil {
		app.logger.Error(ctx, "close database", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
