// Package httpserver exposes the server's services over HTTP/JSON using gin.
package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/formifyx/backend/internal/logging"
	"github.com/formifyx/backend/internal/server/models"
	"github.com/formifyx/backend/internal/server/services"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Signup(ctx context.Context, req services.SignupRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(token string) (string, error)
	ValidateToken(ctx context.Context, token string) (*models.User, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, patch *models.ProfilePatch) (*models.Profile, error)
}

type NewsletterService interface {
	Subscribe(ctx context.Context, email string) error
}

// Options holds the transport settings taken from the server config.
type Options struct {
	Address         string
	AllowedOrigins  []string
	MaxBodyBytes    int64
	ShutdownTimeout time.Duration
	// HealthCheck, when set, is consulted by GET /health.
	HealthCheck func(ctx context.Context) error
}

type HTTPServer struct {
	opts       Options
	users      UserService
	profiles   ProfileService
	newsletter NewsletterService
	logger     logging.Logger
	engine     *gin.Engine
}

func NewHTTPServer(opts Options, l logging.Logger, us UserService, ps ProfileService, ns NewsletterService) *HTTPServer {
	s := &HTTPServer{
		opts:       opts,
		users:      us,
		profiles:   ps,
		newsletter: ns,
		logger:     l.With("module", "http_server"),
	}
	s.engine = s.newEngine()
	return s
}

// Handler returns the configured gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog(), s.cors(), s.limitBody())
	s.routes(r)
	return r
}

func (s *HTTPServer) routes(r *gin.Engine) {
	r.GET("/", s.Welcome)
	r.GET("/health", s.Health)

	r.POST("/signup", s.Signup)
	r.POST("/login", s.Login)
	r.POST("/validate-token", s.ValidateToken)
	r.POST("/subscribe", s.Subscribe)

	api := r.Group("/api", s.requireAuth())
	{
		api.GET("/profile", s.GetProfile)
		api.PUT("/profile", s.UpdateProfile)
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.opts.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
