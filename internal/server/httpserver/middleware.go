package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/formifyx/backend/internal/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

func (s *HTTPServer) cors() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = s.opts.AllowedOrigins
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	cfg.AllowCredentials = true
	cfg.OptionsResponseStatusCode = http.StatusOK
	return cors.New(cfg)
}

func (s *HTTPServer) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.MaxBodyBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxBodyBytes)
		}
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

// requireAuth resolves the bearer token to a user id and stores it under
// userIDKey.
func (s *HTTPServer) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := s.users.Authenticate(bearerToken(c))
		if err != nil {
			if errors.Is(err, common.ErrNoToken) {
				abortMessage(c, http.StatusUnauthorized, msgNoToken)
				return
			}
			abortMessage(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// bearerToken returns the credential part of "Authorization: Bearer <token>".
// A header with another scheme yields a non-empty value that fails
// verification.
func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader(common.AuthorizationHeaderName))
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" {
		return ""
	}
	if !strings.EqualFold(scheme, common.BearerScheme) {
		return header
	}
	return token
}
