package httpserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/formifyx/backend/internal/common"
	"github.com/formifyx/backend/internal/server/models"
	"github.com/formifyx/backend/internal/server/services"
	"github.com/gin-gonic/gin"
)

const (
	msgWelcome         = "Welcome to FormifyX Backend!"
	msgUserCreated     = "User created successfully"
	msgFieldsRequired  = "All fields are required"
	msgUserExists      = "User already exists"
	msgPasswordTooLong = "Password must be at most 72 bytes"
	msgBadCredentials  = "Email or password is incorrect"
	msgNoToken         = "No token provided"
	msgInvalidToken    = "Invalid token"
	msgUserNotFound    = "User not found"
	msgProfileNotFound = "Profile not found"
	msgFetchProfile    = "Failed to fetch profile"
	msgUpdateProfile   = "Failed to update profile"
	msgEmailRequired   = "Email is required"
	msgSubscribed      = "Subscription successful! Check your email."
	msgSendFailed      = "Failed to send email"
	msgInternal        = "Something went wrong"
	msgInvalidBody     = "Invalid request body"
	msgBodyTooLarge    = "Request body too large"
)

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type userView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

func (s *HTTPServer) Welcome(c *gin.Context) {
	c.String(http.StatusOK, msgWelcome)
}

func (s *HTTPServer) Health(c *gin.Context) {
	if s.opts.HealthCheck != nil {
		if err := s.opts.HealthCheck(c.Request.Context()); err != nil {
			s.logger.Warn(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) Signup(c *gin.Context) {
	var req signupRequest
	if !s.bind(c, &req) {
		return
	}

	_, err := s.users.Signup(c.Request.Context(), services.SignupRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": msgUserCreated})
	case errors.Is(err, common.ErrorValidation):
		abortMessage(c, http.StatusBadRequest, msgFieldsRequired)
	case errors.Is(err, common.ErrorAlreadyExists):
		abortMessage(c, http.StatusBadRequest, msgUserExists)
	case errors.Is(err, common.ErrorPasswordTooLong):
		abortMessage(c, http.StatusBadRequest, msgPasswordTooLong)
	default:
		abortMessage(c, http.StatusInternalServerError, msgInternal)
	}
}

func (s *HTTPServer) Login(c *gin.Context) {
	var req loginRequest
	if !s.bind(c, &req) {
		return
	}

	sess, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, loginResponse{Token: sess.Token, FirstName: sess.FirstName, LastName: sess.LastName})
	case errors.Is(err, common.ErrorInvalidCredentials):
		abortMessage(c, http.StatusBadRequest, msgBadCredentials)
	default:
		abortMessage(c, http.StatusInternalServerError, msgInternal)
	}
}

func (s *HTTPServer) ValidateToken(c *gin.Context) {
	user, err := s.users.ValidateToken(c.Request.Context(), bearerToken(c))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"user": userView{FirstName: user.FirstName, LastName: user.LastName}})
	case errors.Is(err, common.ErrNoToken):
		abortMessage(c, http.StatusUnauthorized, msgNoToken)
	case errors.Is(err, common.ErrInvalidToken):
		abortMessage(c, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, common.ErrorNotFound):
		abortMessage(c, http.StatusNotFound, msgUserNotFound)
	default:
		abortMessage(c, http.StatusInternalServerError, msgInternal)
	}
}

func (s *HTTPServer) GetProfile(c *gin.Context) {
	p, err := s.profiles.Get(c.Request.Context(), c.GetString(userIDKey))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, p)
	case errors.Is(err, common.ErrorNotFound):
		abortMessage(c, http.StatusNotFound, msgProfileNotFound)
	default:
		abortMessage(c, http.StatusInternalServerError, msgFetchProfile)
	}
}

func (s *HTTPServer) UpdateProfile(c *gin.Context) {
	var req models.ProfilePatch
	if !s.bind(c, &req) {
		return
	}

	p, err := s.profiles.Update(c.Request.Context(), c.GetString(userIDKey), &req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, p)
	case errors.Is(err, common.ErrorNotFound):
		abortMessage(c, http.StatusNotFound, msgUserNotFound)
	default:
		abortMessage(c, http.StatusInternalServerError, msgUpdateProfile)
	}
}

func (s *HTTPServer) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if !s.bind(c, &req) {
		return
	}

	err := s.newsletter.Subscribe(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": msgSubscribed})
	case errors.Is(err, common.ErrorValidation):
		abortMessage(c, http.StatusBadRequest, msgEmailRequired)
	default:
		abortMessage(c, http.StatusInternalServerError, msgSendFailed)
	}
}

// bind decodes a JSON body into dst. An empty body leaves dst zero so the
// service reports the missing fields. It writes the error response itself
// and returns false on failure.
func (s *HTTPServer) bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		abortMessage(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return false
	}
	s.logger.Debug(c.Request.Context(), "bad request body", "path", c.Request.URL.Path, "error", err)
	abortMessage(c, http.StatusBadRequest, msgInvalidBody)
	return false
}

func abortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}
