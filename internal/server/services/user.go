// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login and session token validation.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/formifyx/backend/internal/common"
	"github.com/formifyx/backend/internal/logging"
	"github.com/formifyx/backend/internal/server/auth"
	"github.com/formifyx/backend/internal/server/models"
	"github.com/formifyx/backend/internal/server/repositories/repomanager"
)

// PasswordHasher hashes and checks account passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hashed string) bool
	// VerifyNothing burns the time of a Verify call for unknown accounts.
	VerifyNothing(plaintext string)
}

// TokenManager issues and verifies session tokens.
type TokenManager interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// SignupRequest carries the fields of a new account.
type SignupRequest struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	FirstName string
	LastName  string
}

// UserService provides authentication-related operations:
// - Signup: create accounts
// - Login: verify credentials and mint a session token
// - ValidateToken: resolve a session token to its account
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenManager
	logger      logging.Logger
}

func NewUserService(m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenManager, logger logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "users"),
	}
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Emails are stored and looked up in this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account. It returns common.ErrorValidation when a field
// is blank, common.ErrorAlreadyExists when the email is taken and
// common.ErrorPasswordTooLong for passwords bcrypt cannot hash.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	email := NormalizeEmail(req.Email)
	if firstName == "" || lastName == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Users(s.repomanager.DB())

	_, err := repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "signup lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, common.ErrorPasswordTooLong
		}
		s.logger.Error(ctx, "hash password failed", "error", err)
		return nil, common.ErrorInternal
	}

	// The unique index decides concurrent signups for the same email.
	user, err := repo.Create(ctx, &models.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "create user failed", "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "user signed up", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and returns a fresh session. Unknown emails
// and wrong passwords both yield common.ErrorInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.ErrorInvalidCredentials
	}

	repo := s.repomanager.Users(s.repomanager.DB())
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.VerifyNothing(password)
			return nil, common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "login lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error(ctx, "issue token failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &Session{Token: token, FirstName: user.FirstName, LastName: user.LastName}, nil
}

// Authenticate resolves a session token to its user id without touching the
// store.
func (s *UserService) Authenticate(token string) (string, error) {
	if token == "" {
		return "", common.ErrNoToken
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return "", common.ErrInvalidToken
	}
	return userID, nil
}

// ValidateToken verifies a session token and loads the account it names.
func (s *UserService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	userID, err := s.Authenticate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.repomanager.DB()).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "validate token lookup failed", "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}
