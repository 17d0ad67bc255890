package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/formifyx/backend/internal/dbx"
	"github.com/formifyx/backend/internal/server/mail"
	"github.com/formifyx/backend/internal/server/models"
	"github.com/formifyx/backend/internal/server/repositories/profiles"
	"github.com/formifyx/backend/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

// fakeHasher stores "hashed:<plaintext>" and counts VerifyNothing calls.
type fakeHasher struct {
	hashErr    error
	nothing    int
	verifyCall int
}

func (h *fakeHasher) Hash(p string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + p, nil
}

func (h *fakeHasher) Verify(p, hashed string) bool {
	h.verifyCall++
	return hashed == "hashed:"+p
}

func (h *fakeHasher) VerifyNothing(string) { h.nothing++ }

// fakeTokens encodes the user id into the token.
type fakeTokens struct {
	issueErr error
}

func (t *fakeTokens) Issue(userID string) (string, error) {
	if t.issueErr != nil {
		return "", t.issueErr
	}
	return "tok:" + userID, nil
}

func (t *fakeTokens) Verify(token string) (string, error) {
	id, ok := strings.CutPrefix(token, "tok:")
	if !ok || id == "" {
		return "", errors.New("bad token")
	}
	return id, nil
}

// brokenUsers fails every call with errBoom.
type brokenUsers struct{}

func (brokenUsers) Create(context.Context, *models.User) (*models.User, error) { return nil, errBoom }
func (brokenUsers) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errBoom
}
func (brokenUsers) GetUserByID(context.Context, string) (*models.User, error) { return nil, errBoom }

type brokenProfiles struct{}

func (brokenProfiles) Get(context.Context, string) (*models.Profile, error) { return nil, errBoom }
func (brokenProfiles) Upsert(context.Context, string, *models.ProfilePatch) (*models.Profile, error) {
	return nil, errBoom
}

type brokenManager struct{}

func (brokenManager) RunMigrations(context.Context) error { return nil }
func (brokenManager) Users(dbx.DBTX) users.Repository { return brokenUsers{} }
func (brokenManager) Profiles(dbx.DBTX) profiles.Repository { return brokenProfiles{} }
func (brokenManager) DB() dbx.DBTX { return nil }
func (brokenManager) Ping(context.Context) error { return errBoom }
func (brokenManager) Close() error { return nil }

type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg mail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}
