package httpserver

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/formifyx/backend/internal/common"
	"github.com/formifyx/backend/internal/logging"
	"github.com/formifyx/backend/internal/server/models"
	"github.com/formifyx/backend/internal/server/services"
	"github.com/stretchr/testify/assert"
)

// brokenServices fails every call with an internal error.
type brokenServices struct{}

func (brokenServices) Signup(context.Context, services.SignupRequest) (*models.User, error) {
	return nil, common.ErrorInternal
}
func (brokenServices) Login(context.Context, string, string) (*services.Session, error) {
	return nil, common.ErrorInternal
}
func (brokenServices) Authenticate(string) (string, error) { return "u1", nil }
func (brokenServices) ValidateToken(context.Context, string) (*models.User, error) {
	return nil, errors.New("db down")
}
func (brokenServices) Get(context.Context, string) (*models.Profile, error) {
	return nil, common.ErrorInternal
}
func (brokenServices) Update(context.Context, string, *models.ProfilePatch) (*models.Profile, error) {
	return nil, common.ErrorInternal
}
func (brokenServices) Subscribe(context.Context, string) error { return common.ErrorInternal }

func TestHandlers_InternalErrors(t *testing.T) {
	b := brokenServices{}
	e := &testEnv{t: t, srv: NewHTTPServer(defaultOptions(), logging.NewNopLogger(), b, b, b)}

	cases := []struct {
		method, path, body string
		want               string
	}{
		{http.MethodPost, "/signup", johnSignup, "Something went wrong"},
		{http.MethodPost, "/login", `{"email":"a@b.c","password":"x"}`, "Something went wrong"},
		{http.MethodPost, "/validate-token", "", "Something went wrong"},
		{http.MethodGet, "/api/profile", "", "Failed to fetch profile"},
		{http.MethodPut, "/api/profile", `{}`, "Failed to update profile"},
		{http.MethodPost, "/subscribe", `{"email":"a@b.c"}`, "Failed to send email"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := e.do(tc.method, tc.path, tc.body, bearer("t")...)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Equal(t, tc.want, message(t, w))
		})
	}
}
