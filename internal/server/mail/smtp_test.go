package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/formifyx/backend/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
)

func TestNewSMTPSender_Validation(t *testing.T) {
	_, err := NewSMTPSender(SMTPConfig{Port: 587, Username: "u", Password: "p"})
	assert.Error(t, err)

	_, err = NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587})
	assert.Error(t, err)

	s, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.NotNil(t, s)
}

func TestBuildMsg(t *testing.T) {
	m, err := buildMsg(Message{
		From:    "news@formifyx.nl",
		To:      "jane@example.com",
		Subject: "Welcome to FormifyX!",
		HTML:    "<p>hi</p>",
	})
	require.NoError(t, err)

	rcpts, err := m.GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@example.com"}, rcpts)
	assert.Equal(t, []string{"Welcome to FormifyX!"}, m.GetGenHeader(gomail.HeaderSubject))
}

func TestBuildMsg_InvalidAddresses(t *testing.T) {
	_, err := buildMsg(Message{From: "not an address", To: "jane@example.com"})
	assert.Error(t, err)

	_, err = buildMsg(Message{From: "news@formifyx.nl", To: "nope"})
	assert.Error(t, err)
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(logging.NewJSONLogger(&buf, "info"))

	require.NoError(t, s.Send(context.Background(), Message{To: "jane@example.com", Subject: "hello"}))
	assert.Contains(t, buf.String(), "jane@example.com")
	assert.Contains(t, buf.String(), `"module":"mail"`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, Message{}), context.Canceled)
}
