package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSMTPSendTemporaryPassword(t *testing.T) {
	m := NewSMTP(zap.NewNop(), "mail.example.com", 587, "login", "secret", "noreply@example.com")

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	user := &model.User{FirstName: "Joanna", Email: "jo@example.com"}
	require.NoError(t, m.SendTemporaryPassword(context.Background(), user, "Abc123xyz"))

	assert.Equal(t, "mail.example.com:587", gotAddr)
	assert.Equal(t, "noreply@example.com", gotFrom)
	assert.Equal(t, []string{"jo@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "To: jo@example.com\r\n")
	assert.Contains(t, string(gotMsg), "Abc123xyz")
}

func TestSMTPSendError(t *testing.T) {
	m := NewSMTP(zap.NewNop(), "mail.example.com", 25, "", "", "noreply@example.com")
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	}
	err := m.SendTemporaryPassword(context.Background(), &model.User{Email: "jo@example.com"}, "x")
	assert.ErrorContains(t, err, "connection refused")
}

func TestSMTPCancelledContext(t *testing.T) {
	m := NewSMTP(zap.NewNop(), "mail.example.com", 25, "", "", "noreply@example.com")
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.SendTemporaryPassword(ctx, &model.User{Email: "jo@example.com"}, "x"), context.Canceled)
}

func TestLogMailer(t *testing.T) {
	tests := []struct {
		name   string
		reveal bool
		level  zapcore.Level
	}{
		{"reveal in development", true, zapcore.InfoLevel},
		{"hide in production", false, zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			m := NewLog(zap.New(core), tt.reveal)

			require.NoError(t, m.SendTemporaryPassword(context.Background(), &model.User{Email: "jo@example.com"}, "Abc123xyz"))

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			_, hasPassword := entries[0].ContextMap()["password"]
			assert.Equal(t, tt.reveal, hasPassword)
		})
	}
}
