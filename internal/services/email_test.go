package services

import (
	"apiforge/internal/config"
	"apiforge/internal/logger"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })
	return logs
}

func TestNewMailer(t *testing.T) {
	m, ok := NewMailer(&config.Config{Env: "prod"}).(LogMailer)
	require.True(t, ok, "без SMTP письма только логируются")
	assert.False(t, m.Verbose)

	m, ok = NewMailer(&config.Config{Env: "dev"}).(LogMailer)
	require.True(t, ok)
	assert.True(t, m.Verbose)

	smtpMailer := NewMailer(&config.Config{SMTPHost: "smtp.test", SMTPPort: "587", SMTPUser: "u", MailFrom: "noreply@test"})
	_, ok = smtpMailer.(*EmailService)
	assert.True(t, ok)
}

func TestLogMailer_HidesBody(t *testing.T) {
	logs := observeLogs(t)
	body := `<a href="http://app.test/reset-password?token=s3cr3t">reset</a>`

	require.NoError(t, LogMailer{}.Send(context.Background(), "a@example.com", "subj", body))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "a@example.com", fields["to"])
	assert.Equal(t, "subj", fields["subject"])
	assert.NotContains(t, fields, "html")
	for _, v := range fields {
		assert.NotContains(t, v, "s3cr3t")
	}
}

func TestLogMailer_Verbose(t *testing.T) {
	logs := observeLogs(t)

	require.NoError(t, LogMailer{Verbose: true}.Send(context.Background(), "a@example.com", "subj", "<p>hi</p>"))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "<p>hi</p>", logs.All()[0].ContextMap()["html"])
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("noreply@test", "a@example.com", "Reset Your API Forge Password", "<p>hi</p>"))

	head, body, found := strings.Cut(msg, "\r\n\r\n")
	assert.True(t, found)
	assert.Contains(t, head, "From: noreply@test\r\n")
	assert.Contains(t, head, "To: a@example.com\r\n")
	assert.Contains(t, head, "Subject: Reset Your API Forge Password\r\n")
	assert.Contains(t, head, "Content-Type: text/html")
	assert.Equal(t, "<p>hi</p>", body)
}
