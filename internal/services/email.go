package services

import (
	"apiforge/internal/config"
	"apiforge/internal/logger"
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

// Mailer отправляет транзакционные письма.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// NewMailer возвращает SMTP-отправитель. Если SMTP не настроен,
// возвращает LogMailer, который только пишет письмо в лог.
// Тело письма попадает в лог только при ENV=dev.
func NewMailer(cfg *config.Config) Mailer {
	if !cfg.SMTPConfigured() {
		return LogMailer{Verbose: cfg.Env == "dev"}
	}
	return NewEmailService(cfg)
}

type EmailService struct {
	auth smtp.Auth
	from string
	host string
	port string
}

func NewEmailService(cfg *config.Config) *EmailService {
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	return &EmailService{
		auth: auth,
		from: cfg.MailFrom,
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
	}
}

func (s *EmailService) Send(_ context.Context, to, subject, html string) error {
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, s.auth, s.from, []string{to}, buildMessage(s.from, to, subject, html)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", addr, err)
	}
	return nil
}

func buildMessage(from, to, subject, html string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	b.WriteString(html)
	return []byte(b.String())
}

// LogMailer — для локальной разработки без SMTP.
// Письмо сброса содержит секрет, поэтому тело пишется только с Verbose.
type LogMailer struct {
	Verbose bool
}

func (m LogMailer) Send(ctx context.Context, to, subject, html string) error {
	fields := []zap.Field{
		zap.String("to", to),
		zap.String("subject", subject),
	}
	if m.Verbose {
		fields = append(fields, zap.String("html", html))
	}
	logger.WithCtx(ctx).Info("SMTP не настроен, письмо не отправлено", fields...)
	return nil
}
