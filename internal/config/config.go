package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DbHost    string
	DbPort    string
	DbUser    string
	DbPass    string
	DbName    string
	DbSSLMode string

	JWTSecret     string
	SessionTTL    string
	SessionCookie string

	Log      string
	LogLevel string
	LogDir   string
	Env      string // dev|prod

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	MailFrom     string

	AppURL           string
	PasswordResetTTL string
	CORSOrigins      []string
}

// LoadConfig загружает .env, читает переменные окружения и выставляет дефолты.
// Ничего не логирует, чтобы не создавать зависимость от logger.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	def := func(v, d string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return d
		}
		return v
	}

	cfg := &Config{
		Port:      def(os.Getenv("PORT"), "8080"),
		DbHost:    os.Getenv("DB_HOST"),
		DbPort:    def(os.Getenv("DB_PORT"), "5432"),
		DbUser:    os.Getenv("DB_USER"),
		DbPass:    os.Getenv("DB_PASSWORD"),
		DbName:    os.Getenv("DB_NAME"),
		DbSSLMode: def(os.Getenv("DB_SSLMODE"), "disable"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionTTL:    def(os.Getenv("SESSION_TTL"), "24h"),
		SessionCookie: def(os.Getenv("SESSION_COOKIE"), "apiforge_session"),

		Log:      os.Getenv("LOG"),
		LogLevel: strings.ToLower(def(os.Getenv("LOGLEVEL"), "info")),
		LogDir:   def(os.Getenv("LOG_DIR"), "logs"),
		Env:      strings.ToLower(def(os.Getenv("ENV"), "prod")),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     def(os.Getenv("SMTP_PORT"), "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     def(os.Getenv("MAIL_FROM"), os.Getenv("SMTP_USER")),

		AppURL:           strings.TrimRight(def(os.Getenv("APP_URL"), "http://localhost:8080"), "/"),
		PasswordResetTTL: def(os.Getenv("PASSWORD_RESET_TTL"), "1h"),
		CORSOrigins:      splitList(os.Getenv("CORS_ORIGINS")),
	}

	if _, err := time.ParseDuration(cfg.SessionTTL); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", cfg.SessionTTL, err)
	}
	if _, err := time.ParseDuration(cfg.PasswordResetTTL); err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_RESET_TTL %q: %w", cfg.PasswordResetTTL, err)
	}

	return cfg, nil
}

// Validate возвращает предупреждения и фатальную ошибку (если критично).
func (c *Config) Validate() (warnings []string, err error) {
	if c.DbHost == "" || c.DbUser == "" || c.DbName == "" {
		return nil, fmt.Errorf("incomplete DB config (DB_HOST/DB_USER/DB_NAME)")
	}

	if strings.TrimSpace(c.JWTSecret) == "" {
		if c.Env == "prod" {
			return nil, fmt.Errorf("JWT_SECRET is required in prod")
		}
		warnings = append(warnings, "JWT_SECRET is empty")
	}

	if !c.SMTPConfigured() {
		if c.Env == "prod" {
			return nil, fmt.Errorf("SMTP_HOST and MAIL_FROM are required in prod")
		}
		warnings = append(warnings, "SMTP is not fully configured, reset emails will not be sent")
	}

	if len(c.CORSOrigins) == 0 {
		warnings = append(warnings, "CORS_ORIGINS is empty, cross-origin requests are rejected")
	}

	return warnings, nil
}

// SessionDuration — время жизни сессионного токена.
func (c *Config) SessionDuration() time.Duration {
	d, _ := time.ParseDuration(c.SessionTTL)
	return d
}

// ResetTokenDuration — время жизни токена сброса пароля.
func (c *Config) ResetTokenDuration() time.Duration {
	d, _ := time.ParseDuration(c.PasswordResetTTL)
	return d
}

// SMTPConfigured сообщает, можно ли отправлять реальные письма.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.MailFrom != ""
}

// GetDSN — полная DSN (с паролем)
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbPass, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

// GetDSNSafe — DSN без пароля (для логов)
func (c *Config) GetDSNSafe() string {
	return fmt.Sprintf(
		"postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DbUser, c.DbHost, c.DbPort, c.DbName, c.DbSSLMode,
	)
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
