package config

import (
	"os"
	"strconv"
)

// MailerConfig holds SMTP settings. It is read from the environment once at
// startup and handed to the notifier at construction time; nothing in the
// core reads mail settings ambiently at call time.
type MailerConfig struct {
	Host          string
	Port          int
	Username      string
	Password      string
	From          string // e.g. "Venture Marketplace <no-reply@your.org>"
	SkipTLSVerify bool
}

// LoadMailerConfig reads SMTP_* environment variables.
func LoadMailerConfig() MailerConfig {
	port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return MailerConfig{
		Host:          os.Getenv("SMTP_HOST"),
		Port:          port,
		Username:      os.Getenv("SMTP_USER"),
		Password:      os.Getenv("SMTP_PASS"),
		From:          os.Getenv("SMTP_FROM"),
		SkipTLSVerify: os.Getenv("SMTP_SKIP_TLS_VERIFY") == "1",
	}
}

// IsConfigured reports whether outbound mail can be sent at all.
func (c MailerConfig) IsConfigured() bool {
	return c.Host != "" && c.From != ""
}
