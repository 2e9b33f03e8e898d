package Models

import (
	"os"
	"strconv"
)

type EmailConfig struct {
	SMTPServer   string
	SMTPPort     int
	Username     string
	Password     string
	FromEmail    string
	FromName     string
	TLSEnabled   bool
	SkipTLSCheck bool
}

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To      []string
	CC      []string
	BCC     []string
	Subject string
	Body    string
	IsHTML  bool
}

// Configured reports whether the config points at a real SMTP server.
func (c EmailConfig) Configured() bool {
	return c.SMTPServer != "" && c.FromEmail != ""
}

// LoadEmailConfig reads the SMTP settings from the environment. An empty
// server means email is disabled and senders should log instead of failing.
func LoadEmailConfig() EmailConfig {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	fromName := os.Getenv("SMTP_FROM_NAME")
	if fromName == "" {
		fromName = "Mydailylogs"
	}
	return EmailConfig{
		SMTPServer:   os.Getenv("SMTP_SERVER"),
		SMTPPort:     port,
		Username:     os.Getenv("SMTP_USERNAME"),
		Password:     os.Getenv("SMTP_PASSWORD"),
		FromEmail:    os.Getenv("SMTP_FROM_EMAIL"),
		FromName:     fromName,
		TLSEnabled:   os.Getenv("SMTP_TLS") != "false",
		SkipTLSCheck: os.Getenv("SMTP_SKIP_TLS_CHECK") == "true",
	}
}
