package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"sort"
	"strings"

	"Mydailylogs/Models"
)

// Send delivers one message through the configured SMTP server, over TLS
// when the config asks for it.
func Send(config Models.EmailConfig, message Models.EmailMessage) error {
	body := buildMessage(config, message)
	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)
	serverAddr := fmt.Sprintf("%s:%d", config.SMTPServer, config.SMTPPort)

	recipients := make([]string, 0, len(message.To)+len(message.CC)+len(message.BCC))
	recipients = append(recipients, message.To...)
	recipients = append(recipients, message.CC...)
	recipients = append(recipients, message.BCC...)

	if !config.TLSEnabled {
		return smtp.SendMail(serverAddr, auth, config.FromEmail, recipients, []byte(body))
	}

	tlsConfig := &tls.Config{
		ServerName:         config.SMTPServer,
		InsecureSkipVerify: config.SkipTLSCheck,
	}
	conn, err := tls.Dial("tcp", serverAddr, tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, config.SMTPServer)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, recipient := range recipients {
		if err = client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to add recipient %s: %w", recipient, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data connection: %w", err)
	}
	if _, err = w.Write([]byte(body)); err != nil {
		return fmt.Errorf("failed to write email body: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data connection: %w", err)
	}
	return client.Quit()
}

func buildMessage(config Models.EmailConfig, message Models.EmailMessage) string {
	headers := map[string]string{
		"From":    fmt.Sprintf("%s <%s>", config.FromName, config.FromEmail),
		"To":      strings.Join(message.To, ", "),
		"Subject": message.Subject,
	}
	if len(message.CC) > 0 {
		headers["Cc"] = strings.Join(message.CC, ", ")
	}
	if message.IsHTML {
		headers["MIME-Version"] = "1.0"
		headers["Content-Type"] = "text/html; charset=UTF-8"
	} else {
		headers["Content-Type"] = "text/plain; charset=UTF-8"
	}

	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, key := range keys {
		builder.WriteString(fmt.Sprintf("%s: %s\r\n", key, headers[key]))
	}
	builder.WriteString("\r\n")
	builder.WriteString(message.Body)
	return builder.String()
}
