package report

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

type Email struct {
	Subject string
	Body    string
}

// Sender delivers a rendered report email. Implementations do a single
// attempt; the caller owns the retry policy.
type Sender interface {
	Send(ctx context.Context, email Email) error
}

type SMTPSender struct {
	Address  string // host:port
	Username string
	Password string

	From       string
	Recipients []string
}

func NewSMTPSenderFromEnv() (*SMTPSender, error) {
	address := os.Getenv("FLOTILLA_SMTP_ADDRESS")
	from := os.Getenv("FLOTILLA_SMTP_FROM")
	recipients := os.Getenv("FLOTILLA_SMTP_RECIPIENTS")

	if address == "" || from == "" || recipients == "" {
		return nil, errors.New("SMTP configuration not set")
	}

	return &SMTPSender{
		Address:  address,
		Username: os.Getenv("FLOTILLA_SMTP_USERNAME"),
		Password: os.Getenv("FLOTILLA_SMTP_PASSWORD"),

		From:       from,
		Recipients: strings.Split(recipients, ","),
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, email Email) error {
	var auth smtp.Auth
	if s.Username != "" {
		host := strings.Split(s.Address, ":")[0]
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.From, strings.Join(s.Recipients, ", "), email.Subject, email.Body,
	)

	if err := smtp.SendMail(s.Address, auth, s.From, s.Recipients, []byte(message)); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	log.Info().Strs("recipients", s.Recipients).Str("subject", email.Subject).Msg("Sent report email")

	return nil
}

// LogSender writes the rendered email to the log instead of delivering it,
// for local runs without SMTP configuration
type LogSender struct{}

func (s *LogSender) Send(ctx context.Context, email Email) error {
	log.Info().Str("subject", email.Subject).Int("bodyBytes", len(email.Body)).Msg("Email delivery skipped (no SMTP configuration)")

	return nil
}
