package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"lehrmatch/internal/domain"
)

// SMTPSender delivers notifications over plain SMTP or SMTPS.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
	useTLS   bool
}

func NewSMTPSender(host string, port int, username, password, from, fromName string, useTLS bool) (*SMTPSender, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(from) == "" {
		return nil, fmt.Errorf("smtp from is required")
	}
	if port == 0 {
		port = 587
	}
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		fromName: fromName,
		useTLS:   useTLS,
	}, nil
}

func (s *SMTPSender) SendMatchNotification(_ context.Context, event domain.MatchCreated) error {
	subject := fmt.Sprintf("Neues Match: %s", event.ListingTitle)
	body := fmt.Sprintf(
		"Du hast ein neues Match!\n\nLehrstelle: %s\nBetrieb: %s\n",
		event.ListingTitle,
		event.CompanyName,
	)
	if event.Match.CompatibilityScore != nil {
		body += fmt.Sprintf("Kompatibilität: %d%%\n", *event.Match.CompatibilityScore)
	}
	body += fmt.Sprintf("\nGematcht am %s.\n", event.Match.MatchedAt.UTC().Format(time.RFC3339))
	return s.send(event.StudentEmail, subject, body)
}

func (s *SMTPSender) SendApplicationStatusUpdate(_ context.Context, event domain.ApplicationStatusChanged) error {
	subject := fmt.Sprintf("Bewerbung aktualisiert: %s", event.ListingTitle)
	body := fmt.Sprintf(
		"Der Status deiner Bewerbung für %s hat sich geändert.\n\nVorher: %s\nNeu: %s\n",
		event.ListingTitle,
		event.Previous,
		event.Application.Status,
	)
	return s.send(event.StudentEmail, subject, body)
}

func (s *SMTPSender) send(toEmail, subject, body string) error {
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("to email is required")
	}

	msg := buildMessage(s.from, s.fromName, toEmail, subject, body)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if s.useTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{
			ServerName: s.host,
		})
		if err != nil {
			return err
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.host)
		if err != nil {
			return err
		}
		defer client.Quit()

		if auth != nil {
			if err := client.Auth(auth); err != nil {
				return err
			}
		}
		if err := client.Mail(s.from); err != nil {
			return err
		}
		if err := client.Rcpt(toEmail); err != nil {
			return err
		}
		writer, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := writer.Write([]byte(msg)); err != nil {
			_ = writer.Close()
			return err
		}
		return writer.Close()
	}

	return smtp.SendMail(addr, auth, s.from, []string{toEmail}, []byte(msg))
}

func buildMessage(from, fromName, to, subject, body string) string {
	fromHeader := from
	if strings.TrimSpace(fromName) != "" {
		fromHeader = fmt.Sprintf("%s <%s>", fromName, from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
