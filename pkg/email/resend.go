package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Sender delivers a prepared message. The Resend client and the log-only
// fallback both implement it.
type Sender interface {
	Send(to, subject, html string) (string, error)
}

type EmailService struct {
	sender Sender
	logger *zap.Logger
}

func NewEmailService(sender Sender, logger *zap.Logger) *EmailService {
	return &EmailService{
		sender: sender,
		logger: logger.Named("email"),
	}
}

// SendConfirmationEmail sends the account confirmation link to a new user.
func (s *EmailService) SendConfirmationEmail(to, link string) error {
	s.logger.Info("sending confirmation email", zap.String("to", to))

	html, err := render("confirm-account.html", map[string]interface{}{
		"Email":            to,
		"ConfirmationLink": link,
		"Year":             time.Now().Year(),
	})
	if err != nil {
		s.logger.Error("failed to render confirmation template", zap.String("to", to), zap.Error(err))
		return err
	}

	id, err := s.sender.Send(to, "Confirm your Groupslot account", html)
	if err != nil {
		s.logger.Error("failed to send confirmation email", zap.String("to", to), zap.Error(err))
		return err
	}

	s.logger.Info("sent confirmation email", zap.String("to", to), zap.String("id", id))
	return nil
}

func render(name string, data interface{}) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return body.String(), nil
}

// ResendSender sends through the Resend API.
type ResendSender struct {
	client   *resend.Client
	from     string
	fromName string
}

func NewResendSender(apiKey, from, fromName string) *ResendSender {
	return &ResendSender{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (s *ResendSender) Send(to, subject, html string) (string, error) {
	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		return "", fmt.Errorf("resend: %w", err)
	}
	return resp.Id, nil
}

// LogSender only logs messages. Used when no Resend API key is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger.Named("email.log")}
}

func (s *LogSender) Send(to, subject, html string) (string, error) {
	s.logger.Info("email not delivered, no provider configured",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("bytes", len(html)),
	)
	return "log-only", nil
}
