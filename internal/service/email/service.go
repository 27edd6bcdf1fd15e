package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"rewear/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	Enabled() bool
	SendSwapRequestEmail(ctx context.Context, toEmail, recipientName, subject, message, actionPath string) error
	SendSwapStatusEmail(ctx context.Context, toEmail, recipientName, subject, status, message, actionPath string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &service{client: client, config: cfg}
}

func (s *service) Enabled() bool {
	return s.client != nil
}

type mailData struct {
	Title   string
	Name    string
	Message string
	Status  string
	Color   string
	Link    string
}

func render(templateName string, data mailData) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(ctx context.Context, toEmail, subject, templateName string, data mailData) error {
	if s.client == nil {
		return nil
	}

	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("ReWear <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.client.Emails.SendWithContext(ctx, params)
	return err
}

func (s *service) link(actionPath string) string {
	scheme := "https"
	if !s.config.IsProduction() {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s%s", scheme, s.config.Domain, actionPath)
}

func (s *service) SendSwapRequestEmail(ctx context.Context, toEmail, recipientName, subject, message, actionPath string) error {
	data := mailData{
		Title:   subject,
		Name:    recipientName,
		Message: message,
		Link:    s.link(actionPath),
	}
	return s.sendEmail(ctx, toEmail, subject, "swap_request.html", data)
}

func (s *service) SendSwapStatusEmail(ctx context.Context, toEmail, recipientName, subject, status, message, actionPath string) error {
	color := "#10b981"
	if status == "rejected" || status == "cancelled" {
		color = "#ef4444"
	}

	data := mailData{
		Title:   subject,
		Name:    recipientName,
		Message: message,
		Status:  status,
		Color:   color,
		Link:    s.link(actionPath),
	}
	return s.sendEmail(ctx, toEmail, subject, "swap_status.html", data)
}
