package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type sendGridEmailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	baseURL   string
}

// NewSendGridEmailService returns the SendGrid-backed sender. baseURL is
// the frontend origin used to build invitation links.
func NewSendGridEmailService(apiKey, fromEmail, fromName, baseURL string) EmailService {
	return &sendGridEmailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		baseURL:   baseURL,
	}
}

func (s *sendGridEmailService) SendInvitation(ctx context.Context, email, scopeName, token, message string) error {
	subject := fmt.Sprintf("You're invited to join %s", scopeName)
	link := fmt.Sprintf("%s/invites/%s", s.baseURL, token)

	plainText := fmt.Sprintf("You have been invited to join %s.\n\nAccept here: %s", scopeName, link)
	if message != "" {
		plainText += fmt.Sprintf("\n\nMessage from the inviter:\n%s", message)
	}

	htmlContent := fmt.Sprintf(`
		<p>You have been invited to join <strong>%s</strong>.</p>
		<p><a href="%s">Accept the invitation</a></p>`, scopeName, link)
	if message != "" {
		htmlContent += fmt.Sprintf("<p>Message from the inviter:</p><blockquote>%s</blockquote>", message)
	}

	return s.send(ctx, email, subject, plainText, htmlContent)
}

func (s *sendGridEmailService) SendRequestDecision(ctx context.Context, email, scopeName string, approved bool) error {
	var subject, body string
	if approved {
		subject = fmt.Sprintf("Your request to join %s was approved", scopeName)
		body = fmt.Sprintf("Good news: your request to join %s was approved. You are now a member.", scopeName)
	} else {
		subject = fmt.Sprintf("Your request to join %s was declined", scopeName)
		body = fmt.Sprintf("Your request to join %s was declined by an administrator.", scopeName)
	}
	return s.send(ctx, email, subject, body, fmt.Sprintf("<p>%s</p>", body))
}

func (s *sendGridEmailService) send(ctx context.Context, to, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
