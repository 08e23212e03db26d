package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"suggestion-box/internal/config"
	"suggestion-box/internal/domain"
)

type EmailService interface {
	SendStatusUpdate(ctx context.Context, toEmail, problem string, status domain.SuggestionStatus, reason *string) error
}

type emailService struct {
	client *resend.Client
	config *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &emailService{
		client: client,
		config: cfg,
	}
}

func (s *emailService) SendStatusUpdate(ctx context.Context, toEmail, problem string, status domain.SuggestionStatus, reason *string) error {
	subject := fmt.Sprintf("Your suggestion is now %s", statusLabel(status))

	reasonBlock := ""
	if reason != nil && *reason != "" {
		reasonBlock = fmt.Sprintf(`
		<div style="background-color: #fef2f2; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #ef4444;">
			<strong>Reason:</strong> %s
		</div>`, *reason)
	}

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #2563eb 0%%, #7c3aed 100%%); padding: 24px; text-align: center; border-radius: 10px 10px 0 0;">
		<h1 style="color: #ffffff; margin: 0; font-size: 24px;">Suggestion Box</h1>
	</div>
	<div style="background-color: #ffffff; padding: 24px; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px;">
		<p>Your suggestion has been reviewed and is now <strong>%s</strong>.</p>
		<div style="background-color: #f3f4f6; padding: 16px; border-radius: 8px; margin: 16px 0;">
			%s
		</div>
		%s
		<p style="font-size: 14px; color: #6b7280;">
			You can follow the status of all your submissions on the My Suggestions page.
		</p>
	</div>
</body>
</html>`, statusLabel(status), problem, reasonBlock)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Suggestion Box <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func statusLabel(status domain.SuggestionStatus) string {
	switch status {
	case domain.StatusNew:
		return "New"
	case domain.StatusInProgress:
		return "In Progress"
	case domain.StatusAccepted:
		return "Accepted"
	case domain.StatusRejected:
		return "Rejected"
	case domain.StatusCompleted:
		return "Completed"
	default:
		return string(status)
	}
}
