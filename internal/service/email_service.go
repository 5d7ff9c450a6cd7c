package service

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"scentfeed/internal/config"
)

type EmailService interface {
	SendEmailVerification(ctx context.Context, toEmail, displayName, verificationToken string) error
	SendPasswordResetEmail(ctx context.Context, toEmail, displayName, resetToken string) error
}

type emailService struct {
	client *resend.Client
	config *config.Config
}

func NewEmailService(cfg *config.Config) EmailService {
	return &emailService{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

func (s *emailService) SendEmailVerification(ctx context.Context, toEmail, displayName, verificationToken string) error {
	verifyURL := fmt.Sprintf("https://%s/verify-email?token=%s", s.config.Domain, verificationToken)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="color: #7c3aed;">ScentFeed</h1>
	<h2>Hi %s,</h2>
	<p>
		Welcome to <strong>ScentFeed</strong>, the community for fragrance lovers.
		Please confirm your email address to start posting and following other noses.
	</p>
	<div style="text-align: center; margin: 30px 0;">
		<a href="%s"
		   style="background-color: #7c3aed; color: #ffffff; padding: 14px 28px; text-decoration: none; border-radius: 6px; font-weight: bold; display: inline-block;">
			Verify Email
		</a>
	</div>
	<p style="color: #6b7280; font-size: 14px;">
		The link expires in 24 hours. If you did not create this account, you can ignore this email.
	</p>
</body>
</html>`, displayName, verifyURL)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("ScentFeed <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Subject: "Verify your ScentFeed email",
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *emailService) SendPasswordResetEmail(ctx context.Context, toEmail, displayName, resetToken string) error {
	resetURL := fmt.Sprintf("https://%s/reset-password?token=%s", s.config.Domain, resetToken)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="color: #7c3aed;">ScentFeed</h1>
	<h2>Hi %s,</h2>
	<p>
		We received a request to reset your password. Click the button below to choose a new one.
	</p>
	<div style="text-align: center; margin: 30px 0;">
		<a href="%s"
		   style="background-color: #7c3aed; color: #ffffff; padding: 14px 28px; text-decoration: none; border-radius: 6px; font-weight: bold; display: inline-block;">
			Reset Password
		</a>
	</div>
	<p style="color: #6b7280; font-size: 14px;">
		The link expires in 1 hour. If you did not request a reset, you can ignore this email.
	</p>
</body>
</html>`, displayName, resetURL)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("ScentFeed <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Subject: "Reset your ScentFeed password",
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	return err
}
