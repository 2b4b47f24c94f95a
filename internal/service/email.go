package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"vendorhub/internal/domain"
	"vendorhub/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendInvitation(ctx context.Context, inv *domain.Invitation, onboardingURL string) error {
	subject := "You're invited to become an Intnt vendor"
	body := fmt.Sprintf(
		"Hello %s,\n\nYou have been invited to onboard %s as a vendor.\n\nStart (or resume) your application here:\n\n%s\n\nYou can exit at any time and return using the same link to continue where you left off.\n\nBest regards,\nThe Vendor Hub Team",
		inv.FirstName, inv.CompanyName, onboardingURL)
	return s.send(ctx, inv.Email, inv.FirstName+" "+inv.LastName, subject, body)
}

func (s *emailService) SendSubmissionConfirmation(ctx context.Context, email, name, companyName string) error {
	subject := fmt.Sprintf("Vendor application received for %s", companyName)
	body := fmt.Sprintf(
		"Hello %s,\n\nThank you for completing the vendor onboarding for %s. We'll review your information and be in touch shortly.\n\nBest regards,\nThe Vendor Hub Team",
		name, companyName)
	return s.send(ctx, email, name, subject, body)
}

func (s *emailService) SendInviterNotice(ctx context.Context, inviterEmail, companyName string) error {
	subject := fmt.Sprintf("%s completed vendor onboarding", companyName)
	body := fmt.Sprintf(
		"The vendor application you invited for %s has been submitted and is ready for review.",
		companyName)
	return s.send(ctx, inviterEmail, "", subject, body)
}

func (s *emailService) SendDraftReminder(ctx context.Context, email, name string, step domain.Step) error {
	subject := "Your vendor application is waiting"
	body := fmt.Sprintf(
		"Hello %s,\n\nYour vendor onboarding application is still in progress (page %d of 8). Use the link from your invitation email to pick up where you left off.\n\nBest regards,\nThe Vendor Hub Team",
		name, int(step))
	return s.send(ctx, email, name, subject, body)
}
