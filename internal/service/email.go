package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"gopkg.in/gomail.v2"

	"darna-backend/internal/config"
	"darna-backend/internal/logger"
)

// NewEmailService builds the provider selected in config: plain SMTP via
// gomail, or the SendGrid API.
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.Provider == "sendgrid" {
		return &sendgridEmailService{apiKey: cfg.SendGridAPIKey, from: cfg.From}
	}
	return &smtpEmailService{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.User,
		password: cfg.Password,
		from:     cfg.From,
	}
}

type smtpEmailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func (s *smtpEmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *smtpEmailService) SendListingApproved(ctx context.Context, email, name, title string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour listing '%s' has been approved and is now live.\n\nBest regards,\nThe Darna Team", name, title)
	return s.send(email, "Your listing is live", body)
}

func (s *smtpEmailService) SendListingRejected(ctx context.Context, email, name, title, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour listing '%s' was not approved.\n\nReason: %s\n\nBest regards,\nThe Darna Team", name, title, reason)
	return s.send(email, "Your listing needs changes", body)
}

func (s *smtpEmailService) SendBookingRequest(ctx context.Context, hostEmail, guestName, title string) error {
	body := fmt.Sprintf("Hello,\n\n%s requested to book '%s'. Review the request in your dashboard.\n\nBest regards,\nThe Darna Team", guestName, title)
	return s.send(hostEmail, "New booking request", body)
}

func (s *smtpEmailService) SendBookingConfirmed(ctx context.Context, guestEmail, title, checkIn string) error {
	body := fmt.Sprintf("Hello,\n\nYour booking for '%s' is confirmed. Check-in: %s.\n\nBest regards,\nThe Darna Team", title, checkIn)
	return s.send(guestEmail, "Booking confirmed", body)
}

func (s *smtpEmailService) SendBookingCancelled(ctx context.Context, email, title string) error {
	body := fmt.Sprintf("Hello,\n\nA booking for '%s' was cancelled.\n\nBest regards,\nThe Darna Team", title)
	return s.send(email, "Booking cancelled", body)
}

func (s *smtpEmailService) SendWithdrawalProcessed(ctx context.Context, hostEmail string, amountDzd int64, status string) error {
	body := fmt.Sprintf("Hello,\n\nYour withdrawal request for %d DA is now %s.\n\nBest regards,\nThe Darna Team", amountDzd, status)
	return s.send(hostEmail, "Withdrawal update", body)
}

type sendgridEmailService struct {
	apiKey string
	from   string
}

func (s *sendgridEmailService) send(to, subject, body string) error {
	from := mail.NewEmail("Darna", s.from)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, body)
	client := sendgrid.NewSendClient(s.apiKey)
	resp, err := client.Send(message)
	logger.ExternalServiceResult("sendgrid", "send", err, "status_code", respStatus(resp))
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if resp != nil && resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected the message: status %d", resp.StatusCode)
	}
	return nil
}

func respStatus(resp *rest.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func (s *sendgridEmailService) SendListingApproved(ctx context.Context, email, name, title string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour listing '%s' has been approved and is now live.\n\nBest regards,\nThe Darna Team", name, title)
	return s.send(email, "Your listing is live", body)
}

func (s *sendgridEmailService) SendListingRejected(ctx context.Context, email, name, title, reason string) error {
	body := fmt.Sprintf("Hello %s,\n\nYour listing '%s' was not approved.\n\nReason: %s\n\nBest regards,\nThe Darna Team", name, title, reason)
	return s.send(email, "Your listing needs changes", body)
}

func (s *sendgridEmailService) SendBookingRequest(ctx context.Context, hostEmail, guestName, title string) error {
	body := fmt.Sprintf("Hello,\n\n%s requested to book '%s'. Review the request in your dashboard.\n\nBest regards,\nThe Darna Team", guestName, title)
	return s.send(hostEmail, "New booking request", body)
}

func (s *sendgridEmailService) SendBookingConfirmed(ctx context.Context, guestEmail, title, checkIn string) error {
	body := fmt.Sprintf("Hello,\n\nYour booking for '%s' is confirmed. Check-in: %s.\n\nBest regards,\nThe Darna Team", title, checkIn)
	return s.send(guestEmail, "Booking confirmed", body)
}

func (s *sendgridEmailService) SendBookingCancelled(ctx context.Context, email, title string) error {
	body := fmt.Sprintf("Hello,\n\nA booking for '%s' was cancelled.\n\nBest regards,\nThe Darna Team", title)
	return s.send(email, "Booking cancelled", body)
}

func (s *sendgridEmailService) SendWithdrawalProcessed(ctx context.Context, hostEmail string, amountDzd int64, status string) error {
	body := fmt.Sprintf("Hello,\n\nYour withdrawal request for %d DA is now %s.\n\nBest regards,\nThe Darna Team", amountDzd, status)
	return s.send(hostEmail, "Withdrawal update", body)
}
