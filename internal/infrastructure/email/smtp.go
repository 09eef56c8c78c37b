package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	BaseURL     string // base URL for email links
}

// Service sends transactional billing emails. Implementations must be safe
// for concurrent use.
type Service interface {
	SendSubscriptionActivatedEmail(to, plan string) error
	SendCancellationScheduledEmail(to, plan, accessUntil string) error
	SendSubscriptionEndedEmail(to, plan string) error
	SendPaymentFailedEmail(to, plan string) error
}

type SMTPEmailService struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)

	return &SMTPEmailService{
		config: config,
		dialer: dialer,
	}
}

func (s *SMTPEmailService) SendSubscriptionActivatedEmail(to, plan string) error {
	subject := "Your DreamTalk subscription is active"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome to DreamTalk Premium!</h2>
			<p>Your %s subscription is now active.</p>
			<p>You can record without the free-tier length limit, starting now.</p>
			<p><a href="%s">Open DreamTalk</a></p>
		</body>
		</html>
	`, plan, s.config.BaseURL)

	plainBody := fmt.Sprintf(`
Welcome to DreamTalk Premium!

Your %s subscription is now active. You can record without the free-tier
length limit, starting now.

%s
	`, plan, s.config.BaseURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendCancellationScheduledEmail(to, plan, accessUntil string) error {
	subject := "Your DreamTalk subscription will end soon"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Cancellation scheduled</h2>
			<p>Your %s subscription is scheduled to cancel.</p>
			<p>You keep full access until %s. You can resume the subscription any time before then.</p>
		</body>
		</html>
	`, plan, accessUntil)

	plainBody := fmt.Sprintf(`
Cancellation scheduled

Your %s subscription is scheduled to cancel. You keep full access until %s.
You can resume the subscription any time before then.
	`, plan, accessUntil)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendSubscriptionEndedEmail(to, plan string) error {
	subject := "Your DreamTalk subscription has ended"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Subscription ended</h2>
			<p>Your %s subscription has ended. Your recordings are safe and you can keep using the free tier.</p>
			<p><a href="%s">Resubscribe</a></p>
		</body>
		</html>
	`, plan, s.config.BaseURL)

	plainBody := fmt.Sprintf(`
Subscription ended

Your %s subscription has ended. Your recordings are safe and you can keep
using the free tier.

%s
	`, plan, s.config.BaseURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) SendPaymentFailedEmail(to, plan string) error {
	subject := "Payment issue with your DreamTalk subscription"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Payment failed</h2>
			<p>We couldn't charge your payment method for your %s subscription.</p>
			<p>Please update your payment details to keep premium access.</p>
		</body>
		</html>
	`, plan)

	plainBody := fmt.Sprintf(`
Payment failed

We couldn't charge your payment method for your %s subscription. Please
update your payment details to keep premium access.
	`, plan)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromAddress)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
