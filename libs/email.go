package libs

import (
	"errors"
	"fmt"
	"html"

	"abeg-fix/config"
	"abeg-fix/models"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const (
	subjectVerify = "Verify your Abeg Fix account"
	subjectReset  = "Password Reset - Abeg Fix"
)

var ErrSMTPNotConfigured = errors.New("SMTP configuration missing")

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailService struct {
	dialer sender
	from   string
}

func NewEmailService(cfg *config.Config) (*EmailService, error) {
	if cfg.SMTPHost == "" || cfg.SMTPUser == "" || cfg.SMTPPass == "" {
		return nil, ErrSMTPNotConfigured
	}

	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &EmailService{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   from,
	}, nil
}

func (s *EmailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from, "Abeg Fix")
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *EmailService) SendVerificationOTP(to, firstName, otp string, role models.Role) error {
	return s.send(to, subjectVerify, verificationBody(firstName, otp, role))
}

func (s *EmailService) SendPasswordReset(to, firstName, resetURL string) error {
	return s.send(to, subjectReset, resetBody(firstName, resetURL))
}

func verificationBody(firstName, otp string, role models.Role) string {
	return fmt.Sprintf(`
<div style="font-family: 'Segoe UI', Tahoma, sans-serif; max-width: 600px; margin: auto; border: 1px solid #e2e8f0; border-radius: 16px; overflow: hidden;">
  <div style="background-color: #1E3A8A; padding: 30px; text-align: center;">
    <h1 style="color: white; margin: 0; font-size: 24px; letter-spacing: 2px;">ABEG FIX</h1>
  </div>
  <div style="padding: 40px 20px; color: #334155; line-height: 1.6;">
    <h2 style="color: #1E3A8A;">Confirm your registration</h2>
    <p>Hello <b>%s</b>,</p>
    <p>Welcome to Abeg Fix. You signed up as a <b>%s</b>. Enter the code below to verify your email address:</p>
    <div style="background: #f8fafc; border: 2px dashed #cbd5e1; padding: 20px; text-align: center; margin: 30px 0; border-radius: 12px;">
      <span style="font-size: 32px; font-weight: 900; letter-spacing: 8px; color: #1E3A8A;">%s</span>
    </div>
    <p style="font-size: 14px;">The code expires in <b>10 minutes</b>. Ignore this email if you did not create an account.</p>
  </div>
  <div style="background-color: #f1f5f9; padding: 20px; text-align: center; font-size: 12px; color: #64748b;">
    Abeg Fix. Trusted artisans near you.
  </div>
</div>
`, html.EscapeString(firstName), html.EscapeString(string(role)), html.EscapeString(otp))
}

func resetBody(firstName, resetURL string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; padding: 20px; border: 1px solid #e2e8f0; border-radius: 12px;">
  <h2 style="color: #1E3A8A; text-transform: uppercase;">Password Reset Request</h2>
  <p>Hello %s,</p>
  <p>Someone asked to reset the password on your <b>Abeg Fix</b> account. Use the button below to pick a new one:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #1E3A8A; color: white; padding: 14px 24px; text-decoration: none; border-radius: 8px; font-weight: bold; display: inline-block;">Reset My Password</a>
  </div>
  <p style="color: #64748b; font-size: 12px;">The link stops working after 60 minutes. No action is needed if this wasn't you.</p>
</div>
`, html.EscapeString(firstName), html.EscapeString(resetURL))
}

// LogMailer stands in for EmailService when SMTP is not configured. It logs
// what would have been sent, including the OTP, so it must not run in
// production.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerificationOTP(to, firstName, otp string, role models.Role) error {
	m.logger.Info("Verification email (not sent)",
		zap.String("to", to),
		zap.String("role", string(role)),
		zap.String("otp", otp))
	return nil
}

func (m *LogMailer) SendPasswordReset(to, firstName, resetURL string) error {
	m.logger.Info("Password reset email (not sent)",
		zap.String("to", to),
		zap.String("reset_url", resetURL))
	return nil
}
