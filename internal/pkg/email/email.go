package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/greeklink/greeklink/internal/pkg/logger"
)

// Config defines SMTP settings for outgoing mail
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
}

// Service sends transactional mail. When no SMTP host is configured the
// service runs in dev mode and logs messages instead of sending them.
type Service struct {
	config Config
}

// NewService creates a new email Service
func NewService(config Config) *Service {
	return &Service{config: config}
}

func (s *Service) devMode() bool {
	return s.config.Host == ""
}

// SendInvitation mails an invitation link to a prospective member
func (s *Service) SendInvitation(to, inviterName, inviteURL string) error {
	subject := "You've been invited to join GreekLink"
	body := fmt.Sprintf(
		"Hello,\r\n\r\n%s has invited you to join their chapter on GreekLink.\r\n\r\n"+
			"Accept the invitation here: %s\r\n\r\n"+
			"This link expires, so don't wait too long.\r\n",
		inviterName, inviteURL,
	)
	return s.send(to, subject, body)
}

// SendWelcome mails a greeting to a newly registered member
func (s *Service) SendWelcome(to, firstName string) error {
	subject := "Welcome to GreekLink"
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\nYour account is ready. Log in to complete your profile "+
			"and start connecting with alumni from your chapter.\r\n",
		firstName,
	)
	return s.send(to, subject, body)
}

func (s *Service) send(to, subject, body string) error {
	if s.devMode() {
		logger.Info().
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP not configured, logging email instead of sending")
		return nil
	}

	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
