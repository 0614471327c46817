package notifications

import (
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/you/hotelauthsvc/domain"
	"github.com/you/hotelauthsvc/internal/config"
)

// SMTPMailer implements domain.Mailer. When the SMTP configuration is
// incomplete the mailer reports itself disabled and refuses to send.
type SMTPMailer struct {
	cfg config.SMTPConfig
	log *logrus.Entry
}

// NewSMTPMailer creates a new SMTP-backed mailer
func NewSMTPMailer(cfg config.SMTPConfig, log *logrus.Logger) domain.Mailer {
	return &SMTPMailer{
		cfg: cfg,
		log: log.WithField("component", "mailer"),
	}
}

// Enabled implements domain.Mailer
func (m *SMTPMailer) Enabled() bool {
	return m.cfg.Complete()
}

// SendCredentials implements domain.Mailer. The plaintext password crosses
// this boundary exactly once and is never logged.
func (m *SMTPMailer) SendCredentials(to, orgName, loginID, password string) error {
	if !m.Enabled() {
		return domain.ErrMailerDisabled
	}

	subject := "Your corporate billing portal credentials"
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\n"+
			"A corporate login has been provisioned for your organization.\r\n\r\n"+
			"Login ID: %s\r\nPassword: %s\r\n\r\n"+
			"Please sign in and change this password at your earliest convenience.\r\n",
		orgName, loginID, password)

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.cfg.From, to, subject, body))
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	}

	var err error
	if m.cfg.Secure {
		err = m.sendTLS(addr, auth, to, msg)
	} else {
		err = smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg)
	}
	if err != nil {
		m.log.WithField("to", to).WithError(err).Error("failed to send credentials email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	m.log.WithFields(logrus.Fields{"to": to, "login_id": loginID}).Info("credentials email sent")
	return nil
}

// sendTLS delivers over an implicit-TLS connection (typical port 465 setup).
func (m *SMTPMailer) sendTLS(addr string, auth smtp.Auth, to string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.cfg.Host})
	if err != nil {
		return err
	}

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
