package mailer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wneessen/go-mail"

	"github.com/acmecorp/ops_alerts/alerts"
	"github.com/acmecorp/ops_alerts/config"
)

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// SanitizeSubject collapses line breaks to spaces and trims surrounding
// whitespace. Header injection guard for subjects built from configuration.
func SanitizeSubject(subject string) string {
	return strings.TrimSpace(lineBreaks.ReplaceAllString(subject, " "))
}

// Client sends alert notifications over SMTP with STARTTLS. The sender
// address is always the authenticated username; there is deliberately no way
// to configure a different From.
type Client struct {
	server string
	port   int
	creds  config.SMTPCredentials
	to     []string
	cc     []string
	debug  bool
	logger *logrus.Logger
}

func NewClient(cfg config.AlertConfig, creds config.SMTPCredentials, logger *logrus.Logger) *Client {
	return &Client{
		server: cfg.SMTPServer,
		port:   cfg.SMTPPort,
		creds:  creds,
		to:     cfg.EmailTo,
		cc:     cfg.EmailCc,
		debug:  cfg.SMTPDebug,
		logger: logger,
	}
}

// Send performs the single send-and-close transaction of a run. Failures
// surface to the caller; the job never retries a send.
func (c *Client) Send(ctx context.Context, n alerts.Notification) error {
	msg, err := c.compose(n)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(c.port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(c.creds.Username),
		mail.WithPassword(c.creds.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	}
	if c.debug {
		opts = append(opts, mail.WithDebugLog())
	}
	client, err := mail.NewClient(c.server, opts...)
	if err != nil {
		return fmt.Errorf("smtp client for %s:%d: %w", c.server, c.port, err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send via %s:%d to %v: %w", c.server, c.port, c.to, err)
	}

	c.logger.WithFields(logrus.Fields{
		"module":  "mailer",
		"from":    c.creds.Username,
		"to":      c.to,
		"cc":      c.cc,
		"subject": SanitizeSubject(n.Subject),
	}).Info("notification sent")
	return nil
}

func (c *Client) compose(n alerts.Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(c.creds.Username); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", c.creds.Username, err)
	}
	if err := msg.To(c.to...); err != nil {
		return nil, fmt.Errorf("invalid recipients %v: %w", c.to, err)
	}
	if len(c.cc) > 0 {
		if err := msg.Cc(c.cc...); err != nil {
			return nil, fmt.Errorf("invalid cc recipients %v: %w", c.cc, err)
		}
	}
	msg.Subject(SanitizeSubject(n.Subject))
	msg.SetBodyString(mail.TypeTextPlain, n.Body)
	if n.AttachmentPath != "" {
		msg.AttachFile(n.AttachmentPath, mail.WithFileName(n.AttachmentName))
	}
	return msg, nil
}
