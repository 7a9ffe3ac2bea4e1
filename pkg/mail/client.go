package mail

import (
	"fmt"
	"strconv"

	gomail "gopkg.in/gomail.v2"

	"github.com/lucasmedrano/tourmarket-backend/pkg/config"
)

// Status reports the outcome of a mail server check.
type Status string

const (
	StatusUp   Status = "UP"
	StatusDown Status = "DOWN"
)

// Health is the result of checking the configured SMTP server.
type Health struct {
	Status  Status            `json:"status"`
	Details map[string]string `json:"details"`
}

type dialer interface {
	Dial() (gomail.SendCloser, error)
}

// Client checks the configured SMTP server and sends transactional mail.
type Client struct {
	cfg    config.SMTPConfig
	dialer dialer
}

// New builds a Client from SMTP config.
func New(cfg config.SMTPConfig) *Client {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &Client{cfg: cfg, dialer: d}
}

// Health opens and closes a connection to the SMTP server. It reports
// DOWN with the failure reason instead of returning an error, and it
// never panics even if the underlying dialer does.
func (c *Client) Health() (health Health) {
	defer func() {
		if r := recover(); r != nil {
			health = Health{
				Status: StatusDown,
				Details: map[string]string{
					"error":     fmt.Sprintf("%v", r),
					"exception": "panic",
				},
			}
		}
	}()

	closer, err := c.dialer.Dial()
	if err != nil {
		return Health{
			Status: StatusDown,
			Details: map[string]string{
				"error":     err.Error(),
				"exception": fmt.Sprintf("%T", err),
			},
		}
	}
	_ = closer.Close()

	username := c.cfg.Username
	if username == "" {
		username = "not set"
	}
	return Health{
		Status: StatusUp,
		Details: map[string]string{
			"host":     c.cfg.Host,
			"port":     strconv.Itoa(c.cfg.Port),
			"username": username,
			"protocol": c.cfg.Protocol,
			"auth":     strconv.FormatBool(c.cfg.Auth),
			"starttls": strconv.FormatBool(c.cfg.StartTLS),
		},
	}
}

// Send delivers a plain-text message through the configured server.
func (c *Client) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", c.cfg.Username)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	closer, err := c.dialer.Dial()
	if err != nil {
		return fmt.Errorf("dialing smtp server: %w", err)
	}
	defer closer.Close()

	if err := gomail.Send(closer, msg); err != nil {
		return fmt.Errorf("sending mail: %w", err)
	}
	return nil
}
