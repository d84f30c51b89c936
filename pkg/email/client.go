package email

import (
	"context"

	"gopkg.in/mail.v2"
)

type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a reminder to the email address registered as the device
// address. The context is honored between dial and send only as far as the
// underlying SMTP dialer allows.
func (c *Client) Send(ctx context.Context, address, title, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := mail.NewMessage()

	message.SetHeader("From", c.from)
	message.SetHeader("To", address)
	message.SetHeader("Subject", title)

	message.SetBody("text/plain", body)

	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)

	return dialer.DialAndSend(message)
}
