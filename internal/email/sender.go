package email

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	gomail "github.com/wneessen/go-mail"

	"ultron_backend/internal/credentials"
)

// Attachment is an opaque binary attachment. Content type and file name come
// from whatever produced the bytes (e.g. the document store).
type Attachment struct {
	FileName    string
	Content     []byte
	ContentType string
}

// Message is a single outgoing email.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment *Attachment
}

// Sender dispatches email over credentials resolved per call. Implemented by
// SMTPSender; faked in workflow tests.
type Sender interface {
	Send(ctx context.Context, creds credentials.SMTPCredentials, msg Message) (string, error)
}

// SMTPSender delivers mail over a direct SMTP connection via go-mail. Unlike
// a fixed-account sender, the connection is built per send from the resolved
// grant, since every tenant (and advisor) delivers through its own server.
type SMTPSender struct {
	timeout time.Duration
}

func NewSMTPSender(timeout time.Duration) *SMTPSender {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SMTPSender{timeout: timeout}
}

// Send dispatches the message and returns the generated message id.
func (s *SMTPSender) Send(ctx context.Context, creds credentials.SMTPCredentials, msg Message) (string, error) {
	m := gomail.NewMsg()
	if err := m.FromFormat(creds.FromName, creds.FromEmail); err != nil {
		return "", fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return "", fmt.Errorf("smtp to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	m.SetMessageID()

	if msg.Attachment != nil {
		m.AttachReader(msg.Attachment.FileName, bytes.NewReader(msg.Attachment.Content))
	}

	client, err := gomail.NewClient(creds.Host,
		gomail.WithPort(creds.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(creds.Username),
		gomail.WithPassword(creds.Password),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
		gomail.WithTimeout(s.timeout),
		gomail.WithDialContextFunc(func(dctx context.Context, _ string, addr string) (net.Conn, error) {
			return (&net.Dialer{}).DialContext(dctx, "tcp4", addr)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}

	return m.GetMessageID(), nil
}

// Compile-time check.
var _ Sender = (*SMTPSender)(nil)
