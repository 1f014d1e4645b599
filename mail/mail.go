// Package mail sends signed contracts by email.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"gopkg.in/gomail.v2"
)

// AttachmentName is the file name recipients see for the signed PDF.
const AttachmentName = "signed-contract.pdf"

const roleLandlord = "landlord"

// ErrInvalidAddress is returned for recipient addresses that do not parse.
var ErrInvalidAddress = errors.New("mail: invalid address")

// Message is a signed-contract email.
type Message struct {
	To         string
	Subject    string
	Body       string
	Attachment string // path of the PDF to attach
}

// SignedContract builds the message for role. The landlord receives the
// copy signed by the tenant; everyone else receives their own copy.
func SignedContract(to, role, pdfPath string) (Message, error) {
	if _, err := mail.ParseAddress(to); err != nil {
		return Message{}, fmt.Errorf("%w: %q", ErrInvalidAddress, to)
	}
	m := Message{
		To:         to,
		Subject:    "עותק החוזה החתום שלך",
		Body:       "שלום, מצורף עותק החוזה החתום שלך.",
		Attachment: pdfPath,
	}
	if role == roleLandlord {
		m.Subject = "חוזה חתום מהשוכר"
		m.Body = "שלום, מצורף חוזה השכירות החתום מהשוכר."
	}
	return m, nil
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// SMTP sends through an SMTP relay.
type SMTP struct {
	From   string
	dialer *gomail.Dialer
}

// NewSMTP returns a sender for host:port authenticating as user. The user
// is also the From address.
func NewSMTP(host string, port int, user, pass string) *SMTP {
	return &SMTP{From: user, dialer: gomail.NewDialer(host, port, user, pass)}
}

// Send delivers m. gomail has no context support, so a cancelled ctx
// abandons the wait but not the transfer already in flight.
func (s *SMTP) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/plain", m.Body)
	if m.Attachment != "" {
		msg.Attach(m.Attachment, gomail.Rename(AttachmentName))
	}

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(msg) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mail: sending to %s: %w", m.To, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
