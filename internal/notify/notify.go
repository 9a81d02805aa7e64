package notify

import (
	"context"
	"log"
)

// CodeSender delivers a password-reset code to a user's contact number.
// Production wires a real channel (WhatsApp, SMS); the API never exposes
// the code in a response body either way.
type CodeSender interface {
	SendResetCode(ctx context.Context, whatsappNumber, code string) error
}

type logSender struct{}

// NewLogSender returns a development sender that writes the code to the
// process log instead of delivering it.
func NewLogSender() CodeSender {
	return logSender{}
}

func (logSender) SendResetCode(_ context.Context, whatsappNumber, code string) error {
	log.Printf("password reset code for %s: %s", whatsappNumber, code)
	return nil
}
