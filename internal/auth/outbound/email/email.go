// Package email delivers one time passwords through the mail client.
package email

import (
	"context"
	"html"

	"go.opentelemetry.io/otel/codes"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
)

// Settings controls the sender, subject and HTML around the code.
type Settings struct {
	SenderEmail string
	Subject     string
	HTMLPreOtp  string
	HTMLPostOtp string
}

type Email struct {
	client   mail.Mail
	settings Settings
	ins      instrument.Instrumentation
}

func New(client mail.Mail, settings Settings, ins instrument.Instrumentation) *Email {
	return &Email{client: client, settings: settings, ins: ins}
}

// SendOtp emails code to address. The body is HTMLPreOtp, the escaped code and
// HTMLPostOtp, with a plain text alternative.
func (e *Email) SendOtp(ctx context.Context, address, code string) error {
	ctx, span := e.ins.Tracer("auth.outbound.email").Start(ctx, "SendOtp")
	defer span.End()

	err := e.client.Send(ctx, mail.Message{
		From:     e.settings.SenderEmail,
		To:       []string{address},
		Subject:  e.settings.Subject,
		HTMLBody: e.settings.HTMLPreOtp + html.EscapeString(code) + e.settings.HTMLPostOtp,
		TextBody: "Your one time password is " + code,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
