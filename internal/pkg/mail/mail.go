package mail

import (
	"context"
	"io"
)

// Message represents an email payload.
type Message struct {
	// From overrides the configured default sender when set.
	From    string
	To      []string
	Subject string
	// TextBody is sent alone when HTMLBody is empty, and as the plain
	// alternative otherwise.
	TextBody string
	HTMLBody string
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}
