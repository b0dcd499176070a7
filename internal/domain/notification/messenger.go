package notification

import "context"

// Messenger delivers push messages to device tokens. The Firebase
// client implements it; tests use a local fake.
type Messenger interface {
	Send(ctx context.Context, token string, msg *Message) error
	// SendMulticast delivers to many tokens and returns the tokens
	// that were rejected as no longer registered.
	SendMulticast(ctx context.Context, tokens []string, msg *Message) (invalid []string, err error)
}
