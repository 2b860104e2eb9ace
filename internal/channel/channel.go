// Package channel is the outbound text-messaging provider boundary. A send
// must never be assumed idempotent: duplicate calls cause duplicate
// real-world messages, which is exactly what the dedupe markers upstream
// exist to prevent.
package channel

import "context"

// Channel abstracts one outbound messaging provider.
type Channel interface {
	// Configured reports whether the full credential set is present. Callers
	// must check this before Send; an unconfigured channel fails closed.
	Configured() bool

	// AddressFor wraps normalized E.164 digits into the provider's required
	// address form (leading "+" plus any provider scheme prefix).
	AddressFor(digits string) string

	// Send submits one message and returns the provider's message id.
	Send(ctx context.Context, address, body string) (string, error)
}
