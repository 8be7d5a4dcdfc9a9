package identity

import (
	"context"
	"net/http"
)

type contextKey string

const customerIDKey contextKey = "identity_customer_id"

// GuestIDHeader carries the client-generated guest identifier
const GuestIDHeader = "X-Guest-ID"

// WithCustomerID stores an authenticated customer id in the context.
// The delivery layer calls this after validating the session token.
func WithCustomerID(ctx context.Context, customerID uint) context.Context {
	return context.WithValue(ctx, customerIDKey, customerID)
}

// FromRequest resolves the identity for a request. An authenticated
// customer always wins over a client-supplied guest id; malformed or
// missing input resolves to Anonymous. No side effects.
func FromRequest(r *http.Request) Identity {
	if r == nil {
		return Anonymous()
	}
	if id, ok := r.Context().Value(customerIDKey).(uint); ok && id != 0 {
		return Customer(id)
	}
	return Guest(r.Header.Get(GuestIDHeader))
}

// FromContext resolves an identity from a bare context, for callers
// outside the HTTP path
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(customerIDKey).(uint); ok && id != 0 {
		return Customer(id)
	}
	return Anonymous()
}
