package identity

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequestCustomerWinsOverGuestHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/favorites", nil)
	req.Header.Set(GuestIDHeader, "g-123")
	req = req.WithContext(WithCustomerID(req.Context(), 9))

	id := FromRequest(req)

	assert.Equal(t, Customer(9), id)
}

func TestFromRequestGuestHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/favorites", nil)
	req.Header.Set(GuestIDHeader, "g-123")

	assert.Equal(t, Guest("g-123"), FromRequest(req))
}

func TestFromRequestNoSignalsIsAnonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/favorites", nil)

	assert.True(t, FromRequest(req).IsAnonymous())
}

func TestFromRequestMalformedGuestHeaderIsAnonymous(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/favorites", nil)
	req.Header.Set(GuestIDHeader, "bad guest id")

	assert.True(t, FromRequest(req).IsAnonymous())
}

func TestFromRequestNilRequest(t *testing.T) {
	assert.True(t, FromRequest(nil).IsAnonymous())
}

func TestFromContext(t *testing.T) {
	ctx := WithCustomerID(context.Background(), 7)

	assert.Equal(t, Customer(7), FromContext(ctx))
	assert.True(t, FromContext(context.Background()).IsAnonymous())
}
