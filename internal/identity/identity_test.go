package identity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomer(t *testing.T) {
	id := Customer(42)

	assert.Equal(t, KindCustomer, id.Kind())
	customerID, ok := id.CustomerID()
	assert.True(t, ok)
	assert.Equal(t, uint(42), customerID)
	_, ok = id.GuestID()
	assert.False(t, ok)
	assert.False(t, id.IsAnonymous())
	assert.Equal(t, "customer:42", id.String())
}

func TestCustomerZeroIDIsAnonymous(t *testing.T) {
	id := Customer(0)

	assert.True(t, id.IsAnonymous())
	assert.Equal(t, KindAnonymous, id.Kind())
}

func TestGuest(t *testing.T) {
	id := Guest("g-123")

	assert.Equal(t, KindGuest, id.Kind())
	guestID, ok := id.GuestID()
	assert.True(t, ok)
	assert.Equal(t, "g-123", guestID)
	_, ok = id.CustomerID()
	assert.False(t, ok)
	assert.Equal(t, "guest:g-123", id.String())
}

func TestGuestTrimsSurroundingWhitespace(t *testing.T) {
	id := Guest("  g-123  ")

	guestID, ok := id.GuestID()
	assert.True(t, ok)
	assert.Equal(t, "g-123", guestID)
}

func TestGuestMalformedIDsResolveToAnonymous(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"whitespace":     "   ",
		"too long":       strings.Repeat("a", MaxGuestIDLength+1),
		"inner space":    "g 123",
		"control char":   "g-\x00123",
		"inner tab":      "g\t123",
		"inner newline":  "g\n123",
		"non printable":  "g-\x7f",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, Guest(raw).IsAnonymous())
		})
	}
}

func TestGuestAcceptsMaxLengthID(t *testing.T) {
	id := Guest(strings.Repeat("a", MaxGuestIDLength))

	assert.Equal(t, KindGuest, id.Kind())
}

func TestAnonymous(t *testing.T) {
	id := Anonymous()

	assert.True(t, id.IsAnonymous())
	_, ok := id.CustomerID()
	assert.False(t, ok)
	_, ok = id.GuestID()
	assert.False(t, ok)
	assert.Equal(t, "anonymous", id.String())
}

func TestIdentityComparability(t *testing.T) {
	assert.Equal(t, Customer(1), Customer(1))
	assert.NotEqual(t, Customer(1), Customer(2))
	assert.Equal(t, Guest("g-1"), Guest("g-1"))
	assert.NotEqual(t, Guest("g-1"), Customer(1))
	assert.Equal(t, Anonymous(), Guest(""))
	assert.Equal(t, Anonymous(), Customer(0))
}
