package identity

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind discriminates the identity union
type Kind int

const (
	KindAnonymous Kind = iota
	KindGuest
	KindCustomer
)

// MaxGuestIDLength caps the opaque guest identifier supplied by clients
const MaxGuestIDLength = 64

// Identity is the resolved actor a favorite belongs to: an authenticated
// customer, an anonymous browsing session identified by an opaque guest id,
// or nobody at all. Exactly one variant is ever set; construct values
// through Customer, Guest or Anonymous.
type Identity struct {
	kind       Kind
	customerID uint
	guestID    string
}

// Customer returns the identity of an authenticated customer.
// A zero id resolves to Anonymous.
func Customer(id uint) Identity {
	if id == 0 {
		return Anonymous()
	}
	return Identity{kind: KindCustomer, customerID: id}
}

// Guest returns the identity of an anonymous browsing session.
// A malformed guest id resolves to Anonymous rather than erroring.
func Guest(id string) Identity {
	id = strings.TrimSpace(id)
	if !validGuestID(id) {
		return Anonymous()
	}
	return Identity{kind: KindGuest, guestID: id}
}

// Anonymous returns the identity of a request with no session and no
// guest id. Callers must treat it as "cannot have favorites".
func Anonymous() Identity {
	return Identity{kind: KindAnonymous}
}

// Kind returns the union discriminator
func (i Identity) Kind() Kind {
	return i.kind
}

// CustomerID returns the customer id and whether this is a customer identity
func (i Identity) CustomerID() (uint, bool) {
	return i.customerID, i.kind == KindCustomer
}

// GuestID returns the guest id and whether this is a guest identity
func (i Identity) GuestID() (string, bool) {
	return i.guestID, i.kind == KindGuest
}

// IsAnonymous reports whether the identity cannot own favorites
func (i Identity) IsAnonymous() bool {
	return i.kind == KindAnonymous
}

func (i Identity) String() string {
	switch i.kind {
	case KindCustomer:
		return fmt.Sprintf("customer:%d", i.customerID)
	case KindGuest:
		return "guest:" + i.guestID
	default:
		return "anonymous"
	}
}

// validGuestID accepts any printable opaque token up to MaxGuestIDLength.
// The origin of the id (cookie, local storage) is the client's concern.
func validGuestID(id string) bool {
	if id == "" || len(id) > MaxGuestIDLength {
		return false
	}
	for _, r := range id {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
