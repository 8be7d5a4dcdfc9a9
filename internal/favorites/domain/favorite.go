package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/avelora/storefront/internal/identity"
)

// Favorite represents one liked product for one identity. Exactly one of
// CustomerID/GuestID is set per row; the check constraint and the two
// composite unique indexes enforce the ownership invariants in the store
// itself, not just in the application layer.
type Favorite struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	ProductID  uint      `json:"product_id" gorm:"not null;uniqueIndex:uq_favorites_customer_product;uniqueIndex:uq_favorites_guest_product"`
	CustomerID *uint     `json:"customer_id,omitempty" gorm:"uniqueIndex:uq_favorites_customer_product"`
	GuestID    *string   `json:"guest_id,omitempty" gorm:"size:64;uniqueIndex:uq_favorites_guest_product;check:chk_favorites_one_owner,(customer_id IS NULL) <> (guest_id IS NULL)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// BeforeCreate assigns the opaque row id
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Errors surfaced by the favorites core. ErrDuplicate is a store-internal
// signal: the toggle service absorbs it and never lets it reach callers.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidIdentity = errors.New("identity cannot own favorites")
	ErrDuplicate       = errors.New("favorite already exists")
)

// ReassignResult reports how a merge went. Counts are for observability
// only; callers must not branch on them.
type ReassignResult struct {
	Migrated  int64 `json:"migrated"`
	Discarded int64 `json:"discarded"`
}

// FavoriteRepository defines the contract for favorite data access
type FavoriteRepository interface {
	// Insert creates the (identity, product) row, returning ErrDuplicate
	// if the pair already exists.
	Insert(ctx context.Context, id identity.Identity, productID uint) (string, error)

	// Delete removes the pair if present and reports whether a row was
	// removed. Deleting an absent pair is not an error.
	Delete(ctx context.Context, id identity.Identity, productID uint) (bool, error)

	Exists(ctx context.Context, id identity.Identity, productID uint) (bool, error)

	// ListByIdentity returns favorites ordered by created_at descending,
	// restartable via offset.
	ListByIdentity(ctx context.Context, id identity.Identity, limit, offset int) ([]Favorite, error)

	CountByIdentity(ctx context.Context, id identity.Identity) (int64, error)

	// Reassign atomically rewrites ownership of every row under from to
	// to, deleting source rows whose product already exists under to
	// (dedup-by-skip). Runs in a single transaction so a crash mid-merge
	// never duplicates or loses a product.
	Reassign(ctx context.Context, from, to identity.Identity) (ReassignResult, error)
}

// ProductChecker is the catalog collaborator consulted at creation time.
// Rows are not re-validated afterward; a favorite may outlive its product.
type ProductChecker interface {
	Exists(ctx context.Context, productID uint) (bool, error)
}
