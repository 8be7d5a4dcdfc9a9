package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

// GormFavoriteRepository implements FavoriteRepository using GORM.
// It relies on TranslateError being enabled on the connection so unique
// constraint violations surface as gorm.ErrDuplicatedKey.
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// AutoMigrate runs database migrations
func (r *GormFavoriteRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Favorite{})
}

// ownedBy scopes a query to the rows belonging to one identity.
// Anonymous matches nothing.
func ownedBy(id identity.Identity) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if customerID, ok := id.CustomerID(); ok {
			return db.Where("customer_id = ? AND guest_id IS NULL", customerID)
		}
		if guestID, ok := id.GuestID(); ok {
			return db.Where("guest_id = ? AND customer_id IS NULL", guestID)
		}
		return db.Where("1 = 0")
	}
}

// Insert creates the (identity, product) row
func (r *GormFavoriteRepository) Insert(ctx context.Context, id identity.Identity, productID uint) (string, error) {
	fav := domain.Favorite{ProductID: productID}
	if customerID, ok := id.CustomerID(); ok {
		fav.CustomerID = &customerID
	} else if guestID, ok := id.GuestID(); ok {
		fav.GuestID = &guestID
	} else {
		return "", domain.ErrInvalidIdentity
	}

	if err := r.db.WithContext(ctx).Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("failed to insert favorite: %w", err)
	}
	return fav.ID, nil
}

// Delete removes the pair if present; absent pairs are not an error
func (r *GormFavoriteRepository) Delete(ctx context.Context, id identity.Identity, productID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Scopes(ownedBy(id)).
		Where("product_id = ?", productID).
		Delete(&domain.Favorite{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Exists reports whether the (identity, product) pair is favorited
func (r *GormFavoriteRepository) Exists(ctx context.Context, id identity.Identity, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Scopes(ownedBy(id)).
		Where("product_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// ListByIdentity returns favorites newest first
func (r *GormFavoriteRepository) ListByIdentity(ctx context.Context, id identity.Identity, limit, offset int) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	query := r.db.WithContext(ctx).
		Scopes(ownedBy(id)).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// CountByIdentity returns the number of favorites for an identity
func (r *GormFavoriteRepository) CountByIdentity(ctx context.Context, id identity.Identity) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Scopes(ownedBy(id)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// Reassign rewrites ownership of all rows under from to to, deleting
// source rows whose product is already favorited under to. Both steps
// run inside one transaction: a crash mid-merge never leaves a product
// duplicated or lost, and re-running after a failure only re-applies
// the same rewrite-or-skip logic to whatever rows remain.
func (r *GormFavoriteRepository) Reassign(ctx context.Context, from, to identity.Identity) (domain.ReassignResult, error) {
	var result domain.ReassignResult

	if from.IsAnonymous() || to.IsAnonymous() {
		return result, domain.ErrInvalidIdentity
	}
	if from == to {
		return result, nil
	}

	newCustomerID, _ := to.CustomerID()
	var customerID *uint
	if newCustomerID != 0 {
		customerID = &newCustomerID
	}
	var guestID *string
	if gid, ok := to.GuestID(); ok {
		guestID = &gid
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Dedup-by-skip: drop source rows whose product already has a
		// row under the destination identity.
		duplicated := tx.Session(&gorm.Session{NewDB: true}).
			Model(&domain.Favorite{}).
			Select("product_id").
			Scopes(ownedBy(to))

		deleted := tx.Scopes(ownedBy(from)).
			Where("product_id IN (?)", duplicated).
			Delete(&domain.Favorite{})
		if deleted.Error != nil {
			return deleted.Error
		}
		result.Discarded = deleted.RowsAffected

		updated := tx.Model(&domain.Favorite{}).
			Scopes(ownedBy(from)).
			Updates(map[string]interface{}{
				"customer_id": customerID,
				"guest_id":    guestID,
				"updated_at":  time.Now(),
			})
		if updated.Error != nil {
			return updated.Error
		}
		result.Migrated = updated.RowsAffected
		return nil
	})
	if err != nil {
		return domain.ReassignResult{}, fmt.Errorf("failed to reassign favorites: %w", err)
	}
	return result, nil
}
