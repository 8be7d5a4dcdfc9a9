package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/avelora/storefront/internal/favorites/domain"
	"github.com/avelora/storefront/internal/identity"
)

var tracer = otel.Tracer("favorites-repository")

// TracingFavoriteRepository wraps a FavoriteRepository with tracing
type TracingFavoriteRepository struct {
	inner domain.FavoriteRepository
}

// NewGormFavoriteRepositoryWithTracing creates a traced GORM repository
func NewGormFavoriteRepositoryWithTracing(db *gorm.DB) *TracingFavoriteRepository {
	return &TracingFavoriteRepository{inner: NewGormFavoriteRepository(db)}
}

// NewTracingFavoriteRepository wraps an existing repository
func NewTracingFavoriteRepository(inner domain.FavoriteRepository) *TracingFavoriteRepository {
	return &TracingFavoriteRepository{inner: inner}
}

func identityAttrs(id identity.Identity) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("favorite.identity", id.String()),
	}
}

func (r *TracingFavoriteRepository) Insert(ctx context.Context, id identity.Identity, productID uint) (string, error) {
	ctx, span := tracer.Start(ctx, "repository.Insert",
		trace.WithAttributes(append(identityAttrs(id),
			attribute.Int("product.id", int(productID)))...),
	)
	defer span.End()

	favoriteID, err := r.inner.Insert(ctx, id, productID)
	if err != nil {
		// Duplicates are an expected signal, not a failure
		if err != domain.ErrDuplicate {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return "", err
	}
	span.SetAttributes(attribute.String("favorite.id", favoriteID))
	return favoriteID, nil
}

func (r *TracingFavoriteRepository) Delete(ctx context.Context, id identity.Identity, productID uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(append(identityAttrs(id),
			attribute.Int("product.id", int(productID)))...),
	)
	defer span.End()

	removed, err := r.inner.Delete(ctx, id, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	span.SetAttributes(attribute.Bool("favorite.removed", removed))
	return removed, nil
}

func (r *TracingFavoriteRepository) Exists(ctx context.Context, id identity.Identity, productID uint) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.Exists",
		trace.WithAttributes(append(identityAttrs(id),
			attribute.Int("product.id", int(productID)))...),
	)
	defer span.End()

	exists, err := r.inner.Exists(ctx, id, productID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	span.SetAttributes(attribute.Bool("favorite.exists", exists))
	return exists, nil
}

func (r *TracingFavoriteRepository) ListByIdentity(ctx context.Context, id identity.Identity, limit, offset int) ([]domain.Favorite, error) {
	ctx, span := tracer.Start(ctx, "repository.ListByIdentity",
		trace.WithAttributes(append(identityAttrs(id),
			attribute.Int("query.limit", limit),
			attribute.Int("query.offset", offset))...),
	)
	defer span.End()

	favorites, err := r.inner.ListByIdentity(ctx, id, limit, offset)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(favorites)))
	return favorites, nil
}

func (r *TracingFavoriteRepository) CountByIdentity(ctx context.Context, id identity.Identity) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.CountByIdentity",
		trace.WithAttributes(identityAttrs(id)...),
	)
	defer span.End()

	count, err := r.inner.CountByIdentity(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

func (r *TracingFavoriteRepository) Reassign(ctx context.Context, from, to identity.Identity) (domain.ReassignResult, error) {
	ctx, span := tracer.Start(ctx, "repository.Reassign",
		trace.WithAttributes(
			attribute.String("favorite.from", from.String()),
			attribute.String("favorite.to", to.String()),
		),
	)
	defer span.End()

	result, err := r.inner.Reassign(ctx, from, to)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	span.SetAttributes(
		attribute.Int64("reassign.migrated", result.Migrated),
		attribute.Int64("reassign.discarded", result.Discarded),
	)
	return result, nil
}
