package events

import (
	"context"

	"github.com/avelora/storefront/internal/catalog/domain"
	"github.com/avelora/storefront/kafka"
)

// KafkaEventPublisher implements the catalog EventPublisher on top of
// the shared Kafka publisher
type KafkaEventPublisher struct {
	publisher *kafka.Publisher
}

// NewKafkaEventPublisher creates a new Kafka-backed event publisher
func NewKafkaEventPublisher(publisher *kafka.Publisher) *KafkaEventPublisher {
	return &KafkaEventPublisher{publisher: publisher}
}

func (p *KafkaEventPublisher) ProductCreated(ctx context.Context, product *domain.Product) error {
	return p.publisher.PublishCatalogEvent(ctx, kafka.EventTypeProductCreated, kafka.CatalogEvent{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	})
}

func (p *KafkaEventPublisher) ProductUpdated(ctx context.Context, product *domain.Product) error {
	return p.publisher.PublishCatalogEvent(ctx, kafka.EventTypeProductUpdated, kafka.CatalogEvent{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	})
}

func (p *KafkaEventPublisher) ProductDeleted(ctx context.Context, productID uint) error {
	return p.publisher.PublishCatalogEvent(ctx, kafka.EventTypeProductDeleted, kafka.CatalogEvent{
		ProductID: productID,
	})
}

// NopEventPublisher drops all events. Used when the broker is not
// configured, e.g. local development without Kafka.
type NopEventPublisher struct{}

func (NopEventPublisher) ProductCreated(context.Context, *domain.Product) error { return nil }
func (NopEventPublisher) ProductUpdated(context.Context, *domain.Product) error { return nil }
func (NopEventPublisher) ProductDeleted(context.Context, uint) error            { return nil }
