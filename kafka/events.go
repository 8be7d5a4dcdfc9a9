package kafka

import "time"

// CatalogEvent represents a change to a catalog product. The gateway
// consumes these to invalidate cached product responses.
type CatalogEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeProductCreated = "product.created"
	EventTypeProductUpdated = "product.updated"
	EventTypeProductDeleted = "product.deleted"
)

// Kafka topics
const (
	TopicCatalogEvents = "catalog-events"
)
