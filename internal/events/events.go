// Package events publishes product change notifications for downstream
// consumers such as the storefront search index.
package events

import (
	"context"
	"time"
)

// Type names a kind of product change.
type Type string

const (
	ProductCreated Type = "product.created"
	ProductUpdated Type = "product.updated"
	ProductDeleted Type = "product.deleted"
)

// ProductEvent is the JSON payload written for every product change.
type ProductEvent struct {
	Type       Type      `json:"type"`
	ProductID  string    `json:"productId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewProductEvent creates an event stamped with the current UTC time.
func NewProductEvent(t Type, productID string) ProductEvent {
	return ProductEvent{
		Type:       t,
		ProductID:  productID,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers product events. Publish failures are logged by the
// implementation and never returned to the caller's write path.
type Publisher interface {
	Publish(ctx context.Context, event ProductEvent)
	Close() error
}

type nopPublisher struct{}

// NewNop returns a publisher that drops every event.
func NewNop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, ProductEvent) {}

func (nopPublisher) Close() error { return nil }
