package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
}

// FulfillmentCreatedEvent is published when an order is assigned a warehouse
type FulfillmentCreatedEvent struct {
	FulfillmentID string    `json:"fulfillmentId"`
	OrderID       string    `json:"orderId"`
	WarehouseID   string    `json:"warehouseId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (e *FulfillmentCreatedEvent) EventType() string     { return "commerce.distribution.fulfillment-created" }
func (e *FulfillmentCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// FulfillmentStatusChangedEvent is published on every status transition
type FulfillmentStatusChangedEvent struct {
	FulfillmentID  string    `json:"fulfillmentId"`
	OrderID        string    `json:"orderId"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	ChangedAt      time.Time `json:"changedAt"`
}

func (e *FulfillmentStatusChangedEvent) EventType() string {
	return "commerce.distribution.fulfillment-status-changed"
}
func (e *FulfillmentStatusChangedEvent) OccurredAt() time.Time { return e.ChangedAt }
