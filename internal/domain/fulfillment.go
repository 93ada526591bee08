package domain

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FulfillmentStatus represents the lifecycle state of an order fulfillment
type FulfillmentStatus string

const (
	FulfillmentStatusPending    FulfillmentStatus = "pending"
	FulfillmentStatusProcessing FulfillmentStatus = "processing"
	FulfillmentStatusShipped    FulfillmentStatus = "shipped"
	FulfillmentStatusDelivered  FulfillmentStatus = "delivered"
	FulfillmentStatusFailed     FulfillmentStatus = "failed"
	FulfillmentStatusCancelled  FulfillmentStatus = "cancelled"
)

// validTransitions defines the allowed fulfillment status transitions
var validTransitions = map[FulfillmentStatus][]FulfillmentStatus{
	FulfillmentStatusPending:    {FulfillmentStatusProcessing, FulfillmentStatusCancelled, FulfillmentStatusFailed},
	FulfillmentStatusProcessing: {FulfillmentStatusShipped, FulfillmentStatusCancelled, FulfillmentStatusFailed},
	FulfillmentStatusShipped:    {FulfillmentStatusDelivered, FulfillmentStatusFailed},
	FulfillmentStatusDelivered:  {},
	FulfillmentStatusFailed:     {},
	FulfillmentStatusCancelled:  {},
}

// CanTransitionTo reports whether a transition to the given status is allowed
func (s FulfillmentStatus) CanTransitionTo(target FulfillmentStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsValidFulfillmentStatus reports whether the string names a known status
func IsValidFulfillmentStatus(s string) bool {
	switch FulfillmentStatus(s) {
	case FulfillmentStatusPending, FulfillmentStatusProcessing, FulfillmentStatusShipped,
		FulfillmentStatusDelivered, FulfillmentStatusFailed, FulfillmentStatusCancelled:
		return true
	}
	return false
}

// ShipToAddress holds the full delivery address on a fulfillment
type ShipToAddress struct {
	Line1      string   `bson:"line1"`
	Line2      string   `bson:"line2,omitempty"`
	City       string   `bson:"city"`
	State      string   `bson:"state,omitempty"`
	PostalCode string   `bson:"postalCode"`
	Country    string   `bson:"country"`
	Latitude   *float64 `bson:"latitude,omitempty"`
	Longitude  *float64 `bson:"longitude,omitempty"`
}

// OrderFulfillment is the aggregate root for the distribution bounded
// context: the record that an order is assigned to a warehouse.
type OrderFulfillment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	FulfillmentID    string             `bson:"fulfillmentId"`
	OrderID          string             `bson:"orderId"`
	OrderNumber      string             `bson:"orderNumber,omitempty"`
	WarehouseID      string             `bson:"warehouseId"`
	WarehouseCode    string             `bson:"warehouseCode,omitempty"`
	WarehouseName    string             `bson:"warehouseName,omitempty"`
	ShippingMethodID string             `bson:"shippingMethodId,omitempty"`
	Status           FulfillmentStatus  `bson:"status"`
	ShipTo           ShipToAddress      `bson:"shipTo"`

	// SelectionStage records which resolver stage picked the warehouse
	SelectionStage string `bson:"selectionStage,omitempty"`

	EstimatedDeliveryAt *time.Time `bson:"estimatedDeliveryAt,omitempty"`
	CustomerNotes       string     `bson:"customerNotes,omitempty"`
	CreatedBy           string     `bson:"createdBy,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`

	DomainEvents []DomainEvent `bson:"-"`
}

// NewOrderFulfillment creates a new pending fulfillment for an order
func NewOrderFulfillment(orderID, warehouseID string, shipTo ShipToAddress) (*OrderFulfillment, error) {
	if orderID == "" {
		return nil, ErrOrderIDRequired
	}
	if warehouseID == "" {
		return nil, ErrWarehouseIDRequired
	}

	now := time.Now()

	fulfillment := &OrderFulfillment{
		FulfillmentID: uuid.New().String(),
		OrderID:       orderID,
		WarehouseID:   warehouseID,
		Status:        FulfillmentStatusPending,
		ShipTo:        shipTo,
		CreatedAt:     now,
		UpdatedAt:     now,
		DomainEvents:  make([]DomainEvent, 0),
	}

	fulfillment.AddDomainEvent(&FulfillmentCreatedEvent{
		FulfillmentID: fulfillment.FulfillmentID,
		OrderID:       orderID,
		WarehouseID:   warehouseID,
		CreatedAt:     now,
	})

	return fulfillment, nil
}

// ChangeStatus transitions the fulfillment to a new status, enforcing the
// transition matrix.
func (f *OrderFulfillment) ChangeStatus(newStatus FulfillmentStatus) error {
	if !f.Status.CanTransitionTo(newStatus) {
		return ErrInvalidStatusTransition
	}

	previous := f.Status
	now := time.Now()

	f.Status = newStatus
	f.UpdatedAt = now

	f.AddDomainEvent(&FulfillmentStatusChangedEvent{
		FulfillmentID:  f.FulfillmentID,
		OrderID:        f.OrderID,
		PreviousStatus: string(previous),
		NewStatus:      string(newStatus),
		ChangedAt:      now,
	})

	return nil
}

// AddDomainEvent buffers a domain event for publication after persistence
func (f *OrderFulfillment) AddDomainEvent(event DomainEvent) {
	f.DomainEvents = append(f.DomainEvents, event)
}

// ClearDomainEvents clears the buffered events after they are handed off
func (f *OrderFulfillment) ClearDomainEvents() {
	f.DomainEvents = make([]DomainEvent, 0)
}
