package domain

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Errors
var (
	ErrOrderIDRequired         = errors.New("order id is required")
	ErrWarehouseIDRequired     = errors.New("warehouse id is required")
	ErrRuleNameRequired        = errors.New("distribution rule name is required")
	ErrNoFulfillmentCenters    = errors.New("no active fulfillment centers available")
	ErrInvalidStatusTransition = errors.New("invalid fulfillment status transition")
	ErrShippingMethodInactive  = errors.New("shipping method is not active")
	ErrWarehouseNotAvailable   = errors.New("warehouse is not available for fulfillment")
)

// DefaultProcessingHours is assumed when a warehouse has no processing time configured
const DefaultProcessingHours = 24

// Warehouse represents a physical warehouse or fulfillment center.
// Warehouses are owned by an external admin surface; this service reads
// a snapshot per resolution call and never caches across calls.
type Warehouse struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	WarehouseID string             `bson:"warehouseId"`
	Code        string             `bson:"code"`
	Name        string             `bson:"name"`

	IsActive            bool `bson:"isActive"`
	IsFulfillmentCenter bool `bson:"isFulfillmentCenter"`
	IsReturnCenter      bool `bson:"isReturnCenter"`
	IsDefault           bool `bson:"isDefault"`

	Country    string   `bson:"country"`
	State      string   `bson:"state,omitempty"`
	PostalCode string   `bson:"postalCode,omitempty"`
	Latitude   *float64 `bson:"latitude,omitempty"`
	Longitude  *float64 `bson:"longitude,omitempty"`

	ProcessingTime int    `bson:"processingTime,omitempty"` // hours
	CutoffTime     string `bson:"cutoffTime,omitempty"`     // local "HH:MM", empty means always open
	Timezone       string `bson:"timezone,omitempty"`       // IANA name

	ShippingMethods []string `bson:"shippingMethods,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// ProcessingHours returns the configured processing time, defaulting when unset
func (w *Warehouse) ProcessingHours() int {
	if w.ProcessingTime <= 0 {
		return DefaultProcessingHours
	}
	return w.ProcessingTime
}

// HasCoordinates reports whether the warehouse has a known location
func (w *Warehouse) HasCoordinates() bool {
	return w.Latitude != nil && w.Longitude != nil
}

// SupportsShippingMethod reports whether the warehouse can fulfill the given
// shipping method. An empty method set means no restriction.
func (w *Warehouse) SupportsShippingMethod(shippingMethodID string) bool {
	if len(w.ShippingMethods) == 0 {
		return true
	}
	for _, m := range w.ShippingMethods {
		if m == shippingMethodID {
			return true
		}
	}
	return false
}

// Destination is the ship-to location being resolved against
type Destination struct {
	Country    string   `json:"country"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postalCode,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// HasCoordinates reports whether the destination carries a usable lat/lon pair
func (d Destination) HasCoordinates() bool {
	return d.Latitude != nil && d.Longitude != nil
}

// CountryEquals compares the destination country case-insensitively
func (d Destination) CountryEquals(country string) bool {
	return strings.EqualFold(d.Country, country)
}

// FulfillmentRequest is the input to warehouse resolution. It is a value
// object, never persisted.
type FulfillmentRequest struct {
	Destination          Destination `json:"destination"`
	ShippingMethodID     string      `json:"shippingMethodId,omitempty"`
	ProductIDs           []string    `json:"productIds,omitempty"` // reserved, not used by matching yet
	PreferredWarehouseID string      `json:"preferredWarehouseId,omitempty"`
}

// ShippingMethod is a read-only view of a shipping method record
type ShippingMethod struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	ShippingMethodID string             `bson:"shippingMethodId"`
	Code             string             `bson:"code"`
	Name             string             `bson:"name"`
	IsActive         bool               `bson:"isActive"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}
