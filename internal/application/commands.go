package application

import (
	"time"

	"github.com/commerce-platform/distribution-service/internal/domain"
)

// CreateFulfillmentCommand creates a new order fulfillment
type CreateFulfillmentCommand struct {
	OrderID              string
	OrderNumber          string
	WarehouseID          string // explicit override, skips warehouse resolution
	ShippingMethodID     string
	PreferredWarehouseID string
	ShipTo               domain.ShipToAddress
	EstimatedDeliveryAt  *time.Time
	CustomerNotes        string
	CreatedBy            string
}

// ResolveWarehouseCommand selects a warehouse without creating a fulfillment
type ResolveWarehouseCommand struct {
	Request domain.FulfillmentRequest
}

// ChangeFulfillmentStatusCommand transitions a fulfillment to a new status
type ChangeFulfillmentStatusCommand struct {
	FulfillmentID string
	NewStatus     string
}

// GetFulfillmentQuery retrieves a fulfillment by ID
type GetFulfillmentQuery struct {
	FulfillmentID string
}

// GetFulfillmentsByOrderQuery retrieves fulfillments by order ID
type GetFulfillmentsByOrderQuery struct {
	OrderID string
}

// CreateDistributionRuleCommand creates a new distribution rule
type CreateDistributionRuleCommand struct {
	Name                string
	Priority            *int // auto-assigned after the current maximum when omitted
	WarehouseID         string
	ApplicableCountries []string
	ApplicableRegions   []string
	PostalCodePatterns  []string
	ShippingMethodID    string
	IsActive            *bool // defaults to true
	IsDefault           bool
}

// UpdateDistributionRuleCommand applies a partial update to a rule.
// Nil fields are left unchanged.
type UpdateDistributionRuleCommand struct {
	RuleID              string
	Name                *string
	Priority            *int
	WarehouseID         *string
	ApplicableCountries []string
	ApplicableRegions   []string
	PostalCodePatterns  []string
	ShippingMethodID    *string
	IsActive            *bool
	IsDefault           *bool
}

// DeleteDistributionRuleCommand deletes a rule by ID
type DeleteDistributionRuleCommand struct {
	RuleID string
}

// GetDistributionRuleQuery retrieves a rule by ID
type GetDistributionRuleQuery struct {
	RuleID string
}
