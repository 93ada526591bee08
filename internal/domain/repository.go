package domain

import "context"

// WarehouseRepository provides read access to warehouse records. All lookups
// return (nil, nil) for not-found; errors indicate genuine I/O failure.
type WarehouseRepository interface {
	// FindActiveWarehouses retrieves all active warehouses
	FindActiveWarehouses(ctx context.Context) ([]*Warehouse, error)

	// FindByID retrieves a warehouse by its ID
	FindByID(ctx context.Context, warehouseID string) (*Warehouse, error)
}

// DistributionRuleRepository persists distribution rules
type DistributionRuleRepository interface {
	// FindActiveRules retrieves active rules sorted ascending by priority
	FindActiveRules(ctx context.Context) ([]*DistributionRule, error)

	// FindDefaultRule retrieves the designated default rule, preferring the
	// lowest priority when several are flagged
	FindDefaultRule(ctx context.Context) (*DistributionRule, error)

	// FindAll retrieves all rules sorted ascending by priority
	FindAll(ctx context.Context) ([]*DistributionRule, error)

	// FindByID retrieves a rule by its ID
	FindByID(ctx context.Context, ruleID string) (*DistributionRule, error)

	// MaxPriority returns the highest priority value among existing rules,
	// or 0 when no rules exist
	MaxPriority(ctx context.Context) (int, error)

	// Create persists a new rule
	Create(ctx context.Context, rule *DistributionRule) error

	// Update persists changes to an existing rule
	Update(ctx context.Context, rule *DistributionRule) error

	// Delete removes a rule, reporting whether it existed
	Delete(ctx context.Context, ruleID string) (bool, error)
}

// ShippingMethodRepository provides read access to shipping method records
type ShippingMethodRepository interface {
	// FindByID retrieves a shipping method by its ID
	FindByID(ctx context.Context, shippingMethodID string) (*ShippingMethod, error)
}

// FulfillmentRepository persists order fulfillments
type FulfillmentRepository interface {
	// Save persists a fulfillment (create or update) together with its
	// buffered domain events
	Save(ctx context.Context, fulfillment *OrderFulfillment) error

	// FindByID retrieves a fulfillment by its ID
	FindByID(ctx context.Context, fulfillmentID string) (*OrderFulfillment, error)

	// FindByOrderID retrieves all fulfillments for an order
	FindByOrderID(ctx context.Context, orderID string) ([]*OrderFulfillment, error)
}
