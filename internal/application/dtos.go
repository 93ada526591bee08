package application

import "time"

// OrderFulfillmentDTO represents an order fulfillment in responses
type OrderFulfillmentDTO struct {
	FulfillmentID       string           `json:"fulfillmentId"`
	OrderID             string           `json:"orderId"`
	OrderNumber         string           `json:"orderNumber,omitempty"`
	WarehouseID         string           `json:"warehouseId"`
	WarehouseCode       string           `json:"warehouseCode,omitempty"`
	WarehouseName       string           `json:"warehouseName,omitempty"`
	ShippingMethodID    string           `json:"shippingMethodId,omitempty"`
	Status              string           `json:"status"`
	ShipTo              ShipToAddressDTO `json:"shipTo"`
	SelectionStage      string           `json:"selectionStage,omitempty"`
	EstimatedDeliveryAt *time.Time       `json:"estimatedDeliveryAt,omitempty"`
	CustomerNotes       string           `json:"customerNotes,omitempty"`
	CreatedBy           string           `json:"createdBy,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// ShipToAddressDTO represents a shipping destination address
type ShipToAddressDTO struct {
	Line1      string   `json:"line1"`
	Line2      string   `json:"line2,omitempty"`
	City       string   `json:"city"`
	State      string   `json:"state,omitempty"`
	PostalCode string   `json:"postalCode"`
	Country    string   `json:"country"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

// ResolutionResultDTO describes which warehouse was selected and why
type ResolutionResultDTO struct {
	WarehouseID     string                    `json:"warehouseId"`
	WarehouseCode   string                    `json:"warehouseCode"`
	WarehouseName   string                    `json:"warehouseName"`
	Stage           string                    `json:"stage"`
	ProcessingHours int                       `json:"processingHours"`
	DistanceKm      *int                      `json:"distanceKm,omitempty"`
	Alternatives    []WarehouseAlternativeDTO `json:"alternatives,omitempty"`
	CanFulfillNow   bool                      `json:"canFulfillNow"`
}

// WarehouseAlternativeDTO is a nearby fallback option in a resolution response
type WarehouseAlternativeDTO struct {
	WarehouseID   string `json:"warehouseId"`
	WarehouseCode string `json:"warehouseCode"`
	WarehouseName string `json:"warehouseName"`
	DistanceKm    int    `json:"distanceKm"`
}

// DistributionRuleDTO represents a distribution rule in responses
type DistributionRuleDTO struct {
	RuleID              string    `json:"ruleId"`
	Name                string    `json:"name"`
	Priority            int       `json:"priority"`
	WarehouseID         string    `json:"warehouseId,omitempty"`
	ApplicableCountries []string  `json:"applicableCountries,omitempty"`
	ApplicableRegions   []string  `json:"applicableRegions,omitempty"`
	PostalCodePatterns  []string  `json:"postalCodePatterns,omitempty"`
	ShippingMethodID    string    `json:"shippingMethodId,omitempty"`
	IsActive            bool      `json:"isActive"`
	IsDefault           bool      `json:"isDefault"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
