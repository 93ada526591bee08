package cloudevents

import (
	"time"
)

// EventType constants for distribution domain events
const (
	// Fulfillment events
	FulfillmentCreated       = "commerce.distribution.fulfillment-created"
	FulfillmentStatusChanged = "commerce.distribution.fulfillment-status-changed"

	// Distribution rule events
	DistributionRuleCreated = "commerce.distribution.rule-created"
	DistributionRuleUpdated = "commerce.distribution.rule-updated"
	DistributionRuleDeleted = "commerce.distribution.rule-deleted"
)

// Source constants for event sources
const (
	SourceDistribution = "/commerce/distribution-service"
)

// CloudEvent represents a CloudEvents v1.0 compliant event
type CloudEvent struct {
	SpecVersion     string                 `json:"specversion"`
	Type            string                 `json:"type"`
	Source          string                 `json:"source"`
	Subject         string                 `json:"subject,omitempty"`
	ID              string                 `json:"id"`
	Time            time.Time              `json:"time"`
	DataContentType string                 `json:"datacontenttype"`
	Data            interface{}            `json:"data"`
	Extensions      map[string]interface{} `json:"-"`

	// Correlation extensions
	CorrelationID string `json:"correlationid,omitempty"`
}

// FulfillmentCreatedData represents the data payload for FulfillmentCreated event
type FulfillmentCreatedData struct {
	FulfillmentID      string    `json:"fulfillmentId"`
	OrderID            string    `json:"orderId"`
	WarehouseID        string    `json:"warehouseId"`
	WarehouseCode      string    `json:"warehouseCode"`
	ShippingMethodCode string    `json:"shippingMethodCode,omitempty"`
	DestinationCountry string    `json:"destinationCountry"`
	DestinationRegion  string    `json:"destinationRegion,omitempty"`
	DestinationPostal  string    `json:"destinationPostalCode,omitempty"`
	SelectionStage     string    `json:"selectionStage"`
	CreatedAt          time.Time `json:"createdAt"`
}

// FulfillmentStatusChangedData represents the data payload for FulfillmentStatusChanged event
type FulfillmentStatusChangedData struct {
	FulfillmentID  string    `json:"fulfillmentId"`
	OrderID        string    `json:"orderId"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	ChangedAt      time.Time `json:"changedAt"`
}

// DistributionRuleData represents the data payload for distribution rule events
type DistributionRuleData struct {
	RuleID   string `json:"ruleId"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Active   bool   `json:"active"`
}
