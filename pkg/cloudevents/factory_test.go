package cloudevents

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFulfillmentCreatedEvent(t *testing.T) {
	factory := NewEventFactory(SourceDistribution)

	createdAt := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	event := factory.CreateFulfillmentCreatedEvent(context.Background(), FulfillmentCreatedData{
		FulfillmentID:      "F-100",
		OrderID:            "O-200",
		WarehouseID:        "W-300",
		WarehouseCode:      "US-EAST",
		DestinationCountry: "US",
		SelectionStage:     "geo_proximity",
		CreatedAt:          createdAt,
	})

	assert.Equal(t, "1.0", event.SpecVersion)
	assert.Equal(t, FulfillmentCreated, event.Type)
	assert.Equal(t, SourceDistribution, event.Source)
	assert.Equal(t, "fulfillment/F-100", event.Subject)
	assert.NotEmpty(t, event.ID)

	data, ok := event.Data.(FulfillmentCreatedData)
	require.True(t, ok, "event data should be FulfillmentCreatedData")
	assert.Equal(t, "F-100", data.FulfillmentID)
	assert.Equal(t, "O-200", data.OrderID)
	assert.Equal(t, "W-300", data.WarehouseID)
	assert.Equal(t, "US-EAST", data.WarehouseCode)
	assert.Equal(t, createdAt, data.CreatedAt)
}

func TestCreateDistributionRuleEvent(t *testing.T) {
	factory := NewEventFactory(SourceDistribution)

	event := factory.CreateDistributionRuleEvent(context.Background(), DistributionRuleCreated, DistributionRuleData{
		RuleID:   "R-1",
		Name:     "US orders",
		Priority: 1,
		Active:   true,
	})

	assert.Equal(t, DistributionRuleCreated, event.Type)
	assert.Equal(t, "distribution-rule/R-1", event.Subject)
}
