package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testShipTo() ShipToAddress {
	return ShipToAddress{
		Line1:      "123 Market St",
		City:       "San Francisco",
		State:      "CA",
		PostalCode: "94105",
		Country:    "US",
	}
}

func TestNewOrderFulfillment(t *testing.T) {
	tests := []struct {
		name        string
		orderID     string
		warehouseID string
		expectError error
	}{
		{
			name:        "valid fulfillment",
			orderID:     "ord-1",
			warehouseID: "wh-1",
			expectError: nil,
		},
		{
			name:        "missing order id",
			orderID:     "",
			warehouseID: "wh-1",
			expectError: ErrOrderIDRequired,
		},
		{
			name:        "missing warehouse id",
			orderID:     "ord-1",
			warehouseID: "",
			expectError: ErrWarehouseIDRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewOrderFulfillment(tt.orderID, tt.warehouseID, testShipTo())

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, f)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, f.FulfillmentID)
			assert.Equal(t, FulfillmentStatusPending, f.Status)
			require.Len(t, f.DomainEvents, 1)

			created, ok := f.DomainEvents[0].(*FulfillmentCreatedEvent)
			require.True(t, ok)
			assert.Equal(t, tt.orderID, created.OrderID)
			assert.Equal(t, tt.warehouseID, created.WarehouseID)
		})
	}
}

func TestChangeStatus(t *testing.T) {
	tests := []struct {
		name      string
		from      FulfillmentStatus
		to        FulfillmentStatus
		expectErr bool
	}{
		{"pending to processing", FulfillmentStatusPending, FulfillmentStatusProcessing, false},
		{"pending to cancelled", FulfillmentStatusPending, FulfillmentStatusCancelled, false},
		{"processing to shipped", FulfillmentStatusProcessing, FulfillmentStatusShipped, false},
		{"shipped to delivered", FulfillmentStatusShipped, FulfillmentStatusDelivered, false},
		{"shipped to failed", FulfillmentStatusShipped, FulfillmentStatusFailed, false},
		{"pending to shipped skips processing", FulfillmentStatusPending, FulfillmentStatusShipped, true},
		{"delivered is terminal", FulfillmentStatusDelivered, FulfillmentStatusProcessing, true},
		{"cancelled is terminal", FulfillmentStatusCancelled, FulfillmentStatusPending, true},
		{"shipped cannot be cancelled", FulfillmentStatusShipped, FulfillmentStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewOrderFulfillment("ord-1", "wh-1", testShipTo())
			require.NoError(t, err)
			f.Status = tt.from
			f.ClearDomainEvents()

			err = f.ChangeStatus(tt.to)

			if tt.expectErr {
				assert.ErrorIs(t, err, ErrInvalidStatusTransition)
				assert.Equal(t, tt.from, f.Status)
				assert.Empty(t, f.DomainEvents)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, f.Status)
			require.Len(t, f.DomainEvents, 1)

			changed, ok := f.DomainEvents[0].(*FulfillmentStatusChangedEvent)
			require.True(t, ok)
			assert.Equal(t, string(tt.from), changed.PreviousStatus)
			assert.Equal(t, string(tt.to), changed.NewStatus)
		})
	}
}

func TestIsValidFulfillmentStatus(t *testing.T) {
	assert.True(t, IsValidFulfillmentStatus("pending"))
	assert.True(t, IsValidFulfillmentStatus("cancelled"))
	assert.False(t, IsValidFulfillmentStatus("in_transit"))
	assert.False(t, IsValidFulfillmentStatus(""))
}
