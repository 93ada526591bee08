package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activeFulfillmentCenter() *Warehouse {
	return &Warehouse{
		WarehouseID:         "wh-1",
		Code:                "SFO-1",
		Name:                "San Francisco FC",
		IsActive:            true,
		IsFulfillmentCenter: true,
		Country:             "US",
	}
}

func TestIsEligible(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(*Warehouse)
		request  FulfillmentRequest
		eligible bool
	}{
		{
			name:     "active fulfillment center, no method requested",
			modify:   func(w *Warehouse) {},
			request:  FulfillmentRequest{},
			eligible: true,
		},
		{
			name:     "inactive warehouse",
			modify:   func(w *Warehouse) { w.IsActive = false },
			request:  FulfillmentRequest{},
			eligible: false,
		},
		{
			name:     "not a fulfillment center",
			modify:   func(w *Warehouse) { w.IsFulfillmentCenter = false },
			request:  FulfillmentRequest{},
			eligible: false,
		},
		{
			name:     "empty method set accepts any method",
			modify:   func(w *Warehouse) {},
			request:  FulfillmentRequest{ShippingMethodID: "sm-express"},
			eligible: true,
		},
		{
			name:     "requested method in supported set",
			modify:   func(w *Warehouse) { w.ShippingMethods = []string{"sm-standard", "sm-express"} },
			request:  FulfillmentRequest{ShippingMethodID: "sm-express"},
			eligible: true,
		},
		{
			name:     "requested method not in supported set",
			modify:   func(w *Warehouse) { w.ShippingMethods = []string{"sm-standard"} },
			request:  FulfillmentRequest{ShippingMethodID: "sm-express"},
			eligible: false,
		},
		{
			name:     "restricted set but no method requested",
			modify:   func(w *Warehouse) { w.ShippingMethods = []string{"sm-standard"} },
			request:  FulfillmentRequest{},
			eligible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := activeFulfillmentCenter()
			tt.modify(w)
			assert.Equal(t, tt.eligible, IsEligible(w, tt.request))
		})
	}
}

func TestCanStartNow(t *testing.T) {
	// 2026-03-10 17:30 UTC
	at := time.Date(2026, 3, 10, 17, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		cutoffTime string
		timezone   string
		expected   bool
	}{
		{
			name:       "no cutoff means always open",
			cutoffTime: "",
			timezone:   "UTC",
			expected:   true,
		},
		{
			name:       "before cutoff in UTC",
			cutoffTime: "18:00",
			timezone:   "UTC",
			expected:   true,
		},
		{
			name:       "after cutoff in UTC",
			cutoffTime: "17:00",
			timezone:   "UTC",
			expected:   false,
		},
		{
			name:       "exactly at cutoff is closed",
			cutoffTime: "17:30",
			timezone:   "UTC",
			expected:   false,
		},
		{
			// 17:30 UTC is 09:30 in Los Angeles (PDT)
			name:       "before cutoff in warehouse local time",
			cutoffTime: "14:00",
			timezone:   "America/Los_Angeles",
			expected:   true,
		},
		{
			// 17:30 UTC is 02:30 next day in Tokyo, past an early cutoff
			name:       "after cutoff in warehouse local time",
			cutoffTime: "02:00",
			timezone:   "Asia/Tokyo",
			expected:   false,
		},
		{
			name:       "invalid timezone falls back to UTC",
			cutoffTime: "18:00",
			timezone:   "Not/AZone",
			expected:   true,
		},
		{
			name:       "empty timezone defaults to UTC",
			cutoffTime: "17:00",
			timezone:   "",
			expected:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := activeFulfillmentCenter()
			w.CutoffTime = tt.cutoffTime
			w.Timezone = tt.timezone
			assert.Equal(t, tt.expected, CanStartNow(w, at))
		})
	}
}

func TestProcessingHours(t *testing.T) {
	w := activeFulfillmentCenter()
	assert.Equal(t, DefaultProcessingHours, w.ProcessingHours())

	w.ProcessingTime = 48
	assert.Equal(t, 48, w.ProcessingHours())
}
