package domain

import "time"

// IsEligible reports whether a warehouse can serve the request: it must be
// active and a fulfillment center, and support the requested shipping method
// when one is specified.
func IsEligible(w *Warehouse, req FulfillmentRequest) bool {
	if !w.IsActive || !w.IsFulfillmentCenter {
		return false
	}
	if req.ShippingMethodID == "" {
		return true
	}
	return w.SupportsShippingMethod(req.ShippingMethodID)
}

// CanStartNow reports whether the warehouse can begin processing at the given
// instant, based on its cutoff time in its local timezone. A warehouse with
// no cutoff is always open. An unknown timezone falls back to UTC, never an
// error. The result is informational metadata and never filters selection.
func CanStartNow(w *Warehouse, at time.Time) bool {
	if w.CutoffTime == "" {
		return true
	}

	tz := w.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}

	// Zero-padded 24-hour "HH:MM" strings compare lexicographically the
	// same as numeric times.
	local := at.In(loc).Format("15:04")
	return local < w.CutoffTime
}
