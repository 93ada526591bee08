package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventFactory creates CloudEvents for distribution domain events
type EventFactory struct {
	source string
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source}
}

// CreateEvent creates a new CloudEvent with the given parameters
func (f *EventFactory) CreateEvent(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
) *CloudEvent {
	event := &CloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            time.Now().UTC(),
		DataContentType: "application/json",
		Data:            data,
		Extensions:      make(map[string]interface{}),
	}

	return event
}

// CreateEventWithCorrelation creates an event with correlation tracking
func (f *EventFactory) CreateEventWithCorrelation(
	ctx context.Context,
	eventType string,
	subject string,
	data interface{},
	correlationID string,
) *CloudEvent {
	event := f.CreateEvent(ctx, eventType, subject, data)
	event.CorrelationID = correlationID
	return event
}

// CreateFulfillmentCreatedEvent creates a FulfillmentCreated event
func (f *EventFactory) CreateFulfillmentCreatedEvent(
	ctx context.Context,
	data FulfillmentCreatedData,
) *CloudEvent {
	return f.CreateEvent(ctx, FulfillmentCreated, "fulfillment/"+data.FulfillmentID, data)
}

// CreateFulfillmentStatusChangedEvent creates a FulfillmentStatusChanged event
func (f *EventFactory) CreateFulfillmentStatusChangedEvent(
	ctx context.Context,
	data FulfillmentStatusChangedData,
) *CloudEvent {
	return f.CreateEvent(ctx, FulfillmentStatusChanged, "fulfillment/"+data.FulfillmentID, data)
}

// CreateDistributionRuleEvent creates a distribution rule lifecycle event
func (f *EventFactory) CreateDistributionRuleEvent(
	ctx context.Context,
	eventType string,
	data DistributionRuleData,
) *CloudEvent {
	return f.CreateEvent(ctx, eventType, "distribution-rule/"+data.RuleID, data)
}
