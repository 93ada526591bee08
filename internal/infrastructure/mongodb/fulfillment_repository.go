package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commerce-platform/distribution-service/pkg/cloudevents"
	"github.com/commerce-platform/distribution-service/pkg/kafka"
	"github.com/commerce-platform/distribution-service/pkg/outbox"
	outboxMongo "github.com/commerce-platform/distribution-service/pkg/outbox/mongodb"

	"github.com/commerce-platform/distribution-service/internal/domain"
)

// FulfillmentRepository implements domain.FulfillmentRepository using MongoDB
type FulfillmentRepository struct {
	collection   *mongo.Collection
	db           *mongo.Database
	outboxRepo   *outboxMongo.OutboxRepository
	eventFactory *cloudevents.EventFactory
}

// NewFulfillmentRepository creates a new FulfillmentRepository
func NewFulfillmentRepository(db *mongo.Database, eventFactory *cloudevents.EventFactory) *FulfillmentRepository {
	collection := db.Collection("fulfillments")
	outboxRepo := outboxMongo.NewOutboxRepository(db)

	repo := &FulfillmentRepository{
		collection:   collection,
		db:           db,
		outboxRepo:   outboxRepo,
		eventFactory: eventFactory,
	}
	repo.ensureIndexes(context.Background())
	_ = outboxRepo.EnsureIndexes(context.Background())

	return repo
}

// GetOutboxRepository exposes the outbox store for the background publisher
func (r *FulfillmentRepository) GetOutboxRepository() *outboxMongo.OutboxRepository {
	return r.outboxRepo
}

func (r *FulfillmentRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "fulfillmentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "orderId", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "warehouseId", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	}

	r.collection.Indexes().CreateMany(ctx, indexes)
}

// Save persists a fulfillment with its domain events in a single transaction
func (r *FulfillmentRepository) Save(ctx context.Context, fulfillment *domain.OrderFulfillment) error {
	fulfillment.UpdatedAt = time.Now()

	session, err := r.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		opts := options.Update().SetUpsert(true)
		filter := bson.M{"fulfillmentId": fulfillment.FulfillmentID}
		update := bson.M{"$set": fulfillment}

		if _, err := r.collection.UpdateOne(sessCtx, filter, update, opts); err != nil {
			return nil, fmt.Errorf("failed to save fulfillment: %w", err)
		}

		domainEvents := fulfillment.DomainEvents
		if len(domainEvents) > 0 {
			outboxEvents := make([]*outbox.Event, 0, len(domainEvents))

			for _, event := range domainEvents {
				var cloudEvent *cloudevents.CloudEvent
				switch e := event.(type) {
				case *domain.FulfillmentCreatedEvent:
					cloudEvent = r.eventFactory.CreateFulfillmentCreatedEvent(sessCtx, cloudevents.FulfillmentCreatedData{
						FulfillmentID:      e.FulfillmentID,
						OrderID:            e.OrderID,
						WarehouseID:        e.WarehouseID,
						WarehouseCode:      fulfillment.WarehouseCode,
						ShippingMethodCode: fulfillment.ShippingMethodID,
						DestinationCountry: fulfillment.ShipTo.Country,
						DestinationRegion:  domain.RegionForCountry(fulfillment.ShipTo.Country),
						DestinationPostal:  fulfillment.ShipTo.PostalCode,
						SelectionStage:     fulfillment.SelectionStage,
						CreatedAt:          e.CreatedAt,
					})
				case *domain.FulfillmentStatusChangedEvent:
					cloudEvent = r.eventFactory.CreateFulfillmentStatusChangedEvent(sessCtx, cloudevents.FulfillmentStatusChangedData{
						FulfillmentID:  e.FulfillmentID,
						OrderID:        e.OrderID,
						PreviousStatus: e.PreviousStatus,
						NewStatus:      e.NewStatus,
						ChangedAt:      e.ChangedAt,
					})
				default:
					continue
				}

				outboxEvent, err := outbox.NewEventFromCloudEvent(
					fulfillment.FulfillmentID,
					"OrderFulfillment",
					kafka.Topics.FulfillmentEvents,
					cloudEvent,
				)
				if err != nil {
					return nil, fmt.Errorf("failed to create outbox event: %w", err)
				}

				outboxEvents = append(outboxEvents, outboxEvent)
			}

			if len(outboxEvents) > 0 {
				if err := r.outboxRepo.SaveAll(sessCtx, outboxEvents); err != nil {
					return nil, fmt.Errorf("failed to save outbox events: %w", err)
				}
			}
		}

		fulfillment.ClearDomainEvents()

		return nil, nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}

// FindByID retrieves a fulfillment by its ID
func (r *FulfillmentRepository) FindByID(ctx context.Context, fulfillmentID string) (*domain.OrderFulfillment, error) {
	filter := bson.M{"fulfillmentId": fulfillmentID}

	var fulfillment domain.OrderFulfillment
	err := r.collection.FindOne(ctx, filter).Decode(&fulfillment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &fulfillment, nil
}

// FindByOrderID retrieves all fulfillments for an order
func (r *FulfillmentRepository) FindByOrderID(ctx context.Context, orderID string) ([]*domain.OrderFulfillment, error) {
	filter := bson.M{"orderId": orderID}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var fulfillments []*domain.OrderFulfillment
	if err := cursor.All(ctx, &fulfillments); err != nil {
		return nil, err
	}

	return fulfillments, nil
}
