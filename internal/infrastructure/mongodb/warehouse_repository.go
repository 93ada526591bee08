package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commerce-platform/distribution-service/internal/domain"
)

// WarehouseRepository implements domain.WarehouseRepository using MongoDB
type WarehouseRepository struct {
	collection *mongo.Collection
}

// NewWarehouseRepository creates a new WarehouseRepository
func NewWarehouseRepository(db *mongo.Database) *WarehouseRepository {
	collection := db.Collection("warehouses")

	repo := &WarehouseRepository{collection: collection}
	repo.ensureIndexes(context.Background())

	return repo
}

func (r *WarehouseRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "warehouseId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "isFulfillmentCenter", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "country", Value: 1}},
		},
	}

	r.collection.Indexes().CreateMany(ctx, indexes)
}

// FindActiveWarehouses retrieves all active warehouses ordered by code
func (r *WarehouseRepository) FindActiveWarehouses(ctx context.Context) ([]*domain.Warehouse, error) {
	filter := bson.M{"isActive": true}
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var warehouses []*domain.Warehouse
	if err := cursor.All(ctx, &warehouses); err != nil {
		return nil, err
	}

	return warehouses, nil
}

// FindByID retrieves a warehouse by its ID
func (r *WarehouseRepository) FindByID(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	filter := bson.M{"warehouseId": warehouseID}

	var warehouse domain.Warehouse
	err := r.collection.FindOne(ctx, filter).Decode(&warehouse)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &warehouse, nil
}
