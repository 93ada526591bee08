package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commerce-platform/distribution-service/internal/domain"
)

// ShippingMethodRepository implements domain.ShippingMethodRepository using MongoDB
type ShippingMethodRepository struct {
	collection *mongo.Collection
}

// NewShippingMethodRepository creates a new ShippingMethodRepository
func NewShippingMethodRepository(db *mongo.Database) *ShippingMethodRepository {
	collection := db.Collection("shipping_methods")

	repo := &ShippingMethodRepository{collection: collection}
	repo.ensureIndexes(context.Background())

	return repo
}

func (r *ShippingMethodRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "shippingMethodId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	r.collection.Indexes().CreateMany(ctx, indexes)
}

// FindByID retrieves a shipping method by its ID
func (r *ShippingMethodRepository) FindByID(ctx context.Context, shippingMethodID string) (*domain.ShippingMethod, error) {
	filter := bson.M{"shippingMethodId": shippingMethodID}

	var method domain.ShippingMethod
	err := r.collection.FindOne(ctx, filter).Decode(&method)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &method, nil
}
