package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commerce-platform/distribution-service/internal/domain"
)

// DistributionRuleRepository implements domain.DistributionRuleRepository using MongoDB
type DistributionRuleRepository struct {
	collection *mongo.Collection
}

// NewDistributionRuleRepository creates a new DistributionRuleRepository
func NewDistributionRuleRepository(db *mongo.Database) *DistributionRuleRepository {
	collection := db.Collection("distribution_rules")

	repo := &DistributionRuleRepository{collection: collection}
	repo.ensureIndexes(context.Background())

	return repo
}

func (r *DistributionRuleRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ruleId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "priority", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "isDefault", Value: 1}},
		},
	}

	r.collection.Indexes().CreateMany(ctx, indexes)
}

// FindActiveRules retrieves active rules ordered by ascending priority
func (r *DistributionRuleRepository) FindActiveRules(ctx context.Context) ([]*domain.DistributionRule, error) {
	filter := bson.M{"isActive": true}
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []*domain.DistributionRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}

	return rules, nil
}

// FindDefaultRule retrieves the active default rule with the lowest priority
func (r *DistributionRuleRepository) FindDefaultRule(ctx context.Context) (*domain.DistributionRule, error) {
	filter := bson.M{"isActive": true, "isDefault": true}
	opts := options.FindOne().SetSort(bson.D{{Key: "priority", Value: 1}})

	var rule domain.DistributionRule
	err := r.collection.FindOne(ctx, filter, opts).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &rule, nil
}

// FindAll retrieves all rules ordered by ascending priority
func (r *DistributionRuleRepository) FindAll(ctx context.Context) ([]*domain.DistributionRule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "priority", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rules []*domain.DistributionRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, err
	}

	return rules, nil
}

// FindByID retrieves a rule by its ID
func (r *DistributionRuleRepository) FindByID(ctx context.Context, ruleID string) (*domain.DistributionRule, error) {
	filter := bson.M{"ruleId": ruleID}

	var rule domain.DistributionRule
	err := r.collection.FindOne(ctx, filter).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &rule, nil
}

// MaxPriority returns the highest priority among all rules, 0 when none exist
func (r *DistributionRuleRepository) MaxPriority(ctx context.Context) (int, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "priority", Value: -1}}).
		SetProjection(bson.M{"priority": 1})

	var result struct {
		Priority int `bson:"priority"`
	}
	err := r.collection.FindOne(ctx, bson.M{}, opts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, err
	}

	return result.Priority, nil
}

// Create inserts a new rule
func (r *DistributionRuleRepository) Create(ctx context.Context, rule *domain.DistributionRule) error {
	_, err := r.collection.InsertOne(ctx, rule)
	return err
}

// Update replaces an existing rule by its ID
func (r *DistributionRuleRepository) Update(ctx context.Context, rule *domain.DistributionRule) error {
	filter := bson.M{"ruleId": rule.RuleID}
	update := bson.M{"$set": rule}

	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// Delete removes a rule by its ID, reporting whether a rule was deleted
func (r *DistributionRuleRepository) Delete(ctx context.Context, ruleID string) (bool, error) {
	filter := bson.M{"ruleId": ruleID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, err
	}

	return result.DeletedCount > 0, nil
}
