package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DistributionRule maps a destination/shipping-method pattern to a preferred
// warehouse. Rules are evaluated in ascending priority order; the first match
// wins. A rule with no filters set matches every destination, which lets a
// high-priority-number rule act as a catch-all.
type DistributionRule struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	RuleID string             `bson:"ruleId"`
	Name   string             `bson:"name"`

	// Lower priority value is evaluated first
	Priority int `bson:"priority"`

	// WarehouseID is optional; a match on a rule without one yields no warehouse
	WarehouseID string `bson:"warehouseId,omitempty"`

	ApplicableCountries   []string `bson:"applicableCountries,omitempty"`
	ApplicableRegions     []string `bson:"applicableRegions,omitempty"`
	ApplicablePostalCodes []string `bson:"applicablePostalCodes,omitempty"`
	ShippingMethodID      string   `bson:"shippingMethodId,omitempty"`

	IsActive  bool `bson:"isActive"`
	IsDefault bool `bson:"isDefault"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// rulePredicate checks one filter dimension. Absent or empty filters hold
// vacuously; all predicates must hold for a rule to match.
type rulePredicate func(rule *DistributionRule, dest Destination, shippingMethodID string) bool

var rulePredicates = []rulePredicate{
	matchesCountry,
	matchesRegion,
	matchesPostalCode,
	matchesShippingMethod,
}

// Matches evaluates the rule's filters against a destination and requested
// shipping method.
func (r *DistributionRule) Matches(dest Destination, shippingMethodID string) bool {
	for _, predicate := range rulePredicates {
		if !predicate(r, dest, shippingMethodID) {
			return false
		}
	}
	return true
}

func matchesCountry(rule *DistributionRule, dest Destination, _ string) bool {
	if len(rule.ApplicableCountries) == 0 {
		return true
	}
	for _, c := range rule.ApplicableCountries {
		if strings.EqualFold(c, dest.Country) {
			return true
		}
	}
	return false
}

func matchesRegion(rule *DistributionRule, dest Destination, _ string) bool {
	if len(rule.ApplicableRegions) == 0 || dest.State == "" {
		return true
	}
	for _, region := range rule.ApplicableRegions {
		if strings.EqualFold(region, dest.State) {
			return true
		}
	}
	return false
}

func matchesPostalCode(rule *DistributionRule, dest Destination, _ string) bool {
	if len(rule.ApplicablePostalCodes) == 0 || dest.PostalCode == "" {
		return true
	}
	for _, pattern := range rule.ApplicablePostalCodes {
		if matchesPostalPattern(pattern, dest.PostalCode) {
			return true
		}
	}
	return false
}

// matchesPostalPattern matches a postal code against a literal pattern or a
// prefix pattern ending in "*".
func matchesPostalPattern(pattern, postalCode string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(postalCode, prefix)
	}
	return pattern == postalCode
}

func matchesShippingMethod(rule *DistributionRule, _ Destination, shippingMethodID string) bool {
	if rule.ShippingMethodID == "" || shippingMethodID == "" {
		return true
	}
	return rule.ShippingMethodID == shippingMethodID
}
