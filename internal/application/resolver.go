package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/commerce-platform/distribution-service/pkg/logging"

	"github.com/commerce-platform/distribution-service/internal/domain"
)

// Resolution stages in fallback order. StageManualOverride is recorded when
// the caller names a warehouse directly and resolution is skipped entirely.
const (
	StageManualOverride     = "manual_override"
	StagePreferredWarehouse = "preferred_warehouse"
	StageDistributionRule   = "distribution_rule"
	StageGeoProximity       = "geo_proximity"
	StageRegionalAffinity   = "regional_affinity"
	StageGlobalDefault      = "global_default"
	StageLastResort         = "last_resort"
)

// MaxAlternatives limits how many nearby fallback options a geo selection surfaces
const MaxAlternatives = 3

// WarehouseAlternative is a nearby fallback option surfaced alongside a geo selection
type WarehouseAlternative struct {
	Warehouse  *domain.Warehouse
	DistanceKm int
}

// ResolutionResult contains the selected warehouse and how it was chosen
type ResolutionResult struct {
	Warehouse     *domain.Warehouse
	Stage         string
	DistanceKm    *int
	Alternatives  []WarehouseAlternative
	CanFulfillNow bool
}

// stageFunc attempts one selection strategy against the eligible candidates.
// Returning a nil result means the stage did not apply and the resolver
// moves on to the next one.
type stageFunc func(ctx context.Context, req domain.FulfillmentRequest, eligible []*domain.Warehouse) *ResolutionResult

// WarehouseResolver selects a fulfillment warehouse for a destination by
// running an ordered chain of selection stages until one produces a match
type WarehouseResolver struct {
	warehouses domain.WarehouseRepository
	rules      domain.DistributionRuleRepository
	logger     *logging.Logger
	now        func() time.Time
}

// NewWarehouseResolver creates a new WarehouseResolver
func NewWarehouseResolver(
	warehouses domain.WarehouseRepository,
	rules domain.DistributionRuleRepository,
	logger *logging.Logger,
) *WarehouseResolver {
	return &WarehouseResolver{
		warehouses: warehouses,
		rules:      rules,
		logger:     logger,
		now:        time.Now,
	}
}

// Resolve selects a warehouse for the request. It fails only when no active
// fulfillment center exists at all; every other miss falls through to the
// next stage, ending with an unconditional last-resort pick.
func (r *WarehouseResolver) Resolve(ctx context.Context, req domain.FulfillmentRequest) (*ResolutionResult, error) {
	all, err := r.warehouses.FindActiveWarehouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load warehouses: %w", err)
	}

	candidates := make([]*domain.Warehouse, 0, len(all))
	for _, w := range all {
		if w.IsActive && w.IsFulfillmentCenter {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoFulfillmentCenters
	}

	eligible := make([]*domain.Warehouse, 0, len(candidates))
	for _, w := range candidates {
		if domain.IsEligible(w, req) {
			eligible = append(eligible, w)
		}
	}

	stages := []struct {
		name string
		fn   stageFunc
	}{
		{StagePreferredWarehouse, r.preferredWarehouse},
		{StageDistributionRule, r.matchDistributionRule},
		{StageGeoProximity, r.nearestByDistance},
		{StageRegionalAffinity, r.regionalAffinity},
		{StageGlobalDefault, r.globalDefault},
	}

	for _, stage := range stages {
		if result := stage.fn(ctx, req, eligible); result != nil {
			result.Stage = stage.name
			result.CanFulfillNow = domain.CanStartNow(result.Warehouse, r.now())
			r.logger.Debug("Warehouse resolved",
				"warehouseId", result.Warehouse.WarehouseID,
				"warehouseCode", result.Warehouse.Code,
				"stage", result.Stage,
			)
			return result, nil
		}
	}

	// Last resort takes the first active fulfillment center even when it
	// does not support the requested shipping method.
	selected := candidates[0]
	r.logger.Warn("No selection stage matched, falling back to first available warehouse",
		"warehouseId", selected.WarehouseID,
		"warehouseCode", selected.Code,
		"destinationCountry", req.Destination.Country,
	)
	return &ResolutionResult{
		Warehouse:     selected,
		Stage:         StageLastResort,
		CanFulfillNow: domain.CanStartNow(selected, r.now()),
	}, nil
}

// preferredWarehouse honors an explicit warehouse preference when that
// warehouse is among the eligible candidates
func (r *WarehouseResolver) preferredWarehouse(_ context.Context, req domain.FulfillmentRequest, eligible []*domain.Warehouse) *ResolutionResult {
	if req.PreferredWarehouseID == "" {
		return nil
	}
	for _, w := range eligible {
		if w.WarehouseID == req.PreferredWarehouseID {
			return &ResolutionResult{Warehouse: w}
		}
	}
	return nil
}

// matchDistributionRule evaluates active rules in priority order. Only the
// first rule matching the destination determines the outcome: if its
// warehouse is unset or ineligible, the stage yields nothing rather than
// trying later rules. When no rule matches at all, the designated default
// rule applies regardless of its own filters. Repository failures are
// treated as no rule matching so that later stages still run.
func (r *WarehouseResolver) matchDistributionRule(ctx context.Context, req domain.FulfillmentRequest, eligible []*domain.Warehouse) *ResolutionResult {
	rules, err := r.rules.FindActiveRules(ctx)
	if err != nil {
		r.logger.WithError(err).Warn("Failed to load distribution rules, skipping rule matching")
		return nil
	}

	var matched *domain.DistributionRule
	for _, rule := range rules {
		if rule.Matches(req.Destination, req.ShippingMethodID) {
			matched = rule
			break
		}
	}

	if matched == nil {
		defaultRule, err := r.rules.FindDefaultRule(ctx)
		if err != nil {
			r.logger.WithError(err).Warn("Failed to load default distribution rule")
			return nil
		}
		matched = defaultRule
	}
	if matched == nil || matched.WarehouseID == "" {
		return nil
	}

	for _, w := range eligible {
		if w.WarehouseID == matched.WarehouseID {
			r.logger.Debug("Distribution rule matched",
				"ruleId", matched.RuleID,
				"ruleName", matched.Name,
				"priority", matched.Priority,
			)
			return &ResolutionResult{Warehouse: w}
		}
	}
	return nil
}

// nearestByDistance picks the closest eligible warehouse by great-circle
// distance, surfacing the next-closest ones as alternatives
func (r *WarehouseResolver) nearestByDistance(_ context.Context, req domain.FulfillmentRequest, eligible []*domain.Warehouse) *ResolutionResult {
	if !req.Destination.HasCoordinates() {
		return nil
	}

	type scored struct {
		warehouse *domain.Warehouse
		km        float64
	}
	ranked := make([]scored, 0, len(eligible))
	for _, w := range eligible {
		if !w.HasCoordinates() {
			continue
		}
		km := domain.DistanceKm(
			*req.Destination.Latitude, *req.Destination.Longitude,
			*w.Latitude, *w.Longitude,
		)
		ranked = append(ranked, scored{warehouse: w, km: km})
	}
	if len(ranked) == 0 {
		return nil
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].km < ranked[j].km
	})

	selected := ranked[0]
	distance := domain.RoundKm(selected.km)

	var alternatives []WarehouseAlternative
	for _, entry := range ranked[1:] {
		if len(alternatives) == MaxAlternatives {
			break
		}
		alternatives = append(alternatives, WarehouseAlternative{
			Warehouse:  entry.warehouse,
			DistanceKm: domain.RoundKm(entry.km),
		})
	}

	return &ResolutionResult{
		Warehouse:    selected.warehouse,
		DistanceKm:   &distance,
		Alternatives: alternatives,
	}
}

// regionalAffinity prefers a warehouse in the destination country and falls
// back to one in the same geographic region
func (r *WarehouseResolver) regionalAffinity(_ context.Context, req domain.FulfillmentRequest, eligible []*domain.Warehouse) *ResolutionResult {
	if req.Destination.Country == "" {
		return nil
	}
	for _, w := range eligible {
		if req.Destination.CountryEquals(w.Country) {
			return &ResolutionResult{Warehouse: w}
		}
	}
	for _, w := range eligible {
		if domain.SameRegion(req.Destination.Country, w.Country) {
			return &ResolutionResult{Warehouse: w}
		}
	}
	return nil
}

// globalDefault picks the warehouse flagged as the network-wide default
func (r *WarehouseResolver) globalDefault(_ context.Context, _ domain.FulfillmentRequest, eligible []*domain.Warehouse) *ResolutionResult {
	for _, w := range eligible {
		if w.IsDefault {
			return &ResolutionResult{Warehouse: w}
		}
	}
	return nil
}
