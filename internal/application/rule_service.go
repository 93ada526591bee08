package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/commerce-platform/distribution-service/pkg/cloudevents"
	"github.com/commerce-platform/distribution-service/pkg/errors"
	"github.com/commerce-platform/distribution-service/pkg/kafka"
	"github.com/commerce-platform/distribution-service/pkg/logging"
	"github.com/commerce-platform/distribution-service/pkg/metrics"

	"github.com/commerce-platform/distribution-service/internal/domain"
)

// EventPublisher publishes CloudEvents to a topic
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event *cloudevents.CloudEvent) error
}

// DistributionRuleApplicationService handles distribution rule administration
type DistributionRuleApplicationService struct {
	rules        domain.DistributionRuleRepository
	producer     EventPublisher
	eventFactory *cloudevents.EventFactory
	metrics      *metrics.Metrics
	logger       *logging.Logger
}

// NewDistributionRuleApplicationService creates a new DistributionRuleApplicationService
func NewDistributionRuleApplicationService(
	rules domain.DistributionRuleRepository,
	producer EventPublisher,
	eventFactory *cloudevents.EventFactory,
	m *metrics.Metrics,
	logger *logging.Logger,
) *DistributionRuleApplicationService {
	return &DistributionRuleApplicationService{
		rules:        rules,
		producer:     producer,
		eventFactory: eventFactory,
		metrics:      m,
		logger:       logger,
	}
}

// publishRuleEvent emits a rule lifecycle event. Rule changes are not part
// of a transactional aggregate, so publishing is best-effort.
func (s *DistributionRuleApplicationService) publishRuleEvent(ctx context.Context, eventType string, rule *domain.DistributionRule) {
	if s.producer == nil {
		return
	}

	event := s.eventFactory.CreateDistributionRuleEvent(ctx, eventType, cloudevents.DistributionRuleData{
		RuleID:   rule.RuleID,
		Name:     rule.Name,
		Priority: rule.Priority,
		Active:   rule.IsActive,
	})

	if err := s.producer.PublishEvent(ctx, kafka.Topics.DistributionRuleEvents, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish rule event",
			"ruleId", rule.RuleID,
			"eventType", eventType,
		)
	}
}

// CreateRule creates a new distribution rule. When no priority is given the
// rule is appended after the current highest priority.
func (s *DistributionRuleApplicationService) CreateRule(ctx context.Context, cmd CreateDistributionRuleCommand) (*DistributionRuleDTO, error) {
	if cmd.Name == "" {
		return nil, errors.ErrValidation(domain.ErrRuleNameRequired.Error())
	}

	priority, err := s.assignPriority(ctx, cmd.Priority)
	if err != nil {
		return nil, err
	}

	isActive := true
	if cmd.IsActive != nil {
		isActive = *cmd.IsActive
	}

	now := time.Now()
	rule := &domain.DistributionRule{
		RuleID:                uuid.New().String(),
		Name:                  cmd.Name,
		Priority:              priority,
		WarehouseID:           cmd.WarehouseID,
		ApplicableCountries:   cmd.ApplicableCountries,
		ApplicableRegions:     cmd.ApplicableRegions,
		ApplicablePostalCodes: cmd.PostalCodePatterns,
		ShippingMethodID:      cmd.ShippingMethodID,
		IsActive:              isActive,
		IsDefault:             cmd.IsDefault,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := s.rules.Create(ctx, rule); err != nil {
		s.logger.WithError(err).Error("Failed to create distribution rule", "ruleName", cmd.Name)
		return nil, fmt.Errorf("failed to create distribution rule: %w", err)
	}

	s.metrics.RecordRuleOperation("create")
	s.publishRuleEvent(ctx, cloudevents.DistributionRuleCreated, rule)

	s.logger.Info("Created distribution rule",
		"ruleId", rule.RuleID,
		"ruleName", rule.Name,
		"priority", rule.Priority,
	)

	return ToDistributionRuleDTO(rule), nil
}

func (s *DistributionRuleApplicationService) assignPriority(ctx context.Context, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}

	max, err := s.rules.MaxPriority(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to determine rule priority")
		return 0, fmt.Errorf("failed to determine rule priority: %w", err)
	}
	return max + 1, nil
}

// UpdateRule applies a partial update to an existing rule
func (s *DistributionRuleApplicationService) UpdateRule(ctx context.Context, cmd UpdateDistributionRuleCommand) (*DistributionRuleDTO, error) {
	rule, err := s.rules.FindByID(ctx, cmd.RuleID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get distribution rule", "ruleId", cmd.RuleID)
		return nil, fmt.Errorf("failed to get distribution rule: %w", err)
	}

	if rule == nil {
		return nil, errors.ErrNotFound("distribution rule")
	}

	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, errors.ErrValidation(domain.ErrRuleNameRequired.Error())
		}
		rule.Name = *cmd.Name
	}
	if cmd.Priority != nil {
		rule.Priority = *cmd.Priority
	}
	if cmd.WarehouseID != nil {
		rule.WarehouseID = *cmd.WarehouseID
	}
	if cmd.ApplicableCountries != nil {
		rule.ApplicableCountries = cmd.ApplicableCountries
	}
	if cmd.ApplicableRegions != nil {
		rule.ApplicableRegions = cmd.ApplicableRegions
	}
	if cmd.PostalCodePatterns != nil {
		rule.ApplicablePostalCodes = cmd.PostalCodePatterns
	}
	if cmd.ShippingMethodID != nil {
		rule.ShippingMethodID = *cmd.ShippingMethodID
	}
	if cmd.IsActive != nil {
		rule.IsActive = *cmd.IsActive
	}
	if cmd.IsDefault != nil {
		rule.IsDefault = *cmd.IsDefault
	}
	rule.UpdatedAt = time.Now()

	if err := s.rules.Update(ctx, rule); err != nil {
		s.logger.WithError(err).Error("Failed to update distribution rule", "ruleId", cmd.RuleID)
		return nil, fmt.Errorf("failed to update distribution rule: %w", err)
	}

	s.metrics.RecordRuleOperation("update")
	s.publishRuleEvent(ctx, cloudevents.DistributionRuleUpdated, rule)

	s.logger.Info("Updated distribution rule", "ruleId", rule.RuleID, "ruleName", rule.Name)

	return ToDistributionRuleDTO(rule), nil
}

// DeleteRule deletes a rule by ID
func (s *DistributionRuleApplicationService) DeleteRule(ctx context.Context, cmd DeleteDistributionRuleCommand) error {
	deleted, err := s.rules.Delete(ctx, cmd.RuleID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to delete distribution rule", "ruleId", cmd.RuleID)
		return fmt.Errorf("failed to delete distribution rule: %w", err)
	}

	if !deleted {
		return errors.ErrNotFound("distribution rule")
	}

	s.metrics.RecordRuleOperation("delete")
	s.publishRuleEvent(ctx, cloudevents.DistributionRuleDeleted, &domain.DistributionRule{RuleID: cmd.RuleID})

	s.logger.Info("Deleted distribution rule", "ruleId", cmd.RuleID)
	return nil
}

// GetRule retrieves a rule by ID
func (s *DistributionRuleApplicationService) GetRule(ctx context.Context, query GetDistributionRuleQuery) (*DistributionRuleDTO, error) {
	rule, err := s.rules.FindByID(ctx, query.RuleID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get distribution rule", "ruleId", query.RuleID)
		return nil, fmt.Errorf("failed to get distribution rule: %w", err)
	}

	if rule == nil {
		return nil, errors.ErrNotFound("distribution rule")
	}

	return ToDistributionRuleDTO(rule), nil
}

// ListRules retrieves all distribution rules ordered by priority
func (s *DistributionRuleApplicationService) ListRules(ctx context.Context) ([]DistributionRuleDTO, error) {
	rules, err := s.rules.FindAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list distribution rules")
		return nil, fmt.Errorf("failed to list distribution rules: %w", err)
	}

	return ToDistributionRuleDTOs(rules), nil
}
