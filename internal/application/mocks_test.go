package application

import (
	"context"
	"sort"

	"github.com/commerce-platform/distribution-service/internal/domain"
)

// MockWarehouseRepository is a mock implementation of WarehouseRepository for testing
type MockWarehouseRepository struct {
	warehouses []*domain.Warehouse
	findErr    error
}

func NewMockWarehouseRepository() *MockWarehouseRepository {
	return &MockWarehouseRepository{}
}

func (m *MockWarehouseRepository) FindActiveWarehouses(ctx context.Context) ([]*domain.Warehouse, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.Warehouse
	for _, w := range m.warehouses {
		if w.IsActive {
			result = append(result, w)
		}
	}
	return result, nil
}

func (m *MockWarehouseRepository) FindByID(ctx context.Context, warehouseID string) (*domain.Warehouse, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, w := range m.warehouses {
		if w.WarehouseID == warehouseID {
			return w, nil
		}
	}
	return nil, nil
}

func (m *MockWarehouseRepository) AddWarehouse(w *domain.Warehouse) {
	m.warehouses = append(m.warehouses, w)
}

func (m *MockWarehouseRepository) SetFindError(err error) {
	m.findErr = err
}

// MockDistributionRuleRepository is a mock implementation of DistributionRuleRepository for testing
type MockDistributionRuleRepository struct {
	rules     map[string]*domain.DistributionRule
	findErr   error
	createErr error
}

func NewMockDistributionRuleRepository() *MockDistributionRuleRepository {
	return &MockDistributionRuleRepository{
		rules: make(map[string]*domain.DistributionRule),
	}
}

func (m *MockDistributionRuleRepository) FindActiveRules(ctx context.Context) ([]*domain.DistributionRule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.DistributionRule
	for _, rule := range m.rules {
		if rule.IsActive {
			result = append(result, rule)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Priority < result[j].Priority
	})
	return result, nil
}

func (m *MockDistributionRuleRepository) FindDefaultRule(ctx context.Context) (*domain.DistributionRule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result *domain.DistributionRule
	for _, rule := range m.rules {
		if rule.IsActive && rule.IsDefault {
			if result == nil || rule.Priority < result.Priority {
				result = rule
			}
		}
	}
	return result, nil
}

func (m *MockDistributionRuleRepository) FindAll(ctx context.Context) ([]*domain.DistributionRule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.DistributionRule
	for _, rule := range m.rules {
		result = append(result, rule)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Priority < result[j].Priority
	})
	return result, nil
}

func (m *MockDistributionRuleRepository) FindByID(ctx context.Context, ruleID string) (*domain.DistributionRule, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.rules[ruleID], nil
}

func (m *MockDistributionRuleRepository) MaxPriority(ctx context.Context) (int, error) {
	if m.findErr != nil {
		return 0, m.findErr
	}
	max := 0
	for _, rule := range m.rules {
		if rule.Priority > max {
			max = rule.Priority
		}
	}
	return max, nil
}

func (m *MockDistributionRuleRepository) Create(ctx context.Context, rule *domain.DistributionRule) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rules[rule.RuleID] = rule
	return nil
}

func (m *MockDistributionRuleRepository) Update(ctx context.Context, rule *domain.DistributionRule) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rules[rule.RuleID] = rule
	return nil
}

func (m *MockDistributionRuleRepository) Delete(ctx context.Context, ruleID string) (bool, error) {
	if m.findErr != nil {
		return false, m.findErr
	}
	if _, ok := m.rules[ruleID]; !ok {
		return false, nil
	}
	delete(m.rules, ruleID)
	return true, nil
}

func (m *MockDistributionRuleRepository) AddRule(rule *domain.DistributionRule) {
	m.rules[rule.RuleID] = rule
}

func (m *MockDistributionRuleRepository) SetFindError(err error) {
	m.findErr = err
}

// MockShippingMethodRepository is a mock implementation of ShippingMethodRepository for testing
type MockShippingMethodRepository struct {
	methods map[string]*domain.ShippingMethod
	findErr error
}

func NewMockShippingMethodRepository() *MockShippingMethodRepository {
	return &MockShippingMethodRepository{
		methods: make(map[string]*domain.ShippingMethod),
	}
}

func (m *MockShippingMethodRepository) FindByID(ctx context.Context, shippingMethodID string) (*domain.ShippingMethod, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.methods[shippingMethodID], nil
}

func (m *MockShippingMethodRepository) AddMethod(method *domain.ShippingMethod) {
	m.methods[method.ShippingMethodID] = method
}

// MockFulfillmentRepository is a mock implementation of FulfillmentRepository for testing
type MockFulfillmentRepository struct {
	fulfillments map[string]*domain.OrderFulfillment
	saveErr      error
	findErr      error
}

func NewMockFulfillmentRepository() *MockFulfillmentRepository {
	return &MockFulfillmentRepository{
		fulfillments: make(map[string]*domain.OrderFulfillment),
	}
}

func (m *MockFulfillmentRepository) Save(ctx context.Context, fulfillment *domain.OrderFulfillment) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.fulfillments[fulfillment.FulfillmentID] = fulfillment
	fulfillment.ClearDomainEvents()
	return nil
}

func (m *MockFulfillmentRepository) FindByID(ctx context.Context, fulfillmentID string) (*domain.OrderFulfillment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.fulfillments[fulfillmentID], nil
}

func (m *MockFulfillmentRepository) FindByOrderID(ctx context.Context, orderID string) ([]*domain.OrderFulfillment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	var result []*domain.OrderFulfillment
	for _, f := range m.fulfillments {
		if f.OrderID == orderID {
			result = append(result, f)
		}
	}
	return result, nil
}

func (m *MockFulfillmentRepository) SetSaveError(err error) {
	m.saveErr = err
}
