package application

import (
	"context"
	goerrors "errors"
	"fmt"

	"github.com/commerce-platform/distribution-service/pkg/errors"
	"github.com/commerce-platform/distribution-service/pkg/logging"
	"github.com/commerce-platform/distribution-service/pkg/metrics"

	"github.com/commerce-platform/distribution-service/internal/domain"
)

// FulfillmentApplicationService handles fulfillment-related use cases
type FulfillmentApplicationService struct {
	fulfillments    domain.FulfillmentRepository
	warehouses      domain.WarehouseRepository
	shippingMethods domain.ShippingMethodRepository
	resolver        *WarehouseResolver
	metrics         *metrics.Metrics
	logger          *logging.Logger
}

// NewFulfillmentApplicationService creates a new FulfillmentApplicationService
func NewFulfillmentApplicationService(
	fulfillments domain.FulfillmentRepository,
	warehouses domain.WarehouseRepository,
	shippingMethods domain.ShippingMethodRepository,
	resolver *WarehouseResolver,
	m *metrics.Metrics,
	logger *logging.Logger,
) *FulfillmentApplicationService {
	return &FulfillmentApplicationService{
		fulfillments:    fulfillments,
		warehouses:      warehouses,
		shippingMethods: shippingMethods,
		resolver:        resolver,
		metrics:         m,
		logger:          logger,
	}
}

// CreateFulfillment creates a new order fulfillment, selecting a warehouse
// through resolution unless the command names one explicitly
func (s *FulfillmentApplicationService) CreateFulfillment(ctx context.Context, cmd CreateFulfillmentCommand) (*OrderFulfillmentDTO, error) {
	if cmd.ShippingMethodID != "" {
		if err := s.validateShippingMethod(ctx, cmd.ShippingMethodID); err != nil {
			return nil, err
		}
	}

	warehouse, stage, err := s.selectWarehouse(ctx, cmd)
	if err != nil {
		return nil, err
	}

	fulfillment, err := domain.NewOrderFulfillment(cmd.OrderID, warehouse.WarehouseID, cmd.ShipTo)
	if err != nil {
		return nil, errors.ErrValidation(err.Error())
	}
	fulfillment.OrderNumber = cmd.OrderNumber
	fulfillment.WarehouseCode = warehouse.Code
	fulfillment.WarehouseName = warehouse.Name
	fulfillment.ShippingMethodID = cmd.ShippingMethodID
	fulfillment.SelectionStage = stage
	fulfillment.EstimatedDeliveryAt = cmd.EstimatedDeliveryAt
	fulfillment.CustomerNotes = cmd.CustomerNotes
	fulfillment.CreatedBy = cmd.CreatedBy

	if err := s.fulfillments.Save(ctx, fulfillment); err != nil {
		s.logger.WithError(err).Error("Failed to save fulfillment",
			"fulfillmentId", fulfillment.FulfillmentID,
			"orderId", cmd.OrderID,
		)
		return nil, fmt.Errorf("failed to create fulfillment record: %w", err)
	}

	// Events are saved to outbox by repository in transaction

	s.metrics.RecordFulfillmentCreated(warehouse.Code)

	s.logger.LogBusinessEvent(ctx, logging.BusinessEvent{
		EventType:  "fulfillment.created",
		EntityType: "fulfillment",
		EntityID:   fulfillment.FulfillmentID,
		Action:     "created",
		RelatedIDs: map[string]string{
			"orderId":     cmd.OrderID,
			"warehouseId": warehouse.WarehouseID,
			"stage":       stage,
		},
	})

	return ToOrderFulfillmentDTO(fulfillment), nil
}

// selectWarehouse determines the fulfillment warehouse for the command.
// An explicit warehouse ID bypasses resolution and is only checked for
// being an active fulfillment center.
func (s *FulfillmentApplicationService) selectWarehouse(ctx context.Context, cmd CreateFulfillmentCommand) (*domain.Warehouse, string, error) {
	if cmd.WarehouseID != "" {
		warehouse, err := s.warehouses.FindByID(ctx, cmd.WarehouseID)
		if err != nil {
			s.logger.WithError(err).Error("Failed to look up warehouse", "warehouseId", cmd.WarehouseID)
			return nil, "", fmt.Errorf("failed to look up warehouse: %w", err)
		}
		if warehouse == nil {
			return nil, "", errors.ErrNotFound("warehouse")
		}
		if !warehouse.IsActive || !warehouse.IsFulfillmentCenter {
			return nil, "", errors.ErrUnprocessable(domain.ErrWarehouseNotAvailable.Error())
		}
		return warehouse, StageManualOverride, nil
	}

	result, err := s.resolve(ctx, domain.FulfillmentRequest{
		Destination: domain.Destination{
			Country:    cmd.ShipTo.Country,
			State:      cmd.ShipTo.State,
			PostalCode: cmd.ShipTo.PostalCode,
			Latitude:   cmd.ShipTo.Latitude,
			Longitude:  cmd.ShipTo.Longitude,
		},
		ShippingMethodID:     cmd.ShippingMethodID,
		PreferredWarehouseID: cmd.PreferredWarehouseID,
	})
	if err != nil {
		return nil, "", err
	}
	return result.Warehouse, result.Stage, nil
}

// ResolveWarehouse selects a warehouse for a destination without creating
// a fulfillment
func (s *FulfillmentApplicationService) ResolveWarehouse(ctx context.Context, cmd ResolveWarehouseCommand) (*ResolutionResultDTO, error) {
	if cmd.Request.ShippingMethodID != "" {
		if err := s.validateShippingMethod(ctx, cmd.Request.ShippingMethodID); err != nil {
			return nil, err
		}
	}

	result, err := s.resolve(ctx, cmd.Request)
	if err != nil {
		return nil, err
	}
	return ToResolutionResultDTO(result), nil
}

func (s *FulfillmentApplicationService) resolve(ctx context.Context, req domain.FulfillmentRequest) (*ResolutionResult, error) {
	result, err := s.resolver.Resolve(ctx, req)
	if err != nil {
		s.metrics.RecordResolutionFailure()
		if goerrors.Is(err, domain.ErrNoFulfillmentCenters) {
			return nil, errors.ErrUnprocessable(err.Error())
		}
		s.logger.WithError(err).Error("Warehouse resolution failed",
			"destinationCountry", req.Destination.Country,
		)
		return nil, fmt.Errorf("failed to resolve warehouse: %w", err)
	}

	s.metrics.RecordResolutionStage(result.Stage)
	return result, nil
}

func (s *FulfillmentApplicationService) validateShippingMethod(ctx context.Context, shippingMethodID string) error {
	method, err := s.shippingMethods.FindByID(ctx, shippingMethodID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to look up shipping method", "shippingMethodId", shippingMethodID)
		return fmt.Errorf("failed to look up shipping method: %w", err)
	}
	if method == nil {
		return errors.ErrNotFound("shipping method")
	}
	if !method.IsActive {
		return errors.ErrValidation(domain.ErrShippingMethodInactive.Error())
	}
	return nil
}

// GetFulfillment retrieves a fulfillment by ID
func (s *FulfillmentApplicationService) GetFulfillment(ctx context.Context, query GetFulfillmentQuery) (*OrderFulfillmentDTO, error) {
	fulfillment, err := s.fulfillments.FindByID(ctx, query.FulfillmentID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get fulfillment", "fulfillmentId", query.FulfillmentID)
		return nil, fmt.Errorf("failed to get fulfillment: %w", err)
	}

	if fulfillment == nil {
		return nil, errors.ErrNotFound("fulfillment")
	}

	return ToOrderFulfillmentDTO(fulfillment), nil
}

// GetFulfillmentsByOrder retrieves all fulfillments for an order
func (s *FulfillmentApplicationService) GetFulfillmentsByOrder(ctx context.Context, query GetFulfillmentsByOrderQuery) ([]OrderFulfillmentDTO, error) {
	fulfillments, err := s.fulfillments.FindByOrderID(ctx, query.OrderID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get fulfillments", "orderId", query.OrderID)
		return nil, fmt.Errorf("failed to get fulfillments: %w", err)
	}

	return ToOrderFulfillmentDTOs(fulfillments), nil
}

// ChangeFulfillmentStatus transitions a fulfillment to a new status
func (s *FulfillmentApplicationService) ChangeFulfillmentStatus(ctx context.Context, cmd ChangeFulfillmentStatusCommand) (*OrderFulfillmentDTO, error) {
	if !domain.IsValidFulfillmentStatus(cmd.NewStatus) {
		return nil, errors.ErrValidation(fmt.Sprintf("invalid fulfillment status: %s", cmd.NewStatus))
	}

	fulfillment, err := s.fulfillments.FindByID(ctx, cmd.FulfillmentID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get fulfillment", "fulfillmentId", cmd.FulfillmentID)
		return nil, fmt.Errorf("failed to get fulfillment: %w", err)
	}

	if fulfillment == nil {
		return nil, errors.ErrNotFound("fulfillment")
	}

	if err := fulfillment.ChangeStatus(domain.FulfillmentStatus(cmd.NewStatus)); err != nil {
		return nil, errors.ErrValidation(err.Error())
	}

	if err := s.fulfillments.Save(ctx, fulfillment); err != nil {
		s.logger.WithError(err).Error("Failed to save fulfillment", "fulfillmentId", cmd.FulfillmentID)
		return nil, fmt.Errorf("failed to save fulfillment: %w", err)
	}

	s.logger.Info("Fulfillment status changed",
		"fulfillmentId", cmd.FulfillmentID,
		"newStatus", cmd.NewStatus,
	)

	return ToOrderFulfillmentDTO(fulfillment), nil
}
