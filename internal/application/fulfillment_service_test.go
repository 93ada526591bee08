package application

import (
	"context"
	"errors"
	"testing"

	"github.com/commerce-platform/distribution-service/internal/domain"
	"github.com/commerce-platform/distribution-service/pkg/logging"
	"github.com/commerce-platform/distribution-service/pkg/metrics"
)

type fulfillmentServiceMocks struct {
	fulfillments    *MockFulfillmentRepository
	warehouses      *MockWarehouseRepository
	shippingMethods *MockShippingMethodRepository
	rules           *MockDistributionRuleRepository
}

func createTestFulfillmentService() (*FulfillmentApplicationService, *fulfillmentServiceMocks) {
	mocks := &fulfillmentServiceMocks{
		fulfillments:    NewMockFulfillmentRepository(),
		warehouses:      NewMockWarehouseRepository(),
		shippingMethods: NewMockShippingMethodRepository(),
		rules:           NewMockDistributionRuleRepository(),
	}
	logger := logging.New(logging.DefaultConfig("test"))
	resolver := NewWarehouseResolver(mocks.warehouses, mocks.rules, logger)
	service := NewFulfillmentApplicationService(
		mocks.fulfillments,
		mocks.warehouses,
		mocks.shippingMethods,
		resolver,
		metrics.New(metrics.DefaultConfig("test")),
		logger,
	)
	return service, mocks
}

func testShipToUS() domain.ShipToAddress {
	return domain.ShipToAddress{
		Line1:      "1 Market St",
		City:       "San Francisco",
		State:      "CA",
		PostalCode: "94105",
		Country:    "US",
	}
}

func TestFulfillmentApplicationService_CreateFulfillment(t *testing.T) {
	t.Run("creates fulfillment with resolved warehouse", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W1", "US-EAST", "US"))

		dto, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID: "ORD-001",
			ShipTo:  testShipToUS(),
		})

		if err != nil {
			t.Fatalf("CreateFulfillment() error = %v", err)
		}
		if dto.WarehouseID != "W1" {
			t.Errorf("WarehouseID = %v, want W1", dto.WarehouseID)
		}
		if dto.WarehouseName != "Warehouse US-EAST" {
			t.Errorf("WarehouseName = %v, want Warehouse US-EAST", dto.WarehouseName)
		}
		if dto.Status != string(domain.FulfillmentStatusPending) {
			t.Errorf("Status = %v, want pending", dto.Status)
		}
		if dto.SelectionStage != StageRegionalAffinity {
			t.Errorf("SelectionStage = %v, want %v", dto.SelectionStage, StageRegionalAffinity)
		}
		if len(mocks.fulfillments.fulfillments) != 1 {
			t.Errorf("persisted fulfillments = %v, want 1", len(mocks.fulfillments.fulfillments))
		}
	})

	t.Run("explicit warehouse bypasses resolution", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W1", "US-EAST", "US"))
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W2", "DE-MAIN", "DE"))
		// A failing rule lookup would surface if resolution ran.
		mocks.rules.SetFindError(errors.New("connection refused"))

		dto, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID:     "ORD-001",
			WarehouseID: "W2",
			ShipTo:      testShipToUS(),
		})

		if err != nil {
			t.Fatalf("CreateFulfillment() error = %v", err)
		}
		if dto.WarehouseID != "W2" {
			t.Errorf("WarehouseID = %v, want W2", dto.WarehouseID)
		}
		if dto.SelectionStage != StageManualOverride {
			t.Errorf("SelectionStage = %v, want %v", dto.SelectionStage, StageManualOverride)
		}
	})

	t.Run("explicit warehouse must exist", func(t *testing.T) {
		service, _ := createTestFulfillmentService()

		_, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID:     "ORD-001",
			WarehouseID: "W-MISSING",
			ShipTo:      testShipToUS(),
		})

		if err == nil {
			t.Fatal("CreateFulfillment() should fail for unknown warehouse")
		}
	})

	t.Run("explicit warehouse must be an active fulfillment center", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		returnCenter := fulfillmentCenter("W1", "RET-1", "US")
		returnCenter.IsFulfillmentCenter = false
		mocks.warehouses.AddWarehouse(returnCenter)

		_, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID:     "ORD-001",
			WarehouseID: "W1",
			ShipTo:      testShipToUS(),
		})

		if err == nil {
			t.Fatal("CreateFulfillment() should fail for non-fulfillment warehouse")
		}
	})

	t.Run("rejects unknown shipping method", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W1", "US-EAST", "US"))

		_, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID:          "ORD-001",
			ShippingMethodID: "SM-MISSING",
			ShipTo:           testShipToUS(),
		})

		if err == nil {
			t.Fatal("CreateFulfillment() should fail for unknown shipping method")
		}
		if len(mocks.fulfillments.fulfillments) != 0 {
			t.Errorf("persisted fulfillments = %v, want 0", len(mocks.fulfillments.fulfillments))
		}
	})

	t.Run("rejects inactive shipping method", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W1", "US-EAST", "US"))
		mocks.shippingMethods.AddMethod(&domain.ShippingMethod{
			ShippingMethodID: "SM-EXPRESS",
			Code:             "EXPRESS",
			IsActive:         false,
		})

		_, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID:          "ORD-001",
			ShippingMethodID: "SM-EXPRESS",
			ShipTo:           testShipToUS(),
		})

		if err == nil {
			t.Fatal("CreateFulfillment() should fail for inactive shipping method")
		}
	})

	t.Run("propagates resolution failure without persisting", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()

		_, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID: "ORD-001",
			ShipTo:  testShipToUS(),
		})

		if err == nil {
			t.Fatal("CreateFulfillment() should fail without fulfillment centers")
		}
		if len(mocks.fulfillments.fulfillments) != 0 {
			t.Errorf("persisted fulfillments = %v, want 0", len(mocks.fulfillments.fulfillments))
		}
	})

	t.Run("returns error when save fails", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W1", "US-EAST", "US"))
		mocks.fulfillments.SetSaveError(errors.New("database error"))

		_, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID: "ORD-001",
			ShipTo:  testShipToUS(),
		})

		if err == nil {
			t.Fatal("CreateFulfillment() should fail when save fails")
		}
	})
}

func TestFulfillmentApplicationService_ResolveWarehouse(t *testing.T) {
	t.Run("returns resolution details", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		mocks.warehouses.AddWarehouse(withCoords(fulfillmentCenter("W1", "SFO-1", "US"), 37.74, -122.42))
		mocks.warehouses.AddWarehouse(withCoords(fulfillmentCenter("W2", "LAX-1", "US"), 34.0522, -118.2437))

		dto, err := service.ResolveWarehouse(context.Background(), ResolveWarehouseCommand{
			Request: domain.FulfillmentRequest{
				Destination: domain.Destination{
					Country:  "US",
					Latitude: f64(37.7749), Longitude: f64(-122.4194),
				},
			},
		})

		if err != nil {
			t.Fatalf("ResolveWarehouse() error = %v", err)
		}
		if dto.WarehouseID != "W1" {
			t.Errorf("WarehouseID = %v, want W1", dto.WarehouseID)
		}
		if dto.Stage != StageGeoProximity {
			t.Errorf("Stage = %v, want %v", dto.Stage, StageGeoProximity)
		}
		if len(dto.Alternatives) != 1 {
			t.Errorf("Alternatives length = %v, want 1", len(dto.Alternatives))
		}
	})

	t.Run("validates shipping method before resolving", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W1", "US-EAST", "US"))

		_, err := service.ResolveWarehouse(context.Background(), ResolveWarehouseCommand{
			Request: domain.FulfillmentRequest{
				Destination:      domain.Destination{Country: "US"},
				ShippingMethodID: "SM-MISSING",
			},
		})

		if err == nil {
			t.Fatal("ResolveWarehouse() should fail for unknown shipping method")
		}
	})
}

func TestFulfillmentApplicationService_ChangeFulfillmentStatus(t *testing.T) {
	createPending := func(service *FulfillmentApplicationService, mocks *fulfillmentServiceMocks) string {
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W1", "US-EAST", "US"))
		dto, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID: "ORD-001",
			ShipTo:  testShipToUS(),
		})
		if err != nil {
			panic(err)
		}
		return dto.FulfillmentID
	}

	t.Run("applies a valid transition", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		id := createPending(service, mocks)

		dto, err := service.ChangeFulfillmentStatus(context.Background(), ChangeFulfillmentStatusCommand{
			FulfillmentID: id,
			NewStatus:     "processing",
		})

		if err != nil {
			t.Fatalf("ChangeFulfillmentStatus() error = %v", err)
		}
		if dto.Status != "processing" {
			t.Errorf("Status = %v, want processing", dto.Status)
		}
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		id := createPending(service, mocks)

		_, err := service.ChangeFulfillmentStatus(context.Background(), ChangeFulfillmentStatusCommand{
			FulfillmentID: id,
			NewStatus:     "teleported",
		})

		if err == nil {
			t.Fatal("ChangeFulfillmentStatus() should fail for unknown status")
		}
	})

	t.Run("rejects an invalid transition", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		id := createPending(service, mocks)

		_, err := service.ChangeFulfillmentStatus(context.Background(), ChangeFulfillmentStatusCommand{
			FulfillmentID: id,
			NewStatus:     "delivered",
		})

		if err == nil {
			t.Fatal("ChangeFulfillmentStatus() should fail for pending -> delivered")
		}
	})

	t.Run("fails for unknown fulfillment", func(t *testing.T) {
		service, _ := createTestFulfillmentService()

		_, err := service.ChangeFulfillmentStatus(context.Background(), ChangeFulfillmentStatusCommand{
			FulfillmentID: "missing",
			NewStatus:     "processing",
		})

		if err == nil {
			t.Fatal("ChangeFulfillmentStatus() should fail for unknown fulfillment")
		}
	})
}

func TestFulfillmentApplicationService_GetFulfillment(t *testing.T) {
	t.Run("returns fulfillment when found", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W1", "US-EAST", "US"))
		created, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
			OrderID: "ORD-001",
			ShipTo:  testShipToUS(),
		})
		if err != nil {
			t.Fatalf("CreateFulfillment() error = %v", err)
		}

		dto, err := service.GetFulfillment(context.Background(), GetFulfillmentQuery{
			FulfillmentID: created.FulfillmentID,
		})

		if err != nil {
			t.Fatalf("GetFulfillment() error = %v", err)
		}
		if dto.OrderID != "ORD-001" {
			t.Errorf("OrderID = %v, want ORD-001", dto.OrderID)
		}
	})

	t.Run("fails when not found", func(t *testing.T) {
		service, _ := createTestFulfillmentService()

		_, err := service.GetFulfillment(context.Background(), GetFulfillmentQuery{
			FulfillmentID: "missing",
		})

		if err == nil {
			t.Fatal("GetFulfillment() should fail for unknown fulfillment")
		}
	})
}

func TestFulfillmentApplicationService_GetFulfillmentsByOrder(t *testing.T) {
	t.Run("returns all fulfillments for an order", func(t *testing.T) {
		service, mocks := createTestFulfillmentService()
		mocks.warehouses.AddWarehouse(fulfillmentCenter("W1", "US-EAST", "US"))
		for i := 0; i < 2; i++ {
			if _, err := service.CreateFulfillment(context.Background(), CreateFulfillmentCommand{
				OrderID: "ORD-001",
				ShipTo:  testShipToUS(),
			}); err != nil {
				t.Fatalf("CreateFulfillment() error = %v", err)
			}
		}

		dtos, err := service.GetFulfillmentsByOrder(context.Background(), GetFulfillmentsByOrderQuery{
			OrderID: "ORD-001",
		})

		if err != nil {
			t.Fatalf("GetFulfillmentsByOrder() error = %v", err)
		}
		if len(dtos) != 2 {
			t.Errorf("fulfillments length = %v, want 2", len(dtos))
		}
	})

	t.Run("returns empty slice for unknown order", func(t *testing.T) {
		service, _ := createTestFulfillmentService()

		dtos, err := service.GetFulfillmentsByOrder(context.Background(), GetFulfillmentsByOrderQuery{
			OrderID: "missing",
		})

		if err != nil {
			t.Fatalf("GetFulfillmentsByOrder() error = %v", err)
		}
		if len(dtos) != 0 {
			t.Errorf("fulfillments length = %v, want 0", len(dtos))
		}
	})
}
