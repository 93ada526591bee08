package application

import "github.com/commerce-platform/distribution-service/internal/domain"

// ToOrderFulfillmentDTO converts a domain OrderFulfillment to OrderFulfillmentDTO
func ToOrderFulfillmentDTO(f *domain.OrderFulfillment) *OrderFulfillmentDTO {
	if f == nil {
		return nil
	}

	return &OrderFulfillmentDTO{
		FulfillmentID:       f.FulfillmentID,
		OrderID:             f.OrderID,
		OrderNumber:         f.OrderNumber,
		WarehouseID:         f.WarehouseID,
		WarehouseCode:       f.WarehouseCode,
		WarehouseName:       f.WarehouseName,
		ShippingMethodID:    f.ShippingMethodID,
		Status:              string(f.Status),
		ShipTo:              ToShipToAddressDTO(f.ShipTo),
		SelectionStage:      f.SelectionStage,
		EstimatedDeliveryAt: f.EstimatedDeliveryAt,
		CustomerNotes:       f.CustomerNotes,
		CreatedBy:           f.CreatedBy,
		CreatedAt:           f.CreatedAt,
		UpdatedAt:           f.UpdatedAt,
	}
}

// ToOrderFulfillmentDTOs converts a slice of domain OrderFulfillments to DTOs
func ToOrderFulfillmentDTOs(fulfillments []*domain.OrderFulfillment) []OrderFulfillmentDTO {
	dtos := make([]OrderFulfillmentDTO, 0, len(fulfillments))
	for _, f := range fulfillments {
		if dto := ToOrderFulfillmentDTO(f); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}

// ToShipToAddressDTO converts a domain ShipToAddress to ShipToAddressDTO
func ToShipToAddressDTO(addr domain.ShipToAddress) ShipToAddressDTO {
	return ShipToAddressDTO{
		Line1:      addr.Line1,
		Line2:      addr.Line2,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
		Latitude:   addr.Latitude,
		Longitude:  addr.Longitude,
	}
}

// ToResolutionResultDTO converts a ResolutionResult to ResolutionResultDTO
func ToResolutionResultDTO(result *ResolutionResult) *ResolutionResultDTO {
	if result == nil || result.Warehouse == nil {
		return nil
	}

	var alternatives []WarehouseAlternativeDTO
	for _, alt := range result.Alternatives {
		alternatives = append(alternatives, WarehouseAlternativeDTO{
			WarehouseID:   alt.Warehouse.WarehouseID,
			WarehouseCode: alt.Warehouse.Code,
			WarehouseName: alt.Warehouse.Name,
			DistanceKm:    alt.DistanceKm,
		})
	}

	return &ResolutionResultDTO{
		WarehouseID:     result.Warehouse.WarehouseID,
		WarehouseCode:   result.Warehouse.Code,
		WarehouseName:   result.Warehouse.Name,
		Stage:           result.Stage,
		ProcessingHours: result.Warehouse.ProcessingHours(),
		DistanceKm:      result.DistanceKm,
		Alternatives:    alternatives,
		CanFulfillNow:   result.CanFulfillNow,
	}
}

// ToDistributionRuleDTO converts a domain DistributionRule to DistributionRuleDTO
func ToDistributionRuleDTO(rule *domain.DistributionRule) *DistributionRuleDTO {
	if rule == nil {
		return nil
	}

	return &DistributionRuleDTO{
		RuleID:              rule.RuleID,
		Name:                rule.Name,
		Priority:            rule.Priority,
		WarehouseID:         rule.WarehouseID,
		ApplicableCountries: rule.ApplicableCountries,
		ApplicableRegions:   rule.ApplicableRegions,
		PostalCodePatterns:  rule.ApplicablePostalCodes,
		ShippingMethodID:    rule.ShippingMethodID,
		IsActive:            rule.IsActive,
		IsDefault:           rule.IsDefault,
		CreatedAt:           rule.CreatedAt,
		UpdatedAt:           rule.UpdatedAt,
	}
}

// ToDistributionRuleDTOs converts a slice of domain DistributionRules to DTOs
func ToDistributionRuleDTOs(rules []*domain.DistributionRule) []DistributionRuleDTO {
	dtos := make([]DistributionRuleDTO, 0, len(rules))
	for _, rule := range rules {
		if dto := ToDistributionRuleDTO(rule); dto != nil {
			dtos = append(dtos, *dto)
		}
	}
	return dtos
}
