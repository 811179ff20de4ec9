package dto

import (
	"time"

	"memberbase/internal/entity"
)

// DiscountRequest serves both create and update; updates are a full-field
// replace, so the required set is identical.
type DiscountRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     *string    `json:"description" validate:"omitempty"`
	DiscountType    string     `json:"discountType" validate:"required,oneof=percent fixed"`
	Value           *float64   `json:"value" validate:"required"`
	ApplicableTo    *string    `json:"applicableTo" validate:"omitempty"`
	StartDate       *time.Time `json:"startDate" validate:"omitempty"`
	EndDate         *time.Time `json:"endDate" validate:"omitempty"`
	Progressive     *bool      `json:"progressive" validate:"omitempty"`
	MinValue        *float64   `json:"minValue" validate:"omitempty"`
	MaxValue        *float64   `json:"maxValue" validate:"omitempty"`
	BaseCalculation string     `json:"baseCalculation" validate:"required,oneof=gross net other"`
	Priority        *int       `json:"priority" validate:"required"`
}

type DiscountResponse struct {
	ID              uint                   `json:"id"`
	Title           string                 `json:"title"`
	Description     *string                `json:"description,omitempty"`
	DiscountType    entity.DiscountType    `json:"discountType"`
	Value           float64                `json:"value"`
	ApplicableTo    *string                `json:"applicableTo,omitempty"`
	StartDate       *time.Time             `json:"startDate,omitempty"`
	EndDate         *time.Time             `json:"endDate,omitempty"`
	Progressive     bool                   `json:"progressive"`
	MinValue        *float64               `json:"minValue,omitempty"`
	MaxValue        *float64               `json:"maxValue,omitempty"`
	BaseCalculation entity.BaseCalculation `json:"baseCalculation"`
	Priority        int                    `json:"priority"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

func DiscountResponseFromEntity(discount *entity.Discount) DiscountResponse {
	return DiscountResponse{
		ID:              discount.ID,
		Title:           discount.Title,
		Description:     discount.Description,
		DiscountType:    discount.DiscountType,
		Value:           discount.Value,
		ApplicableTo:    discount.ApplicableTo,
		StartDate:       discount.StartDate,
		EndDate:         discount.EndDate,
		Progressive:     discount.Progressive,
		MinValue:        discount.MinValue,
		MaxValue:        discount.MaxValue,
		BaseCalculation: discount.BaseCalculation,
		Priority:        discount.Priority,
		CreatedAt:       discount.CreatedAt,
		UpdatedAt:       discount.UpdatedAt,
	}
}

func DiscountResponsesFromEntities(discounts []entity.Discount) []DiscountResponse {
	responses := make([]DiscountResponse, 0, len(discounts))
	for i := range discounts {
		responses = append(responses, DiscountResponseFromEntity(&discounts[i]))
	}
	return responses
}
