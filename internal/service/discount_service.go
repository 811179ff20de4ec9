package service

import (
	"context"
	"strings"
	"time"

	"memberbase/internal/entity"
	"memberbase/internal/repository"
)

type DiscountInput struct {
	Title           string
	Description     *string
	DiscountType    entity.DiscountType
	Value           float64
	ApplicableTo    *string
	StartDate       *time.Time
	EndDate         *time.Time
	Progressive     bool
	MinValue        *float64
	MaxValue        *float64
	BaseCalculation entity.BaseCalculation
	Priority        int
}

// DiscountService is plain staff-only CRUD. No stacking or conflict-resolution
// rule exists; priority only orders listings.
type DiscountService struct {
	discounts repository.DiscountRepository
}

func NewDiscountService(discounts repository.DiscountRepository) *DiscountService {
	return &DiscountService{discounts: discounts}
}

func (s *DiscountService) Create(ctx context.Context, actor Identity, input DiscountInput) (*entity.Discount, error) {
	if !actor.IsStaff {
		return nil, ErrAccessDenied
	}
	if strings.TrimSpace(input.Title) == "" || input.DiscountType == "" || input.BaseCalculation == "" {
		return nil, ErrInvalidInput
	}

	discount := &entity.Discount{
		Title:           input.Title,
		Description:     input.Description,
		DiscountType:    input.DiscountType,
		Value:           input.Value,
		ApplicableTo:    input.ApplicableTo,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Progressive:     input.Progressive,
		MinValue:        input.MinValue,
		MaxValue:        input.MaxValue,
		BaseCalculation: input.BaseCalculation,
		Priority:        input.Priority,
	}
	if err := s.discounts.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *DiscountService) List(ctx context.Context, actor Identity, limit, page int) ([]entity.Discount, int64, error) {
	if !actor.IsStaff {
		return nil, 0, ErrAccessDenied
	}
	limit, offset := normalizePage(limit, page)
	return s.discounts.List(ctx, limit, offset)
}

// Update is a full replace of the discount attributes, not a partial patch.
func (s *DiscountService) Update(ctx context.Context, actor Identity, id uint, input DiscountInput) (*entity.Discount, error) {
	if !actor.IsStaff {
		return nil, ErrAccessDenied
	}
	if strings.TrimSpace(input.Title) == "" || input.DiscountType == "" || input.BaseCalculation == "" {
		return nil, ErrInvalidInput
	}

	discount, err := s.discounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, ErrDiscountNotFound
	}

	discount.Title = input.Title
	discount.Description = input.Description
	discount.DiscountType = input.DiscountType
	discount.Value = input.Value
	discount.ApplicableTo = input.ApplicableTo
	discount.StartDate = input.StartDate
	discount.EndDate = input.EndDate
	discount.Progressive = input.Progressive
	discount.MinValue = input.MinValue
	discount.MaxValue = input.MaxValue
	discount.BaseCalculation = input.BaseCalculation
	discount.Priority = input.Priority

	if err := s.discounts.Save(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *DiscountService) Delete(ctx context.Context, actor Identity, id uint) error {
	if !actor.IsStaff {
		return ErrAccessDenied
	}
	discount, err := s.discounts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if discount == nil {
		return ErrDiscountNotFound
	}
	return s.discounts.Delete(ctx, discount.ID)
}
