package service

import (
	"context"
	"testing"

	"memberbase/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discountFixture(title string, priority int) DiscountInput {
	return DiscountInput{
		Title:           title,
		DiscountType:    entity.DiscountTypePercent,
		Value:           10,
		BaseCalculation: entity.BaseCalculationGross,
		Priority:        priority,
	}
}

func TestDiscountOperationsAreStaffOnly(t *testing.T) {
	svc := NewDiscountService(newMockDiscountRepo())
	member := Identity{UserID: 1}

	_, err := svc.Create(context.Background(), member, discountFixture("spring", 1))
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, _, err = svc.List(context.Background(), member, 10, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Update(context.Background(), member, 1, discountFixture("spring", 1))
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Delete(context.Background(), member, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreateDiscountValidatesRequiredFields(t *testing.T) {
	svc := NewDiscountService(newMockDiscountRepo())
	staff := Identity{UserID: 1, IsStaff: true}

	input := discountFixture("spring", 1)
	input.Title = "  "
	_, err := svc.Create(context.Background(), staff, input)
	assert.ErrorIs(t, err, ErrInvalidInput)

	input = discountFixture("spring", 1)
	input.DiscountType = ""
	_, err = svc.Create(context.Background(), staff, input)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDiscountCRUD(t *testing.T) {
	svc := NewDiscountService(newMockDiscountRepo())
	staff := Identity{UserID: 1, IsStaff: true}

	created, err := svc.Create(context.Background(), staff, discountFixture("spring", 5))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	update := discountFixture("summer", 9)
	update.DiscountType = entity.DiscountTypeFixed
	updated, err := svc.Update(context.Background(), staff, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "summer", updated.Title)
	assert.Equal(t, entity.DiscountTypeFixed, updated.DiscountType)
	assert.Equal(t, 9, updated.Priority)

	require.NoError(t, svc.Delete(context.Background(), staff, created.ID))

	_, err = svc.Update(context.Background(), staff, created.ID, update)
	assert.ErrorIs(t, err, ErrDiscountNotFound)

	err = svc.Delete(context.Background(), staff, created.ID)
	assert.ErrorIs(t, err, ErrDiscountNotFound)
}

func TestListDiscountsOrdersByPriority(t *testing.T) {
	svc := NewDiscountService(newMockDiscountRepo())
	staff := Identity{UserID: 1, IsStaff: true}

	_, err := svc.Create(context.Background(), staff, discountFixture("low", 1))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), staff, discountFixture("high", 10))
	require.NoError(t, err)

	discounts, count, err := svc.List(context.Background(), staff, 10, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	require.Len(t, discounts, 2)
	assert.Equal(t, "high", discounts[0].Title)
	assert.Equal(t, "low", discounts[1].Title)
}
