package repository

import (
	"context"
	"errors"

	"memberbase/internal/entity"

	"gorm.io/gorm"
)

type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	Save(ctx context.Context, discount *entity.Discount) error
	FindByID(ctx context.Context, id uint) (*entity.Discount, error)
	List(ctx context.Context, limit, offset int) ([]entity.Discount, int64, error)
	Delete(ctx context.Context, id uint) error
}

type discountRepository struct {
	db *gorm.DB
}

func NewDiscountRepository(db *gorm.DB) DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Create(discount).Error
}

func (r *discountRepository) Save(ctx context.Context, discount *entity.Discount) error {
	return r.db.WithContext(ctx).Save(discount).Error
}

func (r *discountRepository) FindByID(ctx context.Context, id uint) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.db.WithContext(ctx).First(&discount, id).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) List(ctx context.Context, limit, offset int) ([]entity.Discount, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Discount{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var discounts []entity.Discount
	query := r.db.WithContext(ctx).Order("priority DESC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&discounts).Error; err != nil {
		return nil, 0, err
	}
	return discounts, count, nil
}

func (r *discountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Discount{}, id).Error
}
