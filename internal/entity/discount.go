package entity

import "time"

type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

type BaseCalculation string

const (
	BaseCalculationGross BaseCalculation = "gross"
	BaseCalculationNet   BaseCalculation = "net"
	BaseCalculationOther BaseCalculation = "other"
)

type Discount struct {
	ID          uint    `gorm:"primaryKey"`
	Title       string  `gorm:"type:varchar(255);not null"`
	Description *string `gorm:"type:text"`

	DiscountType DiscountType `gorm:"type:varchar(16);not null"`
	Value        float64      `gorm:"not null"`

	ApplicableTo *string `gorm:"type:varchar(255)"`
	StartDate    *time.Time
	EndDate      *time.Time
	Progressive  bool `gorm:"default:false"`
	MinValue     *float64
	MaxValue     *float64

	BaseCalculation BaseCalculation `gorm:"type:varchar(16);not null"`
	// Priority orders rule application when several discounts apply.
	Priority int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
