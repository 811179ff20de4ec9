package entity

import (
	"time"

	"gorm.io/datatypes"
)

type Gender string

const (
	GenderMale        Gender = "male"
	GenderFemale      Gender = "female"
	GenderUnspecified Gender = "unspecified"
)

type User struct {
	ID       uint    `gorm:"primaryKey"`
	Username *string `gorm:"type:varchar(255);uniqueIndex"`
	Email    string  `gorm:"type:varchar(255);uniqueIndex;not null"`
	// PasswordHash holds the bcrypt hash; the plaintext is never stored.
	PasswordHash string `gorm:"type:text;not null"`

	FirstName string  `gorm:"type:varchar(255);not null"`
	LastName  string  `gorm:"type:varchar(255);not null"`
	Document  *string `gorm:"type:varchar(64)"`
	Mobile    *string `gorm:"type:varchar(32)"`
	Phone     *string `gorm:"type:varchar(32)"`
	Gender    Gender  `gorm:"type:varchar(16);default:'unspecified'"`
	Birth     *time.Time
	Notes     *string                     `gorm:"type:text"`
	Roles     datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Tags      datatypes.JSONSlice[string] `gorm:"type:jsonb"`

	// Affiliate is derived from the id at creation and never changes.
	Affiliate string `gorm:"type:varchar(32)"`

	Active  bool `gorm:"default:true"`
	IsStaff bool `gorm:"default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
