package service

import (
	"time"

	"memberbase/internal/entity"
)

type RegisterInput struct {
	Username  *string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Document  *string
	Mobile    *string
	Phone     *string
	Gender    *entity.Gender
	Birth     *time.Time
	Notes     *string
	Roles     []string
	Tags      []string
}

type LoginInput struct {
	Identifier string
	Password   string
	IPAddress  *string
}

// UpdateProfileInput is the complete set of fields a profile update may touch.
// Identity, credentials, the affiliate code and the role flags have no field
// here, so they cannot be mutated through this path.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Document  *string
	Mobile    *string
	Phone     *string
	Gender    *entity.Gender
	Birth     *time.Time
	Roles     *[]string
	Tags      *[]string
	Notes     *string
}
