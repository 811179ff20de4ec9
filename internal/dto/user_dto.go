package dto

import (
	"time"

	"memberbase/internal/entity"
)

type RegisterRequest struct {
	Username  *string    `json:"username" validate:"omitempty,min=3,max=255"`
	Email     string     `json:"email" validate:"required,email"`
	Password  string     `json:"password" validate:"required,min=8"`
	FirstName string     `json:"firstName" validate:"required"`
	LastName  string     `json:"lastName" validate:"required"`
	Document  *string    `json:"document" validate:"omitempty"`
	Mobile    *string    `json:"mobile" validate:"omitempty"`
	Phone     *string    `json:"phone" validate:"omitempty"`
	Gender    *string    `json:"gender" validate:"omitempty,oneof=male female unspecified"`
	Birth     *time.Time `json:"birth" validate:"omitempty"`
	Notes     *string    `json:"notes" validate:"omitempty"`
	Roles     []string   `json:"roles" validate:"omitempty"`
	Tags      []string   `json:"tags" validate:"omitempty"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateUserRequest is the statically declared allow-list for profile updates.
// Credentials, affiliate and role flags deliberately have no field here, so
// any such key in the request body is dropped during decoding.
type UpdateUserRequest struct {
	FirstName *string    `json:"firstName" validate:"omitempty,min=1"`
	LastName  *string    `json:"lastName" validate:"omitempty,min=1"`
	Document  *string    `json:"document" validate:"omitempty"`
	Mobile    *string    `json:"mobile" validate:"omitempty"`
	Phone     *string    `json:"phone" validate:"omitempty"`
	Gender    *string    `json:"gender" validate:"omitempty,oneof=male female unspecified"`
	Birth     *time.Time `json:"birth" validate:"omitempty"`
	Roles     *[]string  `json:"roles" validate:"omitempty"`
	Tags      *[]string  `json:"tags" validate:"omitempty"`
	Notes     *string    `json:"notes" validate:"omitempty"`
}

type SetStaffRequest struct {
	IsStaff *bool `json:"isStaff" validate:"required"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type UserResponse struct {
	ID        uint          `json:"id"`
	Username  *string       `json:"username"`
	Email     string        `json:"email"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Document  *string       `json:"document,omitempty"`
	Mobile    *string       `json:"mobile,omitempty"`
	Phone     *string       `json:"phone,omitempty"`
	Gender    entity.Gender `json:"gender"`
	Birth     *time.Time    `json:"birth,omitempty"`
	Notes     *string       `json:"notes,omitempty"`
	Roles     []string      `json:"roles"`
	Tags      []string      `json:"tags"`
	Affiliate string        `json:"affiliate"`
	Active    bool          `json:"active"`
	IsStaff   bool          `json:"isStaff"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// RegisterResponse echoes the fresh profile together with the first token.
type RegisterResponse struct {
	UserResponse
	Token string `json:"token"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Document:  user.Document,
		Mobile:    user.Mobile,
		Phone:     user.Phone,
		Gender:    user.Gender,
		Birth:     user.Birth,
		Notes:     user.Notes,
		Roles:     user.Roles,
		Tags:      user.Tags,
		Affiliate: user.Affiliate,
		Active:    user.Active,
		IsStaff:   user.IsStaff,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}
