package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Identity is the request-scoped authenticated identity attached by the auth
// guard. IsStaff is read fresh from the store on every request, never from the
// token payload.
type Identity struct {
	UserID  uint
	IsStaff bool
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash string, password string) bool
}

type TokenIssuer interface {
	Issue(userID uint) (string, time.Duration, error)
}

type EmailSender interface {
	SendWelcomeEmail(ctx context.Context, email string, firstName string, affiliate string) error
}

type BcryptPasswordHasher struct {
	Cost int
}

func (h BcryptPasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (h BcryptPasswordHasher) Verify(hash string, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
