package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"memberbase/internal/entity"
	"memberbase/internal/repository"
	"memberbase/internal/utils"

	"gorm.io/datatypes"
)

const dummyPasswordHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type UserConfig struct {
	AffiliatePrefix string
}

type UserService struct {
	users  repository.UserRepository
	audits repository.AuditLogRepository

	emailSender  EmailSender
	passwordHash PasswordHasher
	tokens       TokenIssuer
	config       UserConfig
}

func NewUserService(
	users repository.UserRepository,
	audits repository.AuditLogRepository,
	emailSender EmailSender,
	passwordHash PasswordHasher,
	tokens TokenIssuer,
	config UserConfig,
) *UserService {
	return &UserService{
		users:        users,
		audits:       audits,
		emailSender:  emailSender,
		passwordHash: passwordHash,
		tokens:       tokens,
		config:       config,
	}
}

// Register creates the user with a hashed password, derives the affiliate code
// once the id is known and issues the first token.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*entity.User, string, error) {
	if strings.TrimSpace(input.Email) == "" || strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, "", ErrInvalidInput
	}

	hash, err := s.passwordHash.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	gender := entity.GenderUnspecified
	if input.Gender != nil {
		gender = *input.Gender
	}

	user := &entity.User{
		Username:     input.Username,
		Email:        utils.NormalizeEmail(input.Email),
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Document:     input.Document,
		Mobile:       input.Mobile,
		Phone:        input.Phone,
		Gender:       gender,
		Birth:        input.Birth,
		Notes:        input.Notes,
		Roles:        input.Roles,
		Tags:         input.Tags,
		Active:       true,
		IsStaff:      false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, "", ErrDuplicateIdentity
		}
		return nil, "", err
	}

	// The affiliate code needs the generated id, so it lands in a second
	// write. If that write fails, the fresh row is removed rather than left
	// behind without a code; the caller just retries registration.
	user.Affiliate = utils.AffiliateCode(s.config.AffiliatePrefix, user.ID)
	if err := s.users.Save(ctx, user); err != nil {
		_ = s.users.Delete(ctx, user.ID)
		return nil, "", err
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	if s.emailSender != nil {
		_ = s.emailSender.SendWelcomeEmail(ctx, user.Email, user.FirstName, user.Affiliate)
	}
	return user, token, nil
}

// Login resolves the identifier against username or email. An unknown
// identifier, an inactive account and a wrong password all fail with the same
// ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, input LoginInput) (string, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || input.Password == "" {
		return "", ErrInvalidInput
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return "", err
	}
	if user == nil || !user.Active {
		_ = s.passwordHash.Verify(dummyPasswordHash, input.Password)
		_ = s.audit(ctx, nil, input.IPAddress, entity.AuditLoginFailed, map[string]any{"identifier": identifier})
		return "", ErrInvalidCredentials
	}

	if !s.passwordHash.Verify(user.PasswordHash, input.Password) {
		_ = s.audit(ctx, &user.ID, input.IPAddress, entity.AuditLoginFailed, nil)
		return "", ErrInvalidCredentials
	}

	token, _, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", err
	}
	_ = s.audit(ctx, &user.ID, input.IPAddress, entity.AuditLoginSuccess, nil)
	return token, nil
}

// RefreshToken issues a new token with a fresh expiry for an already
// authenticated user. The old token stays valid for its own lifetime.
func (s *UserService) RefreshToken(ctx context.Context, userID uint) (string, error) {
	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	token, _, err := s.tokens.Issue(user.ID)
	return token, err
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := s.users.FindActiveByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, actor Identity, limit, page int) ([]entity.User, int64, error) {
	if !actor.IsStaff {
		return nil, 0, ErrAccessDenied
	}
	limit, offset := normalizePage(limit, page)
	return s.users.List(ctx, limit, offset)
}

// UpdateProfile applies a partial update of the allow-listed fields only.
// Allowed for the profile owner or any staff member.
func (s *UserService) UpdateProfile(ctx context.Context, actor Identity, targetID uint, input UpdateProfileInput) (*entity.User, error) {
	if !actor.IsStaff && actor.UserID != targetID {
		return nil, ErrAccessDenied
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Document != nil {
		user.Document = input.Document
	}
	if input.Mobile != nil {
		user.Mobile = input.Mobile
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Gender != nil {
		user.Gender = *input.Gender
	}
	if input.Birth != nil {
		user.Birth = input.Birth
	}
	if input.Roles != nil {
		user.Roles = *input.Roles
	}
	if input.Tags != nil {
		user.Tags = *input.Tags
	}
	if input.Notes != nil {
		user.Notes = input.Notes
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetStaff(ctx context.Context, actor Identity, targetID uint, isStaff bool) (*entity.User, error) {
	if !actor.IsStaff {
		return nil, ErrAccessDenied
	}
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.IsStaff = isStaff
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	_ = s.audit(ctx, &actor.UserID, nil, entity.AuditStaffToggled, map[string]any{"target": targetID, "is_staff": isStaff})
	return user, nil
}

func (s *UserService) SetActive(ctx context.Context, actor Identity, targetID uint, active bool) (*entity.User, error) {
	if !actor.IsStaff {
		return nil, ErrAccessDenied
	}
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	user.Active = active
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	_ = s.audit(ctx, &actor.UserID, nil, entity.AuditActivationToggled, map[string]any{"target": targetID, "active": active})
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, actor Identity, targetID uint, newPassword string) error {
	if !actor.IsStaff {
		return ErrAccessDenied
	}
	if strings.TrimSpace(newPassword) == "" {
		return ErrInvalidInput
	}
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	hash, err := s.passwordHash.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	_ = s.audit(ctx, &actor.UserID, nil, entity.AuditPasswordChanged, map[string]any{"target": targetID})
	return nil
}

// DeleteUser removes the record permanently. There is no soft delete.
func (s *UserService) DeleteUser(ctx context.Context, actor Identity, targetID uint) error {
	if !actor.IsStaff && actor.UserID != targetID {
		return ErrAccessDenied
	}
	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return err
	}
	_ = s.audit(ctx, &actor.UserID, nil, entity.AuditUserDeleted, map[string]any{"target": targetID})
	return nil
}

func (s *UserService) audit(ctx context.Context, userID *uint, ipAddress *string, action entity.AuditAction, metadata map[string]any) error {
	if s.audits == nil {
		return nil
	}
	var payload datatypes.JSON
	if metadata != nil {
		bytes, err := json.Marshal(metadata)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(bytes)
	}
	return s.audits.Log(ctx, &entity.AuditLog{
		UserID:    userID,
		IPAddress: ipAddress,
		Action:    action,
		Metadata:  payload,
	})
}

// normalizePage converts the 1-indexed page contract into limit/offset,
// applying the defaults limit=10 and page=1.
func normalizePage(limit, page int) (int, int) {
	if limit <= 0 {
		limit = 10
	}
	if page <= 0 {
		page = 1
	}
	return limit, (page - 1) * limit
}
