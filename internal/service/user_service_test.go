package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"memberbase/internal/entity"
	"memberbase/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testAffiliatePrefix = "MB"

func newTestUserService() (*UserService, *mockUserRepo, *mockAuditRepo) {
	users := newMockUserRepo()
	audits := &mockAuditRepo{}
	manager := &utils.JWTManager{Secret: []byte("test-secret"), Issuer: "test", TokenTTL: time.Hour}
	svc := NewUserService(
		users,
		audits,
		nil,
		BcryptPasswordHasher{Cost: bcrypt.MinCost},
		JWTTokenIssuer{Manager: manager},
		UserConfig{AffiliatePrefix: testAffiliatePrefix},
	)
	return svc, users, audits
}

func registerTestUser(t *testing.T, svc *UserService, email, password string, username *string) *entity.User {
	t.Helper()
	user, _, err := svc.Register(context.Background(), RegisterInput{
		Username:  username,
		Email:     email,
		Password:  password,
		FirstName: "Ana",
		LastName:  "Silva",
	})
	require.NoError(t, err)
	return user
}

func promoteToStaff(t *testing.T, users *mockUserRepo, id uint) {
	t.Helper()
	user, err := users.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, user)
	user.IsStaff = true
	require.NoError(t, users.Save(context.Background(), user))
}

func TestRegisterDerivesAffiliateCode(t *testing.T) {
	svc, users, _ := newTestUserService()

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Email:     "ana@example.com",
		Password:  "strong-password",
		FirstName: "Ana",
		LastName:  "Silva",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, utils.AffiliateCode(testAffiliatePrefix, user.ID), user.Affiliate)
	assert.True(t, user.Active)
	assert.False(t, user.IsStaff)

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, user.Affiliate, stored.Affiliate)
	assert.NotEqual(t, "strong-password", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("strong-password")))
}

type saveFailUserRepo struct {
	*mockUserRepo
	saveErr error
}

func (r *saveFailUserRepo) Save(ctx context.Context, user *entity.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	return r.mockUserRepo.Save(ctx, user)
}

// A failed affiliate write must not strand a user row without a code; the
// insert is rolled back so the caller can simply retry.
func TestRegisterCleansUpWhenAffiliateWriteFails(t *testing.T) {
	saveErr := errors.New("write failed")
	users := &saveFailUserRepo{mockUserRepo: newMockUserRepo(), saveErr: saveErr}
	manager := &utils.JWTManager{Secret: []byte("test-secret"), TokenTTL: time.Hour}
	svc := NewUserService(
		users,
		&mockAuditRepo{},
		nil,
		BcryptPasswordHasher{Cost: bcrypt.MinCost},
		JWTTokenIssuer{Manager: manager},
		UserConfig{AffiliatePrefix: testAffiliatePrefix},
	)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:     "ana@example.com",
		Password:  "strong-password",
		FirstName: "Ana",
		LastName:  "Silva",
	})
	require.ErrorIs(t, err, saveErr)

	leftover, err := users.FindByIdentifier(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.Nil(t, leftover)
}

func TestRegisterRequiredFields(t *testing.T) {
	svc, _, _ := newTestUserService()

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ana@example.com",
		Password: "strong-password",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService()
	registerTestUser(t, svc, "ana@example.com", "strong-password", nil)

	_, _, err := svc.Register(context.Background(), RegisterInput{
		Email:     "ana@example.com",
		Password:  "other-password",
		FirstName: "Bia",
		LastName:  "Souza",
	})
	assert.ErrorIs(t, err, ErrDuplicateIdentity)
}

func TestLoginByEmailAndUsername(t *testing.T) {
	svc, _, _ := newTestUserService()
	username := "ana"
	registerTestUser(t, svc, "ana@example.com", "strong-password", &username)

	token, err := svc.Login(context.Background(), LoginInput{Identifier: "ana@example.com", Password: "strong-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	token, err = svc.Login(context.Background(), LoginInput{Identifier: "ana", Password: "strong-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

// Emails are stored normalized, so the exact string used at registration must
// keep working as a login identifier whatever its casing.
func TestLoginWithEmailCaseVariants(t *testing.T) {
	svc, _, _ := newTestUserService()
	registerTestUser(t, svc, "Ana@Example.com", "strong-password", nil)

	token, err := svc.Login(context.Background(), LoginInput{Identifier: "Ana@Example.com", Password: "strong-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	token, err = svc.Login(context.Background(), LoginInput{Identifier: "ana@example.com", Password: "strong-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

// Unknown identifier, wrong password and inactive account must be
// indistinguishable to the caller.
func TestLoginFailuresAreUniform(t *testing.T) {
	svc, users, audits := newTestUserService()
	user := registerTestUser(t, svc, "ana@example.com", "strong-password", nil)

	_, err := svc.Login(context.Background(), LoginInput{Identifier: "nobody@example.com", Password: "strong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginInput{Identifier: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	stored, _ := users.FindByID(context.Background(), user.ID)
	stored.Active = false
	require.NoError(t, users.Save(context.Background(), stored))

	_, err = svc.Login(context.Background(), LoginInput{Identifier: "ana@example.com", Password: "strong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	for _, record := range audits.records {
		assert.Equal(t, entity.AuditLoginFailed, record.Action)
	}
	assert.Len(t, audits.records, 3)
}

func TestRefreshTokenDeletedUser(t *testing.T) {
	svc, users, _ := newTestUserService()
	user := registerTestUser(t, svc, "ana@example.com", "strong-password", nil)

	require.NoError(t, users.Delete(context.Background(), user.ID))

	_, err := svc.RefreshToken(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserInactive(t *testing.T) {
	svc, users, _ := newTestUserService()
	user := registerTestUser(t, svc, "ana@example.com", "strong-password", nil)

	stored, _ := users.FindByID(context.Background(), user.ID)
	stored.Active = false
	require.NoError(t, users.Save(context.Background(), stored))

	_, err := svc.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileSelfOrStaff(t *testing.T) {
	svc, users, _ := newTestUserService()
	owner := registerTestUser(t, svc, "ana@example.com", "strong-password", nil)
	other := registerTestUser(t, svc, "bia@example.com", "strong-password", nil)

	name := "Updated"
	input := UpdateProfileInput{FirstName: &name}

	_, err := svc.UpdateProfile(context.Background(), Identity{UserID: other.ID}, owner.ID, input)
	assert.ErrorIs(t, err, ErrAccessDenied)

	updated, err := svc.UpdateProfile(context.Background(), Identity{UserID: owner.ID}, owner.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.FirstName)

	promoteToStaff(t, users, other.ID)
	name = "Staffed"
	updated, err = svc.UpdateProfile(context.Background(), Identity{UserID: other.ID, IsStaff: true}, owner.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Staffed", updated.FirstName)
}

// Credentials, affiliate and role flags are not part of the update input, so
// they survive any profile update untouched.
func TestUpdateProfileLeavesProtectedFieldsAlone(t *testing.T) {
	svc, users, _ := newTestUserService()
	owner := registerTestUser(t, svc, "ana@example.com", "strong-password", nil)

	name := "Updated"
	notes := "some notes"
	roles := []string{"member", "affiliate"}
	_, err := svc.UpdateProfile(context.Background(), Identity{UserID: owner.ID}, owner.ID, UpdateProfileInput{
		FirstName: &name,
		Notes:     &notes,
		Roles:     &roles,
	})
	require.NoError(t, err)

	stored, _ := users.FindByID(context.Background(), owner.ID)
	assert.Equal(t, "ana@example.com", stored.Email)
	assert.Equal(t, owner.Affiliate, stored.Affiliate)
	assert.Equal(t, owner.PasswordHash, stored.PasswordHash)
	assert.False(t, stored.IsStaff)
	assert.Equal(t, "Updated", stored.FirstName)
	assert.Equal(t, "Silva", stored.LastName)
	assert.Equal(t, []string{"member", "affiliate"}, []string(stored.Roles))
}

func TestUpdateProfileNotFound(t *testing.T) {
	svc, _, _ := newTestUserService()

	name := "Updated"
	_, err := svc.UpdateProfile(context.Background(), Identity{UserID: 99, IsStaff: true}, 99, UpdateProfileInput{FirstName: &name})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsersStaffOnly(t *testing.T) {
	svc, _, _ := newTestUserService()
	registerTestUser(t, svc, "ana@example.com", "strong-password", nil)

	_, _, err := svc.ListUsers(context.Background(), Identity{UserID: 1}, 10, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListUsersPagination(t *testing.T) {
	svc, _, _ := newTestUserService()
	for i := 0; i < 25; i++ {
		registerTestUser(t, svc, string(rune('a'+i))+"@example.com", "strong-password", nil)
	}
	staff := Identity{UserID: 1, IsStaff: true}

	page, count, err := svc.ListUsers(context.Background(), staff, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
	assert.Len(t, page, 10)

	page, count, err = svc.ListUsers(context.Background(), staff, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(25), count)
	assert.Len(t, page, 5)
}

func TestSetStaffStaffOnly(t *testing.T) {
	svc, _, audits := newTestUserService()
	target := registerTestUser(t, svc, "ana@example.com", "strong-password", nil)

	_, err := svc.SetStaff(context.Background(), Identity{UserID: target.ID}, target.ID, true)
	assert.ErrorIs(t, err, ErrAccessDenied)

	updated, err := svc.SetStaff(context.Background(), Identity{UserID: 99, IsStaff: true}, target.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsStaff)
	require.Len(t, audits.records, 1)
	assert.Equal(t, entity.AuditStaffToggled, audits.records[0].Action)
}

func TestSetActiveToggles(t *testing.T) {
	svc, _, _ := newTestUserService()
	target := registerTestUser(t, svc, "ana@example.com", "strong-password", nil)
	staff := Identity{UserID: 99, IsStaff: true}

	updated, err := svc.SetActive(context.Background(), staff, target.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	updated, err = svc.SetActive(context.Background(), staff, target.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Active)
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newTestUserService()
	target := registerTestUser(t, svc, "ana@example.com", "strong-password", nil)
	staff := Identity{UserID: 99, IsStaff: true}

	err := svc.ChangePassword(context.Background(), Identity{UserID: target.ID}, target.ID, "new-password")
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.ChangePassword(context.Background(), staff, target.ID, "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.ChangePassword(context.Background(), staff, target.ID, "new-password")
	require.NoError(t, err)

	stored, _ := users.FindByID(context.Background(), target.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("new-password")))
}

func TestDeleteUser(t *testing.T) {
	svc, _, _ := newTestUserService()
	owner := registerTestUser(t, svc, "ana@example.com", "strong-password", nil)
	other := registerTestUser(t, svc, "bia@example.com", "strong-password", nil)

	err := svc.DeleteUser(context.Background(), Identity{UserID: other.ID}, owner.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.DeleteUser(context.Background(), Identity{UserID: owner.ID}, owner.ID)
	require.NoError(t, err)

	_, err = svc.GetUser(context.Background(), owner.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.DeleteUser(context.Background(), Identity{UserID: 99, IsStaff: true}, owner.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
