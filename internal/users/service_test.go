package users

import (
	"context"
	"testing"

	"gamehub-backend/internal/database"
	"gamehub-backend/internal/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return NewService(db)
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name: "Alex", Email: "alex@example.com", Password: "sup3r-Secret!",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "sup3r-Secret!", user.HashedPassword)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("sup3r-Secret!")))
}

func TestCreateUserValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Name: "A", Email: "not-an-email", Password: "sup3r-Secret!"})
	require.Error(t, err)

	_, err = svc.CreateUser(ctx, CreateUserInput{Name: "A", Email: "a@example.com", Password: "short"})
	require.Error(t, err)

	_, err = svc.CreateUser(ctx, CreateUserInput{Name: "A", Email: "a@example.com", Password: "nospecialchar1"})
	require.Error(t, err)
}

func TestDuplicateEmailConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Name: "First", Email: "dup@example.com", Password: "sup3r-Secret!"})
	require.NoError(t, err)

	// email comparison is case-insensitive
	_, err = svc.CreateUser(ctx, CreateUserInput{Name: "Second", Email: "DUP@example.com", Password: "sup3r-Secret!"})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
}

func TestDefaultRoleIsUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{Name: "Plain", Email: "plain@example.com", Password: "sup3r-Secret!"})
	require.NoError(t, err)
	require.NotNil(t, user.RoleID)

	name, err := svc.RoleName(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "user", name)
}

func TestRoleByNameIsReused(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.CreateUser(ctx, CreateUserInput{Name: "A", Email: "a@example.com", Password: "sup3r-Secret!", RoleName: "admin"})
	require.NoError(t, err)
	b, err := svc.CreateUser(ctx, CreateUserInput{Name: "B", Email: "b@example.com", Password: "sup3r-Secret!", RoleName: "admin"})
	require.NoError(t, err)
	assert.Equal(t, *a.RoleID, *b.RoleID)

	n, err := svc.Roles.Count(ctx, map[string]interface{}{"name": "admin"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestUpdateUserEmailConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Name: "A", Email: "a@example.com", Password: "sup3r-Secret!"})
	require.NoError(t, err)
	b, err := svc.CreateUser(ctx, CreateUserInput{Name: "B", Email: "b@example.com", Password: "sup3r-Secret!"})
	require.NoError(t, err)

	_, err = svc.UpdateUser(ctx, b.ID, map[string]interface{}{"email": "a@example.com"})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)

	// updating to your own email is not a conflict
	updated, err := svc.UpdateUser(ctx, b.ID, map[string]interface{}{"email": "b@example.com", "name": "B2"})
	require.NoError(t, err)
	assert.Equal(t, "B2", updated.Name)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserInput{Name: "A", Email: "a@example.com", Password: "sup3r-Secret!"})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(ctx, user.ID, map[string]interface{}{"password": "an0ther-Secret!"})
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.HashedPassword), []byte("an0ther-Secret!")))
}

func TestVerifyCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, CreateUserInput{Name: "A", Email: "a@example.com", Password: "sup3r-Secret!", RoleName: "admin"})
	require.NoError(t, err)

	user, role, err := svc.VerifyCredentials(ctx, "A@Example.com", "sup3r-Secret!")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
	assert.Equal(t, "admin", role)

	_, _, err = svc.VerifyCredentials(ctx, "a@example.com", "wrong-Pass1!")
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)

	_, _, err = svc.VerifyCredentials(ctx, "ghost@example.com", "sup3r-Secret!")
	require.Error(t, err)
}
