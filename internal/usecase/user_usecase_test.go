package usecase

import (
	"context"
	"strings"
	"testing"

	"groupie/internal/domain"
	"groupie/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func ptr[T any](v T) *T { return &v }

func TestUser_CreateAndGetAreSanitized(t *testing.T) {
	users := newMemUsers()
	uc := NewUserUsecase(users, bcrypt.MinCost)
	ctx := context.Background()

	created, err := uc.Create(ctx, validNewUser())
	require.NoError(t, err)
	assert.Empty(t, created.PasswordHash)
	assert.NotEmpty(t, users.byID[created.ID].PasswordHash)

	got, err := uc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PasswordHash)
	assert.Equal(t, "dave@example.com", got.Email)

	_, err = uc.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUser_UpdateHashesPassword(t *testing.T) {
	users := newMemUsers()
	uc := NewUserUsecase(users, bcrypt.MinCost)
	ctx := context.Background()
	created, err := uc.Create(ctx, validNewUser())
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, user.Patch{Password: ptr("n3w-secret"), FirstName: ptr("  David ")})
	require.NoError(t, err)

	assert.Nil(t, users.lastPatch.Password)
	require.NotNil(t, users.lastPatch.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*users.lastPatch.PasswordHash), []byte("n3w-secret")))
	assert.Equal(t, "David", users.byID[created.ID].FirstName)
}

func TestUser_UpdateValidation(t *testing.T) {
	users := newMemUsers()
	uc := NewUserUsecase(users, bcrypt.MinCost)
	ctx := context.Background()
	created, err := uc.Create(ctx, validNewUser())
	require.NoError(t, err)

	_, err = uc.Update(ctx, created.ID, user.Patch{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Update(ctx, created.ID, user.Patch{Email: ptr("not-an-email")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Update(ctx, created.ID, user.Patch{LastName: ptr("   ")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	// a caller cannot smuggle a precomputed hash through the patch
	_, err = uc.Update(ctx, created.ID, user.Patch{PasswordHash: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Update(ctx, created.ID, user.Patch{Password: ptr(strings.Repeat("p", 73))})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUser_DeleteMissingFails(t *testing.T) {
	users := newMemUsers()
	uc := NewUserUsecase(users, bcrypt.MinCost)

	err := uc.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, domain.ErrDeleteFailed)
}
