package persistence

import (
	"context"
	"testing"

	"github.com/sltrack/backend/internal/domain/identity"
	"github.com/sltrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	created, err := repo.Create(ctx, identity.UserInput{
		Username:    "jdoe",
		DisplayName: "Jane Doe",
		Role:        "SystemAdmin",
	})
	require.NoError(t, err)
	assert.True(t, created.Bool("IsActive"))

	user, err := repo.FindActiveByUsername(ctx, "jdoe")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleSystemAdmin, user.Role)
	assert.Equal(t, "Jane Doe", user.DisplayName)
	assert.True(t, user.CanWrite())
}

func TestUserLookupHidesWhyItFailed(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	created, err := repo.Create(ctx, identity.UserInput{
		Username:    "inactive",
		DisplayName: "Gone Person",
		Role:        "LicenseViewer",
	})
	require.NoError(t, err)
	_, err = repo.Update(ctx, created.Int64("UserID"), identity.UserUpdate{
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)

	_, unknownErr := repo.FindActiveByUsername(ctx, "nobody")
	_, inactiveErr := repo.FindActiveByUsername(ctx, "inactive")

	// An unknown username and a deactivated account must be
	// indistinguishable from the caller's side.
	require.Error(t, unknownErr)
	require.Error(t, inactiveErr)
	assert.Equal(t, unknownErr.Error(), inactiveErr.Error())
	assert.ErrorIs(t, unknownErr, shared.ErrUnauthenticated)
	assert.ErrorIs(t, inactiveErr, shared.ErrUnauthenticated)
}

func TestUserUpdateMergesMissingFields(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	created, err := repo.Create(ctx, identity.UserInput{
		Username:    "asmith",
		DisplayName: "Alex Smith",
		Email:       strPtr("asmith@example.com"),
		Role:        "LicenseViewer",
	})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.Int64("UserID"), identity.UserUpdate{
		Role: strPtr("SoftwareAdmin"),
	})
	require.NoError(t, err)
	assert.Equal(t, "SoftwareAdmin", updated.String("Role"))
	assert.Equal(t, "Alex Smith", updated.String("DisplayName"))
	assert.Equal(t, "asmith@example.com", updated.String("Email"))
}

func TestUserDuplicateUsernameConflicts(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.Create(ctx, identity.UserInput{
		Username: "jdoe", DisplayName: "Jane Doe", Role: "SystemAdmin",
	})
	require.NoError(t, err)

	_, err = repo.Create(ctx, identity.UserInput{
		Username: "jdoe", DisplayName: "John Doe", Role: "LicenseViewer",
	})
	assert.True(t, shared.IsConflict(err))
}
