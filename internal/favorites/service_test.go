package favorites

import (
	"context"
	"testing"

	"gamehub-backend/internal/cart"
	"gamehub-backend/internal/database"
	"gamehub-backend/internal/pkg/apperrors"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return NewService(db)
}

func uintPtr(v uint) *uint { return &v }

func TestAddFavorite(t *testing.T) {
	svc := newTestService(t)

	fav, err := svc.AddFavorite(context.Background(), AddFavoriteInput{
		ItemInput: cart.ItemInput{ProductID: uintPtr(3)},
		UserID:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, "product", fav.ItemType)
	assert.EqualValues(t, 3, fav.ItemID)
}

func TestSecondAddConflicts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	in := AddFavoriteInput{
		ItemInput: cart.ItemInput{ListingID: uintPtr(12)},
		UserID:    5,
	}
	_, err := svc.AddFavorite(ctx, in)
	require.NoError(t, err)

	_, err = svc.AddFavorite(ctx, in)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Equal(t, 409, appErr.Status)

	// no duplicate row slipped through
	n, err := svc.Count(ctx, map[string]interface{}{"user_id": 5})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSameItemDifferentUsers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, userID := range []uint{1, 2, 3} {
		_, err := svc.AddFavorite(ctx, AddFavoriteInput{
			ItemInput: cart.ItemInput{ProductID: uintPtr(9)},
			UserID:    userID,
		})
		require.NoError(t, err)
	}
}

func TestIsFavorited(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddFavorite(ctx, AddFavoriteInput{
		ItemInput: cart.ItemInput{AuthorListingID: uintPtr(4)},
		UserID:    2,
	})
	require.NoError(t, err)

	ok, err := svc.IsFavorited(ctx, 2, cart.ItemRef{Kind: cart.KindAuthorListing, ID: 4})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsFavorited(ctx, 2, cart.ItemRef{Kind: cart.KindProduct, ID: 4})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRemoveFavorite(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	fav, err := svc.AddFavorite(ctx, AddFavoriteInput{
		ItemInput: cart.ItemInput{ProductID: uintPtr(1)},
		UserID:    1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveFavorite(ctx, fav.ID))

	err = svc.RemoveFavorite(ctx, fav.ID)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
