package cart

import (
	"context"
	"testing"

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

func TestGetOrCreateUserCartIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreateUserCart(ctx, 42)
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	second, err := svc.GetOrCreateUserCart(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	n, err := svc.Carts.Count(ctx, map[string]interface{}{"user_id": 42})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAddItemMergesDuplicateLines(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cart, err := svc.GetOrCreateUserCart(ctx, 1)
	require.NoError(t, err)

	in := ItemInput{ProductID: uintPtr(10), Quantity: 2, Price: 4.50}
	_, err = svc.AddItem(ctx, cart.ID, in)
	require.NoError(t, err)

	in.Quantity = 3
	in.Price = 5.00
	line, err := svc.AddItem(ctx, cart.ID, in)
	require.NoError(t, err)

	// single row, summed quantity, last-write-wins price
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, 5.00, line.Price)

	n, err := svc.Items.Count(ctx, map[string]interface{}{"cart_id": cart.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cart, err := svc.GetOrCreateUserCart(ctx, 1)
	require.NoError(t, err)

	line, err := svc.AddItem(ctx, cart.ID, ItemInput{ListingID: uintPtr(8), Quantity: 0, Price: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)
}

func TestUpdateQuantityZeroDeletesLine(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cart, err := svc.GetOrCreateUserCart(ctx, 1)
	require.NoError(t, err)
	line, err := svc.AddItem(ctx, cart.ID, ItemInput{ProductID: uintPtr(1), Quantity: 2, Price: 1})
	require.NoError(t, err)

	got, err := svc.UpdateQuantity(ctx, line.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, got)

	items, err := svc.GetItems(ctx, cart.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateQuantityMissingLine(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.UpdateQuantity(context.Background(), 999, 3)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestSummaryUsesStoredPrices(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cart, err := svc.GetOrCreateUserCart(ctx, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, ItemInput{ProductID: uintPtr(1), Quantity: 2, Price: 3.10})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, ItemInput{ListingID: uintPtr(2), Quantity: 1, Price: 9.99})
	require.NoError(t, err)

	sum, err := svc.GetSummary(ctx, cart.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalItems)
	assert.Equal(t, 3, sum.TotalQuantity)
	assert.Equal(t, 16.19, sum.TotalPrice)
}

func TestClearCart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cart, err := svc.GetOrCreateUserCart(ctx, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, ItemInput{ProductID: uintPtr(1), Quantity: 1, Price: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, ItemInput{ProductID: uintPtr(2), Quantity: 1, Price: 1})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(ctx, cart.ID))

	items, err := svc.GetItems(ctx, cart.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGuestItemsRequireSession(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.AddGuestItem(context.Background(), "", ItemInput{ProductID: uintPtr(1), Quantity: 1})
	require.Error(t, err)

	items, err := svc.GetGuestItems(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMergeGuestCartSumsMatchingLines(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	session := "guest-session-1"

	cart, err := svc.GetOrCreateUserCart(ctx, 7)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, cart.ID, ItemInput{ProductID: uintPtr(5), Quantity: 2, Price: 4})
	require.NoError(t, err)

	_, err = svc.AddGuestItem(ctx, session, ItemInput{ProductID: uintPtr(5), Quantity: 3, Price: 4})
	require.NoError(t, err)
	_, err = svc.AddGuestItem(ctx, session, ItemInput{ListingID: uintPtr(9), Quantity: 1, Price: 2})
	require.NoError(t, err)

	merged, err := svc.MergeGuestCart(ctx, 7, session)
	require.NoError(t, err)
	assert.Equal(t, 2, merged)

	// matching line summed to 5, unmatched line re-owned
	items, err := svc.GetItems(ctx, cart.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	byItem := map[uint]int{}
	for _, it := range items {
		byItem[it.ItemID] = it.Quantity
		assert.Nil(t, it.CartSessionID)
	}
	assert.Equal(t, 5, byItem[5])
	assert.Equal(t, 1, byItem[9])

	// guest view is empty afterwards
	guest, err := svc.GetGuestItems(ctx, session)
	require.NoError(t, err)
	assert.Empty(t, guest)
}

func TestMergeGuestCartNoItems(t *testing.T) {
	svc := newTestService(t)

	merged, err := svc.MergeGuestCart(context.Background(), 7, "empty-session")
	require.NoError(t, err)
	assert.Zero(t, merged)
}
