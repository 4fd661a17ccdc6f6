package cart

import (
	"testing"

	"gamehub-backend/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint { return &v }

func TestResolveItemRefExplicitType(t *testing.T) {
	ref, err := ResolveItemRef(ItemInput{ItemType: "listing", ListingID: uintPtr(7)})
	require.NoError(t, err)
	assert.Equal(t, ItemRef{Kind: KindListing, ID: 7}, ref)
}

func TestResolveItemRefExplicitTypeMissingID(t *testing.T) {
	_, err := ResolveItemRef(ItemInput{ItemType: "product", ListingID: uintPtr(7)})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestResolveItemRefUnknownType(t *testing.T) {
	_, err := ResolveItemRef(ItemInput{ItemType: "bundle", ProductID: uintPtr(1)})
	require.Error(t, err)
}

func TestResolveItemRefInference(t *testing.T) {
	ref, err := ResolveItemRef(ItemInput{AuthorListingID: uintPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, ItemRef{Kind: KindAuthorListing, ID: 3}, ref)
}

func TestResolveItemRefPrecedence(t *testing.T) {
	// product wins over listing, listing over author_listing
	ref, err := ResolveItemRef(ItemInput{ProductID: uintPtr(1), ListingID: uintPtr(2), AuthorListingID: uintPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, KindProduct, ref.Kind)

	ref, err = ResolveItemRef(ItemInput{ListingID: uintPtr(2), AuthorListingID: uintPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, KindListing, ref.Kind)
}

func TestResolveItemRefNothingSet(t *testing.T) {
	_, err := ResolveItemRef(ItemInput{})
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}
