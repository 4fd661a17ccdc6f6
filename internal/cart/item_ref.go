package cart

import (
	"gamehub-backend/internal/pkg/apperrors"
)

// ItemKind is the closed set of content types a line item may reference.
type ItemKind string

const (
	KindProduct       ItemKind = "product"
	KindListing       ItemKind = "listing"
	KindAuthorListing ItemKind = "author_listing"
)

// ItemRef is the tagged union {Product(id) | Listing(id) | AuthorListing(id)}.
// The storage layer maps the tag to the item_type discriminator column.
type ItemRef struct {
	Kind ItemKind
	ID   uint
}

// ItemInput is the wire shape for adding a line. Clients may send an explicit
// item_type, or just populate one of the three foreign keys.
type ItemInput struct {
	ItemType        string  `json:"item_type"`
	ProductID       *uint   `json:"product_id"`
	ListingID       *uint   `json:"listing_id"`
	AuthorListingID *uint   `json:"author_listing_id"`
	Quantity        int     `json:"quantity"`
	Price           float64 `json:"price"`
}

// ResolveItemRef turns an ItemInput into an ItemRef.
//
// With an explicit item_type, the matching foreign key must be populated or
// the input is rejected. Without one, the kind is inferred from whichever
// foreign key is set, with precedence product -> listing -> author_listing
// when more than one is erroneously supplied.
func ResolveItemRef(in ItemInput) (ItemRef, error) {
	if in.ItemType != "" {
		switch ItemKind(in.ItemType) {
		case KindProduct:
			if in.ProductID == nil {
				return ItemRef{}, apperrors.Validation("item_type is product but product_id is not set")
			}
			return ItemRef{Kind: KindProduct, ID: *in.ProductID}, nil
		case KindListing:
			if in.ListingID == nil {
				return ItemRef{}, apperrors.Validation("item_type is listing but listing_id is not set")
			}
			return ItemRef{Kind: KindListing, ID: *in.ListingID}, nil
		case KindAuthorListing:
			if in.AuthorListingID == nil {
				return ItemRef{}, apperrors.Validation("item_type is author_listing but author_listing_id is not set")
			}
			return ItemRef{Kind: KindAuthorListing, ID: *in.AuthorListingID}, nil
		default:
			return ItemRef{}, apperrors.Validation("Unknown item_type: " + in.ItemType)
		}
	}

	switch {
	case in.ProductID != nil:
		return ItemRef{Kind: KindProduct, ID: *in.ProductID}, nil
	case in.ListingID != nil:
		return ItemRef{Kind: KindListing, ID: *in.ListingID}, nil
	case in.AuthorListingID != nil:
		return ItemRef{Kind: KindAuthorListing, ID: *in.AuthorListingID}, nil
	default:
		return ItemRef{}, apperrors.Validation("At least one content ID must be specified")
	}
}
