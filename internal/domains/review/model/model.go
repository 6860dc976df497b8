package model

import (
	"fmt"
	listingModel "stay/internal/domains/listing/model"
	userModel "stay/internal/domains/user/model"
	"stay/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID        = "review_id"
	FieldListingID = "listing_id"
	FieldUserID    = "user_id"
	FieldRating    = "rating"
	FieldComment   = "comment"

	// UniqueListingUser names the constraint allowing one review per guest and listing.
	UniqueListingUser = "reviews_listing_id_user_id_key"
)

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string `db:"review_id"`
	ListingID string `db:"listing_id"`
	UserID    string `db:"user_id"`
	Rating    int    `db:"rating"`
	Comment   string `db:"comment"`
	model.Metadata
}

// ReviewDetail is a review read together with its author and listing title.
type ReviewDetail struct {
	Review
	Username     string `db:"username"      table:"users"`
	ListingTitle string `db:"listing_title" table:"listings" column:"title"`
}

func (ReviewDetail) GetJoinQuery() string {
	return fmt.Sprintf("INNER JOIN %s ON %s.%s = %s.%s INNER JOIN %s ON %s.%s = %s.%s",
		userModel.TableName, userModel.TableName, userModel.FieldID, TableName, FieldUserID,
		listingModel.TableName, listingModel.TableName, listingModel.FieldID, TableName, FieldListingID)
}

func (r ReviewDetail) String() string {
	return fmt.Sprintf("Review by %s for %s", r.Username, r.ListingTitle)
}
