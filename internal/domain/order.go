package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order references products by value. A product may appear in many orders
// and may be referenced more than once within a single order; deleting a
// product does not touch the orders that reference it.
type Order struct {
	ID     primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID string             `json:"userId" bson:"userId"`

	// ProductIDs is the stored reference sequence, in request order and
	// not deduplicated. Responses carry the expanded Products instead.
	ProductIDs []primitive.ObjectID `json:"-" bson:"productIds"`

	// Products holds the expanded product records, aligned with
	// ProductIDs. A dangling reference expands to nil.
	Products []*Product `json:"productIds" bson:"-"`

	// TotalAmount is a price-at-order-time snapshot: the sum of the
	// referenced products' prices as of creation. It is never recomputed,
	// not on update and not when a product's price changes.
	TotalAmount float64 `json:"totalAmount" bson:"totalAmount"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
