package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// ProductPatch is an explicit partial update: nil fields are left untouched.
// ID and CreatedAt are deliberately not patchable.
type ProductPatch struct {
	Name        *string
	Price       *float64
	Description *string
}

// OrderPatch is an explicit partial update for orders. Patching ProductIDs
// does not recompute TotalAmount; the total stays a creation-time snapshot.
type OrderPatch struct {
	UserID     *string
	ProductIDs []primitive.ObjectID
}
