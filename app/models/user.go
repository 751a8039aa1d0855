package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a storefront customer. The dashboard reads these accounts but
// never creates them; registration happens on the shop side.
type User struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Name      string               `bson:"name" json:"name"`
	Email     string               `bson:"email" json:"email"`
	Password  string               `bson:"password,omitempty" json:"-"`
	Role      string               `bson:"role,omitempty" json:"role,omitempty"`
	OrderIDs  []primitive.ObjectID `bson:"orders,omitempty" json:"-"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// UserWithOrders is the directory view: the customer plus their orders with
// product details filled in.
type UserWithOrders struct {
	User   `bson:",inline"`
	Orders []PopulatedOrder `json:"orders"`
}
