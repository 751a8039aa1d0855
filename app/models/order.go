package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status lifecycle.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCanceled   = "canceled"
)

// Statuses lists every valid order status.
var Statuses = []string{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCanceled,
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Address is the shipping destination stored inline on the order.
type Address struct {
	FullName string `bson:"fullName" json:"fullName"`
	Phone    string `bson:"phone" json:"phone"`
	Street   string `bson:"street" json:"street"`
	City     string `bson:"city" json:"city"`
	Zip      string `bson:"zip" json:"zip"`
	Country  string `bson:"country" json:"country"`
}

// OrderItem is one product line on an order.
type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Size     int                `bson:"size" json:"size"`
}

// Order as stored in MongoDB. User and item products are ObjectID
// references; listing endpoints return the populated views below.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	OrderNumber  string             `bson:"orderNumber" json:"orderNumber"`
	User         primitive.ObjectID `bson:"user" json:"user"`
	Items        []OrderItem        `bson:"items" json:"items"`
	TotalPrice   float64            `bson:"totalPrice" json:"totalPrice"`
	Status       string             `bson:"status" json:"status"`
	Address      Address            `bson:"address" json:"address"`
	DeliveryDate *time.Time         `bson:"deliveryDate,omitempty" json:"deliveryDate,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderUserRef is the customer subset embedded in populated orders.
type OrderUserRef struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
}

// OrderItemProduct is the product subset embedded in populated order items.
type OrderItemProduct struct {
	ID        primitive.ObjectID `json:"_id"`
	Name      string             `json:"name"`
	Price     float64            `json:"price"`
	Category  string             `json:"category"`
	Brand     string             `json:"brand"`
	MainImage string             `json:"mainImage,omitempty"`
	Stock     int                `json:"stock"`
	InStock   bool               `json:"inStock"`
}

// PopulatedItem is an order line with its product reference resolved.
// Product is nil when the referenced product has been deleted.
type PopulatedItem struct {
	Product  *OrderItemProduct `json:"product"`
	Quantity int               `json:"quantity"`
	Size     int               `json:"size"`
}

// PopulatedOrder is the API view of an order: the user and product
// references are replaced by their display subsets.
type PopulatedOrder struct {
	ID           primitive.ObjectID `json:"_id"`
	OrderNumber  string             `json:"orderNumber"`
	User         *OrderUserRef      `json:"user"`
	Items        []PopulatedItem    `json:"items"`
	TotalPrice   float64            `json:"totalPrice"`
	Status       string             `json:"status"`
	Address      Address            `json:"address"`
	DeliveryDate *time.Time         `json:"deliveryDate,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// Stats is the dashboard summary payload.
type Stats struct {
	Products    int64   `json:"products"`
	Orders      int64   `json:"orders"`
	Users       int64   `json:"users"`
	TotalIncome float64 `json:"totalIncome"`
}
