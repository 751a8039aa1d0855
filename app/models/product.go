package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Catalog enumerations. Controller validation and the repository filter
// builders both rely on these lists.
var (
	Categories = []string{"sneaker", "running", "football", "basketball", "slipper"}
	Colors     = []string{"red", "blue", "black", "white", "gray", "green", "yellow"}
	Brands     = []string{"nike", "adidas", "puma", "under armour", "new balance"}
	Genders    = []string{"men", "women", "kid"}
)

// Shoe sizes run from 33 to 46 inclusive.
const (
	MinSize = 33
	MaxSize = 46
)

// ValidSize reports whether n is a sellable shoe size.
func ValidSize(n int) bool {
	return n >= MinSize && n <= MaxSize
}

// ValidSizes reports whether every entry is a sellable size.
func ValidSizes(sizes []int) bool {
	for _, n := range sizes {
		if !ValidSize(n) {
			return false
		}
	}
	return true
}

// Product is a catalog entry.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Brand       string             `bson:"brand" json:"brand"`
	Gender      string             `bson:"gender" json:"gender"`
	Color       string             `bson:"color" json:"color"`
	Price       float64            `bson:"price" json:"price"`
	Sizes       []int              `bson:"sizes" json:"sizes"`
	Stock       int                `bson:"stock" json:"stock"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	ProductCode string             `bson:"productCode" json:"productCode"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	MainImage   string             `bson:"mainImage,omitempty" json:"mainImage,omitempty"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
