// Package services holds the business rules. Each service depends on narrow
// store interfaces rather than the concrete repositories so the rules can be
// tested without a running MongoDB.
package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
)

// AdminStore is the slice of AdminRepository the services use.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	List(ctx context.Context) ([]models.Admin, error)
	Insert(ctx context.Context, admin *models.Admin) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Admin, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserStore is the slice of UserRepository the services use.
type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error)
	PushOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
	PullOrder(ctx context.Context, userID, orderID primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// ProductStore is the slice of ProductRepository the services use.
type ProductStore interface {
	List(ctx context.Context, filter repositories.ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	Count(ctx context.Context) (int64, error)
}

// OrderStore is the slice of OrderRepository the services use.
type OrderStore interface {
	List(ctx context.Context, filter repositories.OrderFilter) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Order, error)
	Insert(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, deliveryDate *time.Time) (*models.Order, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	TotalIncome(ctx context.Context) (float64, error)
}
