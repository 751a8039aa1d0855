package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
)

// UserService exposes the customer directory: read-only accounts with their
// order history resolved.
type UserService struct {
	users  UserStore
	orders *OrderService
}

func NewUserService(users UserStore, orders *OrderService) *UserService {
	return &UserService{users: users, orders: orders}
}

// List returns every customer with their orders populated. All referenced
// orders are fetched in one query and grouped back per user.
func (s *UserService) List(ctx context.Context) ([]models.UserWithOrders, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	orderIDs := make([]primitive.ObjectID, 0)
	for _, u := range users {
		orderIDs = append(orderIDs, u.OrderIDs...)
	}

	orders, err := s.orders.orders.FindByIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	populated, err := s.orders.populate(ctx, orders)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.PopulatedOrder, len(populated))
	for _, po := range populated {
		byID[po.ID] = po
	}

	out := make([]models.UserWithOrders, 0, len(users))
	for _, u := range users {
		uw := models.UserWithOrders{User: u, Orders: []models.PopulatedOrder{}}
		for _, oid := range u.OrderIDs {
			if po, ok := byID[oid]; ok {
				uw.Orders = append(uw.Orders, po)
			}
		}
		out = append(out, uw)
	}
	return out, nil
}

// GetByID returns one customer with their orders populated.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.UserWithOrders, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.orders.FindByIDs(ctx, user.OrderIDs)
	if err != nil {
		return nil, err
	}
	populated, err := s.orders.populate(ctx, orders)
	if err != nil {
		return nil, err
	}

	return &models.UserWithOrders{User: *user, Orders: populated}, nil
}
