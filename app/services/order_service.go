package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/event"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/metrics"
)

// orderNumberAttempts bounds the retry loop when a generated order number
// collides with the unique index.
const orderNumberAttempts = 5

// deliveryEstimate is the shipping promise stamped on every new order. The
// public order inquiry surfaces it; the delivered transition overwrites it
// with the actual date.
const deliveryEstimate = 72 * time.Hour

// OrderService owns the order lifecycle: placement with stock reservation,
// status transitions, and deletion.
type OrderService struct {
	orders   OrderStore
	products ProductStore
	users    UserStore
}

func NewOrderService(orders OrderStore, products ProductStore, users UserStore) *OrderService {
	return &OrderService{orders: orders, products: products, users: users}
}

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID string
	Quantity  int
	Size      int
}

// CreateOrderInput is the full placement request.
type CreateOrderInput struct {
	UserID  string
	Items   []OrderItemInput
	Address models.Address
}

// CreateOrder places an order. Stock is reserved per line with an atomic
// conditional decrement before the order document is written; if any later
// step fails, every decrement made so far is compensated so the catalog
// never leaks reserved stock.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.PopulatedOrder, error) {
	userID, err := parseID(in.UserID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("look up user: %w", err)
	}
	if len(in.Items) == 0 {
		return nil, errors.New("order has no items")
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	ids := make([]primitive.ObjectID, 0, len(in.Items))
	for _, it := range in.Items {
		pid, err := parseID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity %d for product %s", it.Quantity, it.ProductID)
		}
		if !models.ValidSize(it.Size) {
			return nil, fmt.Errorf("invalid size %d for product %s", it.Size, it.ProductID)
		}
		items = append(items, models.OrderItem{Product: pid, Quantity: it.Quantity, Size: it.Size})
		ids = append(ids, pid)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("look up products: %w", err)
	}

	var total float64
	for _, item := range items {
		p, ok := products[item.Product]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", item.Product.Hex(), repositories.ErrNotFound)
		}
		total += p.Price * float64(item.Quantity)
	}

	// Reserve stock line by line, compensating on the first failure.
	reserved := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if err := s.products.DecrementStock(ctx, item.Product, item.Quantity); err != nil {
			s.releaseStock(ctx, reserved)
			p := products[item.Product]
			return nil, fmt.Errorf("reserve stock for %q: %w", p.Name, err)
		}
		reserved = append(reserved, item)
	}

	eta := time.Now().UTC().Add(deliveryEstimate)
	order := &models.Order{
		User:         userID,
		Items:        items,
		TotalPrice:   total,
		Status:       models.StatusPending,
		Address:      in.Address,
		DeliveryDate: &eta,
	}

	// The unique index on orderNumber turns a collision into a duplicate
	// key error; retry with a fresh number a bounded number of times.
	var inserted bool
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = newOrderNumber()
		err = s.orders.Insert(ctx, order)
		if err == nil {
			inserted = true
			break
		}
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			break
		}
	}
	if !inserted {
		s.releaseStock(ctx, reserved)
		if err == nil || errors.Is(err, repositories.ErrDuplicateKey) {
			err = fmt.Errorf("could not allocate order number after %d attempts", orderNumberAttempts)
		}
		return nil, fmt.Errorf("save order: %w", err)
	}

	if err := s.users.PushOrder(ctx, userID, order.ID); err != nil {
		// The order exists and stock is reserved; a stale user order list
		// is recoverable, so do not fail the placement over it.
		logger.WithCtx(ctx).Warn("link order to user failed",
			"order_id", order.ID.Hex(), "user_id", userID.Hex(), "error", err)
	}

	metrics.OrdersCreated.Inc()
	logger.WithCtx(ctx).Info("order created",
		"order_id", order.ID.Hex(), "order_number", order.OrderNumber, "total", order.TotalPrice)

	populated := s.assemble(*order, map[primitive.ObjectID]models.User{userID: *user}, products)
	event.FireAsync(event.OrderCreated, populated)
	return &populated, nil
}

// releaseStock undoes decrements after a failed placement.
func (s *OrderService) releaseStock(ctx context.Context, reserved []models.OrderItem) {
	for _, item := range reserved {
		if err := s.products.IncrementStock(ctx, item.Product, item.Quantity); err != nil {
			logger.WithCtx(ctx).Error("stock compensation failed",
				"product_id", item.Product.Hex(), "quantity", item.Quantity, "error", err)
		}
	}
}

// newOrderNumber builds an "NV"-prefixed number with up to six digits.
func newOrderNumber() string {
	return fmt.Sprintf("NV%d", rand.Intn(1_000_000))
}

func (s *OrderService) List(ctx context.Context, filter repositories.OrderFilter) ([]models.PopulatedOrder, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.populate(ctx, orders)
}

func (s *OrderService) GetByID(ctx context.Context, id string) (*models.PopulatedOrder, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	return s.populateOne(ctx, *order)
}

// Inquiry looks an order up by its public order number.
func (s *OrderService) Inquiry(ctx context.Context, orderNumber string) (*models.PopulatedOrder, error) {
	order, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return s.populateOne(ctx, *order)
}

// UpdateStatus moves the order to the given lifecycle status. Reaching
// "delivered" stamps the delivery date.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.PopulatedOrder, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var deliveryDate *time.Time
	if status == models.StatusDelivered {
		now := time.Now().UTC()
		deliveryDate = &now
	}

	order, err := s.orders.UpdateStatus(ctx, oid, status, deliveryDate)
	if err != nil {
		return nil, err
	}

	logger.WithCtx(ctx).Info("order status updated",
		"order_id", id, "order_number", order.OrderNumber, "status", status)

	populated, err := s.populateOne(ctx, *order)
	if err != nil {
		return nil, err
	}
	event.FireAsync(event.OrderUpdated, *populated)
	return populated, nil
}

// Delete removes the order and unlinks it from its user. Stock is not
// restored; cancel the order first if the units should go back on sale.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, oid); err != nil {
		return err
	}
	if err := s.users.PullOrder(ctx, order.User, order.ID); err != nil {
		logger.WithCtx(ctx).Warn("unlink order from user failed",
			"order_id", id, "user_id", order.User.Hex(), "error", err)
	}

	logger.WithCtx(ctx).Info("order deleted", "order_id", id, "order_number", order.OrderNumber)
	event.FireAsync(event.OrderDeleted, order.OrderNumber)
	return nil
}

// populate resolves user and product references for a batch of orders with
// two $in queries instead of one round trip per order.
func (s *OrderService) populate(ctx context.Context, orders []models.Order) ([]models.PopulatedOrder, error) {
	userIDs := make([]primitive.ObjectID, 0, len(orders))
	productIDs := make([]primitive.ObjectID, 0)
	seenUsers := map[primitive.ObjectID]struct{}{}
	seenProducts := map[primitive.ObjectID]struct{}{}

	for _, o := range orders {
		if _, ok := seenUsers[o.User]; !ok {
			seenUsers[o.User] = struct{}{}
			userIDs = append(userIDs, o.User)
		}
		for _, item := range o.Items {
			if _, ok := seenProducts[item.Product]; !ok {
				seenProducts[item.Product] = struct{}{}
				productIDs = append(productIDs, item.Product)
			}
		}
	}

	users, err := s.users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.PopulatedOrder, 0, len(orders))
	for _, o := range orders {
		out = append(out, s.assemble(o, users, products))
	}
	return out, nil
}

func (s *OrderService) populateOne(ctx context.Context, order models.Order) (*models.PopulatedOrder, error) {
	populated, err := s.populate(ctx, []models.Order{order})
	if err != nil {
		return nil, err
	}
	return &populated[0], nil
}

// assemble builds the API view of one order from pre-fetched reference maps.
// Deleted users or products leave nil references rather than failing the
// whole listing.
func (s *OrderService) assemble(order models.Order, users map[primitive.ObjectID]models.User, products map[primitive.ObjectID]models.Product) models.PopulatedOrder {
	po := models.PopulatedOrder{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		TotalPrice:   order.TotalPrice,
		Status:       order.Status,
		Address:      order.Address,
		DeliveryDate: order.DeliveryDate,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}

	if u, ok := users[order.User]; ok {
		po.User = &models.OrderUserRef{ID: u.ID, Name: u.Name, Email: u.Email}
	}

	po.Items = make([]models.PopulatedItem, 0, len(order.Items))
	for _, item := range order.Items {
		pi := models.PopulatedItem{Quantity: item.Quantity, Size: item.Size}
		if p, ok := products[item.Product]; ok {
			pi.Product = &models.OrderItemProduct{
				ID:        p.ID,
				Name:      p.Name,
				Price:     p.Price,
				Category:  p.Category,
				Brand:     p.Brand,
				MainImage: p.MainImage,
				Stock:     p.Stock,
				InStock:   p.InStock,
			}
		}
		po.Items = append(po.Items, pi)
	}
	return po
}
