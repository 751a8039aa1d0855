package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
)

// fakeProductStore is an in-memory ProductStore.
type fakeProductStore struct {
	products map[primitive.ObjectID]*models.Product
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	f := &fakeProductStore{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductStore) List(context.Context, repositories.ProductFilter) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	out := map[primitive.ObjectID]models.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = *p
		}
	}
	return out, nil
}

func (f *fakeProductStore) Insert(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductStore) DecrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	p, ok := f.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if p.Stock < qty {
		return repositories.ErrInsufficientStock
	}
	p.Stock -= qty
	p.InStock = p.Stock > 0
	return nil
}

func (f *fakeProductStore) IncrementStock(_ context.Context, id primitive.ObjectID, qty int) error {
	p, ok := f.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Stock += qty
	p.InStock = true
	return nil
}

func (f *fakeProductStore) Count(context.Context) (int64, error) {
	return int64(len(f.products)), nil
}

// fakeUserStore is an in-memory UserStore.
type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	f := &fakeUserStore{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserStore) List(context.Context) ([]models.User, error) {
	out := []models.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	out := map[primitive.ObjectID]models.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = *u
		}
	}
	return out, nil
}

func (f *fakeUserStore) PushOrder(_ context.Context, userID, orderID primitive.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	u.OrderIDs = append(u.OrderIDs, orderID)
	return nil
}

func (f *fakeUserStore) PullOrder(_ context.Context, userID, orderID primitive.ObjectID) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	kept := u.OrderIDs[:0]
	for _, id := range u.OrderIDs {
		if id != orderID {
			kept = append(kept, id)
		}
	}
	u.OrderIDs = kept
	return nil
}

func (f *fakeUserStore) Count(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

// fakeOrderStore is an in-memory OrderStore. duplicateInserts makes the
// first N inserts fail with ErrDuplicateKey to exercise the retry loop.
type fakeOrderStore struct {
	orders           map[primitive.ObjectID]*models.Order
	duplicateInserts int
	insertCalls      int
}

func newFakeOrderStore(orders ...*models.Order) *fakeOrderStore {
	f := &fakeOrderStore{orders: map[primitive.ObjectID]*models.Order{}}
	for _, o := range orders {
		f.orders[o.ID] = o
	}
	return f
}

func (f *fakeOrderStore) List(context.Context, repositories.OrderFilter) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) FindByOrderNumber(_ context.Context, orderNumber string) (*models.Order, error) {
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			cp := *o
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeOrderStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Order, error) {
	out := []models.Order{}
	for _, id := range ids {
		if o, ok := f.orders[id]; ok {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) Insert(_ context.Context, o *models.Order) error {
	f.insertCalls++
	if f.insertCalls <= f.duplicateInserts {
		return repositories.ErrDuplicateKey
	}
	o.ID = primitive.NewObjectID()
	o.CreatedAt = time.Now().UTC()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderStore) UpdateStatus(_ context.Context, id primitive.ObjectID, status string, deliveryDate *time.Time) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	o.Status = status
	if deliveryDate != nil {
		o.DeliveryDate = deliveryDate
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.orders[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderStore) Count(context.Context) (int64, error) {
	return int64(len(f.orders)), nil
}

func (f *fakeOrderStore) TotalIncome(context.Context) (float64, error) {
	var total float64
	for _, o := range f.orders {
		total += o.TotalPrice
	}
	return total, nil
}

func testProduct(name string, price float64, stock int) *models.Product {
	return &models.Product{
		ID:      primitive.NewObjectID(),
		Name:    name,
		Price:   price,
		Stock:   stock,
		InStock: stock > 0,
	}
}

func testUser(name string) *models.User {
	return &models.User{ID: primitive.NewObjectID(), Name: name, Email: name + "@example.com"}
}

var orderNumberPattern = regexp.MustCompile(`^NV\d{1,6}$`)

func TestCreateOrderHappyPath(t *testing.T) {
	shoe := testProduct("Air Zoom", 120, 10)
	slipper := testProduct("Comfy", 25, 4)
	user := testUser("jane")

	products := newFakeProductStore(shoe, slipper)
	users := newFakeUserStore(user)
	orders := newFakeOrderStore()
	svc := NewOrderService(orders, products, users)

	got, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID: user.ID.Hex(),
		Items: []OrderItemInput{
			{ProductID: shoe.ID.Hex(), Quantity: 2, Size: 42},
			{ProductID: slipper.ID.Hex(), Quantity: 1, Size: 38},
		},
		Address: models.Address{FullName: "Jane Doe", City: "Ankara", Country: "TR"},
	})
	require.NoError(t, err)

	assert.Regexp(t, orderNumberPattern, got.OrderNumber)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.InDelta(t, 2*120+25, got.TotalPrice, 0.001)
	require.NotNil(t, got.DeliveryDate)
	assert.WithinDuration(t, time.Now().UTC().Add(72*time.Hour), *got.DeliveryDate, 5*time.Second)
	require.NotNil(t, got.User)
	assert.Equal(t, "jane", got.User.Name)
	require.Len(t, got.Items, 2)
	require.NotNil(t, got.Items[0].Product)
	assert.Equal(t, "Air Zoom", got.Items[0].Product.Name)

	// Stock reserved.
	assert.Equal(t, 8, products.products[shoe.ID].Stock)
	assert.Equal(t, 3, products.products[slipper.ID].Stock)

	// Order linked to the customer.
	assert.Contains(t, users.users[user.ID].OrderIDs, got.ID)
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	shoe := testProduct("Air Zoom", 120, 10)
	rare := testProduct("Limited", 300, 1)
	user := testUser("joe")

	products := newFakeProductStore(shoe, rare)
	users := newFakeUserStore(user)
	orders := newFakeOrderStore()
	svc := NewOrderService(orders, products, users)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID: user.ID.Hex(),
		Items: []OrderItemInput{
			{ProductID: shoe.ID.Hex(), Quantity: 3, Size: 42},
			{ProductID: rare.ID.Hex(), Quantity: 2, Size: 44},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Limited")

	// The first line's decrement was compensated.
	assert.Equal(t, 10, products.products[shoe.ID].Stock)
	assert.Equal(t, 1, products.products[rare.ID].Stock)
	assert.Empty(t, orders.orders)
	assert.Empty(t, users.users[user.ID].OrderIDs)
}

func TestCreateOrderRetriesOrderNumberCollisions(t *testing.T) {
	shoe := testProduct("Air Zoom", 120, 5)
	user := testUser("amy")

	products := newFakeProductStore(shoe)
	users := newFakeUserStore(user)
	orders := newFakeOrderStore()
	orders.duplicateInserts = 2
	svc := NewOrderService(orders, products, users)

	got, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID: user.ID.Hex(),
		Items:  []OrderItemInput{{ProductID: shoe.ID.Hex(), Quantity: 1, Size: 40}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, orders.insertCalls)
	assert.Regexp(t, orderNumberPattern, got.OrderNumber)
	assert.Equal(t, 4, products.products[shoe.ID].Stock)
}

func TestCreateOrderExhaustedRetriesReleasesStock(t *testing.T) {
	shoe := testProduct("Air Zoom", 120, 5)
	user := testUser("amy")

	products := newFakeProductStore(shoe)
	users := newFakeUserStore(user)
	orders := newFakeOrderStore()
	orders.duplicateInserts = 100
	svc := NewOrderService(orders, products, users)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		UserID: user.ID.Hex(),
		Items:  []OrderItemInput{{ProductID: shoe.ID.Hex(), Quantity: 1, Size: 40}},
	})
	require.Error(t, err)
	assert.Equal(t, orderNumberAttempts, orders.insertCalls)
	assert.Equal(t, 5, products.products[shoe.ID].Stock)
	assert.Empty(t, orders.orders)
}

func TestCreateOrderValidation(t *testing.T) {
	shoe := testProduct("Air Zoom", 120, 5)
	user := testUser("amy")
	svc := NewOrderService(newFakeOrderStore(), newFakeProductStore(shoe), newFakeUserStore(user))
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "nope"})
	assert.ErrorIs(t, err, ErrInvalidID)

	_, err = svc.CreateOrder(ctx, CreateOrderInput{UserID: primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = svc.CreateOrder(ctx, CreateOrderInput{UserID: user.ID.Hex()})
	assert.ErrorContains(t, err, "no items")

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		UserID: user.ID.Hex(),
		Items:  []OrderItemInput{{ProductID: shoe.ID.Hex(), Quantity: 0, Size: 40}},
	})
	assert.ErrorContains(t, err, "invalid quantity")

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		UserID: user.ID.Hex(),
		Items:  []OrderItemInput{{ProductID: shoe.ID.Hex(), Quantity: 1, Size: 12}},
	})
	assert.ErrorContains(t, err, "invalid size")

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		UserID: user.ID.Hex(),
		Items:  []OrderItemInput{{ProductID: primitive.NewObjectID().Hex(), Quantity: 1, Size: 40}},
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUpdateStatusDeliveredStampsDeliveryDate(t *testing.T) {
	user := testUser("kim")
	order := &models.Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: "NV123",
		User:        user.ID,
		Status:      models.StatusShipped,
	}
	svc := NewOrderService(newFakeOrderStore(order), newFakeProductStore(), newFakeUserStore(user))

	got, err := svc.UpdateStatus(context.Background(), order.ID.Hex(), models.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.Status)
	require.NotNil(t, got.DeliveryDate)
	assert.WithinDuration(t, time.Now().UTC(), *got.DeliveryDate, 5*time.Second)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	order := &models.Order{ID: primitive.NewObjectID(), Status: models.StatusPending}
	svc := NewOrderService(newFakeOrderStore(order), newFakeProductStore(), newFakeUserStore())

	_, err := svc.UpdateStatus(context.Background(), order.ID.Hex(), "returned")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteOrderUnlinksUser(t *testing.T) {
	user := testUser("lee")
	order := &models.Order{ID: primitive.NewObjectID(), OrderNumber: "NV77", User: user.ID}
	user.OrderIDs = []primitive.ObjectID{order.ID}

	orders := newFakeOrderStore(order)
	users := newFakeUserStore(user)
	svc := NewOrderService(orders, newFakeProductStore(), users)

	require.NoError(t, svc.Delete(context.Background(), order.ID.Hex()))
	assert.Empty(t, orders.orders)
	assert.Empty(t, users.users[user.ID].OrderIDs)
}

func TestInquiryByOrderNumber(t *testing.T) {
	user := testUser("pat")
	order := &models.Order{ID: primitive.NewObjectID(), OrderNumber: "NV555", User: user.ID}
	svc := NewOrderService(newFakeOrderStore(order), newFakeProductStore(), newFakeUserStore(user))

	got, err := svc.Inquiry(context.Background(), "NV555")
	require.NoError(t, err)
	assert.Equal(t, "NV555", got.OrderNumber)
	require.NotNil(t, got.User)
	assert.Equal(t, "pat", got.User.Name)

	_, err = svc.Inquiry(context.Background(), "NV0")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPopulateToleratesDeletedReferences(t *testing.T) {
	// Order referencing a user and product that no longer exist.
	order := &models.Order{
		ID:          primitive.NewObjectID(),
		OrderNumber: "NV9",
		User:        primitive.NewObjectID(),
		Items:       []models.OrderItem{{Product: primitive.NewObjectID(), Quantity: 1, Size: 40}},
	}
	svc := NewOrderService(newFakeOrderStore(order), newFakeProductStore(), newFakeUserStore())

	got, err := svc.GetByID(context.Background(), order.ID.Hex())
	require.NoError(t, err)
	assert.Nil(t, got.User)
	require.Len(t, got.Items, 1)
	assert.Nil(t, got.Items[0].Product)
}
