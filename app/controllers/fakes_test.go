package controllers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
)

// In-memory stores backing the handler tests.

type fakeAdminStore struct {
	admins map[primitive.ObjectID]*models.Admin
}

func newFakeAdminStore(admins ...*models.Admin) *fakeAdminStore {
	f := &fakeAdminStore{admins: map[primitive.ObjectID]*models.Admin{}}
	for _, a := range admins {
		f.admins[a.ID] = a
	}
	return f
}

func (f *fakeAdminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAdminStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminStore) List(context.Context) ([]models.Admin, error) {
	out := []models.Admin{}
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAdminStore) Insert(_ context.Context, admin *models.Admin) error {
	for _, a := range f.admins {
		if a.Email == admin.Email {
			return repositories.ErrDuplicateKey
		}
	}
	admin.ID = primitive.NewObjectID()
	cp := *admin
	f.admins[admin.ID] = &cp
	return nil
}

func (f *fakeAdminStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if name, ok := set["name"].(string); ok {
		a.Name = name
	}
	if email, ok := set["email"].(string); ok {
		a.Email = email
	}
	if password, ok := set["password"].(string); ok {
		a.Password = password
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.admins[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.admins, id)
	return nil
}

type fakeProductStore struct {
	products   map[primitive.ObjectID]*models.Product
	lastFilter repositories.ProductFilter
}

func newFakeProductStore(products ...*models.Product) *fakeProductStore {
	f := &fakeProductStore{products: map[primitive.ObjectID]*models.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductStore) List(_ context.Context, filter repositories.ProductFilter) ([]models.Product, error) {
	f.lastFilter = filter
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
	for _, existing := range f.products {
		if existing.ProductCode == p.ProductCode {
			return repositories.ErrDuplicateKey
		}
	}
	p.ID = primitive.NewObjectID()
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if stock, ok := set["stock"].(int); ok {
		p.Stock = stock
	}
	if inStock, ok := set["inStock"].(bool); ok {
		p.InStock = inStock
	}
	if name, ok := set["name"].(string); ok {
		p.Name = name
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

type fakeOrderStore struct {
	orders map[primitive.ObjectID]*models.Order
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
	for _, existing := range f.orders {
		if existing.OrderNumber == o.OrderNumber {
			return repositories.ErrDuplicateKey
		}
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
