package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/metrics"
)

// OrderRepository persists orders in the "orders" collection.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("orders")}
}

func (r *OrderRepository) List(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	opts := options.Find().SetSort(filter.SortBSON())
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	cur, err := r.col.Find(ctx, filter.BSON(), opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, wrapErr(err)
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &order, nil
}

func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"orderNumber": orderNumber}).Decode(&order)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &order, nil
}

// FindByIDs fetches the given orders in one query, newest first.
func (r *OrderRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Order, error) {
	if len(ids) == 0 {
		return []models.Order{}, nil
	}
	defer metrics.ObserveDBOp("find", time.Now())

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, wrapErr(err)
	}
	return orders, nil
}

// Insert stores the order and fills in its generated ID. The unique index
// on orderNumber surfaces collisions as ErrDuplicateKey so the caller can
// retry with a fresh number.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	defer metrics.ObserveDBOp("insert", time.Now())

	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		return wrapErr(err)
	}
	order.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateStatus sets the order status, and the delivery date when one is
// given, returning the updated document.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string, deliveryDate *time.Time) (*models.Order, error) {
	defer metrics.ObserveDBOp("update", time.Now())

	set := bson.M{
		"status":    status,
		"updatedAt": time.Now().UTC(),
	}
	if deliveryDate != nil {
		set["deliveryDate"] = *deliveryDate
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.Order
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&order)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &order, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveDBOp("delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBOp("find", time.Now())
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, wrapErr(err)
}

// TotalIncome sums totalPrice across all orders.
func (r *OrderRepository) TotalIncome(ctx context.Context) (float64, error) {
	defer metrics.ObserveDBOp("aggregate", time.Now())

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$totalPrice"},
		}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, wrapErr(err)
	}
	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &results); err != nil {
		return 0, wrapErr(err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}
