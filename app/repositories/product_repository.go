package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/metrics"
)

// ErrInsufficientStock means a stock decrement would have driven the
// product's stock below zero; the write did not happen.
var ErrInsufficientStock = errors.New("repositories: insufficient stock")

// ProductRepository persists catalog entries in the "products" collection.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection("products")}
}

func (r *ProductRepository) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	opts := options.Find().SetSort(filter.SortBSON())
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	cur, err := r.col.Find(ctx, filter.BSON(), opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, wrapErr(err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	var product models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &product, nil
}

// FindByIDs fetches the given products in one query, keyed by ID.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.Product{}, nil
	}
	defer metrics.ObserveDBOp("find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, wrapErr(err)
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, wrapErr(err)
	}
	byID := make(map[primitive.ObjectID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// Insert stores the product and fills in its generated ID. Returns
// ErrDuplicateKey when the product code is taken.
func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	defer metrics.ObserveDBOp("insert", time.Now())

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, product)
	if err != nil {
		return wrapErr(err)
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies the given field set and returns the updated document.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Product, error) {
	defer metrics.ObserveDBOp("update", time.Now())

	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product models.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
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

// DecrementStock atomically subtracts qty from the product's stock. The
// filter requires stock >= qty so a concurrent decrement can never push the
// count negative; when the guard fails the product is re-read to distinguish
// a missing product from insufficient stock.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	defer metrics.ObserveDBOp("update", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"stock": -qty},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return ErrInsufficientStock
	}

	// Keep the availability flag in sync when the decrement drained the
	// last unit.
	_, err = r.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$lte": 0}},
		bson.M{"$set": bson.M{"inStock": false}},
	)
	return wrapErr(err)
}

// IncrementStock adds qty back to the product's stock. Used to compensate a
// failed order after some lines were already decremented.
func (r *ProductRepository) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	defer metrics.ObserveDBOp("update", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": qty},
			"$set": bson.M{"inStock": true, "updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBOp("find", time.Now())
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, wrapErr(err)
}
