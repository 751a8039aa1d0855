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

// UserRepository reads storefront customer accounts from the "users"
// collection. The dashboard never creates users, only the shop does, so
// there is no insert here.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, wrapErr(err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, wrapErr(err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &user, nil
}

// FindByIDs fetches the given users in one query, keyed by ID. Missing IDs
// are simply absent from the map.
func (r *UserRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.User, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.User{}, nil
	}
	defer metrics.ObserveDBOp("find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, wrapErr(err)
	}
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, wrapErr(err)
	}
	byID := make(map[primitive.ObjectID]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// PushOrder appends the order reference to the user's order list.
func (r *UserRepository) PushOrder(ctx context.Context, userID, orderID primitive.ObjectID) error {
	defer metrics.ObserveDBOp("update", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$push": bson.M{"orders": orderID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return wrapErr(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullOrder removes the order reference from the user's order list.
func (r *UserRepository) PullOrder(ctx context.Context, userID, orderID primitive.ObjectID) error {
	defer metrics.ObserveDBOp("update", time.Now())

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"orders": orderID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
	return wrapErr(err)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBOp("find", time.Now())
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, wrapErr(err)
}
