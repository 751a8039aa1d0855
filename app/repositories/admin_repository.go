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

// AdminRepository persists operator accounts in the "admins" collection.
type AdminRepository struct {
	col *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{col: db.Collection("admins")}
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	var admin models.Admin
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&admin)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &admin, nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	var admin models.Admin
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &admin, nil
}

func (r *AdminRepository) List(ctx context.Context) ([]models.Admin, error) {
	defer metrics.ObserveDBOp("find", time.Now())

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, wrapErr(err)
	}
	admins := []models.Admin{}
	if err := cur.All(ctx, &admins); err != nil {
		return nil, wrapErr(err)
	}
	return admins, nil
}

// Insert stores the admin and fills in its generated ID. Returns
// ErrDuplicateKey when the email is already registered.
func (r *AdminRepository) Insert(ctx context.Context, admin *models.Admin) error {
	defer metrics.ObserveDBOp("insert", time.Now())

	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	res, err := r.col.InsertOne(ctx, admin)
	if err != nil {
		return wrapErr(err)
	}
	admin.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// Update applies the given field set and returns the updated document.
func (r *AdminRepository) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.Admin, error) {
	defer metrics.ObserveDBOp("update", time.Now())

	set["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var admin models.Admin
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&admin)
	if err != nil {
		return nil, wrapErr(err)
	}
	return &admin, nil
}

func (r *AdminRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
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

func (r *AdminRepository) Count(ctx context.Context) (int64, error) {
	defer metrics.ObserveDBOp("find", time.Now())
	n, err := r.col.CountDocuments(ctx, bson.M{})
	return n, wrapErr(err)
}
