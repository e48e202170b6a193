package repository

import (
	"context"
	"errors"
	"time"

	"keeper/model"
	"keeper/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(client *mongo.Client) *UserRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "keeper")
	return &UserRepo{
		MongoCollection: client.Database(dbName).Collection("users"),
	}
}

func (r *UserRepo) AddUser(ctx context.Context, user *model.User) error {
	timer := utils.TrackDBOperation("insert", "users")
	defer timer.ObserveDuration()

	if user.Email == "" || user.Password == "" {
		return utils.NewValidationError("email and password required")
	}

	user.CreatedAt = time.Now()
	if _, err := r.MongoCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.ErrConflict
		}
		return storeErr("failed to add user", err)
	}
	return nil
}

// FindUserByEmail returns (nil, nil) when no user has the email.
func (r *UserRepo) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, storeErr("failed to look up user by email", err)
	}
	return &user, nil
}

func (r *UserRepo) FindUser(ctx context.Context, userID string) (*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, storeErr("failed to find user", err)
	}
	return &user, nil
}

func (r *UserRepo) FindAllUsers(ctx context.Context) ([]*model.User, error) {
	timer := utils.TrackDBOperation("find", "users")
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeErr("failed to list users", err)
	}
	defer cursor.Close(ctx)

	var users []*model.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, storeErr("failed to decode users", err)
	}
	return users, nil
}

// UpdateUser applies a partial profile update (name, email, role).
func (r *UserRepo) UpdateUser(ctx context.Context, userID string, fields map[string]interface{}) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M(fields)})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return utils.ErrConflict
		}
		return storeErr("failed to update user", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *UserRepo) DeleteUser(ctx context.Context, userID string) error {
	timer := utils.TrackDBOperation("delete", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return storeErr("failed to delete user", err)
	}
	if result.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// AddOwnedLabel adds the label to the user's owned set, once.
func (r *UserRepo) AddOwnedLabel(ctx context.Context, userID, name string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$addToSet": bson.M{"labels": name}})
	if err != nil {
		return storeErr("failed to add label", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// RenameOwnedLabel rewrites the label in owned sets. An empty userID
// widens the rename to every user.
func (r *UserRepo) RenameOwnedLabel(ctx context.Context, userID, oldName, newName string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	filter := bson.M{"labels": oldName}
	if userID != "" {
		filter["user_id"] = userID
	}

	update := bson.M{"$set": bson.M{"labels.$": newName}}
	if _, err := r.MongoCollection.UpdateMany(ctx, filter, update); err != nil {
		return storeErr("failed to rename owned label", err)
	}
	return nil
}

// RemoveOwnedLabel pulls the label from owned sets. An empty userID
// widens the removal to every user.
func (r *UserRepo) RemoveOwnedLabel(ctx context.Context, userID, name string) error {
	timer := utils.TrackDBOperation("update", "users")
	defer timer.ObserveDuration()

	filter := bson.M{}
	if userID != "" {
		filter["user_id"] = userID
	}

	if _, err := r.MongoCollection.UpdateMany(ctx, filter,
		bson.M{"$pull": bson.M{"labels": name}}); err != nil {
		return storeErr("failed to remove owned label", err)
	}
	return nil
}
