package repository

import (
	"context"
	"errors"
	"testing"

	"keeper/model"
	"keeper/utils"

	"github.com/google/uuid"
)

func userRepoForTest(t *testing.T) *UserRepo {
	db := testDatabase(t)
	return &UserRepo{MongoCollection: db.Collection("users")}
}

func seedUser(t *testing.T, repo *UserRepo, email string) *model.User {
	t.Helper()
	user := &model.User{
		UserID:   uuid.New().String(),
		Name:     "Alice",
		Email:    email,
		Password: "hashed",
		Role:     model.RoleStudent,
	}
	if err := repo.AddUser(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAddUserUniqueEmail(t *testing.T) {
	repo := userRepoForTest(t)
	ctx := context.Background()

	seedUser(t, repo, "alice@example.com")

	dup := &model.User{
		UserID:   uuid.New().String(),
		Email:    "alice@example.com",
		Password: "hashed",
	}
	if err := repo.AddUser(ctx, dup); !errors.Is(err, utils.ErrConflict) {
		t.Errorf("duplicate email should conflict, got %v", err)
	}
}

func TestFindUserByEmailMissingIsNil(t *testing.T) {
	repo := userRepoForTest(t)

	user, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if user != nil {
		t.Errorf("missing email should yield nil, got %+v", user)
	}
}

func TestUpdateAndDeleteUser(t *testing.T) {
	repo := userRepoForTest(t)
	ctx := context.Background()

	user := seedUser(t, repo, "alice@example.com")

	if err := repo.UpdateUser(ctx, user.UserID, map[string]interface{}{"name": "Alicia"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := repo.FindUser(ctx, user.UserID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "Alicia" || got.Email != "alice@example.com" {
		t.Errorf("partial update touched the wrong fields: %+v", got)
	}

	if err := repo.DeleteUser(ctx, user.UserID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.FindUser(ctx, user.UserID); !errors.Is(err, utils.ErrNotFound) {
		t.Errorf("deleted user should be not-found, got %v", err)
	}
}

func TestOwnedLabelLifecycle(t *testing.T) {
	repo := userRepoForTest(t)
	ctx := context.Background()

	user := seedUser(t, repo, "alice@example.com")

	if err := repo.AddOwnedLabel(ctx, user.UserID, "work"); err != nil {
		t.Fatalf("add label: %v", err)
	}
	// $addToSet keeps the set free of duplicates
	if err := repo.AddOwnedLabel(ctx, user.UserID, "work"); err != nil {
		t.Fatalf("re-add label: %v", err)
	}

	got, _ := repo.FindUser(ctx, user.UserID)
	if len(got.Labels) != 1 {
		t.Fatalf("expected one owned label, got %v", got.Labels)
	}

	if err := repo.RenameOwnedLabel(ctx, user.UserID, "work", "office"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	got, _ = repo.FindUser(ctx, user.UserID)
	if got.Labels[0] != "office" {
		t.Errorf("label not renamed: %v", got.Labels)
	}

	if err := repo.RemoveOwnedLabel(ctx, user.UserID, "office"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ = repo.FindUser(ctx, user.UserID)
	if len(got.Labels) != 0 {
		t.Errorf("label not removed: %v", got.Labels)
	}
}
