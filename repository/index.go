package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	notesCollection := db.Collection("notes")
	usersCollection := db.Collection("users")

	noteIndexes := []mongo.IndexModel{
		// View queries: owner plus lifecycle flags, newest first
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_deleted", Value: 1},
				{Key: "is_archived", Value: 1},
				{Key: "updated_at", Value: -1},
			},
			Options: options.Index().SetName("user_view_notes"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_deleted", Value: 1},
				{Key: "is_pinned", Value: 1},
				{Key: "updated_at", Value: -1},
			},
			Options: options.Index().SetName("user_pinned_notes"),
		},
		// Shared-with-me lookup
		{
			Keys: bson.D{
				{Key: "collaborators.user_id", Value: 1},
				{Key: "is_deleted", Value: 1},
			},
			Options: options.Index().SetName("note_collaborators"),
		},
		// Label fan-out
		{
			Keys: bson.D{
				{Key: "labels", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().SetName("note_labels"),
		},
		// Weighted full-text search
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "labels", Value: "text"},
			},
			Options: options.Index().
				SetName("text_search").
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "description", Value: 5},
					{Key: "labels", Value: 3},
				}),
		},
	}

	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName("user_email_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("user_id_index").SetUnique(true),
		},
	}

	if _, err := notesCollection.Indexes().CreateMany(ctx, noteIndexes); err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}
	if _, err := usersCollection.Indexes().CreateMany(ctx, userIndexes); err != nil {
		return fmt.Errorf("failed to create users indexes: %w", err)
	}

	log.Println("Successfully created all indexes")
	return nil
}
