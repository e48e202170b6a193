package repository

import (
	"context"
	"errors"
	"time"

	"keeper/model"
	"keeper/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	viewLimit   = 20
	searchLimit = 50
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	dbName := utils.GetEnvAsString("MONGO_DB", "keeper")
	return &NotesRepo{
		MongoCollection: client.Database(dbName).Collection("notes"),
	}
}

// CreateNote inserts a new note. ID and flags are set by the caller.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if note.UserID == "" {
		return utils.NewValidationError("user ID is required")
	}

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now

	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		return storeErr("failed to insert note", err)
	}
	return nil
}

// GetNote retrieves a note scoped to its owner. An ownership mismatch is
// indistinguishable from a missing note.
func (r *NotesRepo) GetNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var note model.Note
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": noteID, "user_id": userID}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrNotFound
		}
		return nil, storeErr("failed to get note", err)
	}
	return &note, nil
}

// SetFlags persists the full lifecycle flag triple in one update, so a
// document can never hold a half-applied transition.
func (r *NotesRepo) SetFlags(ctx context.Context, noteID, userID string, flags model.NoteFlags) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	update := bson.M{
		"$set": bson.M{
			"is_pinned":   flags.Pinned,
			"is_archived": flags.Archived,
			"is_deleted":  flags.Deleted,
			"updated_at":  time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "user_id": userID}, update)
	if err != nil {
		return storeErr("failed to update note flags", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// UpdateFields applies a partial content update. Only the given fields
// are touched.
func (r *NotesRepo) UpdateFields(ctx context.Context, noteID, userID string, fields map[string]interface{}) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "user_id": userID},
		bson.M{"$set": set})
	if err != nil {
		return storeErr("failed to update note", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// ReplaceLabels swaps the note's label set wholesale.
func (r *NotesRepo) ReplaceLabels(ctx context.Context, noteID, userID string, labels []string) error {
	return r.UpdateFields(ctx, noteID, userID, map[string]interface{}{"labels": labels})
}

// Delete removes the note record. Irreversible.
func (r *NotesRepo) Delete(ctx context.Context, noteID, userID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": noteID, "user_id": userID})
	if err != nil {
		return storeErr("failed to delete note", err)
	}
	if result.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// FindByView runs one of the four listing queries. Result is capped at
// viewLimit; "all" sorts pinned notes first.
func (r *NotesRepo) FindByView(ctx context.Context, userID, view string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{"user_id": userID}
	sort := bson.D{{Key: "updated_at", Value: -1}}

	switch view {
	case "all":
		filter["is_deleted"] = false
		filter["is_archived"] = false
		sort = bson.D{{Key: "is_pinned", Value: -1}, {Key: "updated_at", Value: -1}}
	case "archived":
		filter["is_deleted"] = false
		filter["is_archived"] = true
	case "trash":
		filter["is_deleted"] = true
	case "pinned":
		filter["is_deleted"] = false
		filter["is_pinned"] = true
	default:
		return nil, utils.NewValidationError("unknown view: " + view)
	}

	opts := options.Find().SetSort(sort).SetLimit(viewLimit)
	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("failed to list notes", err)
	}
	defer cursor.Close(ctx)

	var notes []*model.Note
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, storeErr("failed to decode notes", err)
	}
	return notes, nil
}

// FindShared lists notes where the user appears as a collaborator.
func (r *NotesRepo) FindShared(ctx context.Context, userID string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{
		"collaborators.user_id": userID,
		"is_deleted":            false,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetLimit(viewLimit)

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("failed to list shared notes", err)
	}
	defer cursor.Close(ctx)

	var notes []*model.Note
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, storeErr("failed to decode shared notes", err)
	}
	return notes, nil
}

// Search runs a relevance-ranked text search over title, description and
// labels, optionally narrowed to notes carrying any of the given labels.
// Trashed notes are excluded; results are capped at searchLimit.
func (r *NotesRepo) Search(ctx context.Context, userID, query string, labels []string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"is_deleted": false,
	}
	if len(labels) > 0 {
		filter["labels"] = bson.M{"$in": labels}
	}

	opts := options.Find().SetLimit(searchLimit)
	if query != "" {
		filter["$text"] = bson.M{"$search": query}
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
		opts.SetSort(bson.D{
			{Key: "score", Value: bson.M{"$meta": "textScore"}},
			{Key: "updated_at", Value: -1},
		})
	} else {
		opts.SetSort(bson.D{{Key: "updated_at", Value: -1}})
	}

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("failed to search notes", err)
	}
	defer cursor.Close(ctx)

	var notes []*model.Note
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, storeErr("failed to decode search results", err)
	}
	return notes, nil
}

// AddCollaborator appends a collaborator record. Duplicate-email checks
// happen in the service layer before this call.
func (r *NotesRepo) AddCollaborator(ctx context.Context, noteID, userID string, collab model.Collaborator) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "user_id": userID},
		bson.M{
			"$push": bson.M{"collaborators": collab},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return storeErr("failed to add collaborator", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// RemoveCollaborator pulls the collaborator by user id. Removing an
// absent collaborator succeeds silently; only a missing note fails.
func (r *NotesRepo) RemoveCollaborator(ctx context.Context, noteID, userID, collaboratorID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "user_id": userID},
		bson.M{
			"$pull": bson.M{"collaborators": bson.M{"user_id": collaboratorID}},
			"$set":  bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return storeErr("failed to remove collaborator", err)
	}
	if result.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// OwnersWithLabel returns the distinct owner ids of notes carrying the
// label. An empty userID widens the query to every user (global scope).
func (r *NotesRepo) OwnersWithLabel(ctx context.Context, label, userID string) ([]string, error) {
	timer := utils.TrackDBOperation("distinct", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{"labels": label}
	if userID != "" {
		filter["user_id"] = userID
	}

	values, err := r.MongoCollection.Distinct(ctx, "user_id", filter)
	if err != nil {
		return nil, storeErr("failed to collect label owners", err)
	}

	owners := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			owners = append(owners, s)
		}
	}
	return owners, nil
}

// RenameLabelAcrossNotes rewrites the label text on every matching note.
// Not transactional: a failure partway leaves some notes renamed.
func (r *NotesRepo) RenameLabelAcrossNotes(ctx context.Context, label, newName, userID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{"labels": label}
	if userID != "" {
		filter["user_id"] = userID
	}

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"elem": label}},
	})
	update := bson.M{
		"$set": bson.M{
			"labels.$[elem]": newName,
			"updated_at":     time.Now(),
		},
	}

	if _, err := r.MongoCollection.UpdateMany(ctx, filter, update, opts); err != nil {
		return storeErr("failed to rename label across notes", err)
	}
	return nil
}

// RemoveLabelAcrossNotes pulls the label from every matching note.
func (r *NotesRepo) RemoveLabelAcrossNotes(ctx context.Context, label, userID string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	filter := bson.M{"labels": label}
	if userID != "" {
		filter["user_id"] = userID
	}

	update := bson.M{
		"$pull": bson.M{"labels": label},
		"$set":  bson.M{"updated_at": time.Now()},
	}

	if _, err := r.MongoCollection.UpdateMany(ctx, filter, update); err != nil {
		return storeErr("failed to remove label across notes", err)
	}
	return nil
}
