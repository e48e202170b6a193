package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"keeper/model"
	"keeper/services"
	"keeper/utils"

	"github.com/google/uuid"
)

const (
	ViewAll      = "all"
	ViewArchived = "archived"
	ViewTrash    = "trash"
	ViewPinned   = "pinned"
)

func ValidView(view string) bool {
	switch view {
	case ViewAll, ViewArchived, ViewTrash, ViewPinned:
		return true
	}
	return false
}

// NotesStore is the authoritative note state. Implemented by
// repository.NotesRepo.
type NotesStore interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetNote(ctx context.Context, noteID, userID string) (*model.Note, error)
	SetFlags(ctx context.Context, noteID, userID string, flags model.NoteFlags) error
	UpdateFields(ctx context.Context, noteID, userID string, fields map[string]interface{}) error
	ReplaceLabels(ctx context.Context, noteID, userID string, labels []string) error
	Delete(ctx context.Context, noteID, userID string) error
	FindByView(ctx context.Context, userID, view string) ([]*model.Note, error)
	FindShared(ctx context.Context, userID string) ([]*model.Note, error)
	Search(ctx context.Context, userID, query string, labels []string) ([]*model.Note, error)
	AddCollaborator(ctx context.Context, noteID, userID string, collab model.Collaborator) error
	RemoveCollaborator(ctx context.Context, noteID, userID, collaboratorID string) error
}

// ViewCache is the derived per-user, per-view index. Implemented by
// services.RedisViewCache. Always best effort.
type ViewCache interface {
	Get(ctx context.Context, userID, view string) ([]*model.Note, bool)
	Put(ctx context.Context, userID, view string, notes []*model.Note)
	InvalidateUser(ctx context.Context, userID string)
}

// UserDirectory resolves collaborator emails to registered users.
// Implemented by repository.UserRepo.
type UserDirectory interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type NotesService struct {
	Store    NotesStore
	Cache    ViewCache
	Users    UserDirectory
	Notifier services.Notifier
}

// ContentUpdate is a typed partial update: nil fields are untouched.
type ContentUpdate struct {
	Title       *string
	Description *string
	Color       *string
	Reminder    *time.Time
	Checklist   *[]model.ChecklistItem
}

func normalizeLabels(labels []string) []string {
	normalized := make([]string, 0, len(labels))
	seen := make(map[string]bool, len(labels))
	for _, label := range labels {
		trimmed := strings.TrimSpace(label)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		normalized = append(normalized, trimmed)
	}
	return normalized
}

func (s *NotesService) invalidateViews(ctx context.Context, userID string) {
	if s.Cache != nil {
		s.Cache.InvalidateUser(ctx, userID)
	}
}

// activeNote loads the note and rejects trashed ones. Missing, deleted
// and unowned all collapse into not-found.
func (s *NotesService) activeNote(ctx context.Context, noteID, userID string) (*model.Note, error) {
	note, err := s.Store.GetNote(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}
	if note.IsDeleted {
		return nil, utils.ErrNotFound
	}
	return note, nil
}

func (s *NotesService) CreateNote(ctx context.Context, userID, title, description string, labels []string, color string, reminder *time.Time) (*model.Note, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" {
		return nil, utils.NewValidationError("note title is required")
	}
	if description == "" {
		return nil, utils.NewValidationError("note description is required")
	}

	note := &model.Note{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Labels:      normalizeLabels(labels),
		Color:       color,
		Reminder:    reminder,
	}

	if err := s.Store.CreateNote(ctx, note); err != nil {
		return nil, err
	}

	utils.TrackNoteOperation("create")
	s.invalidateViews(ctx, userID)
	return note, nil
}

// TogglePin flips the pin flag; pinning forces the note out of the
// archive.
func (s *NotesService) TogglePin(ctx context.Context, noteID, userID string) (*model.Note, error) {
	note, err := s.activeNote(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	flags := note.Flags().TogglePin()
	if err := s.Store.SetFlags(ctx, noteID, userID, flags); err != nil {
		return nil, err
	}
	note.ApplyFlags(flags)

	utils.TrackNoteOperation("pin")
	s.invalidateViews(ctx, userID)
	return note, nil
}

// ToggleArchive flips the archive flag; archiving unpins.
func (s *NotesService) ToggleArchive(ctx context.Context, noteID, userID string) (*model.Note, error) {
	note, err := s.activeNote(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	flags := note.Flags().ToggleArchive()
	if err := s.Store.SetFlags(ctx, noteID, userID, flags); err != nil {
		return nil, err
	}
	note.ApplyFlags(flags)

	utils.TrackNoteOperation("archive")
	s.invalidateViews(ctx, userID)
	return note, nil
}

// UpdateContent applies only the provided fields.
func (s *NotesService) UpdateContent(ctx context.Context, noteID, userID string, update ContentUpdate) error {
	if _, err := s.activeNote(ctx, noteID, userID); err != nil {
		return err
	}

	fields := make(map[string]interface{})
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return utils.NewValidationError("note title cannot be empty")
		}
		fields["title"] = title
	}
	if update.Description != nil {
		description := strings.TrimSpace(*update.Description)
		if description == "" {
			return utils.NewValidationError("note description cannot be empty")
		}
		fields["description"] = description
	}
	if update.Color != nil {
		fields["color"] = *update.Color
	}
	if update.Reminder != nil {
		fields["reminder"] = *update.Reminder
	}
	if update.Checklist != nil {
		fields["checklist"] = *update.Checklist
	}
	if len(fields) == 0 {
		return utils.NewValidationError("no fields to update")
	}

	if err := s.Store.UpdateFields(ctx, noteID, userID, fields); err != nil {
		return err
	}

	utils.TrackNoteOperation("update")
	s.invalidateViews(ctx, userID)
	return nil
}

// UpdateLabels replaces the label set wholesale.
func (s *NotesService) UpdateLabels(ctx context.Context, noteID, userID string, labels []string) error {
	if labels == nil {
		return utils.NewValidationError("labels must be a list of strings")
	}
	if _, err := s.activeNote(ctx, noteID, userID); err != nil {
		return err
	}

	if err := s.Store.ReplaceLabels(ctx, noteID, userID, normalizeLabels(labels)); err != nil {
		return err
	}

	utils.TrackNoteOperation("labels")
	s.invalidateViews(ctx, userID)
	return nil
}

// MoveToTrash soft-deletes the note, clearing pin and archive.
func (s *NotesService) MoveToTrash(ctx context.Context, noteID, userID string) error {
	note, err := s.Store.GetNote(ctx, noteID, userID)
	if err != nil {
		return err
	}
	if note.IsDeleted {
		return utils.ErrNotFound
	}

	if err := s.Store.SetFlags(ctx, noteID, userID, note.Flags().Trash()); err != nil {
		return err
	}

	utils.TrackNoteOperation("trash")
	s.invalidateViews(ctx, userID)
	return nil
}

// Restore is only valid from the trash.
func (s *NotesService) Restore(ctx context.Context, noteID, userID string) error {
	note, err := s.Store.GetNote(ctx, noteID, userID)
	if err != nil {
		return err
	}
	if !note.IsDeleted {
		return utils.ErrNotFound
	}

	if err := s.Store.SetFlags(ctx, noteID, userID, note.Flags().Restore()); err != nil {
		return err
	}

	utils.TrackNoteOperation("restore")
	s.invalidateViews(ctx, userID)
	return nil
}

// PermanentDelete removes the record regardless of trash state.
func (s *NotesService) PermanentDelete(ctx context.Context, noteID, userID string) error {
	if err := s.Store.Delete(ctx, noteID, userID); err != nil {
		return err
	}

	utils.TrackNoteOperation("permanent_delete")
	s.invalidateViews(ctx, userID)
	return nil
}

// AddCollaborator grants a registered user read or write access to the
// note. The invitation notification is fire-and-forget.
func (s *NotesService) AddCollaborator(ctx context.Context, noteID, userID, ownerEmail, email, permission string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return utils.NewValidationError("collaborator email is required")
	}
	if permission != model.PermissionRead && permission != model.PermissionWrite {
		return utils.NewValidationError("permission must be read or write")
	}

	note, err := s.activeNote(ctx, noteID, userID)
	if err != nil {
		return err
	}
	if note.HasCollaborator(email) {
		return fmt.Errorf("collaborator already added: %w", utils.ErrConflict)
	}

	user, err := s.Users.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no registered user with email %s: %w", email, utils.ErrNotFound)
	}

	collab := model.Collaborator{
		UserID:     user.UserID,
		Email:      email,
		Permission: permission,
		AddedAt:    time.Now(),
	}
	if err := s.Store.AddCollaborator(ctx, noteID, userID, collab); err != nil {
		return err
	}

	services.NotifyInviteAsync(s.Notifier, note.Title, ownerEmail, email, permission)

	utils.TrackNoteOperation("add_collaborator")
	s.invalidateViews(ctx, userID)
	return nil
}

// RemoveCollaborator is idempotent: removing an absent collaborator
// succeeds silently.
func (s *NotesService) RemoveCollaborator(ctx context.Context, noteID, userID, collaboratorID string) error {
	if err := s.Store.RemoveCollaborator(ctx, noteID, userID, collaboratorID); err != nil {
		return err
	}

	utils.TrackNoteOperation("remove_collaborator")
	s.invalidateViews(ctx, userID)
	return nil
}

// Search requires a query, labels, or both.
func (s *NotesService) Search(ctx context.Context, userID, query string, labels []string) ([]*model.Note, error) {
	query = strings.TrimSpace(query)
	labels = normalizeLabels(labels)
	if query == "" && len(labels) == 0 {
		return nil, utils.NewValidationError("search requires a query or labels")
	}

	return s.Store.Search(ctx, userID, query, labels)
}

// ListByView serves one of the four views through the cache: probe, on
// miss query the store and repopulate with the view's TTL.
func (s *NotesService) ListByView(ctx context.Context, userID, view string) ([]*model.Note, error) {
	if !ValidView(view) {
		return nil, utils.NewValidationError("unknown view: " + view)
	}

	if s.Cache != nil {
		if notes, ok := s.Cache.Get(ctx, userID, view); ok {
			return notes, nil
		}
	}

	notes, err := s.Store.FindByView(ctx, userID, view)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		s.Cache.Put(ctx, userID, view, notes)
	}
	return notes, nil
}

// GetSharedNotes lists notes shared with the user. Not cached: the cache
// key space covers only the four owner views.
func (s *NotesService) GetSharedNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	return s.Store.FindShared(ctx, userID)
}
