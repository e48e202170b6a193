package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"keeper/model"
	"keeper/utils"
)

const (
	ScopeUser   = "user"
	ScopeGlobal = "global"
)

// UserLabelStore manages the per-user owned label sets. Implemented by
// repository.UserRepo.
type UserLabelStore interface {
	FindUser(ctx context.Context, userID string) (*model.User, error)
	AddOwnedLabel(ctx context.Context, userID, name string) error
	RenameOwnedLabel(ctx context.Context, userID, oldName, newName string) error
	RemoveOwnedLabel(ctx context.Context, userID, name string) error
}

// LabelFanout rewrites labels across note documents. Implemented by
// repository.NotesRepo. An empty user id widens the write to all users.
type LabelFanout interface {
	OwnersWithLabel(ctx context.Context, label, userID string) ([]string, error)
	RenameLabelAcrossNotes(ctx context.Context, label, newName, userID string) error
	RemoveLabelAcrossNotes(ctx context.Context, label, userID string) error
}

type LabelsService struct {
	Users UserLabelStore
	Notes LabelFanout
	Cache ViewCache
}

// resolveScope maps the request scope to the repository's user filter.
// Global scope is restricted to admins; it rewrites every user's notes.
func resolveScope(scope, userID, role string) (string, error) {
	switch scope {
	case "", ScopeUser:
		return userID, nil
	case ScopeGlobal:
		if role != model.RoleAdmin {
			return "", utils.NewValidationError("global label scope requires admin role")
		}
		return "", nil
	default:
		return "", utils.NewValidationError("scope must be user or global")
	}
}

func (s *LabelsService) List(ctx context.Context, userID string) ([]string, error) {
	user, err := s.Users.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Labels == nil {
		return []string{}, nil
	}
	return user.Labels, nil
}

func (s *LabelsService) Create(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return utils.NewValidationError("label name is required")
	}

	user, err := s.Users.FindUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, label := range user.Labels {
		if label == name {
			return fmt.Errorf("label already exists: %w", utils.ErrConflict)
		}
	}

	return s.Users.AddOwnedLabel(ctx, userID, name)
}

// Rename rewrites the label text on every affected note and owned label
// set, then invalidates cached views for every affected owner - a flag
// of which view changed is unknowable, so all views of all owners go.
// The fan-out is not transactional; a partial failure is logged and
// surfaced, with caches of already-collected owners still invalidated.
func (s *LabelsService) Rename(ctx context.Context, userID, role, oldName, newName, scope string) error {
	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return utils.NewValidationError("old and new label names are required")
	}
	if oldName == newName {
		return nil
	}

	scopeUser, err := resolveScope(scope, userID, role)
	if err != nil {
		return err
	}

	owners, err := s.Notes.OwnersWithLabel(ctx, oldName, scopeUser)
	if err != nil {
		return err
	}
	defer s.invalidateOwners(ctx, userID, owners)

	if err := s.Notes.RenameLabelAcrossNotes(ctx, oldName, newName, scopeUser); err != nil {
		return err
	}
	if err := s.Users.RenameOwnedLabel(ctx, scopeUser, oldName, newName); err != nil {
		return err
	}
	return nil
}

// Delete removes the label from every affected note and owned label set.
func (s *LabelsService) Delete(ctx context.Context, userID, role, name, scope string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return utils.NewValidationError("label name is required")
	}

	scopeUser, err := resolveScope(scope, userID, role)
	if err != nil {
		return err
	}

	owners, err := s.Notes.OwnersWithLabel(ctx, name, scopeUser)
	if err != nil {
		return err
	}
	defer s.invalidateOwners(ctx, userID, owners)

	if err := s.Notes.RemoveLabelAcrossNotes(ctx, name, scopeUser); err != nil {
		return err
	}
	if err := s.Users.RemoveOwnedLabel(ctx, scopeUser, name); err != nil {
		return err
	}
	return nil
}

// invalidateOwners drops cached views for the caller and every owner
// whose notes the fan-out touched, not just the initiating request's.
func (s *LabelsService) invalidateOwners(ctx context.Context, userID string, owners []string) {
	if s.Cache == nil {
		return
	}

	seen := map[string]bool{userID: true}
	s.Cache.InvalidateUser(ctx, userID)
	for _, owner := range owners {
		if seen[owner] {
			continue
		}
		seen[owner] = true
		s.Cache.InvalidateUser(ctx, owner)
	}
	if len(owners) > 1 {
		log.Printf("Label change touched %d owners, invalidated all views", len(owners))
	}
}
