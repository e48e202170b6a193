package usecase

import (
	"context"
	"errors"
	"testing"

	"keeper/model"
	"keeper/utils"
)

type fanoutCall struct {
	op      string
	label   string
	newName string
	userID  string
}

// memLabelStore fakes the per-user owned label sets plus the note
// fan-out, recording every fan-out call for assertion.
type memLabelStore struct {
	users  map[string]*model.User
	owners []string
	calls  []fanoutCall
}

func (s *memLabelStore) FindUser(ctx context.Context, userID string) (*model.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return user, nil
}

func (s *memLabelStore) AddOwnedLabel(ctx context.Context, userID, name string) error {
	user, ok := s.users[userID]
	if !ok {
		return utils.ErrNotFound
	}
	user.Labels = append(user.Labels, name)
	return nil
}

func (s *memLabelStore) RenameOwnedLabel(ctx context.Context, userID, oldName, newName string) error {
	s.calls = append(s.calls, fanoutCall{op: "rename_owned", label: oldName, newName: newName, userID: userID})
	for _, user := range s.users {
		if userID != "" && user.UserID != userID {
			continue
		}
		for i, label := range user.Labels {
			if label == oldName {
				user.Labels[i] = newName
			}
		}
	}
	return nil
}

func (s *memLabelStore) RemoveOwnedLabel(ctx context.Context, userID, name string) error {
	s.calls = append(s.calls, fanoutCall{op: "remove_owned", label: name, userID: userID})
	for _, user := range s.users {
		if userID != "" && user.UserID != userID {
			continue
		}
		kept := user.Labels[:0]
		for _, label := range user.Labels {
			if label != name {
				kept = append(kept, label)
			}
		}
		user.Labels = kept
	}
	return nil
}

func (s *memLabelStore) OwnersWithLabel(ctx context.Context, label, userID string) ([]string, error) {
	if userID != "" {
		return []string{userID}, nil
	}
	return s.owners, nil
}

func (s *memLabelStore) RenameLabelAcrossNotes(ctx context.Context, label, newName, userID string) error {
	s.calls = append(s.calls, fanoutCall{op: "rename_notes", label: label, newName: newName, userID: userID})
	return nil
}

func (s *memLabelStore) RemoveLabelAcrossNotes(ctx context.Context, label, userID string) error {
	s.calls = append(s.calls, fanoutCall{op: "remove_notes", label: label, userID: userID})
	return nil
}

func newLabelsService(owners []string) (*LabelsService, *memLabelStore, *memCache) {
	store := &memLabelStore{
		users: map[string]*model.User{
			"u1": {UserID: "u1", Role: model.RoleStudent, Labels: []string{"work", "home"}},
			"u2": {UserID: "u2", Role: model.RoleStudent, Labels: []string{"work"}},
			"a1": {UserID: "a1", Role: model.RoleAdmin},
		},
		owners: owners,
	}
	cache := newMemCache()
	return &LabelsService{Users: store, Notes: store, Cache: cache}, store, cache
}

func TestListLabels(t *testing.T) {
	svc, _, _ := newLabelsService(nil)

	labels, err := svc.List(context.Background(), "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(labels) != 2 {
		t.Errorf("expected 2 labels, got %v", labels)
	}

	// a user with no labels gets an empty slice, not nil
	labels, err = svc.List(context.Background(), "a1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if labels == nil || len(labels) != 0 {
		t.Errorf("expected empty slice, got %#v", labels)
	}
}

func TestCreateLabel(t *testing.T) {
	svc, store, _ := newLabelsService(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		label string
		check func(t *testing.T, err error)
	}{
		{"Empty", "  ", func(t *testing.T, err error) {
			if !utils.IsValidationError(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		}},
		{"Duplicate", "work", func(t *testing.T, err error) {
			if !errors.Is(err, utils.ErrConflict) {
				t.Errorf("expected conflict, got %v", err)
			}
		}},
		{"Success", "errands", func(t *testing.T, err error) {
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, svc.Create(ctx, "u1", tc.label))
		})
	}

	if got := store.users["u1"].Labels; len(got) != 3 || got[2] != "errands" {
		t.Errorf("owned labels after create: %v", got)
	}
}

func TestRenameLabelUserScope(t *testing.T) {
	svc, store, cache := newLabelsService(nil)
	ctx := context.Background()

	if err := svc.Rename(ctx, "u1", model.RoleStudent, "work", "office", ""); err != nil {
		t.Fatalf("rename: %v", err)
	}

	if got := store.users["u1"].Labels[0]; got != "office" {
		t.Errorf("owned label not renamed: %v", store.users["u1"].Labels)
	}
	if got := store.users["u2"].Labels[0]; got != "work" {
		t.Errorf("user scope must not touch other users: %v", store.users["u2"].Labels)
	}

	var sawNotes bool
	for _, call := range store.calls {
		if call.op == "rename_notes" {
			sawNotes = true
			if call.userID != "u1" {
				t.Errorf("note fan-out should be scoped to u1, got %q", call.userID)
			}
		}
	}
	if !sawNotes {
		t.Error("rename never reached the notes collection")
	}
	if cache.invalidations == 0 {
		t.Error("rename must invalidate cached views")
	}
}

func TestRenameLabelValidation(t *testing.T) {
	svc, store, _ := newLabelsService(nil)
	ctx := context.Background()

	if err := svc.Rename(ctx, "u1", model.RoleStudent, "", "x", ""); !utils.IsValidationError(err) {
		t.Errorf("empty old name should be a validation error, got %v", err)
	}

	// same-name rename is a no-op
	if err := svc.Rename(ctx, "u1", model.RoleStudent, "work", "work", ""); err != nil {
		t.Errorf("same-name rename should succeed, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("same-name rename must not fan out, got %v", store.calls)
	}
}

func TestGlobalScopeRequiresAdmin(t *testing.T) {
	svc, _, _ := newLabelsService(nil)
	ctx := context.Background()

	if err := svc.Rename(ctx, "u1", model.RoleStudent, "work", "office", ScopeGlobal); !utils.IsValidationError(err) {
		t.Errorf("global rename by non-admin should fail validation, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", model.RoleStudent, "work", ScopeGlobal); !utils.IsValidationError(err) {
		t.Errorf("global delete by non-admin should fail validation, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", model.RoleStudent, "work", "everything"); !utils.IsValidationError(err) {
		t.Errorf("unknown scope should fail validation, got %v", err)
	}
}

func TestGlobalRenameInvalidatesAllOwners(t *testing.T) {
	svc, store, cache := newLabelsService([]string{"u1", "u2", "u2"})
	ctx := context.Background()

	if err := svc.Rename(ctx, "a1", model.RoleAdmin, "work", "office", ScopeGlobal); err != nil {
		t.Fatalf("global rename: %v", err)
	}

	for _, call := range store.calls {
		if call.userID != "" {
			t.Errorf("global fan-out must not be user scoped: %+v", call)
		}
	}
	if store.users["u1"].Labels[0] != "office" || store.users["u2"].Labels[0] != "office" {
		t.Error("global rename missed an owned label set")
	}

	// caller plus two distinct owners
	if cache.invalidations != 3 {
		t.Errorf("expected 3 cache invalidations, got %d", cache.invalidations)
	}
}

func TestDeleteLabel(t *testing.T) {
	svc, store, cache := newLabelsService(nil)
	ctx := context.Background()

	if err := svc.Delete(ctx, "u1", model.RoleStudent, " ", ""); !utils.IsValidationError(err) {
		t.Errorf("blank name should fail validation, got %v", err)
	}

	if err := svc.Delete(ctx, "u1", model.RoleStudent, "work", ""); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if got := store.users["u1"].Labels; len(got) != 1 || got[0] != "home" {
		t.Errorf("owned labels after delete: %v", got)
	}
	var sawNotes bool
	for _, call := range store.calls {
		if call.op == "remove_notes" && call.label == "work" && call.userID == "u1" {
			sawNotes = true
		}
	}
	if !sawNotes {
		t.Error("delete never reached the notes collection")
	}
	if cache.invalidations == 0 {
		t.Error("delete must invalidate cached views")
	}
}
