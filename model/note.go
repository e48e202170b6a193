package model

import "time"

const (
	PermissionRead  = "read"
	PermissionWrite = "write"
)

type ChecklistItem struct {
	Text      string `bson:"text" json:"text"`
	Completed bool   `bson:"completed" json:"completed"`
}

type Collaborator struct {
	UserID     string    `bson:"user_id" json:"user_id"`
	Email      string    `bson:"email" json:"email"`
	Permission string    `bson:"permission" json:"permission"`
	AddedAt    time.Time `bson:"added_at" json:"added_at"`
}

type Note struct {
	ID            string          `bson:"_id,omitempty" json:"id"`
	UserID        string          `bson:"user_id" json:"user_id"`
	Title         string          `bson:"title" json:"title"`
	Description   string          `bson:"description" json:"description"`
	Color         string          `bson:"color,omitempty" json:"color,omitempty"`
	Reminder      *time.Time      `bson:"reminder,omitempty" json:"reminder,omitempty"`
	Labels        []string        `bson:"labels,omitempty" json:"labels,omitempty"`
	Checklist     []ChecklistItem `bson:"checklist,omitempty" json:"checklist,omitempty"`
	Collaborators []Collaborator  `bson:"collaborators,omitempty" json:"collaborators,omitempty"`
	IsPinned      bool            `bson:"is_pinned" json:"is_pinned"`
	IsArchived    bool            `bson:"is_archived" json:"is_archived"`
	IsDeleted     bool            `bson:"is_deleted" json:"is_deleted"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `bson:"updated_at" json:"updated_at"`
	SearchScore   float64         `bson:"score,omitempty" json:"search_score,omitempty"`
}

// NoteFlags is the lifecycle flag triple. Transitions always go through
// the methods below so a note can never end up both archived and pinned,
// and a trashed note always has both cleared. The flags are persisted as
// one unit, never individually.
type NoteFlags struct {
	Pinned   bool
	Archived bool
	Deleted  bool
}

func (n *Note) Flags() NoteFlags {
	return NoteFlags{
		Pinned:   n.IsPinned,
		Archived: n.IsArchived,
		Deleted:  n.IsDeleted,
	}
}

func (n *Note) ApplyFlags(f NoteFlags) {
	n.IsPinned = f.Pinned
	n.IsArchived = f.Archived
	n.IsDeleted = f.Deleted
}

// TogglePin flips the pinned flag. Pinning unarchives.
func (f NoteFlags) TogglePin() NoteFlags {
	f.Pinned = !f.Pinned
	if f.Pinned {
		f.Archived = false
	}
	return f
}

// ToggleArchive flips the archived flag. Archiving unpins.
func (f NoteFlags) ToggleArchive() NoteFlags {
	f.Archived = !f.Archived
	if f.Archived {
		f.Pinned = false
	}
	return f
}

// Trash soft-deletes: the note leaves every active view.
func (f NoteFlags) Trash() NoteFlags {
	f.Deleted = true
	f.Pinned = false
	f.Archived = false
	return f
}

// Restore brings a trashed note back to the default view.
func (f NoteFlags) Restore() NoteFlags {
	f.Deleted = false
	return f
}

// HasCollaborator reports whether the email is already on the note.
// Collaborators are keyed by email.
func (n *Note) HasCollaborator(email string) bool {
	for _, c := range n.Collaborators {
		if c.Email == email {
			return true
		}
	}
	return false
}

// IsChecklist reports the rendering mode: any checklist items take
// precedence over the free-text description.
func (n *Note) IsChecklist() bool {
	return len(n.Checklist) > 0
}
