package dto

import (
	"time"

	"keeper/model"
)

type CreateNoteRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Labels      []string   `json:"labels,omitempty"`
	Color       string     `json:"color,omitempty"`
	Reminder    *time.Time `json:"reminder,omitempty"`
}

// UpdateNoteRequest carries a partial update: only non-nil fields are
// applied, everything else is left untouched.
type UpdateNoteRequest struct {
	Title       *string                `json:"title,omitempty"`
	Description *string                `json:"description,omitempty"`
	Color       *string                `json:"color,omitempty"`
	Reminder    *time.Time             `json:"reminder,omitempty"`
	Checklist   *[]model.ChecklistItem `json:"checklist,omitempty"`
}

type UpdateLabelsRequest struct {
	Labels []string `json:"labels"`
}

type AddCollaboratorRequest struct {
	Email      string `json:"email"`
	Permission string `json:"permission"`
}

type NotesListResponse struct {
	Notes []*model.Note `json:"notes"`
	Count int           `json:"count"`
}

func NewNotesListResponse(notes []*model.Note) *NotesListResponse {
	if notes == nil {
		notes = []*model.Note{}
	}
	return &NotesListResponse{Notes: notes, Count: len(notes)}
}
