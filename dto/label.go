package dto

type CreateLabelRequest struct {
	Name string `json:"name" binding:"required"`
}

type RenameLabelRequest struct {
	OldName string `json:"old_name" binding:"required"`
	NewName string `json:"new_name" binding:"required"`
	Scope   string `json:"scope,omitempty"` // "user" (default) or "global"
}
