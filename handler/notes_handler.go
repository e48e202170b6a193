package handler

import (
	"strings"

	"keeper/dto"
	"keeper/usecase"
	"keeper/utils"

	"github.com/gin-gonic/gin"
)

type NotesHandler struct {
	Service *usecase.NotesService
}

func NewNotesHandler(service *usecase.NotesService) *NotesHandler {
	return &NotesHandler{Service: service}
}

func (h *NotesHandler) CreateNote(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Title and description are required")
		return
	}

	userID := c.GetString("userID")
	note, err := h.Service.CreateNote(c.Request.Context(), userID,
		req.Title, req.Description, req.Labels, req.Color, req.Reminder)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, note)
}

// ListNotes serves the default view; the other three views have their
// own routes below. All four go through the view cache.
func (h *NotesHandler) ListNotes(c *gin.Context) {
	h.listView(c, usecase.ViewAll)
}

func (h *NotesHandler) ListArchived(c *gin.Context) {
	h.listView(c, usecase.ViewArchived)
}

func (h *NotesHandler) ListTrash(c *gin.Context) {
	h.listView(c, usecase.ViewTrash)
}

func (h *NotesHandler) ListPinned(c *gin.Context) {
	h.listView(c, usecase.ViewPinned)
}

func (h *NotesHandler) listView(c *gin.Context, view string) {
	userID := c.GetString("userID")

	notes, err := h.Service.ListByView(c.Request.Context(), userID, view)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.NewNotesListResponse(notes))
}

func (h *NotesHandler) ListShared(c *gin.Context) {
	userID := c.GetString("userID")

	notes, err := h.Service.GetSharedNotes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.NewNotesListResponse(notes))
}

func (h *NotesHandler) SearchNotes(c *gin.Context) {
	userID := c.GetString("userID")
	query := c.Query("q")

	var labels []string
	if raw := c.Query("labels"); raw != "" {
		labels = strings.Split(raw, ",")
	}

	notes, err := h.Service.Search(c.Request.Context(), userID, query, labels)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.NewNotesListResponse(notes))
}

func (h *NotesHandler) UpdateNote(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	update := usecase.ContentUpdate{
		Title:       req.Title,
		Description: req.Description,
		Color:       req.Color,
		Reminder:    req.Reminder,
		Checklist:   req.Checklist,
	}
	if err := h.Service.UpdateContent(c.Request.Context(), noteID, userID, update); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note updated successfully"})
}

func (h *NotesHandler) UpdateLabels(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")

	var req dto.UpdateLabelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Labels must be a list of strings")
		return
	}

	if err := h.Service.UpdateLabels(c.Request.Context(), noteID, userID, req.Labels); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Labels updated successfully"})
}

func (h *NotesHandler) TogglePin(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")

	note, err := h.Service.TogglePin(c.Request.Context(), noteID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, note)
}

func (h *NotesHandler) ToggleArchive(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")

	note, err := h.Service.ToggleArchive(c.Request.Context(), noteID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, note)
}

func (h *NotesHandler) MoveToTrash(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")

	if err := h.Service.MoveToTrash(c.Request.Context(), noteID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note moved to trash"})
}

func (h *NotesHandler) RestoreFromTrash(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")

	if err := h.Service.Restore(c.Request.Context(), noteID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note restored"})
}

func (h *NotesHandler) PermanentDelete(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")

	if err := h.Service.PermanentDelete(c.Request.Context(), noteID, userID); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Note permanently deleted"})
}

func (h *NotesHandler) AddCollaborator(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")
	ownerEmail := c.GetString("email")

	var req dto.AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	err := h.Service.AddCollaborator(c.Request.Context(), noteID, userID,
		ownerEmail, req.Email, req.Permission)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Collaborator added successfully"})
}

func (h *NotesHandler) RemoveCollaborator(c *gin.Context) {
	noteID := c.Param("id")
	userID := c.GetString("userID")
	collaboratorID := c.Param("collaboratorId")

	err := h.Service.RemoveCollaborator(c.Request.Context(), noteID, userID, collaboratorID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Collaborator removed"})
}
