package handler

import (
	"keeper/dto"
	"keeper/usecase"
	"keeper/utils"

	"github.com/gin-gonic/gin"
)

type LabelsHandler struct {
	Service *usecase.LabelsService
}

func NewLabelsHandler(service *usecase.LabelsService) *LabelsHandler {
	return &LabelsHandler{Service: service}
}

func (h *LabelsHandler) ListLabels(c *gin.Context) {
	userID := c.GetString("userID")

	labels, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"labels": labels})
}

func (h *LabelsHandler) CreateLabel(c *gin.Context) {
	userID := c.GetString("userID")

	var req dto.CreateLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Label name is required")
		return
	}

	if err := h.Service.Create(c.Request.Context(), userID, req.Name); err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, gin.H{"name": req.Name})
}

func (h *LabelsHandler) RenameLabel(c *gin.Context) {
	userID := c.GetString("userID")
	role := c.GetString("role")

	var req dto.RenameLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Old and new label names are required")
		return
	}

	err := h.Service.Rename(c.Request.Context(), userID, role,
		req.OldName, req.NewName, req.Scope)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Label renamed successfully"})
}

func (h *LabelsHandler) DeleteLabel(c *gin.Context) {
	userID := c.GetString("userID")
	role := c.GetString("role")
	name := c.Param("name")
	scope := c.Query("scope")

	if err := h.Service.Delete(c.Request.Context(), userID, role, name, scope); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "Label deleted successfully"})
}
