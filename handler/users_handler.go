package handler

import (
	"context"

	"keeper/dto"
	"keeper/model"
	"keeper/utils"

	"github.com/gin-gonic/gin"
)

type UserProfiles interface {
	FindUser(ctx context.Context, userID string) (*model.User, error)
	FindAllUsers(ctx context.Context) ([]*model.User, error)
	UpdateUser(ctx context.Context, userID string, fields map[string]interface{}) error
	DeleteUser(ctx context.Context, userID string) error
}

type UsersHandler struct {
	Users UserProfiles
}

func NewUsersHandler(users UserProfiles) *UsersHandler {
	return &UsersHandler{Users: users}
}

func (h *UsersHandler) GetUser(c *gin.Context) {
	user, err := h.Users.FindUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, dto.ToUserResponse(user))
}

func (h *UsersHandler) GetAllUsers(c *gin.Context) {
	users, err := h.Users.FindAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.ToUserResponse(user))
	}

	utils.Success(c, gin.H{"count": len(responses), "users": responses})
}

func (h *UsersHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Role != nil {
		if !model.ValidRole(*req.Role) {
			utils.BadRequest(c, "Invalid role")
			return
		}
		fields["role"] = *req.Role
	}
	if len(fields) == 0 {
		utils.BadRequest(c, "No fields to update")
		return
	}

	if err := h.Users.UpdateUser(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "User updated successfully"})
}

func (h *UsersHandler) DeleteUser(c *gin.Context) {
	if err := h.Users.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"message": "User deleted successfully"})
}
