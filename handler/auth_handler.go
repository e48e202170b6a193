package handler

import (
	"context"

	"keeper/dto"
	"keeper/model"
	"keeper/services"
	"keeper/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserAccounts is the slice of the user store that signup/login needs.
type UserAccounts interface {
	AddUser(ctx context.Context, user *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
}

type AuthHandler struct {
	Users UserAccounts
}

func NewAuthHandler(users UserAccounts) *AuthHandler {
	return &AuthHandler{Users: users}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "signup")
		utils.BadRequest(c, "Please provide all required fields: name, email, password")
		return
	}

	if req.Role != "" && !model.ValidRole(req.Role) {
		utils.BadRequest(c, "Invalid role")
		return
	}

	ctx := c.Request.Context()
	existing, err := h.Users.FindUserByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if existing != nil {
		utils.TrackAuthAttempt("failure", "signup")
		utils.Conflict(c, "This account already exists")
		return
	}

	hashed, err := services.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	user := &model.User{
		UserID:   uuid.New().String(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     req.Role,
	}
	if err := h.Users.AddUser(ctx, user); err != nil {
		respondError(c, err)
		return
	}

	utils.TrackAuthAttempt("success", "signup")
	utils.Created(c, dto.ToUserResponse(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Please provide email and password")
		return
	}

	user, err := h.Users.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	// Missing user and wrong password answer identically
	if user == nil || !services.ComparePasswords(user.Password, req.Password) {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	token, err := services.GenerateJWT(user.UserID, user.Email, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}
