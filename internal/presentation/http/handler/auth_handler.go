package handler

import (
	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/request"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login requests
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// LoginUsers lists the users that can be picked on the login screen
func (h *AuthHandler) LoginUsers(c *gin.Context) {
	users, err := h.authService.ListLoginUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Users retrieved successfully", users)
}

// Login exchanges a user id and PIN for a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		UserID: req.UserID,
		PIN:    req.PIN,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", output)
}

// Me returns the signed-in user
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", service.LoginUser{
		ID:   user.ID,
		Name: user.Name,
		Role: user.Role.String(),
	})
}
