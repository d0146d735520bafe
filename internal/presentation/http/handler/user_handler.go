package handler

import (
	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/request"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user management requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns every user
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Users retrieved successfully", users)
}

// ListDrivers returns the users with the driver role
func (h *UserHandler) ListDrivers(c *gin.Context) {
	drivers, err := h.userService.ListDrivers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Drivers retrieved successfully", drivers)
}

// Get returns a user by id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", user)
}

// Create adds a user
func (h *UserHandler) Create(c *gin.Context) {
	var req request.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), toUserInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", user)
}

// Update changes a user's name, PIN and role
func (h *UserHandler) Update(c *gin.Context) {
	var req request.UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), c.Param("id"), toUserInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User updated successfully", user)
}

// Delete removes a user. Users cannot delete themselves.
func (h *UserHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == GetUserID(c) {
		response.BadRequest(c, "You cannot delete the user you are signed in as")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deleted successfully", nil)
}

func toUserInput(req *request.UserRequest) *service.UserInput {
	return &service.UserInput{
		ID:   req.ID,
		Name: req.Name,
		PIN:  req.PIN,
		Role: req.Role,
	}
}
