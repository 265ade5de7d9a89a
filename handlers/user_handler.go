package handlers

import (
	"blog-api/helper"
	"blog-api/models"
	"blog-api/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService services.UserService
	postService services.PostService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, postService services.PostService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, postService: postService, Helper: h}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	user, err := h.userService.CreateUser(req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "User created successfully", user)
}

// GetUsers lists users, or looks one up when ?username= is given.
func (h *UserHandler) GetUsers(c *gin.Context) {
	var params models.LookupParams
	if !bindQuery(c, h.Helper, &params) {
		return
	}

	if params.Username != "" {
		user, err := h.userService.GetUserByUsername(params.Username)
		if err != nil {
			h.Helper.SendServiceError(c, err)
			return
		}
		h.Helper.SendSuccess(c, "Success", user)
		return
	}

	users, err := h.userService.GetUsers()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	user, err := h.userService.UpdateUser(id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User updated successfully", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User deleted successfully", h.Helper.EmptyJsonMap())
}

func (h *UserHandler) GetUserPosts(c *gin.Context) {
	id, ok := parseID(c, h.Helper, "id")
	if !ok {
		return
	}

	posts, err := h.postService.GetPostsByAuthor(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", posts)
}
