package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"contaluz/internal/service"
)

// UserHandler handles account management endpoints.
type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /api/v1/users
// @Summary Create a user account
// @Description Admin-only. Sends a welcome email on success.
// @Tags users
// @Accept json
// @Produce json
// @Success 201 {object} APIResponse
// @Failure 409 {object} APIResponse "Email already registered"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "email and a password of at least 8 characters are required")
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	// Never expose the hash.
	RespondCreated(c, gin.H{
		"id":        user.ID,
		"email":     user.Email,
		"role":      user.Role,
		"is_active": user.IsActive,
	})
}
