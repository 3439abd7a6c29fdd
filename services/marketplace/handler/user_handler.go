package handler

import (
	"net/http"

	"bid-marketplace/services/marketplace/helpers"
	"bid-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// ListUsersHandler handles GET /api/users
func (h *MarketplaceHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, message)
		utils.Error("ListUsersHandler: error retrieving users", map[string]any{
			"error": err.Error(),
		})
		return
	}

	out := make([]helpers.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, helpers.NewUserResponse(user))
	}

	utils.JSONData(c, http.StatusOK, "users", out)
}
