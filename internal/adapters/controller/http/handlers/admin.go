package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/internal/domain/entity"
	"github.com/aitbenali/medina-journeys/internal/domain/service"
)

type AdminHandler struct {
	users *service.UserService
	stats *service.StatsService
}

func NewAdminHandler(users *service.UserService, stats *service.StatsService) *AdminHandler {
	return &AdminHandler{
		users: users,
		stats: stats,
	}
}

// ListUsers handles GET /admin/users with pagination and search.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, offset := pagination(c)
	users, err := h.users.GetWithPagination(c.Request.Context(), limit, offset, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.users.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(users))
	for i := range users {
		payload = append(payload, userPayload(&users[i]))
	}
	respond(c, http.StatusOK, gin.H{
		"users": payload,
		"total": total,
	})
}

type roleRequest struct {
	Role entity.Role `json:"role" binding:"required"`
}

// SetRole handles PUT /admin/users/:id/role.
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid user id", false)
		return
	}

	user, err := h.users.SetRole(c.Request.Context(), uint(id), req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": userPayload(user)})
}

// SetDisabled handles POST /admin/users/:id/disable and .../enable.
// Accounts are soft-disabled, never deleted, so registration history is
// kept.
func (h *AdminHandler) SetDisabled(disabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid user id", false)
			return
		}

		user, err := h.users.SetDisabled(c.Request.Context(), uint(id), disabled)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, gin.H{"user": userPayload(user)})
	}
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"stats": stats})
}
