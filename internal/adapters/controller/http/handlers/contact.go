package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/internal/domain/service"
)

type ContactHandler struct {
	contact *service.ContactService
}

func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

type contactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required,min=10,max=1000"`
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}

	if _, err := h.contact.Submit(c.Request.Context(), req.Name, req.Email, req.Message); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"message": "thanks, we will get back to you"})
}
