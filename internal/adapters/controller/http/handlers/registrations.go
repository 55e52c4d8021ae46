package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/internal/adapters/controller/http/middlewares"
	"github.com/aitbenali/medina-journeys/internal/domain/service"
)

type RegistrationHandler struct {
	registrations *service.RegistrationService
}

func NewRegistrationHandler(registrations *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
	}
}

// Get handles GET /registrations/:id.
func (h *RegistrationHandler) Get(c *gin.Context) {
	registration, err := h.registrations.Get(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"registration": registrationPayload(registration)})
}

type payRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// Pay handles POST /registrations/:id/pay. It charges a pending
// registration or retries a failed one. A decline leaves the registration
// in failed status; a gateway failure is flagged retryable.
func (h *RegistrationHandler) Pay(c *gin.Context) {
	var req payRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}

	registration, err := h.registrations.Pay(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id"), req.PaymentMethod)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"registration": registrationPayload(registration)})
}

// Refund handles POST /registrations/:id/refund (admin only).
func (h *RegistrationHandler) Refund(c *gin.Context) {
	registration, err := h.registrations.Refund(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"registration": registrationPayload(registration)})
}

// Ticket handles GET /registrations/:id/ticket, serving the QR pass for a
// paid registration.
func (h *RegistrationHandler) Ticket(c *gin.Context) {
	png, err := h.registrations.Ticket(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
