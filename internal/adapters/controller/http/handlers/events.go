package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/internal/adapters/controller/http/middlewares"
	"github.com/aitbenali/medina-journeys/internal/domain/service"
)

type EventHandler struct {
	events        *service.EventService
	registrations *service.RegistrationService
}

func NewEventHandler(events *service.EventService, registrations *service.RegistrationService) *EventHandler {
	return &EventHandler{
		events:        events,
		registrations: registrations,
	}
}

// List handles GET /events with optional category and city filters.
func (h *EventHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	events, err := h.events.GetUpcoming(c.Request.Context(), limit, offset, c.Query("category"), c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(events))
	for i := range events {
		payload = append(payload, eventPayload(&events[i]))
	}
	respond(c, http.StatusOK, gin.H{"events": payload})
}

// Get handles GET /events/:id.
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	spots, err := h.events.AvailableSpots(c.Request.Context(), event)
	if err != nil {
		respondError(c, err)
		return
	}

	payload := eventPayload(event)
	payload["available_spots"] = spots
	respond(c, http.StatusOK, gin.H{"event": payload})
}

type eventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	City        string    `json:"city" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	Price       string    `json:"price"`
	Capacity    int       `json:"capacity" binding:"required,min=1"`
	ClubID      *string   `json:"club_id"`
}

func (r eventRequest) toInput() service.EventInput {
	return service.EventInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Location:    r.Location,
		City:        r.City,
		StartTime:   r.StartTime,
		Price:       r.Price,
		Capacity:    r.Capacity,
		ClubID:      r.ClubID,
	}
}

// Create handles POST /events (club_manager or admin).
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}

	event, err := h.events.Create(c.Request.Context(), middlewares.CurrentUser(c), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"event": eventPayload(event)})
}

// Update handles PUT /events/:id.
func (h *EventHandler) Update(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}

	event, err := h.events.Update(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"event": eventPayload(event)})
}

// Delete handles DELETE /events/:id. Events with active registrations
// cannot be deleted.
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "event deleted"})
}

// Register handles POST /events/:id/register.
func (h *EventHandler) Register(c *gin.Context) {
	registration, err := h.registrations.Register(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"registration": registrationPayload(registration)})
}
