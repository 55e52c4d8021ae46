package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/internal/adapters/controller/http/middlewares"
	"github.com/aitbenali/medina-journeys/internal/domain/service"
)

type ClubHandler struct {
	clubs       *service.ClubService
	events      *service.EventService
	memberships *service.MembershipService
}

func NewClubHandler(clubs *service.ClubService, events *service.EventService, memberships *service.MembershipService) *ClubHandler {
	return &ClubHandler{
		clubs:       clubs,
		events:      events,
		memberships: memberships,
	}
}

// List handles GET /clubs with optional category and city filters.
func (h *ClubHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	clubs, err := h.clubs.GetWithPagination(c.Request.Context(), limit, offset, c.Query("category"), c.Query("city"))
	if err != nil {
		respondError(c, err)
		return
	}

	payload := make([]gin.H, 0, len(clubs))
	for i := range clubs {
		payload = append(payload, clubPayload(&clubs[i]))
	}
	respond(c, http.StatusOK, gin.H{"clubs": payload})
}

// Get handles GET /clubs/:id, including upcoming events and member count.
func (h *ClubHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	club, err := h.clubs.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	events, err := h.events.GetUpcomingByClubID(ctx, club.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	members, err := h.memberships.CountActiveByClubID(ctx, club.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	eventsPayload := make([]gin.H, 0, len(events))
	for i := range events {
		eventsPayload = append(eventsPayload, eventPayload(&events[i]))
	}
	payload := clubPayload(club)
	payload["member_count"] = members
	payload["upcoming_events"] = eventsPayload
	respond(c, http.StatusOK, gin.H{"club": payload})
}

type clubRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	City        string `json:"city" binding:"required"`
}

func (r clubRequest) toInput() service.ClubInput {
	return service.ClubInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		City:        r.City,
	}
}

// Create handles POST /clubs. Any authenticated user may create a club;
// members get promoted to club_manager.
func (h *ClubHandler) Create(c *gin.Context) {
	var req clubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}

	club, err := h.clubs.Create(c.Request.Context(), middlewares.CurrentUser(c), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"club": clubPayload(club)})
}

// Update handles PUT /clubs/:id.
func (h *ClubHandler) Update(c *gin.Context) {
	var req clubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}

	club, err := h.clubs.Update(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"club": clubPayload(club)})
}

// Delete handles DELETE /clubs/:id (admin only). Clubs whose events carry
// registrations cannot be deleted.
func (h *ClubHandler) Delete(c *gin.Context) {
	if err := h.clubs.Delete(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "club deleted"})
}

// Join handles POST /clubs/:id/join.
func (h *ClubHandler) Join(c *gin.Context) {
	membership, err := h.memberships.Join(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"membership": gin.H{
		"id":      membership.ID,
		"club_id": membership.ClubID,
		"status":  membership.Status,
	}})
}

// Leave handles POST /clubs/:id/leave.
func (h *ClubHandler) Leave(c *gin.Context) {
	if err := h.memberships.Leave(c.Request.Context(), middlewares.CurrentUser(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"message": "left the club"})
}
