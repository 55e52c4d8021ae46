package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/internal/adapters/controller/http/middlewares"
	"github.com/aitbenali/medina-journeys/internal/domain/service"
)

type MeHandler struct {
	users         *service.UserService
	registrations *service.RegistrationService
	memberships   *service.MembershipService
}

func NewMeHandler(users *service.UserService, registrations *service.RegistrationService, memberships *service.MembershipService) *MeHandler {
	return &MeHandler{
		users:         users,
		registrations: registrations,
		memberships:   memberships,
	}
}

// Profile handles GET /me.
func (h *MeHandler) Profile(c *gin.Context) {
	respond(c, http.StatusOK, gin.H{"user": userPayload(middlewares.CurrentUser(c))})
}

type profileRequest struct {
	FirstName string   `json:"first_name" binding:"omitempty,min=2,max=50"`
	LastName  string   `json:"last_name" binding:"omitempty,min=2,max=50"`
	Bio       string   `json:"bio"`
	City      string   `json:"city"`
	Interests []string `json:"interests"`
}

// UpdateProfile handles PUT /me.
func (h *MeHandler) UpdateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), middlewares.CurrentUser(c), service.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		City:      req.City,
		Interests: req.Interests,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"user": userPayload(user)})
}

// Dashboard handles GET /me/dashboard: upcoming registered events plus
// active club memberships.
func (h *MeHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	user := middlewares.CurrentUser(c)

	upcoming, err := h.registrations.UpcomingForUser(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	clubs, err := h.memberships.ClubsForUser(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	clubsPayload := make([]gin.H, 0, len(clubs))
	for i := range clubs {
		clubsPayload = append(clubsPayload, clubPayload(&clubs[i]))
	}
	respond(c, http.StatusOK, gin.H{
		"upcoming_events": upcoming,
		"clubs":           clubsPayload,
	})
}

// Registrations handles GET /me/registrations.
func (h *MeHandler) Registrations(c *gin.Context) {
	registrations, err := h.registrations.ListForUser(c.Request.Context(), middlewares.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"registrations": registrations})
}

// Clubs handles GET /me/clubs.
func (h *MeHandler) Clubs(c *gin.Context) {
	clubs, err := h.memberships.ClubsForUser(c.Request.Context(), middlewares.CurrentUser(c).ID)
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
