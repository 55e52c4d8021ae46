package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/internal/adapters/controller/http/middlewares"
	"github.com/aitbenali/medina-journeys/internal/domain/service"
)

type AuthHandler struct {
	auth         *service.AuthService
	sessionTTL   int
	cookieSecure bool
}

func NewAuthHandler(auth *service.AuthService, sessionTTLSeconds int, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		sessionTTL:   sessionTTLSeconds,
		cookieSecure: cookieSecure,
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`
	City      string `json:"city" binding:"required,min=2,max=100"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}

	user, token, err := h.auth.Register(c.Request.Context(), service.SignUp{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		City:      req.City,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	respond(c, http.StatusCreated, gin.H{"user": userPayload(user)})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request: "+err.Error(), false)
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	respond(c, http.StatusOK, gin.H{"user": userPayload(user)})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(middlewares.SessionCookie)
	if err == nil && token != "" {
		if err = h.auth.Logout(c.Request.Context(), token); err != nil {
			respondError(c, err)
			return
		}
	}
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
	respond(c, http.StatusOK, gin.H{"message": "logged out"})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.SessionCookie, token, h.sessionTTL, "/", "", h.cookieSecure, true)
}
