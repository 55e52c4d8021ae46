// Package handlers contains the gin HTTP handlers that translate requests
// and responses to and from the service layer.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/internal/domain/common/errorz"
	"github.com/aitbenali/medina-journeys/internal/domain/entity"
	"github.com/aitbenali/medina-journeys/pkg/money"
)

// Response is the JSON envelope used by every endpoint.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
	})
}

// respondError maps the domain error taxonomy onto HTTP statuses. Payment
// errors carry a retryable flag so clients offer retry only for gateway
// failures, never for declines.
func respondError(c *gin.Context, err error) {
	var ve *errorz.ValidationError

	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ve.Error(), false)
	case errors.Is(err, errorz.ErrNotFound):
		fail(c, http.StatusNotFound, "not found", false)
	case errors.Is(err, errorz.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "invalid email or password", false)
	case errors.Is(err, errorz.ErrSessionExpired):
		fail(c, http.StatusUnauthorized, "session expired", false)
	case errors.Is(err, errorz.ErrForbidden), errors.Is(err, errorz.ErrUserDisabled):
		fail(c, http.StatusForbidden, err.Error(), false)
	case errors.Is(err, errorz.ErrEmailTaken),
		errors.Is(err, errorz.ErrEventFull),
		errors.Is(err, errorz.ErrAlreadyRegistered),
		errors.Is(err, errorz.ErrAlreadyMember),
		errors.Is(err, errorz.ErrHasRegistrations),
		errors.Is(err, errorz.ErrInvalidTransition):
		fail(c, http.StatusConflict, err.Error(), false)
	case errors.Is(err, errorz.ErrPaymentDeclined):
		fail(c, http.StatusPaymentRequired, "payment declined", false)
	case errors.Is(err, errorz.ErrGatewayUnavailable):
		fail(c, http.StatusBadGateway, "payment gateway unavailable, try again later", true)
	default:
		fail(c, http.StatusInternalServerError, "internal error", false)
	}
}

func fail(c *gin.Context, status int, message string, retryable bool) {
	c.JSON(status, Response{
		Success:   false,
		Message:   message,
		Retryable: retryable,
	})
}

func pagination(c *gin.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}

func userPayload(user *entity.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
		"bio":        user.Bio,
		"city":       user.City,
		"interests":  []string(user.Interests),
		"disabled":   user.Disabled,
		"created_at": user.CreatedAt,
	}
}

func eventPayload(event *entity.Event) gin.H {
	return gin.H{
		"id":          event.ID,
		"title":       event.Title,
		"description": event.Description,
		"category":    event.Category,
		"location":    event.Location,
		"city":        event.City,
		"start_time":  event.StartTime,
		"price":       money.FormatAmount(event.PriceMinor),
		"capacity":    event.Capacity,
		"club_id":     event.ClubID,
		"created_at":  event.CreatedAt,
	}
}

func clubPayload(club *entity.Club) gin.H {
	return gin.H{
		"id":          club.ID,
		"name":        club.Name,
		"description": club.Description,
		"category":    club.Category,
		"city":        club.City,
		"manager_id":  club.ManagerID,
		"created_at":  club.CreatedAt,
	}
}

func registrationPayload(registration *entity.EventRegistration) gin.H {
	return gin.H{
		"id":             registration.ID,
		"event_id":       registration.EventID,
		"user_id":        registration.UserID,
		"payment_status": registration.PaymentStatus,
		"registered_at":  registration.CreatedAt,
	}
}
