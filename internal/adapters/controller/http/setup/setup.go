// Package setup wires the HTTP handlers and middlewares onto the router.
package setup

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aitbenali/medina-journeys/cmd/app"
	"github.com/aitbenali/medina-journeys/internal/adapters/controller/http/handlers"
	"github.com/aitbenali/medina-journeys/internal/adapters/controller/http/middlewares"
	"github.com/aitbenali/medina-journeys/internal/domain/authz"
)

func Setup(a *app.App) *gin.Engine {
	if !a.Config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	mw := middlewares.New(a.Logger, a.Auth)

	authHandler := handlers.NewAuthHandler(a.Auth, int(a.Config.SessionTTL.Seconds()), a.Config.CookieSecure)
	eventHandler := handlers.NewEventHandler(a.Events, a.Registrations)
	registrationHandler := handlers.NewRegistrationHandler(a.Registrations)
	clubHandler := handlers.NewClubHandler(a.Clubs, a.Events, a.Memberships)
	meHandler := handlers.NewMeHandler(a.Users, a.Registrations, a.Memberships)
	adminHandler := handlers.NewAdminHandler(a.Users, a.Stats)
	contactHandler := handlers.NewContactHandler(a.Contact)

	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public surface.
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.GET("/events", eventHandler.List)
	r.GET("/events/:id", eventHandler.Get)
	r.GET("/clubs", clubHandler.List)
	r.GET("/clubs/:id", clubHandler.Get)
	r.POST("/contact", contactHandler.Submit)

	// Anything below requires a session.
	authed := r.Group("", mw.Authorized())
	{
		authed.POST("/auth/logout", authHandler.Logout)

		authed.GET("/me", meHandler.Profile)
		authed.PUT("/me", meHandler.UpdateProfile)
		authed.GET("/me/dashboard", meHandler.Dashboard)
		authed.GET("/me/registrations", meHandler.Registrations)
		authed.GET("/me/clubs", meHandler.Clubs)

		authed.POST("/events/:id/register", eventHandler.Register)
		authed.GET("/registrations/:id", registrationHandler.Get)
		authed.POST("/registrations/:id/pay", registrationHandler.Pay)
		authed.GET("/registrations/:id/ticket", registrationHandler.Ticket)

		authed.POST("/clubs", clubHandler.Create)
		authed.POST("/clubs/:id/join", clubHandler.Join)
		authed.POST("/clubs/:id/leave", clubHandler.Leave)

		manage := authed.Group("", mw.RequireCapability(authz.ManageEvents))
		{
			manage.POST("/events", eventHandler.Create)
			manage.PUT("/events/:id", eventHandler.Update)
			manage.DELETE("/events/:id", eventHandler.Delete)
		}

		authed.PUT("/clubs/:id", mw.RequireCapability(authz.ManageOwnClub), clubHandler.Update)
		authed.DELETE("/clubs/:id", mw.RequireCapability(authz.ManageClubs), clubHandler.Delete)
		authed.POST("/registrations/:id/refund", mw.RequireCapability(authz.RefundPayments), registrationHandler.Refund)

		admin := authed.Group("/admin", mw.RequireCapability(authz.ViewAdmin))
		{
			admin.GET("/stats", adminHandler.Stats)
			admin.GET("/users", adminHandler.ListUsers)
			admin.PUT("/users/:id/role", adminHandler.SetRole)
			admin.POST("/users/:id/disable", adminHandler.SetDisabled(true))
			admin.POST("/users/:id/enable", adminHandler.SetDisabled(false))
		}
	}

	return r
}
