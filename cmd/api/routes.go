package main

import (
	"banhchi-platform/internal/httpapi"
	"banhchi-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// AUTH routes (token issuance).
	// NOTE: This is a placeholder login route; real credential validation is not implemented.
	r.POST("/auth/login", h.Login)

	// Attendee surface: event page, live ledger stream, published content.
	// PIN-locked pages gate themselves; no token required.
	{
		r.GET("/events/:event_id/page", h.PublicEventPage)
		r.GET("/events/:event_id/live", h.LiveLedger)
		r.GET("/events/:event_id/content", h.ListEventContent(true))
		r.GET("/content", h.ListStandaloneContent(true))
	}

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(authMW)
	{
		v1.GET("/me", h.Me)

		// EVENT routes
		events := v1.Group("/events")
		{
			events.POST("", h.CreateEvent)
			events.GET("", h.ListEvents)
			events.GET("/:event_id", h.GetEvent)
			events.PATCH("/:event_id", h.UpdateEvent)
			events.PUT("/:event_id/pin", h.SetEventPIN)
			events.DELETE("/:event_id",
				rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleSuperAdmin), h.DeleteEvent)

			// media
			events.POST("/:event_id/banner", h.UploadBanner)
			events.POST("/:event_id/gallery", h.AddGalleryImage)
			events.DELETE("/:event_id/gallery", h.RemoveGalleryImage)

			// LEDGER routes: guests
			events.POST("/:event_id/guests", h.AddGuest)
			events.GET("/:event_id/guests", h.ListGuests)
			events.GET("/:event_id/guests/summary", h.GuestSummary)
			events.GET("/:event_id/guests/:guest_id", h.GetGuest)
			events.PATCH("/:event_id/guests/:guest_id", h.UpdateGuest)
			events.DELETE("/:event_id/guests/:guest_id", h.DeleteGuest)

			// LEDGER routes: expenses
			events.POST("/:event_id/expenses", h.AddExpense)
			events.GET("/:event_id/expenses", h.ListExpenses)
			events.GET("/:event_id/expenses/summary", h.ExpenseSummary)
			events.GET("/:event_id/expenses/:expense_id", h.GetExpense)
			events.PATCH("/:event_id/expenses/:expense_id", h.UpdateExpense)
			events.DELETE("/:event_id/expenses/:expense_id", h.DeleteExpense)

			// history and export
			events.GET("/:event_id/audit", h.ListAudit)
			events.GET("/:event_id/export/guests.csv", h.ExportGuestsCSV)
			events.GET("/:event_id/export/expenses.csv", h.ExportExpensesCSV)

			// drafts included for the admin surface
			events.GET("/:event_id/content", h.ListEventContent(false))
		}

		// CONTENT routes (site-wide editorial)
		contentGroup := v1.Group("/content")
		{
			contentGroup.GET("", h.ListStandaloneContent(false))
			contentGroup.POST("", h.CreateContent)
			contentGroup.PATCH("/:content_id", h.UpdateContent)
			contentGroup.DELETE("/:content_id",
				rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleSuperAdmin), h.DeleteContent)
		}
	}
}
