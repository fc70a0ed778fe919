package httpapi

import (
	"net/http"

	"banhchi-platform/internal/auth"
	"banhchi-platform/internal/expense"
	"banhchi-platform/internal/export"
	"banhchi-platform/internal/guest"
	"banhchi-platform/internal/summary"

	"github.com/gin-gonic/gin"
)

// --- Guests ---

func (h Handlers) AddGuest(c *gin.Context) {
	var in guest.NewGuest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	g, err := h.Guests.Add(c.Request.Context(), auth.ActorID(c.Request.Context()), c.Param("event_id"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// ListGuests returns the event's guests, narrowed by the optional
// q, channel and location query params, plus the distinct location list
// for filter dropdowns.
func (h Handlers) ListGuests(c *gin.Context) {
	gs, err := h.Guests.List(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	channel := guest.Channel(c.DefaultQuery("channel", string(guest.ChannelAll)))
	location := c.DefaultQuery("location", guest.LocationAll)
	filtered := guest.Filter(gs, c.Query("q"), channel, location)

	c.JSON(http.StatusOK, gin.H{
		"guests":    filtered,
		"locations": guest.Locations(gs),
	})
}

func (h Handlers) GetGuest(c *gin.Context) {
	g, err := h.Guests.Get(c.Request.Context(), c.Param("event_id"), c.Param("guest_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h Handlers) UpdateGuest(c *gin.Context) {
	var p guest.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	g, err := h.Guests.Update(c.Request.Context(), auth.ActorID(c.Request.Context()), c.Param("event_id"), c.Param("guest_id"), p)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h Handlers) DeleteGuest(c *gin.Context) {
	err := h.Guests.Delete(c.Request.Context(), auth.ActorID(c.Request.Context()), c.Param("event_id"), c.Param("guest_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) GuestSummary(c *gin.Context) {
	gs, err := h.Guests.List(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary.GuestTotals(gs))
}

// --- Expenses ---

func (h Handlers) AddExpense(c *gin.Context) {
	var in expense.NewExpense
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	e, err := h.Expenses.Add(c.Request.Context(), auth.ActorID(c.Request.Context()), c.Param("event_id"), in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h Handlers) ListExpenses(c *gin.Context) {
	es, err := h.Expenses.List(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expenses": es})
}

func (h Handlers) GetExpense(c *gin.Context) {
	e, err := h.Expenses.Get(c.Request.Context(), c.Param("event_id"), c.Param("expense_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h Handlers) UpdateExpense(c *gin.Context) {
	var p expense.Patch
	if err := c.ShouldBindJSON(&p); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	e, err := h.Expenses.Update(c.Request.Context(), auth.ActorID(c.Request.Context()), c.Param("event_id"), c.Param("expense_id"), p)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h Handlers) DeleteExpense(c *gin.Context) {
	err := h.Expenses.Delete(c.Request.Context(), auth.ActorID(c.Request.Context()), c.Param("event_id"), c.Param("expense_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) ExpenseSummary(c *gin.Context) {
	es, err := h.Expenses.List(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary.ExpenseTotals(es))
}

// --- Audit ---

func (h Handlers) ListAudit(c *gin.Context) {
	entries, err := h.Audit.List(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// --- CSV export ---

func (h Handlers) ExportGuestsCSV(c *gin.Context) {
	gs, err := h.Guests.List(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="guests.csv"`)
	if err := export.Guests(c.Writer, gs); err != nil {
		_ = c.Error(err)
	}
}

func (h Handlers) ExportExpensesCSV(c *gin.Context) {
	es, err := h.Expenses.List(c.Request.Context(), c.Param("event_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="expenses.csv"`)
	if err := export.Expenses(c.Writer, es); err != nil {
		_ = c.Error(err)
	}
}
