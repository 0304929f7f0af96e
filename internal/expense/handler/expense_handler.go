package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mission-tracker/backend/internal/expense/domain"
	"mission-tracker/backend/internal/expense/service"
	"mission-tracker/backend/internal/platform/httpx"
	"mission-tracker/backend/internal/server/middleware"
)

// Handler exposes expense CRUD over REST.
type Handler struct {
	expenses *service.ExpenseService
}

func NewHandler(expenses *service.ExpenseService) *Handler {
	return &Handler{expenses: expenses}
}

// Register mounts the expense routes on authed, which must carry the auth
// middleware.
func (h *Handler) Register(authed gin.IRoutes) {
	authed.POST("/expenses", h.create)
	authed.GET("/expenses", h.list)
	authed.GET("/expenses/:id", h.get)
	authed.PUT("/expenses/:id", h.update)
	authed.DELETE("/expenses/:id", h.delete)
}

type expenseRequest struct {
	MissionID   *string `json:"mission_id"`
	Category    string  `json:"category" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description"`
}

type expensePayload struct {
	ID          string    `json:"id"`
	MissionID   *string   `json:"mission_id,omitempty"`
	UserID      string    `json:"user_id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toExpensePayload(e *domain.Expense) expensePayload {
	return expensePayload{
		ID:          e.ID,
		MissionID:   e.MissionID,
		UserID:      e.UserID,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "category and amount are required")
		return
	}
	id := middleware.MustIdentity(c)
	e, err := h.expenses.Create(c.Request.Context(), id.AccountID, id.UserID, service.Input{
		MissionID:   req.MissionID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toExpensePayload(e))
}

func (h *Handler) list(c *gin.Context) {
	id := middleware.MustIdentity(c)
	expenses, err := h.expenses.List(c.Request.Context(), id.AccountID, c.Query("mission_id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	out := make([]expensePayload, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpensePayload(e))
	}
	c.JSON(http.StatusOK, gin.H{"expenses": out})
}

func (h *Handler) get(c *gin.Context) {
	id := middleware.MustIdentity(c)
	e, err := h.expenses.Get(c.Request.Context(), id.AccountID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpensePayload(e))
}

func (h *Handler) update(c *gin.Context) {
	var req expenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "category and amount are required")
		return
	}
	id := middleware.MustIdentity(c)
	e, err := h.expenses.Update(c.Request.Context(), id.AccountID, c.Param("id"), service.Input{
		MissionID:   req.MissionID,
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toExpensePayload(e))
}

func (h *Handler) delete(c *gin.Context) {
	id := middleware.MustIdentity(c)
	if err := h.expenses.Delete(c.Request.Context(), id.AccountID, c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}
