package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mission-tracker/backend/internal/dashboard/repository"
	"mission-tracker/backend/internal/platform/httpx"
	"mission-tracker/backend/internal/server/middleware"
)

// Handler exposes the per-account dashboard summary.
type Handler struct {
	dashboard repository.Repository
}

func NewHandler(dashboard repository.Repository) *Handler {
	return &Handler{dashboard: dashboard}
}

// Register mounts the dashboard route on authed, which must carry the auth
// middleware.
func (h *Handler) Register(authed gin.IRoutes) {
	authed.GET("/dashboard/summary", h.summary)
}

type summaryPayload struct {
	MissionCount    int     `json:"mission_count"`
	MemberCount     int     `json:"member_count"`
	ExpenseTotal    float64 `json:"expense_total"`
	ContactCount    int     `json:"contact_count"`
	TotalInterested int     `json:"total_interested"`
	TotalHealed     int     `json:"total_healed"`
	TotalSaved      int     `json:"total_saved"`
}

func (h *Handler) summary(c *gin.Context) {
	id := middleware.MustIdentity(c)
	s, err := h.dashboard.Summary(c.Request.Context(), id.AccountID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, summaryPayload{
		MissionCount:    s.MissionCount,
		MemberCount:     s.MemberCount,
		ExpenseTotal:    s.ExpenseTotal,
		ContactCount:    s.ContactCount,
		TotalInterested: s.TotalInterested,
		TotalHealed:     s.TotalHealed,
		TotalSaved:      s.TotalSaved,
	})
}
