package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accountservice "mission-tracker/backend/internal/account/service"
	"mission-tracker/backend/internal/platform/httpx"
	"mission-tracker/backend/internal/server/middleware"
)

// Handler exposes the user listing for the caller's current account.
type Handler struct {
	accounts *accountservice.AccountService
}

func NewHandler(accounts *accountservice.AccountService) *Handler {
	return &Handler{accounts: accounts}
}

// Register mounts the user routes on authed, which must carry the auth
// middleware.
func (h *Handler) Register(authed gin.IRoutes) {
	authed.GET("/users", h.list)
}

type userPayload struct {
	ID       string    `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// list returns the active members of the caller's current account.
func (h *Handler) list(c *gin.Context) {
	id := middleware.MustIdentity(c)
	members, err := h.accounts.Members(c.Request.Context(), id.AccountID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	out := make([]userPayload, 0, len(members))
	for _, m := range members {
		out = append(out, userPayload{
			ID:       m.UserID,
			FullName: m.FullName,
			Email:    m.Email,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}
