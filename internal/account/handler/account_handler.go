package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mission-tracker/backend/internal/account/domain"
	"mission-tracker/backend/internal/account/service"
	"mission-tracker/backend/internal/platform/httpx"
	"mission-tracker/backend/internal/platform/rbac"
	"mission-tracker/backend/internal/server/middleware"
)

// Handler exposes account management over REST.
type Handler struct {
	accounts *service.AccountService
}

func NewHandler(accounts *service.AccountService) *Handler {
	return &Handler{accounts: accounts}
}

// Register mounts the account routes on authed, which must carry the auth
// middleware. Member removal additionally requires the admin role.
func (h *Handler) Register(authed gin.IRoutes) {
	authed.POST("/accounts", h.create)
	authed.GET("/accounts", h.listMine)
	authed.GET("/accounts/:id", h.get)
	authed.POST("/accounts/:id/join", h.join)
	authed.GET("/accounts/:id/users", h.members)
	authed.DELETE("/accounts/:id/users/:userID", rbac.RequireAdmin(), h.removeMember)
}

type createRequest struct {
	Name        string `json:"account_name" binding:"required"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
}

type accountPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"account_name"`
	Email       string    `json:"email,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Location    string    `json:"location,omitempty"`
	CreatedBy   string    `json:"created_by"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type memberPayload struct {
	UserID   string    `json:"user_id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

func toAccountPayload(a domain.Account, role string) accountPayload {
	return accountPayload{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Location:    a.Location,
		CreatedBy:   a.CreatedBy,
		Role:        role,
		CreatedAt:   a.CreatedAt,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "account_name is required")
		return
	}
	id := middleware.MustIdentity(c)
	res, err := h.accounts.Create(c.Request.Context(), id.UserID, service.CreateInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Location:    req.Location,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountPayload(res.Account, res.Role))
}

func (h *Handler) listMine(c *gin.Context) {
	id := middleware.MustIdentity(c)
	list, err := h.accounts.ListForUser(c.Request.Context(), id.UserID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	out := make([]accountPayload, 0, len(list))
	for _, item := range list {
		out = append(out, toAccountPayload(item.Account, item.Role))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

func (h *Handler) get(c *gin.Context) {
	id := middleware.MustIdentity(c)
	res, err := h.accounts.Get(c.Request.Context(), c.Param("id"), id.UserID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountPayload(res.Account, res.Role))
}

func (h *Handler) join(c *gin.Context) {
	id := middleware.MustIdentity(c)
	res, err := h.accounts.Join(c.Request.Context(), c.Param("id"), id.UserID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountPayload(res.Account, res.Role))
}

func (h *Handler) members(c *gin.Context) {
	id := middleware.MustIdentity(c)
	// Listing is limited to the caller's current account; other accounts
	// require switching first.
	accountID := c.Param("id")
	if accountID != id.AccountID {
		httpx.Error(c, service.ErrAccountNotFound)
		return
	}
	members, err := h.accounts.Members(c.Request.Context(), accountID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	out := make([]memberPayload, 0, len(members))
	for _, m := range members {
		out = append(out, memberPayload{
			UserID:   m.UserID,
			FullName: m.FullName,
			Email:    m.Email,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *Handler) removeMember(c *gin.Context) {
	id := middleware.MustIdentity(c)
	accountID := c.Param("id")
	if accountID != id.AccountID {
		httpx.Error(c, service.ErrAccountNotFound)
		return
	}
	if err := h.accounts.RemoveMember(c.Request.Context(), accountID, c.Param("userID")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}
