package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mission-tracker/backend/internal/auth/service"
	"mission-tracker/backend/internal/platform/httpx"
	"mission-tracker/backend/internal/server/middleware"
	userdomain "mission-tracker/backend/internal/user/domain"
)

// Handler exposes the auth flow over REST.
type Handler struct {
	auth *service.AuthService
}

func NewHandler(auth *service.AuthService) *Handler {
	return &Handler{auth: auth}
}

// Register mounts the public auth routes on public and the session routes on
// authed, which must carry the auth middleware.
func (h *Handler) Register(public, authed gin.IRoutes) {
	public.POST("/auth/register", h.register)
	public.POST("/auth/login", h.login)
	public.POST("/auth/refresh", h.refresh)
	authed.GET("/auth/me", h.me)
	authed.POST("/auth/switch-account", h.switchAccount)
	authed.POST("/auth/logout", h.logout)
}

type registerRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password" binding:"required"`
	AccountName string `json:"account_name"`
}

type loginRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	AccountID string `json:"account_id"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type switchAccountRequest struct {
	AccountID string `json:"account_id" binding:"required"`
}

type userPayload struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Active      bool   `json:"is_active"`
}

type sessionResponse struct {
	User         userPayload `json:"user"`
	AccountID    string      `json:"account_id"`
	Role         string      `json:"role"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	TokenType    string      `json:"token_type"`
}

func toUserPayload(u userdomain.User) userPayload {
	return userPayload{
		ID:          u.ID,
		FullName:    u.FullName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Active:      u.Active,
	}
}

func toSessionResponse(res *service.AuthResult) sessionResponse {
	return sessionResponse{
		User:         toUserPayload(res.User),
		AccountID:    res.AccountID,
		Role:         res.RoleName,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "bearer",
	}
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "full_name, email, and password are required")
		return
	}
	res, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		AccountName: req.AccountName,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(res))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "email and password are required")
		return
	}
	res, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		AccountID: req.AccountID,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(res))
}

func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "refresh_token is required")
		return
	}
	access, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": access, "token_type": "bearer"})
}

func (h *Handler) me(c *gin.Context) {
	id := middleware.MustIdentity(c)
	user, err := h.auth.Me(c.Request.Context(), id.UserID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":       toUserPayload(user.Sanitized()),
		"account_id": id.AccountID,
		"role":       id.RoleName,
	})
}

func (h *Handler) switchAccount(c *gin.Context) {
	var req switchAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "account_id is required")
		return
	}
	id := middleware.MustIdentity(c)
	res, err := h.auth.SwitchAccount(c.Request.Context(), id.UserID, req.AccountID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(res))
}

// logout is stateless: tokens are not tracked server-side, so the client
// simply discards them. The endpoint exists so clients have a uniform flow.
func (h *Handler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
