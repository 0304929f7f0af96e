package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mission-tracker/backend/internal/mission/domain"
	"mission-tracker/backend/internal/mission/service"
	"mission-tracker/backend/internal/platform/httpx"
	"mission-tracker/backend/internal/server/middleware"
)

// Handler exposes mission CRUD and assignments over REST.
type Handler struct {
	missions *service.MissionService
}

func NewHandler(missions *service.MissionService) *Handler {
	return &Handler{missions: missions}
}

// Register mounts the mission routes on authed, which must carry the auth
// middleware.
func (h *Handler) Register(authed gin.IRoutes) {
	authed.POST("/missions", h.create)
	authed.GET("/missions", h.list)
	authed.GET("/missions/:id", h.get)
	authed.PUT("/missions/:id", h.update)
	authed.DELETE("/missions/:id", h.delete)
	authed.POST("/missions/:id/users", h.assign)
	authed.GET("/missions/:id/users", h.assignments)
	authed.DELETE("/missions/:id/users/:userID", h.unassign)
}

type missionRequest struct {
	Name      string         `json:"name" binding:"required"`
	StartDate *time.Time     `json:"start_date"`
	EndDate   *time.Time     `json:"end_date"`
	Location  map[string]any `json:"location"`
	Budget    *float64       `json:"budget"`
}

type assignRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type missionPayload struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	StartDate *time.Time     `json:"start_date,omitempty"`
	EndDate   *time.Time     `json:"end_date,omitempty"`
	Location  map[string]any `json:"location,omitempty"`
	Budget    *float64       `json:"budget,omitempty"`
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type assignmentPayload struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toMissionPayload(m *domain.Mission) missionPayload {
	return missionPayload{
		ID:        m.ID,
		Name:      m.Name,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Location:  m.Location,
		Budget:    m.Budget,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req missionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "name is required")
		return
	}
	id := middleware.MustIdentity(c)
	m, err := h.missions.Create(c.Request.Context(), id.AccountID, id.UserID, service.Input{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Location:  req.Location,
		Budget:    req.Budget,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMissionPayload(m))
}

func (h *Handler) list(c *gin.Context) {
	id := middleware.MustIdentity(c)
	missions, err := h.missions.List(c.Request.Context(), id.AccountID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	out := make([]missionPayload, 0, len(missions))
	for _, m := range missions {
		out = append(out, toMissionPayload(m))
	}
	c.JSON(http.StatusOK, gin.H{"missions": out})
}

func (h *Handler) get(c *gin.Context) {
	id := middleware.MustIdentity(c)
	m, err := h.missions.Get(c.Request.Context(), id.AccountID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toMissionPayload(m))
}

func (h *Handler) update(c *gin.Context) {
	var req missionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "name is required")
		return
	}
	id := middleware.MustIdentity(c)
	m, err := h.missions.Update(c.Request.Context(), id.AccountID, c.Param("id"), service.Input{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Location:  req.Location,
		Budget:    req.Budget,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toMissionPayload(m))
}

func (h *Handler) delete(c *gin.Context) {
	id := middleware.MustIdentity(c)
	if err := h.missions.Delete(c.Request.Context(), id.AccountID, c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "mission deleted"})
}

func (h *Handler) assign(c *gin.Context) {
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "user_id and role are required")
		return
	}
	id := middleware.MustIdentity(c)
	a, err := h.missions.Assign(c.Request.Context(), id.AccountID, c.Param("id"), req.UserID, req.Role)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignmentPayload{UserID: a.UserID, Role: a.Role, CreatedAt: a.CreatedAt})
}

func (h *Handler) assignments(c *gin.Context) {
	id := middleware.MustIdentity(c)
	list, err := h.missions.Assignments(c.Request.Context(), id.AccountID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	out := make([]assignmentPayload, 0, len(list))
	for _, a := range list {
		out = append(out, assignmentPayload{UserID: a.UserID, Role: a.Role, CreatedAt: a.CreatedAt})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

func (h *Handler) unassign(c *gin.Context) {
	id := middleware.MustIdentity(c)
	if err := h.missions.Unassign(c.Request.Context(), id.AccountID, c.Param("id"), c.Param("userID")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user removed from mission"})
}
