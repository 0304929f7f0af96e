package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mission-tracker/backend/internal/outreach/domain"
	"mission-tracker/backend/internal/outreach/service"
	"mission-tracker/backend/internal/platform/httpx"
	"mission-tracker/backend/internal/server/middleware"
)

// Handler exposes outreach contacts and counters over REST.
type Handler struct {
	outreach *service.OutreachService
}

func NewHandler(outreach *service.OutreachService) *Handler {
	return &Handler{outreach: outreach}
}

// Register mounts the outreach routes on authed, which must carry the auth
// middleware.
func (h *Handler) Register(authed gin.IRoutes) {
	authed.POST("/outreach/data", h.createContact)
	authed.GET("/outreach/data", h.listContacts)
	authed.GET("/outreach/data/:id", h.getContact)
	authed.PUT("/outreach/data/:id", h.updateContact)
	authed.DELETE("/outreach/data/:id", h.deleteContact)
	authed.PUT("/outreach/numbers", h.setNumbers)
	authed.GET("/outreach/numbers/:missionID", h.getNumbers)
}

type contactRequest struct {
	MissionID   string `json:"mission_id" binding:"required"`
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Status      string `json:"status"`
}

type numbersRequest struct {
	MissionID  string `json:"mission_id" binding:"required"`
	Interested int    `json:"interested"`
	Healed     int    `json:"healed"`
	Saved      int    `json:"saved"`
}

type contactPayload struct {
	ID          string    `json:"id"`
	MissionID   string    `json:"mission_id"`
	FullName    string    `json:"full_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	Status      string    `json:"status,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type numbersPayload struct {
	MissionID  string `json:"mission_id"`
	Interested int    `json:"interested"`
	Healed     int    `json:"healed"`
	Saved      int    `json:"saved"`
}

func toContactPayload(c *domain.Contact) contactPayload {
	return contactPayload{
		ID:          c.ID,
		MissionID:   c.MissionID,
		FullName:    c.FullName,
		PhoneNumber: c.PhoneNumber,
		Status:      c.Status,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
	}
}

func toNumbersPayload(n *domain.Numbers) numbersPayload {
	return numbersPayload{
		MissionID:  n.MissionID,
		Interested: n.Interested,
		Healed:     n.Healed,
		Saved:      n.Saved,
	}
}

func (h *Handler) createContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "mission_id and full_name are required")
		return
	}
	id := middleware.MustIdentity(c)
	contact, err := h.outreach.CreateContact(c.Request.Context(), id.AccountID, id.UserID, service.ContactInput{
		MissionID:   req.MissionID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Status:      req.Status,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, toContactPayload(contact))
}

func (h *Handler) listContacts(c *gin.Context) {
	id := middleware.MustIdentity(c)
	contacts, err := h.outreach.ListContacts(c.Request.Context(), id.AccountID, c.Query("mission_id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	out := make([]contactPayload, 0, len(contacts))
	for _, contact := range contacts {
		out = append(out, toContactPayload(contact))
	}
	c.JSON(http.StatusOK, gin.H{"contacts": out})
}

func (h *Handler) getContact(c *gin.Context) {
	id := middleware.MustIdentity(c)
	contact, err := h.outreach.GetContact(c.Request.Context(), id.AccountID, c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactPayload(contact))
}

func (h *Handler) updateContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "mission_id and full_name are required")
		return
	}
	id := middleware.MustIdentity(c)
	contact, err := h.outreach.UpdateContact(c.Request.Context(), id.AccountID, c.Param("id"), service.ContactInput{
		MissionID:   req.MissionID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		Status:      req.Status,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toContactPayload(contact))
}

func (h *Handler) deleteContact(c *gin.Context) {
	id := middleware.MustIdentity(c)
	if err := h.outreach.DeleteContact(c.Request.Context(), id.AccountID, c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contact deleted"})
}

func (h *Handler) setNumbers(c *gin.Context) {
	var req numbersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, "mission_id is required")
		return
	}
	id := middleware.MustIdentity(c)
	n, err := h.outreach.SetNumbers(c.Request.Context(), id.AccountID, service.NumbersInput{
		MissionID:  req.MissionID,
		Interested: req.Interested,
		Healed:     req.Healed,
		Saved:      req.Saved,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toNumbersPayload(n))
}

func (h *Handler) getNumbers(c *gin.Context) {
	id := middleware.MustIdentity(c)
	n, err := h.outreach.GetNumbers(c.Request.Context(), id.AccountID, c.Param("missionID"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toNumbersPayload(n))
}
