// Package server assembles the HTTP surface: middleware chain, versioned
// API routes, health, and metrics.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	accounthandler "mission-tracker/backend/internal/account/handler"
	authhandler "mission-tracker/backend/internal/auth/handler"
	dashboardhandler "mission-tracker/backend/internal/dashboard/handler"
	expensehandler "mission-tracker/backend/internal/expense/handler"
	"mission-tracker/backend/internal/logger"
	membershiprepo "mission-tracker/backend/internal/membership/repository"
	missionhandler "mission-tracker/backend/internal/mission/handler"
	"mission-tracker/backend/internal/observability"
	outreachhandler "mission-tracker/backend/internal/outreach/handler"
	"mission-tracker/backend/internal/security"
	"mission-tracker/backend/internal/server/middleware"
	userhandler "mission-tracker/backend/internal/user/handler"
	userrepo "mission-tracker/backend/internal/user/repository"
)

// Deps carries everything the router needs.
type Deps struct {
	Log         logger.Logger
	Metrics     *observability.Metrics
	Tokens      *security.TokenProvider
	Users       userrepo.Repository
	Memberships membershiprepo.Repository

	Auth      *authhandler.Handler
	Accounts  *accounthandler.Handler
	Missions  *missionhandler.Handler
	Outreach  *outreachhandler.Handler
	Expenses  *expensehandler.Handler
	Dashboard *dashboardhandler.Handler
	UserList  *userhandler.Handler
}

// NewRouter builds the gin engine with the full route table. All API routes
// live under /api/v1; everything except auth entry points sits behind the
// auth middleware.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(d.Log))
	r.Use(d.Metrics.Middleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	api := r.Group("/api/v1")
	authed := api.Group("")
	authed.Use(middleware.Auth(d.Tokens, d.Users, d.Memberships))

	d.Auth.Register(api, authed)
	d.Accounts.Register(authed)
	d.Missions.Register(authed)
	d.Outreach.Register(authed)
	d.Expenses.Register(authed)
	d.Dashboard.Register(authed)
	d.UserList.Register(authed)

	return r
}
