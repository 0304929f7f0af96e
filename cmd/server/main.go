package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accounthandler "mission-tracker/backend/internal/account/handler"
	accountrepo "mission-tracker/backend/internal/account/repository"
	accountservice "mission-tracker/backend/internal/account/service"
	authhandler "mission-tracker/backend/internal/auth/handler"
	authservice "mission-tracker/backend/internal/auth/service"
	"mission-tracker/backend/internal/config"
	dashboardhandler "mission-tracker/backend/internal/dashboard/handler"
	dashboardrepo "mission-tracker/backend/internal/dashboard/repository"
	"mission-tracker/backend/internal/db"
	expensehandler "mission-tracker/backend/internal/expense/handler"
	expenserepo "mission-tracker/backend/internal/expense/repository"
	expenseservice "mission-tracker/backend/internal/expense/service"
	"mission-tracker/backend/internal/logger"
	membershiprepo "mission-tracker/backend/internal/membership/repository"
	missionhandler "mission-tracker/backend/internal/mission/handler"
	missionrepo "mission-tracker/backend/internal/mission/repository"
	missionservice "mission-tracker/backend/internal/mission/service"
	"mission-tracker/backend/internal/observability"
	outreachhandler "mission-tracker/backend/internal/outreach/handler"
	outreachrepo "mission-tracker/backend/internal/outreach/repository"
	outreachservice "mission-tracker/backend/internal/outreach/service"
	"mission-tracker/backend/internal/security"
	"mission-tracker/backend/internal/server"
	userhandler "mission-tracker/backend/internal/user/handler"
	userrepo "mission-tracker/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLog := logger.New(os.Stderr, cfg.LogLevel)

	sqlDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		appLog.Error("open database", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.AccessTTL(), cfg.RefreshTTL())
	hasher := security.NewHasher(cfg.BcryptCost)
	tx := db.NewTransactor(sqlDB)

	users := userrepo.NewPostgresRepository(sqlDB)
	accounts := accountrepo.NewPostgresRepository(sqlDB)
	memberships := membershiprepo.NewPostgresRepository(sqlDB)
	missions := missionrepo.NewPostgresRepository(sqlDB)
	outreach := outreachrepo.NewPostgresRepository(sqlDB)
	expenses := expenserepo.NewPostgresRepository(sqlDB)
	dashboard := dashboardrepo.NewPostgresRepository(sqlDB)

	authSvc := authservice.NewAuthService(users, accounts, memberships, hasher, tokens, tx)
	accountSvc := accountservice.NewAccountService(accounts, users, memberships, tx)
	missionSvc := missionservice.NewMissionService(missions)
	outreachSvc := outreachservice.NewOutreachService(outreach, missions)
	expenseSvc := expenseservice.NewExpenseService(expenses, missions)

	metrics := observability.NewMetrics()

	router := server.NewRouter(server.Deps{
		Log:         appLog,
		Metrics:     metrics,
		Tokens:      tokens,
		Users:       users,
		Memberships: memberships,
		Auth:        authhandler.NewHandler(authSvc),
		Accounts:    accounthandler.NewHandler(accountSvc),
		Missions:    missionhandler.NewHandler(missionSvc),
		Outreach:    outreachhandler.NewHandler(outreachSvc),
		Expenses:    expensehandler.NewHandler(expenseSvc),
		Dashboard:   dashboardhandler.NewHandler(dashboard),
		UserList:    userhandler.NewHandler(accountSvc),
	})

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		appLog.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("serve", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLog.Error("shutdown", "error", err)
	}
	appLog.Info("http server stopped")
}
