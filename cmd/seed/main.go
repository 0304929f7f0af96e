// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev user (dev@example.com) already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	accountrepo "mission-tracker/backend/internal/account/repository"
	authservice "mission-tracker/backend/internal/auth/service"
	"mission-tracker/backend/internal/config"
	"mission-tracker/backend/internal/db"
	expenserepo "mission-tracker/backend/internal/expense/repository"
	expenseservice "mission-tracker/backend/internal/expense/service"
	membershiprepo "mission-tracker/backend/internal/membership/repository"
	missiondomain "mission-tracker/backend/internal/mission/domain"
	missionrepo "mission-tracker/backend/internal/mission/repository"
	missionservice "mission-tracker/backend/internal/mission/service"
	outreachrepo "mission-tracker/backend/internal/outreach/repository"
	outreachservice "mission-tracker/backend/internal/outreach/service"
	"mission-tracker/backend/internal/security"
	userrepo "mission-tracker/backend/internal/user/repository"
)

const (
	devEmail    = "dev@example.com"
	devPassword = "password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	sqlDB, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()
	users := userrepo.NewPostgresRepository(sqlDB)

	existing, err := users.GetByEmail(ctx, devEmail)
	if err != nil {
		log.Fatalf("check dev user: %v", err)
	}
	if existing != nil {
		fmt.Println("dev user already exists, nothing to do")
		return
	}

	accounts := accountrepo.NewPostgresRepository(sqlDB)
	memberships := membershiprepo.NewPostgresRepository(sqlDB)
	missions := missionrepo.NewPostgresRepository(sqlDB)
	outreach := outreachrepo.NewPostgresRepository(sqlDB)
	expenses := expenserepo.NewPostgresRepository(sqlDB)

	auth := authservice.NewAuthService(users, accounts, memberships,
		security.NewHasher(cfg.BcryptCost),
		security.NewTokenProvider([]byte(cfg.JWTSecret), cfg.AccessTTL(), cfg.RefreshTTL()),
		db.NewTransactor(sqlDB))

	res, err := auth.Register(ctx, authservice.RegisterInput{
		FullName:    "Dev User",
		Email:       devEmail,
		Password:    devPassword,
		AccountName: "Dev Mission Org",
	})
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	missionSvc := missionservice.NewMissionService(missions)
	start := time.Now().UTC()
	end := start.AddDate(0, 0, 14)
	budget := 5000.0
	mission, err := missionSvc.Create(ctx, res.AccountID, res.User.ID, missionservice.Input{
		Name:      "Sample Summer Mission",
		StartDate: &start,
		EndDate:   &end,
		Budget:    &budget,
		Location:  map[string]any{"city": "Kochi", "country": "India"},
	})
	if err != nil {
		log.Fatalf("seed mission: %v", err)
	}
	if _, err := missionSvc.Assign(ctx, res.AccountID, mission.ID, res.User.ID, missiondomain.MissionRoleLeader); err != nil {
		log.Fatalf("seed assignment: %v", err)
	}

	outreachSvc := outreachservice.NewOutreachService(outreach, missions)
	if _, err := outreachSvc.CreateContact(ctx, res.AccountID, res.User.ID, outreachservice.ContactInput{
		MissionID: mission.ID,
		FullName:  "Sample Contact",
		Status:    "interested",
	}); err != nil {
		log.Fatalf("seed contact: %v", err)
	}
	if _, err := outreachSvc.SetNumbers(ctx, res.AccountID, outreachservice.NumbersInput{
		MissionID: mission.ID, Interested: 12, Healed: 3, Saved: 7,
	}); err != nil {
		log.Fatalf("seed numbers: %v", err)
	}

	expenseSvc := expenseservice.NewExpenseService(expenses, missions)
	if _, err := expenseSvc.Create(ctx, res.AccountID, res.User.ID, expenseservice.Input{
		MissionID: &mission.ID,
		Category:  "travel",
		Amount:    230.0,
	}); err != nil {
		log.Fatalf("seed expense: %v", err)
	}

	fmt.Printf("seeded dev user %s (account %s, mission %s)\n", devEmail, res.AccountID, mission.ID)
}
