package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mission-tracker/backend/internal/expense/domain"
	"mission-tracker/backend/internal/expense/repository"
	missiondomain "mission-tracker/backend/internal/mission/domain"
	missionrepo "mission-tracker/backend/internal/mission/repository"
)

// Input carries the writable expense fields.
type Input struct {
	MissionID   *string
	Category    string
	Amount      float64
	Description string
}

// ExpenseService implements account-scoped expense CRUD. Expenses that
// reference a mission are checked against the caller's account first.
type ExpenseService struct {
	expenses repository.Repository
	missions missionrepo.Repository
}

func NewExpenseService(expenses repository.Repository, missions missionrepo.Repository) *ExpenseService {
	return &ExpenseService{expenses: expenses, missions: missions}
}

func (s *ExpenseService) checkMission(ctx context.Context, accountID string, missionID *string) error {
	if missionID == nil {
		return nil
	}
	m, err := s.missions.GetByID(ctx, accountID, *missionID)
	if err != nil {
		return err
	}
	if m == nil {
		return missiondomain.ErrMissionNotFound
	}
	return nil
}

func (s *ExpenseService) Create(ctx context.Context, accountID, userID string, in Input) (*domain.Expense, error) {
	now := time.Now().UTC()
	e := &domain.Expense{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		MissionID:   in.MissionID,
		UserID:      userID,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkMission(ctx, accountID, in.MissionID); err != nil {
		return nil, err
	}
	if err := s.expenses.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Get(ctx context.Context, accountID, id string) (*domain.Expense, error) {
	e, err := s.expenses.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrExpenseNotFound
	}
	return e, nil
}

func (s *ExpenseService) List(ctx context.Context, accountID, missionID string) ([]*domain.Expense, error) {
	return s.expenses.List(ctx, accountID, missionID)
}

func (s *ExpenseService) Update(ctx context.Context, accountID, id string, in Input) (*domain.Expense, error) {
	e, err := s.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	e.MissionID = in.MissionID
	e.Category = in.Category
	e.Amount = in.Amount
	e.Description = in.Description
	e.UpdatedAt = time.Now().UTC()
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkMission(ctx, accountID, in.MissionID); err != nil {
		return nil, err
	}
	if err := s.expenses.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, accountID, id string) error {
	deleted, err := s.expenses.SoftDelete(ctx, accountID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrExpenseNotFound
	}
	return nil
}
