package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mission-tracker/backend/internal/logger"
	"mission-tracker/backend/internal/mission/domain"
	"mission-tracker/backend/internal/mission/repository"
)

// Input carries the writable mission fields.
type Input struct {
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	Location  map[string]any
	Budget    *float64
}

// MissionService implements account-scoped mission CRUD and user
// assignments.
type MissionService struct {
	missions repository.Repository
}

func NewMissionService(missions repository.Repository) *MissionService {
	return &MissionService{missions: missions}
}

func (s *MissionService) Create(ctx context.Context, accountID, userID string, in Input) (*domain.Mission, error) {
	now := time.Now().UTC()
	m := &domain.Mission{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Location:  in.Location,
		Budget:    in.Budget,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.missions.Create(ctx, m); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info("mission created", "mission_id", m.ID, "account_id", accountID)
	return m, nil
}

func (s *MissionService) Get(ctx context.Context, accountID, id string) (*domain.Mission, error) {
	m, err := s.missions.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrMissionNotFound
	}
	return m, nil
}

func (s *MissionService) List(ctx context.Context, accountID string) ([]*domain.Mission, error) {
	return s.missions.ListByAccount(ctx, accountID)
}

func (s *MissionService) Update(ctx context.Context, accountID, id string, in Input) (*domain.Mission, error) {
	m, err := s.Get(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	m.Name = in.Name
	m.StartDate = in.StartDate
	m.EndDate = in.EndDate
	m.Location = in.Location
	m.Budget = in.Budget
	m.UpdatedAt = time.Now().UTC()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := s.missions.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MissionService) Delete(ctx context.Context, accountID, id string) error {
	deleted, err := s.missions.SoftDelete(ctx, accountID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrMissionNotFound
	}
	logger.FromContext(ctx).Info("mission deleted", "mission_id", id, "account_id", accountID)
	return nil
}

// Assign adds a user to a mission with a mission-level role. The mission
// must belong to the caller's account.
func (s *MissionService) Assign(ctx context.Context, accountID, missionID, userID, role string) (*domain.Assignment, error) {
	if !domain.ValidMissionRole(role) {
		return nil, domain.ErrInvalidMissionRole
	}
	if _, err := s.Get(ctx, accountID, missionID); err != nil {
		return nil, err
	}
	a := &domain.Assignment{
		ID:        uuid.NewString(),
		MissionID: missionID,
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.missions.Assign(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *MissionService) Assignments(ctx context.Context, accountID, missionID string) ([]*domain.Assignment, error) {
	if _, err := s.Get(ctx, accountID, missionID); err != nil {
		return nil, err
	}
	return s.missions.ListAssignments(ctx, missionID)
}

func (s *MissionService) Unassign(ctx context.Context, accountID, missionID, userID string) error {
	if _, err := s.Get(ctx, accountID, missionID); err != nil {
		return err
	}
	removed, err := s.missions.Unassign(ctx, missionID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrAssignmentNotFound
	}
	return nil
}
