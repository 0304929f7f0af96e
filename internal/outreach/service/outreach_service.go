package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	missiondomain "mission-tracker/backend/internal/mission/domain"
	missionrepo "mission-tracker/backend/internal/mission/repository"
	"mission-tracker/backend/internal/outreach/domain"
	"mission-tracker/backend/internal/outreach/repository"
)

// ContactInput carries the writable contact fields.
type ContactInput struct {
	MissionID   string
	FullName    string
	PhoneNumber string
	Status      string
}

// NumbersInput carries the counter values written by an upsert.
type NumbersInput struct {
	MissionID  string
	Interested int
	Healed     int
	Saved      int
}

// OutreachService manages contact records and per-mission counters. Every
// write checks the mission belongs to the caller's account first.
type OutreachService struct {
	outreach repository.Repository
	missions missionrepo.Repository
}

func NewOutreachService(outreach repository.Repository, missions missionrepo.Repository) *OutreachService {
	return &OutreachService{outreach: outreach, missions: missions}
}

func (s *OutreachService) missionExists(ctx context.Context, accountID, missionID string) error {
	m, err := s.missions.GetByID(ctx, accountID, missionID)
	if err != nil {
		return err
	}
	if m == nil {
		return missiondomain.ErrMissionNotFound
	}
	return nil
}

func (s *OutreachService) CreateContact(ctx context.Context, accountID, userID string, in ContactInput) (*domain.Contact, error) {
	now := time.Now().UTC()
	c := &domain.Contact{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		MissionID:   in.MissionID,
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		Status:      in.Status,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.missionExists(ctx, accountID, in.MissionID); err != nil {
		return nil, err
	}
	if err := s.outreach.CreateContact(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *OutreachService) GetContact(ctx context.Context, accountID, id string) (*domain.Contact, error) {
	c, err := s.outreach.GetContact(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrOutreachNotFound
	}
	return c, nil
}

// ListContacts returns the account's contacts; missionID narrows to one
// mission when non-empty.
func (s *OutreachService) ListContacts(ctx context.Context, accountID, missionID string) ([]*domain.Contact, error) {
	if missionID != "" {
		if err := s.missionExists(ctx, accountID, missionID); err != nil {
			return nil, err
		}
	}
	return s.outreach.ListContacts(ctx, accountID, missionID)
}

func (s *OutreachService) UpdateContact(ctx context.Context, accountID, id string, in ContactInput) (*domain.Contact, error) {
	c, err := s.GetContact(ctx, accountID, id)
	if err != nil {
		return nil, err
	}
	c.FullName = in.FullName
	c.PhoneNumber = in.PhoneNumber
	c.Status = in.Status
	c.UpdatedAt = time.Now().UTC()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := s.outreach.UpdateContact(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *OutreachService) DeleteContact(ctx context.Context, accountID, id string) error {
	deleted, err := s.outreach.SoftDeleteContact(ctx, accountID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrOutreachNotFound
	}
	return nil
}

// SetNumbers writes the mission's counter row, replacing any previous
// values. Counters are absolute totals, not increments.
func (s *OutreachService) SetNumbers(ctx context.Context, accountID string, in NumbersInput) (*domain.Numbers, error) {
	now := time.Now().UTC()
	n := &domain.Numbers{
		ID:         uuid.NewString(),
		AccountID:  accountID,
		MissionID:  in.MissionID,
		Interested: in.Interested,
		Healed:     in.Healed,
		Saved:      in.Saved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if err := s.missionExists(ctx, accountID, in.MissionID); err != nil {
		return nil, err
	}
	if err := s.outreach.UpsertNumbers(ctx, n); err != nil {
		return nil, err
	}
	return s.outreach.GetNumbers(ctx, accountID, in.MissionID)
}

func (s *OutreachService) GetNumbers(ctx context.Context, accountID, missionID string) (*domain.Numbers, error) {
	if err := s.missionExists(ctx, accountID, missionID); err != nil {
		return nil, err
	}
	n, err := s.outreach.GetNumbers(ctx, accountID, missionID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		// A mission that never reported counters reads as zeros.
		return &domain.Numbers{AccountID: accountID, MissionID: missionID}, nil
	}
	return n, nil
}
