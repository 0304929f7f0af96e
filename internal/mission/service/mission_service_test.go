package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"mission-tracker/backend/internal/mission/domain"
)

type memRepo struct {
	missions    map[string]*domain.Mission
	deleted     map[string]bool
	assignments map[string]*domain.Assignment
}

func newMemRepo() *memRepo {
	return &memRepo{
		missions:    map[string]*domain.Mission{},
		deleted:     map[string]bool{},
		assignments: map[string]*domain.Assignment{},
	}
}

func (r *memRepo) Create(_ context.Context, m *domain.Mission) error {
	cp := *m
	r.missions[m.ID] = &cp
	return nil
}

func (r *memRepo) GetByID(_ context.Context, accountID, id string) (*domain.Mission, error) {
	m, ok := r.missions[id]
	if !ok || r.deleted[id] || m.AccountID != accountID {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memRepo) ListByAccount(_ context.Context, accountID string) ([]*domain.Mission, error) {
	var out []*domain.Mission
	for id, m := range r.missions {
		if m.AccountID == accountID && !r.deleted[id] {
			cp := *m
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) Update(_ context.Context, m *domain.Mission) error {
	if _, ok := r.missions[m.ID]; ok && !r.deleted[m.ID] {
		cp := *m
		r.missions[m.ID] = &cp
	}
	return nil
}

func (r *memRepo) SoftDelete(_ context.Context, accountID, id string) (bool, error) {
	m, ok := r.missions[id]
	if !ok || r.deleted[id] || m.AccountID != accountID {
		return false, nil
	}
	r.deleted[id] = true
	return true, nil
}

func (r *memRepo) Assign(_ context.Context, a *domain.Assignment) error {
	cp := *a
	r.assignments[a.ID] = &cp
	return nil
}

func (r *memRepo) ListAssignments(_ context.Context, missionID string) ([]*domain.Assignment, error) {
	var out []*domain.Assignment
	for _, a := range r.assignments {
		if a.MissionID == missionID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memRepo) Unassign(_ context.Context, missionID, userID string) (bool, error) {
	for id, a := range r.assignments {
		if a.MissionID == missionID && a.UserID == userID {
			delete(r.assignments, id)
			return true, nil
		}
	}
	return false, nil
}

func newService() (*MissionService, *memRepo) {
	repo := newMemRepo()
	return NewMissionService(repo), repo
}

const accountID = "acct-1"
const userID = "user-1"

func TestCreateAndGet(t *testing.T) {
	svc, _ := newService()
	budget := 1500.0
	m, err := svc.Create(context.Background(), accountID, userID, Input{
		Name:     "Summer Outreach",
		Budget:   &budget,
		Location: map[string]any{"city": "Kochi"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := svc.Get(context.Background(), accountID, m.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Summer Outreach" || got.CreatedBy != userID {
		t.Errorf("got %+v", got)
	}
	if got.Location["city"] != "Kochi" {
		t.Errorf("location = %v", got.Location)
	}
}

func TestCreateValidatesDates(t *testing.T) {
	svc, _ := newService()
	start := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)
	_, err := svc.Create(context.Background(), accountID, userID, Input{
		Name:      "Backwards",
		StartDate: &start,
		EndDate:   &end,
	})
	if !errors.Is(err, domain.ErrInvalidMission) {
		t.Errorf("err = %v, want ErrInvalidMission", err)
	}
}

func TestGetIsAccountScoped(t *testing.T) {
	svc, _ := newService()
	m, err := svc.Create(context.Background(), accountID, userID, Input{Name: "Scoped"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Get(context.Background(), "other-account", m.ID); !errors.Is(err, domain.ErrMissionNotFound) {
		t.Errorf("err = %v, want ErrMissionNotFound", err)
	}
}

func TestUpdate(t *testing.T) {
	svc, _ := newService()
	m, err := svc.Create(context.Background(), accountID, userID, Input{Name: "Before"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updated, err := svc.Update(context.Background(), accountID, m.ID, Input{Name: "After"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.CreatedBy != userID {
		t.Errorf("created_by changed: %q", updated.CreatedBy)
	}
}

func TestDeleteThenGet(t *testing.T) {
	svc, _ := newService()
	m, err := svc.Create(context.Background(), accountID, userID, Input{Name: "Doomed"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), accountID, m.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), accountID, m.ID); !errors.Is(err, domain.ErrMissionNotFound) {
		t.Errorf("err = %v, want ErrMissionNotFound", err)
	}
	if err := svc.Delete(context.Background(), accountID, m.ID); !errors.Is(err, domain.ErrMissionNotFound) {
		t.Errorf("second delete err = %v, want ErrMissionNotFound", err)
	}
}

func TestAssignments(t *testing.T) {
	svc, _ := newService()
	m, err := svc.Create(context.Background(), accountID, userID, Input{Name: "Staffed"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Assign(context.Background(), accountID, m.ID, "user-2", "pilot"); !errors.Is(err, domain.ErrInvalidMissionRole) {
		t.Errorf("err = %v, want ErrInvalidMissionRole", err)
	}
	if _, err := svc.Assign(context.Background(), accountID, m.ID, "user-2", domain.MissionRoleEvangelist); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	list, err := svc.Assignments(context.Background(), accountID, m.ID)
	if err != nil {
		t.Fatalf("Assignments: %v", err)
	}
	if len(list) != 1 || list[0].Role != domain.MissionRoleEvangelist {
		t.Errorf("assignments = %+v", list)
	}
	if err := svc.Unassign(context.Background(), accountID, m.ID, "user-2"); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	if err := svc.Unassign(context.Background(), accountID, m.ID, "user-2"); !errors.Is(err, domain.ErrAssignmentNotFound) {
		t.Errorf("err = %v, want ErrAssignmentNotFound", err)
	}
}

func TestAssignUnknownMission(t *testing.T) {
	svc, _ := newService()
	if _, err := svc.Assign(context.Background(), accountID, uuid.NewString(), "user-2", domain.MissionRoleMember); !errors.Is(err, domain.ErrMissionNotFound) {
		t.Errorf("err = %v, want ErrMissionNotFound", err)
	}
}
