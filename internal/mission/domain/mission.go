package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissionNotFound is returned when a mission does not exist in the
// caller's account or has been soft-deleted.
var ErrMissionNotFound = errors.New("mission not found")

// ErrInvalidMissionRole is returned when a mission assignment uses a role
// outside the known set.
var ErrInvalidMissionRole = errors.New("invalid mission role")

// ErrAssignmentNotFound is returned when a user is not assigned to the
// mission.
var ErrAssignmentNotFound = errors.New("user is not assigned to this mission")

// ErrInvalidMission wraps every Validate failure so callers can map the
// whole family to one response class.
var ErrInvalidMission = errors.New("invalid mission")

// Mission-level roles. These are independent of account roles; a plain
// account member can lead a mission.
const (
	MissionRoleLeader     = "leader"
	MissionRoleMember     = "member"
	MissionRoleGuest      = "guest"
	MissionRoleEvangelist = "evangelist"
	MissionRoleMissionary = "missionary"
)

var missionRoles = map[string]struct{}{
	MissionRoleLeader:     {},
	MissionRoleMember:     {},
	MissionRoleGuest:      {},
	MissionRoleEvangelist: {},
	MissionRoleMissionary: {},
}

// ValidMissionRole reports whether role is one of the known mission roles.
func ValidMissionRole(role string) bool {
	_, ok := missionRoles[role]
	return ok
}

// Mission is an outreach campaign owned by one account. Location is free-form
// JSON so clients can store addresses, coordinates, or both.
type Mission struct {
	ID        string
	AccountID string
	Name      string
	StartDate *time.Time
	EndDate   *time.Time
	Location  map[string]any
	Budget    *float64
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the mission for persistence.
func (m *Mission) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMission)
	}
	if m.AccountID == "" {
		return fmt.Errorf("%w: account id is required", ErrInvalidMission)
	}
	if m.StartDate != nil && m.EndDate != nil && m.EndDate.Before(*m.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", ErrInvalidMission)
	}
	return nil
}

// Assignment links a user to a mission with a mission-level role.
type Assignment struct {
	ID        string
	MissionID string
	UserID    string
	Role      string
	CreatedAt time.Time
}
