/*
store.go - Persistence interfaces for user records

PURPOSE:
  Defines the boundary between the pure engine and the database. The engine
  itself never touches these: the HTTP layer loads records through a Store and
  passes them to the calculators as plain values.

KEY INTERFACES:
  ProfileStore:  User profile and account lifecycle
  IncomeStore:   Realized income entries
  ShiftStore:    Planned/logged shifts
  ScheduleStore: Recurring work schedules
  EmployerStore: Workplaces attached to a profile

CONTRACT:
  - List* methods return records ordered by date (creation order for
    employers), scoped to one user.
  - Add* rejects duplicate ids with ErrDuplicateID and records whose owning
    profile doesn't exist with ErrNotFound.
  - Delete and Update report missing records with ErrNotFound.
  - DeleteUser cascades every record belonging to the user.
  - Get* returns (nil, nil) for a missing profile; absence is not an error.

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite
  - wall/store:   In-memory for tests
*/
package wall

import "context"

// Store aggregates all persistence capabilities the HTTP layer needs.
type Store interface {
	ProfileStore
	IncomeStore
	ShiftStore
	ScheduleStore
	EmployerStore
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID UserID) (*UserProfile, error)
	SaveProfile(ctx context.Context, profile UserProfile) error

	// DeleteUser removes the profile and every record keyed by the user.
	DeleteUser(ctx context.Context, userID UserID) error
}

type IncomeStore interface {
	ListIncomes(ctx context.Context, userID UserID) ([]IncomeEntry, error)
	AddIncome(ctx context.Context, entry IncomeEntry) error
	UpdateIncome(ctx context.Context, entry IncomeEntry) error
	DeleteIncome(ctx context.Context, userID UserID, id string) error
}

type ShiftStore interface {
	ListShifts(ctx context.Context, userID UserID) ([]ShiftEntry, error)
	AddShift(ctx context.Context, entry ShiftEntry) error
	DeleteShift(ctx context.Context, userID UserID, id string) error
}

type ScheduleStore interface {
	ListSchedules(ctx context.Context, userID UserID) ([]WorkSchedule, error)
	AddSchedule(ctx context.Context, schedule WorkSchedule) error
	DeleteSchedule(ctx context.Context, userID UserID, id string) error
}

type EmployerStore interface {
	ListEmployers(ctx context.Context, userID UserID) ([]Employer, error)
	AddEmployer(ctx context.Context, employer Employer) error
	DeleteEmployer(ctx context.Context, userID UserID, id string) error
}
