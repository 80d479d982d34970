// Package store provides an in-memory Store implementation (for testing/dev).
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/fuyou/wall-engine/wall"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	profiles  map[wall.UserID]wall.UserProfile
	incomes   map[wall.UserID][]wall.IncomeEntry
	shifts    map[wall.UserID][]wall.ShiftEntry
	schedules map[wall.UserID][]wall.WorkSchedule
	employers map[wall.UserID][]wall.Employer
}

func NewMemory() *Memory {
	return &Memory{
		profiles:  make(map[wall.UserID]wall.UserProfile),
		incomes:   make(map[wall.UserID][]wall.IncomeEntry),
		shifts:    make(map[wall.UserID][]wall.ShiftEntry),
		schedules: make(map[wall.UserID][]wall.WorkSchedule),
		employers: make(map[wall.UserID][]wall.Employer),
	}
}

// -----------------------------------------------------------------------------
// Profiles
// -----------------------------------------------------------------------------

func (m *Memory) GetProfile(_ context.Context, userID wall.UserID) (*wall.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := p
	cp.Employers = append([]wall.Employer(nil), p.Employers...)
	return &cp, nil
}

func (m *Memory) SaveProfile(_ context.Context, profile wall.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *Memory) DeleteUser(_ context.Context, userID wall.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.profiles[userID]; !ok {
		return wall.ErrNotFound
	}
	delete(m.profiles, userID)
	delete(m.incomes, userID)
	delete(m.shifts, userID)
	delete(m.schedules, userID)
	delete(m.employers, userID)
	return nil
}

// requireProfileLocked enforces the same rule as the sqlite foreign keys:
// records can only attach to an existing profile.
func (m *Memory) requireProfileLocked(userID wall.UserID) error {
	if _, ok := m.profiles[userID]; !ok {
		return wall.ErrNotFound
	}
	return nil
}

// -----------------------------------------------------------------------------
// Income entries
// -----------------------------------------------------------------------------

func (m *Memory) ListIncomes(_ context.Context, userID wall.UserID) ([]wall.IncomeEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := append([]wall.IncomeEntry(nil), m.incomes[userID]...)
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *Memory) AddIncome(_ context.Context, entry wall.IncomeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireProfileLocked(entry.UserID); err != nil {
		return err
	}
	for _, e := range m.incomes[entry.UserID] {
		if e.ID == entry.ID {
			return wall.ErrDuplicateID
		}
	}
	m.incomes[entry.UserID] = append(m.incomes[entry.UserID], entry)
	return nil
}

func (m *Memory) UpdateIncome(_ context.Context, entry wall.IncomeEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.incomes[entry.UserID]
	for i, e := range entries {
		if e.ID == entry.ID {
			entries[i] = entry
			return nil
		}
	}
	return wall.ErrNotFound
}

func (m *Memory) DeleteIncome(_ context.Context, userID wall.UserID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.incomes[userID]
	for i, e := range entries {
		if e.ID == id {
			m.incomes[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return wall.ErrNotFound
}

// -----------------------------------------------------------------------------
// Shifts
// -----------------------------------------------------------------------------

func (m *Memory) ListShifts(_ context.Context, userID wall.UserID) ([]wall.ShiftEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := append([]wall.ShiftEntry(nil), m.shifts[userID]...)
	sort.SliceStable(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *Memory) AddShift(_ context.Context, entry wall.ShiftEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireProfileLocked(entry.UserID); err != nil {
		return err
	}
	for _, e := range m.shifts[entry.UserID] {
		if e.ID == entry.ID {
			return wall.ErrDuplicateID
		}
	}
	m.shifts[entry.UserID] = append(m.shifts[entry.UserID], entry)
	return nil
}

func (m *Memory) DeleteShift(_ context.Context, userID wall.UserID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.shifts[userID]
	for i, e := range entries {
		if e.ID == id {
			m.shifts[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return wall.ErrNotFound
}

// -----------------------------------------------------------------------------
// Work schedules
// -----------------------------------------------------------------------------

func (m *Memory) ListSchedules(_ context.Context, userID wall.UserID) ([]wall.WorkSchedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := append([]wall.WorkSchedule(nil), m.schedules[userID]...)
	sort.SliceStable(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result, nil
}

func (m *Memory) AddSchedule(_ context.Context, schedule wall.WorkSchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireProfileLocked(schedule.UserID); err != nil {
		return err
	}
	for _, s := range m.schedules[schedule.UserID] {
		if s.ID == schedule.ID {
			return wall.ErrDuplicateID
		}
	}
	m.schedules[schedule.UserID] = append(m.schedules[schedule.UserID], schedule)
	return nil
}

func (m *Memory) DeleteSchedule(_ context.Context, userID wall.UserID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.schedules[userID]
	for i, s := range entries {
		if s.ID == id {
			m.schedules[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return wall.ErrNotFound
}

// -----------------------------------------------------------------------------
// Employers
// -----------------------------------------------------------------------------

func (m *Memory) ListEmployers(_ context.Context, userID wall.UserID) ([]wall.Employer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]wall.Employer(nil), m.employers[userID]...), nil
}

func (m *Memory) AddEmployer(_ context.Context, employer wall.Employer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.requireProfileLocked(employer.UserID); err != nil {
		return err
	}
	for _, e := range m.employers[employer.UserID] {
		if e.ID == employer.ID {
			return wall.ErrDuplicateID
		}
	}
	m.employers[employer.UserID] = append(m.employers[employer.UserID], employer)
	return nil
}

func (m *Memory) DeleteEmployer(_ context.Context, userID wall.UserID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := m.employers[userID]
	for i, e := range entries {
		if e.ID == id {
			m.employers[userID] = append(entries[:i], entries[i+1:]...)
			return nil
		}
	}
	return wall.ErrNotFound
}
