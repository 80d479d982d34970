package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuyou/wall-engine/wall"
	"github.com/fuyou/wall-engine/wall/store"
)

func TestMemory_OrphanRecordsRejected(t *testing.T) {
	// GIVEN: No profile for the user
	// WHEN: Adding income/shift/schedule/employer records
	// THEN: Each is rejected with ErrNotFound, matching the sqlite foreign keys

	m := store.NewMemory()
	ctx := context.Background()

	err := m.AddIncome(ctx, wall.IncomeEntry{
		ID: "i-1", UserID: "ghost", Date: wall.NewDate(2026, time.March, 1), Amount: wall.NewYenFromInt(1000),
	})
	assert.ErrorIs(t, err, wall.ErrNotFound)

	err = m.AddShift(ctx, wall.ShiftEntry{
		ID: "s-1", UserID: "ghost", Date: wall.NewDate(2026, time.March, 2), Hours: 4,
	})
	assert.ErrorIs(t, err, wall.ErrNotFound)

	err = m.AddSchedule(ctx, wall.WorkSchedule{
		ID: "sch-1", UserID: "ghost", Hours: 10, HourlyWage: wall.NewYenFromInt(1000),
		Frequency: wall.FrequencyWeekly, StartDate: wall.NewDate(2026, time.January, 1),
	})
	assert.ErrorIs(t, err, wall.ErrNotFound)

	err = m.AddEmployer(ctx, wall.Employer{ID: "e-1", UserID: "ghost", Name: "Shop"})
	assert.ErrorIs(t, err, wall.ErrNotFound)
}

func TestMemory_RecordsAttachOnceProfileExists(t *testing.T) {
	m := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveProfile(ctx, wall.UserProfile{UserID: "u-1", Bracket: wall.Bracket103}))
	require.NoError(t, m.AddIncome(ctx, wall.IncomeEntry{
		ID: "i-1", UserID: "u-1", Date: wall.NewDate(2026, time.March, 1), Amount: wall.NewYenFromInt(1000),
	}))

	list, err := m.ListIncomes(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
