package wall_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fuyou/wall-engine/wall"
)

// =============================================================================
// WAGE FALLBACK
// =============================================================================

func TestResolveHourlyWage_FallbackOrder(t *testing.T) {
	shiftWage := wall.NewYenFromInt(1400)
	profileDefault := wall.NewYenFromInt(1100)

	// Shift wage wins when set
	assert.Equal(t, "1400", wall.ResolveHourlyWage(&shiftWage, profileDefault).String())

	// Profile default when the shift carries none
	assert.Equal(t, "1100", wall.ResolveHourlyWage(nil, profileDefault).String())

	// Zero when neither is set
	assert.True(t, wall.ResolveHourlyWage(nil, wall.ZeroYen()).IsZero())

	// An explicit zero shift wage is honored, not treated as absent
	zero := wall.ZeroYen()
	assert.True(t, wall.ResolveHourlyWage(&zero, profileDefault).IsZero())
}

func TestShiftIncome_ExplicitZeroWage_Unpaid(t *testing.T) {
	// GIVEN: A shift carrying an explicit zero wage on a profile with a default
	// WHEN: Pricing the shift
	// THEN: The shift earns nothing; only an absent wage inherits the default

	p := wall.UserProfile{DefaultHourlyWage: wall.NewYenFromInt(1100)}
	zero := wall.ZeroYen()
	s := wall.ShiftEntry{Date: wall.NewDate(2026, time.June, 1), Hours: 8, HourlyWage: &zero}

	assert.True(t, wall.ShiftIncome(s, p).IsZero())
}

// =============================================================================
// FREQUENCY CONVERSION
// =============================================================================

func TestMonthlyScheduleIncome_WeeklyUsesAverageWeeks(t *testing.T) {
	// GIVEN: 10 hours per week at 1000 yen
	// WHEN: Converting to a monthly estimate
	// THEN: 10 * 1000 * 4.33 = 43,300

	s := wall.WorkSchedule{
		Hours:      10,
		HourlyWage: wall.NewYenFromInt(1000),
		Frequency:  wall.FrequencyWeekly,
	}
	assert.Equal(t, "43300", wall.MonthlyScheduleIncome(s).String())
}

func TestMonthlyScheduleIncome_MonthlyIsDirect(t *testing.T) {
	// GIVEN: 60 hours per month at 1250 yen
	// WHEN: Converting
	// THEN: No weekly multiplier applies

	s := wall.WorkSchedule{
		Hours:      60,
		HourlyWage: wall.NewYenFromInt(1250),
		Frequency:  wall.FrequencyMonthly,
	}
	assert.Equal(t, "75000", wall.MonthlyScheduleIncome(s).String())
}

// =============================================================================
// YEARLY ESTIMATES
// =============================================================================

func TestIncomeFromSchedule_ClampsToActiveMonths(t *testing.T) {
	// GIVEN: A monthly schedule running April through September 2026
	// WHEN: Estimating 2026 income
	// THEN: Exactly 6 months contribute

	end := wall.NewDate(2026, time.September, 30)
	schedules := []wall.WorkSchedule{{
		Hours:      50,
		HourlyWage: wall.NewYenFromInt(1000),
		Frequency:  wall.FrequencyMonthly,
		StartDate:  wall.NewDate(2026, time.April, 1),
		EndDate:    &end,
	}}

	total := wall.IncomeFromSchedule(wall.UserProfile{}, schedules, nil, 2026)
	assert.Equal(t, "300000", total.String()) // 50,000 * 6
}

func TestIncomeFromSchedule_OutsideYearContributesNothing(t *testing.T) {
	// GIVEN: A schedule entirely in 2025 and a shift dated 2025
	// WHEN: Estimating 2026
	// THEN: The total is zero

	end := wall.NewDate(2025, time.December, 31)
	schedules := []wall.WorkSchedule{{
		Hours:      40,
		HourlyWage: wall.NewYenFromInt(1000),
		Frequency:  wall.FrequencyMonthly,
		StartDate:  wall.NewDate(2025, time.January, 1),
		EndDate:    &end,
	}}
	shifts := []wall.ShiftEntry{{
		Date:  wall.NewDate(2025, time.June, 1),
		Hours: 8,
	}}

	total := wall.IncomeFromSchedule(wall.UserProfile{DefaultHourlyWage: wall.NewYenFromInt(1000)}, schedules, shifts, 2026)
	assert.True(t, total.IsZero())
}

func TestIncomeFromSchedule_ShiftsUseWageFallback(t *testing.T) {
	// GIVEN: One shift with its own wage, one inheriting the profile default
	// WHEN: Estimating the year
	// THEN: Each shift prices at its resolved wage

	p := wall.UserProfile{DefaultHourlyWage: wall.NewYenFromInt(1000)}
	own := wall.NewYenFromInt(1500)
	shifts := []wall.ShiftEntry{
		{Date: wall.NewDate(2026, time.March, 1), Hours: 4, HourlyWage: &own},
		{Date: wall.NewDate(2026, time.March, 8), Hours: 4},
	}

	total := wall.IncomeFromSchedule(p, nil, shifts, 2026)
	assert.Equal(t, "10000", total.String()) // 6000 + 4000
}

func TestShiftIncome_NoWageAnywhere_Zero(t *testing.T) {
	s := wall.ShiftEntry{Date: wall.NewDate(2026, time.May, 5), Hours: 8}
	assert.True(t, wall.ShiftIncome(s, wall.UserProfile{}).IsZero())
}

// =============================================================================
// VALIDATION
// =============================================================================

func TestWorkSchedule_Validate(t *testing.T) {
	valid := wall.WorkSchedule{
		Hours:      10,
		HourlyWage: wall.NewYenFromInt(1000),
		Frequency:  wall.FrequencyWeekly,
		StartDate:  wall.NewDate(2026, time.January, 1),
	}
	assert.NoError(t, valid.Validate())

	badFreq := valid
	badFreq.Frequency = "daily"
	assert.ErrorIs(t, badFreq.Validate(), wall.ErrInvalidFrequency)

	negHours := valid
	negHours.Hours = -1
	assert.ErrorIs(t, negHours.Validate(), wall.ErrInvalidHours)

	end := wall.NewDate(2025, time.December, 1)
	inverted := valid
	inverted.EndDate = &end
	assert.ErrorIs(t, inverted.Validate(), wall.ErrInvalidDate)
}

func TestIncomeEntry_Validate(t *testing.T) {
	valid := wall.IncomeEntry{
		Date:   wall.NewDate(2026, time.February, 1),
		Amount: wall.NewYenFromInt(80_000),
	}
	assert.NoError(t, valid.Validate())

	neg := valid
	neg.Amount = wall.NewYenFromInt(-1)
	assert.ErrorIs(t, neg.Validate(), wall.ErrInvalidAmount)

	noDate := valid
	noDate.Date = wall.Date{}
	assert.ErrorIs(t, noDate.Validate(), wall.ErrInvalidDate)
}
