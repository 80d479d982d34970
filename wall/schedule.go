/*
schedule.go - Schedule and shift income estimation

PURPOSE:
  Estimates income attributable to recurring work schedules and logged shifts.
  This is the second income-tracking mechanism alongside realized income
  entries; the two are independent and the UI may combine them additively.

WAGE FALLBACK:
  A shift without its own wage inherits the profile default; a profile without
  a default yields zero. The order is fixed in ResolveHourlyWage and applied
  nowhere else.

FREQUENCY:
  A weekly schedule records hours per week and converts to a monthly estimate
  with the 4.33 average-weeks-per-month factor. A monthly schedule records
  hours per month directly, multiplier 1.
*/
package wall

import (
	"github.com/shopspring/decimal"
)

// WeeksPerMonth is the average number of weeks in a month, used to convert
// weekly commitments to monthly income estimates.
var WeeksPerMonth = decimal.NewFromFloat(4.33)

// ResolveHourlyWage applies the single documented fallback order:
// shift wage, then profile default, then zero. Only an absent shift wage
// falls back; an explicit zero wage prices the shift at zero (an unpaid
// training shift is a real thing). The profile default uses zero as its
// own "not set" marker, so a non-positive default yields zero.
func ResolveHourlyWage(shiftWage *Yen, profileDefault Yen) Yen {
	if shiftWage != nil {
		return *shiftWage
	}
	if profileDefault.IsPositive() {
		return profileDefault
	}
	return ZeroYen()
}

// MonthlyScheduleIncome is the schedule's estimated income for one month.
func MonthlyScheduleIncome(s WorkSchedule) Yen {
	hours := decimal.NewFromFloat(s.Hours)
	switch s.Frequency {
	case FrequencyMonthly:
		return s.HourlyWage.Mul(hours)
	default:
		return s.HourlyWage.Mul(hours.Mul(WeeksPerMonth))
	}
}

// ShiftIncome is the estimated income of a single shift under the wage
// fallback order.
func ShiftIncome(s ShiftEntry, profile UserProfile) Yen {
	wage := ResolveHourlyWage(s.HourlyWage, profile.DefaultHourlyWage)
	return wage.Mul(decimal.NewFromFloat(s.Hours))
}

// IncomeFromSchedule estimates the total income attributable to recurring
// schedules plus logged shifts for the target year. Schedules contribute
// their monthly estimate for each month they are active in the year; shifts
// contribute individually when dated in the year.
//
// This is NOT the realized IncomeEntry total - see CalculateWalls for that.
func IncomeFromSchedule(profile UserProfile, schedules []WorkSchedule, shifts []ShiftEntry, year int) Yen {
	total := ZeroYen()

	for _, s := range schedules {
		months := activeMonthsInYear(s, year)
		if months == 0 {
			continue
		}
		total = total.Add(MonthlyScheduleIncome(s).MulInt(int64(months)))
	}

	for _, s := range shifts {
		if !s.Date.InYear(year) {
			continue
		}
		total = total.Add(ShiftIncome(s, profile))
	}

	return total
}

// activeMonthsInYear counts the calendar months of the year the schedule
// overlaps, clamped by StartDate and optional EndDate.
func activeMonthsInYear(s WorkSchedule, year int) int {
	if s.StartDate.Year() > year {
		return 0
	}
	if s.EndDate != nil && s.EndDate.Year() < year {
		return 0
	}

	first := 1
	if s.StartDate.Year() == year {
		first = int(s.StartDate.Month())
	}
	last := 12
	if s.EndDate != nil && s.EndDate.Year() == year {
		last = int(s.EndDate.Month())
	}
	if last < first {
		return 0
	}
	return last - first + 1
}
