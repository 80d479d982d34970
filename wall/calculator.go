/*
calculator.go - Year-to-date threshold snapshot

PURPOSE:
  Computes where a student stands against their selected wall: total income
  for the reference year, remaining headroom, percent used, and how many more
  hours they can work before hitting the fixed 103/130 references.

KEY INSIGHT:
  The hour estimates are informational and ALWAYS computed against the fixed
  1,030,000 / 1,300,000 yen references, even when the user tracks the 150
  wall. A student on the 150 bracket still wants to know when the tax wall
  (103) and the social-insurance wall (130) fall.

DETERMINISM:
  The reference date is an explicit argument. Two calls with identical inputs
  produce identical results; there is no hidden clock read and no state.

SEE ALSO:
  - projection.go: Forward simulation using the same year filter
  - schedule.go: Wage fallback resolution
*/
package wall

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateWalls derives the year-to-date snapshot for asOf's calendar year.
//
// The shifts argument is accepted for contract parity with the projection
// engine but does not feed the realized YTD sum: shifts are planned work,
// incomes are realized pay, and the two are independent tracking mechanisms.
func CalculateWalls(profile UserProfile, incomes []IncomeEntry, shifts []ShiftEntry, asOf Date) CalcResult {
	_ = shifts

	bracket := profile.Bracket.Normalize()
	limit := bracket.Limit()

	ytd := YearToDateIncome(incomes, asOf.Year())

	remaining := limit.Sub(ytd)
	if remaining.IsNegative() {
		remaining = ZeroYen()
	}

	return CalcResult{
		AsOf:                    asOf,
		Bracket:                 bracket,
		Limit:                   limit,
		TotalIncomeYTD:          ytd,
		RemainingToLimit:        remaining,
		PercentUsed:             percentUsed(ytd, limit),
		EstimatedHoursLeftBy103: hoursLeft(Limit103, ytd, profile.DefaultHourlyWage),
		EstimatedHoursLeftBy130: hoursLeft(Limit130, ytd, profile.DefaultHourlyWage),
	}
}

// YearToDateIncome sums realized income entries dated in the given calendar
// year. Entries from other years never contribute.
func YearToDateIncome(incomes []IncomeEntry, year int) Yen {
	total := ZeroYen()
	for _, e := range incomes {
		if e.Date.InYear(year) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// percentUsed is round(min(100, ytd/limit*100)) as an integer. The limit is
// one of three positive constants, so the division is always defined.
func percentUsed(ytd, limit Yen) int {
	pct := ytd.Value.Div(limit.Value).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	return int(pct.Round(0).IntPart())
}

// hoursLeft is floor(max(0, limit-ytd) / hourly), or 0 when no positive
// hourly wage is configured.
func hoursLeft(limit, ytd, hourly Yen) int64 {
	if !hourly.IsPositive() {
		return 0
	}
	headroom := limit.Sub(ytd)
	if headroom.IsNegative() {
		return 0
	}
	return headroom.Value.Div(hourly.Value).Floor().IntPart()
}
