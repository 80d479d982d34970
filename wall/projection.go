/*
projection.go - Forward simulation and exceed-date detection

PURPOSE:
  Projects cumulative income month by month across a forward horizon and
  determines whether, and when, the selected wall will be crossed.

MONTH CONVENTION:
  The reference month holds the realized year-to-date total; projection begins
  the FOLLOWING month. Points[k-1] (k = 1..horizon) is the first day of
  asOf-month + k, with cumulative = YTD + monthlyAverage * k. ExceedDate is
  the first such month whose cumulative reaches the selected limit.

RATE RESOLUTION:
  1. Caller-supplied override (explicit, may be zero)
  2. Realized monthly average: YTD / elapsed months
  3. Schedule-derived estimate: IncomeFromSchedule / 12, when nothing has
     been realized yet

  A zero or negative rate never reaches a positive limit, so ExceedDate stays
  nil. That is a valid "no foreseeable breach" result, not an error.
*/
package wall

// DefaultHorizonMonths is the horizon the dashboard uses. PredictWallExceed
// accepts any positive horizon.
const DefaultHorizonMonths = 12

// PredictWallExceed simulates cumulative income forward from asOf and reports
// the first month the selected wall is crossed. monthlyOverride, when non-nil,
// replaces the derived monthly rate.
func PredictWallExceed(
	profile UserProfile,
	incomes []IncomeEntry,
	schedules []WorkSchedule,
	shifts []ShiftEntry,
	asOf Date,
	horizonMonths int,
	monthlyOverride *Yen,
) SimulationResult {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}

	bracket := profile.Bracket.Normalize()
	limit := bracket.Limit()
	ytd := YearToDateIncome(incomes, asOf.Year())
	avg := monthlyRate(profile, schedules, shifts, ytd, asOf, monthlyOverride)

	result := SimulationResult{
		AsOf:           asOf,
		Bracket:        bracket,
		Limit:          limit,
		MonthlyAverage: avg,
		Points:         make([]SimulationPoint, 0, horizonMonths),
		ExceedAmount:   ZeroYen(),
	}

	base := asOf.StartOfMonth()
	for k := 1; k <= horizonMonths; k++ {
		month := base.AddMonths(k)
		cumulative := ytd.Add(avg.MulInt(int64(k)))

		result.Points = append(result.Points, SimulationPoint{
			Month:      month,
			Cumulative: cumulative,
			Limit103:   Limit103,
			Limit130:   Limit130,
			Limit150:   Limit150,
		})

		if result.ExceedDate == nil && cumulative.GreaterThanOrEqual(limit) {
			m := month
			result.ExceedDate = &m
			result.ExceedAmount = cumulative.Sub(limit)
		}
	}

	return result
}

// monthlyRate resolves the projection rate: override, then realized average,
// then schedule-derived estimate.
func monthlyRate(
	profile UserProfile,
	schedules []WorkSchedule,
	shifts []ShiftEntry,
	ytd Yen,
	asOf Date,
	override *Yen,
) Yen {
	if override != nil {
		return *override
	}
	if ytd.IsPositive() {
		return ytd.DivInt(int64(asOf.ElapsedMonths()))
	}
	estimate := IncomeFromSchedule(profile, schedules, shifts, asOf.Year())
	if estimate.IsPositive() {
		return estimate.DivInt(12)
	}
	return ZeroYen()
}
