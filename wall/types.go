/*
Package wall provides the core dependency-wall calculation engine.

PURPOSE:
  This package contains the types and algorithms for tracking a student's
  part-time income against the Japanese dependency thresholds (the 103/130/150
  man-yen "walls"). It answers two questions: "where do I stand this year?"
  (threshold calculator) and "when will I cross the wall?" (projection engine).

KEY CONCEPTS IN THIS FILE (types.go):
  - Yen: A money amount backed by decimal.Decimal
  - Bracket: The wall a user tracks against (103, 130 or 150 man-yen)
  - UserProfile / IncomeEntry / ShiftEntry / WorkSchedule: Caller-supplied records
  - CalcResult / SimulationResult: Derived snapshots, never persisted

DESIGN PRINCIPLES:
  1. Purity: Every calculation is a function of its arguments plus an explicit
     reference date. Nothing here reads the system clock or touches I/O.
  2. Precision: Uses decimal.Decimal to avoid floating-point drift on money.
  3. Safe defaults: Missing optional fields collapse to zero values, never
     errors. Input sanitization happens at the ingestion boundary.

USAGE:
  asOf := wall.NewDate(2026, time.August, 1)
  result := wall.CalculateWalls(profile, incomes, shifts, asOf)
  fmt.Println(result.RemainingToLimit)

SEE ALSO:
  - calculator.go: Year-to-date snapshot against the selected wall
  - projection.go: Forward simulation and exceed-date detection
  - schedule.go: Schedule/shift income estimation and wage fallback
*/
package wall

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// YEN - Money amount
// =============================================================================

// Yen is a yen amount. Amounts are usually whole yen but intermediate
// results (weekly-hours x 4.33 conversions) carry fractions, so the
// representation stays decimal throughout.
type Yen struct {
	Value decimal.Decimal
}

func NewYen(value float64) Yen      { return Yen{Value: decimal.NewFromFloat(value)} }
func NewYenFromInt(value int64) Yen { return Yen{Value: decimal.NewFromInt(value)} }
func ZeroYen() Yen                  { return Yen{Value: decimal.Zero} }

func (y Yen) Add(b Yen) Yen                 { return Yen{Value: y.Value.Add(b.Value)} }
func (y Yen) Sub(b Yen) Yen                 { return Yen{Value: y.Value.Sub(b.Value)} }
func (y Yen) Mul(s decimal.Decimal) Yen     { return Yen{Value: y.Value.Mul(s)} }
func (y Yen) MulInt(n int64) Yen            { return Yen{Value: y.Value.Mul(decimal.NewFromInt(n))} }
func (y Yen) DivInt(n int64) Yen            { return Yen{Value: y.Value.Div(decimal.NewFromInt(n))} }
func (y Yen) Neg() Yen                      { return Yen{Value: y.Value.Neg()} }
func (y Yen) IsNegative() bool              { return y.Value.IsNegative() }
func (y Yen) IsZero() bool                  { return y.Value.IsZero() }
func (y Yen) IsPositive() bool              { return y.Value.IsPositive() }
func (y Yen) GreaterThan(b Yen) bool        { return y.Value.GreaterThan(b.Value) }
func (y Yen) GreaterThanOrEqual(b Yen) bool { return y.Value.GreaterThanOrEqual(b.Value) }
func (y Yen) LessThan(b Yen) bool           { return y.Value.LessThan(b.Value) }
func (y Yen) Float64() float64              { f, _ := y.Value.Float64(); return f }
func (y Yen) String() string                { return y.Value.String() }

// MustParseYen parses a decimal string, returning zero on malformed input.
func MustParseYen(s string) Yen {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ZeroYen()
	}
	return Yen{Value: d}
}

// =============================================================================
// BRACKET - Selected dependency wall
// =============================================================================

// Bracket is a wall threshold in units of 10,000 yen per year.
type Bracket int

const (
	Bracket103 Bracket = 103
	Bracket130 Bracket = 130
	Bracket150 Bracket = 150
)

// Fixed reference limits in yen. The hour estimates in CalcResult are always
// computed against Limit103/Limit130 regardless of the selected bracket.
var (
	Limit103 = NewYenFromInt(1_030_000)
	Limit130 = NewYenFromInt(1_300_000)
	Limit150 = NewYenFromInt(1_500_000)
)

func (b Bracket) Valid() bool {
	return b == Bracket103 || b == Bracket130 || b == Bracket150
}

// Normalize maps an unset or invalid bracket to the 103 default.
func (b Bracket) Normalize() Bracket {
	if !b.Valid() {
		return Bracket103
	}
	return b
}

// Limit converts the man-yen bracket to its yen limit.
func (b Bracket) Limit() Yen {
	return NewYenFromInt(int64(b.Normalize()) * 10_000)
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

type UserID string

// =============================================================================
// USER PROFILE - A student's configuration
// =============================================================================

type StudentType string

const (
	StudentUniversity StudentType = "university"
	StudentVocational StudentType = "vocational"
	StudentHighSchool StudentType = "highschool"
)

// UserProfile is a student's configuration. Only Bracket and DefaultHourlyWage
// feed the threshold math; the demographic fields are onboarding inputs.
type UserProfile struct {
	UserID            UserID
	Bracket           Bracket
	DefaultHourlyWage Yen // zero = not set; hour estimates read zero
	BirthDate         *Date
	StudentType       StudentType
	InsuranceStatus   string
	LivingStatus      string
	TermsAcceptedAt   *Date
	Employers         []Employer
}

// OnboardingComplete reports whether the profile has everything the
// onboarding flow collects before the dashboard unlocks.
func (p UserProfile) OnboardingComplete() bool {
	return p.TermsAcceptedAt != nil &&
		p.BirthDate != nil &&
		p.StudentType != "" &&
		p.Bracket.Valid()
}

// Employer is a workplace attached to a profile. The calculator only reads
// aggregate monthly-income estimates; the rest is bookkeeping for the UI.
type Employer struct {
	ID               string
	UserID           UserID
	Name             string
	WeeklyHours      float64
	MonthlyIncome    Yen
	CommuteAllowance Yen
	AnnualBonus      Yen
	SizeCategory     string // "small", "medium", "large" - social-insurance rules differ
}

// =============================================================================
// INCOME / SHIFT / SCHEDULE RECORDS
// =============================================================================

// IncomeEntry is a realized income record. Immutable once created except for
// explicit user edits; deleted by id.
type IncomeEntry struct {
	ID         string
	UserID     UserID
	EmployerID string
	Date       Date
	Amount     Yen
	Hours      float64
}

// Validate guards the ingestion boundary. The calculators assume entries
// already passed this.
func (e IncomeEntry) Validate() error {
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if e.Hours < 0 {
		return ErrInvalidHours
	}
	if e.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// ShiftEntry is a planned or logged work session. HourlyWage nil means
// "inherit the profile default" (see ResolveHourlyWage).
type ShiftEntry struct {
	ID         string
	UserID     UserID
	EmployerID string
	Date       Date
	Hours      float64
	HourlyWage *Yen
}

func (s ShiftEntry) Validate() error {
	if s.Hours < 0 {
		return ErrInvalidHours
	}
	if s.HourlyWage != nil && s.HourlyWage.IsNegative() {
		return ErrInvalidAmount
	}
	if s.Date.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// WorkSchedule is a recurring commitment. For FrequencyWeekly, Hours is hours
// per week; for FrequencyMonthly it is hours per month.
type WorkSchedule struct {
	ID         string
	UserID     UserID
	EmployerID string
	Hours      float64
	HourlyWage Yen
	Frequency  Frequency
	StartDate  Date
	EndDate    *Date
}

func (s WorkSchedule) Validate() error {
	if s.Hours < 0 {
		return ErrInvalidHours
	}
	if s.HourlyWage.IsNegative() {
		return ErrInvalidAmount
	}
	if s.Frequency != FrequencyWeekly && s.Frequency != FrequencyMonthly {
		return ErrInvalidFrequency
	}
	if s.StartDate.IsZero() {
		return ErrInvalidDate
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return ErrInvalidDate
	}
	return nil
}

// =============================================================================
// DERIVED RESULTS - Computed on demand, never stored
// =============================================================================

// CalcResult is the year-to-date snapshot against the selected wall.
type CalcResult struct {
	AsOf    Date
	Bracket Bracket
	Limit   Yen

	TotalIncomeYTD   Yen
	RemainingToLimit Yen // never negative; zero once the wall is crossed
	PercentUsed      int // integer percent, clamped to [0,100]

	// Hour estimates against the FIXED 103/130 references, independent of the
	// selected bracket. Zero when no hourly wage is configured.
	EstimatedHoursLeftBy103 int64
	EstimatedHoursLeftBy130 int64
}

// SimulationPoint is one month of the forward projection, carrying the three
// fixed limit lines for charting.
type SimulationPoint struct {
	Month      Date
	Cumulative Yen
	Limit103   Yen
	Limit130   Yen
	Limit150   Yen
}

// SimulationResult is the forward projection across the horizon.
type SimulationResult struct {
	AsOf           Date
	Bracket        Bracket
	Limit          Yen
	MonthlyAverage Yen
	Points         []SimulationPoint

	// ExceedDate is the first projected month where cumulative income reaches
	// the selected limit; nil when no month in the horizon gets there.
	ExceedDate   *Date
	ExceedAmount Yen
}
