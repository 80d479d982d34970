/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Yen amounts cross the wire as plain numbers; the decimal representation
  stays internal. Display strings (formatted yen, percent) are included on
  the snapshot so the frontend never re-implements the clamping rules.

SEE ALSO:
  - handlers.go: Uses these types
  - wall/types.go: The domain model these mirror
*/
package api

import (
	"github.com/fuyou/wall-engine/wall"
)

// =============================================================================
// PROFILE
// =============================================================================

// ProfileDTO represents a user profile in API responses.
type ProfileDTO struct {
	UserID            string        `json:"user_id"`
	Bracket           int           `json:"bracket"`
	DefaultHourlyWage float64       `json:"default_hourly_wage"`
	BirthDate         string        `json:"birth_date,omitempty"`
	StudentType       string        `json:"student_type,omitempty"`
	InsuranceStatus   string        `json:"insurance_status,omitempty"`
	LivingStatus      string        `json:"living_status,omitempty"`
	TermsAcceptedAt   string        `json:"terms_accepted_at,omitempty"`
	Employers         []EmployerDTO `json:"employers"`
}

// SaveProfileRequest is the request to create or replace a profile.
type SaveProfileRequest struct {
	Bracket           int     `json:"bracket"`
	DefaultHourlyWage float64 `json:"default_hourly_wage"`
	BirthDate         string  `json:"birth_date,omitempty"`
	StudentType       string  `json:"student_type,omitempty"`
	InsuranceStatus   string  `json:"insurance_status,omitempty"`
	LivingStatus      string  `json:"living_status,omitempty"`
	TermsAcceptedAt   string  `json:"terms_accepted_at,omitempty"`
}

// OnboardingDTO reports onboarding completeness.
type OnboardingDTO struct {
	Complete       bool `json:"complete"`
	HasBirthDate   bool `json:"has_birth_date"`
	HasStudentType bool `json:"has_student_type"`
	TermsAccepted  bool `json:"terms_accepted"`
	BracketValid   bool `json:"bracket_valid"`
}

// =============================================================================
// EMPLOYERS
// =============================================================================

type EmployerDTO struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	WeeklyHours      float64 `json:"weekly_hours"`
	MonthlyIncome    float64 `json:"monthly_income"`
	CommuteAllowance float64 `json:"commute_allowance"`
	AnnualBonus      float64 `json:"annual_bonus"`
	SizeCategory     string  `json:"size_category,omitempty"`
}

type CreateEmployerRequest struct {
	Name             string  `json:"name"`
	WeeklyHours      float64 `json:"weekly_hours"`
	MonthlyIncome    float64 `json:"monthly_income"`
	CommuteAllowance float64 `json:"commute_allowance"`
	AnnualBonus      float64 `json:"annual_bonus"`
	SizeCategory     string  `json:"size_category,omitempty"`
}

// =============================================================================
// INCOME / SHIFT / SCHEDULE RECORDS
// =============================================================================

type IncomeDTO struct {
	ID         string  `json:"id"`
	EmployerID string  `json:"employer_id,omitempty"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Hours      float64 `json:"hours,omitempty"`
}

type CreateIncomeRequest struct {
	EmployerID string  `json:"employer_id,omitempty"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Hours      float64 `json:"hours,omitempty"`
}

type ShiftDTO struct {
	ID         string   `json:"id"`
	EmployerID string   `json:"employer_id,omitempty"`
	Date       string   `json:"date"`
	Hours      float64  `json:"hours"`
	HourlyWage *float64 `json:"hourly_wage,omitempty"`
}

type CreateShiftRequest struct {
	EmployerID string   `json:"employer_id,omitempty"`
	Date       string   `json:"date"`
	Hours      float64  `json:"hours"`
	HourlyWage *float64 `json:"hourly_wage,omitempty"`
}

type ScheduleDTO struct {
	ID         string  `json:"id"`
	EmployerID string  `json:"employer_id,omitempty"`
	Hours      float64 `json:"hours"`
	HourlyWage float64 `json:"hourly_wage"`
	Frequency  string  `json:"frequency"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date,omitempty"`
}

type CreateScheduleRequest struct {
	EmployerID string  `json:"employer_id,omitempty"`
	Hours      float64 `json:"hours"`
	HourlyWage float64 `json:"hourly_wage"`
	Frequency  string  `json:"frequency"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date,omitempty"`
}

// =============================================================================
// DERIVED RESULTS
// =============================================================================

// WallsDTO is the year-to-date snapshot.
type WallsDTO struct {
	AsOf                    string  `json:"as_of"`
	Bracket                 int     `json:"bracket"`
	Limit                   float64 `json:"limit"`
	TotalIncomeYTD          float64 `json:"total_income_ytd"`
	RemainingToLimit        float64 `json:"remaining_to_limit"`
	PercentUsed             int     `json:"percent_used"`
	EstimatedHoursLeftBy103 int64   `json:"estimated_hours_left_by_103"`
	EstimatedHoursLeftBy130 int64   `json:"estimated_hours_left_by_130"`

	// Pre-formatted display strings
	RemainingLabel string `json:"remaining_label"`
	PercentLabel   string `json:"percent_label"`
}

type SimulationPointDTO struct {
	Month      string  `json:"month"`
	Cumulative float64 `json:"cumulative"`
	Limit103   float64 `json:"limit_103"`
	Limit130   float64 `json:"limit_130"`
	Limit150   float64 `json:"limit_150"`
}

// SimulationDTO is the forward projection.
type SimulationDTO struct {
	AsOf           string               `json:"as_of"`
	Bracket        int                  `json:"bracket"`
	Limit          float64              `json:"limit"`
	MonthlyAverage float64              `json:"monthly_average"`
	Points         []SimulationPointDTO `json:"simulation_data"`
	ExceedDate     *string              `json:"exceed_date"`
	ExceedAmount   float64              `json:"exceed_amount"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toProfileDTO(p wall.UserProfile) ProfileDTO {
	dto := ProfileDTO{
		UserID:            string(p.UserID),
		Bracket:           int(p.Bracket.Normalize()),
		DefaultHourlyWage: p.DefaultHourlyWage.Float64(),
		StudentType:       string(p.StudentType),
		InsuranceStatus:   p.InsuranceStatus,
		LivingStatus:      p.LivingStatus,
		Employers:         make([]EmployerDTO, 0, len(p.Employers)),
	}
	if p.BirthDate != nil {
		dto.BirthDate = p.BirthDate.String()
	}
	if p.TermsAcceptedAt != nil {
		dto.TermsAcceptedAt = p.TermsAcceptedAt.String()
	}
	for _, e := range p.Employers {
		dto.Employers = append(dto.Employers, toEmployerDTO(e))
	}
	return dto
}

func toEmployerDTO(e wall.Employer) EmployerDTO {
	return EmployerDTO{
		ID:               e.ID,
		Name:             e.Name,
		WeeklyHours:      e.WeeklyHours,
		MonthlyIncome:    e.MonthlyIncome.Float64(),
		CommuteAllowance: e.CommuteAllowance.Float64(),
		AnnualBonus:      e.AnnualBonus.Float64(),
		SizeCategory:     e.SizeCategory,
	}
}

func toIncomeDTO(e wall.IncomeEntry) IncomeDTO {
	return IncomeDTO{
		ID:         e.ID,
		EmployerID: e.EmployerID,
		Date:       e.Date.String(),
		Amount:     e.Amount.Float64(),
		Hours:      e.Hours,
	}
}

func toShiftDTO(e wall.ShiftEntry) ShiftDTO {
	dto := ShiftDTO{
		ID:         e.ID,
		EmployerID: e.EmployerID,
		Date:       e.Date.String(),
		Hours:      e.Hours,
	}
	if e.HourlyWage != nil {
		w := e.HourlyWage.Float64()
		dto.HourlyWage = &w
	}
	return dto
}

func toScheduleDTO(s wall.WorkSchedule) ScheduleDTO {
	dto := ScheduleDTO{
		ID:         s.ID,
		EmployerID: s.EmployerID,
		Hours:      s.Hours,
		HourlyWage: s.HourlyWage.Float64(),
		Frequency:  string(s.Frequency),
		StartDate:  s.StartDate.String(),
	}
	if s.EndDate != nil {
		dto.EndDate = s.EndDate.String()
	}
	return dto
}

func toWallsDTO(r wall.CalcResult) WallsDTO {
	return WallsDTO{
		AsOf:                    r.AsOf.String(),
		Bracket:                 int(r.Bracket),
		Limit:                   r.Limit.Float64(),
		TotalIncomeYTD:          r.TotalIncomeYTD.Float64(),
		RemainingToLimit:        r.RemainingToLimit.Float64(),
		PercentUsed:             r.PercentUsed,
		EstimatedHoursLeftBy103: r.EstimatedHoursLeftBy103,
		EstimatedHoursLeftBy130: r.EstimatedHoursLeftBy130,
		RemainingLabel:          wall.FormatYen(r.RemainingToLimit),
		PercentLabel:            wall.FormatPercent(r.PercentUsed),
	}
}

func toSimulationDTO(r wall.SimulationResult) SimulationDTO {
	dto := SimulationDTO{
		AsOf:           r.AsOf.String(),
		Bracket:        int(r.Bracket),
		Limit:          r.Limit.Float64(),
		MonthlyAverage: r.MonthlyAverage.Float64(),
		Points:         make([]SimulationPointDTO, 0, len(r.Points)),
		ExceedAmount:   r.ExceedAmount.Float64(),
	}
	for _, p := range r.Points {
		dto.Points = append(dto.Points, SimulationPointDTO{
			Month:      p.Month.String(),
			Cumulative: p.Cumulative.Float64(),
			Limit103:   p.Limit103.Float64(),
			Limit130:   p.Limit130.Float64(),
			Limit150:   p.Limit150.Float64(),
		})
	}
	if r.ExceedDate != nil {
		s := r.ExceedDate.String()
		dto.ExceedDate = &s
	}
	return dto
}
