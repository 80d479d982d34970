/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:
  Provides pre-built scenarios that populate the store with realistic data
  for demos. Each scenario creates a demo user with a profile and a mix of
  incomes, shifts, and schedules that exercise a specific engine behavior.

AVAILABLE SCENARIOS:
  fresh-start:       Onboarded profile with no records yet
  steady-earner:     Monthly income on pace to cross the 103 wall
  over-the-wall:     Already past the selected limit
  schedule-planner:  No realized income; projection runs off schedules

HOW SCENARIOS WORK:
 1. Delete the demo user (if present)
 2. Save a fresh profile
 3. Insert the scenario's records, dated relative to the current year

NOTE:
  Scenarios overwrite the demo user. Only use in development/demo
  environments.

SEE ALSO:
  - handlers.go: writeJSON/writeError helpers
  - server.go: /api/scenarios routes
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fuyou/wall-engine/wall"
)

// DemoUserID is the account every scenario loads into.
const DemoUserID wall.UserID = "demo-user"

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "fresh-start",
		Name:        "Fresh Start",
		Description: "Onboarded student with no income recorded yet",
	},
	{
		ID:          "steady-earner",
		Name:        "Steady Earner",
		Description: "Monthly income on pace to cross the 103-man wall",
	},
	{
		ID:          "over-the-wall",
		Name:        "Over The Wall",
		Description: "Year-to-date income already past the selected limit",
	},
	{
		ID:          "schedule-planner",
		Name:        "Schedule Planner",
		Description: "No realized income; projection driven by work schedules",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the demo user and loads the requested scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	asOf := wall.Today()

	var err error
	switch req.ScenarioID {
	case "fresh-start":
		err = h.loadFreshStart(ctx, asOf)
	case "steady-earner":
		err = h.loadSteadyEarner(ctx, asOf)
	case "over-the-wall":
		err = h.loadOverTheWall(ctx, asOf)
	case "schedule-planner":
		err = h.loadSchedulePlanner(ctx, asOf)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	h.Metrics.RecordScenarioLoad(req.ScenarioID)

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
		"user_id":  string(DemoUserID),
	})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// resetDemoUser wipes the demo account and writes a baseline profile.
func (h *Handler) resetDemoUser(ctx context.Context, profile wall.UserProfile) error {
	if err := h.Store.DeleteUser(ctx, DemoUserID); err != nil && !wall.IsNotFound(err) {
		return err
	}
	profile.UserID = DemoUserID
	return h.Store.SaveProfile(ctx, profile)
}

func demoProfile(bracket wall.Bracket, hourlyWage float64, asOf wall.Date) wall.UserProfile {
	birth := wall.NewDate(asOf.Year()-20, time.April, 2)
	terms := asOf.StartOfYear()
	return wall.UserProfile{
		Bracket:           bracket,
		DefaultHourlyWage: wall.NewYen(hourlyWage),
		BirthDate:         &birth,
		StudentType:       wall.StudentUniversity,
		InsuranceStatus:   "dependent",
		LivingStatus:      "with_family",
		TermsAcceptedAt:   &terms,
	}
}

func (h *Handler) loadFreshStart(ctx context.Context, asOf wall.Date) error {
	return h.resetDemoUser(ctx, demoProfile(wall.Bracket103, 1100, asOf))
}

// loadSteadyEarner records ~88k/month since January, which projects past the
// 103 wall before year end.
func (h *Handler) loadSteadyEarner(ctx context.Context, asOf wall.Date) error {
	if err := h.resetDemoUser(ctx, demoProfile(wall.Bracket103, 1200, asOf)); err != nil {
		return err
	}

	employer := wall.Employer{
		ID:            uuid.NewString(),
		UserID:        DemoUserID,
		Name:          "Konbini Mart",
		WeeklyHours:   18,
		MonthlyIncome: wall.NewYenFromInt(88_000),
		SizeCategory:  "large",
	}
	if err := h.Store.AddEmployer(ctx, employer); err != nil {
		return err
	}

	for m := time.January; m <= asOf.Month(); m++ {
		entry := wall.IncomeEntry{
			ID:         uuid.NewString(),
			UserID:     DemoUserID,
			EmployerID: employer.ID,
			Date:       wall.NewDate(asOf.Year(), m, 25),
			Amount:     wall.NewYenFromInt(88_000),
			Hours:      73,
		}
		if err := h.Store.AddIncome(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// loadOverTheWall front-loads income so the YTD total already exceeds
// 1,030,000 yen.
func (h *Handler) loadOverTheWall(ctx context.Context, asOf wall.Date) error {
	if err := h.resetDemoUser(ctx, demoProfile(wall.Bracket103, 1300, asOf)); err != nil {
		return err
	}

	amounts := []int64{420_000, 380_000, 290_000}
	for i, amount := range amounts {
		entry := wall.IncomeEntry{
			ID:     uuid.NewString(),
			UserID: DemoUserID,
			Date:   wall.NewDate(asOf.Year(), time.January+time.Month(i), 28),
			Amount: wall.NewYenFromInt(amount),
		}
		if err := h.Store.AddIncome(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

// loadSchedulePlanner has no realized income at all: the projection falls
// back to the schedule-derived monthly rate.
func (h *Handler) loadSchedulePlanner(ctx context.Context, asOf wall.Date) error {
	if err := h.resetDemoUser(ctx, demoProfile(wall.Bracket130, 1100, asOf)); err != nil {
		return err
	}

	schedule := wall.WorkSchedule{
		ID:         uuid.NewString(),
		UserID:     DemoUserID,
		Hours:      16,
		HourlyWage: wall.NewYenFromInt(1_150),
		Frequency:  wall.FrequencyWeekly,
		StartDate:  asOf.StartOfYear(),
	}
	if err := h.Store.AddSchedule(ctx, schedule); err != nil {
		return err
	}

	wage := wall.NewYenFromInt(1_400)
	shift := wall.ShiftEntry{
		ID:         uuid.NewString(),
		UserID:     DemoUserID,
		Date:       asOf.AddDays(7),
		Hours:      6,
		HourlyWage: &wage,
	}
	return h.Store.AddShift(ctx, shift)
}
