/*
handlers.go - HTTP API handlers for the wall-tracking service

PURPOSE:
  Exposes the wall engine via REST API. Handles HTTP request/response, JSON
  serialization, and delegates to the pure calculators in wall/.

ENDPOINTS:
  Profile:
    GET    /api/users/{userID}/profile      Get profile (with employers)
    PUT    /api/users/{userID}/profile      Create or replace profile
    GET    /api/users/{userID}/onboarding   Onboarding completeness
    DELETE /api/users/{userID}              Delete account (cascades records)

  Records:
    GET/POST           /api/users/{userID}/incomes
    PUT/DELETE         /api/users/{userID}/incomes/{id}
    GET/POST           /api/users/{userID}/shifts      (DELETE on /{id})
    GET/POST           /api/users/{userID}/schedules   (DELETE on /{id})
    GET/POST           /api/users/{userID}/employers   (DELETE on /{id})

  Derived:
    GET /api/users/{userID}/walls        Snapshot (optional ?as_of=YYYY-MM-DD)
    GET /api/users/{userID}/simulation   Projection (?as_of, ?months, ?monthly_income)

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Missing user or record
  - 409: Duplicate record id
  - 500: Internal errors

SECURITY NOTE:
  Authentication is an external collaborator: the service trusts the
  {userID} path segment. Deploy behind an auth proxy that rewrites it.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/fuyou/wall-engine/metrics"
	"github.com/fuyou/wall-engine/wall"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   wall.Store
	Metrics metrics.Recorder

	// Default simulation horizon when the query omits ?months
	HorizonMonths int

	// Track currently loaded demo scenario
	currentScenario string
}

// NewHandler creates a new handler with the given store and recorder.
func NewHandler(store wall.Store, rec metrics.Recorder) *Handler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Handler{
		Store:         store,
		Metrics:       rec,
		HorizonMonths: wall.DefaultHorizonMonths,
	}
}

// =============================================================================
// PROFILE HANDLERS
// =============================================================================

// GetProfile returns a user's profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	profile, err := h.Store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get profile", err)
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found", nil)
		return
	}

	writeJSON(w, http.StatusOK, toProfileDTO(*profile))
}

// SaveProfile creates or replaces a user's profile.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	var req SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	bracket := wall.Bracket(req.Bracket)
	if req.Bracket != 0 && !bracket.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid bracket", wall.ErrInvalidBracket)
		return
	}
	if req.DefaultHourlyWage < 0 {
		writeError(w, http.StatusBadRequest, "Invalid hourly wage", wall.ErrInvalidAmount)
		return
	}

	profile := wall.UserProfile{
		UserID:            userID,
		Bracket:           bracket.Normalize(),
		DefaultHourlyWage: wall.NewYen(req.DefaultHourlyWage),
		StudentType:       wall.StudentType(req.StudentType),
		InsuranceStatus:   req.InsuranceStatus,
		LivingStatus:      req.LivingStatus,
	}

	var err error
	if profile.BirthDate, err = optionalDate(req.BirthDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid birth_date format (use YYYY-MM-DD)", err)
		return
	}
	if profile.TermsAcceptedAt, err = optionalDate(req.TermsAcceptedAt); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid terms_accepted_at format (use YYYY-MM-DD)", err)
		return
	}

	if err := h.Store.SaveProfile(r.Context(), profile); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save profile", err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileDTO(profile))
}

// GetOnboarding reports onboarding completeness for a user.
func (h *Handler) GetOnboarding(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	profile, err := h.Store.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get profile", err)
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusOK, OnboardingDTO{})
		return
	}

	writeJSON(w, http.StatusOK, OnboardingDTO{
		Complete:       profile.OnboardingComplete(),
		HasBirthDate:   profile.BirthDate != nil,
		HasStudentType: profile.StudentType != "",
		TermsAccepted:  profile.TermsAcceptedAt != nil,
		BracketValid:   profile.Bracket.Valid(),
	})
}

// DeleteUser deletes an account and every record keyed by it.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	if err := h.Store.DeleteUser(r.Context(), userID); err != nil {
		writeStoreError(w, "Failed to delete user", err)
		return
	}

	log.Info().Str("user_id", string(userID)).Msg("account deleted")
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// INCOME HANDLERS
// =============================================================================

// ListIncomes returns a user's income entries ordered by date.
func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	entries, err := h.Store.ListIncomes(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list incomes", err)
		return
	}

	dtos := make([]IncomeDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toIncomeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateIncome records a realized income entry.
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	var req CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := wall.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	entry := wall.IncomeEntry{
		ID:         uuid.NewString(),
		UserID:     userID,
		EmployerID: req.EmployerID,
		Date:       date,
		Amount:     wall.NewYen(req.Amount),
		Hours:      req.Hours,
	}
	if err := entry.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid income entry", err)
		return
	}

	if err := h.Store.AddIncome(r.Context(), entry); err != nil {
		writeStoreError(w, "Failed to create income", err)
		return
	}

	writeJSON(w, http.StatusCreated, toIncomeDTO(entry))
}

// UpdateIncome applies an explicit user edit to an income entry.
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))
	id := chi.URLParam(r, "id")

	var req CreateIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := wall.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	entry := wall.IncomeEntry{
		ID:         id,
		UserID:     userID,
		EmployerID: req.EmployerID,
		Date:       date,
		Amount:     wall.NewYen(req.Amount),
		Hours:      req.Hours,
	}
	if err := entry.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid income entry", err)
		return
	}

	if err := h.Store.UpdateIncome(r.Context(), entry); err != nil {
		writeStoreError(w, "Failed to update income", err)
		return
	}

	writeJSON(w, http.StatusOK, toIncomeDTO(entry))
}

// DeleteIncome removes an income entry by id.
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteIncome(r.Context(), userID, id); err != nil {
		writeStoreError(w, "Failed to delete income", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SHIFT HANDLERS
// =============================================================================

func (h *Handler) ListShifts(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	entries, err := h.Store.ListShifts(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	dtos := make([]ShiftDTO, len(entries))
	for i, e := range entries {
		dtos[i] = toShiftDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	var req CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := wall.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	entry := wall.ShiftEntry{
		ID:         uuid.NewString(),
		UserID:     userID,
		EmployerID: req.EmployerID,
		Date:       date,
		Hours:      req.Hours,
	}
	if req.HourlyWage != nil {
		wage := wall.NewYen(*req.HourlyWage)
		entry.HourlyWage = &wage
	}
	if err := entry.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shift entry", err)
		return
	}

	if err := h.Store.AddShift(r.Context(), entry); err != nil {
		writeStoreError(w, "Failed to create shift", err)
		return
	}

	writeJSON(w, http.StatusCreated, toShiftDTO(entry))
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteShift(r.Context(), userID, id); err != nil {
		writeStoreError(w, "Failed to delete shift", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	schedules, err := h.Store.ListSchedules(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedules", err)
		return
	}

	dtos := make([]ScheduleDTO, len(schedules))
	for i, s := range schedules {
		dtos[i] = toScheduleDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := wall.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start_date format (use YYYY-MM-DD)", err)
		return
	}

	schedule := wall.WorkSchedule{
		ID:         uuid.NewString(),
		UserID:     userID,
		EmployerID: req.EmployerID,
		Hours:      req.Hours,
		HourlyWage: wall.NewYen(req.HourlyWage),
		Frequency:  wall.Frequency(req.Frequency),
		StartDate:  start,
	}
	if schedule.EndDate, err = optionalDate(req.EndDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end_date format (use YYYY-MM-DD)", err)
		return
	}
	if err := schedule.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule", err)
		return
	}

	if err := h.Store.AddSchedule(r.Context(), schedule); err != nil {
		writeStoreError(w, "Failed to create schedule", err)
		return
	}

	writeJSON(w, http.StatusCreated, toScheduleDTO(schedule))
}

func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteSchedule(r.Context(), userID, id); err != nil {
		writeStoreError(w, "Failed to delete schedule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EMPLOYER HANDLERS
// =============================================================================

func (h *Handler) ListEmployers(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	employers, err := h.Store.ListEmployers(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employers", err)
		return
	}

	dtos := make([]EmployerDTO, len(employers))
	for i, e := range employers {
		dtos[i] = toEmployerDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateEmployer(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))

	var req CreateEmployerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Employer name is required", nil)
		return
	}
	if req.WeeklyHours < 0 || req.MonthlyIncome < 0 || req.CommuteAllowance < 0 || req.AnnualBonus < 0 {
		writeError(w, http.StatusBadRequest, "Employer amounts must be non-negative", wall.ErrInvalidAmount)
		return
	}

	employer := wall.Employer{
		ID:               uuid.NewString(),
		UserID:           userID,
		Name:             req.Name,
		WeeklyHours:      req.WeeklyHours,
		MonthlyIncome:    wall.NewYen(req.MonthlyIncome),
		CommuteAllowance: wall.NewYen(req.CommuteAllowance),
		AnnualBonus:      wall.NewYen(req.AnnualBonus),
		SizeCategory:     req.SizeCategory,
	}

	if err := h.Store.AddEmployer(r.Context(), employer); err != nil {
		writeStoreError(w, "Failed to create employer", err)
		return
	}

	writeJSON(w, http.StatusCreated, toEmployerDTO(employer))
}

func (h *Handler) DeleteEmployer(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))
	id := chi.URLParam(r, "id")

	if err := h.Store.DeleteEmployer(r.Context(), userID, id); err != nil {
		writeStoreError(w, "Failed to delete employer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// DERIVED RESULT HANDLERS
// =============================================================================

// GetWalls returns the year-to-date snapshot against the selected wall.
// GET /api/users/{userID}/walls?as_of=YYYY-MM-DD
func (h *Handler) GetWalls(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))
	ctx := r.Context()

	asOf, err := asOfParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of format (use YYYY-MM-DD)", err)
		return
	}

	profile, err := h.Store.GetProfile(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get profile", err)
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found", nil)
		return
	}

	incomes, err := h.Store.ListIncomes(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list incomes", err)
		return
	}
	shifts, err := h.Store.ListShifts(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	result := wall.CalculateWalls(*profile, incomes, shifts, asOf)
	h.Metrics.RecordSnapshot()

	writeJSON(w, http.StatusOK, toWallsDTO(result))
}

// GetSimulation returns the forward projection.
// GET /api/users/{userID}/simulation?as_of=YYYY-MM-DD&months=12&monthly_income=120000
func (h *Handler) GetSimulation(w http.ResponseWriter, r *http.Request) {
	userID := wall.UserID(chi.URLParam(r, "userID"))
	ctx := r.Context()

	asOf, err := asOfParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid as_of format (use YYYY-MM-DD)", err)
		return
	}

	horizon := h.HorizonMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		horizon, err = strconv.Atoi(raw)
		if err != nil || horizon <= 0 {
			writeError(w, http.StatusBadRequest, "Invalid months parameter", err)
			return
		}
	}

	var override *wall.Yen
	if raw := r.URL.Query().Get("monthly_income"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			writeError(w, http.StatusBadRequest, "Invalid monthly_income parameter", err)
			return
		}
		y := wall.NewYen(v)
		override = &y
	}

	profile, err := h.Store.GetProfile(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get profile", err)
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "Profile not found", nil)
		return
	}

	incomes, err := h.Store.ListIncomes(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list incomes", err)
		return
	}
	schedules, err := h.Store.ListSchedules(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list schedules", err)
		return
	}
	shifts, err := h.Store.ListShifts(ctx, userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list shifts", err)
		return
	}

	result := wall.PredictWallExceed(*profile, incomes, schedules, shifts, asOf, horizon, override)
	h.Metrics.RecordSimulation()

	writeJSON(w, http.StatusOK, toSimulationDTO(result))
}

// =============================================================================
// HELPERS
// =============================================================================

func asOfParam(r *http.Request) (wall.Date, error) {
	if raw := r.URL.Query().Get("as_of"); raw != "" {
		return wall.ParseDate(raw)
	}
	return wall.Today(), nil
}

func optionalDate(s string) (*wall.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := wall.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps store errors onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, message string, err error) {
	switch {
	case wall.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case errors.Is(err, wall.ErrDuplicateID):
		writeError(w, http.StatusConflict, message, err)
	case wall.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}
