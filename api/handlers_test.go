package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuyou/wall-engine/api"
	"github.com/fuyou/wall-engine/wall/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestServer(t *testing.T) *httptest.Server {
	h := api.NewHandler(store.NewMemory(), nil)
	srv := httptest.NewServer(api.NewRouter(h, []string{"*"}, nil))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func saveProfile(t *testing.T, srv *httptest.Server, userID string, bracket int, wage float64) {
	t.Helper()
	resp := doJSON(t, http.MethodPut, srv.URL+"/api/users/"+userID+"/profile", api.SaveProfileRequest{
		Bracket:           bracket,
		DefaultHourlyWage: wage,
		BirthDate:         "2005-04-02",
		StudentType:       "university",
		TermsAcceptedAt:   "2026-01-10",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// =============================================================================
// PROFILE ENDPOINTS
// =============================================================================

func TestProfile_PutThenGet(t *testing.T) {
	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 130, 1150)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/u-1/profile", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	p := decode[api.ProfileDTO](t, resp)
	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, 130, p.Bracket)
	assert.Equal(t, 1150.0, p.DefaultHourlyWage)
	assert.Equal(t, "2005-04-02", p.BirthDate)
}

func TestProfile_GetMissing_404(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/nobody/profile", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProfile_InvalidBracket_400(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/api/users/u-1/profile", api.SaveProfileRequest{
		Bracket: 120,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestOnboarding_Progression(t *testing.T) {
	srv := newTestServer(t)

	// Before any profile exists
	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/u-1/onboarding", nil)
	ob := decode[api.OnboardingDTO](t, resp)
	assert.False(t, ob.Complete)

	// After a complete profile
	saveProfile(t, srv, "u-1", 103, 1100)
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/u-1/onboarding", nil)
	ob = decode[api.OnboardingDTO](t, resp)
	assert.True(t, ob.Complete)
	assert.True(t, ob.HasBirthDate)
	assert.True(t, ob.TermsAccepted)
}

func TestDeleteUser_RemovesEverything(t *testing.T) {
	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users/u-1/incomes", api.CreateIncomeRequest{
		Date: "2026-02-25", Amount: 88_000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/users/u-1", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/u-1/profile", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/u-1/incomes", nil)
	incomes := decode[[]api.IncomeDTO](t, resp)
	assert.Empty(t, incomes)
}

// =============================================================================
// RECORD ENDPOINTS
// =============================================================================

func TestIncome_CreateListDelete(t *testing.T) {
	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users/u-1/incomes", api.CreateIncomeRequest{
		Date: "2026-02-25", Amount: 88_000, Hours: 73,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[api.IncomeDTO](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 88_000.0, created.Amount)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/u-1/incomes", nil)
	list := decode[[]api.IncomeDTO](t, resp)
	require.Len(t, list, 1)

	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/users/u-1/incomes/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Deleting twice yields 404
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/users/u-1/incomes/"+created.ID, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIncome_CreateWithoutProfile_404(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users/nobody/incomes", api.CreateIncomeRequest{
		Date: "2026-02-25", Amount: 50_000,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestIncome_NegativeAmount_400(t *testing.T) {
	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users/u-1/incomes", api.CreateIncomeRequest{
		Date: "2026-02-25", Amount: -100,
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestIncome_Update(t *testing.T) {
	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users/u-1/incomes", api.CreateIncomeRequest{
		Date: "2026-03-25", Amount: 80_000,
	})
	created := decode[api.IncomeDTO](t, resp)

	resp = doJSON(t, http.MethodPut, srv.URL+"/api/users/u-1/incomes/"+created.ID, api.CreateIncomeRequest{
		Date: "2026-03-25", Amount: 95_000,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[api.IncomeDTO](t, resp)
	assert.Equal(t, 95_000.0, updated.Amount)
}

func TestSchedule_InvalidFrequency_400(t *testing.T) {
	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1100)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users/u-1/schedules", api.CreateScheduleRequest{
		Hours: 10, HourlyWage: 1000, Frequency: "daily", StartDate: "2026-01-01",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// DERIVED ENDPOINTS
// =============================================================================

func TestGetWalls_Snapshot(t *testing.T) {
	// GIVEN: 500,000 yen earned in February, 103 bracket, 1200/h
	// WHEN: GET /walls with an explicit as_of
	// THEN: The snapshot matches the hand-computed values

	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1200)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/users/u-1/incomes", api.CreateIncomeRequest{
		Date: "2026-02-20", Amount: 500_000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/u-1/walls?as_of=2026-06-15", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	walls := decode[api.WallsDTO](t, resp)

	assert.Equal(t, 103, walls.Bracket)
	assert.Equal(t, 500_000.0, walls.TotalIncomeYTD)
	assert.Equal(t, 530_000.0, walls.RemainingToLimit)
	assert.Equal(t, 49, walls.PercentUsed)
	assert.Equal(t, int64(441), walls.EstimatedHoursLeftBy103)
	assert.Equal(t, int64(666), walls.EstimatedHoursLeftBy130)
	assert.Equal(t, "¥530,000", walls.RemainingLabel)
	assert.Equal(t, "49%", walls.PercentLabel)
}

func TestGetWalls_MissingProfile_404(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/nobody/walls", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetWalls_BadAsOf_400(t *testing.T) {
	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1100)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/users/u-1/walls?as_of=06-15-2026", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetSimulation_WithOverride(t *testing.T) {
	// GIVEN: No income and an explicit 150,000/month what-if rate
	// WHEN: GET /simulation from mid-January
	// THEN: The wall falls in August, 20,000 over

	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1100)

	url := srv.URL + "/api/users/u-1/simulation?as_of=2026-01-15&months=12&monthly_income=150000"
	resp := doJSON(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sim := decode[api.SimulationDTO](t, resp)

	assert.Equal(t, 150_000.0, sim.MonthlyAverage)
	require.Len(t, sim.Points, 12)
	assert.Equal(t, "2026-02-01", sim.Points[0].Month)
	require.NotNil(t, sim.ExceedDate)
	assert.Equal(t, "2026-08-01", *sim.ExceedDate)
	assert.Equal(t, 20_000.0, sim.ExceedAmount)
}

func TestGetSimulation_NonFiniteMonthlyIncome_400(t *testing.T) {
	// GIVEN: monthly_income values that parse as floats but are not finite
	// WHEN: GET /simulation
	// THEN: 400, never a panic-driven 500

	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1100)

	for _, raw := range []string{"NaN", "%2BInf", "-Inf", "Infinity", "-1"} {
		resp := doJSON(t, http.MethodGet,
			fmt.Sprintf("%s/api/users/u-1/simulation?monthly_income=%s", srv.URL, raw), nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "monthly_income=%s", raw)
	}
}

func TestGetSimulation_InvalidMonths_400(t *testing.T) {
	srv := newTestServer(t)
	saveProfile(t, srv, "u-1", 103, 1100)

	for _, months := range []string{"0", "-3", "abc"} {
		resp := doJSON(t, http.MethodGet,
			fmt.Sprintf("%s/api/users/u-1/simulation?months=%s", srv.URL, months), nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "months=%s", months)
	}
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenarios_ListAndLoad(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/scenarios", nil)
	list := decode[[]api.ScenarioDTO](t, resp)
	require.NotEmpty(t, list)

	resp = doJSON(t, http.MethodPost, srv.URL+"/api/scenarios/load", api.LoadScenarioRequest{
		ScenarioID: "over-the-wall",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Demo user now exists past the 103 wall
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/users/demo-user/walls", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	walls := decode[api.WallsDTO](t, resp)
	assert.Equal(t, 1_090_000.0, walls.TotalIncomeYTD)
	assert.Equal(t, 0.0, walls.RemainingToLimit)
	assert.Equal(t, 100, walls.PercentUsed)

	// Current scenario reflects the load
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/scenarios/current", nil)
	cur := decode[api.ScenarioDTO](t, resp)
	assert.Equal(t, "over-the-wall", cur.ID)
}

func TestScenarios_UnknownID_400(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/scenarios/load", api.LoadScenarioRequest{
		ScenarioID: "does-not-exist",
	})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// OPERATIONAL
// =============================================================================

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
