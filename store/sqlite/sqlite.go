/*
Package sqlite provides a SQLite-backed implementation of wall.Store.

PURPOSE:
  Persists user profiles and their income/shift/schedule/employer records.
  In production the same patterns apply to PostgreSQL - only minor SQL
  dialect differences.

KEY TABLES:
  users:          Profile and onboarding fields
  employers:      Workplaces attached to a profile
  income_entries: Realized income records
  shifts:         Planned/logged work sessions
  work_schedules: Recurring commitments

MONEY ENCODING:
  Yen amounts are stored as decimal TEXT, never floats. Dates are stored
  as ISO "YYYY-MM-DD" TEXT.

ACCOUNT DELETION:
  DeleteUser removes every row keyed by the user, enforced by
  ON DELETE CASCADE foreign keys.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block, single writer at a time.

USAGE:
  st, err := sqlite.New("./data/walls.db")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

SEE ALSO:
  - wall/store.go: Interface definitions
  - wall/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fuyou/wall-engine/wall"
)

// Store implements wall.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		bracket INTEGER NOT NULL DEFAULT 103,
		default_hourly_wage TEXT NOT NULL DEFAULT '0',
		birth_date TEXT,
		student_type TEXT,
		insurance_status TEXT,
		living_status TEXT,
		terms_accepted_at TEXT
	);

	CREATE TABLE IF NOT EXISTS employers (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		weekly_hours REAL NOT NULL DEFAULT 0,
		monthly_income TEXT NOT NULL DEFAULT '0',
		commute_allowance TEXT NOT NULL DEFAULT '0',
		annual_bonus TEXT NOT NULL DEFAULT '0',
		size_category TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_employers_user ON employers(user_id);

	CREATE TABLE IF NOT EXISTS income_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		employer_id TEXT,
		date TEXT NOT NULL,
		amount TEXT NOT NULL,
		hours REAL NOT NULL DEFAULT 0
	);

	-- Hot path: year filtering for the snapshot calculation
	CREATE INDEX IF NOT EXISTS idx_income_user_date ON income_entries(user_id, date);

	CREATE TABLE IF NOT EXISTS shifts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		employer_id TEXT,
		date TEXT NOT NULL,
		hours REAL NOT NULL DEFAULT 0,
		hourly_wage TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_user_date ON shifts(user_id, date);

	CREATE TABLE IF NOT EXISTS work_schedules (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		employer_id TEXT,
		hours REAL NOT NULL DEFAULT 0,
		hourly_wage TEXT NOT NULL DEFAULT '0',
		frequency TEXT NOT NULL DEFAULT 'weekly',
		start_date TEXT NOT NULL,
		end_date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_schedules_user ON work_schedules(user_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// PROFILES
// =============================================================================

func (s *Store) GetProfile(ctx context.Context, userID wall.UserID) (*wall.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, bracket, default_hourly_wage, birth_date, student_type,
		       insurance_status, living_status, terms_accepted_at
		FROM users WHERE id = ?`, string(userID))

	var (
		p                     wall.UserProfile
		id                    string
		bracket               int
		wage                  string
		birth, terms          sql.NullString
		student, insur, livin sql.NullString
	)
	if err := row.Scan(&id, &bracket, &wage, &birth, &student, &insur, &livin, &terms); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.UserID = wall.UserID(id)
	p.Bracket = wall.Bracket(bracket)
	p.DefaultHourlyWage = wall.MustParseYen(wage)
	p.StudentType = wall.StudentType(student.String)
	p.InsuranceStatus = insur.String
	p.LivingStatus = livin.String
	if d, ok := parseNullDate(birth); ok {
		p.BirthDate = d
	}
	if d, ok := parseNullDate(terms); ok {
		p.TermsAcceptedAt = d
	}

	employers, err := s.listEmployersLocked(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.Employers = employers

	return &p, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile wall.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, bracket, default_hourly_wage, birth_date, student_type,
		                   insurance_status, living_status, terms_accepted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			bracket = excluded.bracket,
			default_hourly_wage = excluded.default_hourly_wage,
			birth_date = excluded.birth_date,
			student_type = excluded.student_type,
			insurance_status = excluded.insurance_status,
			living_status = excluded.living_status,
			terms_accepted_at = excluded.terms_accepted_at`,
		string(profile.UserID),
		int(profile.Bracket.Normalize()),
		profile.DefaultHourlyWage.String(),
		nullDate(profile.BirthDate),
		string(profile.StudentType),
		profile.InsuranceStatus,
		profile.LivingStatus,
		nullDate(profile.TermsAcceptedAt),
	)
	return err
}

func (s *Store) DeleteUser(ctx context.Context, userID wall.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, string(userID))
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return wall.ErrNotFound
	}
	return nil
}

// =============================================================================
// INCOME ENTRIES
// =============================================================================

func (s *Store) ListIncomes(ctx context.Context, userID wall.UserID) ([]wall.IncomeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, employer_id, date, amount, hours
		FROM income_entries WHERE user_id = ? ORDER BY date, id`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []wall.IncomeEntry
	for rows.Next() {
		var (
			e          wall.IncomeEntry
			uid, date  string
			employerID sql.NullString
			amount     string
		)
		if err := rows.Scan(&e.ID, &uid, &employerID, &date, &amount, &e.Hours); err != nil {
			return nil, err
		}
		e.UserID = wall.UserID(uid)
		e.EmployerID = employerID.String
		d, err := wall.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("corrupt income date %q: %w", date, err)
		}
		e.Date = d
		e.Amount = wall.MustParseYen(amount)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) AddIncome(ctx context.Context, entry wall.IncomeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO income_entries (id, user_id, employer_id, date, amount, hours)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, string(entry.UserID), nullString(entry.EmployerID),
		entry.Date.String(), entry.Amount.String(), entry.Hours)
	return insertErr(err)
}

func (s *Store) UpdateIncome(ctx context.Context, entry wall.IncomeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE income_entries SET employer_id = ?, date = ?, amount = ?, hours = ?
		WHERE id = ? AND user_id = ?`,
		nullString(entry.EmployerID), entry.Date.String(), entry.Amount.String(),
		entry.Hours, entry.ID, string(entry.UserID))
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (s *Store) DeleteIncome(ctx context.Context, userID wall.UserID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM income_entries WHERE id = ? AND user_id = ?`, id, string(userID))
	if err != nil {
		return err
	}
	return requireRow(res)
}

// =============================================================================
// SHIFTS
// =============================================================================

func (s *Store) ListShifts(ctx context.Context, userID wall.UserID) ([]wall.ShiftEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, employer_id, date, hours, hourly_wage
		FROM shifts WHERE user_id = ? ORDER BY date, id`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []wall.ShiftEntry
	for rows.Next() {
		var (
			e          wall.ShiftEntry
			uid, date  string
			employerID sql.NullString
			wage       sql.NullString
		)
		if err := rows.Scan(&e.ID, &uid, &employerID, &date, &e.Hours, &wage); err != nil {
			return nil, err
		}
		e.UserID = wall.UserID(uid)
		e.EmployerID = employerID.String
		d, err := wall.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("corrupt shift date %q: %w", date, err)
		}
		e.Date = d
		if wage.Valid {
			w := wall.MustParseYen(wage.String)
			e.HourlyWage = &w
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) AddShift(ctx context.Context, entry wall.ShiftEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var wage any
	if entry.HourlyWage != nil {
		wage = entry.HourlyWage.String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO shifts (id, user_id, employer_id, date, hours, hourly_wage)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, string(entry.UserID), nullString(entry.EmployerID),
		entry.Date.String(), entry.Hours, wage)
	return insertErr(err)
}

func (s *Store) DeleteShift(ctx context.Context, userID wall.UserID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM shifts WHERE id = ? AND user_id = ?`, id, string(userID))
	if err != nil {
		return err
	}
	return requireRow(res)
}

// =============================================================================
// WORK SCHEDULES
// =============================================================================

func (s *Store) ListSchedules(ctx context.Context, userID wall.UserID) ([]wall.WorkSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, employer_id, hours, hourly_wage, frequency, start_date, end_date
		FROM work_schedules WHERE user_id = ? ORDER BY start_date, id`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []wall.WorkSchedule
	for rows.Next() {
		var (
			sc              wall.WorkSchedule
			uid, start      string
			employerID, end sql.NullString
			wage, freq      string
		)
		if err := rows.Scan(&sc.ID, &uid, &employerID, &sc.Hours, &wage, &freq, &start, &end); err != nil {
			return nil, err
		}
		sc.UserID = wall.UserID(uid)
		sc.EmployerID = employerID.String
		sc.HourlyWage = wall.MustParseYen(wage)
		sc.Frequency = wall.Frequency(freq)
		d, err := wall.ParseDate(start)
		if err != nil {
			return nil, fmt.Errorf("corrupt schedule start %q: %w", start, err)
		}
		sc.StartDate = d
		if e, ok := parseNullDate(end); ok {
			sc.EndDate = e
		}
		schedules = append(schedules, sc)
	}
	return schedules, rows.Err()
}

func (s *Store) AddSchedule(ctx context.Context, schedule wall.WorkSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO work_schedules (id, user_id, employer_id, hours, hourly_wage, frequency, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		schedule.ID, string(schedule.UserID), nullString(schedule.EmployerID),
		schedule.Hours, schedule.HourlyWage.String(), string(schedule.Frequency),
		schedule.StartDate.String(), nullDate(schedule.EndDate))
	return insertErr(err)
}

func (s *Store) DeleteSchedule(ctx context.Context, userID wall.UserID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM work_schedules WHERE id = ? AND user_id = ?`, id, string(userID))
	if err != nil {
		return err
	}
	return requireRow(res)
}

// =============================================================================
// EMPLOYERS
// =============================================================================

func (s *Store) ListEmployers(ctx context.Context, userID wall.UserID) ([]wall.Employer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listEmployersLocked(ctx, userID)
}

func (s *Store) listEmployersLocked(ctx context.Context, userID wall.UserID) ([]wall.Employer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, weekly_hours, monthly_income, commute_allowance, annual_bonus, size_category
		FROM employers WHERE user_id = ? ORDER BY rowid`, string(userID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employers []wall.Employer
	for rows.Next() {
		var (
			e                      wall.Employer
			uid                    string
			income, commute, bonus string
			size                   sql.NullString
		)
		if err := rows.Scan(&e.ID, &uid, &e.Name, &e.WeeklyHours, &income, &commute, &bonus, &size); err != nil {
			return nil, err
		}
		e.UserID = wall.UserID(uid)
		e.MonthlyIncome = wall.MustParseYen(income)
		e.CommuteAllowance = wall.MustParseYen(commute)
		e.AnnualBonus = wall.MustParseYen(bonus)
		e.SizeCategory = size.String
		employers = append(employers, e)
	}
	return employers, rows.Err()
}

func (s *Store) AddEmployer(ctx context.Context, employer wall.Employer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employers (id, user_id, name, weekly_hours, monthly_income, commute_allowance, annual_bonus, size_category)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		employer.ID, string(employer.UserID), employer.Name, employer.WeeklyHours,
		employer.MonthlyIncome.String(), employer.CommuteAllowance.String(),
		employer.AnnualBonus.String(), nullString(employer.SizeCategory))
	return insertErr(err)
}

func (s *Store) DeleteEmployer(ctx context.Context, userID wall.UserID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM employers WHERE id = ? AND user_id = ?`, id, string(userID))
	if err != nil {
		return err
	}
	return requireRow(res)
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullDate(d *wall.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func parseNullDate(ns sql.NullString) (*wall.Date, bool) {
	if !ns.Valid || ns.String == "" {
		return nil, false
	}
	d, err := wall.ParseDate(ns.String)
	if err != nil {
		return nil, false
	}
	return &d, true
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return wall.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// A failed user_id foreign key means the referenced profile doesn't exist.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// insertErr maps constraint violations onto the store's sentinel errors.
func insertErr(err error) error {
	switch {
	case isUniqueViolation(err):
		return wall.ErrDuplicateID
	case isForeignKeyViolation(err):
		return wall.ErrNotFound
	default:
		return err
	}
}
