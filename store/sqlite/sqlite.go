/*
Package sqlite provides the SQLite-backed persistence for the planning data.

PURPOSE:
  Stores the six entity families the engine consumes (collaborators,
  clients/projects/members, tasks, timesheet entries, absences, holidays)
  and assembles the read-only snapshot the engine receives per invocation.
  The engine itself never writes; all mutation happens here, driven by the
  CRUD handlers.

KEY TABLES:
  clients, collaborators:   administration records
  projects, project_members: tier classification inputs and membership links
  tasks:                     estimates, date windows, statuses
  timesheet_entries:         hours already worked
  absences, holidays:        calendar exclusions

DATE AND HOUR ENCODING:
  Calendar days are stored as YYYY-MM-DD text. Hour quantities are stored
  as decimal text and parsed back with shopspring/decimal, so nothing is
  lost to float rounding across a round trip.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. With PostgreSQL the database-level
  concurrency control would handle this instead.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/planning.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  snap, err := store.LoadSnapshot(ctx)
  report, err := engine.MonthlyAvailability(collab, month, snap)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - capacity/types.go: the snapshot shapes persisted here
  - api/handlers.go: the CRUD surface driving this store
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/capacity-engine/capacity"
	"github.com/warp/capacity-engine/schedule"
)

// Store persists the planning entities using SQLite.
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
	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS collaborators (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		daily_available_hours TEXT NOT NULL DEFAULT '8',
		monthly_available_hours TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		client_id TEXT,
		name TEXT NOT NULL,
		start_date TEXT,
		estimated_delivery TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_projects_client
		ON projects(client_id);

	CREATE TABLE IF NOT EXISTS project_members (
		project_id TEXT NOT NULL,
		collaborator_id TEXT NOT NULL,
		role TEXT,
		created_at TEXT NOT NULL,
		PRIMARY KEY (project_id, collaborator_id)
	);

	CREATE INDEX IF NOT EXISTS idx_members_collaborator
		ON project_members(collaborator_id);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		assignee_id TEXT,
		collaborators_json TEXT,
		estimated_hours TEXT NOT NULL DEFAULT '0',
		scheduled_start TEXT,
		actual_start TEXT,
		estimated_delivery TEXT,
		actual_delivery TEXT,
		status TEXT NOT NULL DEFAULT 'backlog',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_project
		ON tasks(project_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_assignee
		ON tasks(assignee_id);
	CREATE INDEX IF NOT EXISTS idx_tasks_status
		ON tasks(status);

	CREATE TABLE IF NOT EXISTS timesheet_entries (
		id TEXT PRIMARY KEY,
		collaborator_id TEXT NOT NULL,
		task_id TEXT,
		project_id TEXT,
		entry_date TEXT NOT NULL,
		total_hours TEXT NOT NULL DEFAULT '0',
		created_at TEXT NOT NULL
	);

	-- Hot path: logged-hours sums per collaborator/task
	CREATE INDEX IF NOT EXISTS idx_entries_collaborator_task
		ON timesheet_entries(collaborator_id, task_id, entry_date);

	CREATE TABLE IF NOT EXISTS absences (
		id TEXT PRIMARY KEY,
		collaborator_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		part TEXT NOT NULL DEFAULT 'whole',
		end_time TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_absences_collaborator
		ON absences(collaborator_id, start_date);

	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'national',
		date TEXT NOT NULL,
		end_date TEXT,
		part TEXT NOT NULL DEFAULT 'whole',
		end_time TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_holidays_date
		ON holidays(date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ENCODING HELPERS
// =============================================================================

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func encodeDate(d *schedule.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func decodeDate(s sql.NullString) *schedule.Date {
	if !s.Valid || s.String == "" {
		return nil
	}
	d, err := schedule.ParseDate(s.String)
	if err != nil {
		return nil
	}
	return &d
}

func mustDate(s string) schedule.Date {
	d, _ := schedule.ParseDate(s)
	return d
}

func encodeHours(h capacity.Hours) string { return h.Value.String() }

func decodeHours(s string) capacity.Hours {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return capacity.ZeroHours()
	}
	return capacity.HoursFromDecimal(d)
}

// =============================================================================
// CLIENTS
// =============================================================================

// Client is an administration record; the engine never reads it.
type Client struct {
	ID    string
	Name  string
	Email string
}

func (s *Store) SaveClient(ctx context.Context, c Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO clients (id, name, email, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email
	`
	_, err := s.db.ExecContext(ctx, query, c.ID, c.Name, c.Email, now())
	return err
}

func (s *Store) ListClients(ctx context.Context) ([]Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email FROM clients ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		var email sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &email); err != nil {
			return nil, err
		}
		c.Email = email.String
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	return err
}

// =============================================================================
// COLLABORATORS
// =============================================================================

func (s *Store) SaveCollaborator(ctx context.Context, c capacity.Collaborator) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO collaborators (id, name, email, daily_available_hours, monthly_available_hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			daily_available_hours = excluded.daily_available_hours,
			monthly_available_hours = excluded.monthly_available_hours
	`
	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Email,
		encodeHours(c.DailyAvailableHours), encodeHours(c.MonthlyAvailableHours),
		now(),
	)
	return err
}

func (s *Store) GetCollaborator(ctx context.Context, id string) (*capacity.Collaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c capacity.Collaborator
	var email sql.NullString
	var daily, monthly string

	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, daily_available_hours, monthly_available_hours FROM collaborators WHERE id = ?",
		id,
	).Scan(&c.ID, &c.Name, &email, &daily, &monthly)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	c.Email = email.String
	c.DailyAvailableHours = decodeHours(daily)
	c.MonthlyAvailableHours = decodeHours(monthly)
	return &c, nil
}

func (s *Store) ListCollaborators(ctx context.Context) ([]capacity.Collaborator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, daily_available_hours, monthly_available_hours FROM collaborators ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []capacity.Collaborator
	for rows.Next() {
		var c capacity.Collaborator
		var email sql.NullString
		var daily, monthly string
		if err := rows.Scan(&c.ID, &c.Name, &email, &daily, &monthly); err != nil {
			return nil, err
		}
		c.Email = email.String
		c.DailyAvailableHours = decodeHours(daily)
		c.MonthlyAvailableHours = decodeHours(monthly)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) DeleteCollaborator(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM collaborators WHERE id = ?", id)
	return err
}

// =============================================================================
// PROJECTS AND MEMBERSHIP
// =============================================================================

func (s *Store) SaveProject(ctx context.Context, p capacity.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO projects (id, client_id, name, start_date, estimated_delivery, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			client_id = excluded.client_id,
			name = excluded.name,
			start_date = excluded.start_date,
			estimated_delivery = excluded.estimated_delivery
	`
	_, err := s.db.ExecContext(ctx, query,
		p.ID, p.ClientID, p.Name,
		encodeDate(p.StartDate), encodeDate(p.EstimatedDelivery),
		now(),
	)
	return err
}

func (s *Store) GetProject(ctx context.Context, id string) (*capacity.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p capacity.Project
	var clientID sql.NullString
	var start, delivery sql.NullString

	err := s.db.QueryRowContext(ctx,
		"SELECT id, client_id, name, start_date, estimated_delivery FROM projects WHERE id = ?",
		id,
	).Scan(&p.ID, &clientID, &p.Name, &start, &delivery)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.ClientID = clientID.String
	p.StartDate = decodeDate(start)
	p.EstimatedDelivery = decodeDate(delivery)
	return &p, nil
}

func (s *Store) ListProjects(ctx context.Context) ([]capacity.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, client_id, name, start_date, estimated_delivery FROM projects ORDER BY name",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []capacity.Project
	for rows.Next() {
		var p capacity.Project
		var clientID, start, delivery sql.NullString
		if err := rows.Scan(&p.ID, &clientID, &p.Name, &start, &delivery); err != nil {
			return nil, err
		}
		p.ClientID = clientID.String
		p.StartDate = decodeDate(start)
		p.EstimatedDelivery = decodeDate(delivery)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	return err
}

func (s *Store) SaveProjectMember(ctx context.Context, m capacity.ProjectMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO project_members (project_id, collaborator_id, role, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(project_id, collaborator_id) DO UPDATE SET
			role = excluded.role
	`
	_, err := s.db.ExecContext(ctx, query, m.ProjectID, m.CollaboratorID, m.Role, now())
	return err
}

func (s *Store) ListProjectMembers(ctx context.Context) ([]capacity.ProjectMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT project_id, collaborator_id, role FROM project_members",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []capacity.ProjectMember
	for rows.Next() {
		var m capacity.ProjectMember
		var role sql.NullString
		if err := rows.Scan(&m.ProjectID, &m.CollaboratorID, &role); err != nil {
			return nil, err
		}
		m.Role = role.String
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) DeleteProjectMember(ctx context.Context, projectID, collaboratorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM project_members WHERE project_id = ? AND collaborator_id = ?",
		projectID, collaboratorID,
	)
	return err
}

// =============================================================================
// TASKS
// =============================================================================

func (s *Store) SaveTask(ctx context.Context, t capacity.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	collabJSON, err := json.Marshal(t.Collaborators)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, project_id, name, assignee_id, collaborators_json,
			estimated_hours, scheduled_start, actual_start, estimated_delivery,
			actual_delivery, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			name = excluded.name,
			assignee_id = excluded.assignee_id,
			collaborators_json = excluded.collaborators_json,
			estimated_hours = excluded.estimated_hours,
			scheduled_start = excluded.scheduled_start,
			actual_start = excluded.actual_start,
			estimated_delivery = excluded.estimated_delivery,
			actual_delivery = excluded.actual_delivery,
			status = excluded.status
	`
	_, err = s.db.ExecContext(ctx, query,
		t.ID, t.ProjectID, t.Name, t.AssigneeID, string(collabJSON),
		encodeHours(t.EstimatedHours),
		encodeDate(t.ScheduledStart), encodeDate(t.ActualStart),
		encodeDate(t.EstimatedDelivery), encodeDate(t.ActualDelivery),
		string(t.Status), now(),
	)
	return err
}

func (s *Store) GetTask(ctx context.Context, id string) (*capacity.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, err := s.queryTasks(ctx, "WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

func (s *Store) ListTasks(ctx context.Context) ([]capacity.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryTasks(ctx, "ORDER BY created_at")
}

func (s *Store) queryTasks(ctx context.Context, clause string, args ...any) ([]capacity.Task, error) {
	query := `
		SELECT id, project_id, name, assignee_id, collaborators_json,
			estimated_hours, scheduled_start, actual_start, estimated_delivery,
			actual_delivery, status
		FROM tasks ` + clause

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []capacity.Task
	for rows.Next() {
		var t capacity.Task
		var assignee, collabJSON sql.NullString
		var estimated, status string
		var schedStart, actStart, estDelivery, actDelivery sql.NullString

		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Name, &assignee, &collabJSON,
			&estimated, &schedStart, &actStart, &estDelivery, &actDelivery, &status,
		); err != nil {
			return nil, err
		}

		t.AssigneeID = assignee.String
		if collabJSON.Valid && collabJSON.String != "" {
			json.Unmarshal([]byte(collabJSON.String), &t.Collaborators)
		}
		t.EstimatedHours = decodeHours(estimated)
		t.ScheduledStart = decodeDate(schedStart)
		t.ActualStart = decodeDate(actStart)
		t.EstimatedDelivery = decodeDate(estDelivery)
		t.ActualDelivery = decodeDate(actDelivery)
		t.Status = capacity.TaskStatus(status)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	return err
}

// =============================================================================
// TIMESHEET ENTRIES
// =============================================================================

func (s *Store) SaveTimesheetEntry(ctx context.Context, e capacity.TimesheetEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO timesheet_entries (id, collaborator_id, task_id, project_id, entry_date, total_hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			collaborator_id = excluded.collaborator_id,
			task_id = excluded.task_id,
			project_id = excluded.project_id,
			entry_date = excluded.entry_date,
			total_hours = excluded.total_hours
	`
	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.CollaboratorID, e.TaskID, e.ProjectID,
		e.Date.String(), encodeHours(e.TotalHours), now(),
	)
	return err
}

func (s *Store) ListTimesheetEntries(ctx context.Context) ([]capacity.TimesheetEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, collaborator_id, task_id, project_id, entry_date, total_hours FROM timesheet_entries ORDER BY entry_date",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []capacity.TimesheetEntry
	for rows.Next() {
		var e capacity.TimesheetEntry
		var taskID, projectID sql.NullString
		var date, hours string
		if err := rows.Scan(&e.ID, &e.CollaboratorID, &taskID, &projectID, &date, &hours); err != nil {
			return nil, err
		}
		e.TaskID = taskID.String
		e.ProjectID = projectID.String
		e.Date = mustDate(date)
		e.TotalHours = decodeHours(hours)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) DeleteTimesheetEntry(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM timesheet_entries WHERE id = ?", id)
	return err
}

// =============================================================================
// ABSENCES
// =============================================================================

func (s *Store) SaveAbsence(ctx context.Context, a schedule.Absence) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	part := a.Part
	if part == "" {
		part = schedule.PartWhole
	}

	query := `
		INSERT INTO absences (id, collaborator_id, start_date, end_date, part, end_time, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			collaborator_id = excluded.collaborator_id,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			part = excluded.part,
			end_time = excluded.end_time,
			status = excluded.status
	`
	_, err := s.db.ExecContext(ctx, query,
		a.ID, a.CollaboratorID,
		a.StartDate.String(), a.EndDate.String(),
		string(part), a.EndTime, string(a.Status), now(),
	)
	return err
}

func (s *Store) ListAbsences(ctx context.Context) ([]schedule.Absence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, collaborator_id, start_date, end_date, part, end_time, status FROM absences ORDER BY start_date",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Absence
	for rows.Next() {
		var a schedule.Absence
		var start, end, part, status string
		var endTime sql.NullString
		if err := rows.Scan(&a.ID, &a.CollaboratorID, &start, &end, &part, &endTime, &status); err != nil {
			return nil, err
		}
		a.StartDate = mustDate(start)
		a.EndDate = mustDate(end)
		a.Part = schedule.DayPart(part)
		a.EndTime = endTime.String
		a.Status = schedule.AbsenceStatus(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) DeleteAbsence(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM absences WHERE id = ?", id)
	return err
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) SaveHoliday(ctx context.Context, h schedule.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	part := h.Part
	if part == "" {
		part = schedule.PartWhole
	}
	htype := h.Type
	if htype == "" {
		htype = schedule.HolidayNational
	}

	query := `
		INSERT INTO holidays (id, name, type, date, end_date, part, end_time, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			type = excluded.type,
			date = excluded.date,
			end_date = excluded.end_date,
			part = excluded.part,
			end_time = excluded.end_time
	`
	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.Name, string(htype),
		h.Date.String(), encodeDate(h.EndDate),
		string(part), h.EndTime, now(),
	)
	return err
}

func (s *Store) ListHolidays(ctx context.Context) ([]schedule.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, type, date, end_date, part, end_time FROM holidays ORDER BY date",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []schedule.Holiday
	for rows.Next() {
		var h schedule.Holiday
		var htype, date, part string
		var endDate, endTime sql.NullString
		if err := rows.Scan(&h.ID, &h.Name, &htype, &date, &endDate, &part, &endTime); err != nil {
			return nil, err
		}
		h.Type = schedule.HolidayType(htype)
		h.Date = mustDate(date)
		h.EndDate = decodeDate(endDate)
		h.Part = schedule.DayPart(part)
		h.EndTime = endTime.String
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	return err
}

// =============================================================================
// SNAPSHOT ASSEMBLY
// =============================================================================

// LoadSnapshot assembles the read-only input bundle the engine consumes.
// A single call yields a consistent view for the dependent engine calls
// that follow.
func (s *Store) LoadSnapshot(ctx context.Context) (capacity.Snapshot, error) {
	var snap capacity.Snapshot
	var err error

	if snap.Projects, err = s.ListProjects(ctx); err != nil {
		return capacity.Snapshot{}, err
	}
	if snap.ProjectMembers, err = s.ListProjectMembers(ctx); err != nil {
		return capacity.Snapshot{}, err
	}
	if snap.Tasks, err = s.ListTasks(ctx); err != nil {
		return capacity.Snapshot{}, err
	}
	if snap.Entries, err = s.ListTimesheetEntries(ctx); err != nil {
		return capacity.Snapshot{}, err
	}
	if snap.Holidays, err = s.ListHolidays(ctx); err != nil {
		return capacity.Snapshot{}, err
	}
	if snap.Absences, err = s.ListAbsences(ctx); err != nil {
		return capacity.Snapshot{}, err
	}
	return snap, nil
}

// Reset clears all data. Only used by dev/demo scenario loading.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{
		"clients", "collaborators", "projects", "project_members",
		"tasks", "timesheet_entries", "absences", "holidays",
	}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
