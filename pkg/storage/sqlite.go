package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/felixgeelhaar/plancraft/pkg/domain/planning"
	"github.com/felixgeelhaar/plancraft/pkg/domain/project"
)

// Fixed-width UTC layout so text timestamps sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	id               TEXT PRIMARY KEY,
	user_id          TEXT NOT NULL,
	name             TEXT NOT NULL,
	description      TEXT NOT NULL,
	client_name      TEXT NOT NULL DEFAULT '',
	project_type     TEXT NOT NULL,
	tech_stack       TEXT NOT NULL DEFAULT '[]',
	experience_level TEXT NOT NULL,
	status           TEXT NOT NULL,
	due_date         TEXT,
	estimated_time   TEXT NOT NULL DEFAULT '',
	ai_breakdown     TEXT NOT NULL DEFAULT '',
	plan_source      TEXT NOT NULL DEFAULT '',
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_user ON projects(user_id, created_at);

CREATE TABLE IF NOT EXISTS tasks (
	id                 TEXT PRIMARY KEY,
	project_id         TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name               TEXT NOT NULL,
	description        TEXT NOT NULL DEFAULT '',
	status             TEXT NOT NULL,
	priority           TEXT NOT NULL,
	assigned_to        TEXT NOT NULL DEFAULT '',
	estimated_duration TEXT NOT NULL DEFAULT '',
	created_at         TEXT NOT NULL,
	updated_at         TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);

CREATE TABLE IF NOT EXISTS resources (
	id          TEXT PRIMARY KEY,
	project_id  TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	title       TEXT NOT NULL,
	url         TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resources_project ON resources(project_id);
`

// SQLiteRepository implements project.Repository on a local SQLite file.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ project.Repository = (*SQLiteRepository)(nil)

// OpenSQLite opens (or creates) the database at path and ensures the schema exists.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	for _, pragma := range []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// Close releases the database handle.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) timestamp() time.Time {
	return r.now().UTC()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func (r *SQLiteRepository) CreateProject(ctx context.Context, p *project.Project) error {
	if !p.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", project.ErrInvalidProject, p.Status)
	}
	techStack, err := json.Marshal(p.TechStack)
	if err != nil {
		return fmt.Errorf("failed to marshal tech stack: %w", err)
	}
	if p.TechStack == nil {
		techStack = []byte("[]")
	}

	var due sql.NullString
	if p.DueDate != nil {
		due = sql.NullString{String: formatTime(*p.DueDate), Valid: true}
	}

	id := uuid.NewString()
	now := r.timestamp()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, name, description, client_name, project_type, tech_stack,
			experience_level, status, due_date, estimated_time, ai_breakdown, plan_source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.UserID, p.Name, p.Description, p.ClientName, p.ProjectType, string(techStack),
		string(p.ExperienceLevel), string(p.Status), due, p.EstimatedTime, p.AIBreakdown, string(p.PlanSource),
		formatTime(now), formatTime(now),
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

const projectColumns = `id, user_id, name, description, client_name, project_type, tech_stack,
	experience_level, status, due_date, estimated_time, ai_breakdown, plan_source, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var (
		p                    project.Project
		techStack            string
		level, status, src   string
		due                  sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.ClientName, &p.ProjectType, &techStack,
		&level, &status, &due, &p.EstimatedTime, &p.AIBreakdown, &src, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(techStack), &p.TechStack); err != nil {
		return nil, fmt.Errorf("failed to decode tech stack of project %s: %w", p.ID, err)
	}
	p.ExperienceLevel = planning.ExperienceLevel(level)
	p.Status = project.Status(status)
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("%w: project %s has unknown status %q", project.ErrInvalidProject, p.ID, status)
	}
	p.PlanSource = project.PlanSource(src)

	if due.Valid {
		d, err := parseTime(due.String)
		if err != nil {
			return nil, err
		}
		p.DueDate = &d
	}
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLiteRepository) GetProject(ctx context.Context, id string) (*project.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", project.ErrProjectNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return p, nil
}

// ListProjects returns the user's projects, newest first.
func (r *SQLiteRepository) ListProjects(ctx context.Context, userID string) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE user_id = ? ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	projects := []project.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

// CreateTasks inserts all tasks in one transaction and fills in their ids and timestamps.
func (r *SQLiteRepository) CreateTasks(ctx context.Context, tasks []project.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, project_id, name, description, status, priority, assigned_to, estimated_duration, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare task insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := r.timestamp()
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = uuid.NewString()
		if _, err := stmt.ExecContext(ctx, ids[i], t.ProjectID, t.Name, t.Description, string(t.Status),
			string(t.Priority), t.AssignedTo, t.EstimatedDuration, formatTime(now), formatTime(now)); err != nil {
			return fmt.Errorf("failed to insert task %q: %w", t.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tasks: %w", err)
	}

	for i := range tasks {
		tasks[i].ID = ids[i]
		tasks[i].CreatedAt = now
		tasks[i].UpdatedAt = now
	}
	return nil
}

const taskColumns = `id, project_id, name, description, status, priority, assigned_to, estimated_duration, created_at, updated_at`

func scanTask(row rowScanner) (*project.Task, error) {
	var (
		t                    project.Task
		status, priority     string
		createdAt, updatedAt string
	)
	err := row.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Description, &status, &priority,
		&t.AssignedTo, &t.EstimatedDuration, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	t.Status = project.TaskStatus(status)
	t.Priority = planning.TaskPriority(priority)
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*project.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", project.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	return t, nil
}

// ListTasks returns a project's tasks in insertion order.
func (r *SQLiteRepository) ListTasks(ctx context.Context, projectID string) ([]project.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tasks := []project.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *SQLiteRepository) UpdateTaskStatus(ctx context.Context, id string, status project.TaskStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(r.timestamp()), id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", project.ErrTaskNotFound, id)
	}
	return nil
}

// CreateResources inserts all resources in one transaction and fills in their ids.
func (r *SQLiteRepository) CreateResources(ctx context.Context, resources []project.Resource) error {
	if len(resources) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := r.timestamp()
	ids := make([]string, len(resources))
	for i, res := range resources {
		ids[i] = uuid.NewString()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO resources (id, project_id, title, url, description, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			ids[i], res.ProjectID, res.Title, res.URL, res.Description, formatTime(now)); err != nil {
			return fmt.Errorf("failed to insert resource %q: %w", res.Title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit resources: %w", err)
	}

	for i := range resources {
		resources[i].ID = ids[i]
		resources[i].CreatedAt = now
	}
	return nil
}

func (r *SQLiteRepository) ListResources(ctx context.Context, projectID string) ([]project.Resource, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, title, url, description, created_at FROM resources WHERE project_id = ? ORDER BY rowid`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query resources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	resources := []project.Resource{}
	for rows.Next() {
		var (
			res       project.Resource
			createdAt string
		)
		if err := rows.Scan(&res.ID, &res.ProjectID, &res.Title, &res.URL, &res.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan resource: %w", err)
		}
		if res.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}
