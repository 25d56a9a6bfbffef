package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Task is a workspace task: a title plus free-form markdown detail text.
type Task struct {
	ID        string
	Title     string
	Details   string
	Done      bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists tasks in a local SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	details    TEXT NOT NULL DEFAULT '',
	done       INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

// List returns all tasks, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, details, done, created_at, updated_at
		 FROM tasks ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Details, &t.Done, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Get returns a single task by ID.
func (s *Store) Get(ctx context.Context, id string) (Task, error) {
	var t Task
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, details, done, created_at, updated_at
		 FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &t.Details, &t.Done, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return Task{}, fmt.Errorf("task %s not found", id)
	}
	if err != nil {
		return Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

// Create inserts a new task and returns it.
func (s *Store) Create(ctx context.Context, title, details string) (Task, error) {
	if title == "" {
		return Task{}, fmt.Errorf("task title cannot be empty")
	}

	now := time.Now().UTC()
	t := Task{
		ID:        newTaskID(),
		Title:     title,
		Details:   details,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, details, done, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Details, t.Done, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	return t, nil
}

// UpdateDetails replaces a task's detail text. This is the persistence hook
// behind the note editor's commits.
func (s *Store) UpdateDetails(ctx context.Context, id, details string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET details = ?, updated_at = ? WHERE id = ?`,
		details, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update task details: %w", err)
	}
	return requireRow(result, id)
}

// SetDone toggles a task's completion state.
func (s *Store) SetDone(ctx context.Context, id string, done bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE tasks SET done = ?, updated_at = ? WHERE id = ?`,
		done, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(result, id)
}

// Delete removes a task.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return requireRow(result, id)
}

func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %s not found", id)
	}
	return nil
}

// newTaskID creates a unique UUIDv7-based task ID.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to a timestamp-based ID if UUID generation fails
		return fmt.Sprintf("task_%d", time.Now().UnixNano())
	}
	return id.String()
}
