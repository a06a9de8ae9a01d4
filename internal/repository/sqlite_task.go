package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mstolbov/crewboard/internal/domain"
)

// taskColumns is the canonical SELECT column list for tasks.
const taskColumns = `id, title, description, status, priority, due_at, completed_at,
		creator_id, assignee_ids, project_id, steps, deliverables, files,
		created_at, updated_at`

// ErrNotFound is returned when a task id does not exist.
var ErrNotFound = errors.New("task not found")

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db *sql.DB
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(db *sql.DB) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: db}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	assignees, err := encodeJSON(t.AssigneeIDs)
	if err != nil {
		return err
	}
	steps, err := encodeJSON(t.Steps)
	if err != nil {
		return err
	}
	deliverables, err := encodeJSON(t.Deliverables)
	if err != nil {
		return err
	}
	files, err := encodeJSON(t.Files)
	if err != nil {
		return err
	}

	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		string(t.Status),
		t.Priority,
		nullableTimeToString(t.DueAt),
		nullableTimeToString(t.CompletedAt),
		t.CreatorID,
		assignees,
		nullableString(t.ProjectID),
		steps,
		deliverables,
		files,
		t.CreatedAt.Format(time.RFC3339),
		t.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *SQLiteTaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Patch applies a partial update. The completion timestamp is a derived
// field: entering done stamps it, leaving done clears it.
func (r *SQLiteTaskRepo) Patch(ctx context.Context, id string, p domain.TaskPatch) error {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	updated := p.Apply(*current)
	if p.Status != nil && *p.Status != current.Status {
		if *p.Status == domain.TaskDone {
			now := time.Now().UTC()
			updated.CompletedAt = &now
		} else {
			updated.CompletedAt = nil
		}
	}
	updated.UpdatedAt = time.Now().UTC()

	assignees, err := encodeJSON(updated.AssigneeIDs)
	if err != nil {
		return err
	}

	query := `UPDATE tasks SET
		title = ?, description = ?, status = ?, priority = ?,
		due_at = ?, completed_at = ?, assignee_ids = ?, project_id = ?,
		updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		updated.Title,
		updated.Description,
		string(updated.Status),
		updated.Priority,
		nullableTimeToString(updated.DueAt),
		nullableTimeToString(updated.CompletedAt),
		assignees,
		nullableString(updated.ProjectID),
		updated.UpdatedAt.Format(time.RFC3339),
		id,
	)
	if err != nil {
		return fmt.Errorf("patching task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var status string
	var dueAt, completedAt, projectID sql.NullString
	var assignees, steps, deliverables, files string
	var createdAt, updatedAt string

	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&status,
		&t.Priority,
		&dueAt,
		&completedAt,
		&t.CreatorID,
		&assignees,
		&projectID,
		&steps,
		&deliverables,
		&files,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	t.Status = domain.TaskStatus(status)
	t.DueAt = parseNullableTime(dueAt)
	t.CompletedAt = parseNullableTime(completedAt)
	if projectID.Valid {
		t.ProjectID = projectID.String
	}
	if err := decodeJSON(assignees, &t.AssigneeIDs); err != nil {
		return nil, err
	}
	if err := decodeJSON(steps, &t.Steps); err != nil {
		return nil, err
	}
	if err := decodeJSON(deliverables, &t.Deliverables); err != nil {
		return nil, err
	}
	if err := decodeJSON(files, &t.Files); err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
		t.CreatedAt = ts
	}
	if ts, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		t.UpdatedAt = ts
	}
	return &t, nil
}

// nullableString stores "" as SQL NULL.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
