package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mstolbov/crewboard/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db *sql.DB
}

func NewSQLiteProjectRepo(db *sql.DB) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: db}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, title, client, status, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Client, string(p.Status), p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context) ([]domain.Project, error) {
	query := `SELECT id, title, client, status, created_at FROM projects ORDER BY title, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		var p domain.Project
		var status, createdAt string
		if err := rows.Scan(&p.ID, &p.Title, &p.Client, &status, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		p.Status = domain.ProjectStatus(status)
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			p.CreatedAt = ts
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
