package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mstolbov/crewboard/internal/domain"
)

// SQLiteColleagueRepo implements ColleagueRepo using a SQLite database.
type SQLiteColleagueRepo struct {
	db *sql.DB
}

func NewSQLiteColleagueRepo(db *sql.DB) *SQLiteColleagueRepo {
	return &SQLiteColleagueRepo{db: db}
}

func (r *SQLiteColleagueRepo) Create(ctx context.Context, c *domain.Colleague) error {
	query := `INSERT INTO colleagues (id, name, position, department, team, initials)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Position, c.Department, c.Team, c.Initials)
	if err != nil {
		return fmt.Errorf("inserting colleague: %w", err)
	}
	return nil
}

func (r *SQLiteColleagueRepo) List(ctx context.Context) ([]domain.Colleague, error) {
	query := `SELECT id, name, position, department, team, initials
		FROM colleagues ORDER BY name, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing colleagues: %w", err)
	}
	defer rows.Close()

	var cols []domain.Colleague
	for rows.Next() {
		var c domain.Colleague
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &c.Department, &c.Team, &c.Initials); err != nil {
			return nil, fmt.Errorf("scanning colleague: %w", err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}
