package domain

import "time"

// Project groups tasks for filtering. The board never mutates projects.
type Project struct {
	ID        string
	Title     string
	Client    string
	Status    ProjectStatus
	CreatedAt time.Time
}
