package entity

import "time"

// Note is a free-form note attached to a project.
type Note struct {
	ID        string
	ProjectID string
	CreatedBy string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
