package entity

import "time"

// ProjectStatus and ProjectPriority are closed sets validated at the HTTP layer.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on_hold"
)

type ProjectPriority string

const (
	PriorityLow      ProjectPriority = "low"
	PriorityMedium   ProjectPriority = "medium"
	PriorityHigh     ProjectPriority = "high"
	PriorityCritical ProjectPriority = "critical"
)

// Project is the authorization boundary for notes, tasks and memberships.
// MemberCount is derived from project_members, never written directly.
type Project struct {
	ID          string
	Name        string
	Description string
	CreatedBy   string
	Status      ProjectStatus
	Priority    ProjectPriority
	DueDate     *time.Time
	MemberCount int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
