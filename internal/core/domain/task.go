package domain

import "time"

// Priority is the urgency label carried by a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is the core record of the system. Every task is owned by exactly one
// user (UserID) and is visible and mutable only through requests
// authenticated as that user.
type Task struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"userId" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Completed   bool      `json:"completed" bson:"completed"`
	Priority    Priority  `json:"priority" bson:"priority"`
	Category    string    `json:"category" bson:"category"`
	DueDate     string    `json:"dueDate,omitempty" bson:"due_date,omitempty"`
	DueTime     string    `json:"dueTime,omitempty" bson:"due_time,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}
