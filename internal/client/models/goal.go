package models

import "time"

// Goal is a fitness goal. ID, CreatedAt and UpdatedAt are assigned by the server.
type Goal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetValue float64   `json:"targetValue"`
	Unit        string    `json:"unit"`
	DueDate     time.Time `json:"dueDate"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// GoalInput is the create payload: a Goal minus server-assigned fields.
type GoalInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TargetValue float64   `json:"targetValue"`
	Unit        string    `json:"unit"`
	DueDate     time.Time `json:"dueDate"`
	IsCompleted bool      `json:"isCompleted"`
}

// GoalUpdate is a partial Goal. Nil fields are left untouched by the server.
type GoalUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	TargetValue *float64   `json:"targetValue,omitempty"`
	Unit        *string    `json:"unit,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	IsCompleted *bool      `json:"isCompleted,omitempty"`
}

// IsEmpty reports whether the update carries no field at all.
func (u GoalUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.TargetValue == nil &&
		u.Unit == nil && u.DueDate == nil && u.IsCompleted == nil
}

// GoalProgress is a progress record against a goal. Submitting one yields the
// recomputed Goal; the record itself is not kept client-side.
type GoalProgress struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goalId"`
	Value     float64   `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProgressInput is the progress payload: GoalProgress minus id/createdAt.
type ProgressInput struct {
	GoalID string  `json:"goalId"`
	Value  float64 `json:"value"`
}
