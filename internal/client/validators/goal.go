package validators

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
)

// MaxDescriptionLength is counted in characters, not bytes.
const MaxDescriptionLength = 500

const (
	MsgTitleRequired      = "Goal title is required."
	MsgDescriptionTooLong = "Goal description must be 500 characters or less."
	MsgTargetNotPositive  = "Goal target value must be a positive number."
	MsgUnitRequired       = "Goal unit is required."
	MsgInvalidDueDate     = "Invalid goal due date."
	MsgEmptyUpdate        = "Goal update must change at least one field."
	MsgGoalIDRequired     = "Goal ID is required."
	MsgProgressNegative   = "Goal progress value must be a non-negative number."
	MsgProgressGoalID     = "Goal progress must reference the goal it is submitted for."
)

// ValidateGoal checks a full create payload.
func ValidateGoal(goal models.GoalInput) error {
	if err := validateTitle(goal.Title); err != nil {
		return err
	}
	if err := validateDescription(goal.Description); err != nil {
		return err
	}
	if err := validateTarget(goal.TargetValue); err != nil {
		return err
	}
	if err := validateUnit(goal.Unit); err != nil {
		return err
	}
	return validateDueDate(goal.DueDate)
}

// ValidateGoalUpdate checks only the fields present in a partial update.
func ValidateGoalUpdate(update models.GoalUpdate) error {
	if update.IsEmpty() {
		return common.NewValidationError("update", MsgEmptyUpdate)
	}
	if update.Title != nil {
		if err := validateTitle(*update.Title); err != nil {
			return err
		}
	}
	if update.Description != nil {
		if err := validateDescription(*update.Description); err != nil {
			return err
		}
	}
	if update.TargetValue != nil {
		if err := validateTarget(*update.TargetValue); err != nil {
			return err
		}
	}
	if update.Unit != nil {
		if err := validateUnit(*update.Unit); err != nil {
			return err
		}
	}
	if update.DueDate != nil {
		if err := validateDueDate(*update.DueDate); err != nil {
			return err
		}
	}
	return nil
}

// ValidateGoalProgress checks a progress payload.
func ValidateGoalProgress(progress models.ProgressInput) error {
	if strings.TrimSpace(progress.GoalID) == "" {
		return common.NewValidationError("goalId", MsgGoalIDRequired)
	}
	if math.IsNaN(progress.Value) || math.IsInf(progress.Value, 0) || progress.Value < 0 {
		return common.NewValidationError("value", MsgProgressNegative)
	}
	return nil
}

// ValidateProgressFor additionally requires progress to reference goalID.
func ValidateProgressFor(goalID string, progress models.ProgressInput) error {
	if strings.TrimSpace(goalID) == "" {
		return common.NewValidationError("id", MsgGoalIDRequired)
	}
	if err := ValidateGoalProgress(progress); err != nil {
		return err
	}
	if progress.GoalID != goalID {
		return common.NewValidationError("goalId", MsgProgressGoalID)
	}
	return nil
}

// ValidateGoalID rejects blank ids before they are spliced into a path.
func ValidateGoalID(id string) error {
	if strings.TrimSpace(id) == "" {
		return common.NewValidationError("id", MsgGoalIDRequired)
	}
	return nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return common.NewValidationError("title", MsgTitleRequired)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return common.NewValidationError("description", MsgDescriptionTooLong)
	}
	return nil
}

func validateTarget(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return common.NewValidationError("targetValue", MsgTargetNotPositive)
	}
	return nil
}

func validateUnit(unit string) error {
	if strings.TrimSpace(unit) == "" {
		return common.NewValidationError("unit", MsgUnitRequired)
	}
	return nil
}

func validateDueDate(d time.Time) error {
	if d.IsZero() {
		return common.NewValidationError("dueDate", MsgInvalidDueDate)
	}
	return nil
}
