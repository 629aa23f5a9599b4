package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/validators"
	"github.com/dmitrijs2005/fittrack/internal/common"
)

var errUsage = errors.New("usage error")

// ListGoals prints the local goal collection.
func (a *App) ListGoals(ctx context.Context) error {
	goals := a.goals.State().Goals
	if len(goals) == 0 {
		fmt.Fprintln(a.out, "No goals yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTARGET\tDUE\tDONE")
	for _, g := range goals {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\n",
			g.ID, g.Title, formatNumber(g.TargetValue), g.Unit,
			models.FormatDate(g.DueDate, ""), yesNo(g.IsCompleted))
	}
	return tw.Flush()
}

func (a *App) AddGoal(ctx context.Context) error {
	var in models.GoalInput
	var err error

	if in.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	if in.Description, err = getSimpleText(a.reader, "Description (optional)", a.out); err != nil {
		return err
	}
	raw, err := getSimpleText(a.reader, "Target value", a.out)
	if err != nil {
		return err
	}
	if in.TargetValue, err = parseNumber(raw, "targetValue", validators.MsgTargetNotPositive); err != nil {
		return err
	}
	if in.Unit, err = getSimpleText(a.reader, "Unit (e.g. km)", a.out); err != nil {
		return err
	}
	raw, err = getSimpleText(a.reader, "Due date ("+models.DefaultDateLayout+")", a.out)
	if err != nil {
		return err
	}
	if in.DueDate, err = parseDate(raw); err != nil {
		return err
	}

	g, err := a.goals.CreateGoal(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created goal %s\n", g.ID)
	return nil
}

// EditGoal prompts for each field of a known goal; an empty answer keeps the
// current value and only changed fields are sent.
func (a *App) EditGoal(ctx context.Context, args []string) error {
	id, err := goalArg(args, "editgoal <id>")
	if err != nil {
		return err
	}
	cur, ok := a.findGoal(id)
	if !ok {
		return fmt.Errorf("goal %s not found, run 'goals' to refresh", id)
	}

	var upd models.GoalUpdate

	if v, changed, err := GetTextWithDefault(a.reader, "Title", cur.Title, a.out); err != nil {
		return err
	} else if changed {
		upd.Title = &v
	}
	if v, changed, err := GetTextWithDefault(a.reader, "Description", cur.Description, a.out); err != nil {
		return err
	} else if changed {
		upd.Description = &v
	}
	if v, changed, err := GetTextWithDefault(a.reader, "Target value", formatNumber(cur.TargetValue), a.out); err != nil {
		return err
	} else if changed {
		n, err := parseNumber(v, "targetValue", validators.MsgTargetNotPositive)
		if err != nil {
			return err
		}
		upd.TargetValue = &n
	}
	if v, changed, err := GetTextWithDefault(a.reader, "Unit", cur.Unit, a.out); err != nil {
		return err
	} else if changed {
		upd.Unit = &v
	}
	if v, changed, err := GetTextWithDefault(a.reader, "Due date", models.FormatDate(cur.DueDate, ""), a.out); err != nil {
		return err
	} else if changed {
		d, err := parseDate(v)
		if err != nil {
			return err
		}
		upd.DueDate = &d
	}
	if v, changed, err := GetTextWithDefault(a.reader, "Completed (y/n)", yesNo(cur.IsCompleted), a.out); err != nil {
		return err
	} else if changed {
		done := strings.HasPrefix(strings.ToLower(v), "y")
		upd.IsCompleted = &done
	}

	if upd.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing changed")
		return nil
	}
	if _, err := a.goals.UpdateGoal(ctx, id, upd); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Goal updated")
	return nil
}

func (a *App) DeleteGoal(ctx context.Context, args []string) error {
	id, err := goalArg(args, "delgoal <id>")
	if err != nil {
		return err
	}
	if err := a.goals.DeleteGoal(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Goal deleted")
	return nil
}

// TrackProgress handles "progress <id> <value>".
func (a *App) TrackProgress(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: progress <id> <value>", errUsage)
	}
	value, err := parseNumber(args[1], "value", validators.MsgProgressNegative)
	if err != nil {
		return err
	}

	g, err := a.goals.TrackProgress(ctx, args[0], models.ProgressInput{GoalID: args[0], Value: value})
	if err != nil {
		return err
	}
	if g.IsCompleted {
		fmt.Fprintf(a.out, "Goal %q completed!\n", g.Title)
	} else {
		fmt.Fprintln(a.out, "Progress recorded")
	}
	return nil
}

func (a *App) ShareGoal(ctx context.Context, args []string) error {
	id, err := goalArg(args, "share <id>")
	if err != nil {
		return err
	}
	if err := a.goals.ShareGoal(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Goal shared")
	return nil
}

func (a *App) Summary(ctx context.Context) error {
	s := a.goals.Summary()
	fmt.Fprintf(a.out, "%d of %d goals completed\n", s.Completed, s.Total)
	return nil
}

// RefreshGoals re-fetches the collection and prints it.
func (a *App) RefreshGoals(ctx context.Context) error {
	if err := a.goals.Refresh(ctx); err != nil {
		return err
	}
	return a.ListGoals(ctx)
}

func (a *App) findGoal(id string) (models.Goal, bool) {
	for _, g := range a.goals.State().Goals {
		if g.ID == id {
			return g, true
		}
	}
	return models.Goal{}, false
}

func goalArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: %s", errUsage, usage)
	}
	return args[0], nil
}

// parseNumber turns a malformed number into the validation error the field
// would get for a bad value.
func parseNumber(raw, field, msg string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, common.NewValidationError(field, msg)
	}
	return n, nil
}

func parseDate(raw string) (time.Time, error) {
	d, err := time.Parse(models.DefaultDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, common.NewValidationError("dueDate", validators.MsgInvalidDueDate)
	}
	return d, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
