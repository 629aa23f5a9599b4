package hooks

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/services"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// Goals owns the client-side goal collection. The collection only ever
// changes with data the server returned; a failed action leaves it as it was.
type Goals struct {
	svc      services.GoalService
	logger   logging.Logger
	obs      *observable[models.GoalsState]
	pending  int
	mount    sync.Once
	mountErr error
}

func NewGoals(svc services.GoalService, logger logging.Logger) *Goals {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Goals{
		svc:    svc,
		logger: logger.With("hook", "goals"),
		obs:    newObservable(models.GoalsState{Goals: []models.Goal{}}, models.GoalsState.Clone),
	}
}

// Mount fetches the collection once.
func (g *Goals) Mount(ctx context.Context) error {
	g.mount.Do(func() {
		g.mountErr = g.Refresh(ctx)
	})
	return g.mountErr
}

// Refresh replaces the collection with the server's.
func (g *Goals) Refresh(ctx context.Context) error {
	g.begin()
	goals, err := g.svc.GetGoals(ctx)
	g.end("refresh", err, func(st *models.GoalsState) {
		st.Goals = append([]models.Goal{}, goals...)
	})
	return err
}

// CreateGoal appends the server-confirmed goal.
func (g *Goals) CreateGoal(ctx context.Context, goal models.GoalInput) (*models.Goal, error) {
	g.begin()
	created, err := g.svc.CreateGoal(ctx, goal)
	g.end("create", err, func(st *models.GoalsState) {
		st.Goals = append(st.Goals, *created)
	})
	return created, err
}

func (g *Goals) UpdateGoal(ctx context.Context, id string, updates models.GoalUpdate) (*models.Goal, error) {
	g.begin()
	updated, err := g.svc.UpdateGoal(ctx, id, updates)
	g.end("update", err, func(st *models.GoalsState) {
		replaceGoal(st.Goals, id, *updated)
	})
	return updated, err
}

func (g *Goals) DeleteGoal(ctx context.Context, id string) error {
	g.begin()
	err := g.svc.DeleteGoal(ctx, id)
	g.end("delete", err, func(st *models.GoalsState) {
		st.Goals = removeGoal(st.Goals, id)
	})
	return err
}

// TrackProgress records progress and replaces the goal with the server's
// recomputed version.
func (g *Goals) TrackProgress(ctx context.Context, id string, progress models.ProgressInput) (*models.Goal, error) {
	g.begin()
	updated, err := g.svc.TrackProgress(ctx, id, progress)
	g.end("track progress", err, func(st *models.GoalsState) {
		replaceGoal(st.Goals, id, *updated)
	})
	return updated, err
}

// ShareGoal leaves the collection untouched on success.
func (g *Goals) ShareGoal(ctx context.Context, id string) error {
	g.begin()
	err := g.svc.ShareGoal(ctx, id)
	g.end("share", err, func(*models.GoalsState) {})
	return err
}

// Reset empties the collection without calling the server, e.g. after logout.
func (g *Goals) Reset() {
	g.obs.commit(func(st *models.GoalsState) {
		st.Goals = []models.Goal{}
		st.Error = ""
	})
}

func (g *Goals) State() models.GoalsState {
	return g.obs.get()
}

func (g *Goals) Subscribe(f func(models.GoalsState)) (cancel func()) {
	return g.obs.subscribe(f)
}

// Summary counts the goals in the current collection.
func (g *Goals) Summary() models.GoalsSummary {
	var sum models.GoalsSummary
	g.obs.read(func(st models.GoalsState) {
		sum.Total = len(st.Goals)
		for _, goal := range st.Goals {
			if goal.IsCompleted {
				sum.Completed++
			}
		}
	})
	return sum
}

func (g *Goals) begin() {
	g.obs.commit(func(st *models.GoalsState) {
		g.pending++
		st.Loading = true
		st.Error = ""
	})
}

func (g *Goals) end(action string, err error, onSuccess func(*models.GoalsState)) {
	if err != nil {
		g.logger.Debug(context.Background(), action+" failed", "error", common.Message(err))
	}
	g.obs.commit(func(st *models.GoalsState) {
		g.pending--
		st.Loading = g.pending > 0
		if err != nil {
			st.Error = common.Message(err)
			return
		}
		onSuccess(st)
	})
}

// replaceGoal swaps the entry with the given id in place. A missing id is a
// no-op.
func replaceGoal(goals []models.Goal, id string, goal models.Goal) {
	for i := range goals {
		if goals[i].ID == id {
			goals[i] = goal
			return
		}
	}
}

func removeGoal(goals []models.Goal, id string) []models.Goal {
	out := make([]models.Goal, 0, len(goals))
	for _, goal := range goals {
		if goal.ID != id {
			out = append(out, goal)
		}
	}
	return out
}
