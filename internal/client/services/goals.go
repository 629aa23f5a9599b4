package services

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/validators"
	"github.com/dmitrijs2005/fittrack/internal/common"
)

const pathGoals = "/api/goals"

// GoalService maps the goals resource family to typed operations. Create,
// update and progress payloads are validated before any request is sent.
type GoalService interface {
	GetGoals(ctx context.Context) ([]models.Goal, error)
	CreateGoal(ctx context.Context, goal models.GoalInput) (*models.Goal, error)
	UpdateGoal(ctx context.Context, id string, updates models.GoalUpdate) (*models.Goal, error)
	DeleteGoal(ctx context.Context, id string) error
	// TrackProgress returns the goal as recomputed by the server.
	TrackProgress(ctx context.Context, id string, progress models.ProgressInput) (*models.Goal, error)
	ShareGoal(ctx context.Context, id string) error
}

type goalService struct {
	client client.Client
}

func NewGoalService(c client.Client) GoalService {
	return &goalService{client: c}
}

func goalPath(id string, suffix ...string) string {
	p := pathGoals + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func (s *goalService) GetGoals(ctx context.Context) ([]models.Goal, error) {
	var goals []models.Goal
	if err := s.client.Get(ctx, pathGoals, nil, &goals); err != nil {
		return nil, normalize(err, common.MsgUnexpectedGoals)
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	return goals, nil
}

func (s *goalService) CreateGoal(ctx context.Context, goal models.GoalInput) (*models.Goal, error) {
	if err := validators.ValidateGoal(goal); err != nil {
		return nil, err
	}
	var created models.Goal
	if err := s.client.Post(ctx, pathGoals, goal, &created); err != nil {
		return nil, normalize(err, common.MsgUnexpectedGoals)
	}
	return &created, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, id string, updates models.GoalUpdate) (*models.Goal, error) {
	if err := validators.ValidateGoalID(id); err != nil {
		return nil, err
	}
	if err := validators.ValidateGoalUpdate(updates); err != nil {
		return nil, err
	}
	var updated models.Goal
	if err := s.client.Put(ctx, goalPath(id), updates, &updated); err != nil {
		return nil, normalize(err, common.MsgUnexpectedGoals)
	}
	return &updated, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, id string) error {
	if err := validators.ValidateGoalID(id); err != nil {
		return err
	}
	return normalize(s.client.Delete(ctx, goalPath(id), nil), common.MsgUnexpectedGoals)
}

func (s *goalService) TrackProgress(ctx context.Context, id string, progress models.ProgressInput) (*models.Goal, error) {
	if err := validators.ValidateProgressFor(id, progress); err != nil {
		return nil, err
	}
	var updated models.Goal
	if err := s.client.Post(ctx, goalPath(id, "progress"), progress, &updated); err != nil {
		return nil, normalize(err, common.MsgUnexpectedGoals)
	}
	return &updated, nil
}

func (s *goalService) ShareGoal(ctx context.Context, id string) error {
	if err := validators.ValidateGoalID(id); err != nil {
		return err
	}
	return normalize(s.client.Post(ctx, goalPath(id, "share"), nil, nil), common.MsgUnexpectedGoals)
}
