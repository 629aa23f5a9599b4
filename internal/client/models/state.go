package models

// SessionState is the observable state of the session hook.
// Error is empty when the last action succeeded.
type SessionState struct {
	User    *User
	Loading bool
	Error   string
}

// GoalsState is the observable state of the goals hook. Goals keep the order
// the server returned them in; created goals are appended.
type GoalsState struct {
	Goals   []Goal
	Loading bool
	Error   string
}

// Clone returns a deep copy so snapshots handed to subscribers never alias
// the hook's own slice.
func (s GoalsState) Clone() GoalsState {
	out := s
	if s.Goals != nil {
		out.Goals = make([]Goal, len(s.Goals))
		copy(out.Goals, s.Goals)
	}
	return out
}

// Clone returns a copy with its own User value.
func (s SessionState) Clone() SessionState {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	return out
}

// GoalsSummary is the dashboard aggregate over the goal collection.
type GoalsSummary struct {
	Total     int
	Completed int
}
