package hooks

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/client/services"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// Session owns the authenticated user.
type Session struct {
	auth     services.AuthService
	logger   logging.Logger
	obs      *observable[models.SessionState]
	pending  int
	mount    sync.Once
	mountErr error
}

func NewSession(auth services.AuthService, logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Session{
		auth:   auth,
		logger: logger.With("hook", "session"),
		obs:    newObservable(models.SessionState{}, models.SessionState.Clone),
	}
}

// Mount restores the user from the persisted credential. Only the first call
// does any work; later calls return the first call's result.
func (s *Session) Mount(ctx context.Context) error {
	s.mount.Do(func() {
		s.begin()
		u, err := s.auth.GetCurrentUser(ctx)
		s.end("restore", err, func(st *models.SessionState) {
			st.User = u
		}, func(st *models.SessionState) {
			st.User = nil
		})
		s.mountErr = err
	})
	return s.mountErr
}

func (s *Session) Login(ctx context.Context, email, password string) (*models.User, error) {
	return s.authenticate(ctx, "login", s.auth.Login, email, password)
}

func (s *Session) Register(ctx context.Context, email, password string) (*models.User, error) {
	return s.authenticate(ctx, "register", s.auth.Register, email, password)
}

type authFunc func(ctx context.Context, email, password string) (*models.AuthResponse, error)

func (s *Session) authenticate(ctx context.Context, action string, call authFunc, email, password string) (*models.User, error) {
	s.begin()
	resp, err := call(ctx, email, password)
	var user *models.User
	if err == nil {
		u := resp.User
		user = &u
	}
	s.end(action, err, func(st *models.SessionState) {
		st.User = user
	}, nil)
	if err != nil {
		return nil, err
	}
	out := *user
	return &out, nil
}

// Logout always leaves the session without a user, even when it fails.
func (s *Session) Logout(ctx context.Context) error {
	s.begin()
	err := s.auth.Logout(ctx)
	clearUser := func(st *models.SessionState) { st.User = nil }
	s.end("logout", err, clearUser, clearUser)
	return err
}

func (s *Session) State() models.SessionState {
	return s.obs.get()
}

// Subscribe registers f for every committed state change.
func (s *Session) Subscribe(f func(models.SessionState)) (cancel func()) {
	return s.obs.subscribe(f)
}

func (s *Session) IsAuthenticated() bool {
	var ok bool
	s.obs.read(func(st models.SessionState) { ok = st.User != nil })
	return ok
}

// CurrentUser returns a copy of the user, or nil when logged out.
func (s *Session) CurrentUser() *models.User {
	return s.obs.get().User
}

func (s *Session) begin() {
	s.obs.commit(func(st *models.SessionState) {
		s.pending++
		st.Loading = true
		st.Error = ""
	})
}

// end commits the outcome of an action. onFailure may be nil to leave the
// user untouched.
func (s *Session) end(action string, err error, onSuccess, onFailure func(*models.SessionState)) {
	if err != nil {
		s.logger.Debug(context.Background(), action+" failed", "error", common.Message(err))
	}
	s.obs.commit(func(st *models.SessionState) {
		s.pending--
		st.Loading = s.pending > 0
		if err != nil {
			st.Error = common.Message(err)
			if onFailure != nil {
				onFailure(st)
			}
			return
		}
		onSuccess(st)
	})
}
