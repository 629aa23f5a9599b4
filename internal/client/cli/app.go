package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/config"
	"github.com/dmitrijs2005/fittrack/internal/client/credentials"
	"github.com/dmitrijs2005/fittrack/internal/client/hooks"
	"github.com/dmitrijs2005/fittrack/internal/client/services"
	"github.com/dmitrijs2005/fittrack/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	session *hooks.Session
	goals   *hooks.Goals
	store   credentials.Store
	logger  logging.Logger
	reader  *bufio.Reader
	out     io.Writer
	db      *sql.DB
}

// NewApp opens the local database and builds the transport, services and
// hooks described by cfg.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	store := credentials.NewSQLiteStore(db)
	apiClient, err := client.New(client.Config{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.RequestTimeout,
		Credentials: store,
		Logger:      logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := newApp(apiClient, store, logger, bufio.NewReader(os.Stdin), os.Stdout)
	app.db = db
	return app, nil
}

func newApp(c client.Client, store credentials.Store, logger logging.Logger, r *bufio.Reader, w io.Writer) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	return &App{
		session: hooks.NewSession(services.NewAuthService(c, store, logger), logger),
		goals:   hooks.NewGoals(services.NewGoalService(c), logger),
		store:   store,
		logger:  logger,
		reader:  r,
		out:     w,
	}
}

// Run restores the session, loads goals when logged in and runs the REPL
// until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to fittrack (type 'help' for commands)")
	if err := a.session.Mount(ctx); err != nil {
		a.logger.Warn(ctx, "could not restore session", "error", err)
	}
	if a.isLoggedIn() {
		if err := a.goals.Mount(ctx); err != nil {
			a.logger.Warn(ctx, "could not load goals", "error", err)
		}
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	u := a.session.CurrentUser()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", u.Email)
}
