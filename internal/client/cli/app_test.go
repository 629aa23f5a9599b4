package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/credentials"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/dmitrijs2005/fittrack/internal/testutil/fakeapi"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*App
	api *fakeapi.API
	out *bytes.Buffer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	api := fakeapi.New()
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	store := credentials.NewMemoryStore()
	c, err := client.New(client.Config{BaseURL: srv.URL, Credentials: store})
	require.NoError(t, err)

	out := &bytes.Buffer{}
	app := newApp(c, store, logging.Nop(), rdr(""), out)
	return &testApp{App: app, api: api, out: out}
}

// feed replaces the app's input with lines.
func (ta *testApp) feed(lines ...string) {
	ta.reader = bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func (ta *testApp) login(t *testing.T) {
	t.Helper()
	ta.api.Seed("a@b.com", "Passw0rd1", "Ann")
	stubPassword(t, "Passw0rd1")
	ta.feed("a@b.com")
	require.NoError(t, ta.Login(context.Background()))
}

func TestApp_LoginAndLogout(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	ta.login(t)
	require.Contains(t, ta.out.String(), "Logged in as a@b.com")
	require.True(t, ta.isLoggedIn())
	require.Equal(t, "(a@b.com)", ta.getStatus())

	require.NoError(t, ta.WhoAmI(ctx))
	require.Contains(t, ta.out.String(), "Ann <a@b.com>")

	require.NoError(t, ta.Logout(ctx))
	require.False(t, ta.isLoggedIn())
	require.Empty(t, ta.getStatus())

	// The remembered email is offered on the next login.
	ta.out.Reset()
	ta.feed("")
	require.NoError(t, ta.Login(ctx))
	require.Contains(t, ta.out.String(), "Enter email [a@b.com]")
	require.Contains(t, ta.out.String(), "Logged in as a@b.com")
}

func TestApp_LoginWrongPassword(t *testing.T) {
	ta := newTestApp(t)
	ta.api.Seed("a@b.com", "Passw0rd1", "Ann")
	stubPassword(t, "WrongPass1")
	ta.feed("a@b.com")

	err := ta.Login(context.Background())
	require.Equal(t, 401, common.StatusOf(err))
	require.False(t, ta.isLoggedIn())
}

func TestApp_Register(t *testing.T) {
	ta := newTestApp(t)
	stubPassword(t, "Passw0rd1")
	ta.feed("new@b.com")

	require.NoError(t, ta.Register(context.Background()))
	require.Contains(t, ta.out.String(), "Registered as new@b.com")
	require.True(t, ta.isLoggedIn())
}

func TestApp_GoalLifecycle(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t)

	ta.feed("Run 5k", "", "5", "km", "12/31/2026")
	require.NoError(t, ta.AddGoal(ctx))
	goals := ta.goals.State().Goals
	require.Len(t, goals, 1)
	id := goals[0].ID

	ta.out.Reset()
	require.NoError(t, ta.ListGoals(ctx))
	require.Contains(t, ta.out.String(), "Run 5k")
	require.Contains(t, ta.out.String(), "12/31/2026")

	// Only the title changes; the other five prompts keep their values.
	ta.feed("Run 10k", "", "", "", "", "")
	require.NoError(t, ta.EditGoal(ctx, []string{id}))
	require.Equal(t, "Run 10k", ta.goals.State().Goals[0].Title)
	require.Equal(t, 5.0, ta.goals.State().Goals[0].TargetValue)

	require.NoError(t, ta.TrackProgress(ctx, []string{id, "5"}))
	require.Contains(t, ta.out.String(), `Goal "Run 10k" completed!`)

	ta.out.Reset()
	require.NoError(t, ta.Summary(ctx))
	require.Equal(t, "1 of 1 goals completed\n", ta.out.String())

	require.NoError(t, ta.ShareGoal(ctx, []string{id}))
	require.NoError(t, ta.DeleteGoal(ctx, []string{id}))
	require.Empty(t, ta.goals.State().Goals)

	require.NoError(t, ta.RefreshGoals(ctx))
	require.Contains(t, ta.out.String(), "No goals yet")
}

func TestApp_AddGoal_BadInputNeverReachesNetwork(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t)
	base := ta.api.RequestCount()

	ta.feed("Run", "", "lots")
	require.True(t, common.IsValidation(ta.AddGoal(ctx)))

	ta.feed("Run", "", "5", "km", "2026-12-31")
	require.True(t, common.IsValidation(ta.AddGoal(ctx)))

	ta.feed("", "", "5", "km", "12/31/2026")
	require.True(t, common.IsValidation(ta.AddGoal(ctx)))

	require.Equal(t, base, ta.api.RequestCount())
}

func TestApp_UsageErrors(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()

	require.ErrorIs(t, ta.DeleteGoal(ctx, nil), errUsage)
	require.ErrorIs(t, ta.TrackProgress(ctx, []string{"g1"}), errUsage)
	require.ErrorIs(t, ta.ShareGoal(ctx, []string{"a", "b"}), errUsage)
	require.Error(t, ta.EditGoal(ctx, []string{"unknown"}))
}

func TestApp_EditGoal_NothingChanged(t *testing.T) {
	ta := newTestApp(t)
	ctx := context.Background()
	ta.login(t)

	ta.feed("Run 5k", "", "5", "km", "12/31/2026")
	require.NoError(t, ta.AddGoal(ctx))
	id := ta.goals.State().Goals[0].ID
	base := ta.api.RequestCount()

	ta.feed("", "", "", "", "", "")
	require.NoError(t, ta.EditGoal(ctx, []string{id}))
	require.Contains(t, ta.out.String(), "Nothing changed")
	require.Equal(t, base, ta.api.RequestCount())
}
