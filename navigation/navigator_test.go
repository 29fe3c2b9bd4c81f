package navigation_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/cryptodash/http/router"
	"github.com/xy-planning-network/cryptodash/logger"
	"github.com/xy-planning-network/cryptodash/navigation"
	"github.com/xy-planning-network/cryptodash/view"
)

func stubLoader(name string) view.Loader {
	return func(context.Context) (view.View, error) {
		return view.View{Name: name, Entry: "/client/dist/assets/" + name + ".js"}, nil
	}
}

func newTable(t *testing.T) *router.Table {
	t.Helper()

	table, err := router.DefaultTable(view.Set{
		CoinsList:  stubLoader(view.CoinsList),
		CoinDetail: stubLoader(view.CoinDetail),
		AdminPanel: stubLoader(view.AdminPanel),
	})
	require.Nil(t, err)

	return table
}

func newLogger(buf *bytes.Buffer) *logger.ColorLogger {
	color.NoColor = true
	return logger.NewWriter(buf)
}

type recorder struct {
	mu         sync.Mutex
	navigated  []string
	redirected int
	loaded     []error
}

func (r *recorder) Navigated(route string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.navigated = append(r.navigated, route)
}

func (r *recorder) Redirected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redirected++
}

func (r *recorder) ViewLoaded(_ string, _ time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = append(r.loaded, err)
}

func TestNavigateTitles(t *testing.T) {
	nav := navigation.NewNavigator(newTable(t), navigation.WithHooks(navigation.Title(navigation.AppName)))

	for _, tc := range []struct {
		to       string
		expected string
	}{
		{"/", "Список монет | Crypto Dashboard"},
		{"/coin/42", "Детали монеты | Crypto Dashboard"},
		{"/admin", "Админ-панель | Crypto Dashboard"},
		{"/nonexistent", "Список монет | Crypto Dashboard"},
	} {
		t.Run(tc.to, func(t *testing.T) {
			// Arrange
			doc := new(navigation.Page)

			// Act
			res, err := nav.Navigate(context.Background(), doc, "", tc.to)

			// Assert
			require.Nil(t, err)
			require.Equal(t, tc.expected, doc.Title())

			_, err = res.Pending.Wait(context.Background())
			require.Nil(t, err)
		})
	}
}

func TestNavigateUntitledRoute(t *testing.T) {
	// Arrange
	table, err := router.NewTable(
		router.Route{Path: "/", Name: "Home", Loader: stubLoader("Home")},
		router.Route{Path: router.CatchAllPath, Redirect: "/"},
	)
	require.Nil(t, err)

	nav := navigation.NewNavigator(table, navigation.WithHooks(navigation.Title("")))
	doc := new(navigation.Page)
	doc.SetTitle("stale")

	// Act
	res, err := nav.Navigate(context.Background(), doc, "", "/")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "Crypto Dashboard", doc.Title())
	<-res.Pending.Done()
}

func TestNavigateCatchAllRedirect(t *testing.T) {
	// Arrange
	obs := new(recorder)
	nav := navigation.NewNavigator(newTable(t), navigation.WithObserver(obs))

	// Act
	res, err := nav.Navigate(context.Background(), nil, "/admin", "/nonexistent?x=1")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "/", res.Match.Path)
	require.Equal(t, router.CoinsListRoute, res.Event.To.Name)
	require.Equal(t, "/nonexistent", res.Event.To.RedirectedFrom)
	require.Equal(t, "/admin", res.Event.From.Path)
	require.Equal(t, router.AdminPanelRoute, res.Event.From.Name)

	v, err := res.Pending.Wait(context.Background())
	require.Nil(t, err)
	require.Equal(t, view.CoinsList, v.Name)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Equal(t, 1, obs.redirected)
	require.Equal(t, []string{router.CoinsListRoute}, obs.navigated)
	require.Equal(t, []error{nil}, obs.loaded)
}

func TestNavigateFromStart(t *testing.T) {
	// Arrange
	nav := navigation.NewNavigator(newTable(t))

	// Act
	res, err := nav.Navigate(context.Background(), nil, "", "/coin/42")

	// Assert
	require.Nil(t, err)
	require.Equal(t, navigation.Start, res.Event.From)
	require.Equal(t, map[string]string{"id": "42"}, res.Event.To.Params)
	require.Equal(t, "Детали монеты", res.Event.Meta()["title"])
	<-res.Pending.Done()
}

func TestNavigateHooksRunInOrder(t *testing.T) {
	// Arrange
	var order []int
	mark := func(i int) navigation.Hook {
		return func(_ context.Context, _ *navigation.Event, next navigation.Next) {
			order = append(order, i)
			next(navigation.Allow())
		}
	}

	nav := navigation.NewNavigator(newTable(t), navigation.WithHooks(mark(1), mark(2)), navigation.WithHooks(mark(3)))

	// Act
	res, err := nav.Navigate(context.Background(), nil, "", "/admin")

	// Assert
	require.Nil(t, err)
	require.Equal(t, []int{1, 2, 3}, order)
	<-res.Pending.Done()
}

func TestNavigateCancel(t *testing.T) {
	// Arrange
	ran := false
	nav := navigation.NewNavigator(newTable(t), navigation.WithHooks(
		func(_ context.Context, ev *navigation.Event, next navigation.Next) {
			if ev.To.Name == router.AdminPanelRoute {
				next(navigation.Cancel())
				return
			}
			next(navigation.Allow())
		},
		func(_ context.Context, _ *navigation.Event, next navigation.Next) {
			ran = true
			next(navigation.Allow())
		},
	))

	// Act
	res, err := nav.Navigate(context.Background(), nil, "/", "/admin")

	// Assert
	require.ErrorIs(t, err, navigation.ErrCancelled)
	require.Nil(t, res)
	require.False(t, ran)
}

func TestNavigateHookRedirect(t *testing.T) {
	// Arrange
	var seen []string
	nav := navigation.NewNavigator(newTable(t), navigation.WithHooks(
		func(_ context.Context, ev *navigation.Event, next navigation.Next) {
			seen = append(seen, ev.To.Path)
			if ev.To.Name == router.AdminPanelRoute {
				next(navigation.RedirectTo("/coin/1"))
				return
			}
			next(navigation.Allow())
		},
	))

	// Act
	res, err := nav.Navigate(context.Background(), nil, "", "/admin")

	// Assert
	require.Nil(t, err)
	require.Equal(t, []string{"/admin", "/coin/1"}, seen)
	require.Equal(t, router.CoinDetailRoute, res.Event.To.Name)
	require.Equal(t, "/admin", res.Event.To.RedirectedFrom)
	<-res.Pending.Done()
}

func TestNavigateRedirectLoop(t *testing.T) {
	// Arrange
	calls := 0
	nav := navigation.NewNavigator(newTable(t), navigation.WithMaxRedirects(3), navigation.WithHooks(
		func(_ context.Context, ev *navigation.Event, next navigation.Next) {
			calls++
			if ev.To.Path == "/admin" {
				next(navigation.RedirectTo("/coin/1"))
				return
			}
			next(navigation.RedirectTo("/admin"))
		},
	))

	// Act
	res, err := nav.Navigate(context.Background(), nil, "", "/admin")

	// Assert
	require.ErrorIs(t, err, navigation.ErrRedirectLoop)
	require.Nil(t, res)
	require.Equal(t, 4, calls)
}

func TestNavigateNoContinuation(t *testing.T) {
	// Arrange
	nav := navigation.NewNavigator(newTable(t), navigation.WithHooks(
		func(context.Context, *navigation.Event, navigation.Next) {},
	))

	// Act
	res, err := nav.Navigate(context.Background(), nil, "", "/")

	// Assert
	require.ErrorIs(t, err, navigation.ErrNoContinuation)
	require.Nil(t, res)
}

func TestNavigateExtraContinuations(t *testing.T) {
	// Arrange
	buf := new(bytes.Buffer)
	nav := navigation.NewNavigator(newTable(t),
		navigation.WithLogger(newLogger(buf)),
		navigation.WithHooks(func(_ context.Context, _ *navigation.Event, next navigation.Next) {
			next(navigation.Allow())
			next(navigation.Cancel())
		}),
	)

	// Act
	res, err := nav.Navigate(context.Background(), nil, "", "/")

	// Assert
	require.Nil(t, err)
	require.Contains(t, buf.String(), "[WARN]")
	require.Contains(t, buf.String(), "called next 1 extra times")
	<-res.Pending.Done()
}

func TestNavigateContextDone(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	nav := navigation.NewNavigator(newTable(t), navigation.WithHooks(navigation.Title("")))

	// Act
	res, err := nav.Navigate(ctx, nil, "", "/")

	// Assert
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, res)
}

func TestNavigateLoadFailure(t *testing.T) {
	// Arrange
	errBoom := errors.New("chunk fetch failed")
	table, err := router.NewTable(
		router.Route{Path: "/", Name: "Broken", Loader: func(context.Context) (view.View, error) {
			return view.View{}, errBoom
		}},
	)
	require.Nil(t, err)

	obs := new(recorder)
	nav := navigation.NewNavigator(table, navigation.WithObserver(obs))

	// Act
	res, err := nav.Navigate(context.Background(), nil, "", "/")

	// Assert
	require.Nil(t, err)

	_, err = res.Pending.Wait(context.Background())
	require.ErrorIs(t, err, errBoom)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.loaded, 1)
	require.ErrorIs(t, obs.loaded[0], errBoom)
}

func TestNavigateLoadsLazily(t *testing.T) {
	// Arrange
	loads := make(chan string, 3)
	counting := func(name string) view.Loader {
		return func(context.Context) (view.View, error) {
			loads <- name
			return view.View{Name: name}, nil
		}
	}

	table, err := router.DefaultTable(view.Set{
		CoinsList:  counting(view.CoinsList),
		CoinDetail: counting(view.CoinDetail),
		AdminPanel: counting(view.AdminPanel),
	})
	require.Nil(t, err)
	require.Len(t, loads, 0)

	nav := navigation.NewNavigator(table)

	// Act
	res, err := nav.Navigate(context.Background(), nil, "", "/coin/3")
	require.Nil(t, err)
	<-res.Pending.Done()

	// Assert
	require.Len(t, loads, 1)
	require.Equal(t, view.CoinDetail, <-loads)
}

func TestNavigatorResolve(t *testing.T) {
	// Arrange
	calls := 0
	nav := navigation.NewNavigator(newTable(t), navigation.WithHooks(
		func(_ context.Context, _ *navigation.Event, next navigation.Next) {
			calls++
			next(navigation.Cancel())
		},
	))

	// Act
	loc, err := nav.Resolve("/coin/7/")

	// Assert
	require.Nil(t, err)
	require.Equal(t, router.CoinDetailRoute, loc.Name)
	require.Equal(t, map[string]string{"id": "7"}, loc.Params)
	require.Empty(t, loc.RedirectedFrom)

	// Act
	loc, err = nav.Resolve("/unknown")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "/", loc.Path)
	require.Equal(t, router.CoinsListRoute, loc.Name)
	require.Equal(t, "/unknown", loc.RedirectedFrom)
	require.Zero(t, calls)
}

func TestNavigatorResolveRedirectLoop(t *testing.T) {
	// Arrange
	table, err := router.NewTable(
		router.Route{Path: "/a", Redirect: "/b"},
		router.Route{Path: "/b", Redirect: "/a"},
	)
	require.Nil(t, err)
	nav := navigation.NewNavigator(table, navigation.WithMaxRedirects(2))

	// Act
	_, err = nav.Resolve("/a")

	// Assert
	require.ErrorIs(t, err, navigation.ErrRedirectLoop)
}
