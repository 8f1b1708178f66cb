package appstate_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/appstate"
	"github.com/sav-labs/dynamic-k8s-resources/internal/infra/shutdown/mocks"
)

func newTestAppState(t *testing.T) *appstate.AppState {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	quit := make(chan os.Signal, 1)

	return appstate.New(logger, time.Now(), "", quit)
}

func TestAppState_Lifecycle(t *testing.T) {
	t.Parallel()

	state := newTestAppState(t)

	require.Equal(t, appstate.StateInit, state.GetState())
	require.False(t, state.IsHealthy())
	require.False(t, state.IsReady())

	require.NoError(t, state.SetStarting(t.Context()))
	require.Equal(t, appstate.StateStarting, state.GetState())
	require.False(t, state.IsHealthy())

	require.NoError(t, state.SetRunning(t.Context()))
	require.Equal(t, appstate.StateRunning, state.GetState())
	require.True(t, state.IsHealthy())
	require.True(t, state.IsReady())

	require.NoError(t, state.Shutdown(t.Context()))
	require.Equal(t, appstate.StateTerminated, state.GetState())
	require.False(t, state.IsHealthy())
	require.False(t, state.IsReady())
}

func TestAppState_InvalidTransitions(t *testing.T) {
	t.Parallel()

	t.Run("running before starting", func(t *testing.T) {
		t.Parallel()

		state := newTestAppState(t)

		err := state.SetRunning(t.Context())
		require.ErrorIs(t, err, appstate.ErrInvalidStateTransition)
	})

	t.Run("starting twice", func(t *testing.T) {
		t.Parallel()

		state := newTestAppState(t)
		require.NoError(t, state.SetStarting(t.Context()))

		err := state.SetStarting(t.Context())
		require.ErrorIs(t, err, appstate.ErrInvalidStateTransition)
	})

	t.Run("shutdown after terminated", func(t *testing.T) {
		t.Parallel()

		state := newTestAppState(t)
		require.NoError(t, state.Shutdown(t.Context()))

		err := state.Shutdown(t.Context())
		require.ErrorIs(t, err, appstate.ErrAlreadyTerminated)
	})
}

func TestAppState_ShutdownRunsComponentsInReverseOrder(t *testing.T) {
	t.Parallel()

	state := newTestAppState(t)

	var (
		mu    sync.Mutex
		order []string
	)

	record := func(name string) func(context.Context) error {
		return func(_ context.Context) error {
			mu.Lock()
			defer mu.Unlock()

			order = append(order, name)

			return nil
		}
	}

	first := mocks.NewMockShutdowner(t)
	first.EXPECT().Name().Return("first")
	first.EXPECT().Shutdown(mock.Anything).RunAndReturn(record("first")).Once()

	second := mocks.NewMockShutdowner(t)
	second.EXPECT().Name().Return("second")
	second.EXPECT().Shutdown(mock.Anything).RunAndReturn(record("second")).Once()

	state.RegisterShutdowner(first)
	state.RegisterShutdowner(second)

	require.NoError(t, state.Shutdown(t.Context()))
	require.Equal(t, []string{"second", "first"}, order)
}

func TestAppState_GetUptime(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	quit := make(chan os.Signal, 1)
	start := time.Now().Add(-time.Minute)

	state := appstate.New(logger, start, "", quit)

	require.Equal(t, start, state.GetStartTime())
	require.GreaterOrEqual(t, state.GetUptime(), time.Minute)
}

func TestAppState_Quit(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	quit := make(chan os.Signal, 1)
	state := appstate.New(logger, time.Now(), "", quit)

	quit <- os.Interrupt

	select {
	case sig := <-state.Quit():
		require.Equal(t, os.Interrupt, sig)
	case <-time.After(time.Second):
		t.Fatal("quit channel never delivered the signal")
	}
}
