package calc_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"vectorlab/internal/calc"
)

func startEngine(t *testing.T) (*calc.Engine, context.Context) {
	t.Helper()
	eng := calc.New(calc.Config{})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = eng.Run(ctx) }()
	return eng, ctx
}

func TestEngineSessionLifecycle(t *testing.T) {
	eng, ctx := startEngine(t)

	st, err := eng.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, st.ID)
	require.Equal(t, 0.0, st.Result)
	require.Equal(t, 0, st.Ops)

	st, err = eng.Apply(ctx, calc.AddCommand{At: time.Now(), Session: st.ID, Value: 10})
	require.NoError(t, err)
	require.Equal(t, 10.0, st.Result)

	st, err = eng.Apply(ctx, calc.MultiplyCommand{At: time.Now(), Session: st.ID, Value: 2})
	require.NoError(t, err)
	require.Equal(t, 20.0, st.Result)
	require.Equal(t, 2, st.Ops)
	require.Equal(t, "multiply", st.LastCommand)

	got, err := eng.GetState(ctx, st.ID)
	require.NoError(t, err)
	require.Equal(t, 20.0, got.Result)

	st, err = eng.Apply(ctx, calc.ResetCommand{At: time.Now(), Session: st.ID})
	require.NoError(t, err)
	require.Equal(t, 0.0, st.Result)
	require.Equal(t, 3, st.Ops)
}

func TestEngineSessionsAreIndependent(t *testing.T) {
	eng, ctx := startEngine(t)

	a, err := eng.CreateSession(ctx)
	require.NoError(t, err)
	b, err := eng.CreateSession(ctx)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	_, err = eng.Apply(ctx, calc.AddCommand{At: time.Now(), Session: a.ID, Value: 7})
	require.NoError(t, err)

	got, err := eng.GetState(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, got.Result)
}

func TestEngineUnknownSession(t *testing.T) {
	eng, ctx := startEngine(t)

	_, err := eng.Apply(ctx, calc.AddCommand{At: time.Now(), Session: "nope", Value: 1})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown session")

	_, err = eng.GetState(ctx, "nope")
	require.Error(t, err)
}

func TestEngineSubscribe(t *testing.T) {
	eng, ctx := startEngine(t)

	ch, unsub := eng.Subscribe(ctx)
	defer unsub()

	st, err := eng.CreateSession(ctx)
	require.NoError(t, err)

	select {
	case got := <-ch:
		require.Equal(t, st.ID, got.ID)
		require.Equal(t, 0.0, got.Result)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after session creation")
	}

	_, err = eng.Apply(ctx, calc.AddCommand{At: time.Now(), Session: st.ID, Value: 5})
	require.NoError(t, err)

	select {
	case got := <-ch:
		require.Equal(t, 5.0, got.Result)
		require.Equal(t, "add", got.LastCommand)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after mutation")
	}
}

func TestEngineSubscribeSeesExistingSessions(t *testing.T) {
	eng, ctx := startEngine(t)

	st, err := eng.CreateSession(ctx)
	require.NoError(t, err)
	_, err = eng.Apply(ctx, calc.AddCommand{At: time.Now(), Session: st.ID, Value: 3})
	require.NoError(t, err)

	// a late subscriber still gets a snapshot of the existing session
	ch, unsub := eng.Subscribe(ctx)
	defer unsub()

	select {
	case got := <-ch:
		require.Equal(t, st.ID, got.ID)
		require.Equal(t, 3.0, got.Result)
		require.Equal(t, 1, got.Ops)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered on subscribe")
	}
}

func TestEngineContextCancellation(t *testing.T) {
	eng := calc.New(calc.Config{})

	// engine not running: calls must respect the caller's deadline
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := eng.GetState(ctx, "id")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
