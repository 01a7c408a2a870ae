package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// gate lets a test decide when an operation returns.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() gate {
	return gate{started: make(chan struct{}), release: make(chan struct{})}
}

func (g gate) op(value string, err error) func(context.Context) (Reducer[string], error) {
	return func(context.Context) (Reducer[string], error) {
		close(g.started)
		<-g.release
		if err != nil {
			return nil, err
		}
		return func(string) string { return value }, nil
	}
}

func TestSlice_StaleResultIsDiscarded(t *testing.T) {
	s := NewSlice("test", "", zaptest.NewLogger(t))
	ctx := context.Background()

	landed := make(chan struct{}, 1)
	s.Subscribe(func(st State[string]) {
		if st.Data == "fast" {
			select {
			case landed <- struct{}{}:
			default:
			}
		}
	})

	slow, fast := newGate(), newGate()
	var slowErr, fastErr error
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		slowErr = s.Run(ctx, "list", slow.op("slow", nil))
	}()
	<-slow.started

	wg.Add(1)
	go func() {
		defer wg.Done()
		fastErr = s.Run(ctx, "list", fast.op("fast", nil))
	}()
	<-fast.started

	close(fast.release)
	// wait for the fast result before letting the slow one land
	<-landed
	assert.True(t, s.State().IsLoading, "slow request still in flight")

	close(slow.release)
	wg.Wait()

	assert.NoError(t, fastErr)
	assert.ErrorIs(t, slowErr, ErrSuperseded)
	assert.Equal(t, "fast", s.State().Data)
	assert.False(t, s.State().IsLoading)
}

func TestSlice_DifferentKeysDoNotSupersede(t *testing.T) {
	s := NewSlice("test", 0, zaptest.NewLogger(t))
	ctx := context.Background()

	add := func(n int) func(context.Context) (Reducer[int], error) {
		return func(context.Context) (Reducer[int], error) {
			return func(v int) int { return v + n }, nil
		}
	}

	require.NoError(t, s.Run(ctx, "a", add(1)))
	require.NoError(t, s.Run(ctx, "b", add(10)))
	assert.Equal(t, 11, s.State().Data)
}

func TestSlice_FailureKeepsData(t *testing.T) {
	s := NewSlice("test", "initial", zaptest.NewLogger(t))
	ctx := context.Background()

	err := s.Run(ctx, "save", func(context.Context) (Reducer[string], error) {
		return nil, errors.New("network down")
	})
	assert.EqualError(t, err, "network down")

	st := s.State()
	assert.Equal(t, "initial", st.Data)
	assert.Equal(t, "network down", st.Error)
	assert.False(t, st.IsLoading)

	require.NoError(t, s.Run(ctx, "save", func(context.Context) (Reducer[string], error) {
		return func(string) string { return "saved" }, nil
	}))
	assert.Empty(t, s.State().Error)
	assert.Equal(t, "saved", s.State().Data)
}

func TestSlice_ResetSupersedesInFlight(t *testing.T) {
	s := NewSlice("test", "", zaptest.NewLogger(t))
	g := newGate()

	done := make(chan error)
	go func() { done <- s.Run(context.Background(), "fetch", g.op("late", nil)) }()
	<-g.started

	s.Reset()
	close(g.release)

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, "", s.State().Data)
}

func TestSlice_Subscribe(t *testing.T) {
	s := NewSlice("test", 0, zaptest.NewLogger(t))

	var seen []State[int]
	unsubscribe := s.Subscribe(func(st State[int]) { seen = append(seen, st) })

	require.NoError(t, s.Run(context.Background(), "x", func(context.Context) (Reducer[int], error) {
		return func(int) int { return 7 }, nil
	}))

	require.Len(t, seen, 2)
	assert.True(t, seen[0].IsLoading)
	assert.Equal(t, 7, seen[1].Data)
	assert.False(t, seen[1].IsLoading)

	unsubscribe()
	s.Set(func(int) int { return 8 })
	assert.Len(t, seen, 2)
}
