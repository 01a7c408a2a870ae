// Package store holds client-side state in independent observable slices.
// Each async operation reduces its result into exactly one slice.
package store

import (
	"context"
	"errors"
	"sync"

	"travel-booking/internal/client"

	"go.uber.org/zap"
)

// ErrSuperseded is returned by Run when a newer call with the same key
// started before this one finished. Its result was discarded.
var ErrSuperseded = errors.New("result superseded by a newer request")

// State is the uniform shape of every slice.
type State[T any] struct {
	Data      T
	IsLoading bool
	Error     string
}

// Reducer folds an operation's result into the slice data.
type Reducer[T any] func(T) T

// Slice is one observable, independently loading part of the store.
type Slice[T any] struct {
	mu       sync.Mutex
	name     string
	initial  T
	state    State[T]
	tokens   map[string]uint64
	inflight int
	subs     map[int]func(State[T])
	nextSub  int
	log      *zap.Logger
}

func NewSlice[T any](name string, initial T, log *zap.Logger) *Slice[T] {
	return &Slice[T]{
		name:    name,
		initial: initial,
		state:   State[T]{Data: initial},
		tokens:  make(map[string]uint64),
		subs:    make(map[int]func(State[T])),
		log:     log.With(zap.String("slice", name)),
	}
}

func (s *Slice[T]) Name() string { return s.name }

// State returns a snapshot.
func (s *Slice[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe calls fn after every state change and returns an unsubscribe func.
func (s *Slice[T]) Subscribe(fn func(State[T])) func() {
	s.mu.Lock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, key)
		s.mu.Unlock()
	}
}

// Run executes op as operation key. While any operation is in flight the
// slice is loading. When op returns, its reducer is applied only if no
// newer call for the same key has started; otherwise ErrSuperseded is
// returned and the state is left alone (a stale failure still returns its
// own error to the caller). On failure the data is unchanged
// and the message is recorded.
func (s *Slice[T]) Run(ctx context.Context, key string, op func(ctx context.Context) (Reducer[T], error)) error {
	s.mu.Lock()
	s.tokens[key]++
	token := s.tokens[key]
	s.inflight++
	s.state.IsLoading = true
	s.state.Error = ""
	s.mu.Unlock()
	s.publish()

	reduce, err := op(ctx)

	s.mu.Lock()
	s.inflight--
	s.state.IsLoading = s.inflight > 0
	current := s.tokens[key] == token
	if current {
		if err != nil {
			s.state.Error = client.Message(err)
		} else if reduce != nil {
			s.state.Data = reduce(s.state.Data)
		}
	}
	s.mu.Unlock()
	s.publish()

	if !current {
		s.log.Debug("Discarded stale result", zap.String("operation", key), zap.Uint64("token", token))
		if err != nil {
			return err
		}
		return ErrSuperseded
	}
	return err
}

// Set replaces the data directly, as a synchronous action.
func (s *Slice[T]) Set(reduce Reducer[T]) {
	s.mu.Lock()
	s.state.Data = reduce(s.state.Data)
	s.mu.Unlock()
	s.publish()
}

// ClearError drops the recorded error.
func (s *Slice[T]) ClearError() {
	s.mu.Lock()
	s.state.Error = ""
	s.mu.Unlock()
	s.publish()
}

// Reset restores the initial data. Operations still in flight are
// superseded so their results cannot resurrect old data.
func (s *Slice[T]) Reset() {
	s.mu.Lock()
	for key := range s.tokens {
		s.tokens[key]++
	}
	s.state = State[T]{Data: s.initial, IsLoading: s.inflight > 0}
	s.mu.Unlock()
	s.publish()
}

func (s *Slice[T]) publish() {
	s.mu.Lock()
	snapshot := s.state
	subs := make([]func(State[T]), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
