package identity

import (
	"context"
	"sync"
)

type State int

const (
	// StatePending is the initial state, before the first sign-in or
	// sign-out has resolved. Callers must treat it as distinct from
	// StateAbsent so nothing renders or runs under a guessed identity.
	StatePending State = iota
	StatePresent
	StateAbsent
)

// AuthState is the value delivered to subscribers on every identity change.
type AuthState struct {
	State State
	Uid   string
}

// Session tracks the client-side identity and notifies subscribers when it
// changes (sign-in, sign-out, token expiry handled by the caller re-signing).
type Session struct {
	verifier Verifier

	mu      sync.RWMutex
	current AuthState
	nextId  int
	subs    map[int]chan AuthState
}

func NewSession(verifier Verifier) *Session {
	return &Session{
		verifier: verifier,
		current:  AuthState{State: StatePending},
		subs:     make(map[int]chan AuthState),
	}
}

// SignIn verifies the credential and, on success, publishes the new
// identity. A failed verification leaves the current state untouched.
func (s *Session) SignIn(ctx context.Context, token string) (string, error) {
	uid, err := s.verifier.Verify(ctx, token)
	if err != nil {
		return "", err
	}

	s.set(AuthState{State: StatePresent, Uid: uid})
	return uid, nil
}

// SignOut resolves the session to absent. It is also how the initial
// pending state is resolved when no stored credential exists.
func (s *Session) SignOut() {
	s.set(AuthState{State: StateAbsent})
}

func (s *Session) Current() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe returns a channel of identity changes and an unsubscribe
// function. Unsubscribing on teardown is required so a torn-down view never
// acts on a late notification.
func (s *Session) Subscribe() (<-chan AuthState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextId
	s.nextId++

	ch := make(chan AuthState, 8)
	s.subs[id] = ch

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

func (s *Session) set(next AuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = next
	for _, ch := range s.subs {
		select {
		case ch <- next:
		default:
			// slow subscriber; it can read Current when it catches up
		}
	}
}
