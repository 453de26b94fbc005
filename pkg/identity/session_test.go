package identity

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	uid string
	err error
}

func (s stubVerifier) Verify(_ context.Context, _ string) (string, error) {
	return s.uid, s.err
}

func waitForState(t *testing.T, ch <-chan AuthState) AuthState {
	t.Helper()
	select {
	case state := <-ch:
		return state
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for auth state change")
		return AuthState{}
	}
}

func TestSessionStartsPending(t *testing.T) {
	s := NewSession(stubVerifier{uid: "user-a"})
	assert.Equal(t, StatePending, s.Current().State)
}

func TestSignInPublishesPresent(t *testing.T) {
	s := NewSession(stubVerifier{uid: "user-a"})
	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	uid, err := s.SignIn(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "user-a", uid)

	state := waitForState(t, ch)
	assert.Equal(t, StatePresent, state.State)
	assert.Equal(t, "user-a", state.Uid)
	assert.Equal(t, state, s.Current())
}

func TestFailedSignInLeavesStateUntouched(t *testing.T) {
	s := NewSession(stubVerifier{err: errors.New("bad token")})

	_, err := s.SignIn(context.Background(), "token")
	assert.Error(t, err)
	assert.Equal(t, StatePending, s.Current().State)
}

func TestSignOutPublishesAbsent(t *testing.T) {
	s := NewSession(stubVerifier{uid: "user-a"})
	ch, unsubscribe := s.Subscribe()
	defer unsubscribe()

	_, err := s.SignIn(context.Background(), "token")
	require.NoError(t, err)
	waitForState(t, ch)

	s.SignOut()
	state := waitForState(t, ch)
	assert.Equal(t, StateAbsent, state.State)
	assert.Empty(t, state.Uid)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := NewSession(stubVerifier{uid: "user-a"})
	ch, unsubscribe := s.Subscribe()

	unsubscribe()
	// further changes must not reach the closed subscription
	s.SignOut()

	_, open := <-ch
	assert.False(t, open)

	// double unsubscribe is a no-op
	unsubscribe()
}
