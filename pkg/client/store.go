package client

import (
	"sync"

	"github.com/google/uuid"
)

// State is a snapshot of the signed-in session as the client sees it.
type State struct {
	Token              string
	User               *User
	Profile            *Profile
	Roles              []string
	ImpersonatedUserID *uuid.UUID
	IsImpersonating    bool
}

func (s State) SignedIn() bool {
	return s.Token != ""
}

// AuthStore holds the session state of one client. Listeners are called
// after every change, outside the lock, in registration order.
type AuthStore struct {
	mu        sync.RWMutex
	state     State
	listeners []listener
	nextID    int
}

type listener struct {
	id int
	fn func(State)
}

func NewAuthStore() *AuthStore {
	return &AuthStore{}
}

func (s *AuthStore) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.state)
}

func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Subscribe registers fn and returns a function that removes it.
func (s *AuthStore) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Clear forgets the session.
func (s *AuthStore) Clear() {
	s.update(func(st *State) { *st = State{} })
}

func (s *AuthStore) update(mutate func(*State)) {
	s.mu.Lock()
	mutate(&s.state)
	snapshot := copyState(s.state)
	fns := make([]func(State), len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

func copyState(st State) State {
	out := st
	if st.Roles != nil {
		out.Roles = append([]string(nil), st.Roles...)
	}
	if st.ImpersonatedUserID != nil {
		id := *st.ImpersonatedUserID
		out.ImpersonatedUserID = &id
	}
	return out
}
