// Package authstate holds client-side session state as an explicit state
// machine instead of a nullable token field. A session is Anonymous until a
// login or registration attempt starts, Authenticating while the attempt is
// in flight and Authenticated once a token has been issued.
package authstate

import (
	"errors"
	"sync"
)

type Status int

const (
	Anonymous Status = iota
	Authenticating
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

var ErrNotAuthenticating = errors.New("no authentication attempt in progress")

// State is a concurrency-safe session holder. The zero value is Anonymous.
type State struct {
	mu     sync.Mutex
	status Status
	token  string
	userID string
}

func New() *State {
	return &State{}
}

// Begin marks the start of a login or registration attempt. Any previously
// held token is discarded.
func (s *State) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = Authenticating
	s.token = ""
	s.userID = ""
}

// Complete installs the issued token. It is only valid while Authenticating;
// a completion that was never begun is a programming error and is rejected.
func (s *State) Complete(token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != Authenticating {
		return ErrNotAuthenticating
	}
	s.status = Authenticated
	s.token = token
	s.userID = userID
	return nil
}

// Fail reverts a pending attempt to Anonymous.
func (s *State) Fail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = Anonymous
	s.token = ""
	s.userID = ""
}

// ObserveUnauthorized records that the server rejected the held token.
// The token is cleared and the session reverts to Anonymous so the caller
// can prompt for a fresh login.
func (s *State) ObserveUnauthorized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = Anonymous
	s.token = ""
	s.userID = ""
}

// Logout clears the session locally. There is no server call to make since
// tokens are stateless and expire on their own.
func (s *State) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = Anonymous
	s.token = ""
	s.userID = ""
}

// Token returns the held token and whether the session is Authenticated.
func (s *State) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.status == Authenticated
}

func (s *State) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
