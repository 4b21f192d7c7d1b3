package session

import "sync"

// Session is the authenticated caller context. It is passed explicitly to the
// API client; nothing reads it from package state.
type Session struct {
	mu       sync.RWMutex
	username string
	token    string
	expired  bool
}

func New(username, token string) *Session {
	return &Session{username: username, token: token}
}

func Anonymous() *Session {
	return &Session{}
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.expired {
		return ""
	}
	return s.token
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && !s.expired
}

func (s *Session) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expired
}

func (s *Session) SignIn(username, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.token = token
	s.expired = false
}

// Expire drops the token after the backend rejected it.
func (s *Session) Expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = true
	s.token = ""
}
