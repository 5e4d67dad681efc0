package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	models "restaurant-ordering/model"
)

// DefaultTokenTTL bounds how long a token is cached when neither the token
// nor the session says when it expires.
const DefaultTokenTTL = time.Hour

type EventType int

const (
	SignedIn EventType = iota + 1
	SignedOut
)

func (t EventType) String() string {
	switch t {
	case SignedIn:
		return "SIGNED_IN"
	case SignedOut:
		return "SIGNED_OUT"
	}
	return "UNKNOWN"
}

// Event is a change of authentication state.
type Event struct {
	Type EventType
	User models.User
	At   time.Time
}

type cachedUser struct {
	user    models.User
	expires time.Time
}

// State remembers the user behind each access token this server has seen,
// until the token expires, and tells subscribers when someone signs in or
// out. It is passed to the parts of the app that need it; there is no
// package level instance.
type State struct {
	mu    sync.RWMutex
	users map[string]cachedUser
	subs  map[int]func(Event)
	next  int
	now   func() time.Time
}

func NewState() *State {
	return &State{
		users: make(map[string]cachedUser),
		subs:  make(map[int]func(Event)),
		now:   time.Now,
	}
}

// Subscribe registers fn for every later event. The returned func removes
// the registration; calling it more than once is harmless.
func (s *State) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Current returns the user cached for token. An expired entry is dropped
// and reported as a miss.
func (s *State) Current(token string) (models.User, bool) {
	now := s.now()
	s.mu.RLock()
	c, ok := s.users[token]
	s.mu.RUnlock()
	if !ok {
		return models.User{}, false
	}
	if !now.Before(c.expires) {
		s.mu.Lock()
		if cur, ok := s.users[token]; ok && !now.Before(cur.expires) {
			delete(s.users, token)
		}
		s.mu.Unlock()
		return models.User{}, false
	}
	return c.user, true
}

// SignIn records the session and notifies subscribers.
func (s *State) SignIn(session models.Session) {
	now := s.now()
	s.store(session.AccessToken, session.User, expiry(session.AccessToken, session.ExpiresIn, now))
	s.publish(Event{Type: SignedIn, User: session.User, At: now})
}

// Remember caches a user looked up by token without emitting an event.
func (s *State) Remember(token string, u models.User) {
	s.store(token, u, expiry(token, 0, s.now()))
}

// SignOut forgets token and notifies subscribers.
func (s *State) SignOut(token string) {
	s.mu.Lock()
	c := s.users[token]
	delete(s.users, token)
	s.mu.Unlock()
	s.publish(Event{Type: SignedOut, User: c.user, At: s.now()})
}

// Evict drops every entry expired at now and reports how many went away.
func (s *State) Evict(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for token, c := range s.users {
		if !now.Before(c.expires) {
			delete(s.users, token)
			n++
		}
	}
	return n
}

// Len counts cached tokens, expired or not.
func (s *State) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *State) store(token string, u models.User, expires time.Time) {
	s.mu.Lock()
	s.users[token] = cachedUser{user: u, expires: expires}
	s.mu.Unlock()
}

// expiry prefers the token's own exp claim, then the session lifetime, then
// DefaultTokenTTL. The signature is not checked here; the identity service
// already vouched for the token.
func expiry(token string, expiresIn int, now time.Time) time.Time {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	if expiresIn > 0 {
		return now.Add(time.Duration(expiresIn) * time.Second)
	}
	return now.Add(DefaultTokenTTL)
}

func (s *State) publish(ev Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
