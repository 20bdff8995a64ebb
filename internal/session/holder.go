// Package session tracks the single authenticated identity of a client process.
//
// A Holder starts unauthenticated. SignIn moves it to authenticated, SignOut
// moves it back, and Update patches the current session in place. Every
// screen reads the identity through the same Holder and may subscribe to
// changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/certchain/certificate-system/pkg/certclient"
)

// ErrSignInFailed wraps every sign-in failure.
var ErrSignInFailed = errors.New("sign in failed")

const (
	loginFailedTitle   = "Login Failed"
	loginFailedMessage = "Please try again."
)

// Authenticator is the part of *certclient.Client the Holder depends on.
type Authenticator interface {
	SignIn(ctx context.Context, code, password string) (*certclient.SignInResult, error)
	Authorize(token string) *certclient.Client
}

// Credentials are what a user types on the login screen.
type Credentials struct {
	Code     string
	Password string
}

// Session is the authenticated user as seen by the screens.
type Session struct {
	ID          string
	Name        string
	Code        string
	Role        string
	Image       string
	DateOfBirth string
	Token       string
}

// Patch carries the fields Update may change. Nil fields are left alone.
type Patch struct {
	Name        *string
	Image       *string
	DateOfBirth *string
}

// Listener observes session changes. A nil session means signed out.
type Listener func(s *Session)

// Holder owns at most one Session. It is safe for concurrent use.
type Holder struct {
	client   Authenticator
	notifier Notifier
	log      zerolog.Logger

	mu        sync.Mutex
	current   *Session
	listeners map[int]Listener
	nextID    int
}

type Option func(*Holder)

// WithNotifier sets where user-visible failures are delivered.
func WithNotifier(n Notifier) Option {
	return func(h *Holder) {
		if n != nil {
			h.notifier = n
		}
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(h *Holder) { h.log = log }
}

// NewHolder returns an unauthenticated Holder that talks to the API through client.
// Without WithNotifier, notifications go to the holder's logger.
func NewHolder(client Authenticator, opts ...Option) *Holder {
	h := &Holder{
		client:    client,
		log:       zerolog.Nop(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.notifier == nil {
		h.notifier = LogNotifier{Log: h.log}
	}
	return h
}

// Current returns a copy of the session and whether one exists.
func (h *Holder) Current() (Session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return Session{}, false
	}
	return *h.current, true
}

// Authenticated reports whether a session exists.
func (h *Holder) Authenticated() bool {
	_, ok := h.Current()
	return ok
}

// Client returns a client carrying the current session's token, or an
// anonymous one when signed out.
func (h *Holder) Client() *certclient.Client {
	h.mu.Lock()
	token := ""
	if h.current != nil {
		token = h.current.Token
	}
	h.mu.Unlock()
	return h.client.Authorize(token)
}

// SignIn verifies the credentials, then loads the full user record by code.
// Both calls must succeed. On failure the previous state is kept, a
// "Login Failed" notification is delivered and the returned error wraps
// ErrSignInFailed.
func (h *Holder) SignIn(ctx context.Context, creds Credentials) error {
	code := strings.TrimSpace(creds.Code)
	if code == "" || creds.Password == "" {
		return h.fail(errors.New("code and password are required"), "Code and password are required.")
	}

	res, err := h.client.SignIn(ctx, code, creds.Password)
	if err != nil {
		return h.fail(err, certclient.Message(err))
	}

	user, err := h.client.Authorize(res.Token).UserByCode(ctx, code)
	if err != nil {
		return h.fail(err, certclient.Message(err))
	}

	s := &Session{
		ID:          user.ID,
		Name:        user.Name,
		Code:        user.Code,
		Role:        user.Role,
		Image:       user.Image,
		DateOfBirth: user.DateOfBirth,
		Token:       res.Token,
	}

	h.mu.Lock()
	h.current = s
	listeners := h.snapshotLocked()
	h.mu.Unlock()

	h.log.Debug().Str("code", s.Code).Str("role", s.Role).Msg("signed in")
	h.broadcast(listeners, s)
	return nil
}

func (h *Holder) fail(cause error, message string) error {
	if message == "" {
		message = loginFailedMessage
	}
	h.log.Warn().Err(cause).Msg("sign in failed")
	h.notifier.Notify(Notification{Title: loginFailedTitle, Message: message})
	return fmt.Errorf("%w: %w", ErrSignInFailed, cause)
}

// SignOut drops the session. It never contacts the backend and is a no-op
// when already signed out.
func (h *Holder) SignOut() {
	h.mu.Lock()
	if h.current == nil {
		h.mu.Unlock()
		return
	}
	h.current = nil
	listeners := h.snapshotLocked()
	h.mu.Unlock()

	h.broadcast(listeners, nil)
}

// Update merges p into the current session. It does nothing when signed out
// and does not contact the backend.
func (h *Holder) Update(p Patch) {
	h.mu.Lock()
	if h.current == nil {
		h.mu.Unlock()
		return
	}
	next := *h.current
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Image != nil {
		next.Image = *p.Image
	}
	if p.DateOfBirth != nil {
		next.DateOfBirth = *p.DateOfBirth
	}
	h.current = &next
	listeners := h.snapshotLocked()
	h.mu.Unlock()

	h.broadcast(listeners, &next)
}

// Subscribe registers l for every later change and returns a func that
// removes it.
func (h *Holder) Subscribe(l Listener) (cancel func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = l
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

func (h *Holder) snapshotLocked() []Listener {
	out := make([]Listener, 0, len(h.listeners))
	for _, l := range h.listeners {
		out = append(out, l)
	}
	return out
}

// broadcast runs outside the lock so listeners may call back into the Holder.
func (h *Holder) broadcast(listeners []Listener, s *Session) {
	for _, l := range listeners {
		if s == nil {
			l(nil)
			continue
		}
		cp := *s
		l(&cp)
	}
}
