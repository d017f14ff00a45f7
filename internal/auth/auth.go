// Package auth implements the credential and session subsystem of the
// embedded backend emulator: sign-up with atomic credential, profile,
// and wallet creation, password sign-in, a single current-session slot
// per execution context, and auth state change notification.
//
// Validation conflicts surface inside result envelopes as sentinel
// errors; no operation panics and inspection never fails.
package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sunucargo/platform/internal/backend"
	"github.com/sunucargo/platform/internal/record"
	"github.com/sunucargo/platform/internal/store"
	"github.com/sunucargo/platform/pkg/logger"
)

// Collections the subsystem reads and writes.
const (
	usersCollection    = "users"
	profilesCollection = "profiles"
	walletsCollection  = "wallets"
)

// DefaultRole is assigned when sign-up attributes carry no role.
const DefaultRole = "client"

// Validation conflicts returned inside result envelopes.
var (
	ErrUserExists         = errors.New("user already registered")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrInvalidEmail       = errors.New("unable to validate email address: invalid format")
)

// Session is the single active identity reference of one execution
// context: the signed-in credential plus an opaque access token.
type Session struct {
	AccessToken string
	User        record.Record
}

// Result is the envelope of sign-up and sign-in. User never carries the
// secret. Err is one of the sentinel conflicts above.
type Result struct {
	User    record.Record
	Session *Session
	Err     error
}

// SessionResult is the envelope of GetSession. Inspection never fails;
// Session is nil when anonymous.
type SessionResult struct {
	Session *Session
}

// UserResult is the envelope of GetUser.
type UserResult struct {
	User record.Record
}

// Service is the auth subsystem over one collection store. It owns the
// session slot of its execution context, mirrors the signed-in
// credential id into the identity marker, and publishes state changes
// through its notifier.
type Service struct {
	store    *store.Store
	marker   backend.Marker
	notifier *Notifier
	validate *validator.Validate
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
	newID    func() string
	log      zerolog.Logger

	mu      sync.Mutex
	session *Session
}

// Options tunes a Service at construction. Zero values select defaults
// fit for the embedded demo mode.
type Options struct {
	Secret   string
	TokenTTL time.Duration
	Now      func() time.Time
	NewID    func() string
	Logger   *zerolog.Logger
}

// NewService wires the auth subsystem over st. The notifier is shared
// with every caller that subscribes to auth state changes.
func NewService(st *store.Store, marker backend.Marker, notifier *Notifier, opts Options) *Service {
	s := &Service{
		store:    st,
		marker:   marker,
		notifier: notifier,
		validate: validator.New(),
		secret:   []byte(opts.Secret),
		tokenTTL: opts.TokenTTL,
		now:      opts.Now,
		newID:    opts.NewID,
	}
	if len(s.secret) == 0 {
		s.secret = []byte("sunucargo-dev-secret")
	}
	if s.tokenTTL <= 0 {
		s.tokenTTL = 24 * time.Hour
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if opts.Logger != nil {
		s.log = *opts.Logger
	} else {
		s.log = logger.Get().With().Str("component", "auth").Logger()
	}
	return s
}

// Notifier returns the notifier so callers can subscribe without
// holding the service.
func (s *Service) Notifier() *Notifier {
	return s.notifier
}

// SignUp registers a new credential and atomically creates its profile
// and zero-balance wallet. The profile role comes from attrs ("client"
// when absent) and new accounts are auto-verified, as in demo mode. A
// duplicate email returns ErrUserExists with no writes performed.
func (s *Service) SignUp(email, secret string, attrs record.Record) Result {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return Result{Err: ErrInvalidEmail}
	}

	existing := s.store.Collection(usersCollection).Eq("email", email).Single()
	if existing.Data != nil {
		s.log.Debug().Str("email", email).Msg("sign-up rejected, email taken")
		return Result{Err: ErrUserExists}
	}

	if attrs == nil {
		attrs = record.Record{}
	}
	role, _ := attrs["role"].(string)
	if role == "" {
		role = DefaultRole
	}

	userID := s.newID()
	s.store.Collection(usersCollection).Insert(record.Record{
		"id":            userID,
		"email":         email,
		"password":      secret,
		"user_metadata": attrs,
	})

	profile := record.Record{
		"id":          userID,
		"email":       email,
		"first_name":  attrs["first_name"],
		"last_name":   attrs["last_name"],
		"role":        role,
		"is_verified": true,
		"is_active":   true,
	}
	if role == "transporter" {
		profile["company_name"] = attrs["company_name"]
	}
	s.store.Collection(profilesCollection).Insert(profile)

	s.store.Collection(walletsCollection).Insert(record.Record{
		"id":       userID,
		"user_id":  userID,
		"balance":  0,
		"currency": "XOF",
	})

	user := record.Record{"id": userID, "email": email, "user_metadata": attrs}
	session := s.startSession(user)
	s.log.Info().Str("user_id", userID).Str("role", role).Msg("signed up")
	return Result{User: user.Clone(), Session: session}
}

// SignInWithPassword authenticates by exact email and secret match. Any
// prior session is discarded. No match returns ErrInvalidCredentials.
func (s *Service) SignInWithPassword(email, secret string) Result {
	match := s.store.Collection(usersCollection).
		Eq("email", email).
		Eq("password", secret).
		Single()
	if match.Data == nil {
		s.log.Debug().Str("email", email).Msg("sign-in rejected")
		return Result{Err: ErrInvalidCredentials}
	}

	user := match.Data.Clone()
	delete(user, "password")

	session := s.startSession(user)
	s.log.Info().Str("user_id", user.ID()).Msg("signed in")
	return Result{User: user.Clone(), Session: session}
}

// SignOut clears the session and the identity marker and publishes
// SIGNED_OUT. Signing out with no active session is not an error.
func (s *Service) SignOut() error {
	s.mu.Lock()
	s.session = nil
	s.mu.Unlock()

	s.marker.Clear()
	s.notifier.Publish(EventSignedOut, nil)
	s.log.Info().Msg("signed out")
	return nil
}

// GetSession returns a copy of the current session, or none. Never
// fails. Mutating the returned session does not affect the service.
func (s *Service) GetSession() SessionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return SessionResult{}
	}
	return SessionResult{Session: &Session{
		AccessToken: s.session.AccessToken,
		User:        s.session.User.Clone(),
	}}
}

// GetUser returns the credential referenced by the current session, or
// none. Never fails.
func (s *Service) GetUser() UserResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return UserResult{}
	}
	return UserResult{User: s.session.User.Clone()}
}

// OnAuthStateChange registers a callback for every future sign-in and
// sign-out event. Unsubscribe through the returned handle.
func (s *Service) OnAuthStateChange(cb Callback) *Subscription {
	return s.notifier.Subscribe(cb)
}

// startSession replaces the session slot, mirrors the credential id
// into the identity marker, and publishes SIGNED_IN.
func (s *Service) startSession(user record.Record) *Session {
	role := ""
	if meta, ok := user["user_metadata"].(record.Record); ok {
		role, _ = meta["role"].(string)
	} else if meta, ok := user["user_metadata"].(map[string]any); ok {
		role, _ = meta["role"].(string)
	}

	email, _ := user["email"].(string)
	token, err := s.mintToken(user.ID(), email, role)
	if err != nil {
		// Signing only fails on an unusable key; the session still works
		// with an empty token because tokens are opaque here.
		s.log.Error().Err(err).Msg("access token signing failed")
	}

	session := &Session{AccessToken: token, User: user.Clone()}
	s.mu.Lock()
	s.session = session
	s.mu.Unlock()

	s.marker.Set(user.ID())
	s.notifier.Publish(EventSignedIn, session)
	return session
}
