package session

import (
	"context"
	"net/http"

	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/switchback/route"
)

// keys used internal to specific implementations of different interfaces.
const (
	sessionKey        = "switchback-session-gorilla" // used by Service
	subjectSessionKey = sessionKey + "-subject"      // used by Session
)

// The Sessionable wraps methods for basic adding values to, deleting, and getting values from a session
// associated with an *http.Request and saving those to the session store.
type Sessionable interface {
	Delete(w http.ResponseWriter, r *http.Request) error
	Get(key string) any
	ResetExpiry(w http.ResponseWriter, r *http.Request) error
	Save(w http.ResponseWriter, r *http.Request) error
	Set(w http.ResponseWriter, r *http.Request, key string, val any) error
}

// The SubjectSessionable wraps methods for signing a subject in and out of a session.
// A subject is whatever identifies the navigating party: a user ID, an email, a token subject.
type SubjectSessionable interface {
	SignIn(w http.ResponseWriter, r *http.Request, subject string) error
	SignOut(w http.ResponseWriter, r *http.Request) error
	Subject() (string, error)
}

// The SwitchbackSessionable composes session's major interfaces.
//
// Every SwitchbackSessionable is also a route.Authenticator,
// so a session can be handed to guards as a capability.
type SwitchbackSessionable interface {
	FlashSessionable
	Sessionable
	SubjectSessionable
	route.Authenticator
}

// A Session provides all functionality for managing a fully featured session.
//
// Its functionality is implemented by lightly wrapping a gorilla.Session.
type Session struct {
	s *gorilla.Session
}

// NewSession constructs a new Session as an implementation of SwitchbackSessionable.
//
// Typical usage is to pass in the value retrieved from a http.Request.Context.
func NewSession(g *gorilla.Session) SwitchbackSessionable { return Session{s: g} }

// Authenticated reports whether a subject has signed in to the session.
func (s Session) Authenticated(context.Context) (bool, error) {
	_, err := s.Subject()
	switch err {
	case nil:
		return true, nil
	case ErrNoSubject:
		return false, nil
	default:
		return false, err
	}
}

func (s Session) ClearFlashes(w http.ResponseWriter, r *http.Request) {
	_ = s.Flashes(w, r)
}

// Delete removes a session by making the MaxAge negative.
func (s Session) Delete(w http.ResponseWriter, r *http.Request) error {
	s.s.Options.MaxAge = -1
	return s.Save(w, r)
}

// Flashes retrieves []Flash stored in the session.
func (s Session) Flashes(w http.ResponseWriter, r *http.Request) []Flash {
	raw := s.s.Flashes()
	fs := make([]Flash, 0)
	for _, r := range raw {
		f, ok := r.(Flash)
		if !ok {
			continue
		}

		fs = append(fs, f)
	}
	if len(fs) > 0 {
		// NOTE: Flashes are removed after they are accessed,
		// but the session needs to be saved for them to be finally removed
		if err := s.Save(w, r); err != nil {
			return nil
		}
	}

	return fs
}

// Get retrieves a value from the session according to the key passed in.
func (s Session) Get(key string) any {
	return s.s.Values[key]
}

// ResetExpiry resets the expiration of the session by saving it.
func (s Session) ResetExpiry(w http.ResponseWriter, r *http.Request) error {
	return s.Save(w, r)
}

// Save wraps gorilla.Session.Save, saving the session in the request.
func (s Session) Save(w http.ResponseWriter, r *http.Request) error { return s.s.Save(r, w) }

// Set stores a value according to the key passed in on the session.
func (s Session) Set(w http.ResponseWriter, r *http.Request, key string, val any) error {
	s.s.Values[key] = val
	return s.Save(w, r)
}

// SetFlash stores the passed in Flash in the session.
func (s Session) SetFlash(w http.ResponseWriter, r *http.Request, flash Flash) error {
	s.s.AddFlash(flash)
	return s.Save(w, r)
}

// SignIn stores subject in the session.
// An empty subject is ErrNotValid.
func (s Session) SignIn(w http.ResponseWriter, r *http.Request, subject string) error {
	if subject == "" {
		return ErrNotValid
	}

	s.s.Values[subjectSessionKey] = subject
	return s.Save(w, r)
}

// SignOut removes the subject from the session.
func (s Session) SignOut(w http.ResponseWriter, r *http.Request) error {
	delete(s.s.Values, subjectSessionKey)
	return s.Save(w, r)
}

// Subject gets the signed in subject out of the session.
// If no subject can be found, ErrNoSubject is returned.
//
// If the value in the session is not a string, ErrNotValid is returned and represents a programming error.
func (s Session) Subject() (string, error) {
	intfVal, ok := s.s.Values[subjectSessionKey]
	if !ok {
		return "", ErrNoSubject
	}

	val, ok := intfVal.(string)
	if !ok || val == "" {
		return "", ErrNotValid
	}

	return val, nil
}
