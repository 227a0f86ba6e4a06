package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/http/session"
)

func TestSessionSignIn(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s, err := session.NewStub("").GetSession(r)
	require.Nil(t, err)

	// Act
	ok, err := s.Authenticated(context.Background())

	// Assert
	require.Nil(t, err)
	require.False(t, ok)

	_, err = s.Subject()
	require.ErrorIs(t, err, session.ErrNoSubject)

	// Act
	err = s.SignIn(w, r, "")

	// Assert
	require.ErrorIs(t, err, session.ErrNotValid)

	// Act
	err = s.SignIn(w, r, "ada@example.com")

	// Assert
	require.Nil(t, err)

	sub, err := s.Subject()
	require.Nil(t, err)
	require.Equal(t, "ada@example.com", sub)

	ok, err = s.Authenticated(context.Background())
	require.Nil(t, err)
	require.True(t, ok)

	// Act
	err = s.SignOut(w, r)

	// Assert
	require.Nil(t, err)
	ok, err = s.Authenticated(context.Background())
	require.Nil(t, err)
	require.False(t, ok)
}

func TestSessionSubjectNotValid(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s, err := session.NewStub("").GetSession(r)
	require.Nil(t, err)
	require.Nil(t, s.Set(w, r, "switchback-session-gorilla-subject", 42))

	// Act
	ok, err := s.Authenticated(context.Background())

	// Assert
	require.ErrorIs(t, err, session.ErrNotValid)
	require.False(t, ok)
}

func TestSessionFlashes(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s, err := session.NewStub("ada").GetSession(r)
	require.Nil(t, err)

	expected := session.Flash{Class: session.FlashWarning, Msg: session.NoAccessMsg}

	// Act
	err = s.SetFlash(w, r, expected)

	// Assert
	require.Nil(t, err)
	require.Equal(t, []session.Flash{expected}, s.Flashes(w, r))
	require.Empty(t, s.Flashes(w, r))
}

func TestSessionValues(t *testing.T) {
	// Arrange
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	s, err := session.NewStub("").GetSession(r)
	require.Nil(t, err)

	// Act
	err = s.Set(w, r, "theme", "dark")

	// Assert
	require.Nil(t, err)
	require.Equal(t, "dark", s.Get("theme"))
	require.Nil(t, s.Get("missing"))
	require.Nil(t, s.ResetExpiry(w, r))
	require.Nil(t, s.Delete(w, r))
}
