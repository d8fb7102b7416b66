// Package session keeps the admin token and user in a signed, encrypted
// cookie.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"

	"jewelry-storefront/internal/config"
)

const (
	cookieName = "jewelry_admin"
	tokenKey   = "adminToken"
	userKey    = "adminUser"
)

// ErrNoSession means no usable admin session was found. A session holding a
// non-admin or undecodable user is cleared and reported the same way.
var ErrNoSession = errors.New("no admin session")

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

type Admin struct {
	Token string `json:"token" validate:"required"`
	User  User   `json:"user"`
}

type Manager struct {
	store *sessions.CookieStore
}

// MinKeyLength is the shortest accepted signing key.
const MinKeyLength = 32

var (
	ErrWeakKey     = fmt.Errorf("session key must be at least %d bytes", MinKeyLength)
	ErrBadBlockKey = errors.New("session block key must be 16, 24 or 32 bytes")
)

// NewManager builds the cookie store. With no keys configured it generates
// random ones; otherwise both keys are required.
func NewManager(cfg config.SessionConfig) (*Manager, error) {
	var hashKey, blockKey []byte
	switch {
	case cfg.Key == "" && cfg.BlockKey == "":
		hashKey = securecookie.GenerateRandomKey(64)
		blockKey = securecookie.GenerateRandomKey(32)
	case len(cfg.Key) < MinKeyLength:
		return nil, ErrWeakKey
	default:
		switch len(cfg.BlockKey) {
		case 16, 24, 32:
		default:
			return nil, ErrBadBlockKey
		}
		hashKey, blockKey = []byte(cfg.Key), []byte(cfg.BlockKey)
	}
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}, nil
}

// Load returns the admin stored in the request's session.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (Admin, error) {
	sess, err := m.store.Get(r, cookieName)
	if err != nil {
		// Tampered or signed with a rotated key.
		_ = m.Clear(w, r)
		return Admin{}, ErrNoSession
	}
	token, _ := sess.Values[tokenKey].(string)
	rawUser, _ := sess.Values[userKey].(string)
	if token == "" || rawUser == "" {
		return Admin{}, ErrNoSession
	}
	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil || !user.IsAdmin {
		_ = m.Clear(w, r)
		return Admin{}, ErrNoSession
	}
	return Admin{Token: token, User: user}, nil
}

func (m *Manager) Save(w http.ResponseWriter, r *http.Request, a Admin) error {
	sess, _ := m.store.Get(r, cookieName)
	rawUser, err := json.Marshal(a.User)
	if err != nil {
		return err
	}
	sess.Values[tokenKey] = a.Token
	sess.Values[userKey] = string(rawUser)
	return sess.Save(r, w)
}

// Clear removes the admin session cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, cookieName)
	delete(sess.Values, tokenKey)
	delete(sess.Values, userKey)
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
