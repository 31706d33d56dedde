package session

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "study-session"
	keyField   = "key"
)

// CookieManager stores the pending-quiz key and flash messages in a signed
// browser cookie.
type CookieManager struct {
	store *sessions.CookieStore
}

// NewCookieManager creates a CookieManager signing cookies with secret.
// Set secure when the site is only served over HTTPS.
func NewCookieManager(secret string, secure bool) *CookieManager {
	cs := sessions.NewCookieStore([]byte(secret))
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieManager{store: cs}
}

// get never fails for a tampered or stale cookie; gorilla returns a fresh
// session alongside the decode error, which is what we want.
func (m *CookieManager) get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, cookieName)
	return s
}

// Key returns the client's pending-quiz key, assigning a new one to the
// request's session on first use. A new key only reaches the client once the
// session is written by Save or AddFlash; the session is cached per request,
// so a single write carries both.
func (m *CookieManager) Key(r *http.Request) string {
	s := m.get(r)
	if key, ok := s.Values[keyField].(string); ok && key != "" {
		return key
	}

	key := NewKey()
	s.Values[keyField] = key
	return key
}

// Save writes the request's session cookie.
func (m *CookieManager) Save(w http.ResponseWriter, r *http.Request) error {
	if err := m.get(r).Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// ExistingKey returns the client's key without creating one.
func (m *CookieManager) ExistingKey(r *http.Request) (string, bool) {
	key, ok := m.get(r).Values[keyField].(string)
	return key, ok && key != ""
}

// AddFlash queues a message to show on the next rendered page.
func (m *CookieManager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) error {
	s := m.get(r)
	s.AddFlash(msg)
	if err := s.Save(r, w); err != nil {
		return fmt.Errorf("failed to save flash message: %w", err)
	}
	return nil
}

// Flashes returns and clears all queued messages.
func (m *CookieManager) Flashes(w http.ResponseWriter, r *http.Request) ([]string, error) {
	s := m.get(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	if err := s.Save(r, w); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs, nil
}
