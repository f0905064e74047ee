package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "spendtrack_session"
	userIDKey   = "user_id"
)

// Sessions binds users to requests through a signed cookie.
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(secret string) *Sessions {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &Sessions{store: store}
}

// SignIn binds the session to the given user.
func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, userID int64) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut unbinds the user from the session. It always succeeds from the
// caller's point of view. The cookie itself survives so that flash messages
// queued right after (logged out, account deleted) still reach the next page.
func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, _ := s.store.Get(r, sessionName)
	delete(sess.Values, userIDKey)
	_ = sess.Save(r, w)
}

// UserID returns the authenticated user's ID, if any.
func (s *Sessions) UserID(r *http.Request) (int64, bool) {
	sess, _ := s.store.Get(r, sessionName)
	id, ok := sess.Values[userIDKey].(int64)
	return id, ok
}

// Flash queues a one-shot message for the next rendered page.
func (s *Sessions) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := s.store.Get(r, sessionName)
	sess.AddFlash(msg)
	_ = sess.Save(r, w)
}

// Flashes drains queued messages.
func (s *Sessions) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess, _ := s.store.Get(r, sessionName)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(r, w)
	msgs := make([]string, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
