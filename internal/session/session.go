// Package session keeps the per-request state a handler needs: the cookie
// session holding the logged-in user id and the one-shot notices shown on
// the next rendered page.
package session

import (
	"encoding/gob"
	"net/http"

	"blog/internal/entity"
	"blog/internal/logging"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

const userIDKey = "user_id"

func init() {
	// flashes are stored as []interface{} inside the gob-encoded cookie
	gob.Register([]interface{}{})
}

type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
)

type Notice struct {
	Kind    NoticeKind
	Message string
}

func NewCookieStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

type Manager struct {
	store sessions.Store
	name  string
	log   logging.Logger
}

func NewManager(store sessions.Store, name string, log logging.Logger) *Manager {
	return &Manager{store: store, name: name, log: log}
}

// Start opens the cookie session for r. A cookie that fails to decode
// yields a fresh, empty session.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request) *Context {
	log := m.log
	if id := chimw.GetReqID(r.Context()); id != "" {
		log = log.With("request_id", id)
	}

	sess, err := m.store.Get(r, m.name)
	if err != nil {
		log.Warn(r.Context(), "discarding unreadable session cookie", "error", err)
	}
	return &Context{W: w, R: r, sess: sess, log: log}
}

// Handle adapts a Context handler to net/http.
func (m *Manager) Handle(fn func(rc *Context)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(m.Start(w, r))
	}
}

// Context is created once per request and passed explicitly to handlers.
type Context struct {
	W http.ResponseWriter
	R *http.Request

	sess *sessions.Session
	log  logging.Logger

	user         *entity.User
	userResolved bool
}

func (c *Context) UserID() (int64, bool) {
	id, ok := c.sess.Values[userIDKey].(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

func (c *Context) SetUserID(id int64) {
	c.sess.Values[userIDKey] = id
	c.user = nil
	c.userResolved = false
}

// CachedUser returns the user resolved earlier in this request, if any.
func (c *Context) CachedUser() (*entity.User, bool) {
	return c.user, c.userResolved
}

func (c *Context) CacheUser(u *entity.User) {
	c.user = u
	c.userResolved = true
}

func (c *Context) AddNotice(kind NoticeKind, message string) {
	c.sess.AddFlash(message, string(kind))
}

// Notices pops every pending notice; call Save before writing the body.
func (c *Context) Notices() []Notice {
	var notices []Notice
	for _, kind := range []NoticeKind{NoticeError, NoticeSuccess} {
		for _, f := range c.sess.Flashes(string(kind)) {
			if msg, ok := f.(string); ok {
				notices = append(notices, Notice{Kind: kind, Message: msg})
			}
		}
	}
	return notices
}

func (c *Context) Save() error {
	return c.sess.Save(c.R, c.W)
}

// Redirect saves the session and answers 303 See Other.
func (c *Context) Redirect(url string) {
	if err := c.Save(); err != nil {
		c.log.Error(c.R.Context(), "session save failed", "error", err)
	}
	http.Redirect(c.W, c.R, url, http.StatusSeeOther)
}

func (c *Context) Referer() string {
	return c.R.Referer()
}
