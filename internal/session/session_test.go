package session

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog/internal/entity"
	"blog/internal/logging"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *Manager {
	return NewManager(NewCookieStore("test-secret-test-secret-test-sec", false), "test-session", logging.Nop())
}

// roundTrip runs fn on a request carrying cookies and returns the new cookies.
func roundTrip(t *testing.T, m *Manager, cookies []*http.Cookie, fn func(rc *Context)) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	m.Handle(fn)(w, r)
	return w
}

func TestContext_UserIDPersists(t *testing.T) {
	m := newManager()

	w := roundTrip(t, m, nil, func(rc *Context) {
		_, ok := rc.UserID()
		assert.False(t, ok)
		rc.SetUserID(42)
		require.NoError(t, rc.Save())
	})
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	roundTrip(t, m, cookies, func(rc *Context) {
		id, ok := rc.UserID()
		assert.True(t, ok)
		assert.Equal(t, int64(42), id)
	})
}

func TestContext_NoticesAreOneShot(t *testing.T) {
	m := newManager()

	w := roundTrip(t, m, nil, func(rc *Context) {
		rc.AddNotice(NoticeError, "bad")
		rc.AddNotice(NoticeSuccess, "good")
		rc.Redirect("/posts")
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts", w.Header().Get("Location"))
	cookies := w.Result().Cookies()

	w = roundTrip(t, m, cookies, func(rc *Context) {
		assert.Equal(t, []Notice{
			{Kind: NoticeError, Message: "bad"},
			{Kind: NoticeSuccess, Message: "good"},
		}, rc.Notices())
		require.NoError(t, rc.Save())
	})

	roundTrip(t, m, w.Result().Cookies(), func(rc *Context) {
		assert.Empty(t, rc.Notices())
	})
}

func TestContext_TamperedCookieStartsFresh(t *testing.T) {
	m := newManager()

	roundTrip(t, m, []*http.Cookie{{Name: "test-session", Value: "garbage"}}, func(rc *Context) {
		_, ok := rc.UserID()
		assert.False(t, ok)
	})
}

func TestContext_UserCache(t *testing.T) {
	m := newManager()

	roundTrip(t, m, nil, func(rc *Context) {
		_, resolved := rc.CachedUser()
		assert.False(t, resolved)

		rc.CacheUser(&entity.User{ID: 1})
		u, resolved := rc.CachedUser()
		assert.True(t, resolved)
		assert.Equal(t, int64(1), u.ID)

		rc.SetUserID(2)
		_, resolved = rc.CachedUser()
		assert.False(t, resolved)
	})
}

func TestManager_LogsCarryRequestID(t *testing.T) {
	var buf bytes.Buffer
	m := NewManager(NewCookieStore("test-secret-test-secret-test-sec", false), "test-session", logging.New(&buf, "warn"))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "test-session", Value: "garbage"})

	chimw.RequestID(m.Handle(func(rc *Context) {})).ServeHTTP(httptest.NewRecorder(), r)

	assert.Contains(t, buf.String(), "discarding unreadable session cookie")
	assert.Contains(t, buf.String(), `"request_id":"`)
}
