package handler

import (
	"bytes"
	"io"
	"net/http"

	"blog/internal/logging"
	middleware "blog/internal/midlleware"
	"blog/internal/session"
)

type Renderer interface {
	Render(w io.Writer, name string, data map[string]interface{}) error
}

// View добавляет к данным страницы текущего пользователя и уведомления
// и отдает готовый HTML. Один View на все обработчики.
type View struct {
	tmpl Renderer
	auth *middleware.Auth
	log  logging.Logger
}

func NewView(tmpl Renderer, auth *middleware.Auth, log logging.Logger) *View {
	return &View{tmpl: tmpl, auth: auth, log: log}
}

func (v *View) Render(rc *session.Context, status int, name string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["CurrentUser"] = v.auth.CurrentUser(rc)
	data["Notices"] = rc.Notices()

	// уведомления уже прочитаны, сессию нужно сохранить до записи тела
	if err := rc.Save(); err != nil {
		v.log.Error(rc.R.Context(), "session save failed", "error", err)
	}

	var buf bytes.Buffer
	if err := v.tmpl.Render(&buf, name, data); err != nil {
		v.ServerError(rc, err, "template render failed", "template", name)
		return
	}

	rc.W.Header().Set("Content-Type", "text/html; charset=utf-8")
	rc.W.WriteHeader(status)
	if _, err := buf.WriteTo(rc.W); err != nil {
		v.log.Warn(rc.R.Context(), "response write failed", "error", err)
	}
}

func (v *View) ServerError(rc *session.Context, err error, msg string, args ...any) {
	v.log.Error(rc.R.Context(), msg, append(args, "error", err)...)
	http.Error(rc.W, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
