package handler

import (
	"errors"
	"net/http"

	"blog/internal/entity"
	"blog/internal/logging"
	"blog/internal/repository"
	"blog/internal/session"
)

const msgInvalidCredentials = "Incorrect email or password"

type LoginHandler struct {
	users repository.Users
	view  *View
	log   logging.Logger
}

func NewLoginHandler(users repository.Users, view *View, log logging.Logger) *LoginHandler {
	return &LoginHandler{
		users: users,
		view:  view,
		log:   log,
	}
}

// GET /login
func (h *LoginHandler) LoginPage(rc *session.Context) {
	h.view.Render(rc, http.StatusOK, "sessions/login", map[string]interface{}{
		"Title": "Log in",
	})
}

// POST /login
func (h *LoginHandler) Login(rc *session.Context) {
	email := entity.NormalizeEmail(rc.R.FormValue("email"))
	password := rc.R.FormValue("password")

	user, err := h.users.GetByEmail(rc.R.Context(), email)
	if err != nil && !errors.Is(err, entity.ErrNotFound) {
		h.view.ServerError(rc, err, "login lookup failed")
		return
	}

	if user == nil || !user.Authenticate(password) {
		h.log.Info(rc.R.Context(), "login rejected", "error", entity.ErrInvalidCredentials)
		// пароль и email обратно в форму не подставляем
		h.view.Render(rc, http.StatusUnauthorized, "sessions/login", map[string]interface{}{
			"Title": "Log in",
			"Error": msgInvalidCredentials,
		})
		return
	}

	rc.SetUserID(user.ID)
	h.log.Info(rc.R.Context(), "user logged in", "user_id", user.ID)
	rc.Redirect("/")
}
