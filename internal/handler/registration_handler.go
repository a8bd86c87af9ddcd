package handler

import (
	"errors"
	"net/http"

	"blog/internal/entity"
	"blog/internal/logging"
	"blog/internal/repository"
	"blog/internal/session"
)

const msgEmailTaken = "Email has already been taken"

type RegistrationHandler struct {
	users repository.Users
	view  *View
	log   logging.Logger
}

func NewRegistrationHandler(users repository.Users, view *View, log logging.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		users: users,
		view:  view,
		log:   log,
	}
}

// GET /users/new
func (h *RegistrationHandler) RegisterPage(rc *session.Context) {
	h.renderForm(rc, http.StatusOK, "", nil)
}

// POST /users
func (h *RegistrationHandler) Register(rc *session.Context) {
	in := entity.UserInput{
		Email:    rc.R.FormValue("email"),
		Password: rc.R.FormValue("password"),
	}

	errs := in.Validate()
	if !errs.Any() {
		_, err := h.users.GetByEmail(rc.R.Context(), in.Email)
		switch {
		case err == nil:
			errs = errs.Add("email", msgEmailTaken)
		case !errors.Is(err, entity.ErrNotFound):
			h.view.ServerError(rc, err, "registration lookup failed")
			return
		}
	}

	if errs.Any() {
		h.renderForm(rc, http.StatusUnprocessableEntity, in.Email, errs)
		return
	}

	user, err := in.NewUser()
	if err != nil {
		h.view.ServerError(rc, err, "password hashing failed")
		return
	}

	if err := h.users.Create(rc.R.Context(), user); err != nil {
		// проверка выше не защищает от одновременной регистрации
		if errors.Is(err, entity.ErrEmailTaken) {
			h.renderForm(rc, http.StatusUnprocessableEntity, in.Email, errs.Add("email", msgEmailTaken))
			return
		}
		h.view.ServerError(rc, err, "create user failed")
		return
	}

	rc.SetUserID(user.ID)
	h.log.Info(rc.R.Context(), "user registered", "user_id", user.ID)
	rc.Redirect("/")
}

func (h *RegistrationHandler) renderForm(rc *session.Context, status int, email string, errs entity.ValidationErrors) {
	h.view.Render(rc, status, "users/new", map[string]interface{}{
		"Title":  "Sign up",
		"Email":  email,
		"Errors": errs,
	})
}
