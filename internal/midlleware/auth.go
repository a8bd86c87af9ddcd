package middleware

import (
	"context"
	"errors"
	"net/url"

	"blog/internal/entity"
	"blog/internal/logging"
	"blog/internal/session"
)

const (
	msgLoginRequired = "You must be logged in to view that page"
	msgNotOwner      = "You can only modify your own posts"
)

type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// Auth отвечает за текущего пользователя и права на посты.
// Один экземпляр передается во все группы обработчиков.
type Auth struct {
	users UserFinder
	log   logging.Logger
}

func NewAuth(users UserFinder, log logging.Logger) *Auth {
	return &Auth{users: users, log: log}
}

// CurrentUser - пользователь из сессии или nil. Результат кэшируется на время запроса
func (a *Auth) CurrentUser(rc *session.Context) *entity.User {
	if u, ok := rc.CachedUser(); ok {
		return u
	}

	var user *entity.User
	if id, ok := rc.UserID(); ok {
		u, err := a.users.GetByID(rc.R.Context(), id)
		switch {
		case err == nil:
			user = u
		case !errors.Is(err, entity.ErrNotFound):
			a.log.Error(rc.R.Context(), "current user lookup failed", "user_id", id, "error", err)
		}
	}

	rc.CacheUser(user)
	return user
}

func (a *Auth) IsLoggedIn(rc *session.Context) bool {
	return a.CurrentUser(rc) != nil
}

// RequireLogin уже отправил редирект, если вернул ошибку; обработчик должен сразу выйти
func (a *Auth) RequireLogin(rc *session.Context) error {
	if a.IsLoggedIn(rc) {
		return nil
	}

	rc.AddNotice(session.NoticeError, msgLoginRequired)
	rc.Redirect(backOr(rc, "/login"))
	return entity.ErrNotAuthenticated
}

func CanModify(user *entity.User, post *entity.Post) bool {
	return user != nil && post.OwnedBy(user)
}

// RequireAuthorization вызывается после того, как пост уже найден
func (a *Auth) RequireAuthorization(rc *session.Context, post *entity.Post) error {
	if err := a.RequireLogin(rc); err != nil {
		return err
	}

	if !CanModify(a.CurrentUser(rc), post) {
		rc.AddNotice(session.NoticeError, msgNotOwner)
		rc.Redirect("/posts")
		return entity.ErrNotAuthorized
	}

	return nil
}

// backOr возвращает Referer, если он указывает на этот же сайт
func backOr(rc *session.Context, fallback string) string {
	ref := rc.Referer()
	if ref == "" {
		return fallback
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != rc.R.Host) {
		return fallback
	}

	// Referer на эту же страницу зациклил бы редирект
	if u.Path == "" || u.RequestURI() == rc.R.URL.RequestURI() {
		return fallback
	}
	return u.RequestURI()
}
