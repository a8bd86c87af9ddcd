package handler

import (
	"blog/internal/entity"
	"blog/internal/logging"
	"blog/internal/session"
)

const msgRouteNotFound = "Whoops! Couldn't find that route"

type IndexHandler struct {
	posts *PostHandler
	log   logging.Logger
}

func NewIndexHandler(posts *PostHandler, log logging.Logger) *IndexHandler {
	return &IndexHandler{posts: posts, log: log}
}

// GET / показывает все посты
func (i *IndexHandler) Index(rc *session.Context) {
	i.posts.Index(rc)
}

func (i *IndexHandler) NotFound(rc *session.Context) {
	i.log.Debug(rc.R.Context(), "unmatched route", "method", rc.R.Method, "path", rc.R.URL.Path, "error", entity.ErrRouteNotFound)
	rc.AddNotice(session.NoticeError, msgRouteNotFound)
	rc.Redirect("/posts")
}
