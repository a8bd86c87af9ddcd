package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"blog/internal/entity"
	"blog/internal/logging"
	middleware "blog/internal/midlleware"
	"blog/internal/repository"
	"blog/internal/session"

	"github.com/go-chi/chi/v5"
)

const msgPostUpdated = "Post successfully updated"

type PostHandler struct {
	posts repository.Posts
	auth  *middleware.Auth
	view  *View
	log   logging.Logger
}

func NewPostHandler(posts repository.Posts, auth *middleware.Auth, view *View, log logging.Logger) *PostHandler {
	return &PostHandler{
		posts: posts,
		auth:  auth,
		view:  view,
		log:   log,
	}
}

func postInput(r *http.Request) entity.PostInput {
	return entity.PostInput{
		Title:   r.FormValue("title"),
		Content: r.FormValue("content"),
	}
}

// GET /posts
func (h *PostHandler) Index(rc *session.Context) {
	posts, err := h.posts.List(rc.R.Context())
	if err != nil {
		h.view.ServerError(rc, err, "list posts failed")
		return
	}

	h.view.Render(rc, http.StatusOK, "posts/index", map[string]interface{}{
		"Title": "All posts",
		"Posts": posts,
	})
}

// GET /posts/new
func (h *PostHandler) New(rc *session.Context) {
	if err := h.auth.RequireLogin(rc); err != nil {
		return
	}

	h.renderForm(rc, http.StatusOK, "posts/new", &entity.Post{}, nil)
}

// POST /posts
func (h *PostHandler) Create(rc *session.Context) {
	if err := h.auth.RequireLogin(rc); err != nil {
		return
	}

	in := postInput(rc.R)
	post := entity.NewPost(h.auth.CurrentUser(rc), in)

	if errs := in.Validate(); errs.Any() {
		h.renderForm(rc, http.StatusUnprocessableEntity, "posts/new", post, errs)
		return
	}

	if err := h.posts.Create(rc.R.Context(), post); err != nil {
		h.view.ServerError(rc, err, "create post failed")
		return
	}

	h.log.Info(rc.R.Context(), "post created", "post_id", post.ID, "author_id", *post.AuthorID)
	rc.Redirect("/posts")
}

// GET /posts/{id}
func (h *PostHandler) Show(rc *session.Context) {
	post, err := h.resolvePost(rc)
	if err != nil {
		return
	}

	h.view.Render(rc, http.StatusOK, "posts/show", map[string]interface{}{
		"Title":     post.Title,
		"Post":      post,
		"CanModify": middleware.CanModify(h.auth.CurrentUser(rc), post),
	})
}

// GET /posts/{id}/edit
func (h *PostHandler) Edit(rc *session.Context) {
	post, err := h.resolvePost(rc)
	if err != nil {
		return
	}
	if err := h.auth.RequireAuthorization(rc, post); err != nil {
		return
	}

	h.renderForm(rc, http.StatusOK, "posts/edit", post, nil)
}

// PATCH /posts/{id}
func (h *PostHandler) Update(rc *session.Context) {
	post, err := h.resolvePost(rc)
	if err != nil {
		return
	}
	if err := h.auth.RequireAuthorization(rc, post); err != nil {
		return
	}

	in := postInput(rc.R)
	in.Apply(post)

	if errs := in.Validate(); errs.Any() {
		h.renderForm(rc, http.StatusUnprocessableEntity, "posts/edit", post, errs)
		return
	}

	if err := h.posts.Update(rc.R.Context(), post); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			h.notFound(rc, strconv.FormatInt(post.ID, 10))
			return
		}
		h.view.ServerError(rc, err, "update post failed", "post_id", post.ID)
		return
	}

	rc.AddNotice(session.NoticeSuccess, msgPostUpdated)
	rc.Redirect(fmt.Sprintf("/posts/%d", post.ID))
}

// DELETE /posts/{id}
func (h *PostHandler) Destroy(rc *session.Context) {
	post, err := h.resolvePost(rc)
	if err != nil {
		return
	}
	if err := h.auth.RequireAuthorization(rc, post); err != nil {
		return
	}

	// пост уже могли удалить параллельно, для пользователя результат тот же
	if err := h.posts.Delete(rc.R.Context(), post.ID); err != nil && !errors.Is(err, entity.ErrNotFound) {
		h.view.ServerError(rc, err, "delete post failed", "post_id", post.ID)
		return
	}

	h.log.Info(rc.R.Context(), "post deleted", "post_id", post.ID)
	rc.Redirect("/posts")
}

// resolvePost находит пост из URL. При ошибке ответ уже отправлен
func (h *PostHandler) resolvePost(rc *session.Context) (*entity.Post, error) {
	raw := chi.URLParam(rc.R, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.notFound(rc, raw)
		return nil, entity.ErrNotFound
	}

	post, err := h.posts.GetByID(rc.R.Context(), id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			h.notFound(rc, raw)
			return nil, err
		}
		h.view.ServerError(rc, err, "get post failed", "post_id", id)
		return nil, err
	}

	return post, nil
}

func (h *PostHandler) notFound(rc *session.Context, id string) {
	rc.AddNotice(session.NoticeError, "Couldn't find a post with id: "+id)
	rc.Redirect("/posts")
}

func (h *PostHandler) renderForm(rc *session.Context, status int, name string, post *entity.Post, errs entity.ValidationErrors) {
	title := "New post"
	if name == "posts/edit" {
		title = "Edit post"
	}

	h.view.Render(rc, status, name, map[string]interface{}{
		"Title":  title,
		"Post":   post,
		"Errors": errs,
	})
}
