package server

import (
	"fmt"
	"net/http"

	"blog/internal/handler"
	"blog/internal/logging"
	middleware "blog/internal/midlleware"
	"blog/internal/repository"
	"blog/internal/session"
	"blog/internal/templates"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
)

type Deps struct {
	Posts       repository.Posts
	Users       repository.Users
	Store       sessions.Store
	SessionName string
	Log         logging.Logger
}

// NewRouter wires handlers to routes. PATCH and DELETE may arrive as POST
// with a _method form field.
func NewRouter(d Deps) (http.Handler, error) {
	tmpl, err := templates.New()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	manager := session.NewManager(d.Store, d.SessionName, d.Log)
	auth := middleware.NewAuth(d.Users, d.Log)
	view := handler.NewView(tmpl, auth, d.Log)

	posts := handler.NewPostHandler(d.Posts, auth, view, d.Log)
	index := handler.NewIndexHandler(posts, d.Log)
	login := handler.NewLoginHandler(d.Users, view, d.Log)
	registration := handler.NewRegistrationHandler(d.Users, view, d.Log)

	h := manager.Handle

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)

	r.Get("/", h(index.Index))

	r.Get("/posts", h(posts.Index))
	r.Get("/posts/new", h(posts.New))
	r.Post("/posts", h(posts.Create))
	r.Get("/posts/{id}", h(posts.Show))
	r.Get("/posts/{id}/edit", h(posts.Edit))
	r.Patch("/posts/{id}", h(posts.Update))
	r.Delete("/posts/{id}", h(posts.Destroy))

	r.Get("/login", h(login.LoginPage))
	r.Post("/login", h(login.Login))

	r.Get("/users/new", h(registration.RegisterPage))
	r.Post("/users", h(registration.Register))

	r.NotFound(h(index.NotFound))
	r.MethodNotAllowed(h(index.NotFound))

	return middleware.MethodOverride(r), nil
}
