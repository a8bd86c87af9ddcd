package entity

import (
	"strings"
	"time"
)

type Post struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Content     string    `json:"content" db:"content"`
	AuthorID    *int64    `json:"author_id,omitempty" db:"author_id"`
	AuthorEmail *string   `json:"author_email,omitempty" db:"author_email"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

func NewPost(author *User, in PostInput) *Post {
	p := &Post{}
	in.Apply(p)
	if author != nil {
		id := author.ID
		email := author.Email
		p.AuthorID = &id
		p.AuthorEmail = &email
	}
	return p
}

// OwnedBy сравнивает только id автора, содержимое поста не важно
func (p *Post) OwnedBy(u *User) bool {
	if p == nil || u == nil || p.AuthorID == nil {
		return false
	}
	return *p.AuthorID == u.ID
}

func (p Post) Author() string {
	if p.AuthorEmail == nil {
		return ""
	}
	return *p.AuthorEmail
}

// PostInput - поля формы создания и редактирования поста
type PostInput struct {
	Title   string
	Content string
}

func (in PostInput) Validate() ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(in.Title) == "" {
		errs = errs.Add("title", "Title can't be blank")
	}
	if strings.TrimSpace(in.Content) == "" {
		errs = errs.Add("content", "Content can't be blank")
	}
	return errs
}

// Apply переносит в пост только title и content; id и автор не меняются
func (in PostInput) Apply(p *Post) {
	p.Title = in.Title
	p.Content = in.Content
}
