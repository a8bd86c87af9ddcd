package repository

import (
	"context"

	"blog/internal/entity"
)

// Posts - хранилище постов. Отсутствующий пост возвращает entity.ErrNotFound
type Posts interface {
	List(ctx context.Context) ([]entity.Post, error)
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id int64) error
}

// Users - хранилище пользователей. Повторный email возвращает entity.ErrEmailTaken
type Users interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
}

var (
	_ Posts = (*PostRepository)(nil)
	_ Posts = (*MemoryPostRepository)(nil)
	_ Users = (*UserRepository)(nil)
	_ Users = (*MemoryUserRepository)(nil)
)
