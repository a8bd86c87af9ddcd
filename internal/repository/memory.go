package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"blog/internal/entity"
)

// MemoryPostRepository хранит посты в памяти процесса (STORAGE=memory и тесты)
type MemoryPostRepository struct {
	mu     sync.RWMutex
	nextID int64
	posts  map[int64]entity.Post
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: make(map[int64]entity.Post)}
}

func clonePost(p entity.Post) *entity.Post {
	if p.AuthorID != nil {
		id := *p.AuthorID
		p.AuthorID = &id
	}
	if p.AuthorEmail != nil {
		email := *p.AuthorEmail
		p.AuthorEmail = &email
	}
	return &p
}

func (r *MemoryPostRepository) List(ctx context.Context) ([]entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]entity.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, *clonePost(p))
	}

	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})

	return posts, nil
}

func (r *MemoryPostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *MemoryPostRepository) Create(ctx context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = now
	post.UpdatedAt = now

	r.posts[post.ID] = *clonePost(*post)
	return nil
}

func (r *MemoryPostRepository) Update(ctx context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.posts[post.ID]
	if !ok {
		return entity.ErrNotFound
	}

	stored.Title = post.Title
	stored.Content = post.Content
	stored.UpdatedAt = time.Now().UTC()
	r.posts[post.ID] = stored

	post.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *MemoryPostRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

type MemoryUserRepository struct {
	mu      sync.RWMutex
	nextID  int64
	users   map[int64]entity.User
	byEmail map[string]int64
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[int64]entity.User),
		byEmail: make(map[string]int64),
	}
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, entity.ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[entity.NormalizeEmail(email)]
	if !ok {
		return nil, entity.ErrNotFound
	}
	u := r.users[id]
	return &u, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := entity.NormalizeEmail(user.Email)
	if _, taken := r.byEmail[email]; taken {
		return entity.ErrEmailTaken
	}

	now := time.Now().UTC()
	r.nextID++
	user.ID = r.nextID
	user.Email = email
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID] = *user
	r.byEmail[email] = user.ID
	return nil
}
