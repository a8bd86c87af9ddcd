package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog/internal/entity"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type PostRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// вместе с постом достаем email автора
func (r *PostRepository) selectPosts() sq.SelectBuilder {
	return r.sb.
		Select(
			"p.id",
			"p.title",
			"p.content",
			"p.author_id",
			"u.email AS author_email",
			"p.created_at",
			"p.updated_at",
		).
		From("posts p").
		LeftJoin("users u ON u.id = p.author_id")
}

func (r *PostRepository) List(ctx context.Context) ([]entity.Post, error) {
	query, args, err := r.selectPosts().OrderBy("p.created_at DESC", "p.id DESC").ToSql()
	if err != nil {
		return nil, err
	}

	posts := make([]entity.Post, 0)
	if err := sqlx.SelectContext(ctx, r.db, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return posts, nil
}

func (r *PostRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	query, args, err := r.selectPosts().Where(sq.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var post entity.Post
	if err := sqlx.GetContext(ctx, r.db, &post, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &post, nil
}

func (r *PostRepository) Create(ctx context.Context, post *entity.Post) error {
	now := time.Now().UTC()

	query, args, err := r.sb.
		Insert("posts").
		Columns("title", "content", "author_id", "created_at", "updated_at").
		Values(post.Title, post.Content, post.AuthorID, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&post.ID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	post.CreatedAt = now
	post.UpdatedAt = now
	return nil
}

// Update меняет только title, content и updated_at
func (r *PostRepository) Update(ctx context.Context, post *entity.Post) error {
	now := time.Now().UTC()

	query, args, err := r.sb.
		Update("posts").
		Set("title", post.Title).
		Set("content", post.Content).
		Set("updated_at", now).
		Where(sq.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return err
	}

	if err := r.execOne(ctx, query, args...); err != nil {
		return err
	}

	post.UpdatedAt = now
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("posts").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}

	return r.execOne(ctx, query, args...)
}

func (r *PostRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return entity.ErrNotFound
	}

	return nil
}
