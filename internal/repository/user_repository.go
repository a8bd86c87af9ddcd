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
	"github.com/lib/pq"
)

// код ошибки Postgres unique_violation
const uniqueViolation = "23505"

type UserRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepository) selectUsers() sq.SelectBuilder {
	return r.sb.
		Select("id", "email", "password_digest", "created_at", "updated_at").
		From("users")
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, r.selectUsers().Where(sq.Eq{"id": id}))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, r.selectUsers().Where(sq.Eq{"email": entity.NormalizeEmail(email)}))
}

func (r *UserRepository) getOne(ctx context.Context, b sq.SelectBuilder) (*entity.User, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	var user entity.User
	if err := sqlx.GetContext(ctx, r.db, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &user, nil
}

// Create сохраняет пользователя; уникальность email проверяет сама база
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()

	query, args, err := r.sb.
		Insert("users").
		Columns("email", "password_digest", "created_at", "updated_at").
		Values(user.Email, user.PasswordDigest, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.ErrEmailTaken
		}
		return fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}
