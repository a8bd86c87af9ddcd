package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"blog/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postColumns = []string{"id", "title", "content", "author_id", "author_email", "created_at", "updated_at"}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestPostRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(postColumns).
		AddRow(2, "Second", "b", 1, "a@example.com", now, now).
		AddRow(1, "First", "a", nil, nil, now, now)
	mock.ExpectQuery(`^SELECT p\.id, .* FROM posts p LEFT JOIN users u ON u\.id = p\.author_id ORDER BY p\.created_at DESC, p\.id DESC$`).
		WillReturnRows(rows)

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, "Second", posts[0].Title)
	require.NotNil(t, posts[0].AuthorID)
	assert.Equal(t, int64(1), *posts[0].AuthorID)
	assert.Equal(t, "a@example.com", posts[0].Author())
	assert.Nil(t, posts[1].AuthorID)
	assert.Equal(t, "", posts[1].Author())
}

func TestPostRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(5, "Hello", "World", 3, "u@example.com", now, now))

	post, err := repo.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), post.ID)
	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "World", post.Content)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPostRepository_GetByID_DBError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`WHERE p\.id = \$1`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("db down"))

	_, err := repo.GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestPostRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(`^INSERT INTO posts \(title,content,author_id,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5\) RETURNING id$`).
		WithArgs("Hello", "World", int64(9), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	post := entity.NewPost(&entity.User{ID: 9}, entity.PostInput{Title: "Hello", Content: "World"})
	require.NoError(t, repo.Create(context.Background(), post))

	assert.Equal(t, int64(12), post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, post.CreatedAt, post.UpdatedAt)
}

func TestPostRepository_Update(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`^UPDATE posts SET title = \$1, content = \$2, updated_at = \$3 WHERE id = \$4$`).
		WithArgs("New", "Body", sqlmock.AnyArg(), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	post := &entity.Post{ID: 4, Title: "New", Content: "Body"}
	require.NoError(t, repo.Update(context.Background(), post))
	assert.False(t, post.UpdatedAt.IsZero())
}

func TestPostRepository_Update_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`^UPDATE posts`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entity.Post{ID: 4, Title: "t", Content: "c"})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestPostRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectExec(`^DELETE FROM posts WHERE id = \$1$`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`^DELETE FROM posts WHERE id = \$1$`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.ErrorIs(t, repo.Delete(context.Background(), 4), entity.ErrNotFound)
}
