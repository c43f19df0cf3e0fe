package entries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/copyit/internal/common"
	"github.com/dmitrijs2005/copyit/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

const (
	insertQ = `(?s)^INSERT\s+INTO\s+entries\s*\(user_id,\s*title,\s*content\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at,\s*updated_at$`
	updateQ = `(?s)^UPDATE\s+entries\s+SET\s+title\s*=\s*\$3,\s*content\s*=\s*\$4,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`
	deleteQ = `(?s)^DELETE\s+FROM\s+entries\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2$`
	listQ   = `(?s)^SELECT\s+id,\s*user_id,\s*title,\s*content,\s*created_at,\s*updated_at\s+FROM\s+entries\s+WHERE\s+user_id\s*=\s*\$1$`
)

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(insertQ).
		WithArgs("u1", "Snippet", "fmt.Println()").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("e1", now, now))

	got, err := repo.Create(context.Background(), &models.Entry{UserID: "u1", Title: "Snippet", Content: "fmt.Println()"})
	require.NoError(t, err)
	assert.Equal(t, "e1", got.ID)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(insertQ).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Entry{UserID: "u1", Title: "a", Content: "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestUpdate(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(updateQ).
			WithArgs("e1", "u1", "new", "body").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), "u1", "e1", "new", "body"))
	})

	t.Run("missing or foreign", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(updateQ).
			WithArgs("e1", "u2", "new", "body").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), "u2", "e1", "new", "body")
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(updateQ).WillReturnError(errors.New("boom"))

		err := repo.Update(context.Background(), "u1", "e1", "new", "body")
		require.Error(t, err)
		assert.NotErrorIs(t, err, common.ErrorNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("removed", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(deleteQ).WithArgs("e1", "u1").WillReturnResult(sqlmock.NewResult(0, 1))

		removed, err := repo.Delete(context.Background(), "u1", "e1")
		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectExec(deleteQ).WithArgs("e1", "u1").WillReturnResult(sqlmock.NewResult(0, 0))

		removed, err := repo.Delete(context.Background(), "u1", "e1")
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestListByUser(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(listQ).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "content", "created_at", "updated_at"}).
			AddRow("e1", "u1", "a", "x", now, now).
			AddRow("e2", "u1", "b", "y", now, now))

	got, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "e2", got[1].ID)
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(listQ).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "content", "created_at", "updated_at"}))

	got, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_ScanError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(listQ).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("e1"))

	_, err := repo.ListByUser(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan error")
}
