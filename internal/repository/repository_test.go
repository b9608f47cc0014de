package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"ideaboard/internal/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	return gdb, mock
}

var ideaColumns = []string{"id", "title", "summary", "description", "tags", "user_id", "created_at", "updated_at"}

func TestIdeaRepository_FindByID(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewIdeaRepository(gdb)

	id := uuid.New()
	owner := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery("SELECT \\* FROM `ideas` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(ideaColumns).
			AddRow(id.String(), "Title", "Summary", "Description", `["a","b"]`, owner.String(), now, now))

	idea, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, idea.ID)
	assert.Equal(t, owner, idea.UserID)
	assert.Equal(t, []string{"a", "b"}, idea.Tags)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdeaRepository_FindByID_NotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewIdeaRepository(gdb)

	mock.ExpectQuery("SELECT \\* FROM `ideas` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(ideaColumns))

	idea, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, idea)
}

func TestIdeaRepository_List(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewIdeaRepository(gdb)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery("SELECT \\* FROM `ideas` ORDER BY created_at DESC LIMIT").
		WillReturnRows(sqlmock.NewRows(ideaColumns).
			AddRow(uuid.NewString(), "B", "S", "D", `[]`, uuid.NewString(), now, now).
			AddRow(uuid.NewString(), "A", "S", "D", `[]`, uuid.NewString(), now.Add(-time.Hour), now))

	ideas, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, "B", ideas[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdeaRepository_Delete(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewIdeaRepository(gdb)

	mock.ExpectExec("DELETE FROM `ideas` WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), uuid.New()))

	mock.ExpectExec("DELETE FROM `ideas` WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), gorm.ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdeaRepository_Update(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewIdeaRepository(gdb)
	idea := &model.Idea{
		ID:          uuid.New(),
		Title:       "new title",
		Summary:     "s",
		Description: "d",
		Tags:        []string{"a"},
		UserID:      uuid.New(),
	}

	mock.ExpectExec("UPDATE `ideas` SET `title`=\\?,`summary`=\\?,`description`=\\?,`tags`=\\?,`updated_at`=\\? WHERE id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), idea))

	// a concurrently deleted row is reported, not re-inserted
	mock.ExpectExec("UPDATE `ideas` SET").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), idea), gorm.ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_HashesPassword(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(0, 1))

	user := &model.User{Name: "Ada", Email: "Ada@Example.com", Password: "secret123"}
	require.NoError(t, repo.Create(context.Background(), user))

	assert.Equal(t, "ada@example.com", user.Email)
	assert.Empty(t, user.Password)
	assert.True(t, user.MatchPassword("secret123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)

	mock.ExpectExec("INSERT INTO `users`").
		WillReturnError(&mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'ada@example.com' for key 'idx_users_email'"})

	err := repo.Create(context.Background(), &model.User{Name: "Ada", Email: "ada@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestUserRepository_FindByEmail_Normalizes(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewUserRepository(gdb)
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WithArgs("ada@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(id.String(), "Ada", "ada@example.com", "hash", now, now))

	user, err := repo.FindByEmail(context.Background(), "  ADA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
