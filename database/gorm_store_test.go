package database

import (
	"errors"
	"testing"
	"time"

	"labbudget/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return NewGormStore(gormDB), mock
}

func TestGormStore_Read(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT .* FROM `documents`").
		WillReturnRows(sqlmock.NewRows([]string{"name", "content", "updated_at"}).
			AddRow("students", `[{"name":"Amy","balance":120}]`, time.Now()))

	students, err := Load[models.Student](store, models.CollectionStudents)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{{Name: "Amy", Balance: 120}}, students)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ReadCreatesMissingCollection(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT .* FROM `documents`").
		WillReturnRows(sqlmock.NewRows([]string{"name", "content", "updated_at"}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `documents`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	data, err := store.Read(models.CollectionNotes)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_ReadFailure(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery("SELECT .* FROM `documents`").
		WillReturnError(errors.New("connection refused"))

	_, err := store.Read(models.CollectionBudgets)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_WriteAll(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `documents`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `documents`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.WriteAll(
		Write{Name: models.CollectionStudents, Data: []byte("[]")},
		Write{Name: models.CollectionStudentCashLog, Data: []byte("[]")},
	)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStore_WriteAllRollsBack(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `documents`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `documents`").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.WriteAll(
		Write{Name: models.CollectionStudents, Data: []byte("[]")},
		Write{Name: models.CollectionLabCash, Data: []byte("[]")},
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, models.CollectionLabCash, ioErr.Collection)
	require.NoError(t, mock.ExpectationsWereMet())
}
