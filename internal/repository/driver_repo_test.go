package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkfleet/internal/models"
)

func TestDriverRepositoryListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM drivers")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "second_name", "status", "deleted_at", "created_at", "updated_at"}).
			AddRow(1, "Ivan", "Petrenko", models.DriverStatusOffline, nil, now, now).
			AddRow(2, "Olena", "Shevchenko", models.DriverStatusActive, nil, now, now))

	repo := NewDriverRepository(db)
	drivers, err := repo.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, drivers, 2)
	assert.Equal(t, "Ivan", drivers[0].FirstName)
	assert.Equal(t, models.DriverStatusActive, drivers[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepositoryLatestStatusRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM driver_status_records")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.DriverStatusWithClient))

	repo := NewDriverRepository(db)
	status, ok, err := repo.LatestStatusRecord(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, models.DriverStatusWithClient, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepositoryLatestStatusRecordMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM driver_status_records")).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	repo := NewDriverRepository(db)
	_, ok, err := repo.LatestStatusRecord(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, ok, "no rows is not an error, just no fallback")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDriverRepositoryUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE drivers")).
		WithArgs(int64(7), models.DriverStatusActive).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewDriverRepository(db)
	require.NoError(t, repo.UpdateStatus(context.Background(), 7, models.DriverStatusActive))
	assert.NoError(t, mock.ExpectationsWereMet())
}
