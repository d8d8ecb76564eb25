package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

func newAccessRequestRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAccessRequestRepositoryCreateDefaultsToPending(t *testing.T) {
	db, mock, cleanup := newAccessRequestRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO access_requests")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	request := &models.AccessRequest{UserID: "user-1", CourseID: "course-1"}
	err := repo.Create(context.Background(), request)
	require.NoError(t, err)
	require.Equal(t, models.AccessStatusPending, request.Status)
	require.NotEmpty(t, request.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessRequestRepositoryDecide(t *testing.T) {
	db, mock, cleanup := newAccessRequestRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE access_requests SET status = $2, decided_by = $3, decided_at = $4, updated_at = $4 WHERE id = $1 AND status = $5")).
		WithArgs("req-1", models.AccessStatusApproved, "admin-1", sqlmock.AnyArg(), models.AccessStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))

	decided, err := repo.Decide(context.Background(), "req-1", models.AccessStatusApproved, "admin-1")
	require.NoError(t, err)
	require.True(t, decided)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessRequestRepositoryDecideAlreadyDecided(t *testing.T) {
	db, mock, cleanup := newAccessRequestRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE access_requests SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	decided, err := repo.Decide(context.Background(), "req-1", models.AccessStatusRejected, "admin-1")
	require.NoError(t, err)
	require.False(t, decided)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessRequestRepositoryFindLatest(t *testing.T) {
	db, mock, cleanup := newAccessRequestRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "course_id", "status", "decided_by", "decided_at", "created_at", "updated_at"}).
		AddRow("req-2", "user-1", "course-1", models.AccessStatusPending, nil, nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, user_id, course_id, status, decided_by, decided_at, created_at, updated_at").
		WithArgs("user-1", "course-1").
		WillReturnRows(rows)

	request, err := repo.FindLatest(context.Background(), "user-1", "course-1")
	require.NoError(t, err)
	require.Equal(t, "req-2", request.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessRequestRepositoryCountPending(t *testing.T) {
	db, mock, cleanup := newAccessRequestRepoMock(t)
	defer cleanup()
	repo := NewAccessRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM access_requests WHERE status = $1")).
		WithArgs(models.AccessStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.CountPending(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
