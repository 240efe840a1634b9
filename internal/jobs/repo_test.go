package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (*Repo, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	return &Repo{DB: gdb, Lease: time.Minute}, mock
}

func TestRepoClaim_RequeueFailureSurfaces(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("update jobs").WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	job, err := repo.Claim(context.Background(), "worker-1")

	require.Error(t, err)
	assert.Nil(t, job)
	assert.Contains(t, err.Error(), "requeue expired leases")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoClaim_ReturnsClaimedJob(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "kind", "query", "filename", "payload", "status",
		"locked_by", "locked_at", "created_at", "updated_at",
	}).AddRow(
		"job-1", "risk", "evaluate exposure", "financial_document_x.pdf", []byte("%PDF"),
		StatusRunning, "worker-1", now, now, now,
	)

	mock.ExpectBegin()
	mock.ExpectExec("update jobs").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("with cte as").WillReturnRows(rows)
	mock.ExpectCommit()

	job, err := repo.Claim(context.Background(), "worker-1")

	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, StatusRunning, job.Status)
	require.NotNil(t, job.LockedBy)
	assert.Equal(t, "worker-1", *job.LockedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepoClaim_NoPendingJobs(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("update jobs").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("with cte as").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectCommit()

	job, err := repo.Claim(context.Background(), "worker-1")

	require.NoError(t, err)
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}
