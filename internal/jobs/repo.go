package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"findoc/internal/analysis"
)

var ErrNotFound = errors.New("job not found")

const defaultLease = 5 * time.Minute

// Repo is the durable job store. All mutation goes through the state
// machine: Enqueue writes PENDING, Claim is the only PENDING->RUNNING
// transition, and the Mark methods are the only terminal writes.
type Repo struct {
	DB *gorm.DB

	// Lease bounds how long a RUNNING job may hold its claim before a
	// crashed worker's job is requeued. Zero means defaultLease.
	Lease time.Duration
}

// Enqueue durably records a new PENDING job and returns its id. It never
// waits on job execution.
func (r *Repo) Enqueue(ctx context.Context, kind analysis.Kind, query, filename string, payload []byte) (string, error) {
	j := Job{
		ID:       uuid.NewString(),
		Kind:     string(kind),
		Query:    query,
		Filename: filename,
		Payload:  payload,
		Status:   StatusPending,
	}
	if err := r.DB.WithContext(ctx).Create(&j).Error; err != nil {
		return "", err
	}
	return j.ID, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Job, error) {
	var job Job
	err := r.DB.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Claim atomically takes the oldest PENDING job, marks it RUNNING and
// records the claiming worker. FOR UPDATE SKIP LOCKED guarantees no two
// workers ever claim the same job. Expired RUNNING leases are requeued
// first, so a worker that died mid-job does not strand it.
// Returns (nil, nil) when no job is due.
func (r *Repo) Claim(ctx context.Context, workerID string) (*Job, error) {
	lease := r.Lease
	if lease <= 0 {
		lease = defaultLease
	}

	var job Job
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requeue := tx.Exec(`
update jobs
set status=?, locked_by=null, locked_at=null, updated_at=now()
where status=? and locked_at is not null and locked_at < now() - make_interval(secs => ?)
`, StatusPending, StatusRunning, lease.Seconds())
		if requeue.Error != nil {
			return fmt.Errorf("requeue expired leases: %w", requeue.Error)
		}

		q := tx.Raw(`
with cte as (
  select id
  from jobs
  where status=?
  order by created_at asc
  for update skip locked
  limit 1
)
update jobs
set status=?, locked_by=?, locked_at=now(), updated_at=now()
where id in (select id from cte)
returning *;
`, StatusPending, StatusRunning, workerID)

		return q.Scan(&job).Error
	})
	if err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, nil
	}
	return &job, nil
}

// MarkSucceeded writes the terminal SUCCEEDED state with the normalized
// result. The status guard keeps terminal states write-once.
func (r *Repo) MarkSucceeded(ctx context.Context, id string, result json.RawMessage) error {
	return r.DB.WithContext(ctx).Exec(
		`update jobs set status=?, result=?, updated_at=now() where id=? and status=?`,
		StatusSucceeded, result, id, StatusRunning,
	).Error
}

func (r *Repo) MarkFailed(ctx context.Context, id, errMsg string) error {
	return r.DB.WithContext(ctx).Exec(
		`update jobs set status=?, last_error=?, updated_at=now() where id=? and status=?`,
		StatusFailed, errMsg, id, StatusRunning,
	).Error
}
