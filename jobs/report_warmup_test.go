package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/lumengrid/lumengrid-quote/internal/reporting"
	"github.com/lumengrid/lumengrid-quote/internal/salesteam"
	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

type stubRollups struct {
	calls int
}

func (s *stubRollups) OwnerRollups(ctx context.Context, from, to *time.Time) ([]reporting.OwnerRollup, error) {
	s.calls++
	return []reporting.OwnerRollup{{OwnerID: uuid.New(), QuoteCount: 2, Revenue: 406392}}, nil
}

type stubUsers struct{}

func (stubUsers) Get(ctx context.Context, id uuid.UUID) (*salesteam.SalesUser, error) {
	return nil, shared.ErrNotFound
}

func (stubUsers) List(ctx context.Context) ([]salesteam.SalesUser, error) { return nil, nil }

func TestNewReportWarmupTask(t *testing.T) {
	task, err := NewReportWarmupTask(ReportWarmupPayload{RequestedAt: time.Now().UTC()})
	require.NoError(t, err)
	require.Equal(t, TaskReportWarmup, task.Type())
	require.NotEmpty(t, task.Payload())
}

func TestReportWarmupHandle(t *testing.T) {
	repo := &stubRollups{}
	reports := reporting.NewService(repo, stubUsers{}, reporting.NewCache(nil, time.Minute))
	job := NewReportWarmupJob(reports, nil)

	task, err := NewReportWarmupTask(ReportWarmupPayload{RequestedAt: time.Now().UTC()})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, 1, repo.calls)
}

func TestReportWarmupHandleBadPayload(t *testing.T) {
	job := NewReportWarmupJob(reporting.NewService(&stubRollups{}, stubUsers{}, nil), nil)
	err := job.Handle(context.Background(), asynq.NewTask(TaskReportWarmup, []byte("{not json")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestReportWarmupHandleUnconfigured(t *testing.T) {
	var job *ReportWarmupJob
	task, err := NewReportWarmupTask(ReportWarmupPayload{})
	require.NoError(t, err)
	require.Error(t, job.Handle(context.Background(), task))
}
