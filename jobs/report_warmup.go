package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lumengrid/lumengrid-quote/internal/reporting"
)

// ReportWarmupJob invalidates and rebuilds the sales summary cache so the
// first dashboard read after a quotation change does not pay the aggregate
// query cost.
type ReportWarmupJob struct {
	Reports *reporting.Service
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewReportWarmupJob initialises the warmup handler.
func NewReportWarmupJob(reports *reporting.Service, logger *slog.Logger) *ReportWarmupJob {
	return &ReportWarmupJob{
		Reports: reports,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the warmup logic.
func (j *ReportWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Reports == nil {
		return errors.New("report warmup: handler not configured")
	}
	var payload ReportWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	start := j.clock()
	logger := j.logger()
	logger.Info("starting report warmup")

	if err := j.Reports.Invalidate(ctx); err != nil {
		logger.Error("cache bump failed", slog.Any("error", err))
		return err
	}
	summary, err := j.Reports.SalesSummary(ctx, payload.From, payload.To)
	if err != nil {
		logger.Error("warmup rebuild failed", slog.Any("error", err))
		return err
	}

	logger.Info("completed report warmup",
		slog.Int("owners", len(summary.Owners)),
		slog.Int64("quotes", summary.TotalQuotes),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (j *ReportWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
