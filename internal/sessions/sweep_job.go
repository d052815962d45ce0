package sessions

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/daypass-backend/pkg/logger"
	"github.com/angelmondragon/daypass-backend/pkg/metrics"
)

const sweepJobName = "session-sweep"

// SweepJobParams configure the session sweep job.
type SweepJobParams struct {
	Store   Store
	Logger  *logger.Logger
	Metrics *metrics.CartMetrics
	Now     func() time.Time
}

// SweepJob drops expired sessions from stores that keep them indefinitely
// and refreshes the active session gauge.
type SweepJob struct {
	store   Store
	logg    *logger.Logger
	metrics *metrics.CartMetrics
	now     func() time.Time
}

// NewSweepJob builds the sweep job.
func NewSweepJob(params SweepJobParams) (*SweepJob, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &SweepJob{
		store:   params.Store,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

func (j *SweepJob) Name() string {
	return sweepJobName
}

func (j *SweepJob) Run(ctx context.Context) error {
	var errs error
	if exp, ok := j.store.(expirer); ok {
		removed, err := exp.DeleteExpired(ctx, j.now())
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete expired sessions: %w", err))
		} else if removed > 0 {
			j.metrics.SessionEvent("expired", removed)
			j.logg.Info(j.logg.WithField(ctx, "removed", removed), "session.swept")
		}
	}

	active, err := j.store.Count(ctx)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("count sessions: %w", err))
	} else {
		j.metrics.SetActiveSessions(active)
	}
	return errs
}
