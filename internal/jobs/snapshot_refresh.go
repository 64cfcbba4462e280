package jobs

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sandwich1998/fl1pperb0nk/internal/wiki"
)

// SnapshotRefreshJob re-fetches the market snapshot so the loader's cache
// stays warm between interactive scans. Failures are logged and retried on
// the next tick; the upstream outage is never fatal here.
type SnapshotRefreshJob struct {
	loader  *wiki.Loader
	timeout time.Duration
	log     zerolog.Logger
}

// NewSnapshotRefreshJob creates the warm-refresh job.
func NewSnapshotRefreshJob(loader *wiki.Loader, log zerolog.Logger) *SnapshotRefreshJob {
	return &SnapshotRefreshJob{
		loader:  loader,
		timeout: 45 * time.Second,
		log:     log.With().Str("job", "snapshot_refresh").Logger(),
	}
}

// Name returns the job name
func (j *SnapshotRefreshJob) Name() string {
	return "snapshot_refresh"
}

// Run fetches a fresh snapshot, bounded by the job timeout.
func (j *SnapshotRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	snap, err := j.loader.Snapshot(ctx)
	if err != nil {
		return err
	}
	j.log.Debug().
		Int("items", len(snap.Items)).
		Int("quotes", len(snap.Quotes)).
		Msg("snapshot refreshed")
	return nil
}
