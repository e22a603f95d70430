package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/creatorflow/internal/workspace"
)

const mediaMaxAge = 6 * time.Hour

// MaintenanceJob runs on a cron cadence: it releases stale session
// media buffers and writes a full snapshot of the persisted slices.
type MaintenanceJob struct {
	ws *workspace.Store
}

func NewMaintenanceJob(ws *workspace.Store) *MaintenanceJob {
	return &MaintenanceJob{ws: ws}
}

func (j *MaintenanceJob) Run() {
	released := j.ws.SweepMedia(mediaMaxAge)
	if released > 0 {
		slog.Info("released stale session media", "count", released)
	}
	j.ws.PersistAll(context.Background())
}
