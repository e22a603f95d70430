package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/workspace"
)

// Worker flips scheduled calendar events to published when their time
// arrives.
type Worker struct {
	ws *workspace.Store
}

func NewWorker(ws *workspace.Store) *Worker {
	return &Worker{ws: ws}
}

func (w *Worker) HandlePublishEventTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishEventPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	day, err := models.ParseDayKey(payload.Day)
	if err != nil {
		return err
	}

	if !w.ws.MarkEventPublished(ctx, payload.EventID, day) {
		// Deleted or rescheduled since enqueueing; nothing to publish.
		slog.Info("scheduled event no longer exists", "event", payload.EventID)
	}
	return nil
}
