package queue

import (
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/creatorflow/internal/models"
)

const TaskTypePublishEvent = "schedule:publish"

type PublishEventPayload struct {
	EventID string `json:"event_id"`
	Day     string `json:"day"`
}

// Publisher pushes deferred publish tasks onto the asynq queue. It
// satisfies the workspace's SchedulePublisher hook.
type Publisher struct {
	client *asynq.Client
}

func NewPublisher(client *asynq.Client) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) EnqueuePublish(eventID string, day models.DayKey, at time.Time) error {
	payload, err := json.Marshal(PublishEventPayload{
		EventID: eventID,
		Day:     day.Encode(),
	})
	if err != nil {
		return err
	}

	delay := time.Until(at)
	if delay < 0 {
		delay = 0
	}

	task := asynq.NewTask(TaskTypePublishEvent, payload)
	if _, err := p.client.Enqueue(task, asynq.ProcessIn(delay)); err != nil {
		return err
	}

	log.Printf("Publish task scheduled: event=%s day=%s", eventID, day.Encode())
	return nil
}
