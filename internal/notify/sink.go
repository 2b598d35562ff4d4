package notify

import (
	"context"
	"encoding/json"
	"time"

	"petshop-loyalty/internal/infra/db"
	"petshop-loyalty/internal/pkg/errs"
	"petshop-loyalty/internal/usecase/shared"

	"github.com/google/uuid"
)

// Event topics emitted by the delivery pipeline.
const (
	TopicDeliveryScheduled = "deliveryScheduled"
	TopicStatusUpdate      = "statusUpdate"
	TopicLocationUpdate    = "locationUpdate"
)

type Event struct {
	Topic      string
	DeliveryID uuid.UUID
	Payload    map[string]any
}

// Sink publishes delivery events. Emit takes the caller's transaction handle
// so the event is recorded atomically with the state change it announces;
// the actual transport (sockets, webhooks) is an external collaborator
// draining the job table.
type Sink interface {
	Emit(ctx context.Context, dbtx db.DBTX, event Event) error
}

type JobSink struct {
	jobs shared.NotificationRepository
	now  func() time.Time
}

func NewJobSink(jobs shared.NotificationRepository, now func() time.Time) *JobSink {
	return &JobSink{jobs: jobs, now: now}
}

func (s *JobSink) Emit(ctx context.Context, dbtx db.DBTX, event Event) error {
	body := map[string]any{"delivery_id": event.DeliveryID}
	for k, v := range event.Payload {
		body[k] = v
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return errs.Wrap(err, "failed to marshal notification payload")
	}

	return s.jobs.CreateJob(ctx, dbtx, "push", event.Topic, payload, s.now())
}
