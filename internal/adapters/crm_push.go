package adapters

import (
	"context"
	"encoding/json"

	domainevents "corpintel_backend/internal/events"
	"corpintel_backend/internal/scheduler"
	"corpintel_backend/platform/events"
	"corpintel_backend/platform/logger"
)

// CRMPushSubscriber queues a CRM push job whenever an enrichment scan
// completes. The push itself runs in the background worker so scan latency
// never depends on the CRM.
type CRMPushSubscriber struct {
	pusher scheduler.CRMPusher
	log    *logger.Logger
}

// NewCRMPushSubscriber creates the subscriber.
func NewCRMPushSubscriber(pusher scheduler.CRMPusher, log *logger.Logger) *CRMPushSubscriber {
	return &CRMPushSubscriber{pusher: pusher, log: log}
}

// Register subscribes the handler on the event bus.
func (s *CRMPushSubscriber) Register(bus events.Bus) {
	bus.Subscribe(domainevents.EnrichmentCompletedName, events.HandlerFunc(s.handle))
}

func (s *CRMPushSubscriber) handle(ctx context.Context, event events.Event) error {
	e, ok := event.(domainevents.EnrichmentCompleted)
	if !ok {
		return nil
	}

	report, err := json.Marshal(e.Report)
	if err != nil {
		s.log.Error("crm push payload marshal failed", "scanId", e.ScanID, "error", err)
		return nil
	}

	if err := s.pusher.EnqueueCRMPush(ctx, scheduler.CRMPushPayload{
		ScanID: e.ScanID,
		Domain: e.Domain,
		Report: report,
	}); err != nil {
		s.log.Error("crm push enqueue failed", "scanId", e.ScanID, "error", err)
	}
	return nil
}
