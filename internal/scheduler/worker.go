package scheduler

import (
	"context"
	"fmt"

	"corpintel_backend/platform/config"
	"corpintel_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// EnrichmentSaver is the CRM dependency of the push worker.
type EnrichmentSaver interface {
	SaveEnrichment(ctx context.Context, report any) error
}

// Worker runs queued background jobs.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	crm    EnrichmentSaver
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, crm EnrichmentSaver, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		crm:    crm,
		log:    log,
	}

	mux.HandleFunc(TaskCRMPush, w.handleCRMPush)

	return w, nil
}

func (w *Worker) handleCRMPush(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCRMPushPayload(task)
	if err != nil {
		return err
	}

	if err := w.crm.SaveEnrichment(ctx, payload.Report); err != nil {
		w.log.Error("crm push failed", "scanId", payload.ScanID, "domain", payload.Domain, "error", err)
		return err
	}

	w.log.Info("crm push complete", "scanId", payload.ScanID, "domain", payload.Domain)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
