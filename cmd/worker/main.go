package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"corpintel_backend/internal/crm"
	"corpintel_backend/internal/scheduler"
	"corpintel_backend/platform/config"
	"corpintel_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env, "queue", cfg.GetAsynqQueueName())

	if !cfg.IsCRMPushEnabled() {
		panic("worker requires CRM push configuration (SAVE_ENRICHMENT_URL, TOKEN_OBTAIN_URL, credentials)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	crmClient := crm.NewClient(cfg, log)

	worker, err := scheduler.NewWorker(cfg, crmClient, log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
	log.Info("worker stopped")
}
