// Package scheduler queues and runs background jobs over asynq.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskCRMPush = "crm.push"

// CRMPushPayload carries one finished enrichment report to the push worker.
type CRMPushPayload struct {
	ScanID string          `json:"scanId"`
	Domain string          `json:"domain"`
	Report json.RawMessage `json:"report"`
}

func NewCRMPushTask(payload CRMPushPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCRMPush, data, asynq.MaxRetry(5)), nil
}

func ParseCRMPushPayload(task *asynq.Task) (CRMPushPayload, error) {
	var payload CRMPushPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return CRMPushPayload{}, err
	}
	return payload, nil
}
