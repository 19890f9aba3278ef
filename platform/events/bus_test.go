package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"corpintel_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncRunsHandlersInOrder(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var order []int
	bus.Subscribe("evt", HandlerFunc(func(context.Context, Event) error {
		order = append(order, 1)
		return nil
	}))
	bus.Subscribe("evt", HandlerFunc(func(context.Context, Event) error {
		order = append(order, 2)
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "evt"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("handlers ran out of order: %v", order)
	}
}

func TestPublishSyncStopsOnFirstError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	boom := errors.New("boom")
	ran := false
	bus.Subscribe("evt", HandlerFunc(func(context.Context, Event) error { return boom }))
	bus.Subscribe("evt", HandlerFunc(func(context.Context, Event) error {
		ran = true
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "evt"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected first handler error, got %v", err)
	}
	if ran {
		t.Fatalf("expected second handler skipped after error")
	}
}

func TestPublishAsyncDelivers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	done := make(chan struct{})
	bus.Subscribe("evt", HandlerFunc(func(context.Context, Event) error {
		close(done)
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "evt"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("async handler never ran")
	}
}

func TestPublishSurvivesPanickingHandler(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	done := make(chan struct{})
	bus.Subscribe("evt", HandlerFunc(func(context.Context, Event) error {
		panic("handler bug")
	}))
	bus.Subscribe("evt", HandlerFunc(func(context.Context, Event) error {
		close(done)
		return nil
	}))

	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "evt"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("panicking sibling must not block other handlers")
	}
}

func TestPublishNoSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	bus.Publish(context.Background(), testEvent{NewBaseEvent(), "nobody"})
	if err := bus.PublishSync(context.Background(), testEvent{NewBaseEvent(), "nobody"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
