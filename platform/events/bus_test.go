package events

import (
	"context"
	"errors"
	"testing"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var order []string
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, evt Event) error {
		order = append(order, "first")
		return errors.New("first failed")
	}))
	bus.Subscribe("thing.happened", HandlerFunc(func(ctx context.Context, evt Event) error {
		order = append(order, "second")
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "thing.happened"})
	if err == nil || err.Error() != "first failed" {
		t.Fatalf("expected the first handler error, got %v", err)
	}
	if len(order) != 2 {
		t.Fatalf("all handlers must run despite an earlier failure, got %v", order)
	}
}

func TestPublishSyncWithoutSubscribers(t *testing.T) {
	bus := NewInMemoryBus(nil)
	if err := bus.PublishSync(context.Background(), testEvent{name: "nobody.cares"}); err != nil {
		t.Fatalf("publishing without subscribers should be a no-op, got %v", err)
	}
}

func TestSubscribersAreScopedByEventName(t *testing.T) {
	bus := NewInMemoryBus(nil)

	called := false
	bus.Subscribe("a", HandlerFunc(func(ctx context.Context, evt Event) error {
		called = true
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{name: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Fatal("handler for a different event name must not run")
	}
}
