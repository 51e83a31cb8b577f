package eventbus

import (
	"testing"
	"time"
)

func recv(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
		return nil
	}
}

func TestBus_FanOut(t *testing.T) {
	bus := New()
	defer bus.Close()

	a := bus.Subscribe()
	b := bus.Subscribe()

	bus.Publish("hello")
	if got := recv(t, a); got != "hello" {
		t.Fatalf("subscriber a got %v", got)
	}
	if got := recv(t, b); got != "hello" {
		t.Fatalf("subscriber b got %v", got)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatalf("channel should be closed after Unsubscribe")
	}
	// publishing after unsubscribe must not panic
	bus.Publish("orphan")
}

func TestBus_NonBlockingPublish(t *testing.T) {
	bus := New()
	defer bus.Close()

	sub := bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			bus.Publish(i)
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
	// the buffer keeps the earliest events
	if got := recv(t, sub); got != 0 {
		t.Fatalf("first buffered event = %v", got)
	}
}

func TestBus_Close(t *testing.T) {
	bus := New()
	sub := bus.Subscribe()
	bus.Close()

	if _, ok := <-sub; ok {
		t.Fatalf("channel should be closed after Close")
	}
	bus.Publish("late")
	if late := bus.Subscribe(); late == nil {
		t.Fatalf("Subscribe after Close must return a closed channel, not nil")
	} else if _, ok := <-late; ok {
		t.Fatalf("channel subscribed after Close should be closed")
	}
	bus.Close()
}
