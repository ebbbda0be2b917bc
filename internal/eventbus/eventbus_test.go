package eventbus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Publish("hello")
	select {
	case ev := <-sub:
		if ev != "hello" {
			t.Fatalf("unexpected event %v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
}

func TestPublishAfterCloseIsNoop(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	b.Close()
	b.Publish("late")
	if _, ok := <-sub; ok {
		t.Fatal("channel should be closed")
	}
}

func TestSlowSubscriberDropsOverflow(t *testing.T) {
	b := New()
	sub := b.Subscribe()
	for i := 0; i < subBuffer+5; i++ {
		b.Publish(i)
	}
	b.Close()

	var got []Event
	for ev := range sub {
		got = append(got, ev)
	}
	if len(got) != subBuffer {
		t.Fatalf("got %d events, want %d", len(got), subBuffer)
	}
	// The oldest events survive; the overflow is what gets dropped.
	for i, ev := range got {
		if ev != i {
			t.Fatalf("event %d is %v, want %d", i, ev, i)
		}
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	b := New()
	b.Subscribe() // never drained
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on slow subscriber")
	}
}
