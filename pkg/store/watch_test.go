package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/moodlog/pkg/emotion"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsBucketChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	if err := p.PutEmotion(emotion.Definition{ID: "happy", Name: "Happy", Mode: emotion.ModeMandatory}); err != nil {
		t.Fatalf("put emotion: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	req := emotion.ChangeRequest{EmotionID: "happy", Date: emotion.MustDate("2024-03-05")}
	if _, err := p.SaveRecord(ctx, req, false); err != nil {
		t.Fatalf("save record: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventBucketChanged {
				if evt.Bucket != BucketRecords {
					t.Fatalf("expected bucket %q, got %q", BucketRecords, evt.Bucket)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for bucket change event")
		}
	}
}

func TestEventThrottleCoalescesBursts(t *testing.T) {
	throttle := newEventThrottle(20 * time.Millisecond)
	defer throttle.Stop()

	got := make(chan Event, 16)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 10; i++ {
		throttle.Enqueue(Event{Type: EventBucketChanged, Bucket: BucketRecords}, send)
	}

	select {
	case ev := <-got:
		if ev.Bucket != BucketRecords {
			t.Fatalf("unexpected bucket %q", ev.Bucket)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for flush")
	}

	select {
	case ev := <-got:
		t.Fatalf("expected a single event, got extra %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}
