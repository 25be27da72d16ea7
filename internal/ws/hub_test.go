package ws

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func TestPublishEnqueuesEnvelope(t *testing.T) {
	h := NewHub(zap.NewNop())

	h.Publish("stock_update", "incoming", "added 3", map[string]int{"new_stock": 3})

	select {
	case raw := <-h.Broadcast:
		var evt Event
		if err := json.Unmarshal(raw, &evt); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if evt.ID == "" {
			t.Error("expected event id to be set")
		}
		if evt.Type != "stock_update" || evt.Action != "incoming" {
			t.Errorf("unexpected envelope: %+v", evt)
		}
	default:
		t.Fatal("expected an event in the broadcast buffer")
	}
}

func TestPublishDoesNotBlockWhenFull(t *testing.T) {
	h := NewHub(zap.NewNop())

	for i := 0; i < cap(h.Broadcast)+10; i++ {
		h.Publish("stock_update", "incoming", "", nil)
	}

	if got := len(h.Broadcast); got != cap(h.Broadcast) {
		t.Fatalf("expected full buffer of %d, got %d", cap(h.Broadcast), got)
	}
}

func TestStopEndsRun(t *testing.T) {
	h := NewHub(zap.NewNop())
	finished := make(chan struct{})
	go func() {
		h.Run()
		close(finished)
	}()

	h.Stop()
	h.Stop()
	<-finished

	if h.ClientCount() != 0 {
		t.Fatal("expected no clients after stop")
	}
}
