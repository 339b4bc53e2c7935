package resilience

import (
	"context"
	"testing"
)

// All notifier tests run without Redis: a nil client exercises the local
// dispatch path, which is also what a single-process deployment uses.

func TestNotifierLocalDispatchOrder(t *testing.T) {
	n := NewNotifier(nil, nil)
	n.Connect(context.Background())
	defer n.Disconnect()

	var order []string
	n.Subscribe(EntityChannel("claims"), func(ev Event) {
		order = append(order, "entity")
	})
	n.Subscribe(ChannelDataChanged, func(ev Event) {
		order = append(order, "general")
	})

	n.Publish(context.Background(), Event{Entity: "claims", Action: ActionCreated, ID: "c1"})

	if len(order) != 2 || order[0] != "entity" || order[1] != "general" {
		t.Fatalf("dispatch order = %v, want [entity general]", order)
	}
}

func TestNotifierEventCarriesTimestamp(t *testing.T) {
	n := NewNotifier(nil, nil)
	var got Event
	n.Subscribe(EntityChannel("quotes"), func(ev Event) { got = ev })
	n.Publish(context.Background(), Event{Entity: "quotes", Action: ActionUpdated, ID: "q1"})
	if got.At.IsZero() {
		t.Fatal("Publish must stamp events that carry no timestamp")
	}
	if got.ID != "q1" || got.Action != ActionUpdated {
		t.Fatalf("unexpected event %+v", got)
	}
}

func TestNotifierUnsubscribe(t *testing.T) {
	n := NewNotifier(nil, nil)
	calls := 0
	token := n.Subscribe(EntityChannel("claims"), func(ev Event) { calls++ })
	n.Publish(context.Background(), Event{Entity: "claims", Action: ActionCreated, ID: "a"})
	n.Unsubscribe(EntityChannel("claims"), token)
	n.Publish(context.Background(), Event{Entity: "claims", Action: ActionCreated, ID: "b"})
	if calls != 1 {
		t.Fatalf("listener fired %d times, want 1", calls)
	}
}

func TestNotifierUnsubscribeUnknownIsIgnored(t *testing.T) {
	n := NewNotifier(nil, nil)
	n.Unsubscribe("data:nope", 99) // must not panic
	n.Unsubscribe(EntityChannel("claims"), 12345)
}

func TestNotifierPanickingListenerIsIsolated(t *testing.T) {
	n := NewNotifier(nil, nil)
	ran := false
	n.Subscribe(EntityChannel("claims"), func(ev Event) { panic("listener bug") })
	n.Subscribe(EntityChannel("claims"), func(ev Event) { ran = true })
	n.Publish(context.Background(), Event{Entity: "claims", Action: ActionDeleted, ID: "x"})
	if !ran {
		t.Fatal("a panicking listener starved the listeners after it")
	}
}

func TestNotifierConnectDisconnectIdempotent(t *testing.T) {
	n := NewNotifier(nil, nil)
	ctx := context.Background()
	n.Connect(ctx)
	n.Connect(ctx) // second connect is a no-op
	n.Disconnect()
	n.Disconnect() // repeated teardown with zero registrations is safe
}

func TestNotifierDisconnectClearsRegistry(t *testing.T) {
	n := NewNotifier(nil, nil)
	calls := 0
	n.Subscribe(ChannelDataChanged, func(ev Event) { calls++ })
	n.Disconnect()
	n.Publish(context.Background(), Event{Entity: "claims", Action: ActionCreated, ID: "z"})
	if calls != 0 {
		t.Fatal("Disconnect must clear listener registrations")
	}
}
