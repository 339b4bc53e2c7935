package resilience

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ChannelDataChanged is the general channel: every event is mirrored onto it
// in addition to its entity-specific channel.
const ChannelDataChanged = "data:changed"

// EntityChannel returns the channel name for one entity collection.
func EntityChannel(entity string) string { return "data:" + entity }

// WatchedEntities are the collections the notifier subscribes to on Connect.
var WatchedEntities = []string{
	"claims", "quotes", "consultations", "outsourcing", "diaspora", "payments", "resources",
}

// Actions carried by change events.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes a single insert/update/delete on an entity collection.
type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

// Listener receives change events. Listeners run synchronously in
// registration order; a panicking listener is isolated so the rest still run.
type Listener func(Event)

type registration struct {
	token int
	fn    Listener
}

// Notifier fans entity change events out to registered listeners. With a
// Redis client it bridges events across processes over pub/sub; with a nil
// client Publish dispatches to local listeners only, so a single-process
// deployment still gets change notifications. Subscription setup failures
// are logged and non-fatal: callers fall back to polling.
type Notifier struct {
	rdb *redis.Client
	log *zap.Logger

	mu        sync.Mutex
	nextToken int
	listeners map[string][]registration
	subs      []*redis.PubSub
	connected bool
	wg        sync.WaitGroup
}

// NewNotifier builds a Notifier. Both arguments may be nil.
func NewNotifier(rdb *redis.Client, log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{rdb: rdb, log: log, listeners: make(map[string][]registration)}
}

// Connect establishes one pub/sub subscription per watched entity. Calling
// it again while connected is a no-op. A missing Redis client disables the
// cross-process bridge but local dispatch keeps working.
func (n *Notifier) Connect(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.connected {
		return
	}
	if n.rdb == nil {
		n.log.Warn("change notifier: no redis client, cross-process events disabled")
		n.connected = true
		return
	}
	for _, entity := range WatchedEntities {
		ps := n.rdb.Subscribe(ctx, EntityChannel(entity))
		n.subs = append(n.subs, ps)
		n.wg.Add(1)
		go n.receive(ps)
	}
	n.connected = true
	n.log.Info("change notifier connected", zap.Int("channels", len(n.subs)))
}

// receive pumps one subscription until its channel closes on Disconnect.
func (n *Notifier) receive(ps *redis.PubSub) {
	defer n.wg.Done()
	for msg := range ps.Channel() {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			n.log.Warn("change notifier: bad event payload", zap.Error(err))
			continue
		}
		n.dispatch(ev)
	}
}

// Publish sends an event to the entity channel. Without Redis the event is
// dispatched directly to local listeners. Errors are logged, not returned:
// notification is best-effort and must never fail a mutation.
func (n *Notifier) Publish(ctx context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	if n.rdb == nil {
		n.dispatch(ev)
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		n.log.Warn("change notifier: marshal event failed", zap.Error(err))
		return
	}
	if err := n.rdb.Publish(ctx, EntityChannel(ev.Entity), body).Err(); err != nil {
		n.log.Warn("change notifier: publish failed",
			zap.String("entity", ev.Entity), zap.Error(err))
	}
}

// Subscribe registers fn on a channel and returns a token for Unsubscribe.
func (n *Notifier) Subscribe(channel string, fn Listener) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextToken++
	n.listeners[channel] = append(n.listeners[channel], registration{token: n.nextToken, fn: fn})
	return n.nextToken
}

// Unsubscribe removes the registration identified by token from a channel.
// Unknown channels and tokens are ignored.
func (n *Notifier) Unsubscribe(channel string, token int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	regs := n.listeners[channel]
	for i, r := range regs {
		if r.token == token {
			n.listeners[channel] = append(regs[:i:i], regs[i+1:]...)
			break
		}
	}
	if len(n.listeners[channel]) == 0 {
		delete(n.listeners, channel)
	}
}

// dispatch fires the entity-specific channel first, then the general one.
func (n *Notifier) dispatch(ev Event) {
	n.fire(EntityChannel(ev.Entity), ev)
	n.fire(ChannelDataChanged, ev)
}

// fire invokes every listener registered on channel in registration order.
// Each invocation is isolated so one panicking listener cannot starve the
// others.
func (n *Notifier) fire(channel string, ev Event) {
	n.mu.Lock()
	regs := make([]registration, len(n.listeners[channel]))
	copy(regs, n.listeners[channel])
	n.mu.Unlock()
	for _, r := range regs {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					n.log.Error("change notifier: listener panicked",
						zap.String("channel", channel), zap.Any("panic", rec))
				}
			}()
			r.fn(ev)
		}()
	}
}

// Disconnect closes all subscriptions, waits for their pumps to exit and
// clears the listener registry. Safe to call repeatedly and with zero
// registrations.
func (n *Notifier) Disconnect() {
	n.mu.Lock()
	subs := n.subs
	n.subs = nil
	n.listeners = make(map[string][]registration)
	n.connected = false
	n.mu.Unlock()
	for _, ps := range subs {
		_ = ps.Close()
	}
	n.wg.Wait()
}
