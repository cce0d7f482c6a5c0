// Package eventbus implements the server's pub/sub fan-out: per-game
// topics plus a global topic, bounded per-subscriber queues, and
// non-blocking delivery so a slow consumer never stalls a publisher
// (spec §4.4, §5).
package eventbus

import "sync"

// GlobalTopic is the topic every event published through PublishGame
// (game_created, game_updated and game_deleted alike) is also published
// to, in addition to a game's own topic.
const GlobalTopic = "*"

// Kind names the event type carried in an Event.
type Kind string

const (
	GameCreated Kind = "game_created"
	GameUpdated Kind = "game_updated"
	GameDeleted Kind = "game_deleted"
)

// Event is one message delivered to subscribers. Data is whatever JSON
// payload accompanies the event: a GameView, a MoveOutcome, an
// ActionOutcome, or nil.
type Event struct {
	Kind   Kind
	GameID string
	Data   any
}

// DefaultQueueCapacity is the recommended per-subscriber queue size
// (spec §4.4).
const DefaultQueueCapacity = 64

// Subscriber receives events published to any topic it is registered on.
// Events arrive on C; a full queue causes the bus to drop the event for
// this subscriber rather than block the publisher.
type Subscriber struct {
	C      chan Event
	bus    *Bus
	topics map[string]struct{}
}

// Close deregisters the subscriber from every topic and closes its
// channel. Safe to call once; a second call is a no-op.
func (s *Subscriber) Close() {
	s.bus.unsubscribeAll(s)
}

// Bus is the shared pub/sub registry. The zero value is not usable; use
// New.
type Bus struct {
	mu            sync.Mutex
	subscribers   map[string]map[*Subscriber]struct{} // topic -> subscriber set
	queueCapacity int
}

// New returns a Bus whose subscribers get a queue of the given capacity.
// A capacity of 0 falls back to DefaultQueueCapacity.
func New(queueCapacity int) *Bus {
	if queueCapacity <= 0 {
		queueCapacity = DefaultQueueCapacity
	}
	return &Bus{
		subscribers:   make(map[string]map[*Subscriber]struct{}),
		queueCapacity: queueCapacity,
	}
}

// Subscribe registers a new Subscriber on the given topics (a game id, or
// GlobalTopic). Pass no topics to subscribe to nothing yet and add topics
// later is not supported; call Subscribe again with the desired set.
func (b *Bus) Subscribe(topics ...string) *Subscriber {
	sub := &Subscriber{
		C:      make(chan Event, b.queueCapacity),
		bus:    b,
		topics: make(map[string]struct{}, len(topics)),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, topic := range topics {
		sub.topics[topic] = struct{}{}
		if b.subscribers[topic] == nil {
			b.subscribers[topic] = make(map[*Subscriber]struct{})
		}
		b.subscribers[topic][sub] = struct{}{}
	}
	return sub
}

func (b *Bus) unsubscribeAll(sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if sub.topics == nil {
		return // already closed
	}
	for topic := range sub.topics {
		delete(b.subscribers[topic], sub)
		if len(b.subscribers[topic]) == 0 {
			delete(b.subscribers, topic)
		}
	}
	sub.topics = nil
	select {
	case <-sub.C:
	default:
	}
	close(sub.C)
}

// PublishGame publishes ev to the game's own topic and to GlobalTopic, a
// duplicate for any subscriber registered on both is delivered twice (the
// game topic and global topic are distinct subscriptions by design — spec
// §4.4 describes them as separate topics a subscriber opts into
// independently).
func (b *Bus) PublishGame(gameID string, ev Event) {
	b.publish(gameID, ev)
	b.publish(GlobalTopic, ev)
}

func (b *Bus) publish(topic string, ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subscribers[topic] {
		select {
		case sub.C <- ev:
		default:
			// Queue full: drop for this subscriber, never block the publisher.
		}
	}
}
