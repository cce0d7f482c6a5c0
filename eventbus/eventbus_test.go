package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSubscriberReceivesOwnTopic(t *testing.T) {
	bus := New(4)
	sub := bus.Subscribe("game-1")
	defer sub.Close()

	bus.PublishGame("game-1", Event{Kind: GameUpdated, GameID: "game-1"})

	select {
	case ev := <-sub.C:
		assert.Equal(t, GameUpdated, ev.Kind)
		assert.Equal(t, "game-1", ev.GameID)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscriberIgnoresOtherGames(t *testing.T) {
	bus := New(4)
	sub := bus.Subscribe("game-1")
	defer sub.Close()

	bus.PublishGame("game-2", Event{Kind: GameUpdated, GameID: "game-2"})

	select {
	case ev := <-sub.C:
		t.Fatalf("unexpected event delivered: %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGlobalSubscriberSeesEveryGame(t *testing.T) {
	bus := New(4)
	sub := bus.Subscribe(GlobalTopic)
	defer sub.Close()

	bus.PublishGame("game-1", Event{Kind: GameCreated, GameID: "game-1"})
	bus.PublishGame("game-2", Event{Kind: GameCreated, GameID: "game-2"})

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		select {
		case ev := <-sub.C:
			seen[ev.GameID] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
	assert.True(t, seen["game-1"])
	assert.True(t, seen["game-2"])
}

// TestFullQueueDropsRatherThanBlocks fills a subscriber's queue to
// capacity then publishes one more event; the publish must return
// immediately rather than block on the stalled consumer.
func TestFullQueueDropsRatherThanBlocks(t *testing.T) {
	bus := New(1)
	sub := bus.Subscribe("game-1")
	defer sub.Close()

	bus.PublishGame("game-1", Event{Kind: GameUpdated, GameID: "game-1"})

	var g errgroup.Group
	g.Go(func() error {
		bus.PublishGame("game-1", Event{Kind: GameUpdated, GameID: "game-1"})
		return nil
	})

	err := make(chan error, 1)
	go func() { err <- g.Wait() }()

	select {
	case e := <-err:
		require.NoError(t, e)
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber queue")
	}
}

func TestCloseDeregisters(t *testing.T) {
	bus := New(4)
	sub := bus.Subscribe("game-1")
	sub.Close()

	bus.PublishGame("game-1", Event{Kind: GameUpdated, GameID: "game-1"})

	_, ok := <-sub.C
	assert.False(t, ok, "channel should be closed")
}
