package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subscribers[T any](b *Broker[T]) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker[string]()
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	require.Equal(t, 1, subscribers(b))

	b.Publish(CreatedEvent, "hello")

	select {
	case ev := <-ch:
		assert.Equal(t, CreatedEvent, ev.Type)
		assert.Equal(t, "hello", ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestBrokerUnsubscribeOnCancel(t *testing.T) {
	b := NewBroker[int]()
	defer b.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("channel not closed")
	}
	assert.Eventually(t, func() bool { return subscribers(b) == 0 }, time.Second, 10*time.Millisecond)
}

func TestBrokerShutdown(t *testing.T) {
	b := NewBroker[int]()
	ch := b.Subscribe(context.Background())
	b.Shutdown()

	_, ok := <-ch
	assert.False(t, ok)

	// publishing after shutdown is a no-op
	b.Publish(UpdatedEvent, 1)

	late := b.Subscribe(context.Background())
	_, ok = <-late
	assert.False(t, ok)
}

func TestBrokerPublishDuringUnsubscribe(t *testing.T) {
	b := NewBroker[int]()
	defer b.Shutdown()

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
				b.Publish(UpdatedEvent, i)
			}
		}
	}()

	for range 2000 {
		ctx, cancel := context.WithCancel(context.Background())
		ch := b.Subscribe(ctx)
		cancel()
		for range ch {
		}
	}
	close(stop)
	wg.Wait()

	assert.Equal(t, 0, subscribers(b))
}

func TestBrokerShutdownDuringPublish(t *testing.T) {
	b := NewBroker[int]()
	for range 50 {
		b.Subscribe(context.Background())
	}

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 1000 {
				b.Publish(CreatedEvent, w*1000+i)
			}
		}()
	}
	b.Shutdown()
	wg.Wait()

	assert.Equal(t, 0, subscribers(b))
}
