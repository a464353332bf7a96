// Package watch provides a small change-notification primitive used by the
// local stores. Each store owns a Broadcaster and signals it after every
// successful write; observers subscribe and re-read store state on signal.
package watch

import (
	"context"
	"sync"
)

// Broadcaster fans out change signals to any number of subscribers.
// Signals carry no payload and coalesce: a subscriber that has not yet
// drained a pending signal will not queue another one.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan struct{}]struct{})}
}

// Subscribe registers a new subscriber. The returned channel receives a
// signal after every Notify until ctx is cancelled, at which point it is
// closed and removed.
func (b *Broadcaster) Subscribe(ctx context.Context) <-chan struct{} {
	ch := make(chan struct{}, 1)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Notify signals all current subscribers without blocking.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
