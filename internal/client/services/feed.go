package services

import "sync"

// feed fans the latest value out to subscribers. Each subscriber channel
// holds at most one value; an unread value is replaced by a newer one.
type feed[T any] struct {
	mu   sync.Mutex
	last T
	subs map[int]chan T
	next int
}

func newFeed[T any](initial T) *feed[T] {
	return &feed[T]{last: initial, subs: make(map[int]chan T)}
}

// subscribe returns a channel that starts with the current value. cancel
// closes the channel and is safe to call more than once.
func (f *feed[T]) subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan T, 1)
	ch <- f.last
	f.subs[id] = ch

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if c, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(c)
		}
	}
}

func (f *feed[T]) publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.last = v
	for _, ch := range f.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

func (f *feed[T]) current() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}
