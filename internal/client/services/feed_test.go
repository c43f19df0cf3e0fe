package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeed_SubscribeGetsCurrentValue(t *testing.T) {
	f := newFeed(1)
	f.publish(2)

	ch, cancel := f.subscribe()
	defer cancel()

	assert.Equal(t, 2, <-ch)
}

func TestFeed_CoalescesUnreadValues(t *testing.T) {
	f := newFeed(0)
	ch, cancel := f.subscribe()
	defer cancel()

	f.publish(1)
	f.publish(2)
	f.publish(3)

	assert.Equal(t, 3, <-ch)
	select {
	case v := <-ch:
		t.Fatalf("unexpected extra value %d", v)
	default:
	}
}

func TestFeed_CancelClosesAndIsIdempotent(t *testing.T) {
	f := newFeed("a")
	ch, cancel := f.subscribe()
	<-ch

	cancel()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	f.publish("b")
	assert.Equal(t, "b", f.current())
}
