package viz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFirstComerWins(t *testing.T) {
	a := NewArbiter()

	assert.True(t, a.Register("a", 0))
	assert.True(t, a.IsOwner("a"))

	// equal priority does not preempt
	assert.False(t, a.Register("b", 0))
	owner, ok := a.Owner()
	require.True(t, ok)
	assert.Equal(t, "a", owner)
}

func TestRegisterStrictPreemption(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("a", 0))
	assert.True(t, a.Register("b", 1))
	assert.True(t, a.IsOwner("b"))
	assert.False(t, a.IsOwner("a"))
}

func TestRegisterIdempotentForOwner(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("a", 5))
	assert.True(t, a.Register("a", 5))
	assert.True(t, a.Register("a", 1)) // owner keeps the slot even at a lower priority
	assert.True(t, a.IsOwner("a"))
}

func TestRegisterEmptyIDDenied(t *testing.T) {
	a := NewArbiter()

	assert.False(t, a.Register("", 10))
	_, ok := a.Owner()
	assert.False(t, ok)
}

func TestUnregisterPromotesHighestPriority(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("a", 0))
	require.True(t, a.Register("b", 1))
	require.False(t, a.Register("c", 0))

	events, cancel := a.Subscribe()
	defer cancel()

	a.Unregister("b")

	owner, ok := a.Owner()
	require.True(t, ok)
	// a and c tie at priority 0; a registered first
	assert.Equal(t, "a", owner)

	select {
	case id := <-events:
		assert.Equal(t, "a", id)
	default:
		t.Fatal("expected a restoration event")
	}
}

func TestUnregisterSoleRegistrant(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("a", 0))

	events, cancel := a.Subscribe()
	defer cancel()

	a.Unregister("a")

	_, ok := a.Owner()
	assert.False(t, ok)
	select {
	case id := <-events:
		t.Fatalf("expected no event with empty registry, got %q", id)
	default:
	}
}

func TestUnregisterUnknownIDIsNoop(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("a", 0))

	events, cancel := a.Subscribe()
	defer cancel()

	a.Unregister("never-registered")

	assert.True(t, a.IsOwner("a"))
	select {
	case <-events:
		t.Fatal("expected no event for unknown id")
	default:
	}
}

func TestUnregisterNonOwnerNoNotification(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("a", 1))
	require.False(t, a.Register("b", 0))

	events, cancel := a.Subscribe()
	defer cancel()

	a.Unregister("b")

	assert.True(t, a.IsOwner("a"))
	select {
	case <-events:
		t.Fatal("expected no event when a non-owner leaves")
	default:
	}
}

func TestDeniedRegisterStillUpdatesPriority(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("a", 5))
	require.False(t, a.Register("b", 1))
	require.False(t, a.Register("c", 3))

	// b raises its priority while denied; the stored value must win promotion
	require.False(t, a.Register("b", 4))

	a.Unregister("a")

	owner, ok := a.Owner()
	require.True(t, ok)
	assert.Equal(t, "b", owner)
}

func TestSubscribeAllSubscribersNotified(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("a", 0))
	require.False(t, a.Register("b", 0))

	first, cancelFirst := a.Subscribe()
	second, cancelSecond := a.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	a.Unregister("a")

	for _, ch := range []<-chan string{first, second} {
		select {
		case id := <-ch:
			assert.Equal(t, "b", id)
		default:
			t.Fatal("expected every subscriber to see the promotion")
		}
	}
}

func TestSubscribeCancelStopsDelivery(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("a", 0))
	require.False(t, a.Register("b", 0))

	events, cancel := a.Subscribe()
	cancel()

	a.Unregister("a")

	select {
	case <-events:
		t.Fatal("expected no delivery after cancel")
	default:
	}
}

func TestContentionChainOwnerAlwaysMaxPriority(t *testing.T) {
	a := NewArbiter()

	require.True(t, a.Register("low", 0))
	require.True(t, a.Register("mid", 5))
	require.False(t, a.Register("alsoMid", 5))
	require.True(t, a.Register("high", 9))

	a.Unregister("high")
	owner, _ := a.Owner()
	assert.Equal(t, "mid", owner)

	a.Unregister("mid")
	owner, _ = a.Owner()
	assert.Equal(t, "alsoMid", owner)

	a.Unregister("alsoMid")
	owner, _ = a.Owner()
	assert.Equal(t, "low", owner)

	a.Unregister("low")
	_, ok := a.Owner()
	assert.False(t, ok)
}
