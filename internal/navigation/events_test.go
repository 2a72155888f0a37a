package navigation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivate_MountScrollResize(t *testing.T) {
	host := abcHost(0)
	e, err := New(abcSections(), host)
	require.NoError(t, err)

	d := NewDispatcher()
	var seen []State
	release := e.Activate(d, func(st State) { seen = append(seen, st) })
	defer release()

	require.Len(t, seen, 1, "activation performs the initial mount refresh")
	assert.Equal(t, "A", seen[0].CurrentSectionID)
	assert.InDelta(t, 50, seen[0].Progress("A"), 1e-9)

	host.offset = 120
	d.Emit(Event{Kind: EventScroll})
	require.Len(t, seen, 2)
	assert.Equal(t, "B", seen[1].CurrentSectionID)

	// A resize changes viewport height and section heights; it takes the
	// same recomputation path as scroll.
	host.viewport = 100
	host.geometry["B"] = Geometry{OffsetTop: 100, Height: 200}
	d.Emit(Event{Kind: EventResize})
	require.Len(t, seen, 3)
	assert.InDelta(t, 50, seen[2].Progress("B"), 1e-9)
}

func TestActivate_ReleaseRemovesListener(t *testing.T) {
	host := abcHost(0)
	e, err := New(abcSections(), host)
	require.NoError(t, err)

	d := NewDispatcher()
	calls := 0
	release := e.Activate(d, func(State) { calls++ })
	assert.Equal(t, 1, d.Len())

	release()
	release() // idempotent
	assert.Equal(t, 0, d.Len())

	host.offset = 150
	d.Emit(Event{Kind: EventScroll})
	assert.Equal(t, 1, calls, "no recomputation after release")
	assert.Equal(t, "A", e.Current())
}

func TestActivate_NilOnChange(t *testing.T) {
	host := abcHost(220)
	e, err := New(abcSections(), host)
	require.NoError(t, err)

	d := NewDispatcher()
	release := e.Activate(d, nil)
	defer release()
	assert.Equal(t, "C", e.Current())
}

func TestDispatcher_OrderAndConcurrency(t *testing.T) {
	d := NewDispatcher()
	var mu sync.Mutex
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		d.Subscribe(func(Event) {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		})
	}
	d.Emit(Event{Kind: EventScroll})
	assert.Equal(t, []int{0, 1, 2}, order)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); d.Emit(Event{Kind: EventResize}) }()
		go func() { defer wg.Done(); d.Subscribe(func(Event) {})() }()
	}
	wg.Wait()
	assert.Equal(t, 3, d.Len())
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "mount", EventMount.String())
	assert.Equal(t, "scroll", EventScroll.String())
	assert.Equal(t, "resize", EventResize.String())
	assert.Equal(t, "unknown", EventKind(99).String())
}
