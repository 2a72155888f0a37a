package navigation

import "sync"

// EventKind identifies what made geometry change.
type EventKind int

const (
	EventMount EventKind = iota
	EventScroll
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventMount:
		return "mount"
	case EventScroll:
		return "scroll"
	case EventResize:
		return "resize"
	default:
		return "unknown"
	}
}

// Event is delivered by the host whenever the engine should recompute.
type Event struct {
	Kind EventKind
}

// EventSource delivers host events. The returned func removes the listener.
type EventSource interface {
	Subscribe(fn func(Event)) (unsubscribe func())
}

// Dispatcher is an in-process EventSource.
type Dispatcher struct {
	mu        sync.Mutex
	next      int
	listeners map[int]func(Event)
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[int]func(Event))}
}

// Subscribe registers fn until the returned func is called.
func (d *Dispatcher) Subscribe(fn func(Event)) func() {
	d.mu.Lock()
	id := d.next
	d.next++
	d.listeners[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.listeners, id)
		d.mu.Unlock()
	}
}

// Emit calls every listener in subscription order.
func (d *Dispatcher) Emit(ev Event) {
	d.mu.Lock()
	fns := make([]func(Event), 0, len(d.listeners))
	for id := 0; id < d.next; id++ {
		if fn, ok := d.listeners[id]; ok {
			fns = append(fns, fn)
		}
	}
	d.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// Len returns the number of installed listeners.
func (d *Dispatcher) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.listeners)
}

// Activate subscribes the engine to src so scroll and resize both run
// Refresh, then performs the initial mount refresh. onChange, if set,
// receives each new snapshot. The returned release is idempotent and must be
// called on teardown.
func (e *Engine) Activate(src EventSource, onChange func(State)) (release func()) {
	handle := func(Event) {
		st := e.Refresh()
		if onChange != nil {
			onChange(st)
		}
	}

	unsubscribe := src.Subscribe(handle)
	handle(Event{Kind: EventMount})

	var once sync.Once
	return func() {
		once.Do(unsubscribe)
	}
}
