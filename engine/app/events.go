package app

import "github.com/1siamBot/solids/engine/config"

// Event is a user request queued by the UI.
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtRegenerate EventType = iota
	EvtClear
	EvtSelectExample // Payload: config.Example
	EvtInputChanged  // Payload: Inputs
)

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending reports the number of queued events.
func (eb *EventBus) Pending() int { return len(eb.queue) }

// Dispatch processes all queued events. Events emitted by handlers run on
// the next Dispatch.
func (eb *EventBus) Dispatch() {
	queue := eb.queue
	eb.queue = nil
	for _, e := range queue {
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
}

// Request helpers used by the UI.

func (a *App) RequestRegenerate() { a.Events.Emit(Event{Type: EvtRegenerate, Tick: a.tick}) }
func (a *App) RequestClear()      { a.Events.Emit(Event{Type: EvtClear, Tick: a.tick}) }

func (a *App) RequestExample(ex config.Example) {
	a.Events.Emit(Event{Type: EvtSelectExample, Tick: a.tick, Payload: ex})
}

func (a *App) RequestInputs(in Inputs) {
	a.Events.Emit(Event{Type: EvtInputChanged, Tick: a.tick, Payload: in})
}
