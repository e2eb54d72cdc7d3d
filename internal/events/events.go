package events

type Kind string

const (
	KindMount   = Kind("mount")
	KindUnmount = Kind("unmount")
	KindSpawn   = Kind("spawn")
	KindClick   = Kind("click")
)

// Event is emitted by an engine. Hits and Score are set for KindClick.
type Event struct {
	Kind      Kind
	SessionID string
	Hits      int
	Score     int
}

type Publisher interface {
	Publish(ev Event)
}

type Bus struct {
	Events chan Event
}

func NewBus(size int) *Bus {
	if size <= 0 {
		size = 10
	}
	return &Bus{
		Events: make(chan Event, size),
	}
}

// Publish never blocks; events are dropped while the buffer is full.
func (b *Bus) Publish(ev Event) {
	select {
	case b.Events <- ev:
	default:
	}
}
