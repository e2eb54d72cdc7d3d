package targets

import (
	"sync"
	"time"
)

const (
	MaxTargets    = 10
	MinTargetSize = 10.0
	MaxTargetSize = 40.0
)

// Rand is the random source used for placement; *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type Store struct {
	mu       sync.Mutex
	targets  []*Target
	capacity int
	nextID   int
}

func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = MaxTargets
	}
	return &Store{
		targets:  make([]*Target, 0, capacity),
		capacity: capacity,
		nextID:   1,
	}
}

// Full reports whether the store holds its capacity of targets.
func (s *Store) Full() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.targets) >= s.capacity
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.targets)
}

// Spawn draws a radius in [MinTargetSize, MaxTargetSize) and places the
// target uniformly inside vp. It returns nil when the store is full or vp
// cannot hold the drawn circle.
func (s *Store) Spawn(vp Viewport, rnd Rand) *Target {
	if s.Full() {
		return nil
	}
	radius := MinTargetSize + rnd.Float64()*(MaxTargetSize-MinTargetSize)
	return s.Place(vp, radius, rnd)
}

// Place adds a target of the given radius at a uniform position inside vp.
func (s *Store) Place(vp Viewport, radius float64, rnd Rand) *Target {
	if vp.Empty() || !vp.Fits(radius) {
		return nil
	}
	x := radius + rnd.Float64()*(vp.Width-2*radius)
	y := radius + rnd.Float64()*(vp.Height-2*radius)
	return s.Add(x, y, radius)
}

// Add appends a target at (x, y). It returns nil when the store is full.
func (s *Store) Add(x, y, radius float64) *Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.targets) >= s.capacity {
		return nil
	}
	target := &Target{
		ID:        s.nextID,
		X:         x,
		Y:         y,
		Radius:    radius,
		SpawnedAt: time.Now(),
	}
	s.nextID++
	s.targets = append(s.targets, target)
	return target
}

// HitAt removes every target containing (x, y) and returns the removed ones.
func (s *Store) HitAt(x, y float64) []*Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	var hit []*Target
	kept := s.targets[:0]
	for _, t := range s.targets {
		if t.Contains(x, y) {
			hit = append(hit, t)
			continue
		}
		kept = append(kept, t)
	}
	clear(s.targets[len(kept):])
	s.targets = kept
	return hit
}

// GetList returns copies of the live targets in insertion order.
func (s *Store) GetList() []Target {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]Target, 0, len(s.targets))
	for _, t := range s.targets {
		list = append(list, *t)
	}
	return list
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.targets)
	s.targets = s.targets[:0]
	s.nextID = 1
}
