// Package game implements the per-tick simulation: entities, difficulty,
// spawning, collisions, scoring and the session state machine.
// It never draws, plays sound or touches storage; collaborators consume
// snapshots and semantic events instead.
package game

import "math/rand"

// Spawner allows entities to spawn new entities during update.
type Spawner interface {
	Spawn(e Entity)
}

// Controls is the polled input for one tick.
// Movement and fire are level-triggered; Launch, Pause and Retry are
// edge-triggered and true only on the tick the key was newly pressed.
type Controls struct {
	Left, Right, Up, Down bool
	Fire                  bool

	Launch bool
	Pause  bool
	Retry  bool

	// Click is set on the tick the pointer was pressed at (PointerX, PointerY).
	Click              bool
	PointerX, PointerY float64
}

// UpdateContext provides all the information an entity needs during update.
type UpdateContext struct {
	Frame     int // Current tick number
	Controls  Controls
	StarSpeed float64 // Background scroll multiplier
	Rand      *rand.Rand
	Spawner   Spawner
}

// Entity is an updatable game object.
// Update advances the entity by one tick and reports whether it should be removed.
type Entity interface {
	Update(ctx UpdateContext) (remove bool)
}

// Collider is implemented by entities that take part in circle collisions.
type Collider interface {
	Position() (x, y float64)
	Radius() float64
}

// updateAll updates every entity and drops the ones that request removal,
// reusing the backing array.
func updateAll[T Entity](items []T, ctx UpdateContext) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.Update(ctx) {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

// randRange returns a uniform value in [lo, hi).
func randRange(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
