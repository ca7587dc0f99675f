package world

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/obj"
	"github.com/milk9111/adventure/render"
)

// DefaultCollisionRange is the per-axis distance under which an expiring
// object hits the player.
const DefaultCollisionRange = 32

var (
	ErrDuplicateID = errors.New("world: duplicate object id")
	ErrUnknownID   = errors.New("world: unknown object id")
)

// Registry owns spawned objects by identity and iterates them in
// registration order.
type Registry struct {
	objects map[int]obj.Object
	order   []int

	// CollisionRange overrides DefaultCollisionRange when positive.
	CollisionRange int
}

func NewRegistry() *Registry {
	return &Registry{objects: make(map[int]obj.Object)}
}

// Register takes ownership of o.
func (r *Registry) Register(o obj.Object) error {
	if o == nil {
		return fmt.Errorf("world: register nil object")
	}
	id := o.ID()
	if _, ok := r.objects[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}
	r.objects[id] = o
	r.order = append(r.order, id)
	return nil
}

// Remove drops the object with the given id and returns it.
func (r *Registry) Remove(id int) (obj.Object, error) {
	o, ok := r.objects[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownID, id)
	}
	delete(r.objects, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return o, nil
}

// Get returns the object with the given id, or nil.
func (r *Registry) Get(id int) obj.Object {
	return r.objects[id]
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Objects yields the registered objects in registration order. The registry
// must not be mutated while the sequence is being consumed.
func (r *Registry) Objects() iter.Seq[obj.Object] {
	return func(yield func(obj.Object) bool) {
		for _, id := range r.order {
			if !yield(r.objects[id]) {
				return
			}
		}
	}
}

// Update advances every object by dt.
func (r *Registry) Update(dt time.Duration) {
	for o := range r.Objects() {
		o.Update(dt)
	}
}

// RenderAndReap draws every object, then removes the temporaries found
// expired at now. Each removed object close enough to player costs the
// player a life. It returns the removed ids in ascending order.
func (r *Registry) RenderAndReap(rd render.Renderer, now time.Time, player *obj.Player) []int {
	var expired []int
	for o := range r.Objects() {
		o.Render(rd)
		switch v := o.(type) {
		case *obj.Temporary:
			if v.Expired(now) {
				expired = append(expired, v.ID())
			}
		case *obj.Renderable, *obj.Player:
		}
	}
	slices.Sort(expired)

	limit := r.CollisionRange
	if limit <= 0 {
		limit = DefaultCollisionRange
	}
	for _, id := range expired {
		o, err := r.Remove(id)
		if err != nil {
			continue
		}
		if player != nil && common.WithinBox(o.Position(), player.Position(), limit) {
			player.LoseLife()
		}
	}
	return expired
}
