package reconcile

import "go.uber.org/zap"

// Object is a live generator entity owned by the host.
//
// Implementations must be comparable (usually a pointer type) because the
// tracked set is keyed by reference identity.
type Object interface {
	// NetworkID returns the host network identifier.
	// ok is false when the host has not assigned one.
	NetworkID() (id uint64, ok bool)

	// ShortName returns the short prefab name (e.g. "generator.small").
	ShortName() string

	// PrefabPath returns the full prefab path of the entity.
	PrefabPath() string

	// IsAlive reports whether the host still considers the entity valid.
	IsAlive() bool

	// Inventory returns the entity's container.
	Inventory() (Inventory, error)
}

// Inventory is the stackable container of a generator.
type Inventory interface {
	// MaxStackSize returns the current per-slot stack limit.
	MaxStackSize() int

	// SetMaxStackSize changes the per-slot stack limit.
	SetMaxStackSize(limit int) error

	// Items returns the stacks currently held.
	Items() ([]Item, error)
}

// Item is a single stack held in an Inventory.
type Item interface {
	Amount() int
	SetAmount(amount int) error
}

// Host enumerates the generators that are currently live.
type Host interface {
	Scan() []Object
}

// Listener receives spawn and destroy notifications from the host.
type Listener interface {
	Spawned(obj Object)
	Destroyed(obj Object)
}

// isLive reports whether obj refers to an entity the host still considers valid.
// A nil interface, or a typed nil whose IsAlive panics, counts as dead.
func isLive(obj Object) (alive bool) {
	if obj == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			alive = false
		}
	}()
	return obj.IsAlive()
}

// objectFields returns the log fields identifying obj.
func objectFields(obj Object) (fields []zap.Field) {
	defer func() {
		if r := recover(); r != nil {
			fields = []zap.Field{zap.String("generator", "<invalid>")}
		}
	}()
	if obj == nil {
		return []zap.Field{zap.String("generator", "<nil>")}
	}
	id, ok := obj.NetworkID()
	fields = []zap.Field{
		zap.String("name", obj.ShortName()),
		zap.String("prefab", obj.PrefabPath()),
	}
	if ok {
		fields = append(fields, zap.Uint64("generator_id", id))
	}
	return fields
}
