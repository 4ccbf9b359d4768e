package world

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"stack-manager/core/reconcile"
)

var (
	// ErrDestroyed is returned when a destroyed generator's inventory is read.
	ErrDestroyed = errors.New("generator destroyed")
	// ErrSlotRange is returned when an inventory slot no longer exists.
	ErrSlotRange = errors.New("inventory slot out of range")
)

// Generator is a deployable resource generator with a single inventory.
type Generator struct {
	handle string
	netID  uint64
	name   string
	prefab string
	seq    uint64
	alive  atomic.Bool

	mu       sync.Mutex
	maxStack int
	amounts  []int
}

var _ reconcile.Object = (*Generator)(nil)

// Handle returns the host-local handle of the generator.
func (g *Generator) Handle() string { return g.handle }

// NetworkID returns the network identity. Zero means unassigned.
func (g *Generator) NetworkID() (uint64, bool) { return g.netID, g.netID != 0 }

// ShortName returns the short name.
func (g *Generator) ShortName() string { return g.name }

// PrefabPath returns the prefab path.
func (g *Generator) PrefabPath() string { return g.prefab }

// IsAlive reports whether the generator has not been destroyed.
func (g *Generator) IsAlive() bool { return g.alive.Load() }

// Inventory returns the generator's inventory.
func (g *Generator) Inventory() (reconcile.Inventory, error) {
	if !g.IsAlive() {
		return nil, ErrDestroyed
	}
	return inventory{g: g}, nil
}

// View returns a copy of the generator's state.
func (g *Generator) View() View {
	g.mu.Lock()
	defer g.mu.Unlock()

	v := View{
		Handle:   g.handle,
		Name:     g.name,
		Prefab:   g.prefab,
		Alive:    g.IsAlive(),
		MaxStack: g.maxStack,
		Amounts:  append([]int(nil), g.amounts...),
	}
	if id, ok := g.NetworkID(); ok {
		v.NetworkID = id
	}
	return v
}

// View is the JSON form of a generator.
type View struct {
	Handle    string `json:"handle"`
	NetworkID uint64 `json:"network_id,omitempty"`
	Name      string `json:"name"`
	Prefab    string `json:"prefab"`
	Alive     bool   `json:"alive"`
	MaxStack  int    `json:"max_stack"`
	Amounts   []int  `json:"amounts"`
}

type inventory struct {
	g *Generator
}

func (inv inventory) MaxStackSize() int {
	inv.g.mu.Lock()
	defer inv.g.mu.Unlock()
	return inv.g.maxStack
}

func (inv inventory) SetMaxStackSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("max stack size must be positive, got %d", n)
	}
	if !inv.g.IsAlive() {
		return ErrDestroyed
	}
	inv.g.mu.Lock()
	defer inv.g.mu.Unlock()
	inv.g.maxStack = n
	return nil
}

func (inv inventory) Items() ([]reconcile.Item, error) {
	if !inv.g.IsAlive() {
		return nil, ErrDestroyed
	}
	inv.g.mu.Lock()
	defer inv.g.mu.Unlock()

	items := make([]reconcile.Item, len(inv.g.amounts))
	for i := range inv.g.amounts {
		items[i] = slot{g: inv.g, index: i}
	}
	return items, nil
}

type slot struct {
	g     *Generator
	index int
}

func (s slot) Amount() int {
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.index >= len(s.g.amounts) {
		return 0
	}
	return s.g.amounts[s.index]
}

func (s slot) SetAmount(n int) error {
	if n < 0 {
		return fmt.Errorf("stack amount must not be negative, got %d", n)
	}
	s.g.mu.Lock()
	defer s.g.mu.Unlock()
	if s.index >= len(s.g.amounts) {
		return ErrSlotRange
	}
	s.g.amounts[s.index] = n
	return nil
}
