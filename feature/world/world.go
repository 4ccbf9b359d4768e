package world

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"stack-manager/core/reconcile"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when no generator has the requested handle.
	ErrNotFound = errors.New("generator not found")
	// ErrInvalidSpawn is returned when a spawn request is incomplete.
	ErrInvalidSpawn = errors.New("invalid spawn request")
)

// prefabRoot is prepended to short names when a spawn request has no prefab.
const prefabRoot = "assets/prefabs/deployable/"

// SpawnSpec describes a generator to place in the world.
type SpawnSpec struct {
	NetworkID uint64 `json:"network_id" yaml:"network_id"`
	Name      string `json:"name" yaml:"name"`
	Prefab    string `json:"prefab" yaml:"prefab"`
	MaxStack  int    `json:"max_stack" yaml:"max_stack"`
	Amounts   []int  `json:"amounts" yaml:"amounts"`
}

// Validate checks the spawn request.
func (s SpawnSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSpawn)
	}
	if s.MaxStack < 0 {
		return fmt.Errorf("%w: max_stack must not be negative", ErrInvalidSpawn)
	}
	for i, amount := range s.Amounts {
		if amount < 0 {
			return fmt.Errorf("%w: amount %d in slot %d", ErrInvalidSpawn, amount, i)
		}
	}
	return nil
}

// World is an in-memory host holding generator entities. It reports spawns
// and destroys to a reconcile.Listener.
type World struct {
	mu       sync.RWMutex
	gens     map[string]*Generator
	seq      uint64
	listener reconcile.Listener
	logger   *zap.Logger
}

var _ reconcile.Host = (*World)(nil)

// New creates an empty World.
func New(logger *zap.Logger) *World {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &World{
		gens:   make(map[string]*Generator),
		logger: logger,
	}
}

// SetListener sets the receiver of spawn and destroy notifications.
func (w *World) SetListener(l reconcile.Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listener = l
}

// Spawn places a new generator and notifies the listener.
func (w *World) Spawn(spec SpawnSpec) (*Generator, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(spec.Name)
	prefab := strings.TrimSpace(spec.Prefab)
	if prefab == "" {
		prefab = prefabRoot + name + ".prefab"
	}

	g := &Generator{
		handle:   uuid.NewString(),
		netID:    spec.NetworkID,
		name:     name,
		prefab:   prefab,
		maxStack: spec.MaxStack,
		amounts:  append([]int(nil), spec.Amounts...),
	}
	g.alive.Store(true)

	w.mu.Lock()
	w.seq++
	g.seq = w.seq
	w.gens[g.handle] = g
	listener := w.listener
	w.mu.Unlock()

	w.logger.Debug("Generator spawned",
		zap.String("handle", g.handle),
		zap.Uint64("generator_id", g.netID),
		zap.String("name", g.name),
	)

	if listener != nil {
		listener.Spawned(g)
	}
	return g, nil
}

// Destroy removes a generator. With notify false the listener is not told,
// which leaves the generator to the periodic sweep.
func (w *World) Destroy(handle string, notify bool) error {
	w.mu.Lock()
	g, ok := w.gens[handle]
	if ok {
		delete(w.gens, handle)
	}
	listener := w.listener
	w.mu.Unlock()

	if !ok {
		return fmt.Errorf("%s: %w", handle, ErrNotFound)
	}

	g.alive.Store(false)
	w.logger.Debug("Generator destroyed", zap.String("handle", handle), zap.Bool("notified", notify))

	if notify && listener != nil {
		listener.Destroyed(g)
	}
	return nil
}

// Get returns the generator with handle.
func (w *World) Get(handle string) (*Generator, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	g, ok := w.gens[handle]
	return g, ok
}

// Generators returns every generator in spawn order.
func (w *World) Generators() []*Generator {
	w.mu.RLock()
	out := make([]*Generator, 0, len(w.gens))
	for _, g := range w.gens {
		out = append(out, g)
	}
	w.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

// Scan returns every live generator in spawn order.
func (w *World) Scan() []reconcile.Object {
	gens := w.Generators()
	objs := make([]reconcile.Object, 0, len(gens))
	for _, g := range gens {
		if g.IsAlive() {
			objs = append(objs, g)
		}
	}
	return objs
}

// Len returns the number of generators in the world.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.gens)
}
