package reconcile

import "errors"

// fakeStack is a test Item.
type fakeStack struct {
	amount   int
	failSet  bool
	panicSet bool
}

func (s *fakeStack) Amount() int { return s.amount }

func (s *fakeStack) SetAmount(amount int) error {
	if s.panicSet {
		panic("stack handle released")
	}
	if s.failSet {
		return errors.New("stack is locked")
	}
	s.amount = amount
	return nil
}

// fakeGenerator is a test Object with an embedded inventory.
type fakeGenerator struct {
	id       uint64
	hasID    bool
	name     string
	prefab   string
	dead     bool
	maxStack int
	stacks   []*fakeStack

	invErr     error
	itemsErr   error
	maxErr     error
	panicOnSet bool
}

func newGenerator(id uint64, name string, amounts ...int) *fakeGenerator {
	g := &fakeGenerator{
		id:     id,
		hasID:  id != 0,
		name:   name,
		prefab: "assets/prefabs/" + name + ".prefab",
	}
	for _, amount := range amounts {
		g.stacks = append(g.stacks, &fakeStack{amount: amount})
	}
	return g
}

func (g *fakeGenerator) NetworkID() (uint64, bool) { return g.id, g.hasID }
func (g *fakeGenerator) ShortName() string         { return g.name }
func (g *fakeGenerator) PrefabPath() string        { return g.prefab }
func (g *fakeGenerator) IsAlive() bool             { return !g.dead }

func (g *fakeGenerator) Inventory() (Inventory, error) {
	if g.invErr != nil {
		return nil, g.invErr
	}
	return g, nil
}

func (g *fakeGenerator) MaxStackSize() int { return g.maxStack }

func (g *fakeGenerator) SetMaxStackSize(limit int) error {
	if g.panicOnSet {
		panic("inventory handle released")
	}
	if g.maxErr != nil {
		return g.maxErr
	}
	g.maxStack = limit
	return nil
}

func (g *fakeGenerator) Items() ([]Item, error) {
	if g.itemsErr != nil {
		return nil, g.itemsErr
	}
	items := make([]Item, 0, len(g.stacks))
	for _, s := range g.stacks {
		items = append(items, s)
	}
	return items, nil
}

func (g *fakeGenerator) amounts() []int {
	out := make([]int, 0, len(g.stacks))
	for _, s := range g.stacks {
		out = append(out, s.amount)
	}
	return out
}

// fakeHost is a test Host.
type fakeHost struct {
	objs []Object
}

func (h *fakeHost) Scan() []Object { return h.objs }

func settingsWith(mutators ...func(*Settings)) Settings {
	s := DefaultSettings()
	for _, m := range mutators {
		m(&s)
	}
	return s
}
