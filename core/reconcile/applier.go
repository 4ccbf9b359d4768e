package reconcile

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrApplyPanic wraps a panic raised by a host inventory implementation.
var ErrApplyPanic = errors.New("inventory panicked")

// ApplyResult is the outcome of applying a limit to one generator.
type ApplyResult struct {
	// Limit is the limit that was resolved for the generator.
	Limit int
	// Clamped counts the stacks that were reduced to Limit.
	Clamped int
	// Err is set when the inventory could not be read or mutated.
	Err error
}

// OK reports whether the apply succeeded.
func (r ApplyResult) OK() bool {
	return r.Err == nil
}

// Applier writes resolved limits to generator inventories.
type Applier struct {
	resolve func(Object) int
	logger  *zap.Logger
}

// NewApplier creates an Applier that resolves limits with resolve.
func NewApplier(resolve func(Object) int, logger *zap.Logger) *Applier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{resolve: resolve, logger: logger}
}

// Apply sets obj's max stack size to its resolved limit and clamps every stack
// above that limit. Stacks are never raised.
// A failure is logged with the generator identity and returned in the result.
func (a *Applier) Apply(obj Object) ApplyResult {
	res := ApplyLimit(obj, a.resolve(obj))
	if !res.OK() {
		a.logger.Warn("Failed to apply stack limit",
			append(objectFields(obj), zap.Int("limit", res.Limit), zap.Error(res.Err))...)
	}
	return res
}

// ApplyLimit applies limit to obj without resolving it.
// When a mutation fails or the inventory panics, the max stack size and every
// stack already clamped are put back, so a failed apply leaves obj as it was.
func ApplyLimit(obj Object, limit int) (res ApplyResult) {
	res.Limit = limit

	var undo rollback
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %v", ErrApplyPanic, r)
		}
		if res.Err != nil {
			undo.restore()
		}
	}()

	if obj == nil {
		res.Err = errors.New("generator is nil")
		return res
	}
	if limit <= 0 {
		res.Err = ErrInvalidLimit
		return res
	}

	inv, err := obj.Inventory()
	if err != nil {
		res.Err = fmt.Errorf("failed to read inventory: %w", err)
		return res
	}
	if inv == nil {
		res.Err = errors.New("generator has no inventory")
		return res
	}

	// Read the stacks before touching anything so a broken inventory is left as it was.
	items, err := inv.Items()
	if err != nil {
		res.Err = fmt.Errorf("failed to list items: %w", err)
		return res
	}

	undo.inv, undo.maxStack = inv, inv.MaxStackSize()
	if err := inv.SetMaxStackSize(limit); err != nil {
		res.Err = fmt.Errorf("failed to set max stack size: %w", err)
		return res
	}
	undo.maxStackSet = true

	for _, item := range items {
		if item == nil {
			continue
		}
		amount := item.Amount()
		if amount <= limit {
			continue
		}
		if err := item.SetAmount(limit); err != nil {
			res.Err = fmt.Errorf("failed to clamp stack: %w", err)
			return res
		}
		undo.clamped = append(undo.clamped, clampedStack{item: item, amount: amount})
		res.Clamped++
	}
	return res
}

type clampedStack struct {
	item   Item
	amount int
}

// rollback records what ApplyLimit changed.
type rollback struct {
	inv         Inventory
	maxStack    int
	maxStackSet bool
	clamped     []clampedStack
}

// restore puts back every recorded change, newest first. It is best effort:
// an inventory that fails or panics again is left as far as restore got.
func (u *rollback) restore() {
	defer func() { _ = recover() }()
	for i := len(u.clamped) - 1; i >= 0; i-- {
		_ = u.clamped[i].item.SetAmount(u.clamped[i].amount)
	}
	if u.maxStackSet {
		_ = u.inv.SetMaxStackSize(u.maxStack)
	}
}
