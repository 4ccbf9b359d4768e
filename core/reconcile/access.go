package reconcile

// AccessFilter decides which actors may run mutating commands.
type AccessFilter struct {
	allow map[string]struct{}
	deny  map[string]struct{}
}

// NewAccessFilter builds a filter from allow and deny lists.
// Names are matched exactly.
func NewAccessFilter(allow, deny []string) AccessFilter {
	f := AccessFilter{
		allow: make(map[string]struct{}, len(allow)),
		deny:  make(map[string]struct{}, len(deny)),
	}
	for _, name := range allow {
		f.allow[name] = struct{}{}
	}
	for _, name := range deny {
		f.deny[name] = struct{}{}
	}
	return f
}

// IsAllowed reports whether actor may run a mutating command.
// The deny list wins; an empty allow list admits everyone else.
func (f AccessFilter) IsAllowed(actor string) bool {
	if _, denied := f.deny[actor]; denied {
		return false
	}
	if len(f.allow) == 0 {
		return true
	}
	_, allowed := f.allow[actor]
	return allowed
}

// Access returns the filter built from the settings' allow and deny lists.
func (s Settings) Access() AccessFilter {
	return NewAccessFilter(s.Allow, s.Deny)
}
