package reconcile

// Rule names the table that produced a resolved limit.
type Rule string

const (
	RuleID      Rule = "id"
	RuleName    Rule = "name"
	RulePrefab  Rule = "prefab"
	RuleDefault Rule = "default"
)

// Resolve returns the effective stack limit for obj.
func (s Settings) Resolve(obj Object) int {
	limit, _ := s.ResolveRule(obj)
	return limit
}

// ResolveRule returns the effective stack limit for obj and the rule that matched.
// Precedence, first match wins: identity, short name, prefab path, global default.
// Generators without a network id never consult the identity table.
func (s Settings) ResolveRule(obj Object) (int, Rule) {
	if obj == nil {
		return s.DefaultLimit, RuleDefault
	}
	if id, ok := obj.NetworkID(); ok && id != 0 {
		if limit, found := s.ByID[id]; found {
			return limit, RuleID
		}
	}
	if limit, found := s.ByName[obj.ShortName()]; found {
		return limit, RuleName
	}
	if limit, found := s.ByPrefab[obj.PrefabPath()]; found {
		return limit, RulePrefab
	}
	return s.DefaultLimit, RuleDefault
}
