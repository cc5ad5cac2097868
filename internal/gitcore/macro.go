package gitcore

// MacroTable maps a macro name to the ordered body of assignments it
// expands to (spec §4.5). It is seeded with the predefined "binary"
// macro; a user-defined "binary" macro overrides the seed.
type MacroTable struct {
	defs map[string][]Assignment
}

// NewMacroTable returns a MacroTable pre-seeded with the predefined
// binary → [-diff, -merge, -text] macro.
func NewMacroTable() *MacroTable {
	t := &MacroTable{defs: make(map[string][]Assignment)}
	t.defs["binary"] = []Assignment{
		{Key: "diff", Attribute: Attribute{State: Unset}},
		{Key: "merge", Attribute: Attribute{State: Unset}},
		{Key: "text", Attribute: Attribute{State: Unset}},
	}
	return t
}

// Define installs (or overrides) the body for a macro name.
func (t *MacroTable) Define(name string, body []Assignment) {
	t.defs[name] = body
}

func (t *MacroTable) lookup(name string) ([]Assignment, bool) {
	body, ok := t.defs[name]
	return body, ok
}

// BuildMacroTable assembles the MacroTable implied by a set of
// attribute RuleFiles: each ruleFile's macro-definition lines are
// installed in file order, then RuleFile order, so that a later
// definition of the same name overrides an earlier one — consistent
// with "later definitions win" elsewhere in the data model.
func BuildMacroTable(ruleFiles []*RuleFile) *MacroTable {
	t := NewMacroTable()
	for _, rf := range ruleFiles {
		for _, def := range rf.MacroDefs() {
			t.Define(def.MacroName, def.Assignments)
		}
	}
	return t
}

// rewritePolarity rewrites a macro body entry body according to the
// triggering assignment trigger, per the table in spec §4.5.
func rewritePolarity(trigger Attribute, body Attribute) Attribute {
	switch trigger.State {
	case Set:
		return body
	case Unset:
		switch body.State {
		case Set:
			return Attribute{State: Unset}
		case Unset:
			return Attribute{State: Set}
		default: // Unspecified, Custom: unchanged
			return body
		}
	case Unspecified:
		return Attribute{State: Unspecified}
	case Custom:
		if body.State == Custom {
			return Attribute{State: Custom, Value: trigger.Value} // triggering value overrides
		}
		return body
	default:
		return body
	}
}

// ExpandInto expands assignment a into result, recursively applying any
// macro bound to a.Key, subject to the "first-seen wins" policy that
// doubles as the cycle breaker (spec §4.5, design note §9): if a.Key is
// already present in result, ExpandInto is a no-op.
func ExpandInto(table *MacroTable, a Assignment, result *AttributeMap) {
	if result.Has(a.Key) {
		return
	}
	result.setIfAbsent(a.Key, a.Attribute)

	body, ok := table.lookup(a.Key)
	if !ok {
		return
	}
	for _, entry := range body {
		rewritten := Assignment{
			Key:       entry.Key,
			Attribute: rewritePolarity(a.Attribute, entry.Attribute),
		}
		ExpandInto(table, rewritten, result)
	}
}
