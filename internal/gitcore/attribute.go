package gitcore

import "strings"

// State is the resolved state of a single attribute.
type State int

const (
	// Unspecified is the zero value and also the state of a "!key"
	// assignment: an entry in this state shields the key from
	// lower-priority assignments and is erased from the final
	// AttributeMap.
	Unspecified State = iota
	// Set corresponds to the bare "key" assignment form.
	Set
	// Unset corresponds to the "-key" assignment form.
	Unset
	// Custom corresponds to the "key=value" assignment form; Value holds
	// the string on the right-hand side of "=".
	Custom
)

// String returns the name of the state, for debugging.
func (s State) String() string {
	switch s {
	case Set:
		return "Set"
	case Unset:
		return "Unset"
	case Custom:
		return "Custom"
	default:
		return "Unspecified"
	}
}

// Attribute is a single (state, value) pair assigned to a key. Value is
// only meaningful when State == Custom.
type Attribute struct {
	State State
	Value string
}

// Assignment pairs an attribute Key with its Attribute.
type Assignment struct {
	Key string
	Attribute
}

// IsValidAttributeKey reports whether key satisfies the gitattributes key
// syntax: non-empty, drawn from [A-Za-z0-9._-], and not starting with '-'.
func IsValidAttributeKey(key string) bool {
	if key == "" {
		return false
	}
	if key[0] == '-' {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// ParseAssignment parses a single attribute token ("name", "-name",
// "!name", or "name=value") into an Assignment. ok is false when the key
// portion fails IsValidAttributeKey, in which case the token must be
// silently dropped by the caller.
func ParseAssignment(token string) (Assignment, bool) {
	if token == "" {
		return Assignment{}, false
	}

	switch token[0] {
	case '-':
		key := token[1:]
		if !IsValidAttributeKey(key) {
			return Assignment{}, false
		}
		return Assignment{Key: key, Attribute: Attribute{State: Unset}}, true
	case '!':
		key := token[1:]
		if !IsValidAttributeKey(key) {
			return Assignment{}, false
		}
		return Assignment{Key: key, Attribute: Attribute{State: Unspecified}}, true
	default:
		if idx := strings.IndexByte(token, '='); idx >= 0 {
			key := token[:idx]
			if !IsValidAttributeKey(key) {
				return Assignment{}, false
			}
			return Assignment{Key: key, Attribute: Attribute{State: Custom, Value: token[idx+1:]}}, true
		}
		if !IsValidAttributeKey(token) {
			return Assignment{}, false
		}
		return Assignment{Key: token, Attribute: Attribute{State: Set}}, true
	}
}

// AttributeMap is an insertion-ordered mapping from attribute key to
// Attribute. The zero value is ready to use.
type AttributeMap struct {
	order []string
	byKey map[string]Attribute
}

// NewAttributeMap returns an empty, ready-to-use AttributeMap.
func NewAttributeMap() *AttributeMap {
	return &AttributeMap{byKey: make(map[string]Attribute)}
}

// Has reports whether key has an entry (of any state, including
// Unspecified) in the map.
func (m *AttributeMap) Has(key string) bool {
	if m.byKey == nil {
		return false
	}
	_, ok := m.byKey[key]
	return ok
}

// Get returns the Attribute assigned to key and whether it is present.
func (m *AttributeMap) Get(key string) (Attribute, bool) {
	if m.byKey == nil {
		return Attribute{}, false
	}
	a, ok := m.byKey[key]
	return a, ok
}

// setIfAbsent records the assignment for key only if key has no entry yet.
// Returns true if the assignment was recorded. This is the "first-seen
// wins" policy from spec.md §4.5.
func (m *AttributeMap) setIfAbsent(key string, a Attribute) bool {
	if m.byKey == nil {
		m.byKey = make(map[string]Attribute)
	}
	if _, exists := m.byKey[key]; exists {
		return false
	}
	m.byKey[key] = a
	m.order = append(m.order, key)
	return true
}

// eraseUnspecified removes every entry whose State is Unspecified. Called
// once, after all contributing RuleFiles have run, per spec.md §4.4's
// "final pass".
func (m *AttributeMap) eraseUnspecified() {
	if m.byKey == nil {
		return
	}
	kept := m.order[:0]
	for _, k := range m.order {
		if m.byKey[k].State == Unspecified {
			delete(m.byKey, k)
			continue
		}
		kept = append(kept, k)
	}
	m.order = kept
}

// IsSet reports whether key is present and in the Set state.
func (m *AttributeMap) IsSet(key string) bool {
	a, ok := m.Get(key)
	return ok && a.State == Set
}

// IsUnset reports whether key is present and in the Unset state.
func (m *AttributeMap) IsUnset(key string) bool {
	a, ok := m.Get(key)
	return ok && a.State == Unset
}

// IsCustom reports whether key is present and in the Custom state.
func (m *AttributeMap) IsCustom(key string) bool {
	a, ok := m.Get(key)
	return ok && a.State == Custom
}

// Value returns the Custom value for key, or "" if key is absent or not
// Custom.
func (m *AttributeMap) Value(key string) string {
	a, ok := m.Get(key)
	if !ok || a.State != Custom {
		return ""
	}
	return a.Value
}

// Keys returns the attribute keys in first-assigned order.
func (m *AttributeMap) Keys() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of entries currently in the map.
func (m *AttributeMap) Len() int {
	return len(m.order)
}
