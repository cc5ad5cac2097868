package gitcore

import "strings"

// RuleSource is the external collaborator that owns the filesystem or
// tree view: it resolves the RuleFile declared in a given
// repository-relative directory, if any (spec §6). internal/fsrules
// supplies the reference filesystem-backed implementation.
type RuleSource interface {
	// RuleFileFor returns the RuleFile declared in dir ("" for the
	// repository root), or ok=false if none is declared there.
	RuleFileFor(dir string) (rf *RuleFile, ok bool, err error)
}

// IgnoreDecision is the tri-state result of IgnoreEngine.Query.
type IgnoreDecision int

const (
	Undetermined IgnoreDecision = iota
	Ignored
	NotIgnored
)

// IgnoreEngine answers "ignored?" for a path by walking the RuleFile
// stack described in spec §4.3: the info file, then the per-directory
// chain from the query's immediate parent up to the repository root,
// then the global file.
type IgnoreEngine struct {
	info   *RuleFile
	global *RuleFile
	perDir RuleSource
	cache  *dirCache[dirLookup]
}

type dirLookup struct {
	rf *RuleFile
	ok bool
}

// NewIgnoreEngine constructs an IgnoreEngine. info and global may be nil.
func NewIgnoreEngine(info, global *RuleFile, perDir RuleSource) *IgnoreEngine {
	return &IgnoreEngine{
		info:   info,
		global: global,
		perDir: perDir,
		cache:  newDirCache[dirLookup](),
	}
}

// InvalidateCache drops every cached per-directory RuleFile lookup.
// Call this in response to a rule-source change notification (spec §5).
func (e *IgnoreEngine) InvalidateCache() {
	e.cache.Clear()
}

// Query implements the full state machine of spec §4.3, returning the
// tri-state decision.
func (e *IgnoreEngine) Query(path string, isDirectory bool) IgnoreDecision {
	path = strings.TrimPrefix(path, "/")

	if e.info != nil {
		if d := decideAgainst(e.info, path, isDirectory); d != Undetermined {
			return d
		}
	}

	dir := dirOf(path)
	for {
		rf := e.lookupDir(dir)
		if rf != nil {
			sub := strings.TrimPrefix(path[len(dir):], "/")
			if d := decideAgainst(rf, sub, isDirectory); d != Undetermined {
				return d
			}
		}
		if dir == "" {
			break
		}
		dir = dirOf(dir)
	}

	if e.global != nil {
		if d := decideAgainst(e.global, path, isDirectory); d != Undetermined {
			return d
		}
	}

	return Undetermined
}

// IsIgnored collapses Query's tri-state result to a boolean: Undetermined
// means "not ignored" (spec §6).
func (e *IgnoreEngine) IsIgnored(path string, isDirectory bool) bool {
	return e.Query(path, isDirectory) == Ignored
}

func (e *IgnoreEngine) lookupDir(dir string) *RuleFile {
	if e.perDir == nil {
		return nil
	}
	if v, hit := e.cache.Get(dir); hit {
		if !v.ok {
			return nil
		}
		return v.rf
	}
	rf, ok, err := e.perDir.RuleFileFor(dir)
	if err != nil {
		// A collaborator I/O failure degrades to "no RuleFile here", per
		// spec §4.3's "a missing RuleFile is the same as an empty one";
		// the error itself is not reported to the caller.
		e.cache.Put(dir, dirLookup{ok: false})
		return nil
	}
	e.cache.Put(dir, dirLookup{rf: rf, ok: ok})
	if !ok {
		return nil
	}
	return rf
}

// decideAgainst tests rules in reverse definition order, per spec
// §4.3/§5: the first matching rule wins.
func decideAgainst(rf *RuleFile, path string, isDirectory bool) IgnoreDecision {
	rules := rf.Rules()
	for i := len(rules) - 1; i >= 0; i-- {
		r := rules[i]
		if r.Matches(path, isDirectory) {
			if r.Flags.Negation {
				return NotIgnored
			}
			return Ignored
		}
	}
	return Undetermined
}

// dirOf returns the parent directory of path ("" for a top-level
// entry), used both to find the starting point of the per-directory
// chain and to walk it upward one level at a time.
func dirOf(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}
