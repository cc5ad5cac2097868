package gitcore

import (
	"strings"

	"golang.org/x/sync/singleflight"
)

// dirRuleFile pairs a directory with the RuleFile declared there.
type dirRuleFile struct {
	dir string
	rf  *RuleFile
}

// AttributesEngine resolves the AttributeMap for a path by walking the
// RuleFile stack described in spec §4.4: the info file, then the
// per-directory chain from the query's immediate parent up to the
// repository root, then the global file — the same order in which
// IgnoreEngine visits its stack.
type AttributesEngine struct {
	info   *RuleFile
	global *RuleFile
	perDir RuleSource

	dirCache *dirCache[dirLookup]

	macroCache *dirCache[*MacroTable]
	macroGroup singleflight.Group
}

// NewAttributesEngine constructs an AttributesEngine. info and global
// may be nil.
func NewAttributesEngine(info, global *RuleFile, perDir RuleSource) *AttributesEngine {
	return &AttributesEngine{
		info:       info,
		global:     global,
		perDir:     perDir,
		dirCache:   newDirCache[dirLookup](),
		macroCache: newDirCache[*MacroTable](),
	}
}

// InvalidateCache drops the per-directory RuleFile lookup cache and the
// MacroTable cache. Call this in response to a rule-source change
// notification (spec §5).
func (e *AttributesEngine) InvalidateCache() {
	e.dirCache.Clear()
	e.macroCache.Clear()
}

// Attributes returns the fully-resolved AttributeMap for path, per spec
// §4.4: each contributing RuleFile is visited in stack order, its
// matching rules in reverse, each rule's assignments in reverse,
// expanded through the engine's MacroTable under "first-seen wins",
// then every UNSPECIFIED entry is erased in a final pass.
func (e *AttributesEngine) Attributes(path string, isDirectory bool) *AttributeMap {
	path = strings.TrimPrefix(path, "/")
	startDir := dirOf(path)

	table := e.macroTableFor(startDir)
	result := NewAttributeMap()

	if e.info != nil {
		contributeRuleFile(table, e.info, path, isDirectory, result)
	}
	for _, d := range e.perDirChain(startDir) {
		sub := strings.TrimPrefix(path[len(d.dir):], "/")
		contributeRuleFile(table, d.rf, sub, isDirectory, result)
	}
	if e.global != nil {
		contributeRuleFile(table, e.global, path, isDirectory, result)
	}

	result.eraseUnspecified()
	return result
}

// perDirChain walks from startDir up to the repository root, returning
// the directories that have a declared RuleFile, deepest first.
func (e *AttributesEngine) perDirChain(startDir string) []dirRuleFile {
	var out []dirRuleFile
	dir := startDir
	for {
		if rf := e.lookupDir(dir); rf != nil {
			out = append(out, dirRuleFile{dir: dir, rf: rf})
		}
		if dir == "" {
			break
		}
		dir = dirOf(dir)
	}
	return out
}

func (e *AttributesEngine) lookupDir(dir string) *RuleFile {
	if e.perDir == nil {
		return nil
	}
	if v, hit := e.dirCache.Get(dir); hit {
		if !v.ok {
			return nil
		}
		return v.rf
	}
	rf, ok, err := e.perDir.RuleFileFor(dir)
	if err != nil {
		e.dirCache.Put(dir, dirLookup{ok: false})
		return nil
	}
	e.dirCache.Put(dir, dirLookup{rf: rf, ok: ok})
	if !ok {
		return nil
	}
	return rf
}

// macroTableFor returns the MacroTable assembled from every RuleFile
// that would contribute to a query rooted at startDir, rebuilding (at
// most once per concurrent burst, via singleflight) when not already
// cached — the "write-once-per-source-change, exclusive writer,
// concurrent readers" policy from spec §5.
func (e *AttributesEngine) macroTableFor(startDir string) *MacroTable {
	if t, hit := e.macroCache.Get(startDir); hit {
		return t
	}
	v, _, _ := e.macroGroup.Do(startDir, func() (interface{}, error) {
		if t, hit := e.macroCache.Get(startDir); hit {
			return t, nil
		}
		files := make([]*RuleFile, 0, 4)
		if e.info != nil {
			files = append(files, e.info)
		}
		for _, d := range e.perDirChain(startDir) {
			files = append(files, d.rf)
		}
		if e.global != nil {
			files = append(files, e.global)
		}
		t := BuildMacroTable(files)
		e.macroCache.Put(startDir, t)
		return t, nil
	})
	return v.(*MacroTable)
}

// contributeRuleFile applies rf's matching rules (reverse order) and
// their assignments (reverse order) into result via the MacroExpander.
func contributeRuleFile(table *MacroTable, rf *RuleFile, path string, isDirectory bool, result *AttributeMap) {
	rules := rf.Rules()
	for i := len(rules) - 1; i >= 0; i-- {
		r := rules[i]
		if !r.Matches(path, isDirectory) {
			continue
		}
		for j := len(r.Assignments) - 1; j >= 0; j-- {
			ExpandInto(table, r.Assignments[j], result)
		}
	}
}
