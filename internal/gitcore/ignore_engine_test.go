package gitcore

import "testing"

// fakeRuleSource serves RuleFiles from an in-memory map, keyed by
// repository-relative directory ("" for the root).
type fakeRuleSource struct {
	kind  Kind
	files map[string]string // dir -> rule file text
}

func (s *fakeRuleSource) RuleFileFor(dir string) (*RuleFile, bool, error) {
	text, ok := s.files[dir]
	if !ok {
		return nil, false, nil
	}
	return ParseRuleFile(dir, s.kind, text), true, nil
}

func TestIgnoreEngine_NestedNegation(t *testing.T) {
	src := &fakeRuleSource{kind: KindIgnore, files: map[string]string{
		"": "build/\n!build/keep/\n",
	}}
	e := NewIgnoreEngine(nil, nil, src)

	if !e.IsIgnored("build/a.o", false) {
		t.Error("build/a.o should be ignored")
	}
	if e.IsIgnored("build/keep/x.txt", false) {
		t.Error("build/keep/x.txt should not be ignored")
	}
}

func TestIgnoreEngine_NameOnlyVsAnchored(t *testing.T) {
	src := &fakeRuleSource{kind: KindIgnore, files: map[string]string{
		"": "foo\n/bar\n",
	}}
	e := NewIgnoreEngine(nil, nil, src)

	if !e.IsIgnored("a/foo", false) {
		t.Error("a/foo should be ignored (name-only matches any segment)")
	}
	if e.IsIgnored("a/bar", false) {
		t.Error("a/bar should not be ignored (anchored to root)")
	}
	if !e.IsIgnored("bar", false) {
		t.Error("bar should be ignored")
	}
}

func TestIgnoreEngine_InfoFileTakesPriority(t *testing.T) {
	info := ParseRuleFile("<info>", KindIgnore, "*.log\n")
	global := ParseRuleFile("<global>", KindIgnore, "!*.log\n")
	e := NewIgnoreEngine(info, global, nil)

	if !e.IsIgnored("debug.log", false) {
		t.Error("info file should ignore *.log regardless of the global file's negation")
	}
}

func TestIgnoreEngine_GlobalIsLowestPriority(t *testing.T) {
	src := &fakeRuleSource{kind: KindIgnore, files: map[string]string{
		"": "!*.log\n",
	}}
	global := ParseRuleFile("<global>", KindIgnore, "*.log\n")
	e := NewIgnoreEngine(nil, global, src)

	if e.IsIgnored("debug.log", false) {
		t.Error("the root file's negation should override the global file's ignore")
	}
}

func TestIgnoreEngine_PerDirectoryChainWalksUpward(t *testing.T) {
	src := &fakeRuleSource{kind: KindIgnore, files: map[string]string{
		"a/b": "*.tmp\n",
	}}
	e := NewIgnoreEngine(nil, nil, src)

	if !e.IsIgnored("a/b/c.tmp", false) {
		t.Error("a/b/c.tmp should be ignored by a/b/.gitignore")
	}
	if e.IsIgnored("a/c.tmp", false) {
		t.Error("a/c.tmp is outside a/b and should not be ignored")
	}
}

func TestIgnoreEngine_UndeterminedIsNotIgnored(t *testing.T) {
	e := NewIgnoreEngine(nil, nil, nil)
	if e.Query("anything", false) != Undetermined {
		t.Error("an engine with no rule sources should report Undetermined")
	}
	if e.IsIgnored("anything", false) {
		t.Error("Undetermined must collapse to \"not ignored\"")
	}
}

func TestIgnoreEngine_InvalidateCacheRefetches(t *testing.T) {
	src := &fakeRuleSource{kind: KindIgnore, files: map[string]string{"": "*.log\n"}}
	e := NewIgnoreEngine(nil, nil, src)

	if !e.IsIgnored("a.log", false) {
		t.Fatal("a.log should be ignored before the rule file changes")
	}
	src.files[""] = "!*.log\n"
	if !e.IsIgnored("a.log", false) {
		t.Error("the stale cached RuleFile should still be in effect before invalidation")
	}
	e.InvalidateCache()
	if e.IsIgnored("a.log", false) {
		t.Error("after InvalidateCache, the updated rule file should take effect")
	}
}
