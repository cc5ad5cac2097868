package gitcore

import "testing"

// FuzzParseRuleFile ensures arbitrary rule-file content never panics
// while parsing, whatever Kind it is parsed as.
func FuzzParseRuleFile(f *testing.F) {
	seeds := []string{
		"*.log",
		"build/",
		"!important.log",
		"**/temp",
		"a/**/b",
		"foo/**",
		"#comment",
		"",
		"   ",
		"\n\n\n",
		"*.log\nbuild/\n",
		"!\n",
		"/\n",
		"\\#notcomment",
		"[attr]doc text diff=pdf\n*.pdf -doc\n",
		"<<<<<<< ours\n=======\n>>>>>>> theirs\n",
		"file[unterminated",
		"[[:bogus:]]",
		"*.txt text=value -flag !erase\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, text string) {
		ignoreRF := ParseRuleFile("fuzz", KindIgnore, text)
		_ = ignoreRF.Rules()
		_ = ignoreRF.ToText()

		attrRF := ParseRuleFile("fuzz", KindAttribute, text)
		_ = attrRF.Rules()
		_ = attrRF.MacroDefs()
		_ = attrRF.ToText()
	})
}

// FuzzMatcherMatches ensures Matches never panics for arbitrary
// pattern/path combinations, including adversarial "**"-heavy patterns
// that would otherwise threaten pathological backtracking.
func FuzzMatcherMatches(f *testing.F) {
	patterns := []string{"*", "**/b", "a/**/b", "foo", "/bar", "[[:digit:]]*", "a/**/b/**/c/**/d"}
	paths := []string{"a/b", "a/x/b", "foo", "a/b/c", ""}

	for _, p := range patterns {
		for _, path := range paths {
			f.Add(p, path, false)
			f.Add(p, path, true)
		}
	}

	f.Fuzz(func(t *testing.T, pattern, path string, isDir bool) {
		m, _ := Compile(pattern, KindIgnore)
		_ = m.Matches(path, isDir, false)
		_ = m.Matches(path, isDir, true)
	})
}
