package gitcore

import "strings"

// Rule is one compiled line from a RuleFile. The same shape serves both
// ignore lines and attribute lines (spec §3): Assignments and MacroName
// are only populated for KindAttribute rules.
type Rule struct {
	Kind    Kind
	Raw     string // the original line, untrimmed
	Line    int    // 1-based line number within its source
	Flags   Flags
	Matcher *Matcher

	// Assignments holds the attribute tokens trailing the pattern on an
	// attribute line (e.g. "text", "-crlf", "diff=lfs"). Tokens that fail
	// IsValidAttributeKey are silently dropped, per spec §4.2.
	Assignments []Assignment

	// MacroName is non-empty when this line defines a macro ("[attr]name
	// attr1 attr2 ..."); Assignments then holds the macro's expansion body
	// and Matcher is nil, since a macro definition is not itself a
	// pattern rule.
	MacroName string
}

// Matches reports whether path (queried with the given directory-ness)
// matches r's pattern. Always matches with full_path_match=false: a
// dir_only rule also covers everything nested under the directory it
// names (spec §4.1's "Directory-only guard" combined with the
// full/prefix distinction resolves that uniformly at this single call
// site — see wildmatch.go's Matches for the derivation).
func (r *Rule) Matches(path string, isDirectory bool) bool {
	if r.Matcher == nil || r.Flags.CommentOrBlank {
		return false
	}
	return r.Matcher.Matches(path, isDirectory, false)
}

// CompileIgnoreRule compiles one line from an ignore-format RuleFile.
// Blank lines and comments compile to a Rule whose Flags.CommentOrBlank
// is set; callers that only care about active rules should skip those.
func CompileIgnoreRule(line string, lineNo int) *Rule {
	return CompileIgnoreRuleWithOptions(line, lineNo, MatcherOptions{})
}

// CompileIgnoreRuleWithOptions is CompileIgnoreRule with an explicit
// wildmatch backtracking budget (see MatcherOptions).
func CompileIgnoreRuleWithOptions(line string, lineNo int, opts MatcherOptions) *Rule {
	pattern := trimIgnoreLine(line)
	m, flags := CompileWithOptions(pattern, KindIgnore, opts)
	return &Rule{Kind: KindIgnore, Raw: line, Line: lineNo, Flags: flags, Matcher: m}
}

// trimIgnoreLine strips trailing whitespace from an ignore-format line,
// unless the whitespace is escaped with a backslash (spec §4.2).
func trimIgnoreLine(line string) string {
	end := len(line)
	for end > 0 && (line[end-1] == ' ' || line[end-1] == '\t') {
		// Count the backslashes immediately preceding this whitespace run's
		// start to see whether the final trimmed byte is itself escaped.
		backslashes := 0
		for k := end - 2; k >= 0 && line[k] == '\\'; k-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			break // the trailing space is escaped; stop trimming here
		}
		end--
	}
	return line[:end]
}

// CompileAttributeRule compiles one line from an attribute-format
// RuleFile: "<pattern> <attr> <attr> ..." or a macro definition of the
// form "[attr]name <attr> <attr> ...". Fields are split on runs of
// unescaped whitespace.
func CompileAttributeRule(line string, lineNo int) *Rule {
	return CompileAttributeRuleWithOptions(line, lineNo, MatcherOptions{})
}

// CompileAttributeRuleWithOptions is CompileAttributeRule with an
// explicit wildmatch backtracking budget (see MatcherOptions).
func CompileAttributeRuleWithOptions(line string, lineNo int, opts MatcherOptions) *Rule {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] == '#' {
		return &Rule{Kind: KindAttribute, Raw: line, Line: lineNo, Flags: Flags{CommentOrBlank: true}}
	}

	head, rest := splitPatternField(trimmed)
	if head == "" {
		return &Rule{Kind: KindAttribute, Raw: line, Line: lineNo, Flags: Flags{CommentOrBlank: true}}
	}

	if strings.HasPrefix(head, "!") {
		// NegationInAttributeRule: negation has no meaning for attribute
		// patterns; the whole line is dropped.
		return &Rule{Kind: KindAttribute, Raw: line, Line: lineNo, Flags: Flags{CommentOrBlank: true, Malformed: true}}
	}
	assignments := parseAssignments(splitAttributeFields(rest))

	if strings.HasPrefix(head, "[attr]") {
		name := head[len("[attr]"):]
		return &Rule{
			Kind:        KindAttribute,
			Raw:         line,
			Line:        lineNo,
			Flags:       Flags{CommentOrBlank: true}, // never itself matches a path
			MacroName:   name,
			Assignments: assignments,
		}
	}

	m, flags := CompileWithOptions(head, KindAttribute, opts)
	return &Rule{
		Kind:        KindAttribute,
		Raw:         line,
		Line:        lineNo,
		Flags:       flags,
		Matcher:     m,
		Assignments: assignments,
	}
}

// splitPatternField splits an attribute line's leading pattern from the
// remainder of the line. Per spec §4.2 the pattern/attribute-list
// separator is a run of space or tab only — "\r" is not a pattern
// separator, only an intra-list separator (see splitAttributeFields) —
// so this scan stops at the first unescaped space or tab and returns the
// rest of the line (after skipping that run) unsplit.
func splitPatternField(s string) (head string, rest string) {
	var cur strings.Builder
	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		if c == '\\' && i+1 < n {
			cur.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == ' ' || c == '\t' {
			break
		}
		cur.WriteByte(c)
		i++
	}
	head = cur.String()
	for i < n && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return head, s[i:]
}

// splitAttributeFields splits an attribute list (the remainder of a line
// after its leading pattern has been removed by splitPatternField) on
// runs of space, tab, or "\r" not escaped with a backslash (spec §4.2:
// "\r" is accepted as an intra-list separator, in addition to space and
// tab, but never as the pattern/list separator itself).
func splitAttributeFields(s string) []string {
	var fields []string
	var cur strings.Builder
	i := 0
	n := len(s)
	for i < n {
		c := s[i]
		if c == '\\' && i+1 < n {
			cur.WriteByte(s[i+1])
			i += 2
			continue
		}
		if c == ' ' || c == '\t' || c == '\r' {
			if cur.Len() > 0 {
				fields = append(fields, cur.String())
				cur.Reset()
			}
			i++
			continue
		}
		cur.WriteByte(c)
		i++
	}
	if cur.Len() > 0 {
		fields = append(fields, cur.String())
	}
	return fields
}

func parseAssignments(tokens []string) []Assignment {
	out := make([]Assignment, 0, len(tokens))
	for _, tok := range tokens {
		a, ok := ParseAssignment(tok)
		if !ok {
			continue
		}
		out = append(out, a)
	}
	return out
}
