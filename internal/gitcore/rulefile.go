package gitcore

import "strings"

// RuleFile is an ordered collection of Rules parsed from one text
// source (spec §2, §4.2). Parsing never fails: malformed lines compile
// to a Rule whose Flags.CommentOrBlank is set, and are simply skipped
// by Rules().
type RuleFile struct {
	Kind   Kind
	Source string // caller-supplied identifier (path, "<info>", ...), for diagnostics only

	entries []ruleFileEntry

	// trailingNewline records whether the parsed text ended with a line
	// terminator, so ToText can restore it (spec §4.2's "bit-for-bit"
	// round-trip) rather than silently dropping it.
	trailingNewline bool
}

type ruleFileEntry struct {
	raw  string
	rule *Rule // nil only for a conflict-marker line; blank and comment lines get an inert Rule
}

// ParseRuleFile parses text into a RuleFile. Both "\n" and "\r\n"
// terminate lines; a final unterminated line is also accepted.
func ParseRuleFile(source string, kind Kind, text string) *RuleFile {
	return ParseRuleFileWithOptions(source, kind, text, MatcherOptions{})
}

// ParseRuleFileWithOptions is ParseRuleFile with an explicit wildmatch
// backtracking budget applied to every pattern in the file (see
// MatcherOptions).
func ParseRuleFileWithOptions(source string, kind Kind, text string, opts MatcherOptions) *RuleFile {
	rf := &RuleFile{Kind: kind, Source: source, trailingNewline: strings.HasSuffix(text, "\n")}
	lines := splitRuleFileLines(text)
	for i, raw := range lines {
		lineNo := i + 1
		if isConflictMarker(raw) {
			rf.entries = append(rf.entries, ruleFileEntry{raw: raw})
			continue
		}
		line := strings.TrimSuffix(raw, "\r")
		var rule *Rule
		if kind == KindIgnore {
			rule = CompileIgnoreRuleWithOptions(line, lineNo, opts)
		} else {
			rule = CompileAttributeRuleWithOptions(line, lineNo, opts)
		}
		rf.entries = append(rf.entries, ruleFileEntry{raw: raw, rule: rule})
	}
	return rf
}

// splitRuleFileLines splits text on "\n". The "\r" of a "\r\n"
// terminator stays on its line, so ToText can restore it;
// ParseRuleFileWithOptions strips it before compiling the line. A
// trailing newline does not produce a phantom empty final line.
func splitRuleFileLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// isConflictMarker reports whether line is a merge conflict marker
// ("<<<<<<<", "=======", ">>>>>>>"), which spec §4.2 treats as a
// comment.
func isConflictMarker(line string) bool {
	return strings.HasPrefix(line, "<<<<<<<") ||
		strings.HasPrefix(line, "=======") ||
		strings.HasPrefix(line, ">>>>>>>")
}

// Rules returns the active (non-blank, non-comment, non-macro-definition)
// Rules in definition order.
func (rf *RuleFile) Rules() []*Rule {
	out := make([]*Rule, 0, len(rf.entries))
	for _, e := range rf.entries {
		if e.rule == nil || e.rule.Flags.CommentOrBlank {
			continue
		}
		out = append(out, e.rule)
	}
	return out
}

// MacroDefs returns the macro-definition Rules ("[attr]name ...") in
// definition order. Only meaningful for Kind == KindAttribute.
func (rf *RuleFile) MacroDefs() []*Rule {
	out := make([]*Rule, 0)
	for _, e := range rf.entries {
		if e.rule != nil && e.rule.MacroName != "" {
			out = append(out, e.rule)
		}
	}
	return out
}

// ToText reconstructs the original source text, line for line,
// including a final line terminator if the parsed text had one.
func (rf *RuleFile) ToText() string {
	raws := make([]string, len(rf.entries))
	for i, e := range rf.entries {
		raws[i] = e.raw
	}
	text := strings.Join(raws, "\n")
	if rf.trailingNewline {
		text += "\n"
	}
	return text
}
