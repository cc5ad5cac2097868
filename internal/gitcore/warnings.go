package gitcore

// ParseWarning reports a line that was dropped while parsing a RuleFile
// because it was malformed (as opposed to intentionally blank or a
// comment). Parsing itself never fails: a malformed line simply
// compiles to an inert Rule (spec §7's tolerant parsing policy);
// ParseWarning gives a caller an observable record of what was dropped
// and why, grounded on Sriram-PR-go-ignore's ParseWarning/WarningHandler.
type ParseWarning struct {
	Source  string // the RuleFile's Source
	Line    int    // 1-based line number
	Raw     string // the original line text
	Message string
}

// WarningHandler receives each ParseWarning as it is produced, in place
// of collecting them into a slice.
type WarningHandler func(ParseWarning)

// ParseRuleFileCollectingWarnings is ParseRuleFileWithOptions, additionally
// returning a ParseWarning for every line that was dropped for being
// malformed — a macro definition, blank line, or ordinary comment never
// produces a warning.
func ParseRuleFileCollectingWarnings(source string, kind Kind, text string, opts MatcherOptions, handler WarningHandler) (*RuleFile, []ParseWarning) {
	rf := ParseRuleFileWithOptions(source, kind, text, opts)

	var warnings []ParseWarning
	for _, e := range rf.entries {
		if e.rule == nil || e.rule.MacroName != "" {
			continue
		}
		if !e.rule.Flags.CommentOrBlank || !e.rule.Flags.Malformed {
			continue
		}
		w := ParseWarning{
			Source:  source,
			Line:    e.rule.Line,
			Raw:     e.raw,
			Message: "line did not compile to a valid pattern and was dropped",
		}
		if handler != nil {
			handler(w)
		} else {
			warnings = append(warnings, w)
		}
	}
	return rf, warnings
}
