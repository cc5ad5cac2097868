package gitattr

import (
	"fmt"
	"io"

	"github.com/rybkr/gitattr/internal/gitcore"
)

// Re-exported core types. gitattr never redefines gitcore's semantics —
// it only gives the package a name a caller outside this module can
// import without reaching into internal/.
type (
	RuleFile         = gitcore.RuleFile
	RuleSource       = gitcore.RuleSource
	Rule             = gitcore.Rule
	Flags            = gitcore.Flags
	Matcher          = gitcore.Matcher
	MatcherOptions   = gitcore.MatcherOptions
	IgnoreEngine     = gitcore.IgnoreEngine
	IgnoreDecision   = gitcore.IgnoreDecision
	AttributesEngine = gitcore.AttributesEngine
	AttributeMap     = gitcore.AttributeMap
	Attribute        = gitcore.Attribute
	Assignment       = gitcore.Assignment
	State            = gitcore.State
	ParseWarning     = gitcore.ParseWarning
	WarningHandler   = gitcore.WarningHandler
)

const (
	Unspecified = gitcore.Unspecified
	Set         = gitcore.Set
	Unset       = gitcore.Unset
	Custom      = gitcore.Custom
)

const (
	Undetermined = gitcore.Undetermined
	Ignored      = gitcore.Ignored
	NotIgnored   = gitcore.NotIgnored
)

// NewIgnoreEngine constructs an IgnoreEngine over the given info,
// per-directory, and global rule sources (spec §4.3). info and global
// may be nil.
func NewIgnoreEngine(info, global *RuleFile, perDir RuleSource) *IgnoreEngine {
	return gitcore.NewIgnoreEngine(info, global, perDir)
}

// NewAttributesEngine constructs an AttributesEngine over the given
// info, per-directory, and global rule sources (spec §4.4). info and
// global may be nil.
func NewAttributesEngine(info, global *RuleFile, perDir RuleSource) *AttributesEngine {
	return gitcore.NewAttributesEngine(info, global, perDir)
}

// CompileIgnoreRuleFile parses r as a gitignore(5)-format rule file
// sourced from basePath (used only for diagnostics and as the RuleFile's
// Source field). Parsing never fails on malformed content: malformed
// lines are dropped and reported as ParseWarnings; err is non-nil only
// if r itself could not be read.
func CompileIgnoreRuleFile(basePath string, r io.Reader) (*RuleFile, []ParseWarning, error) {
	return compileRuleFile(basePath, gitcore.KindIgnore, r)
}

// CompileAttributesRuleFile is CompileIgnoreRuleFile for
// gitattributes(5)-format rule files.
func CompileAttributesRuleFile(basePath string, r io.Reader) (*RuleFile, []ParseWarning, error) {
	return compileRuleFile(basePath, gitcore.KindAttribute, r)
}

func compileRuleFile(basePath string, kind gitcore.Kind, r io.Reader) (*RuleFile, []ParseWarning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("reading rule file %s: %w", basePath, err)
	}
	rf, warnings := gitcore.ParseRuleFileCollectingWarnings(basePath, kind, string(data), gitcore.MatcherOptions{}, nil)
	return rf, warnings, nil
}
