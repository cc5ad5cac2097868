package fsrules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rybkr/gitattr/internal/gitcore"
)

// LoadInfoRuleFile reads and parses the repository-local "info" rule
// file for kind — .git/info/exclude for ignore rules, .git/info/attributes
// for attribute rules — rooted at gitDir, the repository's .git
// directory. A missing file is not an error: LoadInfoRuleFile returns a
// nil *gitcore.RuleFile, the same convention as LoadGlobalRuleFile.
func LoadInfoRuleFile(gitDir string, kind gitcore.Kind) (*gitcore.RuleFile, error) {
	name := "exclude"
	if kind == gitcore.KindAttribute {
		name = "attributes"
	}
	path := filepath.Join(gitDir, "info", name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading info rule file %s: %w", path, err)
	}
	return gitcore.ParseRuleFile(path, kind, string(data)), nil
}
