// Package fsrules provides the filesystem-backed reference
// implementation of gitcore.RuleSource, global rule-file resolution
// (core.excludesFile / core.attributesFile and the XDG fallbacks), and
// an fsnotify-based Watcher that invalidates engine caches when rule
// files change on disk.
package fsrules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rybkr/gitattr/internal/gitcore"
)

// FileSystemSource is a gitcore.RuleSource backed by a real directory
// tree: RuleFileFor(dir) reads dir/.gitignore or dir/.gitattributes
// (depending on Kind) relative to Root.
type FileSystemSource struct {
	Root string
	Kind gitcore.Kind
}

// NewFileSystemSource constructs a FileSystemSource rooted at root.
func NewFileSystemSource(root string, kind gitcore.Kind) *FileSystemSource {
	return &FileSystemSource{Root: root, Kind: kind}
}

func (s *FileSystemSource) fileName() string {
	if s.Kind == gitcore.KindAttribute {
		return ".gitattributes"
	}
	return ".gitignore"
}

// RuleFileFor implements gitcore.RuleSource.
func (s *FileSystemSource) RuleFileFor(dir string) (*gitcore.RuleFile, bool, error) {
	full := filepath.Join(s.Root, filepath.FromSlash(dir), s.fileName())
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading rule file %s: %w", full, err)
	}
	source := filepath.ToSlash(filepath.Join(dir, s.fileName()))
	return gitcore.ParseRuleFile(source, s.Kind, string(data)), true, nil
}
