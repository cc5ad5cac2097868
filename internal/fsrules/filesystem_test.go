package fsrules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rybkr/gitattr/internal/gitcore"
)

func TestFileSystemSource_RuleFileFor(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewFileSystemSource(dir, gitcore.KindIgnore)
	rf, ok, err := src.RuleFileFor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected a rule file at the root")
	}
	if len(rf.Rules()) != 1 {
		t.Errorf("len(Rules()) = %d, want 1", len(rf.Rules()))
	}
}

func TestFileSystemSource_MissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	src := NewFileSystemSource(dir, gitcore.KindIgnore)
	_, ok, err := src.RuleFileFor("sub")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected ok=false when no rule file is declared")
	}
}

func TestFileSystemSource_SubdirectoryLookup(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, ".gitattributes"), []byte("*.bin binary\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewFileSystemSource(dir, gitcore.KindAttribute)
	rf, ok, err := src.RuleFileFor("a/b")
	if err != nil || !ok {
		t.Fatalf("RuleFileFor(\"a/b\") = _, %v, %v", ok, err)
	}
	if len(rf.Rules()) != 1 {
		t.Errorf("len(Rules()) = %d, want 1", len(rf.Rules()))
	}
}
