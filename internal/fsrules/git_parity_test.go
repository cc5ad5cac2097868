package fsrules

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/rybkr/gitattr/internal/gitcore"
)

// gitAvailable reports whether a git executable can be found, grounded
// on Sriram-PR-go-ignore's git_parity_test.go.
func gitAvailable() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

func TestGitParity_Basic(t *testing.T) {
	if !gitAvailable() {
		t.Skip("git not available")
	}

	tests := []struct {
		name       string
		gitignore  string
		paths      []string
		createDirs []string
	}{
		{
			name:      "simple wildcards",
			gitignore: "*.log\n*.tmp\n",
			paths:     []string{"test.log", "debug.log", "test.tmp", "main.go"},
		},
		{
			name:       "directory patterns",
			gitignore:  "build/\nnode_modules/\n",
			paths:      []string{"build/output.js", "node_modules/lodash/index.js", "src/main.go"},
			createDirs: []string{"build", "node_modules/lodash", "src"},
		},
		{
			name:      "negation",
			gitignore: "*.log\n!important.log\n",
			paths:     []string{"test.log", "important.log", "debug.log"},
		},
		{
			name:       "anchored patterns",
			gitignore:  "/root.txt\n",
			paths:      []string{"root.txt", "sub/root.txt"},
			createDirs: []string{"sub"},
		},
		{
			name:       "double star middle",
			gitignore:  "a/**/b\n",
			paths:      []string{"a/b", "a/x/b", "a/x/y/z/b"},
			createDirs: []string{"a/x/y/z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compareWithGit(t, tt.gitignore, tt.paths, tt.createDirs)
		})
	}
}

func compareWithGit(t *testing.T, gitignoreContent string, paths []string, createDirs []string) {
	t.Helper()
	tmpDir := t.TempDir()

	cmd := exec.Command("git", "init")
	cmd.Dir = tmpDir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v\n%s", err, out)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte(gitignoreContent), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, dir := range createDirs {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	for _, p := range paths {
		full := filepath.Join(tmpDir, p)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	src := NewFileSystemSource(tmpDir, gitcore.KindIgnore)
	engine := gitcore.NewIgnoreEngine(nil, nil, src)

	for _, p := range paths {
		gitResult := gitCheckIgnore(t, tmpDir, p)
		info, err := os.Stat(filepath.Join(tmpDir, p))
		isDir := err == nil && info.IsDir()

		ourResult := engine.IsIgnored(p, isDir)
		if ourResult != gitResult {
			t.Errorf("path %q: our result = %v, git result = %v\ngitignore:\n%s", p, ourResult, gitResult, gitignoreContent)
		}
	}
}

func gitCheckIgnore(t *testing.T, repoDir, path string) bool {
	t.Helper()
	cmd := exec.Command("git", "check-ignore", "-q", path)
	cmd.Dir = repoDir
	err := cmd.Run()
	if err == nil {
		return true
	}
	if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() == 1 {
		return false
	}
	t.Logf("git check-ignore warning for %q: %v", path, err)
	return false
}
