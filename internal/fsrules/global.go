package fsrules

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/rybkr/gitattr/internal/gitcore"
)

// LoadGlobalRuleFile resolves and parses the user's global rule file
// for kind (core.excludesFile for ignore rules, core.attributesFile for
// attribute rules, falling back to the XDG git config directory). A
// missing file is not an error: LoadGlobalRuleFile returns a nil
// *gitcore.RuleFile.
func LoadGlobalRuleFile(kind gitcore.Kind) (*gitcore.RuleFile, error) {
	path, err := ResolveGlobalRulePath(kind)
	if err != nil {
		return nil, fmt.Errorf("resolving global rule file path: %w", err)
	}
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading global rule file %s: %w", path, err)
	}
	return gitcore.ParseRuleFile(path, kind, string(data)), nil
}

// ResolveGlobalRulePath determines the path to the global rule file for
// kind, trying git config first and falling back to the XDG
// convention. Returns an error if the home directory needed for the
// XDG fallback cannot be determined, or if a configured path's "~user"
// prefix cannot be expanded.
func ResolveGlobalRulePath(kind gitcore.Kind) (string, error) {
	configKey, xdgName := "core.excludesFile", "ignore"
	if kind == gitcore.KindAttribute {
		configKey, xdgName = "core.attributesFile", "attributes"
	}

	path, err := gitConfigValue(configKey)
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}

	return xdgGitConfigPath(xdgName)
}

// gitConfigValue reads a global git config key. A missing git
// executable, an unset key, or any other command failure is not
// treated as an error: it simply yields an empty path so the caller
// falls through to the XDG default.
func gitConfigValue(key string) (string, error) {
	out, err := exec.Command("git", "config", "--global", key).Output()
	if err != nil {
		return "", nil
	}

	path := strings.TrimSpace(string(out))
	if path == "" {
		return "", nil
	}
	return expandTilde(path)
}

// xdgGitConfigPath returns $XDG_CONFIG_HOME/git/name, or
// ~/.config/git/name if XDG_CONFIG_HOME is unset.
func xdgGitConfigPath(name string) (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", name), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determining home directory: %w", err)
	}
	return filepath.Join(home, ".config", "git", name), nil
}

// expandTilde expands a leading "~" or "~user" prefix in path.
func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	userPart, rest, found := strings.Cut(path, "/")
	if !found {
		userPart, rest = path, ""
	} else {
		rest = "/" + rest
	}

	var homeDir string
	if userPart == "~" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding ~: %w", err)
		}
		homeDir = dir
	} else {
		u, err := user.Lookup(userPart[1:])
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", userPart, err)
		}
		homeDir = u.HomeDir
	}

	return homeDir + rest, nil
}
