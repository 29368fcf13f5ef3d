package storage

import (
	"fmt"
	"os/exec"
	"strings"
)

// Stage runs git add on the generated files that exist
func (s *Storage) Stage(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if s.Exists(p) {
			existing = append(existing, p)
		}
	}

	if len(existing) == 0 {
		return nil
	}

	args := append([]string{"add", "--"}, existing...)
	cmd := exec.Command("git", args...)
	cmd.Dir = s.Root
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git add: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// IsGitRepo checks if the root is inside a git repository
func (s *Storage) IsGitRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = s.Root
	return cmd.Run() == nil
}

// GitStatus returns the short status of paths under the root
func (s *Storage) GitStatus(paths ...string) string {
	args := append([]string{"status", "--short", "--"}, paths...)
	cmd := exec.Command("git", args...)
	cmd.Dir = s.Root
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return string(output)
}
