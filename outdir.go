package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// maxNameSuffix bounds the collision probing for output directory names.
const maxNameSuffix = 99

// claimOutputDir creates and returns the output directory for a
// configuration. The base name is deterministic; if it is taken, suffixes
// -2..-99 are probed in order. Creation doubles as the claim, so concurrent
// sweep runs of identical configurations cannot race for the same name.
func claimOutputDir(root string, c *config) (string, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return "", err
	}

	base := filepath.Join(root, c.name())

	path := base
	for n := 2; ; n++ {
		err := os.Mkdir(path, 0755)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", err
		}
		if n > maxNameSuffix {
			return "", fmt.Errorf("no unused output directory name for %s (suffixes up to -%d taken)",
				base, maxNameSuffix)
		}
		path = fmt.Sprintf("%s-%d", base, n)
	}
}
