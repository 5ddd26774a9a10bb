// Package dirsize computes the apparent size of files and directory trees.
package dirsize

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Size returns the apparent size in bytes of path. A directory's size is the
// sum of its entries, recursively. Missing paths count as 0. Symbolic links
// are not followed; a link contributes its own size.
func Size(path string) (uint64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	if !info.IsDir() {
		return uint64(info.Size()), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		// Removed between the stat and the listing.
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}

	var total uint64
	for _, entry := range entries {
		n, err := Size(filepath.Join(path, entry.Name()))
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Sum returns the total size of every path in rel, joined onto root.
func Sum(root string, rel []string) (uint64, error) {
	var total uint64
	for _, p := range rel {
		n, err := Size(filepath.Join(root, p))
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
