// File: pkg/combine/traversal.go
package combine

import (
	"iter"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"
)

// Walk returns a lazy pre-order traversal of root. The root itself is yielded
// first, then every entry beneath it, siblings in name order. Symbolic links
// below the root are yielded as EntrySymlink and never followed. Directories
// that cannot be read are yielded but not descended into, and the error is
// only logged.
//
// Each range over the sequence walks the tree again. Directory handles are
// closed before any child is yielded, so breaking out early leaks nothing.
func Walk(root string, logger *zap.Logger) iter.Seq[Entry] {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(yield func(Entry) bool) {
		info, err := os.Stat(root)
		if err != nil {
			logger.Warn("Error accessing root during traversal", zap.String("path", root), zap.Error(err))
			return
		}

		rootEntry := Entry{Path: root, Kind: kindOf(info.Mode())}
		if !yield(rootEntry) {
			return
		}
		if rootEntry.Kind != EntryDir {
			return
		}

		stack := readChildren(rootEntry, logger)
		for len(stack) > 0 {
			entry := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(entry) {
				return
			}
			if entry.Kind == EntryDir {
				stack = append(stack, readChildren(entry, logger)...)
			}
		}
	}
}

// readChildren lists dir and returns its entries in reverse name order, ready
// to be pushed onto the traversal stack.
func readChildren(dir Entry, logger *zap.Logger) []Entry {
	// os.ReadDir sorts by name and closes the directory before returning.
	dirEntries, err := os.ReadDir(dir.Path)
	if err != nil {
		logger.Warn("Skipping unreadable directory", zap.String("dir", dir.Path), zap.Error(err))
		return nil
	}

	children := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		children = append(children, Entry{
			Path: joinChild(dir.Path, d.Name()),
			Rel:  filepath.Join(dir.Rel, d.Name()),
			Kind: kindOf(d.Type()),
		})
	}
	slices.Reverse(children)
	return children
}

// joinChild appends name to dir without cleaning, so a root given as "." or
// "./src" keeps that prefix in every display path.
func joinChild(dir, name string) string {
	if dir != "" && os.IsPathSeparator(dir[len(dir)-1]) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}
