// File: pkg/combine/config.go
package combine

// Arguments holds the configuration options for the file combining process.
type Arguments struct {
	Paths          []string // Root file or directory paths, processed in order.
	IgnorePatterns []string // User ignore patterns, added to the built-in defaults.
	Gitignore      bool     // If true, each root's .gitignore is honoured as well.
}
