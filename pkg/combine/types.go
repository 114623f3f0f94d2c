package combine

import "io/fs"

// Classification constants. These are fixed; changing them changes which
// files end up in the output.
const (
	ProbeSize          = 1024 // bytes read from the start of a file
	SampleSize         = 512  // prefix of the probe checked for UTF-8 and printability
	PrintableThreshold = 0.85 // printable ratio must be strictly above this
)

// EntryKind is the type of a walked filesystem entry.
type EntryKind int

const (
	EntryOther EntryKind = iota // sockets, devices, pipes
	EntryFile
	EntryDir
	EntrySymlink
)

func (k EntryKind) String() string {
	switch k {
	case EntryFile:
		return "file"
	case EntryDir:
		return "dir"
	case EntrySymlink:
		return "symlink"
	default:
		return "other"
	}
}

func kindOf(mode fs.FileMode) EntryKind {
	switch {
	case mode&fs.ModeSymlink != 0:
		return EntrySymlink
	case mode.IsDir():
		return EntryDir
	case mode.IsRegular():
		return EntryFile
	default:
		return EntryOther
	}
}

// Entry is a filesystem entry yielded by Walk.
type Entry struct {
	Path string    // root joined with Rel
	Rel  string    // path relative to the walked root, "" for the root itself
	Kind EntryKind // never follows symlinks below the root
}

// FileContent holds the content of a file after processing.
type FileContent struct {
	Path    string // display path used in the header
	Content string // formatted block: header, content, blank line
}

// Result is the outcome of a successful run.
type Result struct {
	Output  string   // concatenated blocks
	Files   []string // display paths of included files, in output order
	Ignored int      // files excluded by ignore rules
	NotText int      // files rejected by the classifier
	Skipped error    // per-file read failures that were absorbed (multierr)
}
