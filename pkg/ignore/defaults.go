package ignore

import "slices"

// defaultPatterns are compiled into every Set ahead of user patterns.
var defaultPatterns = [...]string{
	// executables and object code
	"*.exe", "*.dll", "*.so", "*.dylib", "*.bin", "*.dat", "*.jar", "*.o", "*.a", "*.lib",
	// archives and packages
	"*.zip", "*.tar*", "*.gz", "*.bz2", "*.xz", "*.7z", "*.rar", "*.deb", "*.rpm",
	// images
	"*.jpg", "*.jpeg", "*.png", "*.gif", "*.bmp", "*.svg", "*.ico", "*.webp", "*.psd", "*.tiff",
	// audio
	"*.mp3", "*.wav", "*.ogg", "*.m4a", "*.flac", "*.aac",
	// video
	"*.mp4", "*.avi", "*.mkv", "*.mov", "*.wmv", "*.flv", "*.webm",
	// office documents
	"*.ppt*", "*.ods", "*.odp",
	// system files
	"*.sys", "*.dmp", "*.pak", "*.cab",
}

// DefaultPatterns returns a copy of the built-in globs: executables, archives,
// images, audio, video, office documents and OS artifacts.
func DefaultPatterns() []string {
	return slices.Clone(defaultPatterns[:])
}
