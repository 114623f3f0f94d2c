package combine

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func block(path, content string) string {
	return "==== " + path + " ====\n" + content + "\n\n"
}

func TestAggregateConcatenatesFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "test1.txt"), []byte("Hello"))
	writeFile(t, filepath.Join(root, "test2.txt"), []byte("World"))

	result, err := New(zaptest.NewLogger(t)).Aggregate([]string{root}, nil)
	require.NoError(t, err)

	first := filepath.Join(root, "test1.txt")
	second := filepath.Join(root, "test2.txt")
	assert.Equal(t, block(first, "Hello")+block(second, "World"), result.Output)
	assert.Equal(t, []string{first, second}, result.Files)
	assert.NoError(t, result.Skipped)
}

func TestAggregateUserPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "file.log"), []byte("Log"))
	writeFile(t, filepath.Join(root, "file.txt"), []byte("Text"))

	result, err := New(nil).Aggregate([]string{root}, []string{"*.log"})
	require.NoError(t, err)

	assert.Contains(t, result.Output, "file.txt")
	assert.Contains(t, result.Output, "Text")
	assert.NotContains(t, result.Output, "file.log")
	assert.NotContains(t, result.Output, "Log")
	assert.Equal(t, 1, result.Ignored)
}

func TestAggregateOnlyEmptyFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "empty.txt"), nil)

	result, err := New(nil).Aggregate([]string{root}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyResult)
	assert.Equal(t, KindEmptyResult, KindOf(err))
	assert.Empty(t, result.Output)
}

func TestAggregateEmptyDirectory(t *testing.T) {
	_, err := New(nil).Aggregate([]string{t.TempDir()}, nil)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestAggregateDirectoryPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "data.txt"), []byte("data"))
	writeFile(t, filepath.Join(root, "target", "ignored.txt"), []byte("ignored"))
	writeFile(t, filepath.Join(root, "nested", "target", "deep.txt"), []byte("deep"))

	result, err := New(nil).Aggregate([]string{root}, []string{"Cargo.lock", "target"})
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(root, "data.txt")}, result.Files)
	assert.NotContains(t, result.Output, "ignored")
	assert.NotContains(t, result.Output, "deep")
	assert.Equal(t, 2, result.Ignored)
}

func TestAggregateMissingRoot(t *testing.T) {
	result, err := New(nil).Aggregate([]string{"/no/such/path"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, KindPathNotFound, KindOf(err))
	assert.Contains(t, err.Error(), "/no/such/path")
	assert.Empty(t, result.Output)
	assert.Empty(t, result.Files)
}

func TestAggregateMissingSecondRootDiscardsOutput(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("a"))

	result, err := New(nil).Aggregate([]string{root, filepath.Join(root, "missing")}, nil)
	assert.ErrorIs(t, err, ErrPathNotFound)
	assert.Empty(t, result.Output)
}

func TestAggregateInvalidPattern(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("a"))

	_, err := New(nil).Aggregate([]string{root}, []string{"[unclosed"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidPattern)
	assert.ErrorIs(t, err, doublestar.ErrBadPattern)
	assert.Equal(t, KindInvalidPattern, KindOf(err))
}

func TestAggregateInvalidPatternBeatsMissingRoot(t *testing.T) {
	_, err := New(nil).Aggregate([]string{"/no/such/path"}, []string{"["})
	assert.Equal(t, KindInvalidPattern, KindOf(err))
}

func TestAggregateDecodeErrorIsFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("fine"))
	writeFile(t, filepath.Join(root, "b.txt"), []byte{0xff, 0xfe, 'a'})

	result, err := New(nil).Aggregate([]string{root}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "b.txt")
	assert.Empty(t, result.Output)
}

func TestAggregateRuneCutAtSampleBoundaryIsFatal(t *testing.T) {
	root := t.TempDir()
	content := strings.Repeat("a", SampleSize-1) + "é" + strings.Repeat("a", 100)
	writeFile(t, filepath.Join(root, "boundary.txt"), []byte(content))

	_, err := Aggregate([]string{root}, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestAggregateClassifyFailureIsFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("fine"))
	vanishing := writeFile(t, filepath.Join(root, "b.txt"), []byte("gone before it is read"))

	a := New(nil)
	a.classify = func(path string) (Verdict, error) {
		if path == vanishing {
			require.NoError(t, os.Remove(path))
		}
		return Classify(path)
	}

	result, err := a.Aggregate([]string{root}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "b.txt")
	assert.Empty(t, result.Output)
}

func TestAggregateIgnoredFileIsNotClassified(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("fine"))
	writeFile(t, filepath.Join(root, "latin1.csv"), []byte{0xff, 0xfe, 'a'})

	result, err := New(nil).Aggregate([]string{root}, []string{"*.csv"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "a.txt")}, result.Files)
}

func TestAggregateSkipsNonText(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.go"), []byte("package main\n"))
	writeFile(t, filepath.Join(root, "program"), []byte{0x7f, 'E', 'L', 'F', 0x00, 0x02})
	writeFile(t, filepath.Join(root, "empty.txt"), nil)
	writeFile(t, filepath.Join(root, "control.txt"), []byte("\x01\x02\x03\x04abc"))

	result, err := New(nil).Aggregate([]string{root}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "main.go")}, result.Files)
	assert.Equal(t, 3, result.NotText)
}

func TestAggregateDefaultPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "readme.md"), []byte("# readme"))
	// Text content, but the extension is on the built-in list.
	writeFile(t, filepath.Join(root, "assets", "icon.svg"), []byte("<svg></svg>"))
	writeFile(t, filepath.Join(root, "dist", "bundle.tar.gz"), []byte("not really"))

	result, err := New(nil).Aggregate([]string{root}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "readme.md")}, result.Files)
	assert.Equal(t, 2, result.Ignored)
}

func TestAggregateFileRoot(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, filepath.Join(dir, "notes.txt"), []byte("notes"))
	logFile := writeFile(t, filepath.Join(dir, "debug.log"), []byte("log"))

	out, err := Aggregate([]string{file}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, block(file, "notes"), out)

	// A file root is matched by its own name.
	_, err = Aggregate([]string{logFile}, []string{"*.log"}, nil)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestAggregateMultipleRootsKeepOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "z.txt"), []byte("from first"))
	writeFile(t, filepath.Join(second, "a.txt"), []byte("from second"))

	out, err := Aggregate([]string{first, second}, nil, nil)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "from first"), strings.Index(out, "from second"))
}

func TestAggregateRelativeRootDisplayPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "proj", "src", "lib.rs"), []byte("fn main() {}"))
	chdir(t, root)

	out, err := Aggregate([]string{"proj"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, block(filepath.Join("proj", "src", "lib.rs"), "fn main() {}"), out)
}

func TestAggregateDotRootDisplayPath(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("alpha"))
	chdir(t, root)

	out, err := Aggregate([]string{"."}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, block("."+string(os.PathSeparator)+"a.txt", "alpha"), out)
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestAggregateIsDeterministic(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b/2.txt", "a/1.txt", "c.txt", "a/b/3.txt"} {
		writeFile(t, filepath.Join(root, filepath.FromSlash(name)), []byte(name))
	}

	first, err := Aggregate([]string{root}, nil, nil)
	require.NoError(t, err)
	second, err := Aggregate([]string{root}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	wantOrder := []string{"a/1.txt", "a/b/3.txt", "b/2.txt", "c.txt"}
	last := -1
	for _, name := range wantOrder {
		idx := strings.Index(first, "==== "+filepath.Join(root, filepath.FromSlash(name))+" ====")
		require.GreaterOrEqual(t, idx, 0, name)
		assert.Greater(t, idx, last, name)
		last = idx
	}
}

func TestAggregateDoesNotFollowSymlinks(t *testing.T) {
	outside := t.TempDir()
	secret := writeFile(t, filepath.Join(outside, "secret.txt"), []byte("top secret"))

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("a"))
	if err := os.Symlink(secret, filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	out, err := Aggregate([]string{root}, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, out, "top secret")
}

func TestAggregateLossyDecode(t *testing.T) {
	root := t.TempDir()
	content := append([]byte(strings.Repeat("a", 600)), 0xff, 0xfe, 'b')
	writeFile(t, filepath.Join(root, "tail.txt"), content)

	out, err := Aggregate([]string{root}, nil, nil)
	require.NoError(t, err)
	assert.Contains(t, out, strings.Repeat("a", 600)+"\uFFFD\uFFFDb")
	assert.Equal(t, 2, strings.Count(out, "\uFFFD"))
}

func TestAggregateGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), []byte("secret.txt\n"))
	writeFile(t, filepath.Join(root, "secret.txt"), []byte("hidden value"))
	writeFile(t, filepath.Join(root, "keep.txt"), []byte("kept value"))

	without, err := New(nil).Aggregate([]string{root}, nil)
	require.NoError(t, err)
	assert.Contains(t, without.Output, "hidden value")

	with, err := RunCombine(&Arguments{Paths: []string{root}, Gitignore: true}, nil)
	require.NoError(t, err)
	assert.NotContains(t, with.Output, "hidden value")
	assert.Contains(t, with.Output, "kept value")
	assert.Equal(t, 1, with.Ignored)
}
