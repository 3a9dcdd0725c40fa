package browser

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// safeCopy copies a SQLite cookie store (and its -wal and -shm companions
// when present) out of fsys into a temporary directory on the real
// filesystem, where the sqlite driver can open it without racing the
// browser that owns the original.
//
// The caller must invoke cleanup when done with the copy.
func safeCopy(fsys afero.Fs, srcPath string) (copiedPath string, cleanup func(), err error) {
	info, err := fsys.Stat(srcPath)
	if err != nil {
		return "", nil, fmt.Errorf("cookie store not found: %s", srcPath)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("%s is a directory, expected a cookie store file", srcPath)
	}
	if info.Size() == 0 {
		return "", nil, fmt.Errorf("cookie store at %s is empty or corrupted", srcPath)
	}

	tempDir, err := os.MkdirTemp("", "moreos-cookies-*")
	if err != nil {
		return "", nil, fmt.Errorf("cannot create temp directory: %w", err)
	}
	cleanup = func() { os.RemoveAll(tempDir) }

	baseName := filepath.Base(srcPath)
	if err := copyOut(fsys, srcPath, filepath.Join(tempDir, baseName)); err != nil {
		cleanup()
		return "", nil, err
	}
	// WAL and SHM companions are best-effort.
	for _, suffix := range []string{"-wal", "-shm"} {
		companion := srcPath + suffix
		if _, err := fsys.Stat(companion); err == nil {
			_ = copyOut(fsys, companion, filepath.Join(tempDir, baseName+suffix))
		}
	}
	return filepath.Join(tempDir, baseName), cleanup, nil
}

// copyOut copies a file from fsys onto the real filesystem.
func copyOut(fsys afero.Fs, src, dst string) error {
	in, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open source file %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("cannot create destination file %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("cannot copy %s: %w", src, err)
	}
	return nil
}
