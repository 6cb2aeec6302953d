package slidedeck

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/ceresimaging/daq-slide-deck/internal/fileutil"
)

// archiveModTime is stamped on every entry so archives of identical trees are
// identical. It is the earliest time the ZIP format can represent.
var archiveModTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Archive writes a deflate-compressed ZIP of the regular files under dir to
// dst. Entry names are relative to dir and use forward slashes. Entries are
// written in lexical order with fixed timestamps and modes, so the result
// depends only on file names and contents.
func Archive(dir, dst string) (a Artifact, err error) {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return Artifact{}, fmt.Errorf("%w: invalid dir path: %s", ErrArchive, dir)
	}

	tf, err := os.CreateTemp(filepath.Split(dst))
	if err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	tmpName := tf.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	d := digest.Canonical.Digester()
	sz := &writeCounter{}
	zw := zip.NewWriter(io.MultiWriter(d.Hash(), tf, sz))

	// WalkDir visits entries in lexical order.
	if err := filepath.WalkDir(dir, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		// Directories are implied by entry names; symlinks are not followed.
		if !de.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		return addZipEntry(zw, p, filepath.ToSlash(rel))
	}); err != nil {
		_ = zw.Close()
		_ = tf.Close()
		return Artifact{}, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	if err := zw.Close(); err != nil {
		_ = tf.Close()
		return Artifact{}, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	if err := tf.Close(); err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	if err := os.Chmod(tmpName, fileutil.FilePermissions); err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return Artifact{}, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	return Artifact{Path: dst, Size: sz.written, Digest: d.Digest().String()}, nil
}

func addZipEntry(zw *zip.Writer, src, name string) error {
	h := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: archiveModTime,
	}
	h.SetMode(fileutil.FilePermissions)

	w, err := zw.CreateHeader(h)
	if err != nil {
		return err
	}
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// writeCounter counts bytes written through it.
type writeCounter struct {
	written int64
}

func (wc *writeCounter) Write(p []byte) (int, error) {
	wc.written += int64(len(p))
	return len(p), nil
}
