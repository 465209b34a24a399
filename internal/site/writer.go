package site

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

var errNotAbsolute = errors.New("must be an absolute URL")

// prepareOutputDir creates outDir, removing previous output first when clean
// is set. It refuses to clean a directory that contains the entry point.
func prepareOutputDir(outDir, entryPoint string, clean bool) error {
	if clean {
		absOut, err := filepath.Abs(outDir)
		if err != nil {
			return derrors.OutputError("resolve output directory", err)
		}
		absRoot, err := filepath.Abs(entryPoint)
		if err != nil {
			return derrors.OutputError("resolve entry point", err)
		}
		if within(absOut, absRoot) {
			return derrors.ConfigInvalid(fmt.Sprintf("refusing to clean output directory %s: it contains the entry point %s", outDir, entryPoint))
		}
		if err := os.RemoveAll(absOut); err != nil {
			return derrors.OutputError("clean output directory", err)
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return derrors.OutputError("create output directory", err)
	}
	return nil
}

// within reports whether child is dir or below it.
func within(dir, child string) bool {
	rel, err := filepath.Rel(dir, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a partially written page.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
