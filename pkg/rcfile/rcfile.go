// Package rcfile keeps a single marker line in a shell RC file.
//
// Lines are compared after trimming surrounding whitespace, so re-running
// EnsureLine never produces duplicates and DropLine removes every copy.
// When a rewrite happens, every kept line is written back trimmed.
// Rewrites go through a sibling temporary file that is renamed over the
// original. If the RC file is a symlink, the file it points to is patched.
package rcfile

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
)

// TempSuffix is appended to the RC file name for the temporary sibling
const TempSuffix = ".bak"

const maxLinkHops = 16

// DropLine removes every line equal to line (after trimming) from path.
// It reports whether anything was removed; if not, the file is not written.
func DropLine(fsys filesystem.FS, path, line string) (bool, error) {
	logger := logging.GetLogger("rcfile")

	path, err := resolve(fsys, path)
	if err != nil {
		return false, err
	}

	lines, mode, err := readLines(fsys, path)
	if err != nil {
		return false, err
	}

	target := strings.TrimSpace(line)
	kept := make([]string, 0, len(lines))
	found := false
	for _, l := range lines {
		if strings.TrimSpace(l) == target {
			found = true
			continue
		}
		kept = append(kept, strings.TrimSpace(l))
	}

	if !found {
		return false, nil
	}

	if err := replace(fsys, path, joinLines(kept), mode); err != nil {
		return false, err
	}

	logger.Debug().Str("path", path).Str("line", target).Msg("Line removed")
	return true, nil
}

// EnsureLine leaves exactly one copy of line at the end of path
func EnsureLine(fsys filesystem.FS, path, line string) error {
	logger := logging.GetLogger("rcfile")

	path, err := resolve(fsys, path)
	if err != nil {
		return err
	}

	if _, err := DropLine(fsys, path, line); err != nil {
		return err
	}

	lines, mode, err := readLines(fsys, path)
	if err != nil {
		return err
	}
	lines = append(lines, strings.TrimSpace(line))

	if err := replace(fsys, path, joinLines(lines), mode); err != nil {
		return err
	}

	logger.Debug().Str("path", path).Str("line", line).Msg("Line ensured")
	return nil
}

// CountLine returns how many lines of path equal line after trimming
func CountLine(fsys filesystem.FS, path, line string) (int, error) {
	lines, _, err := readLines(fsys, path)
	if err != nil {
		return 0, err
	}

	target := strings.TrimSpace(line)
	count := 0
	for _, l := range lines {
		if strings.TrimSpace(l) == target {
			count++
		}
	}
	return count, nil
}

func readLines(fsys filesystem.FS, path string) ([]string, fs.FileMode, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return nil, 0, statError(err, path)
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, 0, statError(err, path)
	}

	if len(data) == 0 {
		return nil, info.Mode().Perm(), nil
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n"), info.Mode().Perm(), nil
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func replace(fsys filesystem.FS, path, content string, mode fs.FileMode) error {
	tmp := path + TempSuffix
	if err := fsys.WriteFile(tmp, []byte(content), mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tmp)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", path)
	}
	return nil
}

// resolve follows symlinks so the link itself survives the rename
func resolve(fsys filesystem.FS, path string) (string, error) {
	for i := 0; i < maxLinkHops; i++ {
		isLink, err := filesystem.IsSymlink(fsys, path)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", path)
		}
		if !isLink {
			return path, nil
		}

		dest, err := fsys.Readlink(path)
		if err != nil {
			return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to read link %s", path)
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", errors.Newf(errors.ErrFileAccess, "too many levels of symbolic links at %s", path)
}

func statError(err error, path string) error {
	if os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileNotFound, "%s does not exist", path)
	}
	return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", path)
}
