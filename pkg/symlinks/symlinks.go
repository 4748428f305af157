// Package symlinks mirrors the repo's config directory into the user's
// config home.
//
// Every immediate child of <repo>/config gets a symlink of the same name in
// the config home. Existing real files or directories at those locations are
// never replaced: the whole operation fails before touching anything.
package symlinks

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotstrap/pkg/errors"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/rs/zerolog"
)

// Pair links a repo config item to its location in the user config home
type Pair struct {
	Source string
	Target string
}

// Manager creates and removes the config symlinks
type Manager struct {
	fs         filesystem.FS
	repoConfig string
	userConfig string
	logger     zerolog.Logger
}

// NewManager creates a manager for repoConfig -> userConfig
func NewManager(fs filesystem.FS, repoConfig, userConfig string) *Manager {
	return &Manager{
		fs:         fs,
		repoConfig: repoConfig,
		userConfig: userConfig,
		logger:     logging.GetLogger("symlinks"),
	}
}

// Pairs lists one pair per immediate child of the repo config directory,
// sorted by name. It fails with SYMLINK_CONFLICT if any target exists and is
// not a symlink.
func (m *Manager) Pairs() ([]Pair, error) {
	entries, err := m.fs.ReadDir(m.repoConfig)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "repo config directory %s does not exist", m.repoConfig)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", m.repoConfig)
	}

	pairs := make([]Pair, 0, len(entries))
	for _, entry := range entries {
		pair := Pair{
			Source: filepath.Join(m.repoConfig, entry.Name()),
			Target: filepath.Join(m.userConfig, entry.Name()),
		}

		exists, err := filesystem.Exists(m.fs, pair.Target)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", pair.Target)
		}
		if exists {
			isLink, err := filesystem.IsSymlink(m.fs, pair.Target)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to inspect %s", pair.Target)
			}
			if !isLink {
				return nil, errors.Newf(errors.ErrSymlinkConflict, "%s is expected to be a symlink", pair.Target).
					WithDetail("target", pair.Target).
					WithDetail("source", pair.Source)
			}
		}

		pairs = append(pairs, pair)
	}

	return pairs, nil
}

// Update replaces every target with a fresh symlink to its repo item
func (m *Manager) Update() ([]Pair, error) {
	pairs, err := m.Pairs()
	if err != nil {
		return nil, err
	}

	if err := m.fs.MkdirAll(m.userConfig, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", m.userConfig)
	}

	for _, pair := range pairs {
		if err := m.removeLink(pair.Target); err != nil {
			return nil, err
		}
		if err := m.fs.Symlink(pair.Source, pair.Target); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s -> %s", pair.Target, pair.Source)
		}
		m.logger.Info().Str("source", pair.Source).Str("target", pair.Target).Msg("Symlink created")
	}

	return pairs, nil
}

// Remove deletes every managed symlink; missing links are not an error
func (m *Manager) Remove() ([]Pair, error) {
	pairs, err := m.Pairs()
	if err != nil {
		return nil, err
	}

	for _, pair := range pairs {
		if err := m.removeLink(pair.Target); err != nil {
			return nil, err
		}
		m.logger.Info().Str("target", pair.Target).Msg("Symlink removed")
	}

	return pairs, nil
}

func (m *Manager) removeLink(path string) error {
	if err := m.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to remove %s", path)
	}
	return nil
}
