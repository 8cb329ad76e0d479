package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/paths"
	"github.com/thoreinstein/nmlk/pkg/fileutil"
)

// Version is recorded in new manifests. It is set by the CLI at startup.
var Version = "dev"

const idLayout = "20060102T150405"

// Manager creates, lists, restores and prunes backups.
type Manager struct {
	rootDir   string
	retention int
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets the number of backups kept per scope.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retention = n
		}
	}
}

// WithClock overrides the time source used for IDs and timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager rooted at paths.BackupDir unless overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:   paths.BackupDir(),
		retention: DefaultRetentionCount,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Root returns the backup root directory.
func (m *Manager) Root() string {
	return m.rootDir
}

// Retention returns the number of backups kept per scope.
func (m *Manager) Retention() int {
	return m.retention
}

// Backup copies files into a new backup under scope and returns its manifest.
// Paths that do not exist are skipped; if none exist no backup is created.
func (m *Manager) Backup(scope string, files []string) (*Manifest, error) {
	if scope == "" {
		return nil, errors.New("scope is required")
	}
	if len(files) == 0 {
		return nil, errors.New("at least one path is required")
	}

	now := m.now()
	id, dir, err := m.reserve(scope, now)
	if err != nil {
		return nil, err
	}

	var copied []File
	for _, p := range files {
		info, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			os.RemoveAll(dir)
			return nil, errors.Wrapf(err, "stat %s", p)
		}
		if info.IsDir() {
			os.RemoveAll(dir)
			return nil, errors.Newf("%s is a directory", p)
		}

		f, err := backupFile(p, dir)
		if err != nil {
			os.RemoveAll(dir)
			return nil, errors.Wrapf(err, "backing up %s", p)
		}
		copied = append(copied, f)
	}

	if len(copied) == 0 {
		os.RemoveAll(dir)
		return nil, errors.New("no files to back up")
	}

	manifest := &Manifest{
		Version:     ManifestVersion,
		CreatedAt:   now.UTC(),
		Scope:       scope,
		Files:       copied,
		ToolVersion: Version,
		ID:          id,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, ManifestFile), manifest); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	return manifest, nil
}

// reserve creates a fresh backup directory for scope, suffixing the
// timestamp ID with -2, -3, ... when it is already taken.
func (m *Manager) reserve(scope string, now time.Time) (string, string, error) {
	scopeDir := m.scopeDir(scope)
	if err := paths.EnsureDir(scopeDir, paths.DefaultDirPerm); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}

	base := now.Format(idLayout)
	for n := 1; ; n++ {
		id := base
		if n > 1 {
			id = base + "-" + strconv.Itoa(n)
		}
		dir := filepath.Join(scopeDir, id)
		err := os.Mkdir(dir, paths.DefaultDirPerm)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
}

func backupFile(src, backupDir string) (File, error) {
	rel := relPath(src)
	dst := filepath.Join(backupDir, rel)

	if err := os.MkdirAll(filepath.Dir(dst), paths.DefaultDirPerm); err != nil {
		return File{}, errors.Wrap(err, "creating parent directory")
	}

	hash, mode, err := copyFile(src, dst)
	if err != nil {
		return File{}, err
	}

	return File{
		OriginalPath: src,
		RelPath:      rel,
		SHA256Hash:   hash,
		Mode:         mode,
	}, nil
}

// Restore writes every file in the backup back to its original location.
// All hashes are checked before the first file is written.
func (m *Manager) Restore(scope, id string) (*Manifest, error) {
	manifest, err := m.Get(scope, id)
	if err != nil {
		return nil, err
	}

	dir := m.backupPath(scope, id)
	for _, f := range manifest.Files {
		hash, err := hashFile(filepath.Join(dir, f.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", f.RelPath)
		}
		if hash != f.SHA256Hash {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", f.RelPath)
		}
	}

	for _, f := range manifest.Files {
		if err := os.MkdirAll(filepath.Dir(f.OriginalPath), paths.DefaultDirPerm); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", f.OriginalPath)
		}

		data, err := os.ReadFile(filepath.Join(dir, f.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", f.RelPath)
		}
		if err := fileutil.AtomicWriteFile(f.OriginalPath, data, f.Mode.Perm()); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", f.OriginalPath)
		}
	}

	return manifest, nil
}

// List returns the backups for scope, newest first.
func (m *Manager) List(scope string) ([]Manifest, error) {
	if scope == "" {
		return nil, errors.New("scope is required")
	}

	entries, err := os.ReadDir(m.scopeDir(scope))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoBackupsFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(scope, entry.Name())
		if err != nil {
			// Incomplete or foreign directory.
			continue
		}
		manifests = append(manifests, *manifest)
	}

	if len(manifests) == 0 {
		return nil, ErrNoBackupsFound
	}

	sortNewestFirst(manifests)
	return manifests, nil
}

// ListAll returns the backups of every scope, newest first.
func (m *Manager) ListAll() ([]Manifest, error) {
	entries, err := os.ReadDir(m.rootDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoBackupsFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading backup directory")
	}

	var all []Manifest
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifests, err := m.List(entry.Name())
		if errors.Is(err, ErrNoBackupsFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		all = append(all, manifests...)
	}

	if len(all) == 0 {
		return nil, ErrNoBackupsFound
	}

	sortNewestFirst(all)
	return all, nil
}

// Prune removes all but the newest keep backups for scope.
func (m *Manager) Prune(scope string, keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	manifests, err := m.List(scope)
	if errors.Is(err, ErrNoBackupsFound) {
		return nil
	}
	if err != nil {
		return err
	}

	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(scope, manifests[i].ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
	}
	return nil
}

// Get returns the manifest of one backup.
func (m *Manager) Get(scope, id string) (*Manifest, error) {
	if !validName(scope) {
		return nil, errors.Newf("invalid backup scope %q", scope)
	}
	if !validName(id) {
		return nil, errors.Newf("invalid backup ID %q", id)
	}

	data, err := os.ReadFile(filepath.Join(m.backupPath(scope, id), ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s/%s", scope, id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrap(err, "parsing manifest")
	}

	manifest.ID = id
	if manifest.Scope == "" {
		manifest.Scope = scope
	}
	return &manifest, nil
}

// validName reports whether s is a single path element.
func validName(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

func (m *Manager) backupPath(scope, id string) string {
	return filepath.Join(m.scopeDir(scope), id)
}

func (m *Manager) scopeDir(scope string) string {
	return filepath.Join(m.rootDir, scope)
}

func sortNewestFirst(manifests []Manifest) {
	slices.SortStableFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst and returns the content hash and source mode.
func copyFile(src, dst string) (string, fs.FileMode, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}

	return hex.EncodeToString(h.Sum(nil)), info.Mode().Perm(), nil
}

// relPath maps an absolute path to a storage path inside a backup,
// dropping the leading separator and any colons.
func relPath(abs string) string {
	clean := filepath.Clean(abs)
	clean = strings.ReplaceAll(clean, ":", "")
	return strings.TrimLeft(clean, string(filepath.Separator))
}
