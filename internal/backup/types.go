package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/nmlk/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// ManifestFile is the manifest's name inside a backup directory.
const ManifestFile = "manifest.json"

// DefaultRetentionCount is the number of backups kept per scope.
const DefaultRetentionCount = 5

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backups exist for the requested scope or ID.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a stored file no longer matches its hash.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one backup. It is stored as manifest.json.
type Manifest struct {
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	Scope       string    `json:"scope"`
	Files       []File    `json:"files"`
	ToolVersion string    `json:"tool_version"`

	// ID is the backup directory name. It is filled in when loading.
	ID string `json:"-"`
}

// File describes one backed up file.
type File struct {
	OriginalPath string      `json:"original_path"`
	RelPath      string      `json:"rel_path"`
	SHA256Hash   string      `json:"sha256_hash"`
	Mode         fs.FileMode `json:"mode"`
}
