// Package backup keeps verified copies of files nmlk is about to modify.
//
// Each backup is a directory holding the copied files and a manifest with
// their SHA256 hashes:
//
//	$XDG_CONFIG_HOME/nmlk/backups/
//	└── {scope}/            claude, opencode or shell
//	    └── {id}/           20260123T100712, 20260123T100712-2, ...
//	        ├── manifest.json
//	        └── {copied files...}
//
// The installer does not call [Manager.Backup] directly. It opens a
// [Session] for the run and asks it for a pre-write callback per scope;
// the session copies each file at most once and prunes old backups
// afterwards.
//
// [Manager.Restore] verifies every hash before writing anything back.
package backup
