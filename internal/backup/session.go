package backup

import (
	"context"
	"path/filepath"

	"github.com/thoreinstein/nmlk/internal/logging"
)

// Session backs up each file at most once during one installer run.
// A nil *Session is valid and never backs anything up.
type Session struct {
	mgr  *Manager
	ctx  context.Context
	done map[string]bool
	ids  []string
}

// NewSession starts a session that stores backups through mgr.
func NewSession(ctx context.Context, mgr *Manager) *Session {
	return &Session{
		mgr:  mgr,
		ctx:  ctx,
		done: make(map[string]bool),
	}
}

// Before returns a callback that backs up path under scope the first time
// it is called for that path, then prunes the scope to the retention count.
// On a nil Session it returns nil.
func (s *Session) Before(scope string) func(path string) error {
	if s == nil {
		return nil
	}
	return func(path string) error {
		key := scope + "\x00" + filepath.Clean(path)
		if s.done[key] {
			return nil
		}

		manifest, err := s.mgr.Backup(scope, []string{path})
		if err != nil {
			return err
		}
		s.done[key] = true
		s.ids = append(s.ids, scope+"/"+manifest.ID)

		logging.FromContext(s.ctx).Info("backed up file", "scope", scope, "id", manifest.ID, "path", path)

		return s.mgr.Prune(scope, s.mgr.Retention())
	}
}

// Created returns the "scope/id" of every backup taken so far.
func (s *Session) Created() []string {
	if s == nil {
		return nil
	}
	return s.ids
}
