package settings

import (
	"context"
	"os"

	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/logging"
)

// BeforeWrite is called with the settings path before an existing file is
// overwritten. A non-nil error aborts the write.
type BeforeWrite func(path string) error

// EnsureHook registers reg in the settings file at path unless an entry
// already references script. The file is left untouched when nothing changes.
func EnsureHook(ctx context.Context, path, script string, reg Registration, before BeforeWrite) (Action, error) {
	logger := logging.FromContext(ctx)

	done := ActionConfigured
	doc, err := Load(ctx, path)
	switch {
	case errors.Is(err, ErrMalformed):
		done = ActionReplaced
	case err != nil:
		return "", err
	}

	if doc.CountReferences(script) > 0 {
		logger.Debug("hook already registered", "path", path)
		return ActionAlreadyConfigured, nil
	}

	doc.AppendPreToolUse(reg)

	if before != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := before(path); err != nil {
				return "", err
			}
		}
	}

	if err := Save(path, doc); err != nil {
		return "", err
	}

	logger.Info("registered hook", "path", path, "command", reg.Hooks[0].Command)
	return done, nil
}
