package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/fs"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/internal/logging"
	"github.com/thoreinstein/nmlk/pkg/fileutil"
)

// Keys on the path to the hook list.
const (
	HooksKey      = "hooks"
	PreToolUseKey = "PreToolUse"
)

// Action is the outcome of EnsureHook, worded for the progress report.
type Action string

const (
	ActionConfigured        Action = "configured"
	ActionAlreadyConfigured Action = "already configured"
	// ActionReplaced means the file held no usable settings object and was
	// rewritten with only the registration.
	ActionReplaced Action = "configured (unreadable settings replaced)"
)

// ErrMalformed is returned by Load when the file exists but is not a JSON
// object.
var ErrMalformed = errors.New("settings file is not a JSON object")

// Document is a decoded settings file. Numbers are kept as json.Number.
type Document map[string]any

// HookCommand is one command in a registration's hook list.
type HookCommand struct {
	Type    string `json:"type"`
	Command string `json:"command"`
}

// Registration is a PreToolUse entry: run Hooks when the tool matches Matcher.
type Registration struct {
	Matcher string        `json:"matcher"`
	Hooks   []HookCommand `json:"hooks"`
}

// NewRegistration returns the entry that runs script with bash for matcher.
func NewRegistration(matcher, scriptPath string) Registration {
	return Registration{
		Matcher: matcher,
		Hooks:   []HookCommand{{Type: "command", Command: "bash " + shellWord(scriptPath)}},
	}
}

// shellWord single-quotes p when the shell would split or expand it.
// A leading "~/" stays outside the quotes so the shell still expands it.
func shellWord(p string) string {
	if !strings.ContainsAny(p, " \t\n'\"$`\\*?[]{}()<>|&;#!") {
		return p
	}
	prefix := ""
	if strings.HasPrefix(p, "~/") {
		prefix, p = "~/", p[2:]
	}
	return prefix + "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
}

// Load reads the settings file at path.
// A missing file yields an empty document. Content that is not a JSON object
// yields an empty document together with an error wrapping ErrMalformed, so
// the caller can overwrite the file and say so. Any other read failure is
// returned with a nil document.
func Load(ctx context.Context, path string) (Document, error) {
	logger := logging.FromContext(ctx)

	data, err := fileutil.ReadLimited(path, fileutil.MaxSettingsSize)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("settings file absent", "path", path)
		return Document{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	doc, err := Parse(data)
	if err != nil {
		logger.Warn("settings file unreadable, starting from an empty document", "path", path, "error", err)
		return Document{}, errors.Wrapf(ErrMalformed, "%s: %v", path, err)
	}
	return doc, nil
}

// Parse decodes data as a JSON object. JSONC is accepted.
func Parse(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil
	}

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing settings")
	}

	dec := json.NewDecoder(bytes.NewReader(std))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(err, "decoding settings")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after settings object")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.Newf("settings top level is %T, not an object", v)
	}
	return Document(obj), nil
}

// PreToolUse returns hooks.PreToolUse, creating or replacing any missing
// or wrongly typed node on the way.
func (d Document) PreToolUse() []any {
	hooks, ok := d[HooksKey].(map[string]any)
	if !ok {
		hooks = map[string]any{}
		d[HooksKey] = hooks
	}
	entries, ok := hooks[PreToolUseKey].([]any)
	if !ok {
		entries = []any{}
		hooks[PreToolUseKey] = entries
	}
	return entries
}

// AppendPreToolUse adds entry to the end of hooks.PreToolUse.
func (d Document) AppendPreToolUse(entry any) {
	entries := d.PreToolUse()
	d[HooksKey].(map[string]any)[PreToolUseKey] = append(entries, entry)
}

// CountReferences returns how many PreToolUse entries mention script.
// It does not modify d.
func (d Document) CountReferences(script string) int {
	hooks, _ := d[HooksKey].(map[string]any)
	entries, _ := hooks[PreToolUseKey].([]any)

	n := 0
	for _, e := range entries {
		if references(e, script) {
			n++
		}
	}
	return n
}

func references(entry any, script string) bool {
	data, err := json.Marshal(entry)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), script)
}

// Save writes d to path atomically as 2-space indented JSON.
func Save(path string, d Document) error {
	return errors.Wrapf(fileutil.AtomicWriteJSON(path, d), "writing %s", path)
}
