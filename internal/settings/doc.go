// Package settings registers the leak guard in a host's settings.json.
//
// The file is loaded tolerantly: a missing, empty, malformed or non-object
// file is treated as an empty document, and JSONC comments or trailing commas
// are accepted. Unknown keys survive a rewrite unchanged, although object keys
// are written back in sorted order.
//
// A registration counts as present when its serialized JSON contains the
// hook script's file name anywhere, so a hand-edited entry pointing at the
// same script is left alone.
package settings
