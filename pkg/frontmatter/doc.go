// Package frontmatter parses the YAML header of skill and slash-command
// Markdown files.
//
// A header is the block between a leading "---" line and the next "---"
// line. Both LF and CRLF line endings are accepted.
//
//	type skillMeta struct {
//		Name        string `yaml:"name"`
//		Description string `yaml:"description"`
//	}
//
//	meta, body, err := frontmatter.Parse[skillMeta](f)
//	if errors.Is(err, frontmatter.ErrMissing) {
//		// plain Markdown
//	}
package frontmatter
