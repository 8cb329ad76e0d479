package frontmatter

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/nmlk/internal/errors"
)

var (
	// ErrMissing indicates the content does not start with a "---" line.
	ErrMissing = errors.New("missing frontmatter")

	// ErrUnterminated indicates an opening "---" without a closing one.
	ErrUnterminated = errors.New("missing closing frontmatter delimiter")
)

// Parse reads r and decodes its YAML header into a T.
// It returns the decoded header and the body that follows the closing
// delimiter.
func Parse[T any](r io.Reader) (T, []byte, error) {
	var meta T

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return meta, nil, errors.Wrap(err, "reading frontmatter")
		}
		return meta, nil, ErrMissing
	}
	if strings.TrimSpace(sc.Text()) != "---" {
		return meta, nil, ErrMissing
	}

	var header bytes.Buffer
	closed := false
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		header.WriteString(line)
		header.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return meta, nil, errors.Wrap(err, "reading frontmatter")
	}
	if !closed {
		return meta, nil, ErrUnterminated
	}

	if err := yaml.Unmarshal(header.Bytes(), &meta); err != nil {
		return meta, nil, errors.Wrap(err, "decoding frontmatter")
	}

	var body bytes.Buffer
	for sc.Scan() {
		body.WriteString(strings.TrimSuffix(sc.Text(), "\r"))
		body.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return meta, nil, errors.Wrap(err, "reading body")
	}

	return meta, bytes.TrimLeft(body.Bytes(), "\n"), nil
}
