package assets

import (
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/thoreinstein/nmlk/internal/errors"
	"github.com/thoreinstein/nmlk/pkg/frontmatter"
)

// Command describes one slash command in the bundle.
type Command struct {
	// File is the Markdown file name, e.g. "secrets.md".
	File string
	// Description is taken from the file's frontmatter when present.
	Description string
}

// Invocation returns the slash form of the command, e.g. "/secrets".
func (c Command) Invocation() string {
	return "/" + strings.TrimSuffix(c.File, ".md")
}

// Skill describes the bundle's skill from its SKILL.md header.
type Skill struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// CommandFiles returns the sorted names of the *.md files in commands/.
// Subdirectories and other files are ignored.
func CommandFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, CommandsDir)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidBundle, "reading %s/: %v", CommandsDir, err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// displayOrder lists the commands shown first, in this order. Others
// follow alphabetically.
var displayOrder = []string{"secrets.md", "add-mcp.md"}

// Commands returns the bundle's slash commands with their descriptions,
// in display order.
func Commands(fsys fs.FS) ([]Command, error) {
	files, err := CommandFiles(fsys)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(files, func(a, b string) int {
		return rank(a) - rank(b)
	})

	cmds := make([]Command, 0, len(files))
	for _, name := range files {
		c := Command{File: name}
		if f, err := fsys.Open(path.Join(CommandsDir, name)); err == nil {
			meta, _, perr := frontmatter.Parse[struct {
				Description string `yaml:"description"`
			}](f)
			f.Close()
			if perr == nil {
				c.Description = meta.Description
			}
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

func rank(file string) int {
	if i := slices.Index(displayOrder, file); i >= 0 {
		return i
	}
	return len(displayOrder)
}

// ReadSkill decodes the SKILL.md header of the skill rooted at dir in fsys.
func ReadSkill(fsys fs.FS, dir string) (Skill, error) {
	f, err := fsys.Open(path.Join(dir, "SKILL.md"))
	if err != nil {
		return Skill{}, errors.Wrap(err, "opening SKILL.md")
	}
	defer f.Close()

	skill, _, err := frontmatter.Parse[Skill](f)
	if err != nil {
		return Skill{}, errors.Wrap(err, "parsing SKILL.md")
	}
	return skill, nil
}

// Invocations joins the slash forms of cmds for display, e.g. "/secrets, /add-mcp".
func Invocations(cmds []Command) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.Invocation()
	}
	return strings.Join(parts, ", ")
}
