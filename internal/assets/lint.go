package assets

import (
	"bufio"
	"io/fs"
	"path"
	"regexp"
	"strings"

	"github.com/thoreinstein/nmlk/internal/validator"
)

// MaxNameLength bounds skill and command names.
const MaxNameLength = 64

// namePattern allows lowercase alphanumerics separated by single hyphens.
var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Lint checks a bundle beyond its layout: the skill header, command names
// and descriptions, and the shebang of every shell script. Content is
// installed as-is, so these are warnings; only a layout problem reported
// by Validate is an error.
func Lint(fsys fs.FS) *validator.Result {
	r := &validator.Result{}
	if err := Validate(fsys); err != nil {
		r.Errorf("", "", "%v", err)
		return r
	}

	lintSkill(r, fsys)
	lintCommands(r, fsys)
	lintScripts(r, fsys)
	return r
}

func lintSkill(r *validator.Result, fsys fs.FS) {
	file := path.Join(SkillName, "SKILL.md")
	skill, err := ReadSkill(fsys, SkillName)
	if err != nil {
		r.Warnf(file, "", "%v", err)
		return
	}

	switch {
	case skill.Name == "":
		r.Warnf(file, "name", "is required")
	case len(skill.Name) > MaxNameLength:
		r.Warnf(file, "name", "must be at most %d characters", MaxNameLength)
	case !namePattern.MatchString(skill.Name):
		r.Warnf(file, "name", "%q must be lowercase alphanumeric with single hyphens", skill.Name)
	case skill.Name != SkillName:
		r.Warnf(file, "name", "%q must match the directory name %q", skill.Name, SkillName)
	}

	if strings.TrimSpace(skill.Description) == "" {
		r.Warnf(file, "description", "is empty; hosts use it to decide when to load the skill")
	}
}

func lintCommands(r *validator.Result, fsys fs.FS) {
	cmds, err := Commands(fsys)
	if err != nil {
		r.Warnf(CommandsDir, "", "%v", err)
		return
	}
	for _, c := range cmds {
		file := path.Join(CommandsDir, c.File)
		if name := strings.TrimSuffix(c.File, ".md"); !namePattern.MatchString(name) {
			r.Warnf(file, "", "%q is not a valid slash command name", name)
		}
		if strings.TrimSpace(c.Description) == "" {
			r.Warnf(file, "description", "is empty")
		}
	}
}

func lintScripts(r *validator.Result, fsys fs.FS) {
	_ = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(p, ".sh") {
			return nil
		}
		if !hasShebang(fsys, p) {
			r.Warnf(p, "", "missing #! interpreter line")
		}
		return nil
	})
}

func hasShebang(fsys fs.FS, p string) bool {
	f, err := fsys.Open(p)
	if err != nil {
		return false
	}
	defer f.Close()

	line, _ := bufio.NewReader(f).ReadString('\n')
	return strings.HasPrefix(line, "#!")
}
