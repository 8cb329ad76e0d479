package deploy

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/thoreinstein/nmlk/internal/assets"
	"github.com/thoreinstein/nmlk/internal/logging"
	"github.com/thoreinstein/nmlk/internal/platform"
)

func testBundle() fstest.MapFS {
	return fstest.MapFS{
		"keychain-secrets/SKILL.md":             {Data: []byte("skill v2\n")},
		"keychain-secrets/scripts/get-secret.sh": {Data: []byte("#!/bin/sh\n"), Mode: 0o444},
		"keychain-secrets/reference/usage.txt":   {Data: []byte("usage\n")},
		"commands/secrets.md":                    {Data: []byte("secrets\n")},
		"commands/add-mcp.md":                    {Data: []byte("add-mcp\n")},
		"commands/README":                        {Data: []byte("not a command\n")},
		"hooks/block-unsafe-mcp-add.sh":          {Data: []byte("#!/bin/sh\nexit 0\n"), Mode: 0o444},
	}
}

func testHost(t *testing.T) platform.Host {
	t.Helper()
	h, err := platform.New(t.TempDir(), "claude", "")
	if err != nil {
		t.Fatal(err)
	}
	for _, d := range h.Dirs() {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	return h
}

func testContext(t *testing.T) context.Context {
	return logging.NewContext(context.Background(), logging.ForTest(t))
}

func mode(t *testing.T, p string) os.FileMode {
	t.Helper()
	info, err := os.Stat(p)
	if err != nil {
		t.Fatal(err)
	}
	return info.Mode().Perm()
}

func TestSkill(t *testing.T) {
	ctx := testContext(t)
	h := testHost(t)
	dst := h.SkillPath(assets.SkillName)

	// A stale file and a user-added file from an earlier install.
	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dst, "SKILL.md"), []byte("skill v1\n"), 0o444); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dst, "notes.md"), []byte("mine\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Skill(ctx, testBundle(), h); err != nil {
		t.Fatalf("Skill() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "SKILL.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "skill v2\n" {
		t.Errorf("SKILL.md = %q, want overwritten content", got)
	}
	if _, err := os.Stat(filepath.Join(dst, "notes.md")); err != nil {
		t.Errorf("user file should survive: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "reference", "usage.txt")); err != nil {
		t.Errorf("nested file not copied: %v", err)
	}
	if m := mode(t, filepath.Join(dst, "scripts", "get-secret.sh")); m != ExecPerm {
		t.Errorf("script mode = %o, want %o", m, ExecPerm)
	}
	if m := mode(t, filepath.Join(dst, "SKILL.md")); m != FilePerm {
		t.Errorf("SKILL.md mode = %o, want %o", m, FilePerm)
	}
}

func TestCommands(t *testing.T) {
	h := testHost(t)

	names, err := Commands(testContext(t), testBundle(), h)
	if err != nil {
		t.Fatalf("Commands() error = %v", err)
	}
	if len(names) != 2 {
		t.Fatalf("Commands() = %v, want 2 files", names)
	}

	entries, err := os.ReadDir(h.CommandsDir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("commands dir has %d entries, want exactly 2", len(entries))
	}
}

func TestHook(t *testing.T) {
	ctx := testContext(t)
	h := testHost(t)

	for range 2 {
		dst, err := Hook(ctx, testBundle(), h)
		if err != nil {
			t.Fatalf("Hook() error = %v", err)
		}
		if dst != h.HookPath(assets.HookScript) {
			t.Errorf("Hook() path = %q", dst)
		}
		if m := mode(t, dst); m != ExecPerm {
			t.Errorf("hook mode = %o, want %o", m, ExecPerm)
		}
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "out")
	if err := CopyFile(testContext(t), testBundle(), "nope.md", dst); err == nil {
		t.Error("CopyFile() expected error for missing source")
	}
}

func TestCopyFile_MissingDestDir(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "absent", "out.md")
	if err := CopyFile(testContext(t), testBundle(), "commands/secrets.md", dst); err == nil {
		t.Error("CopyFile() expected error when destination directory is missing")
	}
}
