package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCommand()
	want := []string{"generate", "episodes", "cache", "llm", "config"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init failed: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("sample config not written: %v", err)
	}
	if !strings.Contains(string(data), "[feed]") {
		t.Errorf("sample config missing feed section: %s", data)
	}
	if !strings.Contains(out.String(), target) {
		t.Errorf("output should name the written path, got %q", out.String())
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(target, []byte("# existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"config", "init", "--path", target})
	if err := root.Execute(); err == nil {
		t.Fatal("expected error when config already exists")
	}
}

func TestConfigShowMasksCredential(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
cache_dir = "` + filepath.Join(dir, "cache") + `"
log_dir = "` + filepath.Join(dir, "logs") + `"

[output]
path = "` + filepath.Join(dir, "index.html") + `"

[llm]
api_key = "secret-key"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--config", path, "config", "show"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if strings.Contains(out.String(), "secret-key") {
		t.Error("config show leaked the API key")
	}
	if !strings.Contains(out.String(), "<set>") {
		t.Errorf("config show should mark the key as set, got:\n%s", out.String())
	}
}
