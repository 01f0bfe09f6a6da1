// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
)

// isolate points HOME and XDG_CONFIG_HOME at empty temp dirs, clears
// TASKLIST_* variables and moves into a fresh working directory.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, field := range Fields() {
		t.Setenv(EnvName(field), "")
		os.Unsetenv(EnvName(field))
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(project); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newFlagSet() *flag.FlagSet {
	return flag.NewFlagSet("test", flag.ContinueOnError)
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.IDScheme != DefaultIDScheme {
		t.Errorf("IDScheme: got %q, want %q", cfg.IDScheme, DefaultIDScheme)
	}
	if cfg.IDPrefix != DefaultIDPrefix {
		t.Errorf("IDPrefix: got %q, want %q", cfg.IDPrefix, DefaultIDPrefix)
	}
	if cfg.RejectBlankEdits {
		t.Error("RejectBlankEdits: got true, want false")
	}
	if !cfg.AltScreen {
		t.Error("AltScreen: got false, want true")
	}
	if cfg.LogDir != DefaultLogDir {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, DefaultLogDir)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("logging defaults: got %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadDefaults(t *testing.T) {
	home, _ := isolate(t)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	for _, field := range Fields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if len(cws.Files) != 0 {
		t.Errorf("Files: got %v, want none", cws.Files)
	}

	cfg := cws.Config
	if want := filepath.Join(home, ".tasklist", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
}

func TestLoadPrecedence(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, filepath.Join(home, ".tasklist", "tasklist.toml"), `
id_prefix = "U"
accent = "200"
log_level = "debug"
alt_screen = false
`)
	writeFile(t, "tasklist.toml", `
id_prefix = "P"
log_format = "json"
`)
	t.Setenv("TASKLIST_REJECT_BLANK_EDITS", "yes")
	t.Setenv("TASKLIST_LOG_FORMAT", "logfmt")

	cws, err := LoadWithSources(newFlagSet(), []string{"-accent", "#ff00ff", "-log-caller"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field      string
		wantValue  string
		wantSource ConfigSource
	}{
		{"id_scheme", "counter", SourceDefault},
		{"id_prefix", "P", SourceProjFile},
		{"accent", "#ff00ff", SourceFlag},
		{"log_level", "debug", SourceUserFile},
		{"alt_screen", "false", SourceUserFile},
		{"log_format", "logfmt", SourceEnv},
		{"reject_blank_edits", "true", SourceEnv},
		{"log_caller", "true", SourceFlag},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := cfg.Value(tt.field)
			if !ok {
				t.Fatalf("Value(%s) not found", tt.field)
			}
			if got != tt.wantValue {
				t.Errorf("value: got %q, want %q", got, tt.wantValue)
			}
			if cws.Sources[tt.field] != tt.wantSource {
				t.Errorf("source: got %q, want %q", cws.Sources[tt.field], tt.wantSource)
			}
		})
	}

	if len(cws.Files) != 2 {
		t.Errorf("Files: got %v, want user and project", cws.Files)
	}
}

func TestLoadDotProjectFile(t *testing.T) {
	isolate(t)
	writeFile(t, ".tasklist.toml", `id_scheme = "uuid"`)

	cfg, err := Load(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.IDScheme != "uuid" {
		t.Errorf("IDScheme: got %q, want uuid", cfg.IDScheme)
	}
}

func TestLoadXDGUserFile(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "tasklist", "tasklist.toml"), `accent = "33"`)

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if cws.Config.Accent != "33" {
		t.Errorf("Accent: got %q, want 33", cws.Config.Accent)
	}
	if cws.Sources["accent"] != SourceUserFile {
		t.Errorf("source: got %q", cws.Sources["accent"])
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{name: "unknown key", file: "max_iterations = 5\n", wantErr: "unknown keys: max_iterations"},
		{name: "bad toml", file: "id_scheme = \n", wantErr: "loading project config file"},
		{name: "bad scheme", args: []string{"-id-scheme", "snowflake"}, wantErr: "id_scheme"},
		{name: "bad format", env: map[string]string{"TASKLIST_LOG_FORMAT": "xml"}, wantErr: "log_format"},
		{name: "bad level", args: []string{"-log-level", "loud"}, wantErr: "log_level"},
		{name: "bad bool env", env: map[string]string{"TASKLIST_ALT_SCREEN": "maybe"}, wantErr: "TASKLIST_ALT_SCREEN"},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: "parsing flags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.file != "" {
				writeFile(t, "tasklist.toml", tt.file)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			fs := newFlagSet()
			fs.SetOutput(&strings.Builder{})
			_, err := Load(fs, tt.args)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestEmptyLogDirFromEnvDisablesLogging(t *testing.T) {
	isolate(t)
	t.Setenv("TASKLIST_LOG_DIR", "")

	cws, err := LoadWithSources(newFlagSet(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if cws.Config.LogDir != "" {
		t.Errorf("LogDir: got %q, want empty", cws.Config.LogDir)
	}
	if cws.Sources["log_dir"] != SourceEnv {
		t.Errorf("source: got %q, want environment", cws.Sources["log_dir"])
	}
}

func TestFlagsLeaveRemainingArgs(t *testing.T) {
	isolate(t)
	fs := newFlagSet()
	if _, err := Load(fs, []string{"-id-prefix", "X", "replay", "script.json"}); err != nil {
		t.Fatal(err)
	}
	if got := fs.Args(); len(got) != 2 || got[0] != "replay" {
		t.Errorf("Args: got %v", got)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKLIST_TEST_DIR", "/var/tmp")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/logs", filepath.Join(home, "logs")},
		{"$TASKLIST_TEST_DIR/logs", "/var/tmp/logs"},
		{"/abs/path", "/abs/path"},
	}
	for _, tt := range tests {
		if got := expandPath(tt.in); got != tt.want {
			t.Errorf("expandPath(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		if got, err := boolFromString(v); err != nil || !got {
			t.Errorf("boolFromString(%q): got %v, %v", v, got, err)
		}
	}
	for _, v := range []string{"0", "false", "no", "off"} {
		if got, err := boolFromString(v); err != nil || got {
			t.Errorf("boolFromString(%q): got %v, %v", v, got, err)
		}
	}
	if _, err := boolFromString("maybe"); err == nil {
		t.Error("expected error for maybe")
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	cfg := &Config{}
	md, err := toml.Decode(ExampleConfig(), cfg)
	if err != nil {
		t.Fatalf("example does not decode: %v", err)
	}
	if len(md.Undecoded()) != 0 {
		t.Errorf("example has unknown keys: %v", md.Undecoded())
	}
	for _, field := range Fields() {
		if !md.IsDefined(field) {
			t.Errorf("example does not document %s", field)
		}
	}

	want := &Config{}
	setDefaults(want)
	if *cfg != *want {
		t.Errorf("example values differ from defaults:\n got %+v\nwant %+v", cfg, want)
	}
}
