package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"deleter/internal/gate"
	"deleter/internal/match"
	"deleter/internal/roots"
)

func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if err := f.Value.Set(f.DefValue); err != nil {
			t.Fatalf("reset %s: %v", f.Name, err)
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)
	scanCmd.Flags().VisitAll(reset)
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	resetFlags(t)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()
	return out.String(), err
}

func tree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"a.txt":            "hello",
		"b.md":             "md!",
		"logs/app.log":     "log line",
		"logs/secret.log":  "keep me",
		"logs/old/old.log": "older log",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestDeleteWithYes(t *testing.T) {
	dir := tree(t)
	out, err := execute(t, "", "-g", "*.log", "--exclude", "secret*", "-y", dir)
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if exists(filepath.Join(dir, "logs", "app.log")) || exists(filepath.Join(dir, "logs", "old", "old.log")) {
		t.Fatalf("matching logs should be gone")
	}
	if !exists(filepath.Join(dir, "logs", "secret.log")) || !exists(filepath.Join(dir, "a.txt")) {
		t.Fatalf("excluded or unmatched files were removed")
	}
	if !strings.Contains(out, "Found 2 files") || !strings.Contains(out, "Removed 2 files") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDeleteDeclined(t *testing.T) {
	dir := tree(t)
	out, err := execute(t, "n\n", "-g", "*.txt", dir)
	if !errors.Is(err, gate.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if !exists(filepath.Join(dir, "a.txt")) {
		t.Fatalf("declined run removed a.txt")
	}
	if !strings.Contains(out, "DANGER") || !strings.Contains(out, "Cancelled") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDeleteDryRunVerbose(t *testing.T) {
	dir := tree(t)
	out, err := execute(t, "", "--dry-run", "-v", "-g", "*.log", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !exists(filepath.Join(dir, "logs", "app.log")) {
		t.Fatalf("dry run removed files")
	}
	if !strings.Contains(out, filepath.Join(dir, "logs", "app.log")) || !strings.Contains(out, "Preview complete.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "DANGER") {
		t.Fatalf("dry run should not prompt")
	}
}

func TestDeleteNothingMatched(t *testing.T) {
	dir := tree(t)
	out, err := execute(t, "", "-g", "*.iso", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Nothing matched.") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestDeleteMinSize(t *testing.T) {
	dir := tree(t)
	out, err := execute(t, "", "--min-size", "8", "-y", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	// Only "log line" (8) and "older log" (9) reach the floor.
	if !strings.Contains(out, "Found 2 files") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if !exists(filepath.Join(dir, "a.txt")) || exists(filepath.Join(dir, "logs", "app.log")) {
		t.Fatalf("size floor not honored")
	}
}

func TestValidationErrorsTouchNothing(t *testing.T) {
	dir := tree(t)
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"bad glob", []string{"-g", "[abc", "-y", dir}, match.ErrInvalidPattern},
		{"missing root", []string{"-y", filepath.Join(dir, "nope")}, roots.ErrInvalidRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !exists(filepath.Join(dir, "a.txt")) {
				t.Fatalf("files removed despite invalid input")
			}
		})
	}

	if _, err := execute(t, "", "--min-size", "12Q", dir); err == nil {
		t.Fatalf("expected a size parse error")
	}
	if _, err := execute(t, "", "-p", "0", dir); err == nil {
		t.Fatalf("expected a parallelism error")
	}
}

func TestConfigFileSuppliesDefaults(t *testing.T) {
	dir := tree(t)
	cfg := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(cfg, []byte(`{"glob":"*.md"}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := execute(t, "", "--config", cfg, "-y", dir); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if exists(filepath.Join(dir, "b.md")) || !exists(filepath.Join(dir, "a.txt")) {
		t.Fatalf("config glob not applied")
	}

	if _, err := execute(t, "", "--config", cfg, "-g", "*.txt", "-y", dir); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if exists(filepath.Join(dir, "a.txt")) {
		t.Fatalf("explicit --glob should win over the config")
	}
}

func TestScanIsReportOnly(t *testing.T) {
	dir := tree(t)
	out, err := execute(t, "", "scan", "-g", "*.log", dir)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, want := range []string{"logs/app.log", "logs/secret.log", "logs/old/old.log", "Files matched"} {
		if !strings.Contains(out, want) {
			t.Errorf("scan output missing %q:\n%s", want, out)
		}
	}
	if !exists(filepath.Join(dir, "logs", "app.log")) {
		t.Fatalf("scan removed files")
	}
}

func TestListFileRoots(t *testing.T) {
	a := tree(t)
	b := tree(t)
	list := filepath.Join(t.TempDir(), "roots.txt")
	if err := os.WriteFile(list, []byte(a+", "+b+"\n"+a+"\n"), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	out, err := execute(t, "", "-g", "*.txt", "-y", list)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "Found 2 files") {
		t.Fatalf("expected one a.txt per distinct root:\n%s", out)
	}
}

func TestRewalkFlag(t *testing.T) {
	dir := tree(t)
	out, err := execute(t, "", "--rewalk", "-g", "*.log", "--exclude", "secret*", "-y", dir)
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if exists(filepath.Join(dir, "logs", "app.log")) || !exists(filepath.Join(dir, "logs", "secret.log")) {
		t.Fatalf("re-walk sweep removed the wrong files")
	}
	if !strings.Contains(out, "Removed 2 files") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(rootCmd.UsageString(), "rewalk") {
		t.Fatalf("--rewalk should stay out of the help text")
	}
}

func TestAbsoluteExcludeProtectsFiles(t *testing.T) {
	dir := tree(t)
	keep := filepath.ToSlash(filepath.Join(dir, "logs", "old")) + "/**"
	if _, err := execute(t, "", "-g", "*.log", "--exclude", keep, "-y", dir); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !exists(filepath.Join(dir, "logs", "old", "old.log")) {
		t.Fatalf("absolute exclude did not protect old.log")
	}
	if exists(filepath.Join(dir, "logs", "app.log")) {
		t.Fatalf("app.log should have been removed")
	}
}
