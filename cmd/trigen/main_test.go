package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// isolate runs the test from an empty directory with no config or store env.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	for _, k := range []string{"DB_URL", "DB_NAME", "COLLECTION_NAME", "TRIGEN_THEME", "TRIGEN_ADDR", "TRIGEN_DEBUG", "NO_COLOR"} {
		t.Setenv(k, "")
	}
	return dir
}

func runArgs(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_PlainPyramid(t *testing.T) {
	isolate(t)
	code, out, errOut := runArgs("--shape", "pyramid", "--rows", "3", "--symbol", "#")

	if code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr: %s", code, errOut)
	}
	if out != "  #\n ###\n#####\n" {
		t.Errorf("unexpected output:\n%q", out)
	}
}

func TestRun_DefaultsFromSettings(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".trigen.yaml", []byte("shape: right\nrows: 2\nsymbol: x\n"), 0o600); err != nil {
		t.Fatalf("failed to write settings: %v", err)
	}

	code, out, _ := runArgs()
	if code != 0 || out != " x\nxx\n" {
		t.Errorf("expected right triangle from settings, got code=%d out=%q", code, out)
	}
}

func TestRun_JSONFormat(t *testing.T) {
	isolate(t)
	code, out, _ := runArgs("--shape", "inverted-left", "--rows", "3", "--format", "json")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	var doc struct {
		Shape string   `json:"shape"`
		Lines []string `json:"lines"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if doc.Shape != "inverted-left" || strings.Join(doc.Lines, ",") != "***,**,*" {
		t.Errorf("unexpected document: %+v", doc)
	}
}

func TestRun_TerminalFormatHasTitle(t *testing.T) {
	isolate(t)
	code, out, _ := runArgs("--shape", "left", "--rows", "2", "--format", "terminal", "--theme", "mono")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(out, "Left") || !strings.Contains(out, "rows=2 symbol=*") {
		t.Errorf("missing title or footer:\n%s", out)
	}
}

func TestRun_ValidationErrorExitsTwo(t *testing.T) {
	isolate(t)
	code, out, errOut := runArgs("--rows", "abc")

	if code != 2 {
		t.Errorf("expected exit 2, got %d", code)
	}
	if out != "" {
		t.Errorf("expected no pattern output, got %q", out)
	}
	if !strings.Contains(errOut, "Rows must be a positive integer.") {
		t.Errorf("missing validation message: %s", errOut)
	}
}

func TestRun_RowsAboveCapRejected(t *testing.T) {
	isolate(t)
	code, _, errOut := runArgs("--rows", "21")
	if code != 2 || !strings.Contains(errOut, "at most 20") {
		t.Errorf("expected cap rejection, got code=%d stderr=%s", code, errOut)
	}
}

func TestRun_UnknownFormat(t *testing.T) {
	isolate(t)
	code, _, errOut := runArgs("--format", "xml")
	if code != 2 || !strings.Contains(errOut, `unknown format "xml"`) {
		t.Errorf("expected format error, got code=%d stderr=%s", code, errOut)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	isolate(t)
	code, _, errOut := runArgs("draw")
	if code != 2 || !strings.Contains(errOut, `unknown command "draw"`) {
		t.Errorf("expected unknown command, got code=%d stderr=%s", code, errOut)
	}
}

func TestRun_Shapes(t *testing.T) {
	isolate(t)
	code, out, _ := runArgs("shapes")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if got := strings.Count(out, "\n"); got != 6 {
		t.Errorf("expected 6 shapes, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "inverted-pyramid  Inverted Center-Aligned Pyramid") {
		t.Errorf("missing inverted pyramid row:\n%s", out)
	}
}

func TestRun_SaveWithoutConfigIsFatal(t *testing.T) {
	isolate(t)
	code, out, errOut := runArgs("--save")

	if code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if out != "" {
		t.Errorf("no pattern should be printed before config is valid, got %q", out)
	}
	if !strings.Contains(errOut, "missing environment configuration: DB_URL, DB_NAME, COLLECTION_NAME") {
		t.Errorf("unexpected stderr: %s", errOut)
	}
}

func TestRun_ServeWithoutConfigIsFatal(t *testing.T) {
	isolate(t)
	code, _, errOut := runArgs("serve")
	if code != 1 || !strings.Contains(errOut, "--no-store") {
		t.Errorf("expected fatal config error, got code=%d stderr=%s", code, errOut)
	}
}

func TestRun_SaveToSQLiteFromDotEnv(t *testing.T) {
	dir := isolate(t)
	env := "DB_URL=sqlite://" + filepath.Join(dir, "patterns.db") + "\nDB_NAME=local\nCOLLECTION_NAME=patterns\n"
	if err := os.WriteFile(".env", []byte(env), 0o600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	for _, k := range []string{"DB_URL", "DB_NAME", "COLLECTION_NAME"} {
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unsetenv %s: %v", k, err)
		}
	}

	code, out, errOut := runArgs("--save", "--rows", "2")

	if code != 0 {
		t.Fatalf("expected exit 0, got %d; stderr: %s", code, errOut)
	}
	if out != "*\n**\n" {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(errOut, "warning") {
		t.Errorf("unexpected warning: %s", errOut)
	}
	if _, err := os.Stat(filepath.Join(dir, "patterns.db")); err != nil {
		t.Errorf("expected database file: %v", err)
	}
}

func TestRun_Version(t *testing.T) {
	isolate(t)
	code, out, _ := runArgs("--version")
	if code != 0 || !strings.HasPrefix(out, "trigen dev") {
		t.Errorf("unexpected version output: code=%d out=%q", code, out)
	}
}
