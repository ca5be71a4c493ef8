package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = oldStdout }()

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	io.Copy(&buf, r)
	os.Stdout = oldStdout
	return buf.String(), runErr
}

func TestRunRunExecutesProgram(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bas")
	src := "10 LET X% = 6 * 7\n20 ? X%\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runRun(runCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runRun: %v", err)
	}
	if !strings.Contains(out, "42") {
		t.Errorf("expected output to contain 42, got %q", out)
	}
}

func TestRunListRendersStoredProgramWithoutExecuting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.bas")
	src := "10 LET X% = 5 + 3\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := captureStdout(t, func() error {
		return runList(listCmd, []string{path})
	})
	if err != nil {
		t.Fatalf("runList: %v", err)
	}
	if !strings.Contains(out, "10 LET X% = 5 + 3") {
		t.Errorf("expected listing to contain source line, got %q", out)
	}
}
