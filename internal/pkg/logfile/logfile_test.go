package logfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFilename(t *testing.T) {
	day := time.Date(2023, time.April, 7, 12, 0, 0, 0, time.UTC)
	if got := Filename(day); got != "import_4-7-23.log" {
		t.Errorf("got %q, want import_4-7-23.log", got)
	}

	// Single-digit month and day stay unpadded.
	day = time.Date(2023, time.November, 25, 0, 0, 0, 0, time.UTC)
	if got := Filename(day); got != "import_11-25-23.log" {
		t.Errorf("got %q, want import_11-25-23.log", got)
	}
}

func TestWriterAppends(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := w.Write([]byte("first line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := w.Write([]byte("second line\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, Filename(time.Now())))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "first line") || !strings.Contains(content, "second line") {
		t.Errorf("log file missing appended lines: %q", content)
	}
	if strings.Index(content, "first line") > strings.Index(content, "second line") {
		t.Error("lines must append in write order")
	}
}

func TestWriterIgnoresEmptyWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, err := w.Write(nil); err != nil || n != 0 {
		t.Errorf("empty write: n=%d err=%v", n, err)
	}
	if _, err := os.Stat(filepath.Join(dir, Filename(time.Now()))); !os.IsNotExist(err) {
		t.Error("empty write must not create the log file")
	}
}

func TestNewZapLoggerWritesToDailyFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewZapLogger(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info("import run finished")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, Filename(time.Now())))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "import run finished") {
		t.Errorf("message missing from log file: %q", line)
	}
	if !strings.Contains(line, " - ") {
		t.Errorf("expected timestamp - message layout, got %q", line)
	}
}
