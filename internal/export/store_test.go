package export

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "charts"))
	if err != nil {
		t.Fatalf("NewStore() = %v", err)
	}

	want := []string{"bar_chart.png", "bar_chart-1.png", "bar_chart-2.png"}
	for i, name := range want {
		path, err := store.Save("bar_chart.png", []byte{byte(i)})
		if err != nil {
			t.Fatalf("Save() #%d = %v", i, err)
		}
		if filepath.Base(path) != name {
			t.Fatalf("Save() #%d path = %q; want %q", i, path, name)
		}
	}

	data, err := os.ReadFile(filepath.Join(store.Dir(), "bar_chart.png"))
	if err != nil {
		t.Fatalf("os.ReadFile() = %v", err)
	}
	if !bytes.Equal(data, []byte{0}) {
		t.Fatalf("first file overwritten: %v", data)
	}
}

func TestSaveStripsDirectories(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() = %v", err)
	}
	path, err := store.Save("../../escape.png", []byte("x"))
	if err != nil {
		t.Fatalf("Save() = %v", err)
	}
	if filepath.Dir(path) != store.Dir() {
		t.Fatalf("Save() wrote %q outside %q", path, store.Dir())
	}
	if _, err := store.Save("", nil); err == nil {
		t.Fatal("Save(\"\") = nil; want error")
	}
}

func TestSaveLogs(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(old) })

	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() = %v", err)
	}
	if _, err := store.Save("line_chart.png", []byte("png")); err != nil {
		t.Fatalf("Save() = %v", err)
	}
	if !strings.Contains(buf.String(), "chart exported") {
		t.Fatalf("expected export log, got %q", buf.String())
	}
}
