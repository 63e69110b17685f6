package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/noisebox/artforge/internal/assets"
	"github.com/noisebox/artforge/internal/layout"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testLayout(t *testing.T) layout.Layout {
	t.Helper()
	l := layout.New(t.TempDir())

	touch(t, filepath.Join(l.OriginalDir(assets.CategoryKnobs), "brass.png"))
	touch(t, filepath.Join(l.OriginalDir(assets.CategoryKnobs), "copper.jpg"))
	touch(t, filepath.Join(l.OriginalDir(assets.CategoryKnobs), "notes.txt"))
	touch(t, l.VariantPath(assets.CategoryKnobs, "brass", 64))
	touch(t, l.VariantPath(assets.CategoryKnobs, "brass", 128))
	touch(t, l.VariantPath(assets.CategoryFrames, "oval", 64))
	return l
}

func TestScan(t *testing.T) {
	c, err := Scan(testLayout(t))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(c.Categories) != len(assets.Categories()) {
		t.Errorf("Expected %d categories, got %d", len(assets.Categories()), len(c.Categories))
	}

	knobs := c.Categories[assets.CategoryKnobs]
	// Only PNG originals are counted; copper.jpg and notes.txt are not.
	if knobs.OriginalFiles != 1 {
		t.Errorf("Expected 1 original knob, got %d", knobs.OriginalFiles)
	}
	if knobs.UIReadyFiles != 2 {
		t.Errorf("Expected 2 ui-ready knobs, got %d", knobs.UIReadyFiles)
	}
	element, _ := assets.LookupElement(assets.CategoryKnobs)
	if !reflect.DeepEqual(knobs.Variants, element.Variants) {
		t.Errorf("Expected variants %v, got %v", element.Variants, knobs.Variants)
	}

	want := Statistics{TotalOriginal: 1, TotalUIReady: 3, CategoriesCount: 2}
	if c.Statistics != want {
		t.Errorf("Expected statistics %+v, got %+v", want, c.Statistics)
	}
}

func TestScanEmptyProject(t *testing.T) {
	c, err := Scan(layout.New(t.TempDir()))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if c.Statistics != (Statistics{}) {
		t.Errorf("Expected zero statistics, got %+v", c.Statistics)
	}
}

func TestWriteShape(t *testing.T) {
	l := testLayout(t)
	c, err := Scan(l)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	path, err := Write(l, c)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if path != l.CatalogPath() {
		t.Errorf("Expected %s, got %s", l.CatalogPath(), path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !bytes.Contains(data, []byte("\n  \"categories\": {")) {
		t.Errorf("Expected two-space indentation, got:\n%s", data)
	}

	var doc map[string]map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	stats := doc["statistics"]
	for _, key := range []string{"total_original", "total_ui_ready", "categories_count"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("Expected statistics.%s", key)
		}
	}
	knobs, ok := doc["categories"]["knobs"].(map[string]any)
	if !ok {
		t.Fatalf("Expected categories.knobs object, got %v", doc["categories"]["knobs"])
	}
	for _, key := range []string{"original_files", "ui_ready_files", "variants"} {
		if _, ok := knobs[key]; !ok {
			t.Errorf("Expected categories.knobs.%s", key)
		}
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Statistics != c.Statistics {
		t.Errorf("Expected loaded statistics %+v, got %+v", c.Statistics, loaded.Statistics)
	}
}

func TestRenderStatus(t *testing.T) {
	c, err := Scan(testLayout(t))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	var buf bytes.Buffer
	if err := RenderStatus(&buf, c); err != nil {
		t.Fatalf("RenderStatus() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{"Category", "knobs", "indicators", "small, medium", "2 categories"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[2], "knobs") {
		t.Errorf("Expected knobs as first category row, got %q", lines[2])
	}
}
