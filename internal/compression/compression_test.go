package compression

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"assets.tar.xz", FormatTarXz, false},
		{"ASSETS.TGZ", FormatTarGz, false},
		{"out/assets.tar.gz", FormatTarGz, false},
		{"assets.zip", FormatZip, false},
		{"assets.rar", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestBundleRoundTrip(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{
		"knobs/brass_64.png":      "k64",
		"knobs/brass_128.png":     "k128",
		"frames/oval_64.png":      "f64",
		"indicators/ready_64.png": "i64",
	})
	want := []string{
		"frames/oval_64.png",
		"indicators/ready_64.png",
		"knobs/brass_128.png",
		"knobs/brass_64.png",
	}

	for _, name := range []string{"assets.tar.xz", "assets.tar.gz", "assets.zip"} {
		t.Run(name, func(t *testing.T) {
			format, err := FormatFromPath(name)
			if err != nil {
				t.Fatal(err)
			}
			dest := filepath.Join(t.TempDir(), name)

			files, err := Create(src, dest, format)
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if !reflect.DeepEqual(files, want) {
				t.Errorf("Create() files = %v, want %v", files, want)
			}

			listed, err := List(dest)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if !reflect.DeepEqual(listed, want) {
				t.Errorf("List() = %v, want %v", listed, want)
			}

			out := t.TempDir()
			written, err := Extract(dest, out)
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if len(written) != len(want) {
				t.Errorf("Expected %d extracted files, got %d", len(want), len(written))
			}
			data, err := os.ReadFile(filepath.Join(out, "knobs", "brass_128.png"))
			if err != nil {
				t.Fatalf("ReadFile() error = %v", err)
			}
			if string(data) != "k128" {
				t.Errorf("Expected k128, got %q", data)
			}
		})
	}
}

func TestCreateDeterministic(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string]string{"a/b.png": "1", "c.png": "2"})

	dir := t.TempDir()
	first := filepath.Join(dir, "one.tar.gz")
	second := filepath.Join(dir, "two.tar.gz")
	if _, err := Create(src, first, FormatTarGz); err != nil {
		t.Fatal(err)
	}
	if _, err := Create(src, second, FormatTarGz); err != nil {
		t.Fatal(err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if string(a) != string(b) {
		t.Error("Expected identical bundles for identical trees")
	}
}

func TestCreateEmpty(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "empty.zip")
	if _, err := Create(t.TempDir(), dest, FormatZip); err == nil {
		t.Error("Expected error bundling an empty tree")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("Expected no bundle file for an empty tree")
	}
}

func TestExtractRejectsTraversal(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "evil.tar.gz")
	f, err := os.Create(dest)
	if err != nil {
		t.Fatal(err)
	}
	gzw := gzip.NewWriter(f)
	tw := tar.NewWriter(gzw)
	payload := []byte("pwned")
	if err := tw.WriteHeader(&tar.Header{Name: "../escape.png", Mode: 0o644, Size: int64(len(payload))}); err != nil {
		t.Fatal(err)
	}
	if _, err := tw.Write(payload); err != nil {
		t.Fatal(err)
	}
	tw.Close()
	gzw.Close()
	f.Close()

	out := filepath.Join(t.TempDir(), "assets")
	if _, err := Extract(dest, out); err == nil {
		t.Fatal("Expected traversal entry to be rejected")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(out), "escape.png")); !os.IsNotExist(err) {
		t.Error("Expected nothing written outside the destination")
	}
}
