package imaging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "b.PNG", 4, 8)
	writePNG(t, dir, "a.png", 6, 3)
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	assets, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("expected 2 assets, got %d", len(assets))
	}
	if filepath.Base(assets[0].Path) != "a.png" || assets[0].Index != 0 {
		t.Fatalf("unexpected first asset %#v", assets[0])
	}
	if assets[0].Width != 6 || assets[0].Height != 3 {
		t.Fatalf("unexpected dimensions %dx%d", assets[0].Width, assets[0].Height)
	}
	if filepath.Base(assets[1].Path) != "b.PNG" || assets[1].Index != 1 {
		t.Fatalf("unexpected second asset %#v", assets[1])
	}
}

func TestDiscoverEmptyDirectory(t *testing.T) {
	assets, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(assets) != 0 {
		t.Fatalf("expected no assets, got %d", len(assets))
	}
}

func TestDiscoverRejectsCorruptImage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Discover(dir); err == nil {
		t.Fatal("expected error for undecodable image")
	}
}

func TestIsSupported(t *testing.T) {
	for name, want := range map[string]bool{
		"a.jpg": true, "a.JPEG": true, "a.png": true, "a.gif": false, "a": false,
	} {
		if got := IsSupported(name); got != want {
			t.Errorf("IsSupported(%q) = %v", name, got)
		}
	}
}
