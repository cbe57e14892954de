package imaging

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"reelcast/internal/reel"
)

var supportedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

// IsSupported reports whether the file name has an accepted image extension.
func IsSupported(name string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Discover lists the supported images in dir sorted by file name and reads
// their dimensions. Other files and subdirectories are ignored. An empty
// result is not an error; callers decide how to report it.
func Discover(dir string) ([]reel.ImageAsset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsSupported(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	assets := make([]reel.ImageAsset, 0, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		w, h, err := decodeSize(path)
		if err != nil {
			return nil, err
		}
		assets = append(assets, reel.ImageAsset{Index: i, Path: path, Width: w, Height: h})
	}
	return assets, nil
}

func decodeSize(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image %s: %w", path, err)
	}
	defer file.Close()
	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image header %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
