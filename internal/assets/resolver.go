package assets

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/eerla/pybenders-sub000/internal/services"
	"github.com/eerla/pybenders-sub000/internal/timeline"
)

// ImageInfo describes a validated scene image.
type ImageInfo struct {
	Path   string
	Width  int
	Height int
	Format string
}

// ValidateSceneImages confirms every scene image exists and decodes as an
// image header. Countdown sibling images arrive here as ordinary scenes,
// so a provider that forgot to write them fails the job at this point.
func ValidateSceneImages(scenes []timeline.Scene) ([]ImageInfo, error) {
	infos := make([]ImageInfo, 0, len(scenes))
	for _, scene := range scenes {
		info, err := ValidateImage(scene.ImagePath)
		if err != nil {
			return nil, services.Wrap(services.ErrAssetMissing, "assets", "resolve", fmt.Sprintf("scene %d (%s)", scene.Index, scene.Role), err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ValidateImage opens the path and decodes its header. PNG, JPEG, and WebP
// are accepted.
func ValidateImage(path string) (ImageInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, err
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ImageInfo{}, fmt.Errorf("decode %s: empty image", path)
	}
	return ImageInfo{Path: path, Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
