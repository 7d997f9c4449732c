package raster

import (
	"fmt"
	"image/png"
	"os"
)

// SavePNG writes the frame to a PNG file.
func SavePNG(img *Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := png.Encode(file, img.rgba); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return file.Close()
}
