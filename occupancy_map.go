package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"
)

// DefaultBlackThreshold is the 8-bit channel value below which a pixel counts as wall.
const DefaultBlackThreshold = 50

// ImageMap is an occupancy map backed by a bitmap: black pixels are obstacles.
type ImageMap struct {
	img       image.Image
	threshold uint8
	bounds    BoundingBox
}

// NewImageMap wraps img. The navigable bounds are the outermost rows and
// columns that contain at least one non-black pixel.
func NewImageMap(img image.Image, threshold uint8) *ImageMap {
	m := &ImageMap{img: img, threshold: threshold}
	m.bounds = m.findBounds()
	return m
}

// LoadImageMap decodes a PNG, JPEG, GIF or BMP file into an ImageMap.
func LoadImageMap(path string, threshold uint8) (*ImageMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode map image %s: %w", path, err)
	}

	m := NewImageMap(img, threshold)
	log.Debug("Loaded map image", "path", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	log.Info("Navigable bounds detected", "bounds", m.bounds)
	return m, nil
}

// Bounds implements Oracle.
func (m *ImageMap) Bounds() BoundingBox {
	return m.bounds
}

// IsObstructed implements Oracle. The point is rounded to the nearest pixel;
// anything outside the image is treated as obstructed.
func (m *ImageMap) IsObstructed(p Point) bool {
	px := int(math.Round(p.X))
	py := int(math.Round(p.Y))

	r := m.img.Bounds()
	if px < 0 || py < 0 || px >= r.Dx() || py >= r.Dy() {
		return true
	}
	return m.isBlack(px, py)
}

// IsPathColliding implements Oracle.
func (m *ImageMap) IsPathColliding(start, end Point, steps int) bool {
	return segmentColliding(m.IsObstructed, start, end, steps)
}

// isBlack takes coordinates relative to the image origin.
func (m *ImageMap) isBlack(x, y int) bool {
	r := m.img.Bounds()
	cr, cg, cb, _ := m.img.At(r.Min.X+x, r.Min.Y+y).RGBA()
	t := uint32(m.threshold)
	return cr>>8 < t && cg>>8 < t && cb>>8 < t
}

// findBounds scans rows over the full width, then columns within the row range.
// A fully black image keeps the whole frame as bounds.
func (m *ImageMap) findBounds() BoundingBox {
	w, h := m.img.Bounds().Dx(), m.img.Bounds().Dy()
	if w == 0 || h == 0 {
		return BoundingBox{}
	}

	rowClear := func(y, fromX, toX int) bool {
		for x := fromX; x <= toX; x++ {
			if !m.isBlack(x, y) {
				return true
			}
		}
		return false
	}
	colClear := func(x, fromY, toY int) bool {
		for y := fromY; y <= toY; y++ {
			if !m.isBlack(x, y) {
				return true
			}
		}
		return false
	}

	minY, maxY := 0, h-1
	for y := 0; y < h; y++ {
		if rowClear(y, 0, w-1) {
			minY = y
			break
		}
	}
	for y := h - 1; y >= 0; y-- {
		if rowClear(y, 0, w-1) {
			maxY = y
			break
		}
	}

	minX, maxX := 0, w-1
	for x := 0; x < w; x++ {
		if colClear(x, minY, maxY) {
			minX = x
			break
		}
	}
	for x := w - 1; x >= 0; x-- {
		if colClear(x, minY, maxY) {
			maxX = x
			break
		}
	}

	return BoundingBox{
		MinX: float64(minX),
		MinY: float64(minY),
		MaxX: float64(maxX),
		MaxY: float64(maxY),
	}
}
