// Package raster is a software implementation of the render interfaces. It
// draws into an in-memory RGBA frame, which the terminal and SSH hosts then
// encode for their outputs.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"chosenoffset.com/corridor/internal/render"
)

// Image is an RGBA frame implementing render.Image.
type Image struct {
	rgba *image.RGBA
}

// NewImage allocates a transparent frame.
func NewImage(width, height int) *Image {
	return &Image{rgba: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// RGBA exposes the pixels.
func (i *Image) RGBA() *image.RGBA {
	return i.rgba
}

// Bounds returns the bounds of the image.
func (i *Image) Bounds() image.Rectangle {
	return i.rgba.Bounds()
}

// Size returns the width and height of the image.
func (i *Image) Size() (width, height int) {
	b := i.rgba.Bounds()
	return b.Dx(), b.Dy()
}

// Fill fills the entire image with the given color.
func (i *Image) Fill(clr color.Color) {
	draw.Draw(i.rgba, i.rgba.Bounds(), image.NewUniform(clr), image.Point{}, draw.Src)
}

// Clear clears the image to transparent.
func (i *Image) Clear() {
	i.Fill(color.Transparent)
}

// DrawImage composites src over this image at (x, y).
func (i *Image) DrawImage(src render.Image, x, y float64) {
	s := src.(*Image).rgba
	at := image.Pt(int(math.Floor(x)), int(math.Floor(y)))
	draw.Draw(i.rgba, s.Bounds().Add(at), s, s.Bounds().Min, draw.Over)
}

// Dispose is a no-op; frames are garbage collected.
func (i *Image) Dispose() {}

// blend composites a single pixel, skipping anything outside the frame
func (i *Image) blend(x, y int, clr color.Color) {
	if !(image.Point{X: x, Y: y}).In(i.rgba.Rect) {
		return
	}
	if _, _, _, a := clr.RGBA(); a == 0xffff {
		i.rgba.Set(x, y, clr)
		return
	}
	draw.Draw(i.rgba, image.Rect(x, y, x+1, y+1), image.NewUniform(clr), image.Point{}, draw.Over)
}

// Renderer implements render.Renderer on raster images.
type Renderer struct{}

// NewRenderer creates a software renderer.
func NewRenderer() render.Renderer {
	return &Renderer{}
}

// NewImage creates a new frame with the given dimensions.
func (r *Renderer) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

// FillRect fills the pixels covered by the rectangle.
func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	img := dst.(*Image)
	rect := image.Rect(
		floor(x), floor(y),
		floor(x+width), floor(y+height),
	)
	draw.Draw(img.rgba, rect.Intersect(img.rgba.Rect), image.NewUniform(clr), image.Point{}, draw.Over)
}

// StrokeLine draws a Bresenham line. Widths above one pixel use a square brush.
func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	img := dst.(*Image)
	brush := max(int(strokeWidth), 1)
	half := brush / 2

	ax, ay := floor(x0), floor(y0)
	bx, by := floor(x1), floor(y1)
	dx, dy := abs(bx-ax), -abs(by-ay)
	sx, sy := sign(bx-ax), sign(by-ay)
	e := dx + dy

	for {
		for oy := 0; oy < brush; oy++ {
			for ox := 0; ox < brush; ox++ {
				img.blend(ax+ox-half, ay+oy-half, clr)
			}
		}
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			ax += sx
		}
		if e2 <= dx {
			e += dx
			ay += sy
		}
	}
}

// FillCircle fills every pixel whose center lies inside the circle.
func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	img := dst.(*Image)
	cx, cy, rad := float64(x), float64(y), float64(radius)
	r2 := rad * rad

	for py := int(math.Floor(cy - rad)); py <= int(math.Ceil(cy+rad)); py++ {
		for px := int(math.Floor(cx - rad)); px <= int(math.Ceil(cx+rad)); px++ {
			fx := float64(px) + 0.5 - cx
			fy := float64(py) + 0.5 - cy
			if fx*fx+fy*fy <= r2 {
				img.blend(px, py, clr)
			}
		}
	}
}

// DrawText draws text with the 7x13 bitmap face; (x, y) is the top-left corner.
func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color) {
	img := dst.(*Image)
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img.rgba,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}

func floor(v float32) int {
	return int(math.Floor(float64(v)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
