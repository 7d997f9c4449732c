package terminal

import (
	"image"
	"image/color"
	"strconv"
	"strings"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	// HalfBlock draws the top pixel in the foreground and the bottom pixel in
	// the background, giving two square-ish pixels per cell.
	HalfBlock = '▀'
)

// MoveTo positions the cursor at row, col (1-based).
func MoveTo(row, col int) string {
	return CSI + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// ClearScreen clears the entire screen.
func ClearScreen() string {
	return CSI + "2J"
}

// HideCursor hides the terminal cursor.
func HideCursor() string {
	return CSI + "?25l"
}

// ShowCursor shows the terminal cursor.
func ShowCursor() string {
	return CSI + "?25h"
}

// EnableAltScreen switches to the alternate screen buffer.
func EnableAltScreen() string {
	return CSI + "?1049h"
}

// DisableAltScreen switches back from the alternate screen buffer.
func DisableAltScreen() string {
	return CSI + "?1049l"
}

// Downsample maps a frame onto a cols x rows cell grid with two pixel rows
// per cell, sampling the nearest pixel. fn is called once per cell in
// row-major order.
func Downsample(img *image.RGBA, cols, rows int, fn func(col, row int, top, bottom color.RGBA)) {
	if cols <= 0 || rows <= 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	for row := 0; row < rows; row++ {
		ty := b.Min.Y + (2*row)*h/(2*rows)
		by := b.Min.Y + (2*row+1)*h/(2*rows)
		for col := 0; col < cols; col++ {
			x := b.Min.X + col*w/cols
			fn(col, row, img.RGBAAt(x, ty), img.RGBAAt(x, by))
		}
	}
}

// EncodeFrame renders a frame as truecolor half-block cells starting at the
// top-left corner. Each cell carries a full SGR so no state leaks between cells.
func EncodeFrame(img *image.RGBA, cols, rows int) string {
	var sb strings.Builder
	sb.Grow(cols * rows * 40)
	sb.WriteString(MoveTo(1, 1))

	Downsample(img, cols, rows, func(col, row int, top, bottom color.RGBA) {
		if col == 0 && row > 0 {
			sb.WriteString(Reset)
			sb.WriteString(MoveTo(row+1, 1))
		}
		writeCellSGR(&sb, top, bottom)
		sb.WriteRune(HalfBlock)
	})
	sb.WriteString(Reset)

	return sb.String()
}

// writeCellSGR writes the foreground and background colors of one cell
func writeCellSGR(sb *strings.Builder, fg, bg color.RGBA) {
	sb.WriteString("\x1b[0;38;2;")
	sb.WriteString(strconv.Itoa(int(fg.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(fg.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(fg.B)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(bg.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bg.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bg.B)))
	sb.WriteByte('m')
}
