package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Color is an xterm-256 palette index. The zero value means "no pixel".
// Palette index 0 (black) is the background, so it is never drawn.
type Color uint8

// Palette used by the game.
const (
	ColorNone   Color = 0
	ColorWhite  Color = 15
	ColorGrey   Color = 245
	ColorYellow Color = 220
	ColorOrange Color = 208
	ColorCyan   Color = 51
	ColorBlue   Color = 33
	ColorRed    Color = 196
	ColorGreen  Color = 46
)

// Block characters used for half-block rendering.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Bitmap is a monochrome sprite mask. Bits is row-major, W*H long.
type Bitmap struct {
	W, H int
	Bits []bool
}

// At reports whether the bitmap pixel at (x, y) is set.
func (b Bitmap) At(x, y int) bool {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return false
	}
	return b.Bits[y*b.W+x]
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// Scaling from logical to pixel coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// 0-based terminal offsets used to center the render area.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// Pixel returns the color at pixel coordinates. Out of range reads ColorNone.
func (c *Canvas) Pixel(x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[y*c.termWidth+x]
}

// SetFloat sets a pixel using float logical coordinates (applies scaling).
func (c *Canvas) SetFloat(x, y float64, col Color) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	c.setPixel(px, py, col)
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Coordinates are in logical space and get scaled to pixels.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// StrokeRect draws the outline of a logical rectangle (debug bounding boxes).
func (c *Canvas) StrokeRect(x, y, w, h float64, col Color) {
	tl := Point{X: x, Y: y}
	tr := Point{X: x + w, Y: y}
	br := Point{X: x + w, Y: y + h}
	bl := Point{X: x, Y: y + h}
	c.DrawLine(tl, tr, col)
	c.DrawLine(tr, br, col)
	c.DrawLine(br, bl, col)
	c.DrawLine(bl, tl, col)
}

// FillRect fills a logical rectangle.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			c.setPixel(px, py, col)
		}
	}
}

// DrawBitmap stretches a bitmap over the logical rectangle (x, y, w, h),
// rotated by rotation degrees clockwise around the rectangle center.
// Sampling runs in pixel space: each pixel center is rotated back into
// bitmap space and the nearest bit decides whether it is set.
func (c *Canvas) DrawBitmap(b Bitmap, x, y, w, h, rotation float64, col Color) {
	if b.W == 0 || b.H == 0 || w <= 0 || h <= 0 {
		return
	}

	pw := w * c.scaleX
	ph := h * c.scaleY
	cx := (x + w/2) * c.scaleX
	cy := (y + h/2) * c.scaleY

	rad := rotation * math.Pi / 180
	sin, cos := math.Sincos(rad)

	// Bounding radius of the rotated rectangle
	r := math.Hypot(pw, ph) / 2
	if rotation == 0 {
		r = 0
	}
	xStart := int(math.Floor(cx - math.Max(r, pw/2)))
	xEnd := int(math.Ceil(cx + math.Max(r, pw/2)))
	yStart := int(math.Floor(cy - math.Max(r, ph/2)))
	yEnd := int(math.Ceil(cy + math.Max(r, ph/2)))

	for py := yStart; py < yEnd; py++ {
		for px := xStart; px < xEnd; px++ {
			dx := float64(px) + 0.5 - cx
			dy := float64(py) + 0.5 - cy

			// Inverse rotation back into the unrotated sprite frame
			ux := dx*cos + dy*sin
			uy := -dx*sin + dy*cos

			u := (ux + pw/2) / pw
			v := (uy + ph/2) / ph
			if u < 0 || u >= 1 || v < 0 || v >= 1 {
				continue
			}
			if b.At(int(u*float64(b.W)), int(v*float64(b.H))) {
				c.setPixel(px, py, col)
			}
		}
	}
}

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
// A cell with two differently colored halves uses the upper-half block with
// the lower color as background.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 16)

	lastFG := ColorNone
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]
			if top == ColorNone && bottom == ColorNone {
				continue
			}

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)

			switch {
			case top != ColorNone && bottom != ColorNone && top != bottom:
				fmt.Fprintf(&c.renderBuf, "\033[38;5;%d;48;5;%dm%c\033[49m", top, bottom, BlockUpperHalf)
				lastFG = top
				continue
			case top != ColorNone && bottom != ColorNone:
				c.writeFG(top, &lastFG)
				c.renderBuf.WriteRune(BlockFull)
			case top != ColorNone:
				c.writeFG(top, &lastFG)
				c.renderBuf.WriteRune(BlockUpperHalf)
			default:
				c.writeFG(bottom, &lastFG)
				c.renderBuf.WriteRune(BlockLowerHalf)
			}
		}
	}
	if lastFG != ColorNone {
		c.renderBuf.WriteString("\033[0m")
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) writeFG(col Color, last *Color) {
	if col == *last {
		return
	}
	fmt.Fprintf(&c.renderBuf, "\033[38;5;%dm", col)
	*last = col
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
func (c *Canvas) RenderBorder(w io.Writer) {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return
	}

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	if hasV {
		line := strings.Repeat("─", c.termWidth)
		if hasH {
			fmt.Fprintf(&buf, "\033[%d;%dH┌%s┐", top, left, line)
			fmt.Fprintf(&buf, "\033[%d;%dH└%s┘", bottom, left, line)
		} else {
			fmt.Fprintf(&buf, "\033[%d;%dH%s", top, c.offsetCol+1, line)
			fmt.Fprintf(&buf, "\033[%d;%dH%s", bottom, c.offsetCol+1, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			fmt.Fprintf(&buf, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}

	io.WriteString(w, buf.String())
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height.
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas cell
// (col, row), before offset. Used for text overlays next to drawn objects.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts an absolute 1-based terminal cell (as reported
// by mouse events) to logical coordinates at the cell center.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64((row-1-c.offsetRow)*2) + 1
	return px / c.scaleX, py / c.scaleY
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
