package imaging

import (
	"fmt"
	"image"
	"strings"
)

// Rect is a target area in terminal cells.
type Rect struct {
	Width  int
	Height int
}

// ResizePolicy selects how a cover is mapped onto its target area.
type ResizePolicy int

const (
	// ResizeFit scales the image to fit inside the area, preserving aspect.
	ResizeFit ResizePolicy = iota
	// ResizeCrop fills the whole area, cropping the image center.
	ResizeCrop
)

// Picker constructs protocols for decoded covers. It is the single place
// that knows how image pixels map onto terminal cells.
type Picker struct{}

func NewPicker() *Picker {
	return &Picker{}
}

// NewProtocol wraps a decoded raster so it can be encoded into cells.
func (p *Picker) NewProtocol(img image.Image) *Protocol {
	return &Protocol{src: img}
}

// Protocol holds the decoded raster for one cover. Encoding is pure with
// respect to the protocol: the same protocol may be re-encoded for any
// number of areas.
type Protocol struct {
	src image.Image
}

// Handle is a ready-to-print cell rendering of a cover. Each line is one
// terminal row of ANSI-colored half blocks.
type Handle struct {
	Lines  []string
	Width  int
	Height int
	Area   Rect
}

// Empty reports whether the handle carries no cells.
func (h Handle) Empty() bool {
	return len(h.Lines) == 0
}

// ResizeEncode renders the cover into half-block cells for the given
// area. A half block stacks two image rows per terminal row, which keeps
// the result visually square on a typical 1:2 cell font.
func (pr *Protocol) ResizeEncode(policy ResizePolicy, area Rect) Handle {
	if area.Width <= 0 || area.Height <= 0 {
		return Handle{Area: area}
	}

	bounds := pr.src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return Handle{Area: area}
	}

	// Pixel grid the cells address: one column per cell, two rows per cell.
	maxPxW, maxPxH := area.Width, area.Height*2

	var pxW, pxH int
	window := bounds
	switch policy {
	case ResizeCrop:
		pxW, pxH = maxPxW, maxPxH
		window = cropWindow(bounds, pxW, pxH)
	default:
		scaleW := float64(maxPxW) / float64(srcW)
		scaleH := float64(maxPxH) / float64(srcH)
		scale := scaleW
		if scaleH < scale {
			scale = scaleH
		}
		pxW = int(float64(srcW) * scale)
		pxH = int(float64(srcH) * scale)
		if pxW < 1 {
			pxW = 1
		}
		if pxH < 1 {
			pxH = 1
		}
	}

	cellsW := pxW
	cellsH := (pxH + 1) / 2

	var sb strings.Builder
	lines := make([]string, 0, cellsH)
	for cy := 0; cy < cellsH; cy++ {
		sb.Reset()
		for cx := 0; cx < cellsW; cx++ {
			tr, tg, tb := samplePixel(pr.src, window, cx, cy*2, pxW, pxH)
			br, bg, bb := samplePixel(pr.src, window, cx, cy*2+1, pxW, pxH)
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		sb.WriteString("\x1b[0m")
		lines = append(lines, sb.String())
	}

	return Handle{Lines: lines, Width: cellsW, Height: cellsH, Area: area}
}

// cropWindow returns the centered source window matching the target
// pixel aspect.
func cropWindow(bounds image.Rectangle, pxW, pxH int) image.Rectangle {
	srcW, srcH := bounds.Dx(), bounds.Dy()

	targetAspect := float64(pxW) / float64(pxH)
	srcAspect := float64(srcW) / float64(srcH)

	w, h := srcW, srcH
	if srcAspect > targetAspect {
		w = int(float64(srcH) * targetAspect)
	} else {
		h = int(float64(srcW) / targetAspect)
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	x0 := bounds.Min.X + (srcW-w)/2
	y0 := bounds.Min.Y + (srcH-h)/2
	return image.Rect(x0, y0, x0+w, y0+h)
}

// samplePixel nearest-neighbor samples the window at grid position
// (x, y) of a pxW x pxH grid, returning 8-bit RGB. Rows past the bottom
// edge (odd pixel heights) repeat the last row.
func samplePixel(img image.Image, window image.Rectangle, x, y, pxW, pxH int) (uint8, uint8, uint8) {
	if y >= pxH {
		y = pxH - 1
	}
	sx := window.Min.X + x*window.Dx()/pxW
	sy := window.Min.Y + y*window.Dy()/pxH
	if sx >= window.Max.X {
		sx = window.Max.X - 1
	}
	if sy >= window.Max.Y {
		sy = window.Max.Y - 1
	}

	r, g, b, _ := img.At(sx, sy).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
