package obj

import (
	"fmt"
	"image"
	"image/color"
)

// alphaThreshold matches the usual "mostly opaque" cutoff for sprite masks.
const alphaThreshold = 127

// Mask is a 1-bit-per-pixel collision bitmap. Rows are packed into uint64
// words.
type Mask struct {
	w, h   int
	stride int
	words  []uint64
	count  int
}

// NewMask returns a w x h mask, optionally with every pixel set.
func NewMask(w, h int, filled bool) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 63) / 64
	m := &Mask{w: w, h: h, stride: stride, words: make([]uint64, stride*h)}
	if filled {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				m.Set(x, y)
			}
		}
	}
	return m
}

// NewCircleMask rasterises a disc of radius r into a 2r x 2r mask. A pixel
// is set when its centre lies inside the circle.
func NewCircleMask(r float64) (*Mask, error) {
	if !(r > 0) {
		return nil, fmt.Errorf("%w: circle radius %v", ErrDegenerateShape, r)
	}
	size := int(2 * r)
	if size < 1 {
		size = 1
	}
	m := NewMask(size, size, false)
	for y := 0; y < size; y++ {
		dy := float64(y) + 0.5 - r
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - r
			if dx*dx+dy*dy <= r*r {
				m.Set(x, y)
			}
		}
	}
	if m.Count() == 0 {
		return nil, fmt.Errorf("%w: circle radius %v covers no pixels", ErrDegenerateShape, r)
	}
	return m, nil
}

// MaskFromImage sets a bit for every pixel whose alpha exceeds 127.
func MaskFromImage(img image.Image) (*Mask, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrDegenerateShape)
	}
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy(), false)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			a := color.AlphaModel.Convert(img.At(x, y)).(color.Alpha).A
			if a > alphaThreshold {
				m.Set(x-b.Min.X, y-b.Min.Y)
			}
		}
	}
	if m.Count() == 0 {
		return nil, fmt.Errorf("%w: image %dx%d has no opaque pixels", ErrDegenerateShape, b.Dx(), b.Dy())
	}
	return m, nil
}

func (m *Mask) Size() (int, int) {
	if m == nil {
		return 0, 0
	}
	return m.w, m.h
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	if m == nil {
		return 0
	}
	return m.count
}

func (m *Mask) Set(x, y int) {
	if m == nil || x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	i := y*m.stride + x/64
	bit := uint64(1) << uint(x%64)
	if m.words[i]&bit == 0 {
		m.words[i] |= bit
		m.count++
	}
}

func (m *Mask) Get(x, y int) bool {
	if m == nil || x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.words[y*m.stride+x/64]&(uint64(1)<<uint(x%64)) != 0
}

// OverlapRect reports whether any set pixel lies inside the w x h rectangle
// whose top-left is (x, y) in mask coordinates.
func (m *Mask) OverlapRect(x, y, w, h int) bool {
	if m == nil || m.count == 0 || w <= 0 || h <= 0 {
		return false
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, m.w), min(y+h, m.h)
	if x0 >= x1 || y0 >= y1 {
		return false
	}
	for row := y0; row < y1; row++ {
		base := row * m.stride
		for wi := x0 / 64; wi <= (x1-1)/64; wi++ {
			word := m.words[base+wi]
			if word == 0 {
				continue
			}
			lo := max(x0-wi*64, 0)
			hi := min(x1-wi*64, 64)
			var span uint64
			if hi-lo == 64 {
				span = ^uint64(0)
			} else {
				span = ((uint64(1) << uint(hi-lo)) - 1) << uint(lo)
			}
			if word&span != 0 {
				return true
			}
		}
	}
	return false
}

// Overlap reports whether any pixel is set in both masks when other's
// top-left is placed at (offX, offY) in m's coordinates.
func (m *Mask) Overlap(other *Mask, offX, offY int) bool {
	if m == nil || other == nil || m.count == 0 || other.count == 0 {
		return false
	}
	x0, y0 := max(offX, 0), max(offY, 0)
	x1, y1 := min(offX+other.w, m.w), min(offY+other.h, m.h)
	if x0 >= x1 || y0 >= y1 {
		return false
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.Get(x, y) && other.Get(x-offX, y-offY) {
				return true
			}
		}
	}
	return false
}

// Image renders the mask as an alpha image for debug drawing.
func (m *Mask) Image() *image.Alpha {
	if m == nil {
		return image.NewAlpha(image.Rect(0, 0, 0, 0))
	}
	img := image.NewAlpha(image.Rect(0, 0, m.w, m.h))
	for y := 0; y < m.h; y++ {
		for x := 0; x < m.w; x++ {
			if m.Get(x, y) {
				img.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return img
}
