package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// circleSegments is the polygon resolution for discs
const circleSegments = 24

// Raster is an offscreen Surface over an RGBA image with antialiased coverage
// Drawing happens at width*scale x height*scale, Image downsamples back to width x height
type Raster struct {
	width, height int
	scale         float64
	bg            color.NRGBA
	img           *image.RGBA
	z             *vector.Rasterizer
}

// NewRaster creates a raster of logical size width x height, supersample >= 1
func NewRaster(width, height, supersample int, bg color.NRGBA) *Raster {
	if supersample < 1 {
		supersample = 1
	}
	pw, ph := max(width*supersample, 0), max(height*supersample, 0)
	r := &Raster{
		width:  width,
		height: height,
		scale:  float64(supersample),
		bg:     bg,
		img:    image.NewRGBA(image.Rect(0, 0, pw, ph)),
		z:      vector.NewRasterizer(pw, ph),
	}
	r.Clear()
	return r
}

// Acquire returns the raster itself, a zero-sized raster is unavailable
func (r *Raster) Acquire() (Surface, error) {
	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("%w: raster %dx%d", ErrSurfaceUnavailable, r.width, r.height)
	}
	return r, nil
}

// Size returns the logical extent
func (r *Raster) Size() (width, height float64) {
	return float64(r.width), float64(r.height)
}

// Clear fills the raster with the background color
func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(r.bg), image.Point{}, draw.Src)
}

// StrokeLine fills the segment as a quad of the given width, hairlines widen to one device pixel
func (r *Raster) StrokeLine(x0, y0, x1, y1 float64, p Paint, width float64) {
	s := r.scale
	ax, ay, bx, by := x0*s, y0*s, x1*s, y1*s
	dx, dy := bx-ax, by-ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	half := math.Max(width*s, 1) / 2
	nx, ny := -dy/length*half, dx/length*half

	r.z.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	r.z.MoveTo(float32(ax+nx), float32(ay+ny))
	r.z.LineTo(float32(bx+nx), float32(by+ny))
	r.z.LineTo(float32(bx-nx), float32(by-ny))
	r.z.LineTo(float32(ax-nx), float32(ay-ny))
	r.z.ClosePath()
	r.fill(p)
}

// FillCircle fills a polygonal disc
func (r *Raster) FillCircle(x, y, radius float64, p Paint) {
	s := r.scale
	cx, cy, rad := x*s, y*s, radius*s
	if rad <= 0 {
		return
	}
	r.z.Reset(r.img.Bounds().Dx(), r.img.Bounds().Dy())
	for i := 0; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		px, py := float32(cx+rad*math.Cos(a)), float32(cy+rad*math.Sin(a))
		if i == 0 {
			r.z.MoveTo(px, py)
			continue
		}
		r.z.LineTo(px, py)
	}
	r.z.ClosePath()
	r.fill(p)
}

// fill composites the current path over the image
func (r *Raster) fill(p Paint) {
	a := math.Max(0, math.Min(1, p.Alpha))
	src := image.NewUniform(color.NRGBA{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: uint8(a*255 + 0.5)})
	r.z.DrawOp = draw.Over
	r.z.Draw(r.img, r.img.Bounds(), src, image.Point{})
}

// Image returns the frame at logical size, supersampled rasters are downscaled with CatmullRom
func (r *Raster) Image() image.Image {
	if r.scale == 1 {
		return r.img
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), r.img, r.img.Bounds(), xdraw.Src, nil)
	return dst
}

// Encode writes the frame as "webp" or "png"
func (r *Raster) Encode(w io.Writer, format string) error {
	img := r.Image()
	switch strings.ToLower(format) {
	case "webp":
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("render: webp encode: %w", err)
		}
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("render: png encode: %w", err)
		}
	default:
		return fmt.Errorf("render: unsupported format %q", format)
	}
	return nil
}
