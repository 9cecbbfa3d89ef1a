// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command visualdemo renders the reference shading path to a PNG.
// Every element is evaluated per pixel with the same fragment rules
// the GPU pipelines implement: rounded boxes with borders, glow and
// drop shadows, wrapped texture sampling, alpha masking and glyph
// coverage text.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"

	"github.com/gogpu/visual"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		output = flag.String("output", "demo.png", "output file")
	)
	flag.Parse()

	c := newCanvas(*width, *height)

	drawBackground(c)
	drawStyledBoxes(c)
	drawTexturedBox(c)
	drawMaskedQuad(c)
	drawWrappedQuad(c)
	drawText(c)

	if err := savePNG(c, *output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

// canvas accumulates straight-alpha colors into an NRGBA image with
// source-over blending, the CPU equivalent of the premultiplied blend
// state the pipelines configure.
type canvas struct {
	img *image.NRGBA
}

func newCanvas(w, h int) *canvas {
	return &canvas{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

func (c *canvas) set(x, y int, col visual.RGBA) {
	c.img.Set(x, y, col.Color())
}

// blend composites src over the stored pixel.
func (c *canvas) blend(x, y int, src visual.RGBA) {
	if src.A <= 0 {
		return
	}
	b := c.img.Bounds()
	if x < b.Min.X || x >= b.Max.X || y < b.Min.Y || y >= b.Max.Y {
		return
	}
	dst := visual.FromColor(c.img.NRGBAAt(x, y))
	outA := src.A + dst.A*(1-src.A)
	if outA <= 0 {
		c.set(x, y, visual.Transparent)
		return
	}
	c.set(x, y, visual.RGBA{
		R: (src.R*src.A + dst.R*dst.A*(1-src.A)) / outA,
		G: (src.G*src.A + dst.G*dst.A*(1-src.A)) / outA,
		B: (src.B*src.A + dst.B*dst.A*(1-src.A)) / outA,
		A: outA,
	})
}

func drawBackground(c *canvas) {
	b := c.img.Bounds()
	top := visual.RGB(0.08, 0.09, 0.12)
	bottom := visual.RGB(0.13, 0.15, 0.22)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := float32(y-b.Min.Y) / float32(b.Dy())
		row := top.Lerp(bottom, t)
		for x := b.Min.X; x < b.Max.X; x++ {
			c.set(x, y, row)
		}
	}
}

// boxQuad bundles the inputs for one reference box draw.
type boxQuad struct {
	rect        visual.Rect
	style       visual.BoxStyle
	fill        visual.RGBA
	border      visual.RGBA
	texture     visual.TextureSource
	texBounds   visual.Rect
	textureRect visual.Rect
	wrapU       visual.WrapMode
	wrapV       visual.WrapMode
}

// drawBox shades every pixel the box or its shadow can touch.
func drawBox(c *canvas, q boxQuad) {
	bounds := q.style.BoxBounds(q.rect).Union(q.style.ShadowBounds(q.rect))
	texBounds := q.texBounds
	if texBounds.Area() <= 0 {
		texBounds = q.rect
	}
	textureRect := q.textureRect
	if textureRect.Area() <= 0 {
		textureRect = visual.UnitRect
	}
	x0, y0, x1, y1 := pixelBounds(bounds)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			coord := visual.V2(float32(x)+0.5, float32(y)+0.5)
			uv := visual.V2((coord.X-texBounds.X)/texBounds.W, (coord.Y-texBounds.Y)/texBounds.H)
			out := visual.ShadeBox(visual.BoxFragment{
				Rect:        q.rect,
				Style:       q.style,
				FillColor:   q.fill,
				BorderColor: q.border,
				Coord:       coord,
				TexCoord:    uv,
				Texture:     q.texture,
				TextureRect: textureRect,
				WrapU:       q.wrapU,
				WrapV:       q.wrapV,
			})
			c.blend(x, y, out)
		}
	}
}

func drawStyledBoxes(c *canvas) {
	// Rounded box with a wide border.
	drawBox(c, boxQuad{
		rect:   visual.R(60, 80, 180, 120),
		style:  visual.BoxStyle{Radii: [4]float32{24, 24, 24, 24}, BorderThickness: 4},
		fill:   visual.RGB(0.18, 0.32, 0.55),
		border: visual.RGB(0.62, 0.76, 0.95),
	})

	// Thin border with a cyan glow halo.
	drawBox(c, boxQuad{
		rect: visual.R(310, 90, 160, 100),
		style: visual.BoxStyle{
			Radii:           [4]float32{16, 16, 16, 16},
			BorderThickness: 2,
			GlowRadius:      26,
			GlowColor:       visual.RGBA{R: 0.15, G: 0.85, B: 0.9, A: 0.9},
		},
		fill:   visual.RGB(0.1, 0.12, 0.16),
		border: visual.RGB(0.3, 0.9, 0.95),
	})

	// Asymmetric corners with an offset drop shadow.
	drawBox(c, boxQuad{
		rect: visual.R(540, 80, 180, 120),
		style: visual.BoxStyle{
			Radii:           [4]float32{8, 40, 8, 40},
			BorderThickness: 3,
			ShadowOffset:    visual.V2(14, 14),
			ShadowRadius:    20,
			ShadowColor:     visual.RGBA{A: 0.65},
		},
		fill:   visual.RGB(0.82, 0.45, 0.2),
		border: visual.RGB(0.95, 0.88, 0.78),
	})
}

func drawTexturedBox(c *canvas) {
	rect := visual.R(60, 280, 220, 150)
	drawBox(c, boxQuad{
		rect:   rect,
		style:  visual.BoxStyle{Radii: [4]float32{14, 14, 14, 14}, BorderThickness: 3},
		fill:   visual.White,
		border: visual.RGB(0.9, 0.9, 0.95),
		// Texture coordinates span three tiles per axis; repeat
		// wrapping folds them back into the checkerboard.
		texture:   visual.ImageSource{Image: newCheckerboard()},
		texBounds: visual.R(rect.X, rect.Y, rect.W/3, rect.H/3),
		wrapU:     visual.WrapRepeat,
		wrapV:     visual.WrapRepeat,
	})
}

func drawMaskedQuad(c *canvas) {
	rect := visual.R(340, 280, 180, 150)
	src := visual.ImageSource{Image: newGradientStrip()}
	mask := visual.ImageSource{Image: newRadialMask(64)}
	x0, y0, x1, y1 := pixelBounds(rect)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			uv := visual.V2(
				(float32(x)+0.5-rect.X)/rect.W,
				(float32(y)+0.5-rect.Y)/rect.H,
			)
			c.blend(x, y, visual.ShadeMask(visual.White, src, uv, mask, uv))
		}
	}
}

func drawWrappedQuad(c *canvas) {
	rect := visual.R(580, 280, 160, 150)
	src := visual.ImageSource{Image: newCheckerboard()}
	tint := visual.RGBA{R: 0.75, G: 0.85, B: 1, A: 0.9}
	x0, y0, x1, y1 := pixelBounds(rect)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			// Coordinates run from -0.5 to 1.5 so both out-of-range
			// halves are visible: U repeats, V clamps.
			uv := visual.V2(
				-0.5+2*(float32(x)+0.5-rect.X)/rect.W,
				-0.5+2*(float32(y)+0.5-rect.Y)/rect.H,
			)
			out := visual.ShadePrimitiveWrap(tint, src, uv, visual.UnitRect, visual.WrapRepeat, visual.WrapClamp)
			c.blend(x, y, out)
		}
	}
}

func drawText(c *canvas) {
	drawTextLine(c, "gogpu visual", visual.V2(60, 480), 4, visual.RGB(0.92, 0.94, 0.98))
	drawTextLine(c, "reference shading demo", visual.V2(60, 545), 2, visual.RGBA{R: 0.6, G: 0.65, B: 0.75, A: 0.9})
}

// drawTextLine rasterizes s into a coverage atlas and shades one quad
// per line, scaled up so the glyph texels are easy to inspect.
func drawTextLine(c *canvas, s string, origin visual.Vec2, scale int, col visual.RGBA) {
	atlas := renderTextAtlas(s)
	src := visual.ImageSource{Image: atlas}
	w := atlas.Bounds().Dx() * scale
	h := atlas.Bounds().Dy() * scale
	x0 := int(origin.X)
	y0 := int(origin.Y)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			uv := visual.V2(
				(float32(x)+0.5)/float32(w),
				(float32(y)+0.5)/float32(h),
			)
			c.blend(x0+x, y0+y, visual.ShadeText(col, src, uv))
		}
	}
}

// renderTextAtlas draws s with the fixed 7x13 face into a grayscale
// coverage image, the same single-channel layout the text pipeline's
// glyph atlas uses.
func renderTextAtlas(s string) *image.Gray {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	w := font.MeasureString(face, s).Ceil() + 2
	h := metrics.Height.Ceil() + 2
	img := image.NewGray(image.Rect(0, 0, w, h))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(1, metrics.Ascent.Ceil()+1),
	}
	d.DrawString(s)
	return img
}

func newCheckerboard() *image.NRGBA {
	const cells, cell = 8, 8
	img := image.NewNRGBA(image.Rect(0, 0, cells*cell, cells*cell))
	light := visual.RGB(0.95, 0.95, 0.98).Color()
	dark := visual.RGB(0.25, 0.55, 0.85).Color()
	for y := 0; y < cells*cell; y++ {
		for x := 0; x < cells*cell; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.Set(x, y, light)
			} else {
				img.Set(x, y, dark)
			}
		}
	}
	return img
}

func newGradientStrip() *image.NRGBA {
	const w, h = 128, 8
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	from := visual.RGB(0.95, 0.55, 0.15)
	to := visual.RGB(0.55, 0.2, 0.85)
	for x := 0; x < w; x++ {
		col := from.Lerp(to, float32(x)/float32(w-1)).Color()
		for y := 0; y < h; y++ {
			img.Set(x, y, col)
		}
	}
	return img
}

// newRadialMask builds a grayscale disc whose intensity falls off
// quadratically toward the edge.
func newRadialMask(size int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			t := math.Sqrt(dx*dx+dy*dy) / center
			if t > 1 {
				t = 1
			}
			w := 1 - t*t
			img.SetGray(x, y, color.Gray{Y: uint8(w*254 + 0.5)})
		}
	}
	return img
}

func pixelBounds(r visual.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(float64(r.X)))
	y0 = int(math.Floor(float64(r.Y)))
	x1 = int(math.Ceil(float64(r.X + r.W)))
	y1 = int(math.Ceil(float64(r.Y + r.H)))
	return x0, y0, x1, y1
}

func savePNG(c *canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, c.img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
