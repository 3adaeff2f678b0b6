/*
Package raster decodes and re-encodes the PNG bytes the codec operates
on, handing the rest of the module a flat RGB byte grid instead of an
image.Image.

Grounded on the teacher's stegano/img/png.go (image.Decode / png.Encode
pipeline), but reads and writes the underlying Pix slice directly
instead of going through At(...).RGBA(), so alpha-premultiplication
never touches the channel bytes the codec is trying to preserve
bit-exactly.
*/
package raster

import (
	"bytes"
	"errors"
	"image"
	"image/png"
)

// ErrUnsupportedFormat is returned when the decoded PNG's colour model
// is not 8-bit truecolour or truecolour-with-alpha.
var ErrUnsupportedFormat = errors.New("raster: unsupported PNG format, need 8-bit truecolour (+alpha)")

// Raster is a caller-owned (height, width, 3) byte grid, channels in
// R,G,B order. It is the sole carrier the codec components mutate.
type Raster struct {
	Width  int
	Height int
	Pix    []byte // len == Width*Height*3, row-major, RGB per pixel
}

// Alpha is the alpha plane stripped from a truecolour-with-alpha PNG
// at decode time and re-attached unchanged at encode time.
type Alpha struct {
	Width  int
	Height int
	Pix    []byte // len == Width*Height, row-major
}

// At returns the three channel bytes for pixel (x, y).
func (r *Raster) At(x, y int) (red, green, blue byte) {
	i := (y*r.Width + x) * 3
	return r.Pix[i], r.Pix[i+1], r.Pix[i+2]
}

// Channel returns the byte for pixel (x, y), channel ch (0=R,1=G,2=B).
func (r *Raster) Channel(x, y, ch int) byte {
	return r.Pix[(y*r.Width+x)*3+ch]
}

// SetChannel writes b into pixel (x, y), channel ch.
func (r *Raster) SetChannel(x, y, ch int, b byte) {
	r.Pix[(y*r.Width+x)*3+ch] = b
}

// Clone returns a deep copy, so a caller's input raster is never
// mutated through an aliased backing array.
func (r *Raster) Clone() *Raster {
	pix := make([]byte, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// Decode parses PNG bytes into a Raster, stripping any alpha plane into
// a separate Alpha so Encode can restore it unchanged. Only 8-bit
// truecolour (colour type 2) and truecolour-with-alpha (colour type 6)
// are accepted; anything else is ErrUnsupportedFormat.
func Decode(pngBytes []byte) (*Raster, *Alpha, error) {
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		return nil, nil, err
	}

	// image/png also decodes 8-bit greyscale-with-alpha (colour type 4)
	// into an *image.NRGBA, so the IHDR bit depth and colour type are
	// checked directly. A successful decode guarantees IHDR is the first
	// chunk, at a fixed offset.
	if depth, colourType := pngBytes[24], pngBytes[25]; depth != 8 || (colourType != 2 && colourType != 6) {
		return nil, nil, ErrUnsupportedFormat
	}

	switch src := img.(type) {
	case *image.RGBA:
		return decodeRGBA(src), nil, nil
	case *image.NRGBA:
		return decodeNRGBA(src)
	default:
		return nil, nil, ErrUnsupportedFormat
	}
}

func decodeRGBA(src *image.RGBA) *Raster {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	r := &Raster{Width: w, Height: h, Pix: make([]byte, w*h*3)}
	for y := 0; y < h; y++ {
		srcRow := src.PixOffset(b.Min.X, b.Min.Y+y)
		dstRow := y * w * 3
		for x := 0; x < w; x++ {
			si := srcRow + x*4
			di := dstRow + x*3
			r.Pix[di] = src.Pix[si]
			r.Pix[di+1] = src.Pix[si+1]
			r.Pix[di+2] = src.Pix[si+2]
		}
	}
	return r
}

// decodeNRGBA always returns a non-nil Alpha for a truecolour-with-alpha
// source, even when every byte in it happens to be 0xff: the PNG's colour
// type is part of what Decode/Encode must reproduce unchanged, and an
// all-opaque alpha plane is still a plane the source PNG chose to carry.
func decodeNRGBA(src *image.NRGBA) (*Raster, *Alpha, error) {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	r := &Raster{Width: w, Height: h, Pix: make([]byte, w*h*3)}
	a := &Alpha{Width: w, Height: h, Pix: make([]byte, w*h)}

	for y := 0; y < h; y++ {
		srcRow := src.PixOffset(b.Min.X, b.Min.Y+y)
		dstRow := y * w * 3
		for x := 0; x < w; x++ {
			si := srcRow + x*4
			di := dstRow + x*3
			r.Pix[di] = src.Pix[si]
			r.Pix[di+1] = src.Pix[si+1]
			r.Pix[di+2] = src.Pix[si+2]
			a.Pix[y*w+x] = src.Pix[si+3]
		}
	}
	return r, a, nil
}

// Encode serialises a Raster back to PNG bytes. When alpha is nil the
// result is 8-bit truecolour (type 2); otherwise it is
// truecolour-with-alpha (type 6) carrying alpha unchanged.
func Encode(r *Raster, alpha *Alpha) ([]byte, error) {
	if alpha == nil {
		img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
		for y := 0; y < r.Height; y++ {
			srcRow := y * r.Width * 3
			dstRow := img.PixOffset(0, y)
			for x := 0; x < r.Width; x++ {
				si := srcRow + x*3
				di := dstRow + x*4
				img.Pix[di] = r.Pix[si]
				img.Pix[di+1] = r.Pix[si+1]
				img.Pix[di+2] = r.Pix[si+2]
				img.Pix[di+3] = 0xff
			}
		}
		return encodePNG(img)
	}

	img := image.NewNRGBA(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		srcRow := y * r.Width * 3
		dstRow := img.PixOffset(0, y)
		for x := 0; x < r.Width; x++ {
			si := srcRow + x*3
			di := dstRow + x*4
			img.Pix[di] = r.Pix[si]
			img.Pix[di+1] = r.Pix[si+1]
			img.Pix[di+2] = r.Pix[si+2]
			img.Pix[di+3] = alpha.Pix[y*r.Width+x]
		}
	}
	return encodePNG(nonOpaqueNRGBA{img})
}

// nonOpaqueNRGBA reports itself as non-opaque so image/png writes colour
// type 6 even when every alpha byte is 0xff; otherwise the encoder would
// drop an all-opaque alpha plane and emit type 2.
type nonOpaqueNRGBA struct{ *image.NRGBA }

func (nonOpaqueNRGBA) Opaque() bool { return false }

func encodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := &png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// grayAt is a small helper used by the feature package without
// importing image/color itself; kept here since raster already knows
// how the three channels are packed.
func grayAt(r *Raster, x, y int) int {
	red, green, blue := r.At(x, y)
	return (int(red) + int(green) + int(blue)) / 3
}

// Gray returns the single-channel luma grid used as the feature
// extractor's texture field, gray[y][x] = floor((R+G+B)/3).
func (r *Raster) Gray() [][]int {
	g := make([][]int, r.Height)
	for y := 0; y < r.Height; y++ {
		row := make([]int, r.Width)
		for x := 0; x < r.Width; x++ {
			row[x] = grayAt(r, x, y)
		}
		g[y] = row
	}
	return g
}
