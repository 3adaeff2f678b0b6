package lsb

import (
	"bytes"
	"testing"

	"github.com/Saudadeeee/zk-snark-X-Steganography/chaos"
	"github.com/Saudadeeee/zk-snark-X-Steganography/raster"
)

func TestBytesToBitsAndBack(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		[]byte("Hello world!"),
		bytes.Repeat([]byte("A"), 100),
		{0x00, 0xff, 0x80, 0x01},
	}
	for _, data := range cases {
		bits := BytesToBits(data)
		if len(bits) != len(data)*8 {
			t.Fatalf("len(bits) = %d, want %d", len(bits), len(data)*8)
		}
		got := BitsToBytes(bits)
		if !bytes.Equal(got, data) && !(len(got) == 0 && len(data) == 0) {
			t.Errorf("BitsToBytes(BytesToBits(%v)) = %v", data, got)
		}
	}
}

func TestBytesToBitsIsMSBFirst(t *testing.T) {
	bits := BytesToBits([]byte{0b10110000})
	want := []byte{1, 0, 1, 1, 0, 0, 0, 0}
	if !bytes.Equal(bits, want) {
		t.Errorf("BytesToBits(0b10110000) = %v, want %v", bits, want)
	}
}

func syntheticRaster(width, height int) *raster.Raster {
	pix := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < 3; c++ {
				pix[(y*width+x)*3+c] = byte((17*y + 31*x + 7*c) % 256)
			}
		}
	}
	return &raster.Raster{Width: width, Height: height, Pix: pix}
}

func allPositions(width, height int) []chaos.Position {
	var positions []chaos.Position
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for c := 0; c < 3; c++ {
				positions = append(positions, chaos.Position{X: x, Y: y, Ch: c})
			}
		}
	}
	return positions
}

func TestEmbedExtractRoundTrip(t *testing.T) {
	img := syntheticRaster(8, 8)
	positions := allPositions(8, 8)[:40]
	data := []byte{0xde, 0xad, 0xbe, 0xef, 0x00}
	bits := BytesToBits(data)

	if err := EmbedBits(img, positions, bits); err != nil {
		t.Fatalf("EmbedBits failed: %v", err)
	}
	got := BitsToBytes(ExtractBits(img, positions))
	if !bytes.Equal(got, data) {
		t.Errorf("round trip = %v, want %v", got, data)
	}
}

func TestEmbedBitsRejectsLengthMismatch(t *testing.T) {
	img := syntheticRaster(4, 4)
	positions := allPositions(4, 4)[:5]
	bits := make([]byte, 4)
	if err := EmbedBits(img, positions, bits); err != ErrLengthMismatch {
		t.Errorf("error = %v, want ErrLengthMismatch", err)
	}
}

func TestEmbedBitsOnlyTouchesTheLSB(t *testing.T) {
	img := syntheticRaster(4, 4)
	pos := chaos.Position{X: 1, Y: 1, Ch: 0}
	before := img.Channel(pos.X, pos.Y, pos.Ch)

	if err := EmbedBits(img, []chaos.Position{pos}, []byte{1}); err != nil {
		t.Fatalf("EmbedBits failed: %v", err)
	}
	after := img.Channel(pos.X, pos.Y, pos.Ch)
	if after&^1 != before&^1 {
		t.Errorf("EmbedBits touched bits above the LSB: before=%08b after=%08b", before, after)
	}
	if after&1 != 1 {
		t.Errorf("EmbedBits did not set the LSB")
	}
}
