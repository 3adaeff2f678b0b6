/*
Package lsb mutates / reads the least significant bit of each channel
byte at a given position sequence (C4).

Grounded on the teacher's stegano/img/png.go EncodeWithLSB/DecodeFromLSB
bit-packing loop, and on stegano/util/encoding.go's ToBin/FromBin byte
packer — rewritten here to the spec's mandated big-endian,
most-significant-bit-first convention instead of the teacher's
least-significant-bit-first ToBin.
*/
package lsb

import (
	"errors"

	"github.com/Saudadeeee/zk-snark-X-Steganography/chaos"
	"github.com/Saudadeeee/zk-snark-X-Steganography/raster"
)

// ErrLengthMismatch guards the internal invariant that the position
// list and the bit list passed to EmbedBits always agree in length.
var ErrLengthMismatch = errors.New("lsb: position count and bit count disagree")

// BytesToBits unpacks data into a big-endian, MSB-first bit stream:
// bit(8k+j) = (B>>(7-j)) & 1 for byte B at index k, j = 0..7.
func BytesToBits(data []byte) []byte {
	bits := make([]byte, len(data)*8)
	for k, b := range data {
		for j := 0; j < 8; j++ {
			bits[8*k+j] = (b >> (7 - j)) & 1
		}
	}
	return bits
}

// BitsToBytes reconstitutes bytes from a bit stream produced by
// BytesToBits (or by ExtractBits under the identical convention).
func BitsToBytes(bits []byte) []byte {
	out := make([]byte, len(bits)/8)
	for k := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b = (b << 1) | (bits[8*k+j] & 1)
		}
		out[k] = b
	}
	return out
}

// EmbedBits writes bits[i] into the LSB of img's channel at
// positions[i], for every i, in order. It mutates img in place and
// never skips a write, so execution time does not depend on bit
// values.
func EmbedBits(img *raster.Raster, positions []chaos.Position, bits []byte) error {
	if len(positions) != len(bits) {
		return ErrLengthMismatch
	}
	for i, pos := range positions {
		b := img.Channel(pos.X, pos.Y, pos.Ch)
		b = (b &^ 1) | (bits[i] & 1)
		img.SetChannel(pos.X, pos.Y, pos.Ch, b)
	}
	return nil
}

// ExtractBits reads the LSB of img's channel at each position, in
// order. It never mutates img.
func ExtractBits(img *raster.Raster, positions []chaos.Position) []byte {
	bits := make([]byte, len(positions))
	for i, pos := range positions {
		bits[i] = img.Channel(pos.X, pos.Y, pos.Ch) & 1
	}
	return bits
}
