/*
Package envelope reads and writes the zkPF PNG ancillary chunk that
carries the metadata a recipient needs to invert the embedding, and
computes/verifies the carrier-binding hash.

The chunk length/type/CRC framing is grounded on klausman-pngrep's
PNG chunk reader (length u32 / type 4 bytes / data / CRC32 u32, all
big-endian) and on the original source's embed_in_png IEND-insertion
logic (proof_artifact.py), adapted from the original's JSON+zlib
artifact body to this protocol's fixed 49-byte binary header (HeaderSize,
meta_len included) plus an opaque metadata tail.
*/
package envelope

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
)

var (
	// ErrMalformedPNG is returned when chunk parsing fails or no IEND
	// chunk terminates the stream.
	ErrMalformedPNG = errors.New("envelope: malformed PNG, no IEND chunk found")
	// ErrEnvelopeCorrupt is returned when the zkPF chunk's CRC does not
	// match its contents.
	ErrEnvelopeCorrupt = errors.New("envelope: zkPF chunk CRC mismatch")
	// ErrUnknownEnvelope is returned when the chunk's tag/version is not
	// recognised.
	ErrUnknownEnvelope = errors.New("envelope: unrecognised tag or version")
	// ErrEnvelopeInconsistent is returned when a field is out of range
	// relative to the image geometry.
	ErrEnvelopeInconsistent = errors.New("envelope: field out of range for this image")
	// ErrNoEnvelope is returned when the PNG carries no zkPF chunk.
	ErrNoEnvelope = errors.New("envelope: no zkPF chunk present")
)

const (
	chunkType = "zkPF"
	tag       = "ZKSG"
	version   = byte(1)

	// HeaderSize is the fixed-size portion of the chunk data field:
	// tag(4) + version(1) + anchor_x(2) + anchor_y(2) + payload_bits(4)
	// + carrier_sha(32) + meta_len(4).
	HeaderSize = 4 + 1 + 2 + 2 + 4 + 32 + 4
)

var pngSignature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// Descriptor is the envelope's logical content.
type Descriptor struct {
	AnchorX     uint16
	AnchorY     uint16
	PayloadBits uint32
	CarrierSHA  [32]byte
	Meta        []byte
}

// Encode serialises d into a zkPF chunk's data field (tag through
// meta), without the outer length/type/CRC framing.
func (d Descriptor) Encode() []byte {
	buf := make([]byte, HeaderSize+len(d.Meta))
	copy(buf[0:4], tag)
	buf[4] = version
	binary.BigEndian.PutUint16(buf[5:7], d.AnchorX)
	binary.BigEndian.PutUint16(buf[7:9], d.AnchorY)
	binary.BigEndian.PutUint32(buf[9:13], d.PayloadBits)
	copy(buf[13:45], d.CarrierSHA[:])
	binary.BigEndian.PutUint32(buf[45:49], uint32(len(d.Meta)))
	copy(buf[49:], d.Meta)
	return buf
}

// decodeDescriptor parses a zkPF chunk's data field back into a
// Descriptor.
func decodeDescriptor(data []byte) (Descriptor, error) {
	if len(data) < HeaderSize {
		return Descriptor{}, ErrEnvelopeCorrupt
	}
	if string(data[0:4]) != tag || data[4] != version {
		return Descriptor{}, ErrUnknownEnvelope
	}

	var d Descriptor
	d.AnchorX = binary.BigEndian.Uint16(data[5:7])
	d.AnchorY = binary.BigEndian.Uint16(data[7:9])
	d.PayloadBits = binary.BigEndian.Uint32(data[9:13])
	copy(d.CarrierSHA[:], data[13:45])

	metaLen := binary.BigEndian.Uint32(data[45:49])
	if uint32(len(data)-HeaderSize) != metaLen {
		return Descriptor{}, ErrEnvelopeCorrupt
	}
	if metaLen > 0 {
		d.Meta = append([]byte(nil), data[HeaderSize:]...)
	}
	return d, nil
}

// chunk is one raw PNG chunk as it appears on the wire.
type chunk struct {
	typ  string
	data []byte
}

func splitChunks(pngBytes []byte) (header []byte, chunks []chunk, err error) {
	if len(pngBytes) < 8 || !bytes.Equal(pngBytes[:8], pngSignature) {
		return nil, nil, ErrMalformedPNG
	}
	header = pngBytes[:8]

	pos := 8
	for pos+8 <= len(pngBytes) {
		length := binary.BigEndian.Uint32(pngBytes[pos : pos+4])
		typ := string(pngBytes[pos+4 : pos+8])
		dataStart := pos + 8
		dataEnd := dataStart + int(length)
		crcEnd := dataEnd + 4
		if crcEnd > len(pngBytes) {
			return nil, nil, ErrMalformedPNG
		}
		chunks = append(chunks, chunk{typ: typ, data: pngBytes[dataStart:dataEnd]})
		pos = crcEnd
		if typ == "IEND" {
			return header, chunks, nil
		}
	}
	return nil, nil, ErrMalformedPNG
}

func writeChunk(buf *bytes.Buffer, typ string, data []byte) {
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(data)))
	buf.Write(lenBuf[:])
	buf.WriteString(typ)
	buf.Write(data)

	crcInput := append([]byte(typ), data...)
	var crcBuf [4]byte
	binary.BigEndian.PutUint32(crcBuf[:], crc32.ChecksumIEEE(crcInput))
	buf.Write(crcBuf[:])
}

// Write inserts a zkPF chunk encoding d immediately before IEND,
// removing any pre-existing zkPF chunks first. It fails ErrMalformedPNG
// if pngBytes has no terminating IEND chunk.
func Write(pngBytes []byte, d Descriptor) ([]byte, error) {
	header, chunks, err := splitChunks(pngBytes)
	if err != nil {
		return nil, err
	}

	out := new(bytes.Buffer)
	out.Write(header)
	for _, c := range chunks {
		if c.typ == chunkType {
			continue
		}
		if c.typ == "IEND" {
			writeChunk(out, chunkType, d.Encode())
		}
		writeChunk(out, c.typ, c.data)
	}
	return out.Bytes(), nil
}

// Read returns the last zkPF chunk's Descriptor, verifying the chunk's
// CRC along the way. It does not perform geometry or carrier-hash
// validation; callers do that with the image at hand.
func Read(pngBytes []byte) (Descriptor, error) {
	_, chunks, err := splitChunks(pngBytes)
	if err != nil {
		return Descriptor{}, err
	}

	found := false
	var raw []byte
	for _, c := range chunks {
		if c.typ == chunkType {
			found = true
			raw = c.data
		}
	}
	if !found {
		return Descriptor{}, ErrNoEnvelope
	}

	// Verify CRC by recomputing over (type || data) and comparing
	// against the CRC stored immediately after this chunk in the
	// original byte stream.
	crcWant, err := findChunkCRC(pngBytes, chunkType, raw)
	if err != nil {
		return Descriptor{}, err
	}
	if crc32.ChecksumIEEE(append([]byte(chunkType), raw...)) != crcWant {
		return Descriptor{}, ErrEnvelopeCorrupt
	}

	return decodeDescriptor(raw)
}

// findChunkCRC walks the raw byte stream to find the CRC that
// immediately follows the (unique, by construction) occurrence of a
// chunk with this exact type and data.
func findChunkCRC(pngBytes []byte, typ string, data []byte) (uint32, error) {
	pos := 8
	for pos+8 <= len(pngBytes) {
		length := binary.BigEndian.Uint32(pngBytes[pos : pos+4])
		curType := string(pngBytes[pos+4 : pos+8])
		dataStart := pos + 8
		dataEnd := dataStart + int(length)
		crcEnd := dataEnd + 4
		if crcEnd > len(pngBytes) {
			return 0, ErrMalformedPNG
		}
		if curType == typ && bytes.Equal(pngBytes[dataStart:dataEnd], data) {
			return binary.BigEndian.Uint32(pngBytes[dataEnd:crcEnd]), nil
		}
		pos = crcEnd
		if curType == "IEND" {
			break
		}
	}
	return 0, ErrNoEnvelope
}
